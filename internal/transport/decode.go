package transport

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
)

// ServerError is an error reply from the server, surfaced as a Go error
// rather than a reply value.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "server error: " + e.Message
}

// DecodeReply reads one reply from the wire. Both protocol versions are
// understood: the newer map, set, double, boolean, null, big-number,
// verbatim and push framings decode alongside the classic five types.
// Booleans decode to integer 1/0 and verbatim strings drop their format
// prefix, so downstream code sees a single reply model regardless of
// the negotiated protocol.
func DecodeReply(r *bufio.Reader) (protocol.Reply, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	switch b {
	case '+':
		return decodeStatus(r)
	case '-':
		return decodeError(r)
	case ':':
		return decodeInteger(r)
	case '$':
		return decodeBulk(r)
	case '*', '>':
		return decodeArray(r)
	case '%':
		return decodeMap(r)
	case '~':
		return decodeSet(r)
	case ',':
		return decodeDouble(r)
	case '#':
		return decodeBoolean(r)
	case '_':
		if _, err := readLine(r); err != nil {
			return nil, err
		}
		return protocol.Nil{}, nil
	case '(':
		return decodeBigNumber(r)
	case '=':
		return decodeVerbatim(r)
	default:
		return nil, fmt.Errorf("unknown reply type byte: %q", b)
	}
}

// readLine reads until \n and strips the trailing \r\n.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\r\n"), nil
}

func decodeStatus(r *bufio.Reader) (protocol.Reply, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	return protocol.Status{Value: line}, nil
}

func decodeError(r *bufio.Reader) (protocol.Reply, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	return nil, &ServerError{Message: line}
}

func decodeInteger(r *bufio.Reader) (protocol.Reply, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	val, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer format: %w", err)
	}
	return protocol.Integer{Value: val}, nil
}

func decodeDouble(r *bufio.Reader) (protocol.Reply, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	switch line {
	case "inf":
		return protocol.Double{Value: math.Inf(1)}, nil
	case "-inf":
		return protocol.Double{Value: math.Inf(-1)}, nil
	case "nan":
		return protocol.Double{Value: math.NaN()}, nil
	}
	val, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid double format: %w", err)
	}
	return protocol.Double{Value: val}, nil
}

func decodeBoolean(r *bufio.Reader) (protocol.Reply, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	switch line {
	case "t":
		return protocol.Integer{Value: 1}, nil
	case "f":
		return protocol.Integer{Value: 0}, nil
	default:
		return nil, fmt.Errorf("invalid boolean format: %q", line)
	}
}

// decodeBigNumber keeps numbers wider than int64 as bulk text so no
// precision is lost; callers that expect an integer parse it themselves.
func decodeBigNumber(r *bufio.Reader) (protocol.Reply, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	return protocol.Bulk{Bytes: []byte(line)}, nil
}

func decodeBulk(r *bufio.Reader) (protocol.Reply, error) {
	payload, null, err := readBulkPayload(r)
	if err != nil {
		return nil, err
	}
	if null {
		return protocol.Nil{}, nil
	}
	return protocol.Bulk{Bytes: payload}, nil
}

// decodeVerbatim strips the 4-byte format prefix ("txt:" or "mkd:") and
// yields the remainder as a plain bulk payload.
func decodeVerbatim(r *bufio.Reader) (protocol.Reply, error) {
	payload, null, err := readBulkPayload(r)
	if err != nil {
		return nil, err
	}
	if null {
		return protocol.Nil{}, nil
	}
	if len(payload) < 4 || payload[3] != ':' {
		return nil, fmt.Errorf("invalid verbatim payload prefix: %q", payload)
	}
	return protocol.Bulk{Bytes: payload[4:]}, nil
}

func readBulkPayload(r *bufio.Reader) ([]byte, bool, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, false, err
	}
	length, err := strconv.Atoi(line)
	if err != nil {
		return nil, false, fmt.Errorf("invalid bulk length: %w", err)
	}
	if length == -1 {
		return nil, true, nil
	}
	if length < -1 {
		return nil, false, fmt.Errorf("invalid bulk length: %d", length)
	}

	// Read exact byte count to be binary-safe.
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, false, fmt.Errorf("failed to read bulk payload: %w", err)
	}

	crlf := make([]byte, 2)
	if _, err := io.ReadFull(r, crlf); err != nil {
		return nil, false, fmt.Errorf("failed to read bulk trailing CRLF: %w", err)
	}
	if crlf[0] != '\r' || crlf[1] != '\n' {
		return nil, false, fmt.Errorf("expected CRLF after bulk payload, got %q", crlf)
	}
	return buf, false, nil
}

func readCount(r *bufio.Reader, what string) (int, error) {
	line, err := readLine(r)
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("invalid %s count: %w", what, err)
	}
	if count < -1 {
		return 0, fmt.Errorf("invalid %s count: %d", what, count)
	}
	return count, nil
}

func decodeArray(r *bufio.Reader) (protocol.Reply, error) {
	count, err := readCount(r, "array")
	if err != nil {
		return nil, err
	}
	if count == -1 {
		return protocol.Nil{}, nil
	}
	items := make([]protocol.Reply, count)
	for i := 0; i < count; i++ {
		item, err := DecodeReply(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode array element %d: %w", i, err)
		}
		items[i] = item
	}
	return protocol.Array{Items: items}, nil
}

func decodeSet(r *bufio.Reader) (protocol.Reply, error) {
	count, err := readCount(r, "set")
	if err != nil {
		return nil, err
	}
	if count == -1 {
		return protocol.Nil{}, nil
	}
	items := make([]protocol.Reply, count)
	for i := 0; i < count; i++ {
		item, err := DecodeReply(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode set element %d: %w", i, err)
		}
		items[i] = item
	}
	return protocol.Set{Items: items}, nil
}

func decodeMap(r *bufio.Reader) (protocol.Reply, error) {
	count, err := readCount(r, "map")
	if err != nil {
		return nil, err
	}
	if count == -1 {
		return protocol.Nil{}, nil
	}
	pairs := make([]protocol.Pair, count)
	for i := 0; i < count; i++ {
		key, err := DecodeReply(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode map key %d: %w", i, err)
		}
		value, err := DecodeReply(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode map value %d: %w", i, err)
		}
		pairs[i] = protocol.Pair{Key: key, Value: value}
	}
	return protocol.Map{Pairs: pairs}, nil
}

package normalize

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/models"
)

// Materializer converts a scalar-shaped reply into T under one binary
// intent. Text and Bytes are the two materializers; a resolver is
// parameterized by whichever the call site's API variant dictates.
type Materializer[T models.Datum] func(protocol.Reply) (models.Result[T], error)

// Text materializes a reply as a validated UTF-8 string. Bulk payloads
// are decoded strictly: any invalid byte sequence fails with
// ErrInvalidUTF8 rather than being substituted.
func Text(r protocol.Reply) (models.Result[string], error) {
	r = unwrapScalar(r)
	switch v := r.(type) {
	case protocol.Nil:
		return models.NilOf[string](), nil
	case protocol.Bulk:
		if !utf8.Valid(v.Bytes) {
			return models.NilOf[string](), fmt.Errorf("materialize text: %w", ErrInvalidUTF8)
		}
		s := string(v.Bytes)
		if err := checkLossyDecode(s); err != nil {
			return models.NilOf[string](), err
		}
		return models.Of(s), nil
	case protocol.Status:
		if err := checkLossyDecode(v.Value); err != nil {
			return models.NilOf[string](), err
		}
		return models.Of(v.Value), nil
	case protocol.Integer:
		return models.Of(strconv.FormatInt(v.Value, 10)), nil
	case protocol.Double:
		return models.Of(strconv.FormatFloat(v.Value, 'g', -1, 64)), nil
	case protocol.Map:
		return Text(firstMapValue(v))
	default:
		return models.NilOf[string](), shapeError("materialize text", r.Kind())
	}
}

// Bytes materializes a reply as raw bytes. No decoding or validation is
// performed on Bulk payloads: binary intent must never trigger UTF-8
// checks, because application payloads are expected to be arbitrary.
func Bytes(r protocol.Reply) (models.Result[[]byte], error) {
	r = unwrapScalar(r)
	switch v := r.(type) {
	case protocol.Nil:
		return models.NilOf[[]byte](), nil
	case protocol.Bulk:
		return models.Of(v.Bytes), nil
	case protocol.Status:
		return models.Of([]byte(v.Value)), nil
	case protocol.Integer:
		return models.Of(strconv.AppendInt(nil, v.Value, 10)), nil
	case protocol.Double:
		return models.Of(strconv.AppendFloat(nil, v.Value, 'g', -1, 64)), nil
	case protocol.Map:
		return Bytes(firstMapValue(v))
	default:
		return models.NilOf[[]byte](), shapeError("materialize bytes", r.Kind())
	}
}

// checkLossyDecode rejects text showing evidence that some upstream
// decoder substituted instead of failing: the replacement character, or
// C1 control runes (U+0080..U+009F) typical of a latin-1 round trip of
// bytes that were never text.
func checkLossyDecode(s string) error {
	for _, r := range s {
		if r == utf8.RuneError || (r >= 0x80 && r <= 0x9f) {
			return fmt.Errorf("lossy decode detected (U+%04X): %w", r, ErrInvalidUTF8)
		}
	}
	return nil
}

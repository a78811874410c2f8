package normalize

import (
	"fmt"
	"strconv"

	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/models"
)

// CoerceInt converts a reply into an integer result. Nil coerces to an
// absent result. Bulk and status payloads are parsed as base-10 text; a
// parse failure is ErrMalformed, never a silent zero. Multi-node Array
// and Map wrappings are reduced per the cluster rules first.
func CoerceInt(r protocol.Reply) (models.Result[int64], error) {
	r = unwrapScalar(r)
	switch v := r.(type) {
	case protocol.Nil:
		return models.NilOf[int64](), nil
	case protocol.Integer:
		return models.Of(v.Value), nil
	case protocol.Bulk:
		return parseInt(string(v.Bytes))
	case protocol.Status:
		return parseInt(v.Value)
	case protocol.Double:
		return models.NilOf[int64](), fmt.Errorf("coerce integer: double %v: %w", v.Value, ErrMalformed)
	case protocol.Map:
		return CoerceInt(firstMapValue(v))
	default:
		return models.NilOf[int64](), shapeError("coerce integer", r.Kind())
	}
}

// CoerceFloat converts a reply into a float result. Integer replies
// widen losslessly; bulk and status payloads are parsed as float text.
func CoerceFloat(r protocol.Reply) (models.Result[float64], error) {
	r = unwrapScalar(r)
	switch v := r.(type) {
	case protocol.Nil:
		return models.NilOf[float64](), nil
	case protocol.Double:
		return models.Of(v.Value), nil
	case protocol.Integer:
		return models.Of(float64(v.Value)), nil
	case protocol.Bulk:
		return parseFloat(string(v.Bytes))
	case protocol.Status:
		return parseFloat(v.Value)
	case protocol.Map:
		return CoerceFloat(firstMapValue(v))
	default:
		return models.NilOf[float64](), shapeError("coerce float", r.Kind())
	}
}

// CoerceBool converts a reply into a boolean result. Only Integer 1 and
// 0 map to true and false; any other integer is ErrMalformed rather
// than being treated as truthy. Textual "true"/"false"/"1"/"0" payloads
// are accepted for servers that answer in that style.
func CoerceBool(r protocol.Reply) (models.Result[bool], error) {
	r = unwrapScalar(r)
	switch v := r.(type) {
	case protocol.Nil:
		return models.NilOf[bool](), nil
	case protocol.Integer:
		switch v.Value {
		case 0:
			return models.Of(false), nil
		case 1:
			return models.Of(true), nil
		default:
			return models.NilOf[bool](), fmt.Errorf("coerce boolean: integer %d: %w", v.Value, ErrMalformed)
		}
	case protocol.Bulk:
		return parseBool(string(v.Bytes))
	case protocol.Status:
		return parseBool(v.Value)
	case protocol.Map:
		return CoerceBool(firstMapValue(v))
	default:
		return models.NilOf[bool](), shapeError("coerce boolean", r.Kind())
	}
}

func parseInt(s string) (models.Result[int64], error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return models.NilOf[int64](), fmt.Errorf("coerce integer: %q: %w", s, ErrMalformed)
	}
	return models.Of(n), nil
}

func parseFloat(s string) (models.Result[float64], error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return models.NilOf[float64](), fmt.Errorf("coerce float: %q: %w", s, ErrMalformed)
	}
	return models.Of(f), nil
}

func parseBool(s string) (models.Result[bool], error) {
	switch s {
	case "1", "true":
		return models.Of(true), nil
	case "0", "false":
		return models.Of(false), nil
	default:
		return models.NilOf[bool](), fmt.Errorf("coerce boolean: %q: %w", s, ErrMalformed)
	}
}

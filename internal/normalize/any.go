package normalize

import (
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
)

// Intent selects how payload bytes materialize: validated text or raw
// binary. It threads through generic materialization so a single reply
// tree is decoded consistently top to bottom.
type Intent int

const (
	IntentText Intent = iota
	IntentBinary
)

// Any materializes a reply of unknown shape into plain Go values,
// recursing by the reply's own tag rather than an expected shape. Nil
// becomes a nil interface, scalars become string/[]byte/int64/float64,
// arrays and sets become []any, and maps become ordered [2]any pairs so
// no wire ordering is lost. Text intent applies the usual encoding
// validation to every leaf.
func Any(r protocol.Reply, intent Intent) (any, error) {
	switch v := r.(type) {
	case protocol.Nil:
		return nil, nil
	case protocol.Integer:
		return v.Value, nil
	case protocol.Double:
		return v.Value, nil
	case protocol.Status:
		if intent == IntentBinary {
			return []byte(v.Value), nil
		}
		res, err := Text(r)
		if err != nil {
			return nil, err
		}
		return res.Value(), nil
	case protocol.Bulk:
		if intent == IntentBinary {
			return v.Bytes, nil
		}
		res, err := Text(r)
		if err != nil {
			return nil, err
		}
		return res.Value(), nil
	case protocol.Array:
		return anyItems(v.Items, intent)
	case protocol.Set:
		return anyItems(v.Items, intent)
	case protocol.Map:
		out := make([][2]any, 0, len(v.Pairs))
		for _, pair := range v.Pairs {
			key, err := Any(pair.Key, intent)
			if err != nil {
				return nil, err
			}
			value, err := Any(pair.Value, intent)
			if err != nil {
				return nil, err
			}
			out = append(out, [2]any{key, value})
		}
		return out, nil
	default:
		return nil, shapeError("normalize any", r.Kind())
	}
}

func anyItems(items []protocol.Reply, intent Intent) ([]any, error) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		value, err := Any(item, intent)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, nil
}

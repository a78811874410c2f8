package normalize

import (
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/models"
)

// Entry is one key/value pair of a normalized map, in wire order.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Slice normalizes an array or set reply element-wise with the supplied
// coercer. One level of cluster wrapping is stripped first. A Nil reply
// yields a nil slice; nested containers are handled by whatever the
// element coercer does with them, so normalization recurses depth-first
// under the caller's expected shape rather than by introspection.
func Slice[T any](r protocol.Reply, elem func(protocol.Reply) (T, error)) ([]T, error) {
	r = UnwrapCluster(r)
	switch v := r.(type) {
	case protocol.Nil:
		return nil, nil
	case protocol.Array:
		return sliceOf(v.Items, elem)
	case protocol.Set:
		return sliceOf(v.Items, elem)
	default:
		return nil, shapeError("normalize array", r.Kind())
	}
}

func sliceOf[T any](items []protocol.Reply, elem func(protocol.Reply) (T, error)) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		val, err := elem(item)
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	return out, nil
}

// Values normalizes an array reply into present values only: absent
// elements are dropped rather than kept as holes. Use Slice with the
// materializer directly when holes are meaningful (MGET style).
func Values[T models.Datum](r protocol.Reply, mat Materializer[T]) ([]T, error) {
	results, err := Slice(r, mat)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(results))
	for _, res := range results {
		if !res.IsNil() {
			out = append(out, res.Value())
		}
	}
	return out, nil
}

// MapEntries normalizes a map-shaped reply into ordered entries. Both
// wire duals are accepted: a true map reply, and the flat alternating
// array some protocol versions use for what is conceptually a map.
// Entries whose key or value fails its coercer fail the whole call.
func MapEntries[K, V any](
	r protocol.Reply,
	key func(protocol.Reply) (K, error),
	val func(protocol.Reply) (V, error),
) ([]Entry[K, V], error) {
	r = UnwrapCluster(r)
	switch v := r.(type) {
	case protocol.Nil:
		return nil, nil
	case protocol.Map:
		out := make([]Entry[K, V], 0, len(v.Pairs))
		for _, pair := range v.Pairs {
			k, err := key(pair.Key)
			if err != nil {
				return nil, err
			}
			value, err := val(pair.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, Entry[K, V]{Key: k, Value: value})
		}
		return out, nil
	case protocol.Array:
		out := make([]Entry[K, V], 0, len(v.Items)/2)
		for i := 0; i+1 < len(v.Items); i += 2 {
			k, err := key(v.Items[i])
			if err != nil {
				return nil, err
			}
			value, err := val(v.Items[i+1])
			if err != nil {
				return nil, err
			}
			out = append(out, Entry[K, V]{Key: k, Value: value})
		}
		return out, nil
	default:
		return nil, shapeError("normalize map", r.Kind())
	}
}

// StringSet normalizes a set reply into a membership map. Only the text
// intent can produce one, since byte slices cannot key a Go map; the
// binary variant of a set-returning operation yields a Values slice.
func StringSet(r protocol.Reply) (map[string]struct{}, error) {
	members, err := Values(r, Text)
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(members))
	for _, m := range members {
		out[m] = struct{}{}
	}
	return out, nil
}

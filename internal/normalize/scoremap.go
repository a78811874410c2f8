package normalize

import (
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/models"
)

// ScoreMap normalizes a member/score reply into ordered pairs. Three
// wire duals reach this point: a true map reply, a flat alternating
// array (member, score, member, score, ...), and an array of two-element
// pair arrays. Order is preserved as sent; pairs whose member or score
// is absent are dropped.
func ScoreMap[T models.Datum](r protocol.Reply, mat Materializer[T]) ([]models.MemberScore[T], error) {
	r = UnwrapCluster(r)
	switch v := r.(type) {
	case protocol.Nil:
		return nil, nil
	case protocol.Map:
		out := make([]models.MemberScore[T], 0, len(v.Pairs))
		for _, pair := range v.Pairs {
			entry, ok, err := scorePair(pair.Key, pair.Value, mat)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, entry)
			}
		}
		return out, nil
	case protocol.Array:
		if len(v.Items) == 0 {
			return nil, nil
		}
		if inner, ok := v.Items[0].(protocol.Array); ok && len(inner.Items) == 2 {
			return scorePairs(v.Items, mat)
		}
		return scoreAlternating(v.Items, mat)
	default:
		return nil, shapeError("normalize score map", r.Kind())
	}
}

func scorePairs[T models.Datum](items []protocol.Reply, mat Materializer[T]) ([]models.MemberScore[T], error) {
	out := make([]models.MemberScore[T], 0, len(items))
	for _, item := range items {
		pair, ok := item.(protocol.Array)
		if !ok || len(pair.Items) != 2 {
			return nil, shapeError("normalize score pair", item.Kind())
		}
		entry, present, err := scorePair(pair.Items[0], pair.Items[1], mat)
		if err != nil {
			return nil, err
		}
		if present {
			out = append(out, entry)
		}
	}
	return out, nil
}

func scoreAlternating[T models.Datum](items []protocol.Reply, mat Materializer[T]) ([]models.MemberScore[T], error) {
	out := make([]models.MemberScore[T], 0, len(items)/2)
	for i := 0; i+1 < len(items); i += 2 {
		entry, present, err := scorePair(items[i], items[i+1], mat)
		if err != nil {
			return nil, err
		}
		if present {
			out = append(out, entry)
		}
	}
	return out, nil
}

func scorePair[T models.Datum](memberReply, scoreReply protocol.Reply, mat Materializer[T]) (models.MemberScore[T], bool, error) {
	var zero models.MemberScore[T]
	member, err := mat(memberReply)
	if err != nil {
		return zero, false, err
	}
	score, err := CoerceFloat(scoreReply)
	if err != nil {
		return zero, false, err
	}
	if member.IsNil() || score.IsNil() {
		return zero, false, nil
	}
	return models.MemberScore[T]{Member: member.Value(), Score: score.Value()}, true, nil
}

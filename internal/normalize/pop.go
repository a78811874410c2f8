package normalize

import (
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/models"
)

// Pop normalizes the reply of a multi-key pop (LMPOP, BLMPOP, ZMPOP
// style): the key a value was popped from plus the popped values. Two
// wire duals exist. The array form is [key, [values...]]; the map form
// is {key: [values...]} with a single entry. Either collapses to an
// absent result when no value was actually popped, so callers see one
// canonical "nothing popped" regardless of protocol version.
func Pop[T models.Datum](r protocol.Reply, mat Materializer[T]) (models.Result[models.KeyValues[T]], error) {
	absent := models.NilOf[models.KeyValues[T]]()
	switch v := r.(type) {
	case protocol.Nil:
		return absent, nil
	case protocol.Array:
		if len(v.Items) != 2 {
			return absent, nil
		}
		return popFrom(v.Items[0], v.Items[1], mat)
	case protocol.Map:
		if len(v.Pairs) == 0 {
			return absent, nil
		}
		return popFrom(v.Pairs[0].Key, v.Pairs[0].Value, mat)
	default:
		return absent, shapeError("normalize pop", r.Kind())
	}
}

func popFrom[T models.Datum](keyReply, valuesReply protocol.Reply, mat Materializer[T]) (models.Result[models.KeyValues[T]], error) {
	absent := models.NilOf[models.KeyValues[T]]()
	key, err := mat(keyReply)
	if err != nil {
		return absent, err
	}
	if key.IsNil() {
		return absent, nil
	}
	values, err := Values(valuesReply, mat)
	if err != nil {
		return absent, err
	}
	if len(values) == 0 {
		return absent, nil
	}
	return models.Of(models.KeyValues[T]{Key: key.Value(), Values: values}), nil
}

// ScoredPop normalizes the reply of a scored multi-key pop (ZMPOP,
// BZMPOP style), where popped values arrive as member/score pairs.
func ScoredPop[T models.Datum](r protocol.Reply, mat Materializer[T]) (models.Result[models.KeyMembers[T]], error) {
	absent := models.NilOf[models.KeyMembers[T]]()
	switch v := r.(type) {
	case protocol.Nil:
		return absent, nil
	case protocol.Array:
		if len(v.Items) != 2 {
			return absent, nil
		}
		return scoredPopFrom(v.Items[0], v.Items[1], mat)
	case protocol.Map:
		if len(v.Pairs) == 0 {
			return absent, nil
		}
		return scoredPopFrom(v.Pairs[0].Key, v.Pairs[0].Value, mat)
	default:
		return absent, shapeError("normalize scored pop", r.Kind())
	}
}

func scoredPopFrom[T models.Datum](keyReply, membersReply protocol.Reply, mat Materializer[T]) (models.Result[models.KeyMembers[T]], error) {
	absent := models.NilOf[models.KeyMembers[T]]()
	key, err := mat(keyReply)
	if err != nil {
		return absent, err
	}
	if key.IsNil() {
		return absent, nil
	}
	members, err := ScoreMap(membersReply, mat)
	if err != nil {
		return absent, err
	}
	if len(members) == 0 {
		return absent, nil
	}
	return models.Of(models.KeyMembers[T]{Key: key.Value(), Members: members}), nil
}

// ScoredEntry normalizes a ZPOPMIN/ZPOPMAX style reply: a single
// member/score pair, or absence when the set was empty. The pair may
// arrive as a two-element array or, under cluster routing, wrapped one
// level deeper.
func ScoredEntry[T models.Datum](r protocol.Reply, mat Materializer[T]) (models.Result[models.MemberScore[T]], error) {
	absent := models.NilOf[models.MemberScore[T]]()
	r = UnwrapCluster(r)
	switch v := r.(type) {
	case protocol.Nil:
		return absent, nil
	case protocol.Array:
		if len(v.Items) == 0 {
			return absent, nil
		}
		if len(v.Items) != 2 {
			return absent, shapeError("normalize scored entry", r.Kind())
		}
		member, err := mat(v.Items[0])
		if err != nil {
			return absent, err
		}
		score, err := CoerceFloat(v.Items[1])
		if err != nil {
			return absent, err
		}
		if member.IsNil() || score.IsNil() {
			return absent, nil
		}
		return models.Of(models.MemberScore[T]{Member: member.Value(), Score: score.Value()}), nil
	case protocol.Map:
		if len(v.Pairs) == 0 {
			return absent, nil
		}
		member, err := mat(v.Pairs[0].Key)
		if err != nil {
			return absent, err
		}
		score, err := CoerceFloat(v.Pairs[0].Value)
		if err != nil {
			return absent, err
		}
		if member.IsNil() || score.IsNil() {
			return absent, nil
		}
		return models.Of(models.MemberScore[T]{Member: member.Value(), Score: score.Value()}), nil
	default:
		return absent, shapeError("normalize scored entry", r.Kind())
	}
}

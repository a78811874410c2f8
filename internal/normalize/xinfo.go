package normalize

import (
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/models"
)

// infoFields flattens an XINFO-style keyed reply into lookup form. The
// keys are protocol-defined ASCII names, so they are read as raw text
// regardless of the prevailing intent; only the values carry user data.
type infoFields struct {
	keys   []string
	values []protocol.Reply
}

func newInfoFields(r protocol.Reply) (infoFields, error) {
	var fields infoFields
	r = UnwrapCluster(r)
	switch v := r.(type) {
	case protocol.Map:
		for _, pair := range v.Pairs {
			key, ok := replyText(pair.Key)
			if !ok {
				return fields, shapeError("normalize info key", pair.Key.Kind())
			}
			fields.keys = append(fields.keys, key)
			fields.values = append(fields.values, pair.Value)
		}
		return fields, nil
	case protocol.Array:
		if len(v.Items)%2 != 0 {
			return fields, shapeError("normalize info fields", r.Kind())
		}
		for i := 0; i+1 < len(v.Items); i += 2 {
			key, ok := replyText(v.Items[i])
			if !ok {
				return fields, shapeError("normalize info key", v.Items[i].Kind())
			}
			fields.keys = append(fields.keys, key)
			fields.values = append(fields.values, v.Items[i+1])
		}
		return fields, nil
	default:
		return fields, shapeError("normalize info fields", r.Kind())
	}
}

func replyText(r protocol.Reply) (string, bool) {
	switch v := r.(type) {
	case protocol.Bulk:
		return string(v.Bytes), true
	case protocol.Status:
		return v.Value, true
	default:
		return "", false
	}
}

func (f infoFields) get(name string) (protocol.Reply, bool) {
	for i, key := range f.keys {
		if key == name {
			return f.values[i], true
		}
	}
	return nil, false
}

func (f infoFields) int(name string) (int64, error) {
	r, ok := f.get(name)
	if !ok {
		return 0, nil
	}
	res, err := CoerceInt(r)
	if err != nil || res.IsNil() {
		return 0, err
	}
	return res.Value(), nil
}

func (f infoFields) optionalInt(name string) (models.Result[int64], error) {
	r, ok := f.get(name)
	if !ok {
		return models.NilOf[int64](), nil
	}
	return CoerceInt(r)
}

func infoDatum[T models.Datum](f infoFields, name string, mat Materializer[T]) (T, error) {
	var zero T
	r, ok := f.get(name)
	if !ok {
		return zero, nil
	}
	res, err := mat(r)
	if err != nil || res.IsNil() {
		return zero, err
	}
	return res.Value(), nil
}

// InfoStream normalizes an XINFO STREAM reply. The plain form carries
// first-entry and last-entry; the FULL form carries the entry list
// instead. Absent or nil entry fields stay absent in the result.
func InfoStream[T models.Datum](r protocol.Reply, mat Materializer[T]) (models.XInfoStream[T], error) {
	var zero models.XInfoStream[T]
	fields, err := newInfoFields(r)
	if err != nil {
		return zero, err
	}
	out := models.XInfoStream[T]{
		FirstEntry: models.NilOf[models.StreamEntry[T]](),
		LastEntry:  models.NilOf[models.StreamEntry[T]](),
	}
	if out.Length, err = fields.int("length"); err != nil {
		return zero, err
	}
	if out.RadixTreeKeys, err = fields.int("radix-tree-keys"); err != nil {
		return zero, err
	}
	if out.RadixTreeNodes, err = fields.int("radix-tree-nodes"); err != nil {
		return zero, err
	}
	if out.Groups, err = fields.int("groups"); err != nil {
		return zero, err
	}
	if out.LastGeneratedID, err = infoDatum(fields, "last-generated-id", mat); err != nil {
		return zero, err
	}
	if out.MaxDeletedEntryID, err = infoDatum(fields, "max-deleted-entry-id", mat); err != nil {
		return zero, err
	}
	if out.EntriesAdded, err = fields.int("entries-added"); err != nil {
		return zero, err
	}
	if out.FirstEntry, err = infoEntry(fields, "first-entry", mat); err != nil {
		return zero, err
	}
	if out.LastEntry, err = infoEntry(fields, "last-entry", mat); err != nil {
		return zero, err
	}
	if raw, ok := fields.get("entries"); ok {
		if out.Entries, err = Entries(raw, mat); err != nil {
			return zero, err
		}
	}
	return out, nil
}

func infoEntry[T models.Datum](f infoFields, name string, mat Materializer[T]) (models.Result[models.StreamEntry[T]], error) {
	absent := models.NilOf[models.StreamEntry[T]]()
	r, ok := f.get(name)
	if !ok || r.Kind() == protocol.KindNil {
		return absent, nil
	}
	entry, present, err := streamEntry(r, mat)
	if err != nil {
		return absent, err
	}
	if !present {
		return absent, nil
	}
	return models.Of(entry), nil
}

// InfoGroups normalizes an XINFO GROUPS reply: one keyed record per
// consumer group. entries-read and lag stay absent when the server does
// not report them.
func InfoGroups[T models.Datum](r protocol.Reply, mat Materializer[T]) ([]models.XInfoGroup[T], error) {
	return infoRecords(r, func(fields infoFields) (models.XInfoGroup[T], error) {
		var group models.XInfoGroup[T]
		var err error
		if group.Name, err = infoDatum(fields, "name", mat); err != nil {
			return group, err
		}
		if group.Consumers, err = fields.int("consumers"); err != nil {
			return group, err
		}
		if group.Pending, err = fields.int("pending"); err != nil {
			return group, err
		}
		if group.LastDeliveredID, err = infoDatum(fields, "last-delivered-id", mat); err != nil {
			return group, err
		}
		if group.EntriesRead, err = fields.optionalInt("entries-read"); err != nil {
			return group, err
		}
		if group.Lag, err = fields.optionalInt("lag"); err != nil {
			return group, err
		}
		return group, nil
	})
}

// InfoConsumers normalizes an XINFO CONSUMERS reply.
func InfoConsumers[T models.Datum](r protocol.Reply, mat Materializer[T]) ([]models.XInfoConsumer[T], error) {
	return infoRecords(r, func(fields infoFields) (models.XInfoConsumer[T], error) {
		var consumer models.XInfoConsumer[T]
		var err error
		if consumer.Name, err = infoDatum(fields, "name", mat); err != nil {
			return consumer, err
		}
		if consumer.Pending, err = fields.int("pending"); err != nil {
			return consumer, err
		}
		if consumer.Idle, err = fields.int("idle"); err != nil {
			return consumer, err
		}
		if consumer.Inactive, err = fields.optionalInt("inactive"); err != nil {
			return consumer, err
		}
		return consumer, nil
	})
}

func infoRecords[R any](r protocol.Reply, record func(infoFields) (R, error)) ([]R, error) {
	r = unwrapRows(r)
	switch v := r.(type) {
	case protocol.Nil:
		return nil, nil
	case protocol.Array:
		out := make([]R, 0, len(v.Items))
		for _, item := range v.Items {
			fields, err := newInfoFields(item)
			if err != nil {
				return nil, err
			}
			rec, err := record(fields)
			if err != nil {
				return nil, err
			}
			out = append(out, rec)
		}
		return out, nil
	default:
		return nil, shapeError("normalize info records", r.Kind())
	}
}

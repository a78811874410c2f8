package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/models"
)

// FieldValuePairs normalizes the field list of a stream entry. The
// server encodes it three ways depending on version and path: an array
// of [field, value] pair arrays, a flat alternating array, or a single
// pair wrapped once more than usual. All three normalize to the same
// ordered pair slice. A nil field list yields nil, which XCLAIM emits
// for entries deleted while pending.
func FieldValuePairs[T models.Datum](r protocol.Reply, mat Materializer[T]) ([]models.FieldValue[T], error) {
	switch v := r.(type) {
	case protocol.Nil:
		return nil, nil
	case protocol.Map:
		out := make([]models.FieldValue[T], 0, len(v.Pairs))
		for _, pair := range v.Pairs {
			fv, ok, err := fieldValue(pair.Key, pair.Value, mat)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, fv)
			}
		}
		return out, nil
	case protocol.Array:
		if len(v.Items) == 0 {
			return []models.FieldValue[T]{}, nil
		}
		inner, nested := v.Items[0].(protocol.Array)
		if !nested {
			return fieldsAlternating(v.Items, mat)
		}
		if len(inner.Items) == 2 {
			if _, deep := inner.Items[0].(protocol.Array); !deep {
				return fieldsPaired(v.Items, mat)
			}
		}
		// Single pair wrapped one level deeper than the paired form.
		if len(v.Items) == 1 {
			return FieldValuePairs(inner, mat)
		}
		return nil, shapeError("normalize stream fields", r.Kind())
	default:
		return nil, shapeError("normalize stream fields", r.Kind())
	}
}

func fieldsPaired[T models.Datum](items []protocol.Reply, mat Materializer[T]) ([]models.FieldValue[T], error) {
	out := make([]models.FieldValue[T], 0, len(items))
	for _, item := range items {
		pair, ok := item.(protocol.Array)
		if !ok || len(pair.Items) != 2 {
			return nil, shapeError("normalize stream field pair", item.Kind())
		}
		fv, present, err := fieldValue(pair.Items[0], pair.Items[1], mat)
		if err != nil {
			return nil, err
		}
		if present {
			out = append(out, fv)
		}
	}
	return out, nil
}

func fieldsAlternating[T models.Datum](items []protocol.Reply, mat Materializer[T]) ([]models.FieldValue[T], error) {
	if len(items)%2 != 0 {
		return nil, shapeError("normalize stream fields", protocol.KindArray)
	}
	out := make([]models.FieldValue[T], 0, len(items)/2)
	for i := 0; i+1 < len(items); i += 2 {
		fv, present, err := fieldValue(items[i], items[i+1], mat)
		if err != nil {
			return nil, err
		}
		if present {
			out = append(out, fv)
		}
	}
	return out, nil
}

func fieldValue[T models.Datum](fieldReply, valueReply protocol.Reply, mat Materializer[T]) (models.FieldValue[T], bool, error) {
	var zero models.FieldValue[T]
	field, err := mat(fieldReply)
	if err != nil {
		return zero, false, err
	}
	value, err := mat(valueReply)
	if err != nil {
		return zero, false, err
	}
	if field.IsNil() || value.IsNil() {
		return zero, false, nil
	}
	return models.FieldValue[T]{Field: field.Value(), Value: value.Value()}, true, nil
}

// Entries normalizes an array of stream entries, each [id, fields].
// Entries whose field list is nil (claimed but since deleted) are
// dropped so callers never see a phantom entry.
//
// Cluster unwrapping here is shape-aware rather than the generic rule:
// a single-entry list [[id, fields]] is itself an array whose sole
// element is a container, and the generic rule would strip the entry
// apart. An entry's first item is always a scalar id, so a sole element
// is treated as a wrap only when its own first item is a container.
func Entries[T models.Datum](r protocol.Reply, mat Materializer[T]) ([]models.StreamEntry[T], error) {
	r = unwrapRows(r)
	switch v := r.(type) {
	case protocol.Nil:
		return nil, nil
	case protocol.Array:
		out := make([]models.StreamEntry[T], 0, len(v.Items))
		for _, item := range v.Items {
			entry, ok, err := streamEntry(item, mat)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, entry)
			}
		}
		return out, nil
	default:
		return nil, shapeError("normalize stream entries", r.Kind())
	}
}

func unwrapRows(r protocol.Reply) protocol.Reply {
	arr, ok := r.(protocol.Array)
	if !ok || len(arr.Items) != 1 {
		return r
	}
	inner, ok := arr.Items[0].(protocol.Array)
	if !ok || len(inner.Items) == 0 {
		return r
	}
	if protocol.IsContainer(inner.Items[0]) {
		return inner
	}
	return r
}

func streamEntry[T models.Datum](r protocol.Reply, mat Materializer[T]) (models.StreamEntry[T], bool, error) {
	var zero models.StreamEntry[T]
	arr, ok := r.(protocol.Array)
	if !ok || len(arr.Items) != 2 {
		return zero, false, shapeError("normalize stream entry", r.Kind())
	}
	id, err := mat(arr.Items[0])
	if err != nil {
		return zero, false, err
	}
	if id.IsNil() {
		return zero, false, nil
	}
	if arr.Items[1].Kind() == protocol.KindNil {
		return zero, false, nil
	}
	fields, err := FieldValuePairs(arr.Items[1], mat)
	if err != nil {
		return zero, false, err
	}
	return models.StreamEntry[T]{ID: id.Value(), Fields: fields}, true, nil
}

// StreamsRead normalizes an XREAD / XREADGROUP reply: per-stream entry
// lists in the order the server sent them. awaitingNew marks the
// blocking "only new entries" form, whose timeout surfaces as a nil
// reply; that nil is absence, while a present reply with zero entries
// stays an empty (non-absent) result.
func StreamsRead[T models.Datum](r protocol.Reply, mat Materializer[T], awaitingNew bool) (models.Result[[]models.StreamRead[T]], error) {
	absent := models.NilOf[[]models.StreamRead[T]]()
	if r.Kind() == protocol.KindNil {
		if awaitingNew {
			return absent, nil
		}
		return models.Of([]models.StreamRead[T](nil)), nil
	}
	switch v := r.(type) {
	case protocol.Map:
		out := make([]models.StreamRead[T], 0, len(v.Pairs))
		for _, pair := range v.Pairs {
			read, err := streamRead(pair.Key, pair.Value, mat)
			if err != nil {
				return absent, err
			}
			out = append(out, read)
		}
		return models.Of(out), nil
	case protocol.Array:
		out := make([]models.StreamRead[T], 0, len(v.Items))
		for _, item := range v.Items {
			pair, ok := item.(protocol.Array)
			if !ok || len(pair.Items) != 2 {
				return absent, shapeError("normalize streams read", item.Kind())
			}
			read, err := streamRead(pair.Items[0], pair.Items[1], mat)
			if err != nil {
				return absent, err
			}
			out = append(out, read)
		}
		return models.Of(out), nil
	default:
		return absent, shapeError("normalize streams read", r.Kind())
	}
}

func streamRead[T models.Datum](nameReply, entriesReply protocol.Reply, mat Materializer[T]) (models.StreamRead[T], error) {
	var zero models.StreamRead[T]
	name, err := mat(nameReply)
	if err != nil {
		return zero, err
	}
	if name.IsNil() {
		return zero, shapeError("normalize stream name", nameReply.Kind())
	}
	entries, err := Entries(entriesReply, mat)
	if err != nil {
		return zero, err
	}
	return models.StreamRead[T]{Name: name.Value(), Entries: entries}, nil
}

// AutoClaim normalizes an XAUTOCLAIM reply: [cursor, entries] on older
// servers, [cursor, entries, deleted-ids] on 7.0 and later.
func AutoClaim[T models.Datum](r protocol.Reply, mat Materializer[T]) (models.XAutoClaim[T], error) {
	var zero models.XAutoClaim[T]
	cursor, second, third, err := autoClaimParts(r, mat)
	if err != nil {
		return zero, err
	}
	entries, err := Entries(second, mat)
	if err != nil {
		return zero, err
	}
	deleted, err := deletedIDs(third, mat)
	if err != nil {
		return zero, err
	}
	return models.XAutoClaim[T]{NextCursor: cursor, Entries: entries, Deleted: deleted}, nil
}

// AutoClaimJustID normalizes an XAUTOCLAIM ... JUSTID reply, where the
// claimed entries are bare IDs without field data.
func AutoClaimJustID[T models.Datum](r protocol.Reply, mat Materializer[T]) (models.XAutoClaimJustID[T], error) {
	var zero models.XAutoClaimJustID[T]
	cursor, second, third, err := autoClaimParts(r, mat)
	if err != nil {
		return zero, err
	}
	ids, err := Values(second, mat)
	if err != nil {
		return zero, err
	}
	deleted, err := deletedIDs(third, mat)
	if err != nil {
		return zero, err
	}
	return models.XAutoClaimJustID[T]{NextCursor: cursor, ClaimedIDs: ids, Deleted: deleted}, nil
}

func autoClaimParts[T models.Datum](r protocol.Reply, mat Materializer[T]) (T, protocol.Reply, protocol.Reply, error) {
	var zero T
	r = UnwrapCluster(r)
	arr, ok := r.(protocol.Array)
	if !ok || len(arr.Items) < 2 || len(arr.Items) > 3 {
		return zero, nil, nil, shapeError("normalize autoclaim", r.Kind())
	}
	cursor, err := mat(arr.Items[0])
	if err != nil {
		return zero, nil, nil, err
	}
	if cursor.IsNil() {
		return zero, nil, nil, shapeError("normalize autoclaim cursor", arr.Items[0].Kind())
	}
	var third protocol.Reply = protocol.Nil{}
	if len(arr.Items) == 3 {
		third = arr.Items[2]
	}
	return cursor.Value(), arr.Items[1], third, nil
}

func deletedIDs[T models.Datum](r protocol.Reply, mat Materializer[T]) ([]T, error) {
	if r == nil || r.Kind() == protocol.KindNil {
		return nil, nil
	}
	return Values(r, mat)
}

// PendingSummary normalizes the summary-form XPENDING reply:
// [count, start-id, end-id, [[consumer, count-text], ...]]. Start and
// end are absent when nothing is pending; the per-consumer count
// arrives as text and is parsed here.
func PendingSummary[T models.Datum](r protocol.Reply, mat Materializer[T]) (models.XPendingSummary[T], error) {
	var zero models.XPendingSummary[T]
	r = UnwrapCluster(r)
	arr, ok := r.(protocol.Array)
	if !ok || len(arr.Items) != 4 {
		return zero, shapeError("normalize pending summary", r.Kind())
	}
	count, err := CoerceInt(arr.Items[0])
	if err != nil {
		return zero, err
	}
	if count.IsNil() {
		return zero, shapeError("normalize pending count", arr.Items[0].Kind())
	}
	start, err := mat(arr.Items[1])
	if err != nil {
		return zero, err
	}
	end, err := mat(arr.Items[2])
	if err != nil {
		return zero, err
	}
	consumers, err := pendingConsumers(arr.Items[3], mat)
	if err != nil {
		return zero, err
	}
	return models.XPendingSummary[T]{
		Count:     count.Value(),
		StartID:   start,
		EndID:     end,
		Consumers: consumers,
	}, nil
}

func pendingConsumers[T models.Datum](r protocol.Reply, mat Materializer[T]) ([]models.ConsumerPending[T], error) {
	if r.Kind() == protocol.KindNil {
		return nil, nil
	}
	arr, ok := r.(protocol.Array)
	if !ok {
		return nil, shapeError("normalize pending consumers", r.Kind())
	}
	out := make([]models.ConsumerPending[T], 0, len(arr.Items))
	for _, item := range arr.Items {
		pair, ok := item.(protocol.Array)
		if !ok || len(pair.Items) != 2 {
			return nil, shapeError("normalize pending consumer", item.Kind())
		}
		name, err := mat(pair.Items[0])
		if err != nil {
			return nil, err
		}
		count, err := pendingCount(pair.Items[1])
		if err != nil {
			return nil, err
		}
		if name.IsNil() {
			continue
		}
		out = append(out, models.ConsumerPending[T]{Name: name.Value(), Count: count})
	}
	return out, nil
}

// pendingCount parses the per-consumer count, which the server sends as
// a bulk string rather than an integer.
func pendingCount(r protocol.Reply) (int64, error) {
	switch v := r.(type) {
	case protocol.Integer:
		return v.Value, nil
	case protocol.Bulk:
		n, err := strconv.ParseInt(strings.TrimSpace(string(v.Bytes)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("pending count %q: %w", v.Bytes, ErrMalformed)
		}
		return n, nil
	default:
		return 0, shapeError("normalize pending count", r.Kind())
	}
}

// PendingDetails normalizes the extended-form XPENDING reply: one
// [id, consumer, idle-ms, delivery-count] row per pending entry.
func PendingDetails[T models.Datum](r protocol.Reply, mat Materializer[T]) ([]models.XPendingDetail[T], error) {
	r = unwrapRows(r)
	switch v := r.(type) {
	case protocol.Nil:
		return nil, nil
	case protocol.Array:
		out := make([]models.XPendingDetail[T], 0, len(v.Items))
		for _, item := range v.Items {
			row, ok := item.(protocol.Array)
			if !ok || len(row.Items) != 4 {
				return nil, shapeError("normalize pending detail", item.Kind())
			}
			id, err := mat(row.Items[0])
			if err != nil {
				return nil, err
			}
			consumer, err := mat(row.Items[1])
			if err != nil {
				return nil, err
			}
			idle, err := CoerceInt(row.Items[2])
			if err != nil {
				return nil, err
			}
			deliveries, err := CoerceInt(row.Items[3])
			if err != nil {
				return nil, err
			}
			if id.IsNil() || consumer.IsNil() || idle.IsNil() || deliveries.IsNil() {
				continue
			}
			out = append(out, models.XPendingDetail[T]{
				ID:            id.Value(),
				Consumer:      consumer.Value(),
				IdleTime:      idle.Value(),
				DeliveryCount: deliveries.Value(),
			})
		}
		return out, nil
	default:
		return nil, shapeError("normalize pending details", r.Kind())
	}
}

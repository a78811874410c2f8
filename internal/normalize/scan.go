package normalize

import (
	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
	"github.com/valkey-io/valkey-glide-sub004/models"
)

// Scan normalizes a cursor-paged reply (SCAN, SSCAN and friends): a
// two-element array holding the next cursor and this page's elements.
// The cursor is materialized under the same intent as the elements, so
// binary-keyspace scans never force the cursor through text validation.
func Scan[T models.Datum](r protocol.Reply, mat Materializer[T]) (models.ScanResult[T], error) {
	var zero models.ScanResult[T]
	r = UnwrapCluster(r)
	arr, ok := r.(protocol.Array)
	if !ok {
		return zero, shapeError("normalize scan", r.Kind())
	}
	if len(arr.Items) != 2 {
		return zero, shapeError("normalize scan", r.Kind())
	}
	cursor, err := mat(arr.Items[0])
	if err != nil {
		return zero, err
	}
	if cursor.IsNil() {
		return zero, shapeError("normalize scan cursor", arr.Items[0].Kind())
	}
	elements, err := Values(arr.Items[1], mat)
	if err != nil {
		return zero, err
	}
	return models.ScanResult[T]{Cursor: cursor.Value(), Elements: elements}, nil
}

// ScanPairs normalizes a cursor-paged reply whose page is made of
// field/value pairs (HSCAN without NOVALUES, ZSCAN). The page arrives
// flat-alternating; pairing happens here so a page with an odd trailing
// element fails loudly instead of silently dropping it.
func ScanPairs[T models.Datum](r protocol.Reply, mat Materializer[T]) (models.ScanPairsResult[T], error) {
	var zero models.ScanPairsResult[T]
	r = UnwrapCluster(r)
	arr, ok := r.(protocol.Array)
	if !ok || len(arr.Items) != 2 {
		return zero, shapeError("normalize scan", r.Kind())
	}
	cursor, err := mat(arr.Items[0])
	if err != nil {
		return zero, err
	}
	if cursor.IsNil() {
		return zero, shapeError("normalize scan cursor", arr.Items[0].Kind())
	}
	page, ok := UnwrapCluster(arr.Items[1]).(protocol.Array)
	if !ok {
		return zero, shapeError("normalize scan page", arr.Items[1].Kind())
	}
	if len(page.Items)%2 != 0 {
		return zero, shapeError("normalize scan page", page.Kind())
	}
	fields := make([]models.FieldValue[T], 0, len(page.Items)/2)
	for i := 0; i+1 < len(page.Items); i += 2 {
		field, err := mat(page.Items[i])
		if err != nil {
			return zero, err
		}
		value, err := mat(page.Items[i+1])
		if err != nil {
			return zero, err
		}
		if field.IsNil() || value.IsNil() {
			continue
		}
		fields = append(fields, models.FieldValue[T]{Field: field.Value(), Value: value.Value()})
	}
	return models.ScanPairsResult[T]{Cursor: cursor.Value(), Fields: fields}, nil
}

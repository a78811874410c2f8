// Package models defines the canonical result shapes produced by the
// normalization layer. Every type is a plain value created per call;
// nothing here is shared or mutated after construction.
package models

// Datum constrains the two materializations a reply payload can take:
// text (validated UTF-8) or raw bytes.
type Datum interface {
	~string | ~[]byte
}

// Result wraps a value that may be absent. A nil server reply becomes a
// Result with IsNil() == true rather than a zero value, so callers can
// tell "missing" from "empty".
type Result[T any] struct {
	val   T
	isNil bool
}

// Of returns a present Result.
func Of[T any](val T) Result[T] {
	return Result[T]{val: val}
}

// NilOf returns an absent Result.
func NilOf[T any]() Result[T] {
	return Result[T]{isNil: true}
}

func (r Result[T]) IsNil() bool {
	return r.isNil
}

func (r Result[T]) Value() T {
	return r.val
}

// KeyValues is the canonical pop-family result: the key that was popped
// from and the values removed from it. Values is never empty; a pop that
// removed nothing is represented as an absent Result[KeyValues[T]].
type KeyValues[T Datum] struct {
	Key    T
	Values []T
}

// KeyMembers is the scored pop-family counterpart of KeyValues: the key
// popped from and the member/score pairs removed from it.
type KeyMembers[T Datum] struct {
	Key     T
	Members []MemberScore[T]
}

// MemberScore is one entry of a score-map result, in wire order.
type MemberScore[T Datum] struct {
	Member T
	Score  float64
}

// FieldValue is one field/value pair of a hash or stream entry, in
// original field order.
type FieldValue[T Datum] struct {
	Field T
	Value T
}

// StreamEntry is a single stream entry: its ID and its field pairs.
type StreamEntry[T Datum] struct {
	ID     T
	Fields []FieldValue[T]
}

// StreamRead is the entries read from one stream, in entry order.
// A slice of these preserves stream order for multi-stream reads.
type StreamRead[T Datum] struct {
	Name    T
	Entries []StreamEntry[T]
}

// ScanResult is the canonical scan-family result: the next cursor and
// the elements of this page. Cursor "0" means iteration is complete.
type ScanResult[T Datum] struct {
	Cursor   T
	Elements []T
}

// ScanPairsResult is the scan-family result for commands whose page is
// made of field/value pairs rather than bare elements.
type ScanPairsResult[T Datum] struct {
	Cursor T
	Fields []FieldValue[T]
}

// XAutoClaim is the canonical XAUTOCLAIM result.
type XAutoClaim[T Datum] struct {
	NextCursor T
	Entries    []StreamEntry[T]
	// Deleted holds IDs that were in the PEL but no longer exist in the
	// stream. Only servers >= 7.0 report them.
	Deleted []T
}

// XAutoClaimJustID is the canonical XAUTOCLAIM ... JUSTID result.
type XAutoClaimJustID[T Datum] struct {
	NextCursor T
	ClaimedIDs []T
	Deleted    []T
}

// XPendingSummary is the canonical summary-form XPENDING result.
type XPendingSummary[T Datum] struct {
	Count     int64
	StartID   Result[T]
	EndID     Result[T]
	Consumers []ConsumerPending[T]
}

// ConsumerPending is one consumer's pending-message count.
type ConsumerPending[T Datum] struct {
	Name  T
	Count int64
}

// XPendingDetail is one entry of the extended-form XPENDING result.
type XPendingDetail[T Datum] struct {
	ID            T
	Consumer      T
	IdleTime      int64
	DeliveryCount int64
}

// XInfoStream is the canonical XINFO STREAM result. FirstEntry and
// LastEntry are absent on an empty stream.
type XInfoStream[T Datum] struct {
	Length            int64
	RadixTreeKeys     int64
	RadixTreeNodes    int64
	Groups            int64
	LastGeneratedID   T
	MaxDeletedEntryID T
	EntriesAdded      int64
	FirstEntry        Result[StreamEntry[T]]
	LastEntry         Result[StreamEntry[T]]
	// Entries is populated only by XINFO STREAM FULL.
	Entries []StreamEntry[T]
}

// XInfoGroup is one entry of the XINFO GROUPS result.
type XInfoGroup[T Datum] struct {
	Name            T
	Consumers       int64
	Pending         int64
	LastDeliveredID T
	// EntriesRead and Lag are reported only by servers >= 7.0.
	EntriesRead Result[int64]
	Lag         Result[int64]
}

// XInfoConsumer is one entry of the XINFO CONSUMERS result.
type XInfoConsumer[T Datum] struct {
	Name    T
	Pending int64
	Idle    int64
	// Inactive is reported only by servers >= 7.2.
	Inactive Result[int64]
}

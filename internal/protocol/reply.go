package protocol

import "strconv"

// Kind identifies the shape of a decoded server reply.
type Kind int

const (
	KindNil Kind = iota
	KindInteger
	KindDouble
	KindStatus
	KindBulk
	KindArray
	KindMap
	KindSet
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInteger:
		return "integer"
	case KindDouble:
		return "double"
	case KindStatus:
		return "status"
	case KindBulk:
		return "bulk"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindSet:
		return "set"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Reply is a single decoded server reply. Values are immutable once
// produced by the decoder; normalizers only read them.
//
// The following types implement it:
//
//   - Nil
//   - Integer
//   - Double
//   - Status
//   - Bulk
//   - Array
//   - Map
//   - Set
type Reply interface {
	Kind() Kind
}

// Nil represents an absent value ($-1, *-1 or RESP3 _).
type Nil struct{}

func (Nil) Kind() Kind { return KindNil }

// Integer represents a RESP integer reply. RESP3 booleans are decoded
// to Integer 1/0 so the reply model stays protocol-version agnostic.
type Integer struct {
	Value int64
}

func (Integer) Kind() Kind { return KindInteger }

// Double represents a RESP3 double reply.
type Double struct {
	Value float64
}

func (Double) Kind() Kind { return KindDouble }

// Status represents a short simple-string token such as "OK" or "QUEUED".
type Status struct {
	Value string
}

func (Status) Kind() Kind { return KindStatus }

// Bulk represents a binary-safe string reply. Bytes may be arbitrary,
// including invalid UTF-8; nothing in this package decodes them.
type Bulk struct {
	Bytes []byte
}

func (Bulk) Kind() Kind { return KindBulk }

// Array represents an ordered collection of replies.
type Array struct {
	Items []Reply
}

func (Array) Kind() Kind { return KindArray }

// Pair is one key/value entry of a Map reply.
type Pair struct {
	Key   Reply
	Value Reply
}

// Map represents a RESP3 map reply. Pair order matches wire order.
type Map struct {
	Pairs []Pair
}

func (Map) Kind() Kind { return KindMap }

// Set represents a RESP3 set reply. Item order matches wire order.
type Set struct {
	Items []Reply
}

func (Set) Kind() Kind { return KindSet }

// IsContainer reports whether r is an Array, Map or Set reply.
func IsContainer(r Reply) bool {
	switch r.Kind() {
	case KindArray, KindMap, KindSet:
		return true
	default:
		return false
	}
}

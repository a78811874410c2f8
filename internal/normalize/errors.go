// Package normalize converts decoded server replies into the canonical
// result shapes in the models package. Every function is a pure projection
// of an immutable protocol.Reply: no state, no I/O, no retries. A call
// either returns a value or fails with one of the sentinel errors below.
package normalize

import (
	"errors"
	"fmt"

	"github.com/valkey-io/valkey-glide-sub004/internal/protocol"
)

var (
	// ErrMalformed reports a scalar field that could not be parsed under
	// the expected numeric grammar. It is never defaulted to zero/false.
	ErrMalformed = errors.New("malformed scalar value")

	// ErrInvalidUTF8 reports a text-intent read that hit non-UTF-8 bytes,
	// or replacement-character evidence of an upstream lossy decode.
	ErrInvalidUTF8 = errors.New("invalid utf-8 payload")

	// ErrShapeMismatch reports a reply whose top-level shape matches none
	// of the wire variants a resolver understands. This is a contract
	// violation, not a data condition, and is always propagated.
	ErrShapeMismatch = errors.New("unexpected reply shape")
)

func shapeError(context string, got protocol.Kind) error {
	return fmt.Errorf("%s: got %s reply: %w", context, got, ErrShapeMismatch)
}

// ErrorKind classifies a normalization error for diagnostics labels.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidUTF8):
		return "encoding"
	case errors.Is(err, ErrMalformed):
		return "parse"
	case errors.Is(err, ErrShapeMismatch):
		return "shape"
	default:
		return "other"
	}
}

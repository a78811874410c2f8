package normalize

// Diagnostics receives normalization outcomes for observability. The
// package never inspects what an implementation does with them; a nil
// or Discard sink keeps the hot path free of conditionals at call
// sites.
type Diagnostics interface {
	// ReplyNormalized records a successful normalization of the named
	// operation.
	ReplyNormalized(op string)
	// NormalizationFailed records a failed normalization and the error
	// class it failed with.
	NormalizationFailed(op, kind string)
}

// Discard is a Diagnostics sink that drops everything.
var Discard Diagnostics = discard{}

type discard struct{}

func (discard) ReplyNormalized(string)             {}
func (discard) NormalizationFailed(string, string) {}

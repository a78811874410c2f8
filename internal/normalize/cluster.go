package normalize

import "github.com/valkey-io/valkey-glide-sub004/internal/protocol"

// UnwrapCluster strips one level of single-node cluster wrapping: an
// Array of length 1 whose sole element is itself a container. Anything
// else, including a one-element array of scalars, is returned unchanged.
// The unwrap is applied at most once; nesting deeper than one level is
// the payload's own structure.
//
// The wrap is inferred from the element type because the transport
// contract carries no cluster-mode marker. The one genuinely ambiguous
// case, a true single-element array-of-arrays result, is pinned by a
// test in cluster_test.go.
func UnwrapCluster(r protocol.Reply) protocol.Reply {
	if arr, ok := r.(protocol.Array); ok && len(arr.Items) == 1 && protocol.IsContainer(arr.Items[0]) {
		return arr.Items[0]
	}
	return r
}

// unwrapScalar resolves multi-node scalar replies: in cluster mode a
// single logical integer/double/string can present as an Array holding
// one scalar per node. The first scalar-shaped element stands for the
// result; container elements are left for UnwrapCluster.
func unwrapScalar(r protocol.Reply) protocol.Reply {
	arr, ok := r.(protocol.Array)
	if !ok || len(arr.Items) == 0 {
		return r
	}
	if !protocol.IsContainer(arr.Items[0]) {
		return arr.Items[0]
	}
	return r
}

// firstMapValue reduces a keyed multi-node reply to its first value in
// iteration order. This is a documented simplification rather than an
// aggregate; callers that need per-node values use a dedicated accessor.
func firstMapValue(m protocol.Map) protocol.Reply {
	if len(m.Pairs) == 0 {
		return protocol.Nil{}
	}
	return m.Pairs[0].Value
}

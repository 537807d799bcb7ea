package skeleton

import "github.com/relexgen/tdfacore/internal/assertx"

// wrapIter yields a state's outgoing edges in order, then restarts from
// the first edge round-robin. Cover mode uses it so that every inbound
// prefix gets dispatched to some outbound edge even when there are
// fewer edges than prefixes (spec.md S9 "Wrapping iterator in cover
// mode"). end reports whether the first full pass has completed; the
// iterator keeps yielding edges after that — callers combine end with
// their own arrow-count threshold to decide when to stop.
type wrapIter struct {
	edges   []Edge
	idx     int
	wrapped bool
}

func newWrapIter(edges []Edge) *wrapIter {
	assertx.True(len(edges) > 0, "skeleton: wrapIter over a state with no outgoing edges")
	return &wrapIter{edges: edges}
}

func (it *wrapIter) end() bool { return it.wrapped }

func (it *wrapIter) current() Edge { return it.edges[it.idx] }

func (it *wrapIter) advance() {
	it.idx++
	if it.idx >= len(it.edges) {
		it.idx = 0
		it.wrapped = true
	}
}

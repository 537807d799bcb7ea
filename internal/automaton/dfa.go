package automaton

// Span is one outgoing character range of a DFA state: all bytes up to
// Ub (exclusive) go to To. Spans partition the whole alphabet from 0, the
// way re2c's own DFA transition lists do: a span's lower bound is never
// stored, only implied by the previous span's Ub (0 for the first span
// in a state) — so Spans must be in ascending Ub order with no gaps. A
// nil successor (To == NilStateID) is the implicit NULL transition the
// skeleton graph represents with its sink node.
type Span struct {
	Ub uint32
	To StateID
}

// DFAState is one state of the finished DFA the skeleton kernel consumes.
// Spans must be in ascending, non-overlapping, gap-free order (see Span)
// — the outer subset-construction driver guarantees this; the skeleton
// kernel only reads it.
type DFAState struct {
	Spans []Span
	Rule  int // accept code if accepting; RuleNone otherwise
}

// RuleNone is the sentinel accept code meaning "this state does not
// accept".
const RuleNone = -1

// DFA is a linked arena of states in source order, mirroring the
// original's intrusive linked list (spec.md S6 "Consumed").
type DFA struct {
	States []DFAState
}

// Package skeleton mirrors a finished DFA into a self-contained test
// graph — one node per DFA state plus a sink for the implicit NULL
// transition — and generates a byte corpus plus a matching result table
// that exercises every state the DFA can reach, for use as a generated
// lexer's self-test harness.
package skeleton

import "github.com/relexgen/tdfacore/internal/automaton"

// invalidPathLen marks a state whose terminating-suffix length has not
// yet been computed by the cover-mode size estimator.
const invalidPathLen = ^uint32(0)

// Edge is one outgoing transition of a skeleton State: every byte in
// Chars reaches To. Chars holds, for every span that targets To, the
// span's lower bound and, when the span is wider than one code unit, its
// upper bound too — sampling both ends of each range instead of
// enumerating it.
type Edge struct {
	To    *State
	Chars []uint32
}

// State is one node of the skeleton graph.
type State struct {
	Rule    int // automaton.RuleNone unless this state accepts
	IsFinal bool
	Edges   []Edge

	Visited int // bounded-revisit counter, balanced around estimator/generator calls

	PathLen uint32 // terminating-suffix length set by the cover-mode estimator; invalidPathLen until known
	Path    *Path  // cached terminating suffix, set once known
}

func (s *State) addEdge(to *State, ch uint32) {
	for i := range s.Edges {
		if s.Edges[i].To == to {
			s.Edges[i].Chars = append(s.Edges[i].Chars, ch)
			return
		}
	}
	s.Edges = append(s.Edges, Edge{To: to, Chars: []uint32{ch}})
}

// Graph is the skeleton mirror of one DFA.
type Graph struct {
	States []*State // States[i] mirrors dfa.States[i]; States[len(dfa.States)] is the sink
}

// Root is the skeleton node mirroring the DFA's start state.
func (g *Graph) Root() *State { return g.States[0] }

// Build constructs the skeleton graph for dfa (spec.md S4.3).
func Build(dfa *automaton.DFA) *Graph {
	n := len(dfa.States)
	g := &Graph{States: make([]*State, n+1)}
	for i := range g.States {
		g.States[i] = &State{Rule: automaton.RuleNone, PathLen: invalidPathLen}
	}
	sink := g.States[n]
	sink.IsFinal = true
	sink.PathLen = 0
	sink.Path = &Path{Rule: automaton.RuleNone}

	nodeFor := func(id automaton.StateID) *State {
		if id == automaton.NilStateID {
			return sink
		}
		return g.States[id]
	}

	for i, ds := range dfa.States {
		s := g.States[i]
		isFinal := len(ds.Spans) == 1 && ds.Spans[0].To == automaton.NilStateID
		if ds.Rule != automaton.RuleNone {
			s.Rule = ds.Rule
		}
		if isFinal {
			s.IsFinal = true
			s.PathLen = 0
			s.Path = &Path{Rule: s.Rule}
			continue
		}
		var lb uint32
		for _, sp := range ds.Spans {
			to := nodeFor(sp.To)
			s.addEdge(to, lb)
			if lb != sp.Ub-1 {
				s.addEdge(to, sp.Ub-1)
			}
			lb = sp.Ub
		}
	}
	return g
}

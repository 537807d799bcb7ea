// Package closure implements the tagged epsilon-closure kernel: the
// subset-construction step that promotes a set of NFA states to one DFA
// state while tracking submatch tag versions, detecting ambiguity, and
// emitting the tag-commit record for the transition under construction.
package closure

import (
	"sort"

	"github.com/relexgen/tdfacore/internal/automaton"
	"github.com/relexgen/tdfacore/internal/tag"
)

// Item is one (state, origin, tvers, ttran, tlook) tuple, at most one per
// NFA state within a Set.
type Item struct {
	State automaton.StateID
	// Origin indexes the item in the previous Set this one derives from.
	// It is transient — valid only until that previous Set is reused for
	// the next step (spec.md S9, "Per-item back-pointer origin").
	Origin int

	TVers tag.Handle // tag versions before the transition being built
	TTran tag.Handle // tag effects recorded on the transition
	TLook tag.Handle // tag effects gathered during epsilon-closure after the transition
}

// Set is an ordered closure: at most one item per NFA state.
type Set struct {
	Items []Item
}

// Reset empties the set for reuse, keeping the backing array.
func (s *Set) Reset() {
	s.Items = s.Items[:0]
}

func (s *Set) indexOfState(id automaton.StateID) int {
	for i := range s.Items {
		if s.Items[i].State == id {
			return i
		}
	}
	return -1
}

// Closure builds the epsilon-closure of closIn into closOut, against the
// NFA and its rule table, and returns the tag-commit record for the
// transition that produced closIn. pool and tcpool are the run's hash-
// consed vector and save-record pools; badtags is written (only to true,
// never reset to false) whenever a rule's tags turn out ambiguous;
// maxver allocates the fresh tag versions this transition needs.
//
// closOut is cleared on entry. closIn is left untouched — the caller
// still needs it afterward to read Origin indices while it builds the
// new DFA state's predecessor links.
func Closure(nfa *automaton.NFA, closIn, closOut *Set, rules []*automaton.Rule, pool *tag.Pool, tcpool *tag.TcPool, badtags []bool, maxver *tag.Counter) tag.SaveHandle {
	closOut.Reset()

	tags := pool.Buffer1()
	for i := range closIn.Items {
		expandOne(nfa, closOut, pool, &closIn.Items[i], i, closIn.Items[i].State, tags)
	}

	pruneFinalItems(nfa, closOut, rules)
	sortByRule(nfa, closOut)
	checkNondeterminism(nfa, pool, rules, closOut.Items, badtags)

	return mergeTransitionTags(pool, tcpool, closOut.Items, maxver)
}

// expandOne walks the epsilon-successors of node, descending from the
// closure item origin (at index originIdx in the previous Set), folding
// TAG states into the shared tags scratch vector, and depositing a
// candidate item into out whenever it reaches a kernel (RAN/FIN) state.
// See spec.md S4.2.1.
func expandOne(nfa *automaton.NFA, out *Set, pool *tag.Pool, origin *Item, originIdx int, node automaton.StateID, tags tag.Vector) {
	st := nfa.State(node)
	if st.Loop > 1 {
		return
	}
	st.Loop++
	defer func() { st.Loop-- }()

	switch st.Kind {
	case automaton.KindNil:
		expandOne(nfa, out, pool, origin, originIdx, st.Out, tags)

	case automaton.KindAlt:
		expandOne(nfa, out, pool, origin, originIdx, st.Out1, tags)
		expandOne(nfa, out, pool, origin, originIdx, st.Out2, tags)

	case automaton.KindTag:
		old := tags[st.TagIndex]
		if st.IsBottom {
			tags[st.TagIndex] = tag.Bottom
		} else {
			tags[st.TagIndex] = tag.Cursor
		}
		expandOne(nfa, out, pool, origin, originIdx, st.TagOut, tags)
		tags[st.TagIndex] = old

	case automaton.KindRan, automaton.KindFin:
		candidate := Item{
			State:  node,
			Origin: originIdx,
			TVers:  origin.TVers,
			TTran:  origin.TTran,
			TLook:  pool.Insert(tags),
		}
		if idx := out.indexOfState(node); idx < 0 {
			out.Items = append(out.Items, candidate)
		} else if isBetter(out.Items[idx], candidate, pool) {
			out.Items[idx] = candidate
		}
	}
}

// sortByRule orders closOut by (rule, state), the precondition for
// checkNondeterminism's grouping (spec.md S4.2.4). The state key only
// exists to make the order total — within one rule, items have distinct
// states by construction, so ties never actually occur, but SliceStable
// keeps the ordering reproducible regardless.
func sortByRule(nfa *automaton.NFA, clos *Set) {
	sort.SliceStable(clos.Items, func(i, j int) bool {
		ri := nfa.State(clos.Items[i].State).Rule
		rj := nfa.State(clos.Items[j].State).Rule
		if ri != rj {
			return ri < rj
		}
		return clos.Items[i].State < clos.Items[j].State
	})
}

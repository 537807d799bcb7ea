package closure

import "github.com/relexgen/tdfacore/internal/automaton"

// pruneFinalItems enforces "at most one FIN item per closure" (spec.md
// S4.2.3 / S3 invariant). By construction the NFA has exactly one final
// state per rule, so a closure can carry at most one final item per
// rule; the rule with the highest priority (the lowest rule index, read
// from the NFA state's Rule field; Rule.Priority is not consulted)
// shadows the rest. Shadowed
// rules get the surviving rule's source line recorded in their Shadow
// set for the front end's unreachable-rule diagnostics.
func pruneFinalItems(nfa *automaton.NFA, clos *Set, rules []*automaton.Rule) {
	nonFinal := make([]Item, 0, len(clos.Items))
	var finals []Item
	for _, it := range clos.Items {
		if nfa.State(it.State).Kind == automaton.KindFin {
			finals = append(finals, it)
		} else {
			nonFinal = append(nonFinal, it)
		}
	}
	if len(finals) == 0 {
		return
	}

	best := finals[0]
	bestRule := nfa.State(best.State).Rule
	for _, it := range finals[1:] {
		if r := nfa.State(it.State).Rule; r < bestRule {
			best = it
			bestRule = r
		}
	}

	line := rules[bestRule].Info.Loc.Line
	for _, it := range finals {
		if r := nfa.State(it.State).Rule; r != bestRule {
			rules[r].AddShadow(line)
		}
	}

	clos.Items = append(nonFinal, best)
}

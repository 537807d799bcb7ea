package closure

import (
	"github.com/relexgen/tdfacore/internal/automaton"
	"github.com/relexgen/tdfacore/internal/tag"
)

// checkNondeterminism flags a tag as ambiguous (badtags[t] = true) when
// two closure items belonging to the same rule disagree on that tag's
// transition effect. clos must already be grouped by rule (sortByRule).
// badtags is only ever set to true, never reset — ambiguity detected in
// one closure during the run taints the tag for the whole generator
// run (spec.md S4.2.5).
func checkNondeterminism(nfa *automaton.NFA, pool *tag.Pool, rules []*automaton.Rule, items []Item, badtags []bool) {
	for i := 0; i < len(items); {
		ruleIdx := nfa.State(items[i].State).Rule
		j := i + 1
		for j < len(items) && nfa.State(items[j].State).Rule == ruleIdx {
			j++
		}

		rule := rules[ruleIdx]
		ref := pool.Lookup(items[i].TTran)
		for k := i + 1; k < j; k++ {
			other := pool.Lookup(items[k].TTran)
			for t := rule.LVar; t < rule.HVar; t++ {
				if other[t] != ref[t] {
					badtags[t] = true
				}
			}
		}
		i = j
	}
}

// mergeTransitionTags allocates fresh tag versions for every tag that
// fires (as CURSOR or BOTTOM) on any item of the transition under
// construction, rewrites each item's TVers to reflect those versions,
// and returns the save record that tells the code-emission back end
// which slots to write when the transition is taken (spec.md S4.2.6).
func mergeTransitionTags(pool *tag.Pool, tcpool *tag.TcPool, items []Item, maxver *tag.Counter) tag.SaveHandle {
	ntags := pool.NTags()
	cur := pool.Buffer1()
	bot := pool.Buffer2()
	ver := pool.Buffer3()

	for t := 0; t < ntags; t++ {
		for _, it := range items {
			if pool.Lookup(it.TTran)[t] == tag.Cursor {
				cur[t] = maxver.Next()
				break
			}
		}
		for _, it := range items {
			if pool.Lookup(it.TTran)[t] == tag.Bottom {
				bot[t] = -maxver.Next()
				break
			}
		}
	}

	for idx := range items {
		it := &items[idx]
		if it.TTran == tag.ZeroTags {
			continue
		}
		tran := pool.Lookup(it.TTran)
		ver0 := pool.Lookup(it.TVers)
		for t := 0; t < ntags; t++ {
			switch tran[t] {
			case tag.Zero:
				ver[t] = ver0[t]
			case tag.Cursor:
				ver[t] = cur[t]
			case tag.Bottom:
				ver[t] = bot[t]
			}
		}
		it.TVers = pool.Insert(ver)
	}

	return tcpool.ConvToSave(bot, cur)
}

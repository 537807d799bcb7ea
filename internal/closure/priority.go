package closure

import "github.com/relexgen/tdfacore/internal/tag"

// isBetter decides which of two closure items reaching the same NFA
// state should survive: it returns true iff the new candidate wins.
// Configurations are compared tag by tag, from the highest tag index
// down to the lowest (higher-indexed tags have lower priority), and
// within one tag in the fixed order tlook, ttran, tvers. The first
// field that differs decides; ties fall through to the next field, and
// an all-tied comparison keeps the existing item. This is a direct port
// of re2c's is_better (src/ir/dfa/closure.cc) — ground truth for the
// comparison direction, since it encodes the POSIX leftmost-match
// disambiguation the rest of the pipeline depends on.
func isBetter(existing, candidate Item, pool *tag.Pool) bool {
	if existing.TLook == candidate.TLook && existing.TTran == candidate.TTran && existing.TVers == candidate.TVers {
		return false
	}

	look1, look2 := pool.Lookup(existing.TLook), pool.Lookup(candidate.TLook)
	tran1, tran2 := pool.Lookup(existing.TTran), pool.Lookup(candidate.TTran)
	vers1, vers2 := pool.Lookup(existing.TVers), pool.Lookup(candidate.TVers)

	for t := pool.NTags() - 1; t >= 0; t-- {
		if win, decided := compareField(look1[t], look2[t]); decided {
			return win
		}
		if win, decided := compareField(tran1[t], tran2[t]); decided {
			return win
		}
		if win, decided := compareField(vers1[t], vers2[t]); decided {
			return win
		}
	}

	return false
}

// compareField compares one field between the existing and candidate
// items. decided is false on a tie (continue to the next field); when
// decided is true, win reports whether the candidate should replace the
// existing item.
func compareField(existing, candidate tag.Version) (win, decided bool) {
	switch {
	case existing > candidate:
		return false, true
	case existing < candidate:
		return true, true
	default:
		return false, false
	}
}

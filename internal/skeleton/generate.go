package skeleton

import (
	"github.com/relexgen/tdfacore/internal/automaton"
	"github.com/relexgen/tdfacore/internal/diag"
)

// GeneratePaths walks the graph and returns the sampled paths, one per
// prefix that reaches a terminal state, choosing exhaustive or covering mode by
// estimated corpus size (spec.md S4.5). logger may be nil.
func (g *Graph) GeneratePaths(logger *diag.Logger) []Path {
	root := g.Root()
	prefixes := []Path{{Rule: automaton.RuleNone}}
	var results []Path

	if g.EstimateSizeAll(1, 0) == MaxSize {
		if g.EstimateSizeCover(1, 0) == MaxSize {
			logger.Warn("generating too much data")
		}
		generatePathsCover(root, prefixes, &results)
	} else {
		generatePathsAll(root, prefixes, &results)
	}
	return results
}

func generatePathsAll(s *State, prefixes []Path, results *[]Path) {
	if s.IsFinal {
		for _, p := range prefixes {
			*results = append(*results, p.update(s.Rule))
		}
		return
	}
	if s.Visited >= 2 {
		return
	}
	s.Visited++
	defer func() { s.Visited-- }()

	for _, e := range s.Edges {
		var zs []Path
		for _, p := range prefixes {
			for _, ch := range e.Chars {
				zs = append(zs, p.extend(s.Rule, ch))
			}
		}
		generatePathsAll(e.To, zs, results)
	}
}

func generatePathsCover(s *State, prefixes []Path, results *[]Path) {
	if s.Path != nil {
		for _, p := range prefixes {
			*results = append(*results, p.append(*s.Path))
		}
		return
	}
	if s.Visited >= 2 {
		return
	}
	s.Visited++
	defer func() { s.Visited-- }()

	inArrows := uint64(len(prefixes))
	var in uint64
	it := newWrapIter(s.Edges)
	for !it.end() || in < inArrows {
		e := it.current()
		var zs []Path
		for _, ch := range e.Chars {
			zs = append(zs, prefixes[in%inArrows].extend(s.Rule, ch))
			in++
		}
		generatePathsCover(e.To, zs, results)
		if s.Path == nil && e.To.Path != nil {
			suffix := Path{Rule: automaton.RuleNone}.extend(s.Rule, e.Chars[0]).append(*e.To.Path)
			s.Path = &suffix
		}
		it.advance()
	}
}

package skeleton

// MaxSize is the hard output ceiling on generated corpus size (1 GiB),
// and the sentinel both estimators return once a traversal is known to
// exceed it.
const MaxSize uint64 = 1 << 30

// EstimateSizeAll computes the exhaustive-mode corpus size: every
// outgoing edge of every reachable state is enumerated in full, so the
// result is the product of edge counts along every path (spec.md S4.4).
func (g *Graph) EstimateSizeAll(count, length uint64) uint64 {
	return estimateSizeAll(g.Root(), count, length)
}

func estimateSizeAll(s *State, count, length uint64) uint64 {
	if s.IsFinal {
		return count * length
	}
	if s.Visited >= 2 {
		return 0
	}
	s.Visited++
	defer func() { s.Visited-- }()

	var result uint64
	for _, e := range s.Edges {
		newCount := uint64(len(e.Chars)) * count
		if newCount >= MaxSize {
			return MaxSize
		}
		result += estimateSizeAll(e.To, newCount, length+1)
		if result >= MaxSize {
			return MaxSize
		}
	}
	return result
}

// EstimateSizeCover computes the covering-mode corpus size: the
// wrapping iterator dispatches every inbound prefix to some outbound
// edge, so the result grows with the number of edges rather than their
// product (spec.md S4.4, S9).
func (g *Graph) EstimateSizeCover(count, length uint64) uint64 {
	return estimateSizeCover(g.Root(), count, length)
}

func estimateSizeCover(s *State, count, length uint64) uint64 {
	if s.PathLen != invalidPathLen {
		return count * (length + uint64(s.PathLen))
	}
	if s.Visited >= 2 {
		return 0
	}
	s.Visited++
	defer func() { s.Visited-- }()

	var result uint64
	var consumed uint64
	it := newWrapIter(s.Edges)
	for !it.end() || consumed < count {
		e := it.current()
		arrows := uint64(len(e.Chars))
		consumed += arrows
		n := estimateSizeCover(e.To, arrows, length+1)
		if n != 0 && s.PathLen == invalidPathLen {
			s.PathLen = e.To.PathLen + 1
		}
		result += n
		if result > MaxSize {
			return MaxSize
		}
		it.advance()
	}
	return result
}

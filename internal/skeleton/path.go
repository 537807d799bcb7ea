package skeleton

import "github.com/relexgen/tdfacore/internal/automaton"

// Path is one sampled walk through the skeleton graph: an ordered code
// unit sequence, the length of its longest accepting prefix, and the
// rule that fired there. Rule == automaton.RuleNone doubles as "no
// accept recorded yet". Every accepting state the walk passes through
// overwrites the previous one — a generated lexer is maximal-munch (the
// Lexer contract in emit_go.go), so the match that should validate
// against this path is the last accept reached, not the first.
type Path struct {
	Chars  []uint32
	Length uint64
	Rule   int
}

// extend appends one code unit. fromRule is the rule carried by the
// state being left; if it accepts, the position before this code unit
// becomes the path's match length and fromRule becomes its rule,
// overwriting any earlier, shorter accept already recorded.
func (p Path) extend(fromRule int, ch uint32) Path {
	rule := p.Rule
	length := p.Length
	if fromRule != automaton.RuleNone {
		rule = fromRule
		length = uint64(len(p.Chars))
	}
	chars := make([]uint32, len(p.Chars)+1)
	copy(chars, p.Chars)
	chars[len(p.Chars)] = ch
	return Path{Chars: chars, Length: length, Rule: rule}
}

// update finalises the path on reaching a terminal skeleton state
// (generatePathsAll). If the terminal accepts, it overwrites any earlier
// accept recorded along the walk, since it is necessarily the longest.
func (p Path) update(rule int) Path {
	if rule != automaton.RuleNone {
		p.Length = uint64(len(p.Chars))
		p.Rule = rule
	}
	return p
}

// append concatenates a cached terminating suffix onto p
// (generatePathsCover). If the suffix records its own accept, it
// overwrites p's — the suffix always lies further into the walk, so its
// accept, when present, is the longer one.
func (p Path) append(suffix Path) Path {
	chars := make([]uint32, len(p.Chars)+len(suffix.Chars))
	copy(chars, p.Chars)
	copy(chars[len(p.Chars):], suffix.Chars)
	rule := p.Rule
	length := p.Length
	if suffix.Rule != automaton.RuleNone {
		rule = suffix.Rule
		length = uint64(len(p.Chars)) + suffix.Length
	}
	return Path{Chars: chars, Length: length, Rule: rule}
}

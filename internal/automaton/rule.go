package automaton

// Location is a source position the front end attaches to a rule, used
// only for shadow-warning diagnostics.
type Location struct {
	Line uint32
}

// Rule is the declarative record the closure kernel reads lvar/hvar/
// Info.Loc.Line from and writes Shadow into. Everything else (the parsed
// pattern, the generated action code) belongs to the front end.
type Rule struct {
	Priority int // smaller number = higher priority
	LVar     int // half-open range [LVar, HVar) of tag indices this rule owns
	HVar     int
	Accept   int // accept code handed to the code-emission back end
	Info     RuleInfo

	// Shadow collects the source lines of rules that preempted this one.
	// Written only by the closure kernel (pruneFinalItems); read by the
	// front end's diagnostics pass.
	Shadow map[uint32]struct{}
}

// RuleInfo carries the rule's source location.
type RuleInfo struct {
	Loc Location
}

// AddShadow records that this rule was shadowed at the given line.
func (r *Rule) AddShadow(line uint32) {
	if r.Shadow == nil {
		r.Shadow = make(map[uint32]struct{})
	}
	r.Shadow[line] = struct{}{}
}

// Package lexgen is the public facade over the closure and skeleton
// kernels: a Driver that an external subset-construction loop feeds NFA
// state sets through to build a tagged DFA transition by transition, and
// a self-test generator that turns a finished DFA into a byte corpus.
//
// Regex parsing, NFA construction, DFA minimisation, and user-action code
// emission are not this package's job — it is handed an *automaton.NFA
// and a finished *automaton.DFA by an external driver and does the
// closure/skeleton work in between.
package lexgen

import (
	"fmt"
	"io"

	"github.com/dave/jennifer/jen"

	"github.com/relexgen/tdfacore/internal/automaton"
	"github.com/relexgen/tdfacore/internal/closure"
	"github.com/relexgen/tdfacore/internal/diag"
	"github.com/relexgen/tdfacore/internal/skeleton"
	"github.com/relexgen/tdfacore/internal/tag"
)

// DriverOptions configures one closure Driver for the lifetime of one
// subset-construction run.
type DriverOptions struct {
	// NTags is the fixed width of every tag vector this run's rules use.
	NTags int

	// Rules are the declarative rule records the closure kernel prunes
	// shadowed finals against and reads priority/tag-ownership from.
	Rules []*automaton.Rule

	// Verbose turns on trace logging for every closure call. Tag
	// ambiguity and shadowed-rule warnings are reported regardless.
	Verbose bool
}

// Validate reports missing required fields, mirrored from the
// regex-compiler facade's Options.Validate.
func (o DriverOptions) Validate() error {
	if o.NTags < 0 {
		return fmt.Errorf("lexgen: NTags must be >= 0, got %d", o.NTags)
	}
	if len(o.Rules) == 0 {
		return fmt.Errorf("lexgen: Rules cannot be empty")
	}
	return nil
}

// Driver owns the per-run closure state an external subset-construction
// loop threads through repeated Closure calls: the tag and tag-commit
// pools, the version counter, and the per-tag ambiguity flags.
type Driver struct {
	opts    DriverOptions
	pool    *tag.Pool
	tcpool  *tag.TcPool
	counter tag.Counter
	badtags []bool
	logger  *diag.Logger
}

// NewDriver validates opts and constructs a Driver ready for Closure
// calls.
func NewDriver(opts DriverOptions) (*Driver, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("lexgen: invalid driver options: %w", err)
	}
	return &Driver{
		opts:    opts,
		pool:    tag.NewPool(opts.NTags),
		tcpool:  tag.NewTcPool(),
		badtags: make([]bool, opts.NTags),
		logger:  diag.New(opts.Verbose),
	}, nil
}

// RunID identifies this driver's diagnostics across its lifetime.
func (d *Driver) RunID() string { return d.logger.RunID().String() }

// Pool exposes the tag pool so the outer subset-construction loop can
// intern the start state's zero tag vector and look up transition
// vectors by handle.
func (d *Driver) Pool() *tag.Pool { return d.pool }

// TcPool exposes the tag-commit pool so the outer loop can resolve the
// tag.SaveHandle returned by Closure into the cursor/bottom slot lists
// the code-emission back end writes.
func (d *Driver) TcPool() *tag.TcPool { return d.tcpool }

// Closure computes the tagged epsilon-closure of closIn into closOut for
// nfa, per spec.md's closure kernel, and returns the tag-commit handle
// for the transition under construction.
func (d *Driver) Closure(nfa *automaton.NFA, closIn, closOut *closure.Set) tag.SaveHandle {
	d.logger.Log("closure: %d item(s) in, state budget %d tags", len(closIn.Items), d.opts.NTags)
	before := append([]bool(nil), d.badtags...)
	h := closure.Closure(nfa, closIn, closOut, d.opts.Rules, d.pool, d.tcpool, d.badtags, &d.counter)
	for t, bad := range d.badtags {
		if bad && !before[t] {
			d.logger.Warn("tag %d is ambiguous", t)
		}
	}
	return h
}

// BadTags reports, per tag index, whether any closure step in this run
// found that tag ambiguous (spec.md §4.2.5). The outer driver uses this
// to decide whether a tag needs multi-valued (history) storage instead
// of a single slot.
func (d *Driver) BadTags() []bool { return d.badtags }

// ReportShadows logs a warning for every rule that pruneFinalItems found
// shadowed by a higher-priority rule during this run. Call once after
// the outer subset-construction loop finishes, since Rule.Shadow
// accumulates across every closure step.
func (d *Driver) ReportShadows() {
	for _, r := range d.opts.Rules {
		for line := range r.Shadow {
			d.logger.Warn("rule at line %d is always shadowed by rule at line %d", r.Info.Loc.Line, line)
		}
	}
}

// SelfTestOptions configures self-test corpus generation from a
// finished DFA.
type SelfTestOptions struct {
	// CodeUnitWidth is the code-unit size in bytes: 1, 2, or 4.
	// GenerateSelfTest validates it and does not otherwise use it; the C
	// backend's YYCTYPE is chosen by the width passed to SelfTest.EmitC.
	CodeUnitWidth int

	// Verbose turns on trace logging for the skeleton walk. The
	// corpus-size-exceeded warning fires regardless.
	Verbose bool
}

func (o SelfTestOptions) Validate() error {
	switch o.CodeUnitWidth {
	case 1, 2, 4:
	default:
		return fmt.Errorf("lexgen: CodeUnitWidth must be 1, 2, or 4, got %d", o.CodeUnitWidth)
	}
	return nil
}

// SelfTest is the skeleton, sampled paths, and derived result table for
// one finished DFA, ready for either emission backend.
type SelfTest struct {
	Graph   *skeleton.Graph
	Paths   []skeleton.Path
	Data    []uint32
	Results []skeleton.Result
}

// GenerateSelfTest mirrors dfa into a skeleton graph, samples a corpus
// (exhaustive or covering, per spec.md §4.5's size-driven dispatch), and
// builds the serialised corpus and result table shared by both emission
// backends.
func GenerateSelfTest(dfa *automaton.DFA, opts SelfTestOptions) (*SelfTest, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("lexgen: invalid self-test options: %w", err)
	}
	logger := diag.New(opts.Verbose)
	logger.Section("skeleton")

	g := skeleton.Build(dfa)
	paths := g.GeneratePaths(logger)
	logger.Log("sampled %d path(s)", len(paths))
	data, results := skeleton.BuildCorpus(paths)

	return &SelfTest{Graph: g, Paths: paths, Data: data, Results: results}, nil
}

// EmitC writes the mandatory C-source self-test backend for st.
func (st *SelfTest) EmitC(w io.Writer, codeUnitWidth int) error {
	return skeleton.EmitC(w, st.Paths, codeUnitWidth)
}

// EmitGoHarness renders the additive Go self-test backend for st:
// newLexer constructs the jennifer expression that produces a value
// satisfying skeleton.Lexer in the generated test.
func (st *SelfTest) EmitGoHarness(packageName, testName string, newLexer func() jen.Code) *jen.File {
	return skeleton.EmitGoHarness(packageName, testName, st.Paths, newLexer)
}

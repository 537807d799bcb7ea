package skeleton

import (
	"github.com/dave/jennifer/jen"

	"github.com/relexgen/tdfacore/internal/assertx"
)

// Lexer is the interface a generated lexer must satisfy to be driven by
// the harness EmitGoHarness produces: Run scans data starting at pos and
// reports where the match ended and which rule fired. The corpus is a
// []byte, so this backend only supports single-byte code units; EmitC is
// the one to use for codeUnitWidth 2 or 4.
type Lexer interface {
	Run(data []byte, pos int) (end int, rule int)
}

// EmitGoHarness renders the same data/result payload as EmitC, but as a
// Go source file: a byte corpus, a Result table, and a table-driven test
// that drives a caller-supplied Lexer the way skeleton_emit_prolog and
// skeleton_emit_epilog drive the C main() loop in
// _examples/original_source/re2c/skeleton.cc. packageName names the
// generated file's package; testName names the emitted test function
// (without the leading "Test"). Every sampled code unit must fit in a
// byte — this backend has no wide-character counterpart to EmitC's
// YYCTYPE, so it cannot represent codeUnitWidth 2 or 4 corpora.
func EmitGoHarness(packageName, testName string, paths []Path, newLexer func() jen.Code) *jen.File {
	data, results := BuildCorpus(paths)

	f := jen.NewFile(packageName)
	f.HeaderComment("Code generated by the skeleton self-test backend. DO NOT EDIT.")

	dataLits := make([]jen.Code, len(data))
	for i, ch := range data {
		assertx.True(ch <= 0xff, "skeleton: EmitGoHarness code unit %#x does not fit in a byte", ch)
		dataLits[i] = jen.Lit(byte(ch))
	}
	f.Var().Id("skeletonData").Op("=").Index().Byte().Values(dataLits...)

	f.Type().Id("skeletonResult").Struct(
		jen.Id("EndPos").Int(),
		jen.Id("StartPos").Int(),
		jen.Id("Rule").Int(),
	)

	resultLits := make([]jen.Code, len(results))
	for i, r := range results {
		resultLits[i] = jen.Values(jen.Dict{
			jen.Id("EndPos"):   jen.Lit(int(r.EndPos)),
			jen.Id("StartPos"): jen.Lit(int(r.StartPos)),
			jen.Id("Rule"):     jen.Lit(r.Rule),
		})
	}
	f.Var().Id("skeletonResults").Op("=").Index().Id("skeletonResult").Values(resultLits...)

	f.Func().Id("Test"+testName).Params(jen.Id("t").Op("*").Qual("testing", "T")).Block(
		jen.Id("lexer").Op(":=").Add(newLexer()),
		jen.Id("start").Op(":=").Lit(0),
		jen.For(jen.Id("_, want").Op(":=").Range().Id("skeletonResults")).Block(
			jen.List(jen.Id("end"), jen.Id("rule")).Op(":=").Id("lexer").Dot("Run").Call(jen.Id("skeletonData"), jen.Id("start")),
			jen.If(jen.Id("end").Op("!=").Id("want").Dot("EndPos").Op("||").Id("rule").Op("!=").Id("want").Dot("Rule")).Block(
				jen.Id("t").Dot("Errorf").Call(jen.Lit("at %d: got (end=%d, rule=%d), want (end=%d, rule=%d)"),
					jen.Id("start"), jen.Id("end"), jen.Id("rule"), jen.Id("want").Dot("EndPos"), jen.Id("want").Dot("Rule")),
			),
			jen.Id("start").Op("=").Id("want").Dot("StartPos"),
		),
	)

	return f
}

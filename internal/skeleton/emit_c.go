package skeleton

import (
	"fmt"
	"io"

	"github.com/relexgen/tdfacore/internal/assertx"
)

// Result is one emitted path's round-trip expectation: running the
// lexer from data[startpos-len(chars):] should accept at endpos with
// rule.
type Result struct {
	EndPos   uint64
	StartPos uint64
	Rule     int
}

// BuildCorpus concatenates paths into a single code-unit array, padded
// with maxLen trailing zeros so a lexer with lookahead <= maxLen never
// reads past the end, and derives the parallel Result table (spec.md
// S4.5 "Serialisation").
func BuildCorpus(paths []Path) (data []uint32, results []Result) {
	var maxLen int
	for _, p := range paths {
		if len(p.Chars) > maxLen {
			maxLen = len(p.Chars)
		}
	}

	var pos uint64
	results = make([]Result, len(paths))
	for i, p := range paths {
		data = append(data, p.Chars...)
		results[i] = Result{
			EndPos:   pos + p.Length,
			StartPos: pos + uint64(len(p.Chars)),
			Rule:     p.Rule,
		}
		pos += uint64(len(p.Chars))
	}
	for i := 0; i < maxLen; i++ {
		data = append(data, 0)
	}
	return data, results
}

// EmitC writes the mandatory C-source self-test backend: the YY* macros
// a generated lexer's skeleton reads input through, the concatenated
// data[] corpus, and the parallel result[] table — grounded directly on
// _examples/original_source/re2c/skeleton.cc's emit_data. codeUnitWidth
// selects YYCTYPE and must be 1, 2, or 4.
func EmitC(w io.Writer, paths []Path, codeUnitWidth int) error {
	var yyctype string
	switch codeUnitWidth {
	case 1:
		yyctype = "unsigned char"
	case 2:
		yyctype = "unsigned short"
	case 4:
		yyctype = "unsigned int"
	default:
		assertx.True(false, "skeleton: codeUnitWidth must be 1, 2, or 4, got %d", codeUnitWidth)
	}

	bw := &errWriter{w: w}
	bw.printf("#define YYCTYPE %s\n", yyctype)
	bw.printf("#define YYPEEK() *cursor\n")
	bw.printf("#define YYSKIP() ++cursor\n")
	bw.printf("#define YYBACKUP() marker = cursor\n")
	bw.printf("#define YYBACKUPCTX() ctxmarker = cursor\n")
	bw.printf("#define YYRESTORE() cursor = marker\n")
	bw.printf("#define YYRESTORECTX() cursor = ctxmarker\n")
	bw.printf("#define YYLESSTHAN(n) (limit - cursor) < n\n")
	bw.printf("#define YYFILL(n) { break; }\n")

	bw.printf("// These strings correspond to paths in DFA.\n")
	bw.printf("YYCTYPE data[] =\n{\n")

	_, results := BuildCorpus(paths)

	var maxLen int
	for _, p := range paths {
		if len(p.Chars) > maxLen {
			maxLen = len(p.Chars)
		}
		bw.printf("\t")
		for _, ch := range p.Chars {
			writeCharLiteral(bw, ch, codeUnitWidth)
		}
		bw.printf("\n")
	}
	bw.printf("\t")
	for i := 0; i < maxLen; i++ {
		bw.printf("0,")
	}
	bw.printf("\n};\n")
	bw.printf("const unsigned int data_size = sizeof(data) / sizeof(YYCTYPE);\n")
	bw.printf("const unsigned int count = %d;\n", len(results))

	bw.printf("struct Result {\n")
	bw.printf("\tunsigned int endpos;\n")
	bw.printf("\tunsigned int startpos;\n")
	bw.printf("\tunsigned int rule;\n")
	bw.printf("\tResult(unsigned int e, unsigned int s, unsigned int r) : endpos(e), startpos(s), rule(r) {}\n")
	bw.printf("};\n")
	bw.printf("Result result[] =\n{\n")
	for _, r := range results {
		bw.printf("\tResult(%d,%d,%d),\n", r.EndPos, r.StartPos, r.Rule)
	}
	bw.printf("};\n")

	bw.printf("const YYCTYPE * cursor = data;\n")
	bw.printf("const YYCTYPE * marker = data;\n")
	bw.printf("const YYCTYPE * ctxmarker = data;\n")
	bw.printf("const YYCTYPE * const limit = &data[data_size - 1];\n")

	return bw.err
}

// writeCharLiteral prints one code unit as a printable C char literal
// when it fits a byte and is printable ASCII, or a hex escape otherwise.
func writeCharLiteral(bw *errWriter, ch uint32, codeUnitWidth int) {
	if codeUnitWidth == 1 && ch >= 0x20 && ch < 0x7f && ch != '\'' && ch != '\\' {
		bw.printf("'%c',", rune(ch))
		return
	}
	bw.printf("0x%x,", ch)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

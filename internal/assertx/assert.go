// Package assertx guards the invariants spec.md classifies as
// programmer errors rather than runtime error paths (tag-vector width
// mismatch, an unsupported code-unit width, a cover-mode state with no
// outgoing edges, a code unit too wide for the Go harness): they panic
// instead of returning an error. Duplicate states in a closure and
// unbalanced loop/visited counters are not asserted; the closure kernel
// and skeleton walks avoid them by construction.
package assertx

import "fmt"

// True panics with msg if cond is false.
func True(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// Package diag carries the generator's non-fatal diagnostics: verbose
// trace output plus the warnings the closure and skeleton kernels raise
// for tag ambiguity, shadowed rules, and corpus-size overflow.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// Logger provides verbose trace output and always-on warnings for one
// generator run. The zero value is not usable; construct with New. A
// nil *Logger is safe to call methods on — every method is a no-op (or,
// for Warn, falls back to stderr) so callers never need a nil check
// before logging.
type Logger struct {
	enabled bool
	out     io.Writer
	runID   uuid.UUID
}

// New creates a logger for one generator run, with a fresh run ID for
// correlating its diagnostics across the closure and skeleton kernels.
func New(enabled bool) *Logger {
	return &Logger{
		enabled: enabled,
		out:     os.Stderr,
		runID:   uuid.New(),
	}
}

// SetOutput redirects both verbose trace and warning output.
func (l *Logger) SetOutput(w io.Writer) {
	if l == nil {
		return
	}
	l.out = w
}

// RunID identifies this generator invocation in its diagnostics.
func (l *Logger) RunID() uuid.UUID {
	if l == nil {
		return uuid.Nil
	}
	return l.runID
}

// Log prints a formatted trace message if verbose mode is enabled.
func (l *Logger) Log(format string, args ...interface{}) {
	if l == nil || !l.enabled {
		return
	}
	fmt.Fprintf(l.writer(), "[lexgen %s] "+format+"\n", append([]interface{}{l.runID}, args...)...)
}

// Section prints a trace section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	if l == nil || !l.enabled {
		return
	}
	fmt.Fprintf(l.writer(), "\n[lexgen %s] === %s ===\n", l.runID, name)
}

// Warn reports a non-fatal diagnostic (tag ambiguity, shadowed rule,
// corpus-size overflow). Unlike Log, it always prints — these are the
// warnings spec.md S7 requires surfaced regardless of verbosity.
func (l *Logger) Warn(format string, args ...interface{}) {
	var out io.Writer = os.Stderr
	runID := uuid.Nil
	if l != nil {
		out = l.writer()
		runID = l.runID
	}
	fmt.Fprintf(out, "[lexgen %s] warning: "+format+"\n", append([]interface{}{runID}, args...)...)
}

// Enabled reports whether verbose trace output is on.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

func (l *Logger) writer() io.Writer {
	if l.out == nil {
		return os.Stderr
	}
	return l.out
}

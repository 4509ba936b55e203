// Package errors formats and accumulates the diagnostics produced while
// scanning, parsing, resolving and executing a Lox program. Static
// diagnostics accumulate in a Reporter whose had-error flag gates which
// pipeline stages run; runtime errors are returned as *RuntimeError values.
package errors

import (
	"fmt"

	"github.com/cwbudde/golox/internal/token"
)

// Diagnostic is a single static error (scan, parse or resolve time) tied to
// a source line and an optional location description.
type Diagnostic struct {
	Line    int
	Where   string // "", " at end", or " at 'lexeme'"
	Message string
}

// Format renders the diagnostic as "[line N] Error<Where>: Message", the
// format every static error in this interpreter uses regardless of which
// stage produced it.
func (d Diagnostic) Format() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// RuntimeError is raised by the interpreter while executing an already
// resolved, already validated program. It carries the offending token so
// the top-level driver can report the originating line.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// Format renders the runtime error as "[line N] Message", matching the
// simpler (no "Error" / WHERE clause) shape the interpreter reports.
func (e *RuntimeError) Format() string {
	return fmt.Sprintf("[line %d] %s", e.Token.Line, e.Message)
}

// NewRuntimeError constructs a RuntimeError blaming tok.
func NewRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Reporter accumulates diagnostics across the scan/parse/resolve stages and
// exposes the monotonic had-error flag the CLI driver checks before
// advancing to the next stage or exiting.
type Reporter struct {
	diagnostics []Diagnostic
}

// Report records a diagnostic at line with no WHERE clause.
func (r *Reporter) Report(line int, message string) {
	r.diagnostics = append(r.diagnostics, Diagnostic{Line: line, Message: message})
}

// ReportAt records a diagnostic for tok, using " at end" for an EOF token
// and " at '<lexeme>'" otherwise, matching how the parser blames a specific
// token for a syntax error.
func (r *Reporter) ReportAt(tok token.Token, message string) {
	where := " at '" + tok.Lexeme + "'"
	if tok.Type == token.EOF {
		where = " at end"
	}
	r.diagnostics = append(r.diagnostics, Diagnostic{Line: tok.Line, Where: where, Message: message})
}

// HadError reports whether any diagnostic has been recorded.
func (r *Reporter) HadError() bool { return len(r.diagnostics) > 0 }

// Diagnostics returns every diagnostic recorded so far, in report order.
func (r *Reporter) Diagnostics() []Diagnostic { return r.diagnostics }

// FormatAll renders every diagnostic, one per line, in report order.
func (r *Reporter) FormatAll() string {
	var out string
	for i, d := range r.diagnostics {
		if i > 0 {
			out += "\n"
		}
		out += d.Format()
	}
	return out
}

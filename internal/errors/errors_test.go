package errors

import (
	"testing"

	"github.com/cwbudde/golox/internal/token"
)

func TestDiagnosticFormatAtEnd(t *testing.T) {
	r := &Reporter{}
	r.ReportAt(token.New(token.EOF, "", nil, 3), "Expect expression.")
	want := "[line 3] Error at end: Expect expression."
	if got := r.FormatAll(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDiagnosticFormatAtLexeme(t *testing.T) {
	r := &Reporter{}
	r.ReportAt(token.New(token.SEMICOLON, ";", nil, 1), "Expect ')' after arguments.")
	want := "[line 1] Error at ';': Expect ')' after arguments."
	if got := r.FormatAll(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRuntimeErrorFormat(t *testing.T) {
	err := NewRuntimeError(token.New(token.PLUS, "+", nil, 5), "Operands must be numbers.")
	want := "[line 5] Operands must be numbers."
	if got := err.Format(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHadErrorTracksAccumulatedDiagnostics(t *testing.T) {
	r := &Reporter{}
	if r.HadError() {
		t.Fatal("fresh reporter should not have an error")
	}
	r.Report(1, "boom")
	if !r.HadError() {
		t.Fatal("reporter should have an error after Report")
	}
}

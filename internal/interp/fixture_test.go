package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/cwbudde/golox/internal/resolver"
	"github.com/gkampitakis/go-snaps/snaps"
)

const scriptTimeout = 5 * time.Second

// runScriptFile executes a whole script file and returns what it printed,
// bailing out if it runs for longer than scriptTimeout; a runaway "while"
// loop in a fixture should fail the test instead of hanging the suite.
func runScriptFile(t *testing.T, path string) string {
	t.Helper()
	source, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture %s: %v", path, err)
	}

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)

	go func() {
		reporter := &errors.Reporter{}
		tokens := lexer.New(string(source)).ScanTokens()
		statements := parser.New(tokens, reporter).ParseProgram()
		if reporter.HadError() {
			done <- result{out: reporter.FormatAll()}
			return
		}
		locals := resolver.New(reporter).Resolve(statements)
		if reporter.HadError() {
			done <- result{out: reporter.FormatAll()}
			return
		}

		var buf bytes.Buffer
		in := New(&buf)
		in.SetLocals(locals)
		runErr := in.Interpret(statements)
		out := buf.String()
		if runErr != nil {
			if rte, ok := runErr.(*errors.RuntimeError); ok {
				out += rte.Format()
			} else {
				out += runErr.Error()
			}
		}
		done <- result{out: out, err: nil}
	}()

	select {
	case r := <-done:
		return r.out
	case <-time.After(scriptTimeout):
		t.Fatalf("fixture %s did not finish within %s", path, scriptTimeout)
		return ""
	}
}

func TestScriptFixtures(t *testing.T) {
	fixtures := []string{
		"closures",
		"classes",
		"control_flow",
		"recursion",
		"runtime_error",
		"syntax_error",
	}

	for _, name := range fixtures {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join("..", "..", "testdata", "scripts", name+".lox")
			out := runScriptFile(t, path)
			snaps.MatchSnapshot(t, out)
		})
	}
}

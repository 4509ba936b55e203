// Package cmd implements the golox command-line interface: a Cobra root
// command that runs a script or drops into a REPL, plus a couple of
// debug subcommands for inspecting the lexer and parser directly.
package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/interp"
	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/cwbudde/golox/internal/resolver"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// exitCode is the process exit status to use once Execute returns. Cobra's
// own error-to-exit-status mapping doesn't distinguish usage errors (64)
// from syntax errors (65) from runtime errors (70), so the interpreter's
// own exit-code contract is tracked here instead of through a returned
// error.
var exitCode int

var rootCmd = &cobra.Command{
	Use:   "golox [script]",
	Short: "A tree-walking interpreter for Lox",
	Long: `golox is a Go implementation of Lox, the small dynamically-typed
scripting language from Crafting Interpreters.

Run with no arguments to start an interactive prompt, or pass a single
script path to execute it and exit.`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command and returns the process exit code to use.
func Execute() (int, error) {
	if err := rootCmd.Execute(); err != nil {
		return 1, err
	}
	return exitCode, nil
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

func runRoot(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		exitCode = runPrompt()
	case 1:
		exitCode = runFile(args[0])
	default:
		fmt.Fprintln(os.Stderr, "Usage: golox [script]")
		exitCode = 64
	}
	return nil
}

// runFile executes a single script file and returns the process exit code
// its outcome demands: 64 if the file cannot be read, 65 for a
// scan/parse/resolve error, 70 for an uncaught runtime error, 0 otherwise.
func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "golox: %v\n", err)
		return 64
	}
	return runSource(string(source), interp.New(os.Stdout))
}

// runPrompt is the interactive REPL. Each line is scanned, parsed,
// resolved and executed independently, but shares one Interpreter so that
// global declarations persist across lines; a syntax or runtime error on
// one line is reported but never ends the session.
func runPrompt() int {
	in := interp.New(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return 0
		}
		runSource(scanner.Text(), in)
	}
}

// runSource scans, parses, resolves and interprets one unit of source
// against the given interpreter, reporting any diagnostic to stderr in the
// "[line N] Error<where>: message" / "[line N] message" format.
func runSource(source string, in *interp.Interpreter) int {
	reporter := &errors.Reporter{}

	lx := lexer.New(source)
	tokens := lx.ScanTokens()
	for _, e := range lx.Errors() {
		reporter.Report(e.Line, e.Message)
	}

	p := parser.New(tokens, reporter)
	statements := p.ParseProgram()
	if reporter.HadError() {
		fmt.Fprintln(os.Stderr, reporter.FormatAll())
		return 65
	}

	res := resolver.New(reporter)
	locals := res.Resolve(statements)
	if reporter.HadError() {
		fmt.Fprintln(os.Stderr, reporter.FormatAll())
		return 65
	}

	in.SetLocals(locals)
	if err := in.Interpret(statements); err != nil {
		if rte, ok := err.(*errors.RuntimeError); ok {
			fmt.Fprintln(os.Stderr, rte.Format())
		} else {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		return 70
	}
	return 0
}

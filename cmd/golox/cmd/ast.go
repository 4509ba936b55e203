package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/spf13/cobra"
)

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Parse a Lox file and print its syntax tree",
	Long:  `Parse a Lox program without resolving or executing it and print its statements in a readable tree form. Useful for debugging the parser.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
}

func runAST(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	reporter := &errors.Reporter{}
	lx := lexer.New(string(data))
	tokens := lx.ScanTokens()
	for _, e := range lx.Errors() {
		reporter.Report(e.Line, e.Message)
	}

	p := parser.New(tokens, reporter)
	statements := p.ParseProgram()
	if reporter.HadError() {
		fmt.Fprintln(os.Stderr, reporter.FormatAll())
		exitCode = 65
		return nil
	}

	fmt.Print(ast.PrintProgram(statements))
	return nil
}

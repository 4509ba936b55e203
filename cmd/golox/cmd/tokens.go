package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/token"
	"github.com/spf13/cobra"
)

var (
	tokensEval     string
	tokensShowType bool
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Scan a Lox file or expression and print its tokens",
	Long: `Tokenize a Lox program and print the resulting token stream, one
token per line. Useful for debugging the lexer.

Examples:
  golox tokens script.lox
  golox tokens -e "var x = 1 + 2;"
  golox tokens --show-type script.lox`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().StringVarP(&tokensEval, "eval", "e", "", "tokenize inline source instead of reading from a file")
	tokensCmd.Flags().BoolVar(&tokensShowType, "show-type", false, "show the token type name alongside its lexeme")
}

func runTokens(cmd *cobra.Command, args []string) error {
	var source string
	switch {
	case tokensEval != "":
		source = tokensEval
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		source = string(data)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	lx := lexer.New(source)
	for _, tok := range lx.ScanTokens() {
		printToken(tok)
	}
	for _, e := range lx.Errors() {
		fmt.Fprintf(os.Stderr, "[line %d] Error: %s\n", e.Line, e.Message)
	}
	return nil
}

func printToken(tok token.Token) {
	if tokensShowType {
		fmt.Printf("[%-14s] %q\n", tok.Type, tok.Lexeme)
		return
	}
	if tok.Type == token.EOF {
		fmt.Println("EOF")
		return
	}
	fmt.Printf("%q\n", tok.Lexeme)
}

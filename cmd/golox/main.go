// Command golox runs the Lox interpreter: a bare invocation starts an
// interactive prompt, a single file argument runs that script.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/golox/cmd/golox/cmd"
)

func main() {
	code, err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(code)
}

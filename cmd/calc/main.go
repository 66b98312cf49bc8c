// Command calc evaluates keypad calculator expressions.
//
//	calc eval '2(3+4)' 'sqrt(16)'
//	calc keys 2 + 2 =
//	calc repl
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/buffer"
)

// aliases maps keys that are easy to type to keypad tokens.
var aliases = map[string]string{
	"-":         buffer.Sub,
	"−":         buffer.Sub,
	"*":         buffer.Mul,
	"x":         buffer.Mul,
	"/":         buffer.Div,
	"pi":        calc.Pi,
	"<":         buffer.Backspace,
	"bs":        buffer.Backspace,
	"backspace": buffer.Backspace,
	"c":         buffer.Clear,
	"clear":     buffer.Clear,
}

// keypad translates one word of input into keypad tokens. A word is either
// a single key, possibly an alias, or a run of single-rune keys such as
// "12.5" or "2+2=".
func keypad(word string) ([]string, error) {
	if tok, ok := key(word); ok {
		return []string{tok}, nil
	}
	toks := make([]string, 0, utf8.RuneCountInString(word))
	for _, r := range word {
		tok, ok := key(string(r))
		if !ok {
			return nil, fmt.Errorf("unknown key %q in %q", string(r), word)
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

func key(s string) (string, bool) {
	if tok, ok := aliases[strings.ToLower(s)]; ok {
		return tok, true
	}
	switch s {
	case buffer.Equals, buffer.Clear, buffer.Backspace:
		return s, true
	}
	return s, buffer.IsToken(s)
}

// press sends every key in words to the session, reporting warnings to w.
func press(s *buffer.Session, words []string, w io.Writer) error {
	for _, word := range words {
		toks, err := keypad(word)
		if err != nil {
			return err
		}
		for _, tok := range toks {
			s.Press(tok)
			if warning := s.Warning(); warning != "" {
				fmt.Fprintln(w, warnColor.Sprint("! "+warning))
			}
		}
	}
	return nil
}

func newKeysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys KEY...",
		Short: "Press keypad keys in order and print the screen",
		Long: `Press keypad keys in order and print the final expression and result.

Keys are digits, ".", "+", "–" or "-", "×" or "*", "÷" or "/", "(", ")",
"π" or "pi", sin, cos, tan, cot, sqrt, "=", "C" or "c" to clear, and "⌫",
"<" or "bs" to delete. Runs of single keys may be joined, as in "12.5".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.session(nil)
			if err := press(s, args, cmd.ErrOrStderr()); err != nil {
				return err
			}
			printScreen(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

// printScreen writes the expression and its result as a calculator shows
// them.
func printScreen(w io.Writer, s *buffer.Session) {
	text, o := s.Snapshot()
	fmt.Fprintf(w, "%s\n= %s\n", text, render(o))
}

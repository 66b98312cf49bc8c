package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zephyrtronium/calc/buffer"
)

const prompt = "calc> "

// lineReader is the part of *readline.Instance the REPL uses.
type lineReader interface {
	Readline() (string, error)
}

// scanReader reads lines without editing, for pipes and files.
type scanReader struct {
	sc *bufio.Scanner
}

func (r scanReader) Readline() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Use calc interactively as a keypad",
		Long: `Use calc interactively. Each line is a list of keys as for the keys command.

Other commands:
  history    list committed calculations
  recall N   load calculation N from the history
  quit       leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			var lines lineReader = scanReader{bufio.NewScanner(in)}
			if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				rl, err := readline.New(prompt)
				if err != nil {
					return fmt.Errorf("starting line editor: %w", err)
				}
				defer rl.Close()
				lines = rl
			}
			h := buffer.NewMemoryHistory(0)
			return repl(lines, cmd.OutOrStdout(), a.session(h), h)
		},
	}
}

// repl runs commands from lines until EOF or quit.
func repl(lines lineReader, out io.Writer, s *buffer.Session, h *buffer.MemoryHistory) error {
	for {
		line, err := lines.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		switch words[0] {
		case "quit", "exit":
			return nil
		case "history":
			for i, e := range h.Entries() {
				fmt.Fprintf(out, "%3d  %s = %s\n", i+1, e.Expr, e.Result)
			}
			continue
		case "recall":
			if len(words) != 2 {
				fmt.Fprintln(out, errorColor.Sprint("usage: recall N"))
				continue
			}
			n, err := strconv.Atoi(words[1])
			if err != nil {
				fmt.Fprintln(out, errorColor.Sprintf("bad entry number %q", words[1]))
				continue
			}
			e, ok := h.Get(n - 1)
			if !ok {
				fmt.Fprintln(out, errorColor.Sprintf("no entry %d", n))
				continue
			}
			s.Load(e.Expr)
		default:
			if err := press(s, words, out); err != nil {
				fmt.Fprintln(out, errorColor.Sprint(err.Error()))
				continue
			}
		}
		printScreen(out, s)
	}
}

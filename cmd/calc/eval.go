package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
)

func newEvalCmd(a *app) *cobra.Command {
	var explain bool
	cmd := &cobra.Command{
		Use:   "eval EXPR...",
		Short: "Evaluate each expression and print its result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev := a.evaluator()
			out := cmd.OutOrStdout()
			for _, expr := range args {
				o := ev.Evaluate(expr)
				if len(args) > 1 {
					fmt.Fprintf(out, "%s = ", expr)
				}
				fmt.Fprintln(out, render(o))
				if explain && o.Err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), faintColor.Sprint(describe(o.Err)))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&explain, "explain", "x", false, "print why an expression is incomplete or an error")
	return cmd
}

// describe gives the reason for an outcome's error, pointing at the column
// when one is known.
func describe(err error) string {
	var ie calc.InputError
	if errors.As(err, &ie) {
		return fmt.Sprintf("  at %d: %v", ie.Pos(), err)
	}
	return "  " + err.Error()
}

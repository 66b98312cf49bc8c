package main

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/buffer"
	"github.com/zephyrtronium/calc/internal/config"
	"github.com/zephyrtronium/calc/internal/logging"
)

// app is the state shared by subcommands after flags and config are loaded.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	var (
		a       app
		path    string
		prec    uint
		level   string
		strict  bool
		comma   bool
		noColor bool
	)
	root := &cobra.Command{
		Use:           "calc",
		Short:         "calc evaluates keypad calculator expressions",
		Long:          `calc evaluates arithmetic as typed on a calculator keypad, with implicit multiplication, π, and sin, cos, tan, cot and sqrt.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("prec") {
				cfg.Precision = prec
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = level
			}
			if flags.Changed("strict") {
				cfg.StrictDivision = strict
			}
			if flags.Changed("comma") {
				cfg.DecimalComma = comma
			}
			if noColor {
				cfg.Color = config.ColorNever
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid options: %w", err)
			}
			switch cfg.Color {
			case config.ColorAlways:
				color.NoColor = false
			case config.ColorNever:
				color.NoColor = true
			}
			a.cfg = cfg
			a.logger = logging.New(cfg.Level())
			a.logger.Debug("configured", "config", path, "precision", cfg.Precision, "strict", cfg.StrictDivision)
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&path, "config", "calc.yaml", "configuration file (YAML or JSON)")
	pf.UintVarP(&prec, "prec", "p", calc.DefaultPrec, "precision of calculations in bits")
	pf.StringVar(&level, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.BoolVar(&strict, "strict", false, "make division by zero an error instead of ∞")
	pf.BoolVar(&comma, "comma", false, "accept a comma as the decimal separator")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newEvalCmd(&a),
		newKeysCmd(&a),
		newReplCmd(&a),
		newVersionCmd(),
	)
	return root
}

func (a *app) evaluator() *calc.Evaluator {
	return calc.NewEvaluator(a.cfg.EvaluatorOptions()...)
}

func (a *app) session(h buffer.History) *buffer.Session {
	return buffer.NewSession(
		buffer.WithBuffer(buffer.New(a.cfg.BufferOptions()...)),
		buffer.WithHistory(h),
		buffer.WithLogger(a.logger),
	)
}

var (
	valueColor    = color.New(color.FgGreen, color.Bold)
	infiniteColor = color.New(color.FgCyan, color.Bold)
	errorColor    = color.New(color.FgRed, color.Bold)
	faintColor    = color.New(color.Faint)
	warnColor     = color.New(color.FgYellow)
)

// render colors an outcome for display.
func render(o calc.Outcome) string {
	switch o.Kind {
	case calc.Value:
		return valueColor.Sprint(o.String())
	case calc.Infinite:
		return infiniteColor.Sprint(o.String())
	case calc.Incomplete:
		return faintColor.Sprint("…")
	default:
		return errorColor.Sprint(o.String())
	}
}

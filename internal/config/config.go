package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/buffer"
	"github.com/zephyrtronium/calc/internal/logging"
)

// MaxPrecision is the largest working precision a config may request.
const MaxPrecision = 4096

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the calculator configuration, usually read from calc.yaml.
type Config struct {
	// Precision is the working precision in bits.
	Precision uint `yaml:"precision" json:"precision"`
	// StrictDivision makes x÷0 an error instead of ∞.
	StrictDivision bool `yaml:"strict_division" json:"strict_division"`
	// DecimalComma accepts "," as the decimal separator.
	DecimalComma bool          `yaml:"decimal_comma" json:"decimal_comma"`
	Limits       buffer.Limits `yaml:"limits" json:"limits"`
	LogLevel     string        `yaml:"log_level" json:"log_level"`
	// Color is one of auto, always, or never.
	Color string `yaml:"color" json:"color"`
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{
		Precision: calc.DefaultPrec,
		Limits:    buffer.DefaultLimits,
		LogLevel:  "warn",
		Color:     ColorAuto,
	}
}

// Load reads a configuration file (YAML or JSON). Fields missing from the
// file keep their defaults. A missing file is the default configuration.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every field is usable.
func (c Config) Validate() error {
	var errs []error
	if c.Precision < 1 || c.Precision > MaxPrecision {
		errs = append(errs, fmt.Errorf("precision %d not in 1..%d", c.Precision, MaxPrecision))
	}
	if c.Limits.OperandDigits < 1 {
		errs = append(errs, fmt.Errorf("limits.operand_digits must be at least 1, got %d", c.Limits.OperandDigits))
	}
	if c.Limits.FractionDigits < 1 {
		errs = append(errs, fmt.Errorf("limits.fraction_digits must be at least 1, got %d", c.Limits.FractionDigits))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("color %q is not auto, always, or never", c.Color))
	}
	return errors.Join(errs...)
}

// Level returns the configured log level. It assumes the config is valid.
func (c Config) Level() slog.Level {
	l, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return l
}

// EvaluatorOptions returns the options for calc.NewEvaluator.
func (c Config) EvaluatorOptions() []calc.Option {
	opts := []calc.Option{calc.Prec(c.Precision)}
	if c.StrictDivision {
		opts = append(opts, calc.StrictDivision())
	}
	if c.DecimalComma {
		opts = append(opts, calc.DecimalComma())
	}
	return opts
}

// BufferOptions returns the options for buffer.New, including an evaluator
// built from the config.
func (c Config) BufferOptions() []buffer.Option {
	return []buffer.Option{
		buffer.WithLimits(c.Limits),
		buffer.WithEvaluator(calc.NewEvaluator(c.EvaluatorOptions()...)),
	}
}

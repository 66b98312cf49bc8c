// Package buffer implements the text of a keypad calculator being composed
// key by key. A Buffer applies keypad tokens to an expression, guarding the
// limits on how long a number may grow, and a Session ties a Buffer to an
// evaluator so that the displayed result follows every edit.
package buffer

import (
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/calc"
)

// Empty is the canonical empty expression.
const Empty = "0"

// Keypad tokens other than digits, operators, brackets, π and function
// names.
const (
	Point     = "."
	Equals    = "="
	Clear     = "C"
	Backspace = "⌫"
)

// Operator tokens as they appear on the keypad.
const (
	Add = "+"
	Sub = "–"
	Mul = "×"
	Div = "÷"
)

// Limits are the guards on the current operand.
type Limits struct {
	// OperandDigits is the maximum length of the current operand, counting
	// its decimal point. A digit beyond it is rejected.
	OperandDigits int `yaml:"operand_digits" json:"operand_digits"`
	// FractionDigits is the number of digits after the point at which
	// pressing the point again is rejected.
	FractionDigits int `yaml:"fraction_digits" json:"fraction_digits"`
}

// DefaultLimits are the limits of a Buffer with no options.
var DefaultLimits = Limits{OperandDigits: 15, FractionDigits: 10}

// Buffer applies keypad tokens to expression text. A Buffer holds no text
// of its own; every method takes the current text and returns the new one,
// so it is safe for concurrent use.
type Buffer struct {
	limits Limits
	eval   *calc.Evaluator
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithLimits sets the operand limits.
func WithLimits(l Limits) Option {
	return func(b *Buffer) {
		b.limits = l
	}
}

// WithEvaluator sets the evaluator used to commit results on "=".
func WithEvaluator(ev *calc.Evaluator) Option {
	return func(b *Buffer) {
		b.eval = ev
	}
}

// New creates a Buffer.
func New(opts ...Option) *Buffer {
	b := Buffer{limits: DefaultLimits}
	for _, opt := range opts {
		opt(&b)
	}
	if b.eval == nil {
		b.eval = calc.NewEvaluator()
	}
	return &b
}

// Evaluator returns the evaluator the buffer commits results with.
func (b *Buffer) Evaluator() *calc.Evaluator {
	return b.eval
}

// Apply applies one keypad token to text and returns the new text. If the
// token would break a limit, the result is text unchanged along with a
// *RejectedInputError. Unknown tokens return ErrUnknownToken.
func (b *Buffer) Apply(text, token string) (string, error) {
	switch {
	case token == Clear:
		return b.Clear(), nil
	case token == Backspace:
		return b.Backspace(text), nil
	case token == Equals:
		return b.Commit(text, b.eval.Evaluate(text)), nil
	case IsToken(token):
		return b.Append(text, token)
	default:
		return text, &UnknownTokenError{Token: token}
	}
}

// IsToken reports whether token is one that Append accepts.
func IsToken(token string) bool {
	switch token {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", Point,
		Add, Sub, Mul, Div, "(", ")", calc.Pi:
		return true
	}
	return isFunc(token)
}

func isFunc(token string) bool {
	for _, name := range calc.Functions {
		if token == name {
			return true
		}
	}
	return false
}

// Append appends a token to text. A digit is rejected if the current operand
// has already reached the operand limit, and a point is rejected if the
// current operand already has as many fractional digits as the fraction
// limit allows. When text is the canonical empty expression, any token but a
// point replaces it.
func (b *Buffer) Append(text, token string) (string, error) {
	op := Operand(text)
	switch {
	case len(token) == 1 && '0' <= token[0] && token[0] <= '9':
		if len(op) >= b.limits.OperandDigits {
			return text, &RejectedInputError{Token: token, Reason: ReasonOperandDigits}
		}
	case token == Point:
		if _, frac, ok := strings.Cut(op, Point); ok && len(frac) >= b.limits.FractionDigits {
			return text, &RejectedInputError{Token: token, Reason: ReasonFractionDigits}
		}
	}
	if text == Empty && token != Point {
		return token, nil
	}
	return text + token, nil
}

// Backspace removes the last token of text. A trailing function name goes
// all at once; otherwise the last character goes. Removing everything leaves
// the canonical empty expression.
func (b *Buffer) Backspace(text string) string {
	for _, name := range calc.Functions {
		if strings.HasSuffix(text, name) {
			return orEmpty(text[:len(text)-len(name)])
		}
	}
	_, sz := utf8.DecodeLastRuneInString(text)
	return orEmpty(text[:len(text)-sz])
}

// Clear returns the canonical empty expression.
func (b *Buffer) Clear() string {
	return Empty
}

// Commit returns the text that should replace text after "=" given its
// outcome. Only a finite value replaces the expression; otherwise text is
// returned unchanged.
func (b *Buffer) Commit(text string, outcome calc.Outcome) string {
	if outcome.Kind != calc.Value {
		return text
	}
	return outcome.String()
}

// Operand returns the current operand of text: the run of digits and points
// at its end.
func Operand(text string) string {
	i := strings.LastIndexFunc(text, func(r rune) bool {
		return !('0' <= r && r <= '9' || r == '.')
	})
	return text[i+1:]
}

func orEmpty(text string) string {
	if text == "" {
		return Empty
	}
	return text
}

package calc

import (
	"errors"
	"math"
	"math/big"
	"strconv"
)

// Kind classifies the outcome of evaluating an expression.
type Kind int8

const (
	// Value is a finite result.
	Value Kind = iota
	// Infinite is a result that diverges, e.g. 5÷0. The sign is kept in
	// Outcome.Value but is not displayed.
	Infinite
	// Incomplete means the expression is still being typed. It is not an
	// error and displays as nothing.
	Incomplete
	// Error means the expression is malformed or its value is undefined.
	Error
)

func (k Kind) String() string {
	switch k {
	case Value:
		return "Value"
	case Infinite:
		return "Infinite"
	case Incomplete:
		return "Incomplete"
	case Error:
		return "Error"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Outcome is the result of evaluating an expression.
type Outcome struct {
	Kind Kind
	// Value is the result if Kind is Value, or ±Inf if Kind is Infinite.
	Value float64
	// Err is the reason if Kind is Incomplete or Error. It matches
	// ErrIncomplete, ErrMalformed, or ErrUndefined.
	Err error
}

// String renders the outcome for display: the canonical decimal form of a
// value, "∞", the empty string for an incomplete expression, or "Error".
func (o Outcome) String() string {
	switch o.Kind {
	case Value:
		return FormatValue(o.Value)
	case Infinite:
		return "∞"
	case Incomplete:
		return ""
	default:
		return "Error"
	}
}

// Evaluator evaluates expressions with a fixed set of options. It holds no
// state between evaluations, so it is safe for concurrent use.
type Evaluator struct {
	opts  []Option
	proto *Context
}

// NewEvaluator creates an evaluator using the given parsing and evaluation
// options.
func NewEvaluator(opts ...Option) *Evaluator {
	return &Evaluator{
		opts:  append([]Option(nil), opts...),
		proto: NewContext(opts...),
	}
}

// Evaluate normalizes, parses, and evaluates an expression. It never panics;
// every input produces one of the four kinds of Outcome.
func (ev *Evaluator) Evaluate(text string) Outcome {
	e, err := Parse(text, ev.opts...)
	if err != nil {
		return failed(err)
	}
	ctx := ev.proto.Clone()
	r := ctx.Eval(e)
	if r == nil {
		return failed(ctx.Err())
	}
	return classify(r)
}

var defaultEvaluator = NewEvaluator()

// Evaluate evaluates an expression with the default options.
func Evaluate(text string) Outcome {
	return defaultEvaluator.Evaluate(text)
}

func failed(err error) Outcome {
	if errors.Is(err, ErrIncomplete) {
		return Outcome{Kind: Incomplete, Err: err}
	}
	return Outcome{Kind: Error, Err: err}
}

func classify(r *big.Float) Outcome {
	f, _ := r.Float64()
	if math.IsInf(f, 0) {
		return Outcome{Kind: Infinite, Value: f}
	}
	if f == 0 {
		// Drop the sign of a negative zero.
		f = 0
	}
	return Outcome{Kind: Value, Value: f}
}

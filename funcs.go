package calc

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals.
type Func interface {
	// Call evaluates the function at x. The function must set r to its result
	// and should not use the value of r otherwise. Call may modify x. If x is
	// outside the function's domain, Call returns a *DomainError.
	Call(ctx *Context, x, r *big.Float) error
}

var globalfuncs = map[string]Func{
	"sqrt": Monadic((*big.Float).Sqrt),

	// The standard library has no trig on big.Float, nor does bigfloat, so
	// these are computed in double precision.
	"sin": Float64(math.Sin),
	"cos": Float64(math.Cos),
	"tan": Float64(math.Tan),
	"cot": Float64(func(x float64) float64 { return 1 / math.Tan(x) }),
}

// constants are computed to the precision of their output.
var constants = map[string]func(out *big.Float) *big.Float{
	Pi: bigfloat.Pi,
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, x, r *big.Float) (err error) {
	in := new(big.Float).Copy(x)
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		e, ok := p.(error)
		if !ok {
			panic(p)
		}
		var nan big.ErrNaN
		if !errors.As(e, &nan) {
			panic(p)
		}
		err = &DomainError{X: in}
	}()
	r.SetPrec(ctx.Prec())
	m.f(r, x)
	return nil
}

// Monadic wraps a function of one variable into a Func. f must set out to its
// result, to the precision of out; its return value is always ignored. If f is
// called on an argument outside f's domain, it should panic with an error of
// type big.ErrNaN, or that unwraps to it.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type float64fn struct {
	f func(float64) float64
}

func (m float64fn) Call(ctx *Context, x, r *big.Float) error {
	in, _ := x.Float64()
	out := m.f(in)
	if math.IsNaN(out) {
		return &DomainError{X: new(big.Float).Copy(x)}
	}
	r.SetPrec(ctx.Prec()).SetFloat64(out)
	return nil
}

// Float64 wraps a function of a float64 into a Func. The argument is rounded
// to a float64 regardless of the context precision. A NaN result means the
// argument is outside the function's domain; infinite results are allowed.
func Float64(f func(float64) float64) Func {
	return float64fn{f}
}

// DomainError is an error returned when a function or operator is applied to
// arguments outside its domain. It matches ErrUndefined.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := "outside domain"
	if err.X != nil {
		r = err.X.Text('g', 10) + " " + r
	}
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

// Is reports whether target is ErrUndefined.
func (err *DomainError) Is(target error) bool {
	return target == ErrUndefined
}

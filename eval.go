package calc

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently; use Clone to get one per goroutine.
type Context struct {
	stack  []*big.Float
	nums   map[string]*big.Float
	prec   uint
	strict bool
	err    error
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is DefaultPrec. Options that only affect parsing are ignored.
func NewContext(opts ...Option) *Context {
	ctx := Context{nums: make(map[string]*big.Float), prec: DefaultPrec}
	return ctx.Clone(opts...)
}

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. an argument to a function is outside the function's domain, then the
// result is nil and ctx.Err returns the error. A result may be infinite.
func (ctx *Context) Eval(e *Expr) *big.Float {
	switch len(ctx.stack) {
	case 0: // do nothing
	case 1:
		ctx.stack[0] = new(big.Float).SetPrec(ctx.prec)
		ctx.stack = ctx.stack[:0]
	default:
		panic("calc: Eval during Eval")
	}
	err := ctx.run(e.n)
	ctx.err = err
	if err != nil {
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// run evaluates n, converting any NaN that escapes an operation into a domain
// error.
func (ctx *Context) run(n *node) (err error) {
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
		err = &DomainError{}
	}()
	return n.eval(ctx)
}

// Result returns the result obtained after evaluating an expression. Panics if
// ctx has not been used to evaluate an expression. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("calc: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("calc: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
}

// Err returns the error that occurred while evaluating the last expression
// with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no Result and is safe to use to evaluate an expression.
func (ctx *Context) Clone(opts ...Option) *Context {
	n := Context{
		stack:  make([]*big.Float, 0, cap(ctx.stack)),
		nums:   make(map[string]*big.Float, len(ctx.nums)),
		prec:   ctx.prec,
		strict: ctx.strict,
	}
	// First, check for a precision setting. Loop backward so we apply the last
	// precision.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			break
		}
	}
	// Copy numbers only if the new precision is no higher than the old, so
	// that we always use the precision we need.
	if n.prec <= ctx.prec {
		for k, v := range ctx.nums {
			n.nums[k] = new(big.Float).SetPrec(n.prec).Set(v)
		}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt.(type) {
		case strictdivopt:
			n.strict = true
		case precopt, commaopt:
			// Already done, or for parsing. Do nothing.
		default:
			panic("calc: unknown option type")
		}
	}
	return &n
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text.
func (ctx *Context) num(s string) (*big.Float, error) {
	if r := ctx.nums[s]; r != nil {
		return r, nil
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	switch {
	case err == nil:
		narrow(r)
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		r = new(big.Float).SetPrec(ctx.prec)
		if !strings.ContainsAny(s, "-") {
			r.SetInf(false)
		}
	default:
		return nil, &LexError{Text: s, Kind: "number"}
	}
	ctx.nums[s] = r
	return r, nil
}

// Limits of float64 exponents in the form returned by big.Float.MantExp.
const (
	maxExp = 1024
	minExp = -1073
)

// narrow limits x to the range of a float64. Magnitudes too large become
// infinite, and magnitudes too small become zero.
func narrow(x *big.Float) {
	if x.IsInf() || x.Sign() == 0 {
		return
	}
	switch exp := x.MantExp(nil); {
	case exp > maxExp:
		x.SetInf(x.Signbit())
	case exp < minExp:
		neg := x.Signbit()
		x.SetInt64(0)
		if neg {
			x.Neg(x)
		}
	}
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	switch n.kind {
	case nodeNum:
		v, err := ctx.num(n.name)
		if err != nil {
			return err
		}
		ctx.push().Set(v)
	case nodeConst:
		f := constants[n.name]
		if f == nil {
			panic("calc: unknown constant " + n.name)
		}
		f(ctx.push())
	case nodeCall:
		r := ctx.push()
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		x := ctx.pop()
		if err := n.fn.Call(ctx, x, r); err != nil {
			var de *DomainError
			if errors.As(err, &de) && de.Func == "" {
				de.Func = n.name
			}
			return err
		}
		narrow(r)
	case nodeNeg:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		v.Neg(v)
	case nodeAdd:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		// ∞ + -∞ has no value.
		if l.IsInf() && r.IsInf() && l.Signbit() != r.Signbit() {
			return &DomainError{X: new(big.Float).Copy(r), Func: "+"}
		}
		l.Add(l, r)
		narrow(l)
	case nodeSub:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		if l.IsInf() && r.IsInf() && l.Signbit() == r.Signbit() {
			return &DomainError{X: new(big.Float).Copy(r), Func: "–"}
		}
		l.Sub(l, r)
		narrow(l)
	case nodeMul:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		if l.IsInf() && r.Sign() == 0 || r.IsInf() && l.Sign() == 0 {
			return &DomainError{X: new(big.Float).Copy(r), Func: "×"}
		}
		l.Mul(l, r)
		narrow(l)
	case nodeDiv:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		// Guard against invalid divisions, 0/0 or inf/inf, and against any
		// division by zero when it is strict.
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() || ctx.strict && r.Sign() == 0 {
			return &DomainError{X: new(big.Float).Copy(r), Func: "÷"}
		}
		l.Quo(l, r)
		narrow(l)
	default:
		panic("calc: invalid AST node " + n.kind.String())
	}
	return nil
}

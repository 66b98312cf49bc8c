package calc

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum, nodeConst:
		if n.name != m.name {
			return n, m
		}
	case nodeCall:
		if n.name != m.name {
			return n, m
		}
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	case nodeNeg:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		if b := binop(string(r)); b.op == nodeNone {
			t.Errorf("no binary operator for %c", r)
		}
	}
	if u := unop("-"); u.op != nodeNeg {
		t.Errorf("- is not negation")
	}
	for _, r := range "+*/" {
		if u := unop(string(r)); u.op != nodeNone {
			t.Errorf("%c is unary", r)
		}
	}
}

func TestTermPrecMatchesMultiplication(t *testing.T) {
	if p := binop("*").prec; p != termprec.prec {
		t.Errorf("terms have prec %d but * has prec %d", termprec.prec, p)
	}
	if p := binop("×").prec; p != termprec.prec {
		t.Errorf("terms have prec %d but × has prec %d", termprec.prec, p)
	}
}

func TestUnaryBindsTightest(t *testing.T) {
	for _, r := range Operators {
		if b := binop(string(r)); b.moreBinding(unaryprec) {
			t.Errorf("%c binds more than negation", r)
		}
	}
}

func TestParseTrees(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"paren", "(2)", "2"},
		{"multi", "(((2)))", "2"},

		{"neg", "-2", "(-(2))"},
		{"add", "1+2", "((1)+(2))"},
		{"sub", "1-2", "((1)-(2))"},
		{"mul", "1*2", "((1)*(2))"},
		{"div", "1/2", "((1)/(2))"},
		{"altsub", "1–2", "1-2"},
		{"altneg", "–2", "-2"},
		{"minus", "1−2", "1-2"},
		{"altmul", "1×2", "1*2"},
		{"altdiv", "1÷2", "1/2"},
		{"terms", "1 2", "1*2"},
		{"parenterms", "1(2)", "1*2"},
		{"parenparen", "(1)(2)", "1*2"},
		{"parennum", "(1)2", "1*2"},
		{"pi", "2π", "2*π"},
		{"pinum", "π2", "π*2"},
		{"pipi", "ππ", "π*π"},
		{"implicit", "2(3+4)", "2*(3+4)"},

		{"call-bare", "sin 1", "sin(1)"},
		{"call-nospace", "sin1", "sin(1)"},
		{"call-add", "sin1+2", "sin(1)+2"},
		{"call-mul", "sin2×3", "sin(2)*3"},
		{"call-div", "cos2÷3", "cos(2)/3"},
		{"call-neg", "sin-1", "sin(-1)"},
		{"call-negadd", "sqrt-4+1", "sqrt(-4)+1"},
		{"call-call", "sin cos 1", "sin(cos(1))"},
		{"call-pi", "cosπ", "cos(π)"},
		{"call-implicit", "2sin(1)", "2*sin(1)"},
		{"call-parens", "sin(1)(2)", "sin(1)*2"},
		{"call-expr", "sqrt(9+16)", "sqrt((9+16))"},
		{"call-terms", "sin(1) 2 3", "sin(1)*(2*3)"},

		{"add4", "1+2+3+4", "((1+2)+3)+4"},
		{"sub4", "1-2-3-4", "((1-2)-3)-4"},
		{"mul4", "1*2*3*4", "((1*2)*3)*4"},
		{"div4", "1/2/3/4", "((1/2)/3)/4"},
		{"terms4", "1 2 3 4", "1*(2*(3*4))"},

		{"desc", "2*3+4", "(2*3)+4"},
		{"asc", "2+3*4", "2+(3*4)"},
		{"divmul", "8/2*4", "(8/2)*4"},
		{"negneg", "--1", "-(-1)"},
		{"negsub", "-1-1", "(-1)-1"},
		{"negmul", "-2*3", "(-2)*3"},
		{"mulneg", "2*-3", "2*(-3)"},
		{"subneg", "2--3", "2-(-3)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.a)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.a, err)
			}
			b, err := Parse(c.b)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.b, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.a, a.n, d, c.b, b.n, e)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	cases := []struct {
		name string
		src  string
		n    *node
	}{
		{
			name: "call",
			src:  "sqrt(16)",
			n: &node{
				kind: nodeCall,
				name: "sqrt",
				left: &node{kind: nodeNum, name: "16"},
			},
		},
		{
			name: "implicit-call",
			src:  "2sin π",
			n: &node{
				kind: nodeMul,
				left: &node{kind: nodeNum, name: "2"},
				right: &node{
					kind: nodeCall,
					name: "sin",
					left: &node{kind: nodeConst, name: "π"},
				},
			},
		},
		{
			name: "neg",
			src:  "–1e-3",
			n: &node{
				kind: nodeNeg,
				left: &node{kind: nodeNum, name: "1e-3"},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("failed to parse %q: %v", c.src, err)
			}
			d, e := a.n.diff(c.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST: %q parses %v has %v; want %v has %v", c.src, a.n, d, c.n, e)
			}
		})
	}
}

func TestParseBindsFuncs(t *testing.T) {
	a, err := Parse("sin cos tan cot sqrt 1")
	if err != nil {
		t.Fatal(err)
	}
	for n := a.n; n != nil; n = n.left {
		if n.kind == nodeCall && n.fn == nil {
			t.Errorf("call to %s has no function", n.name)
		}
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"paren", "(2)"},
		{"neg", "-2"},
		{"altneg", "–2"},
		{"add", "1+2"},
		{"sub", "1-2"},
		{"mul", "1*2"},
		{"div", "1/2"},
		{"altmul", "1×2"},
		{"altdiv", "1÷2"},
		{"terms", "1 2"},
		{"parenterms", "1(2)"},
		{"pi", "2π"},
		{"call", "sin 1"},
		{"callexpr", "sqrt(9+16)"},
		{"callimplicit", "2sin(1)3"},
		{"exp", "1.5e-7×2"},

		{"add4", "1+2+3+4"},
		{"sub4", "1-2-3-4"},
		{"terms4", "1 2 3 4"},
		{"desc", "2*3+4"},
		{"asc", "2+3*4"},
		{"negneg", "--1"},
		{"negsub", "-1-1"},
		{"parentermsplus", "2(3+4)"},
		{"mulparenterms", "2*3(4*5)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			s := a.String()
			b, err := Parse(s)
			if err != nil {
				t.Fatalf("%q -> %q failed to parse: %v", c.src, s, err)
			}
			d, e := a.n.diff(b.n)
			if d != nil || e != nil {
				t.Errorf("mismatched AST:\n\t%q parses %v has %v\n\t%q parses %v has %v", c.src, a.n, d, s, b.n, e)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  InputError
		cat  error
		res  []string
	}{
		{"empty", "", new(EmptyExpressionError), ErrIncomplete, []string{`(?i)\bno\b.*\bexpression\b`}},
		{"emptyparen", "()", new(EmptyExpressionError), ErrMalformed, []string{`(?i)\bno\b.*\bexpression\b`, `\)`}},
		{"emptyterm", "2()", new(EmptyExpressionError), ErrMalformed, []string{`\)`}},
		{"emptyoperand", "2*", new(EmptyExpressionError), ErrIncomplete, []string{`(?i)\bend\b`}},
		{"emptyunary", "2*-", new(EmptyExpressionError), ErrIncomplete, []string{`(?i)\bend\b`}},
		{"trailing", "1+", new(EmptyExpressionError), ErrIncomplete, nil},
		{"opparen", "(2*)", new(EmptyExpressionError), ErrMalformed, []string{`\)`}},
		{"addclose", "1+)", new(EmptyExpressionError), ErrMalformed, []string{`\)`}},
		{"left", "(2", new(BracketError), ErrIncomplete, []string{`(?i)\bbracket\b`, `\(`}},
		{"leftnested", "((2)+(3", new(BracketError), ErrIncomplete, []string{`(?i)\bbracket\b`}},
		{"right", "2)", new(BracketError), ErrMalformed, []string{`(?i)\bbracket\b`, `\)`}},
		{"rightafter", "(2))", new(BracketError), ErrMalformed, []string{`\)`}},
		{"nonunary", "*2", new(OperatorError), ErrIncomplete, []string{`(?i)\boperand\b`, `\*`}},
		{"twoops", "2*/3", new(OperatorError), ErrIncomplete, []string{`/`}},
		{"plusunary", "+2", new(OperatorError), ErrIncomplete, []string{`\+`}},
		{"haskell", "(+)", new(OperatorError), ErrIncomplete, nil},
		{"call-eof", "sqrt", new(CallError), ErrIncomplete, []string{`\bsqrt\b`}},
		{"call-after", "2+sin", new(CallError), ErrIncomplete, []string{`\bsin\b`}},
		{"call-close", "(cos)", new(CallError), ErrMalformed, []string{`\bcos\b`, `\)`}},
		{"call-parens", "tan()", new(EmptyExpressionError), ErrMalformed, []string{`\)`}},
		{"call-open", "cot(", new(EmptyExpressionError), ErrIncomplete, nil},
		{"call-unclosed", "sin(1", new(BracketError), ErrIncomplete, nil},
		{"lexer", "2×sqrt(-$)", new(LexError), ErrMalformed, []string{`\$`}},
		{"point", "1+.", new(LexError), ErrIncomplete, nil},
		{"points", "1.2.3", new(LexError), ErrMalformed, nil},
		{"letters", "2x", new(LexError), ErrMalformed, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if a != nil {
				t.Errorf("%q parsed non-nil to %v", c.src, a.n)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("wrong error type from %q: want %T, got %T (%v)", c.src, c.err, err, err)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, c.cat) {
				t.Errorf("error %v from %q is not %v", err, c.src, c.cat)
			}
			for _, other := range []error{ErrIncomplete, ErrMalformed, ErrUndefined} {
				if other != c.cat && errors.Is(err, other) {
					t.Errorf("error %v from %q is also %v", err, c.src, other)
				}
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
		})
	}
}

func TestParseErrorPos(t *testing.T) {
	cases := []struct {
		src string
		pos int
	}{
		{"1+)", 3},
		{"2)", 2},
		{"*2", 1},
		{"12+3$", 5},
		{"(cos)", 5},
	}
	for _, c := range cases {
		_, err := Parse(c.src)
		var ie InputError
		if !errors.As(err, &ie) {
			t.Errorf("%q: no position in %v", c.src, err)
			continue
		}
		if ie.Pos() != c.pos {
			t.Errorf("%q: want position %d, got %d (%v)", c.src, c.pos, ie.Pos(), err)
		}
	}
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"num", "1"},
		{"add", "1+2"},
		{"implicit", "2(3+4)"},
		{"funcs", "2sin(π÷6)+sqrt(16)cos 0"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Parse(c.src)
			}
		})
	}
}

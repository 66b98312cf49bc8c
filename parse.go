package calc

import (
	"strings"
)

// Expr = num | π | Call | Neg | Add | Sub | Mul | Div | '(' Expr ')'
// Call = funcname '(' Expr ')' | funcname Operand
// Operand = num | π | Call | Neg | '(' Expr ')'
// Neg = '-' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr Expr
// Div = Expr '/' Expr
//
// Normalization turns the display glyphs – × ÷ into - * / and makes most
// juxtapositions explicit before parsing.

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse normalizes and parses an expression so it can be evaluated with a
// context. Errors from Parse match ErrIncomplete when more input could make
// the expression valid and ErrMalformed otherwise.
func Parse(text string, opts ...Option) (*Expr, error) {
	var p parsectx
	p.apply(opts)
	scan := lex(strings.NewReader(normalize(text, p.comma)))
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	if tok := scan.must(); tok.Kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	return &Expr{n: n}, nil
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	n, err := parselhs(scan, p)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenNumber, TokenConstant, TokenFunction, TokenOpen:
			// Any juxtaposition that normalization left in place, e.g. with
			// whitespace between the terms, is also a multiplication.
			// (parsed) x -> (parsed) * (x)
			scan.push(tok)
			prec := termprec
			if !prec.moreBinding(until) {
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: nodeMul, left: n, right: rhs}
		case TokenOperator:
			// Binary operator.
			prec := binop(tok.Text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				// x+) has nothing between the operator and the bracket.
				end := scan.must()
				scan.push(end)
				return nil, &EmptyExpressionError{Col: end.Pos, End: end.Text}
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case TokenClose, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, p *parsectx) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.Kind {
	case TokenNumber:
		n = &node{kind: nodeNum, name: tok.Text}
	case TokenConstant:
		n = &node{kind: nodeConst, name: tok.Text}
	case TokenFunction:
		fn := globalfuncs[tok.Text]
		if fn == nil {
			panic("calc: lexed unknown function " + tok.Text)
		}
		arg, err := parsecall(scan, p, tok)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeCall, name: tok.Text, fn: fn, left: arg}
	case TokenOperator:
		// Unary operator. Only - is one; any other operator here is waiting
		// for its left operand.
		prec := unop(tok.Text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.Pos, Operator: tok.Text, Unary: true}
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := scan.must()
			scan.push(end)
			return nil, &EmptyExpressionError{Col: end.Pos, End: end.Text}
		}
		n = &node{kind: prec.op, left: rhs}
	case TokenOpen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.Kind != TokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.Pos, End: end.Text}
		}
		n = rhs
	case TokenClose:
		// Let the caller decide whether an empty subexpression is an error.
		scan.push(tok)
		return nil, nil
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.Pos, End: ""}
	default:
		panic("calc: unknown token: " + tok.String())
	}
	return n, nil
}

// parsecall parses the argument to a call of the function named by name. The
// argument is either bracketed or a single operand, so sin(1)+2 and sin1+2
// are both sin(1) + 2.
func parsecall(scan *lexer, p *parsectx, name Token) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenOpen, TokenNumber, TokenConstant, TokenFunction, TokenOperator:
		scan.push(tok)
		return parseterm(scan, p, unaryprec)
	case TokenClose, tokenEOF:
		return nil, &CallError{Col: tok.Pos, Func: name.Text, End: tok.Text}
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is whether the subexpression
// started with an open bracket.
func itShouldNotHaveEndedThisWay(tok Token, open bool) error {
	left := ""
	if open {
		left = "("
	}
	switch tok.Kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.Pos, Left: left, Right: ""}
	case TokenClose:
		// A close bracket at the top level has nothing to match.
		return &BracketError{Col: tok.Pos, Left: left, Right: tok.Text}
	default:
		panic("calc: it really should not have ended this way: " + tok.String())
	}
}

// String creates a string representation of the parsed expression with
// brackets around each term, using the display glyphs – × ÷. The result
// parses to the same expression.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b, true)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-", "–":
		return operator{1, false, nodeSub}
	case "*", "×":
		return operator{5, false, nodeMul}
	case "/", "÷":
		return operator{5, false, nodeDiv}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "-", "–":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

var (
	// termprec is the default precedence for parsing terms. Its prec
	// should match that of multiplication.
	termprec = operator{5, true, nodeMul}
	// unaryprec is the precedence of negation and of function arguments.
	unaryprec = unop("-")
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, nodeNone}
)

package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexical unit of a normalized expression.
type Token struct {
	// Text is the token as it appears in the normalized expression.
	Text string
	// Kind is the token type.
	Kind TokenKind
	// Pos is the 1-based rune position of the token in the normalized
	// expression.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// TokenNumber is a decimal literal, optionally with an exponent.
	TokenNumber
	// TokenOperator is one of + - * /.
	TokenOperator
	// TokenFunction is the name of a function of one argument.
	TokenFunction
	// TokenConstant is π.
	TokenConstant
	// TokenOpen is (.
	TokenOpen
	// TokenClose is ).
	TokenClose
)

func (k TokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case TokenNumber:
		return "Number"
	case TokenOperator:
		return "Operator"
	case TokenFunction:
		return "Function"
	case TokenConstant:
		return "Constant"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are operators after normalization.
const Operators = "+-*/"

// Pi is the constant token.
const Pi = "π"

// Functions lists the function names, all of one argument. No name is a
// prefix of another.
var Functions = []string{"sin", "cos", "tan", "cot", "sqrt"}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	p    Token
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok Token) {
	if l.p.Kind != tokenNone {
		panic("calc: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() Token {
	tok := l.p
	if tok.Kind == tokenNone {
		panic("calc: no pushed token")
	}
	l.p = Token{}
	return tok
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. The first time EOF is encountered,
// the result is an EOF token with a nil error. Subsequent times, if the EOF
// token is not pushed, the result is an empty token with io.EOF.
func (l *lexer) next() (Token, error) {
	if l.p.Kind != tokenNone {
		tok := l.p
		l.p = Token{}
		return tok, nil
	}
	if l.eof {
		return Token{}, io.EOF
	}
	defer l.buf.Reset()
	tok := Token{Pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.Kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.Pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenNumber
			return tok, nil
		case r == 'π':
			tok.Text = Pi
			tok.Kind = TokenConstant
			return tok, nil
		case unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanFunc(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenFunction
			return tok, nil
		case r == '(':
			tok.Text = "("
			tok.Kind = TokenOpen
			return tok, nil
		case r == ')':
			tok.Text = ")"
			tok.Kind = TokenClose
			return tok, nil
		case strings.ContainsRune(Operators, r):
			tok.Text = string(r)
			tok.Kind = TokenOperator
			return tok, nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("", false)
		}
	}
}

func (l *lexer) scanNum() error {
	var dig, dot, e, le, ed, eof bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				eof = true
				break
			}
			return err
		}
		if unicode.IsSpace(r) {
			l.unreadRune()
			break
		}
		if r == '+' || r == '-' {
			// + or - anywhere other than immediately following an exponent
			// marker means a new token, as it is an operator.
			if !le {
				l.unreadRune()
				break
			}
			le = false
			l.buf.WriteRune(r)
			continue
		}
		if r == 'π' || strings.ContainsRune(Operators+"()", r) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
		switch r {
		case '.':
			if dot || e {
				return l.error("number", false)
			}
			dot = true
			le = false
		case 'e', 'E':
			if !dig || e {
				return l.error("number", false)
			}
			e = true
			le = true
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
		default:
			return l.error("number", false)
		}
	}
	if (!dig && !ed) || (e && !ed) {
		// A lone point or a dangling exponent at the very end of the input
		// is a number still being typed.
		return l.error("number", eof)
	}
	return nil
}

// scanFunc scans a function name. Since no name is a prefix of another, the
// scan stops as soon as the runes read spell one.
func (l *lexer) scanFunc() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// The runes so far begin a name.
				return l.error("function", true)
			}
			return err
		}
		l.buf.WriteRune(r)
		s := l.buf.String()
		prefix := false
		for _, name := range Functions {
			if s == name {
				return nil
			}
			if strings.HasPrefix(name, s) {
				prefix = true
			}
		}
		if !prefix {
			return l.error("function", false)
		}
	}
}

func (l *lexer) error(kind string, partial bool) *LexError {
	return &LexError{
		Text:    l.buf.String(),
		Kind:    kind,
		Col:     l.rune - 1,
		Partial: partial,
	}
}

// Tokenize normalizes an expression and splits it into tokens. The positions
// of the tokens refer to the normalized text.
func Tokenize(text string, opts ...Option) ([]Token, error) {
	var p parsectx
	p.apply(opts)
	scan := lex(strings.NewReader(normalize(text, p.comma)))
	var toks []Token
	for {
		tok, err := scan.next()
		if err != nil {
			return toks, err
		}
		if tok.Kind == tokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "function", or the empty string (if a token kind hadn't been decided).
	Kind string
	// Col is the position of the last rune the lexer read. That is the
	// invalid rune unless the token was cut off by the end of the input.
	Col int
	// Partial is whether the token was cut off by the end of the input, so
	// that more input could still complete it.
	Partial bool
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}

// Is reports whether err is in the category target. A partial token is
// incomplete; anything else is malformed.
func (err *LexError) Is(target error) bool {
	if err.Partial {
		return target == ErrIncomplete
	}
	return target == ErrMalformed
}

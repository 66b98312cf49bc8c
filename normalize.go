package calc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize rewrites an expression as typed on a keypad into the form that
// the lexer reads. Display glyphs become ASCII operators, and an explicit *
// is inserted wherever an operand is immediately followed by another operand
// or a bracketed term:
//
//	2(3+4)   -> 2*(3+4)
//	2sin(1)  -> 2*sin(1)
//	(1)(2)   -> (1)*(2)
//	2π       -> 2*π
//	π2       -> π*2
//
// Normalize does not check that the result is a valid expression.
func Normalize(text string, opts ...Option) string {
	var p parsectx
	p.apply(opts)
	return normalize(text, p.comma)
}

func normalize(text string, comma bool) string {
	var b strings.Builder
	b.Grow(len(text) + 4)
	var prev rune
	for i := 0; i < len(text); {
		r, sz := utf8.DecodeRuneInString(text[i:])
		switch r {
		case '–', '−':
			r = '-'
		case '×', '·':
			r = '*'
		case '÷':
			r = '/'
		case ',':
			if comma {
				r = '.'
			}
		}
		if closesOperand(prev) && opensOperand(prev, r, text[i:]) {
			b.WriteByte('*')
		}
		b.WriteRune(r)
		if !unicode.IsSpace(r) {
			prev = r
		}
		i += sz
	}
	return b.String()
}

// closesOperand reports whether r can be the last rune of an operand.
func closesOperand(r rune) bool {
	return '0' <= r && r <= '9' || r == '.' || r == ')' || r == 'π'
}

// opensOperand reports whether r, the first rune of rest, starts a term that
// multiplies the operand ending in prev.
func opensOperand(prev, r rune, rest string) bool {
	switch {
	case r == '(', r == 'π':
		return true
	case '0' <= r && r <= '9', r == '.':
		// Digits following digits continue the same number.
		return prev == ')' || prev == 'π'
	}
	for _, name := range Functions {
		if strings.HasPrefix(rest, name) {
			return true
		}
	}
	return false
}

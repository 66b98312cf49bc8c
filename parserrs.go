package calc

import (
	"errors"
	"strconv"
)

// Error categories. Every error from Parse or from evaluation matches exactly
// one of these with errors.Is.
var (
	// ErrIncomplete means the expression is not yet well-formed but could
	// become so with more input, e.g. "1+" or "(2".
	ErrIncomplete = errors.New("incomplete expression")
	// ErrMalformed means no further input can make the expression valid,
	// e.g. "1+)" or "1.2.3".
	ErrMalformed = errors.New("malformed expression")
	// ErrUndefined means the expression is well-formed but its value is
	// mathematically undefined, e.g. "0÷0" or "sqrt(–1)".
	ErrUndefined = errors.New("undefined result")
)

// OperatorError is an error indicating an operator where an operand was
// expected, or an operator that is not understood. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	if err.Unary {
		return errpos(err.Col, "missing operand before "+strconv.Quote(err.Operator))
	}
	return errpos(err.Col, "unknown binary operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// Is reports whether err is in the category target. An operator following
// another operator is treated as still being typed.
func (err *OperatorError) Is(target error) bool {
	if err.Unary {
		return target == ErrIncomplete
	}
	return target == ErrMalformed
}

// BracketError is an error indicating unmatched brackets in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the offending token.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// Is reports whether err is in the category target. An open bracket that is
// not yet closed is incomplete; a close bracket with no match is malformed.
func (err *BracketError) Is(target error) bool {
	if err.Right == "" {
		return target == ErrIncomplete
	}
	return target == ErrMalformed
}

// CallError is an error indicating a function with no argument. It implements
// InputError.
type CallError struct {
	// Col is the position of the token following the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// End is the token that followed the function name, or the empty string
	// at the end of the input.
	End string
}

func (err *CallError) Error() string {
	if err.End == "" {
		return errpos(err.Col, "no argument to "+err.Func)
	}
	return errpos(err.Col, "no argument to "+err.Func+" before "+strconv.Quote(err.End))
}

func (err *CallError) Pos() int {
	return err.Col
}

// Is reports whether err is in the category target.
func (err *CallError) Is(target error) bool {
	if err.End == "" {
		return target == ErrIncomplete
	}
	return target == ErrMalformed
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// Is reports whether err is in the category target.
func (err *EmptyExpressionError) Is(target error) bool {
	if err.End == "" {
		return target == ErrIncomplete
	}
	return target == ErrMalformed
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error. Positions
	// refer to the normalized expression.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)

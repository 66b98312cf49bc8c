package buffer

import (
	"errors"
	"strconv"
)

var (
	// ErrRejected is the category of inputs refused by a limit.
	ErrRejected = errors.New("input rejected")
	// ErrUnknownToken is the category of tokens that are not on the keypad.
	ErrUnknownToken = errors.New("unknown token")
)

// Reasons for rejecting input. These are the warnings shown to the user.
const (
	ReasonOperandDigits  = "too many digits in one number"
	ReasonFractionDigits = "too many fractional digits"
)

// RejectedInputError is returned when a token would break a limit. The text
// is unchanged. It matches ErrRejected.
type RejectedInputError struct {
	// Token is the rejected token.
	Token string
	// Reason is the warning to show.
	Reason string
}

func (err *RejectedInputError) Error() string {
	return err.Reason
}

func (err *RejectedInputError) Is(target error) bool {
	return target == ErrRejected
}

// UnknownTokenError is returned for a token outside the keypad. It matches
// ErrUnknownToken.
type UnknownTokenError struct {
	Token string
}

func (err *UnknownTokenError) Error() string {
	return "unknown token " + strconv.Quote(err.Token)
}

func (err *UnknownTokenError) Is(target error) bool {
	return target == ErrUnknownToken
}

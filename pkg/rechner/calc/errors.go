package calc

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Every *Error unwraps to exactly one of them.
var (
	ErrRejected   = errors.New("expression rejected")
	ErrSyntax     = errors.New("syntax error")
	ErrTooComplex = errors.New("expression too complex")
	ErrNonFinite  = errors.New("non-finite result")
)

// ErrorClass categorizes errors.
type ErrorClass string

const (
	ClassInput      ErrorClass = "input"      // Characters outside the grammar
	ClassParse      ErrorClass = "parse"      // Malformed expressions
	ClassLimit      ErrorClass = "limit"      // Depth/size bounds exceeded
	ClassArithmetic ErrorClass = "arithmetic" // Infinite or NaN results
)

// Error is a structured evaluation error.
type Error struct {
	Class   ErrorClass
	Code    string // e.g. "CALC-0002"
	Message string
	Column  int // 1-based column in the whitespace-stripped input (0 if unknown)

	sentinel error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("%s: column %d: %s", e.Code, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.sentinel
}

func newRejectedError(ch rune, column int) *Error {
	return &Error{
		Class:    ClassInput,
		Code:     "CALC-0001",
		Message:  fmt.Sprintf("character %q is not allowed", ch),
		Column:   column,
		sentinel: ErrRejected,
	}
}

func newSyntaxError(msg string, column int) *Error {
	return &Error{
		Class:    ClassParse,
		Code:     "CALC-0002",
		Message:  msg,
		Column:   column,
		sentinel: ErrSyntax,
	}
}

func newLimitError(code, msg string, column int) *Error {
	return &Error{
		Class:    ClassLimit,
		Code:     code,
		Message:  msg,
		Column:   column,
		sentinel: ErrTooComplex,
	}
}

func newNonFiniteError(op string, column int) *Error {
	return &Error{
		Class:    ClassArithmetic,
		Code:     "CALC-0005",
		Message:  fmt.Sprintf("%s produced a non-finite result", op),
		Column:   column,
		sentinel: ErrNonFinite,
	}
}

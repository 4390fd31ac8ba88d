package syntax

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParen reports a group left open at the end of the pattern.
	ErrMissingParen = errors.New("missing closing )")

	// ErrUnexpectedParen reports a ) with no matching (.
	ErrUnexpectedParen = errors.New("unexpected )")

	// ErrMissingRepeatArgument reports a * with no factor before it.
	ErrMissingRepeatArgument = errors.New("missing argument to repetition operator")

	// ErrInvalidToken reports input the tokenizer could not classify.
	ErrInvalidToken = errors.New("invalid token")
)

// SyntaxError is a parse fault at a byte offset of the pattern.
type SyntaxError struct {
	Pattern string
	Pos     int
	Err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d in %q: %v", e.Pos, e.Pattern, e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

package syntax

import (
	"errors"
	"fmt"
)

// Parse errors. They are always wrapped in an *Error.
var (
	// ErrUnmatchedParen indicates a group that is never closed, or a closing
	// parenthesis without a group to close
	ErrUnmatchedParen = errors.New("unmatched parenthesis")

	// ErrUnexpectedEOF indicates the pattern ended while an expression was open
	ErrUnexpectedEOF = errors.New("unexpected end of pattern")

	// ErrUnexpectedToken indicates an operator where an operand was expected
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrTrailingBackslash indicates a backslash at the very end of the pattern
	ErrTrailingBackslash = errors.New("trailing backslash")
)

// Error describes a pattern that failed to parse.
type Error struct {
	Pattern string
	Offset  int // rune offset where parsing failed
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("parse %q at offset %d: %v", e.Pattern, e.Offset, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

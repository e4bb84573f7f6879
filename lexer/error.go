package lexer

import "fmt"

// ErrInvalidConfig indicates that a Config failed validation.
var ErrInvalidConfig = &Error{
	Kind:    InvalidConfig,
	Message: "invalid lexer configuration",
}

// ErrInvalidTable indicates a malformed token table: no tokens, an unnamed
// or duplicate token type, an empty pattern or a cyclic macro.
var ErrInvalidTable = &Error{
	Kind:    InvalidTable,
	Message: "invalid token table",
}

// ErrBadPattern indicates that a token pattern failed to compile.
var ErrBadPattern = &Error{
	Kind:    BadPattern,
	Message: "token pattern does not compile",
}

// ErrorKind classifies lexer errors into categories
type ErrorKind uint8

const (
	// InvalidConfig indicates configuration validation failed
	InvalidConfig ErrorKind = iota

	// InvalidTable indicates token table validation failed
	InvalidTable

	// BadPattern indicates a token pattern is not a valid expression
	BadPattern

	// ReadFailed indicates the underlying reader returned an error
	ReadFailed
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case InvalidConfig:
		return "InvalidConfig"
	case InvalidTable:
		return "InvalidTable"
	case BadPattern:
		return "BadPattern"
	case ReadFailed:
		return "ReadFailed"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error represents an error raised while building or running a Lexer.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("lexer: %s: %v", e.Message, e.Cause)
	}
	return "lexer: " + e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrInvalidTable)
// holds for every table problem.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

package lexer

import "fmt"

// Token is one lexeme with the name of its type and the 1-based line and
// column, in runes, of its first rune.
type Token struct {
	Type   string
	Value  string
	Line   int
	Column int
}

// String renders the token as TYPE (line, column) "value". The value is
// written as is, without escaping.
func (t Token) String() string {
	return fmt.Sprintf("%s (%d, %d) \"%s\"", t.Type, t.Line, t.Column, t.Value)
}

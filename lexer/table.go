package lexer

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"sigs.k8s.io/yaml"
)

// Bad is the type name reported for lexemes no token type accepts, for
// lexemes of types marked Bad, and for lexemes longer than their MaxLen.
const Bad = "BAD"

// TokenType is one entry of a token table.
type TokenType struct {
	// Name identifies the type in emitted tokens.
	Name string `json:"name"`

	// Pattern is the expression the lexeme must match. After ParseTable it
	// holds the pattern with every define substituted.
	Pattern string `json:"pattern"`

	// Bounded types only match when the lexeme is wrapped by delimiters.
	// Keywords use it so that "ifx" is an identifier and not IF followed by x.
	Bounded bool `json:"bounded,omitempty"`

	// MaxLen, when positive, is the longest lexeme in runes. Longer lexemes
	// are reported as Bad.
	MaxLen int `json:"maxLen,omitempty"`

	// TrimSuffix is cut from the end of a matched lexeme and left in the
	// input, e.g. the newline closing a line comment.
	TrimSuffix string `json:"trimSuffix,omitempty"`

	// Bad types recognize malformed input, e.g. an unterminated string, and
	// are reported as Bad.
	Bad bool `json:"bad,omitempty"`
}

// Table is an ordered list of token types plus the defines their patterns
// may reference as {NAME}.
type Table struct {
	Defines map[string]string `json:"defines,omitempty"`
	Tokens  []TokenType       `json:"tokens"`
}

//go:embed default.yaml
var defaultYAML []byte

var defaultTable = sync.OnceValue(func() *Table {
	t, err := ParseTable(defaultYAML)
	if err != nil {
		panic("lexer: embedded default table: " + err.Error())
	}
	return t
})

// DefaultTable returns the built-in table of a small Pascal-like language.
// The returned table is shared and must not be modified.
func DefaultTable() *Table {
	return defaultTable()
}

// LoadTable reads a token table from a YAML file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexer: load table: %w", err)
	}
	return ParseTable(data)
}

// ParseTable decodes a YAML token table, validates it and substitutes
// defines into the token patterns.
func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.UnmarshalStrict(data, &t); err != nil {
		return nil, &Error{Kind: InvalidTable, Message: "decode table", Cause: err}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	defines, err := resolveDefines(t.Defines)
	if err != nil {
		return nil, err
	}
	for i := range t.Tokens {
		t.Tokens[i].Pattern = expand(t.Tokens[i].Pattern, defines)
	}
	return &t, nil
}

// Validate checks the table shape. Patterns themselves are compiled, and
// rejected, by New.
func (t *Table) Validate() error {
	if len(t.Tokens) == 0 {
		return invalidTable("no token types")
	}

	seen := make(map[string]bool, len(t.Tokens))
	for i, tt := range t.Tokens {
		switch {
		case tt.Name == "":
			return invalidTable(fmt.Sprintf("token type %d has no name", i))
		case seen[tt.Name]:
			return invalidTable("duplicate token type " + tt.Name)
		case tt.Pattern == "":
			return invalidTable("token type " + tt.Name + " has no pattern")
		case tt.MaxLen < 0:
			return invalidTable("token type " + tt.Name + " has negative maxLen")
		}
		seen[tt.Name] = true
	}

	for name := range t.Defines {
		if !isDefineName(name) {
			return invalidTable("bad define name " + name)
		}
	}
	return nil
}

func invalidTable(msg string) error {
	return &Error{Kind: InvalidTable, Message: msg}
}

// resolveDefines substitutes defines into each other until none references
// another. Each pass resolves at least one more level of nesting, so a
// reference left after len(defines) passes is a cycle.
func resolveDefines(defines map[string]string) (map[string]string, error) {
	resolved := make(map[string]string, len(defines))
	for name, body := range defines {
		resolved[name] = body
	}

	for pass := 0; pass <= len(defines); pass++ {
		changed := false
		for name, body := range resolved {
			if next := expand(body, resolved); next != body {
				resolved[name] = next
				changed = true
			}
		}
		if !changed {
			return resolved, nil
		}
	}

	for name, body := range resolved {
		if expand(body, resolved) != body {
			return nil, invalidTable("define " + name + " references itself")
		}
	}
	return resolved, nil
}

// expand replaces every {NAME} whose NAME is defined. Braces around anything
// else are left alone, so {.*} stays a literal brace pattern.
func expand(pattern string, defines map[string]string) string {
	if len(defines) == 0 || !strings.Contains(pattern, "{") {
		return pattern
	}

	var b strings.Builder
	rest := pattern
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			break
		}
		end += open

		name := rest[open+1 : end]
		body, ok := defines[name]
		if !ok || !isDefineName(name) {
			b.WriteString(rest[:open+1])
			rest = rest[open+1:]
			continue
		}
		b.WriteString(rest[:open])
		b.WriteString(body)
		rest = rest[end+1:]
	}
	b.WriteString(rest)
	return b.String()
}

// isDefineName reports whether name matches [A-Z_][A-Z0-9_]*.
func isDefineName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

package lexer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/d4l3k/messagediff"
)

func TestParseTable(t *testing.T) {
	data := []byte(`
defines:
  DIGIT: '(0|1)'
  NUMBER: '{DIGIT}+'
tokens:
  - name: NUMBER
    pattern: '{NUMBER}'
    bounded: true
    maxLen: 4
  - name: BRACES
    pattern: '{.*}'
  - name: UNKNOWN
    pattern: '{lower}{MISSING}'
  - name: COMMENT
    pattern: "#.*\n"
    trimSuffix: "\n"
  - name: JUNK
    pattern: '.'
    bad: true
`)

	got, err := ParseTable(data)
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}

	want := []TokenType{
		{Name: "NUMBER", Pattern: "(0|1)+", Bounded: true, MaxLen: 4},
		{Name: "BRACES", Pattern: "{.*}"},
		{Name: "UNKNOWN", Pattern: "{lower}{MISSING}"},
		{Name: "COMMENT", Pattern: "#.*\n", TrimSuffix: "\n"},
		{Name: "JUNK", Pattern: ".", Bad: true},
	}
	if diff, equal := messagediff.PrettyDiff(want, got.Tokens); !equal {
		t.Errorf("tokens differ:\n%s", diff)
	}
}

func TestParseTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no tokens", "defines: {A: a}"},
		{"unnamed", "tokens: [{pattern: a}]"},
		{"duplicate", "tokens: [{name: A, pattern: a}, {name: A, pattern: b}]"},
		{"empty pattern", "tokens: [{name: A, pattern: ''}]"},
		{"negative maxLen", "tokens: [{name: A, pattern: a, maxLen: -1}]"},
		{"bad define name", "defines: {lower: a}\ntokens: [{name: A, pattern: a}]"},
		{"self reference", "defines: {A: '{A}x'}\ntokens: [{name: A, pattern: '{A}'}]"},
		{"mutual reference", "defines: {A: '{B}', B: '({A})'}\ntokens: [{name: A, pattern: '{A}'}]"},
		{"unknown field", "tokens: [{name: A, pattern: a, color: red}]"},
		{"not yaml", "tokens: [:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable([]byte(tt.data))
			if !errors.Is(err, ErrInvalidTable) {
				t.Errorf("ParseTable() error = %v, want ErrInvalidTable", err)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	defines := map[string]string{"D": "(0|1)", "X_1": "x"}

	tests := []struct {
		in, want string
	}{
		{"{D}", "(0|1)"},
		{"{D}{D}*", "(0|1)(0|1)*"},
		{"{X_1}|{D}", "x|(0|1)"},
		{"{{D}}", "{(0|1)}"},
		{"{d}", "{d}"},
		{"{1X}", "{1X}"},
		{"{", "{"},
		{"{D", "{D"},
		{"a}", "a}"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := expand(tt.in, defines); got != tt.want {
			t.Errorf("expand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()
	if table != DefaultTable() {
		t.Error("DefaultTable() is not shared")
	}

	names := make(map[string]bool)
	for _, tt := range table.Tokens {
		names[tt.Name] = true
		if strings.Contains(tt.Pattern, "{DIGIT}") || strings.Contains(tt.Pattern, "{LETTER") {
			t.Errorf("%s pattern %q still references a define", tt.Name, tt.Pattern)
		}
	}
	for _, want := range []string{"BLOCK_COMMENT", "LINE_COMMENT", "IDENTIFIER", "INTEGER", "FLOAT", "SPACE", Bad} {
		if !names[want] {
			t.Errorf("default table lacks %s", want)
		}
	}

	if last := table.Tokens[len(table.Tokens)-1]; last.Name != Bad || !last.Bad {
		t.Errorf("last token type = %+v, want the catch-all %s", last, Bad)
	}
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	if err := os.WriteFile(path, []byte("tokens: [{name: A, pattern: a+}]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if len(table.Tokens) != 1 || table.Tokens[0].Pattern != "a+" {
		t.Errorf("LoadTable() = %+v", table.Tokens)
	}

	if _, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadTable(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestCustomTable(t *testing.T) {
	table, err := ParseTable([]byte(`
tokens:
  - name: WORD
    pattern: '(a|b)+'
  - name: GAP
    pattern: ' +'
`))
	if err != nil {
		t.Fatal(err)
	}

	l, err := New(strings.NewReader("ab  ba!"), table, DefaultConfig().WithHide("GAP"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := l.Tokens()
	if err != nil {
		t.Fatal(err)
	}

	want := []Token{
		{"WORD", "ab", 1, 1},
		{"WORD", "ba", 1, 5},
		{Bad, "!", 1, 7},
	}
	if diff, equal := messagediff.PrettyDiff(want, got); !equal {
		t.Errorf("token stream differs:\n%s", diff)
	}
}

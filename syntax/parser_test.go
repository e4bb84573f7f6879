package syntax

import (
	"errors"
	"testing"
)

func TestParse_Structure(t *testing.T) {
	tests := []struct {
		pattern string
		want    string // canonical rendering of the tree
	}{
		{"a", "a"},
		{"ab", "ab"},
		{"abc", "abc"},
		{"a|b", "(a|b)"},
		{"a|b|c", "((a|b)|c)"},
		{"ab|ac", "(ab|ac)"},
		{"a*", "a*"},
		{"a+", "a+"},
		{"a**", "(a*)*"},
		{"a*+", "(a*)+"},
		{"(ab)*", "(ab)*"},
		{"(a|b)*c", "(a|b)*c"},
		{".", "."},
		{".*", ".*"},
		{"^a", "^a"},
		{"^(ab)", "^(ab)"},
		{"^a*", "(^a)*"},
		{`\*`, `\*`},
		{`\(\)`, `\(\)`},
		{`\\`, `\\`},
		{`\a`, "a"},
		{`a\.b`, `a\.b`},
		{"{.*}", "{.*}"},
		{"привет", "привет"},
		{"((a))", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			node, err := Parse(tt.pattern)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.pattern, err)
			}
			if got := node.String(); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestParse_NodeTypes(t *testing.T) {
	node := MustParse("a|b*")
	alt, ok := node.(*Alternate)
	if !ok {
		t.Fatalf("top node is %T, want *Alternate", node)
	}
	if lit, ok := alt.Left.(*Literal); !ok || lit.Rune != 'a' {
		t.Errorf("left = %#v, want literal a", alt.Left)
	}
	star, ok := alt.Right.(*Star)
	if !ok {
		t.Fatalf("right is %T, want *Star", alt.Right)
	}
	if lit, ok := star.Sub.(*Literal); !ok || lit.Rune != 'b' {
		t.Errorf("star operand = %#v, want literal b", star.Sub)
	}

	not, ok := MustParse("^.").(*Not)
	if !ok {
		t.Fatal("^. should parse to *Not")
	}
	if _, ok := not.Sub.(*Any); !ok {
		t.Errorf("negated operand is %T, want *Any", not.Sub)
	}
}

// TestParse_RoundTrip checks that the canonical rendering parses back to the
// same tree.
func TestParse_RoundTrip(t *testing.T) {
	patterns := []string{
		"a**", "(a|b)*c", "^a*", "a|b|c", `\+\*x`, "((ab)+|c.)*d",
	}
	for _, pattern := range patterns {
		first := MustParse(pattern).String()
		second := MustParse(first).String()
		if first != second {
			t.Errorf("%q: rendering %q re-renders as %q", pattern, first, second)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		pattern string
		want    error
		offset  int
	}{
		{"", ErrUnexpectedEOF, 0},
		{"(", ErrUnexpectedEOF, 1},
		{"(a", ErrUnmatchedParen, 2},
		{"((a)", ErrUnmatchedParen, 4},
		{"a)", ErrUnmatchedParen, 1},
		{"a|", ErrUnexpectedEOF, 2},
		{"|a", ErrUnexpectedToken, 0},
		{"*a", ErrUnexpectedToken, 0},
		{"a|+", ErrUnexpectedToken, 2},
		{"()", ErrUnexpectedToken, 1},
		{"^", ErrUnexpectedEOF, 1},
		{`a\`, ErrTrailingBackslash, 2},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			node, err := Parse(tt.pattern)
			if err == nil {
				t.Fatalf("Parse(%q) = %s, want error", tt.pattern, node)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.pattern, err, tt.want)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("error %T is not *Error", err)
			}
			if perr.Offset != tt.offset {
				t.Errorf("offset = %d, want %d", perr.Offset, tt.offset)
			}
			if perr.Pattern != tt.pattern {
				t.Errorf("pattern = %q, want %q", perr.Pattern, tt.pattern)
			}
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on a malformed pattern")
		}
	}()
	MustParse("(a")
}

package relex

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/relex/syntax"
)

func TestCompileError(t *testing.T) {
	tests := []struct {
		pattern string
		want    error
	}{
		{"(a", syntax.ErrUnmatchedParen},
		{"a)", syntax.ErrUnmatchedParen},
		{"", syntax.ErrUnexpectedEOF},
		{"a|", syntax.ErrUnexpectedEOF},
		{"^", syntax.ErrUnexpectedEOF},
		{"*a", syntax.ErrUnexpectedToken},
		{"()", syntax.ErrUnexpectedToken},
		{`ab\`, syntax.ErrTrailingBackslash},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Compile(tt.pattern)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Compile(%q) error = %v, want %v", tt.pattern, err, tt.want)
			}

			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Fatalf("error %T is not a *CompileError", err)
			}
			if ce.Pattern != tt.pattern {
				t.Errorf("Pattern = %q, want %q", ce.Pattern, tt.pattern)
			}

			var se *syntax.Error
			if !errors.As(err, &se) {
				t.Fatalf("error %v does not wrap a *syntax.Error", err)
			}
			if !strings.HasPrefix(err.Error(), "relex: compile ") {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}

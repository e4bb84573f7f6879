package relex

import (
	"strings"
	"sync"
	"testing"
)

// TestCompile tests basic compilation
func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"literal", "a", false},
		{"concat", "ab", false},
		{"alternation", "ab|ac", false},
		{"star", "a*", false},
		{"plus", "a+", false},
		{"wildcard", ".", false},
		{"negation", "^a", false},
		{"group", "(a|b)*c", false},
		{"escape", `a\*`, false},
		{"unmatched open", "(a", true},
		{"unmatched close", "a)", true},
		{"empty", "", true},
		{"dangling alternation", "a|", true},
		{"leading star", "*a", true},
		{"trailing backslash", `a\`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Errorf("Compile(%q) error = %v, wantErr %v", tt.pattern, err, tt.wantErr)
				return
			}
			if !tt.wantErr && m == nil {
				t.Error("Compile() returned nil")
			}
		})
	}
}

// TestMustCompile tests panic on invalid pattern
func TestMustCompile(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustCompile() did not panic on invalid pattern")
		}
		if msg, ok := r.(string); !ok || !strings.HasPrefix(msg, "relex: Compile(`(`)") {
			t.Errorf("unexpected panic value %v", r)
		}
	}()

	MustCompile("(")
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    string
	}{
		{"star stops at mismatch", "a*", "aaab", "aaa"},
		{"star matches empty prefix", "a*", "b", ""},
		{"star whole input", "a*", "aaa", "aaa"},
		{"alternation", "ab|ac", "ac", "ac"},
		{"alternation prefix", "ab|ac", "acx", "ac"},
		{"plus no match", "a+", "b", ""},
		{"plus empty input", "a+", "", ""},
		{"wildcard", ".", "x", "x"},
		{"wildcard single rune", ".", "xy", "x"},
		{"group star", "(a|b)*c", "ababc", "ababc"},
		{"group star prefix", "(a|b)*c", "ababcab", "ababc"},
		{"group star missing tail", "(a|b)*c", "abab", ""},
		{"negation other rune", "^a", "z", "z"},
		{"negation excluded rune", "^a", "a", ""},
		{"negation one rune only", "^a", "zz", "z"},
		{"no backtracking", "a|abc", "abd", ""},
		{"shortest alternative", "a|abc", "ax", "a"},
		{"longest alternative", "a|abc", "abc", "abc"},
		{"escaped operator", `a\*`, "a*b", "a*"},
		{"escaped backslash", `\\`, `\x`, `\`},
		{"escaped plain rune", `\q`, "q", "q"},
		{"literal beats wildcard", "'.*'", "'ab'cd", "'ab'"},
		{"non-ascii", "é+", "ééx", "éé"},
		{"empty input", "a", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := MustCompile(tt.pattern)
			if got := m.Match(tt.input); got != tt.want {
				t.Errorf("Match(%q) on %q = %q, want %q", tt.input, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMatch_PrefixOfInput(t *testing.T) {
	patterns := []string{"a*", "(a|b)*c", "ab|ac", ".", "^a", "a|abc"}
	inputs := []string{"", "a", "aaab", "abc", "ababc", "z", "ac", "xyz"}

	for _, p := range patterns {
		m := MustCompile(p)
		for _, in := range inputs {
			got := m.Match(in)
			if !strings.HasPrefix(in, got) {
				t.Errorf("%q.Match(%q) = %q, not a prefix", p, in, got)
			}
			if got != "" && !m.Accepts(got) {
				t.Errorf("%q.Match(%q) = %q, which the pattern does not accept", p, in, got)
			}
		}
	}
}

func TestMatch_Deterministic(t *testing.T) {
	m := MustCompile("(a|b)*c")
	first := m.Match("abbac")
	for i := 0; i < 10; i++ {
		if got := m.Match("abbac"); got != first {
			t.Fatalf("run %d: got %q, want %q", i, got, first)
		}
	}
}

func TestAccepts(t *testing.T) {
	m := MustCompile("(a|b)*c")
	if !m.Accepts("abc") {
		t.Error(`Accepts("abc") = false`)
	}
	if m.Accepts("abcd") {
		t.Error(`Accepts("abcd") = true`)
	}
	if m.Accepts("") {
		t.Error(`Accepts("") = true`)
	}
}

// TestString tests the String method
func TestString(t *testing.T) {
	pattern := "(a|b)*c"
	m := MustCompile(pattern)
	if m.String() != pattern {
		t.Errorf("String() = %q, want %q", m.String(), pattern)
	}
	if m.Pattern() != pattern {
		t.Errorf("Pattern() = %q, want %q", m.Pattern(), pattern)
	}
}

func TestAutomaton_Minimal(t *testing.T) {
	tests := []struct {
		pattern string
		states  int
	}{
		{"a", 2},
		{"a*", 1},
		{"ab|ac", 3},
		{"(a|b)*c", 2},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			a := MustCompile(tt.pattern).Automaton()
			if a.Len() != tt.states {
				t.Errorf("Len() = %d, want %d\n%s", a.Len(), tt.states, a)
			}
			if a.Start() != 0 {
				t.Errorf("Start() = %d, want 0", a.Start())
			}
		})
	}
}

func TestMatch_Concurrent(t *testing.T) {
	m := MustCompile("(a|b)*c")

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if got := m.Match("ababcx"); got != "ababc" {
					errs <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent Match = %q, want %q", got, "ababc")
	}
}

func BenchmarkCompile(b *testing.B) {
	patterns := map[string]string{
		"literal":     "abc",
		"alternation": "ab|ac|ad|ae",
		"star":        "(a|b)*abb",
	}

	for name, pattern := range patterns {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = Compile(pattern)
			}
		})
	}
}

func BenchmarkMatch(b *testing.B) {
	m := MustCompile("(a|b)*c")
	input := strings.Repeat("ab", 512) + "c"

	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Match(input)
	}
}

// Package relex compiles patterns of a small regex dialect into minimal DFAs
// and matches them against the beginning of text.
//
// Compilation runs the whole pipeline once per pattern:
//
//	pattern -> syntax tree -> epsilon-NFA -> DFA -> minimal DFA
//
// Only the minimal DFA is kept. Matching is a stateless, prefix-greedy walk
// over it, so a compiled Matcher is safe for concurrent use.
//
// Basic usage:
//
//	m, err := relex.Compile(`(a|b)*c`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(m.Match("ababc!")) // "ababc"
//
// The dialect is described in package syntax. Compile errors and "no match"
// are distinct: Match never fails and reports no match as the empty string.
package relex

import (
	"github.com/coregx/relex/dfa"
	"github.com/coregx/relex/nfa"
	"github.com/coregx/relex/syntax"
)

// Matcher is a compiled pattern.
//
// A Matcher is immutable and safe to use concurrently from multiple
// goroutines.
type Matcher struct {
	pattern string
	dfa     *dfa.Automaton
}

// Compile compiles a pattern into a Matcher.
//
// Returns a *CompileError wrapping the syntax error if the pattern is
// malformed, e.g. has an unmatched parenthesis or ends inside an expression.
//
// Example:
//
//	m, err := relex.Compile(`ab|ac`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Matcher, error) {
	node, err := syntax.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	n, err := nfa.Compile(node)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	return &Matcher{
		pattern: pattern,
		dfa:     dfa.Minimize(dfa.Determinize(n)),
	}, nil
}

// MustCompile compiles a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var ident = relex.MustCompile(`(a|b|c)(a|b|c|0|1)*`)
func MustCompile(pattern string) *Matcher {
	m, err := Compile(pattern)
	if err != nil {
		panic("relex: Compile(`" + pattern + "`): " + err.Error())
	}
	return m
}

// Match returns the prefix of text the pattern matches, or "" if there is
// none. See MatchPrefix for the exact walk.
//
// Example:
//
//	relex.MustCompile(`a*`).Match("aaab") // "aaa"
func (m *Matcher) Match(text string) string {
	return MatchPrefix(m.dfa, text)
}

// Accepts reports whether the pattern matches all of text.
func (m *Matcher) Accepts(text string) bool {
	return m.dfa.Accepts(text)
}

// Pattern returns the source pattern.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// String returns the source pattern.
func (m *Matcher) String() string {
	return m.pattern
}

// Automaton returns the minimal DFA backing the matcher.
func (m *Matcher) Automaton() *dfa.Automaton {
	return m.dfa
}

package relex

import "github.com/coregx/relex/dfa"

// MatchPrefix walks a from its start state over the runes of text and returns
// the prefix consumed.
//
// Each rune is looked up as a literal first and through the wildcard second.
// The walk stops at the first rune without a transition, or after the last
// rune. If the state reached at that point accepts, the consumed prefix is
// returned, otherwise "". There is no backtracking: when the walk runs
// through an accepting state into a non-accepting one and then gets stuck,
// the shorter accepted prefix is not reported.
func MatchPrefix(a *dfa.Automaton, text string) string {
	s := a.Start()
	for i, r := range text {
		next := a.Step(s, r)
		if next == dfa.DeadState {
			if a.IsAccept(s) {
				return text[:i]
			}
			return ""
		}
		s = next
	}
	if a.IsAccept(s) {
		return text
	}
	return ""
}

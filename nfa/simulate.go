package nfa

import "github.com/coregx/relex/internal/sparse"

// Simulator runs an NFA directly by tracking the set of active states, one
// input rune at a time.
//
// A rune follows the edges labelled with it; only when no active state has
// such an edge does it follow wildcard edges instead. This is the rule the
// deterministic automaton applies per state, so both accept the same
// language. Simulation is much slower and exists to cross-check the
// determinized form.
//
// A Simulator holds scratch sets and is not safe for concurrent use.
type Simulator struct {
	nfa      *NFA
	closures [][]StateID
	curr     *sparse.Set[StateID]
	next     *sparse.Set[StateID]
	moved    []StateID
}

// NewSimulator creates a simulator for n.
func NewSimulator(n *NFA) *Simulator {
	return &Simulator{
		nfa:      n,
		closures: n.Closures(),
		curr:     sparse.New[StateID](n.Len()),
		next:     sparse.New[StateID](n.Len()),
	}
}

// Accepts reports whether n accepts all of text.
func (s *Simulator) Accepts(text string) bool {
	s.curr.Clear()
	s.addClosure(s.curr, s.nfa.start)

	for _, r := range text {
		s.moved = s.step(s.moved[:0], r)
		if len(s.moved) == 0 {
			s.moved = s.step(s.moved[:0], Any)
		}
		if len(s.moved) == 0 {
			return false
		}

		s.next.Clear()
		for _, id := range s.moved {
			s.addClosure(s.next, id)
		}
		s.curr, s.next = s.next, s.curr
	}
	return s.curr.Contains(s.nfa.accept)
}

func (s *Simulator) step(dst []StateID, label rune) []StateID {
	for _, id := range s.curr.Values() {
		dst = s.nfa.Move(dst, id, label)
	}
	return dst
}

func (s *Simulator) addClosure(set *sparse.Set[StateID], id StateID) {
	for _, c := range s.closures[id] {
		set.Insert(c)
	}
}

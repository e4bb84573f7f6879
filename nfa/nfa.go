// Package nfa provides a Thompson epsilon-NFA for relex patterns.
//
// States live in an arena indexed by StateID. The graph is generally cyclic
// (loops come from * and +), so every walk over it is iterative and guarded
// by a visited set rather than chasing edges recursively. All states of one
// NFA are owned by it and released together once the NFA is dropped, which
// happens as soon as the DFA has been derived from it.
package nfa

import (
	"fmt"
	"slices"
	"strings"
)

// StateID uniquely identifies an NFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// Reserved transition labels. Both are negative so that no rune of input
// text can ever carry them.
const (
	// Any labels a wildcard edge: it is taken for any rune the source state
	// has no explicit edge for.
	Any rune = -1

	// Not labels the edge leaving a negated operand. No input symbol is ever
	// labelled Not, so the edge is never taken.
	Not rune = -2
)

// LabelString returns a printable form of a transition label.
func LabelString(label rune) string {
	switch label {
	case Any:
		return "ANY"
	case Not:
		return "NOT"
	}
	return fmt.Sprintf("%q", label)
}

// Transition is a labelled edge to another state.
type Transition struct {
	Label rune
	Next  StateID
}

// State represents a single NFA state with its outgoing edges.
type State struct {
	id          StateID
	transitions []Transition
	epsilons    []StateID
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Transitions returns the labelled edges leaving the state.
func (s *State) Transitions() []Transition {
	return s.transitions
}

// Epsilons returns the targets of the epsilon edges leaving the state.
func (s *State) Epsilons() []StateID {
	return s.epsilons
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "State(%d", s.id)
	for _, t := range s.transitions {
		fmt.Fprintf(&b, ", %s -> %d", LabelString(t.Label), t.Next)
	}
	for _, next := range s.epsilons {
		fmt.Fprintf(&b, ", ε -> %d", next)
	}
	b.WriteString(")")
	return b.String()
}

// NFA is a compiled epsilon-NFA with exactly one start and one accept state.
//
// States are numbered densely in the order a depth-first walk from the start
// state first reaches them, so the start state is always 0.
type NFA struct {
	states []State
	start  StateID
	accept StateID

	// labels holds every distinct transition label, sorted ascending.
	// The reserved labels are negative and therefore come first.
	labels []rune
}

// Len returns the number of states.
func (n *NFA) Len() int {
	return len(n.states)
}

// Start returns the start state.
func (n *NFA) Start() StateID {
	return n.start
}

// Accept returns the single accepting state.
func (n *NFA) Accept() StateID {
	return n.accept
}

// State returns the state with the given ID, or nil if it does not exist.
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// Labels returns the distinct transition labels in ascending order.
// The returned slice must not be modified.
func (n *NFA) Labels() []rune {
	return n.labels
}

// Move appends to dst the targets of the edges labelled label leaving id.
func (n *NFA) Move(dst []StateID, id StateID, label rune) []StateID {
	for _, t := range n.states[id].transitions {
		if t.Label == label {
			dst = append(dst, t.Next)
		}
	}
	return dst
}

// String returns a human-readable dump of all states.
func (n *NFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "NFA(start=%d, accept=%d, states=%d)\n", n.start, n.accept, len(n.states))
	for i := range n.states {
		b.WriteString("  ")
		b.WriteString(n.states[i].String())
		b.WriteString("\n")
	}
	return b.String()
}

func collectLabels(states []State) []rune {
	var labels []rune
	for i := range states {
		for _, t := range states[i].transitions {
			labels = append(labels, t.Label)
		}
	}
	slices.Sort(labels)
	return slices.Compact(labels)
}

// Package dfa provides deterministic automata derived from relex NFAs.
//
// Determinize turns an epsilon-NFA into a DFA by subset construction, Prune
// drops states the start state cannot reach and Minimize merges states no
// future input can tell apart (Moore partition refinement). All three return
// a fresh *Automaton; automata are immutable once built and safe for
// concurrent use.
package dfa

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/coregx/relex/internal/conv"
	"github.com/coregx/relex/nfa"
)

// StateID identifies a DFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// Special state constants
const (
	// InvalidState represents an invalid/uninitialized state ID
	InvalidState StateID = 0xFFFFFFFF

	// DeadState marks the absence of a transition. Once in this state, the
	// automaton can never match.
	DeadState StateID = 0xFFFFFFFE
)

// Automaton is a DFA with a total transition function.
//
// Every state has an entry for every alphabet symbol; the entry is DeadState
// when there is no transition. The alphabet is the set of runes appearing in
// the pattern plus nfa.Any when the pattern has a wildcard, sorted ascending
// so the wildcard column comes first.
type Automaton struct {
	alphabet  []rune
	ascii     [128]int32     // rune -> column for ASCII, -1 if absent
	columns   map[rune]int32 // rune -> column beyond ASCII
	anyColumn int32          // column of nfa.Any, -1 if absent

	// next is the transition table in row-major order:
	// next[state*len(alphabet)+column]
	next   []StateID
	accept []bool
	start  StateID
}

// newAutomaton returns an automaton with no states over alphabet.
// The alphabet must be sorted and free of duplicates.
func newAutomaton(alphabet []rune) *Automaton {
	a := &Automaton{
		alphabet:  alphabet,
		columns:   make(map[rune]int32),
		anyColumn: -1,
	}
	for i := range a.ascii {
		a.ascii[i] = -1
	}
	for i, r := range alphabet {
		col := conv.Int32(i)
		switch {
		case r == nfa.Any:
			a.anyColumn = col
		case r >= 0 && r < 128:
			a.ascii[r] = col
		default:
			a.columns[r] = col
		}
	}
	return a
}

// addState appends a state whose transitions all lead to DeadState.
func (a *Automaton) addState(accept bool) StateID {
	id := conv.ID[StateID](len(a.accept))
	a.accept = append(a.accept, accept)
	for range a.alphabet {
		a.next = append(a.next, DeadState)
	}
	return id
}

func (a *Automaton) setTransition(from StateID, column int, to StateID) {
	a.next[int(from)*len(a.alphabet)+column] = to
}

func (a *Automaton) row(s StateID) []StateID {
	stride := len(a.alphabet)
	return a.next[int(s)*stride : int(s)*stride+stride]
}

// Start returns the initial state.
func (a *Automaton) Start() StateID {
	return a.start
}

// Len returns the number of states.
func (a *Automaton) Len() int {
	return len(a.accept)
}

// Alphabet returns the alphabet in column order.
// The returned slice must not be modified.
func (a *Automaton) Alphabet() []rune {
	return a.alphabet
}

// IsAccept reports whether s is an accepting state.
func (a *Automaton) IsAccept(s StateID) bool {
	return int(s) < len(a.accept) && a.accept[s]
}

// column returns the alphabet column of a literal rune, or -1.
func (a *Automaton) column(r rune) int32 {
	if r >= 0 && r < 128 {
		return a.ascii[r]
	}
	if col, ok := a.columns[r]; ok {
		return col
	}
	return -1
}

// Transition returns the entry for state s and alphabet symbol label, which
// may be nfa.Any. It does not fall back to the wildcard.
func (a *Automaton) Transition(s StateID, label rune) StateID {
	if int(s) >= a.Len() {
		return DeadState
	}
	col := a.anyColumn
	if label != nfa.Any {
		col = a.column(label)
	}
	if col < 0 {
		return DeadState
	}
	return a.row(s)[col]
}

// Step returns the state reached from s on input rune r.
//
// The literal transition is tried first; when the state has none, the
// wildcard transition is used if the alphabet has one. Returns DeadState when
// neither exists.
func (a *Automaton) Step(s StateID, r rune) StateID {
	if int(s) >= a.Len() {
		return DeadState
	}
	row := a.row(s)
	if col := a.column(r); col >= 0 {
		if next := row[col]; next != DeadState {
			return next
		}
	}
	if a.anyColumn >= 0 {
		return row[a.anyColumn]
	}
	return DeadState
}

// Accepts reports whether the automaton consumes all of text and ends in an
// accepting state.
func (a *Automaton) Accepts(text string) bool {
	s := a.start
	for _, r := range text {
		s = a.Step(s, r)
		if s == DeadState {
			return false
		}
	}
	return a.IsAccept(s)
}

// String returns the transition table, one state per line. Accepting states
// are marked with '*', the start state with '>'; '-' is no transition.
func (a *Automaton) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DFA(states=%d, alphabet=%d, start=%d)\n", a.Len(), len(a.alphabet), a.start)

	w := tabwriter.NewWriter(&b, 0, 4, 1, ' ', 0)
	fmt.Fprint(w, "\t")
	for _, r := range a.alphabet {
		fmt.Fprintf(w, "%s\t", nfa.LabelString(r))
	}
	fmt.Fprintln(w)
	for s := range a.accept {
		id := StateID(s)
		mark := " "
		switch {
		case id == a.start && a.accept[s]:
			mark = ">*"
		case id == a.start:
			mark = ">"
		case a.accept[s]:
			mark = "*"
		}
		fmt.Fprintf(w, "%s%d\t", mark, s)
		for _, next := range a.row(id) {
			if next == DeadState {
				fmt.Fprint(w, "-\t")
			} else {
				fmt.Fprintf(w, "%d\t", next)
			}
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush() // writes to a strings.Builder cannot fail
	return b.String()
}

// Table is a plain snapshot of an automaton, convenient for tests, dumps and
// hand-written machines.
type Table struct {
	Alphabet []rune
	Start    StateID
	Accept   []bool
	Next     [][]StateID // Next[state][column], DeadState for none
}

// Table returns a snapshot of the automaton.
func (a *Automaton) Table() Table {
	t := Table{
		Alphabet: slices.Clone(a.alphabet),
		Start:    a.start,
		Accept:   slices.Clone(a.accept),
		Next:     make([][]StateID, a.Len()),
	}
	for s := range t.Next {
		t.Next[s] = slices.Clone(a.row(StateID(s)))
	}
	return t
}

// FromTable builds an automaton from a snapshot.
//
// The alphabet must be sorted, free of duplicates and must not contain
// nfa.Not; every state must have exactly one entry per alphabet symbol.
func FromTable(t Table) (*Automaton, error) {
	for i, r := range t.Alphabet {
		if r == nfa.Not || (r < 0 && r != nfa.Any) {
			return nil, fmt.Errorf("%w: symbol %s cannot appear in input", ErrInvalidTable, nfa.LabelString(r))
		}
		if i > 0 && t.Alphabet[i-1] >= r {
			return nil, fmt.Errorf("%w: alphabet not sorted or has duplicates at column %d", ErrInvalidTable, i)
		}
	}
	if len(t.Next) != len(t.Accept) {
		return nil, fmt.Errorf("%w: %d transition rows for %d states", ErrInvalidTable, len(t.Next), len(t.Accept))
	}
	if int(t.Start) >= len(t.Accept) {
		return nil, fmt.Errorf("%w: start state %d out of range", ErrInvalidTable, t.Start)
	}

	a := newAutomaton(slices.Clone(t.Alphabet))
	for s, accept := range t.Accept {
		a.addState(accept)
		if len(t.Next[s]) != len(t.Alphabet) {
			return nil, fmt.Errorf("%w: state %d has %d entries, want %d", ErrInvalidTable, s, len(t.Next[s]), len(t.Alphabet))
		}
	}
	for s, row := range t.Next {
		for col, next := range row {
			if next != DeadState && int(next) >= len(t.Accept) {
				return nil, fmt.Errorf("%w: state %d column %d targets unknown state %d", ErrInvalidTable, s, col, next)
			}
			a.setTransition(StateID(s), col, next)
		}
	}
	a.start = t.Start
	return a, nil
}

package dfa

import (
	"encoding/binary"
	"slices"

	"github.com/coregx/relex/internal/conv"
	"github.com/coregx/relex/internal/sparse"
	"github.com/coregx/relex/nfa"
)

// Determinize derives a DFA from n by subset construction.
//
// Each DFA state stands for the epsilon-closed set of NFA states reachable on
// the same input. State 0 is the closure of the NFA start state. States are
// discovered through a worklist; for every state and every alphabet symbol
// the targets of all member states are unioned and closed, and the resulting
// set is looked up or allocated. A DFA state accepts iff its set contains the
// NFA accept state. The worklist drains because the sets are drawn from the
// finite power set of NFA states.
//
// The returned automaton is total and only contains reachable states.
func Determinize(n *nfa.NFA) *Automaton {
	closures := n.Closures()
	d := &determinizer{
		nfa:      n,
		closures: closures,
		dfa:      newAutomaton(inputAlphabet(n.Labels())),
		index:    make(map[string]StateID),
		union:    sparse.New[nfa.StateID](n.Len()),
	}

	d.dfa.start = d.lookup(closures[n.Start()])
	var moved []nfa.StateID
	for i := 0; i < len(d.sets); i++ {
		from := conv.ID[StateID](i)
		for col, label := range d.dfa.alphabet {
			d.union.Clear()
			for _, member := range d.sets[i] {
				moved = n.Move(moved[:0], member, label)
				for _, target := range moved {
					for _, s := range closures[target] {
						d.union.Insert(s)
					}
				}
			}
			if d.union.IsEmpty() {
				continue // stays DeadState
			}
			set := slices.Clone(d.union.Values())
			slices.Sort(set)
			d.dfa.setTransition(from, col, d.lookup(set))
		}
	}
	return d.dfa
}

type determinizer struct {
	nfa      *nfa.NFA
	closures [][]nfa.StateID
	dfa      *Automaton

	// sets[id] is the sorted NFA state set of DFA state id; appending to it
	// is what feeds the worklist.
	sets  [][]nfa.StateID
	index map[string]StateID
	union *sparse.Set[nfa.StateID]
}

// lookup returns the DFA state for a sorted NFA state set, allocating it on
// first sight.
func (d *determinizer) lookup(set []nfa.StateID) StateID {
	key := setKey(set)
	if id, ok := d.index[key]; ok {
		return id
	}

	_, accept := slices.BinarySearch(set, d.nfa.Accept())
	id := d.dfa.addState(accept)
	d.index[key] = id
	d.sets = append(d.sets, set)
	return id
}

// setKey encodes a sorted state set as fixed-width little-endian IDs.
// Fixed width keeps distinct sets from ever sharing a key.
func setKey(set []nfa.StateID) string {
	buf := make([]byte, 0, 4*len(set))
	for _, id := range set {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(id))
	}
	return string(buf)
}

// inputAlphabet returns the NFA labels that input can carry: every literal
// rune plus the wildcard. The negation label is dropped.
func inputAlphabet(labels []rune) []rune {
	alphabet := make([]rune, 0, len(labels))
	for _, l := range labels {
		if l != nfa.Not {
			alphabet = append(alphabet, l)
		}
	}
	return alphabet
}

package nfa

import (
	"slices"

	"github.com/coregx/relex/internal/sparse"
)

// Closures returns the epsilon-closure of every state, indexed by StateID.
//
// The closure of a state is the set of states reachable from it using epsilon
// edges only, including the state itself. Each closure is sorted ascending.
// Epsilon cycles (x** and friends) are handled by the visited set.
func (n *NFA) Closures() [][]StateID {
	seen := sparse.New[StateID](len(n.states))
	var stack []StateID

	closures := make([][]StateID, len(n.states))
	for i := range n.states {
		seen.Clear()
		stack = n.closeOver(seen, append(stack[:0], StateID(i)))
		closures[i] = sortedValues(seen)
	}
	return closures
}

// EpsilonClosure returns the sorted epsilon-closure of a set of states.
func (n *NFA) EpsilonClosure(ids []StateID) []StateID {
	seen := sparse.New[StateID](len(n.states))
	n.closeOver(seen, slices.Clone(ids))
	return sortedValues(seen)
}

// closeOver adds everything epsilon-reachable from the stacked states to seen.
// Returns the stack so its storage can be reused.
func (n *NFA) closeOver(seen *sparse.Set[StateID], stack []StateID) []StateID {
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !seen.Insert(id) {
			continue
		}
		for _, next := range n.states[id].epsilons {
			if !seen.Contains(next) {
				stack = append(stack, next)
			}
		}
	}
	return stack
}

func sortedValues(s *sparse.Set[StateID]) []StateID {
	out := slices.Clone(s.Values())
	slices.Sort(out)
	return out
}

package dfa

import (
	"encoding/binary"

	"github.com/coregx/relex/internal/conv"
)

// Prune returns a copy of a without the states that cannot be reached from
// the start state through any transition. Surviving states keep their
// relative order.
func Prune(a *Automaton) *Automaton {
	reachable := make([]bool, a.Len())
	reachable[a.start] = true
	stack := []StateID{a.start}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range a.row(s) {
			if next != DeadState && !reachable[next] {
				reachable[next] = true
				stack = append(stack, next)
			}
		}
	}

	renumber := make([]StateID, a.Len())
	out := newAutomaton(a.alphabet)
	for s, ok := range reachable {
		renumber[s] = DeadState
		if ok {
			renumber[s] = out.addState(a.accept[s])
		}
	}
	for s, ok := range reachable {
		if !ok {
			continue
		}
		for col, next := range a.row(StateID(s)) {
			if next != DeadState {
				out.setTransition(renumber[s], col, renumber[next])
			}
		}
	}
	out.start = renumber[a.start]
	return out
}

// Minimize returns the minimal automaton recognizing the same language as a,
// with the same prefix-walk behavior.
//
// Unreachable states are pruned first. The remaining states are partitioned
// by Moore's algorithm: the initial partition separates accepting from
// non-accepting states, and each round splits every block whose members
// disagree on which blocks their transitions lead to. Blocks only ever split,
// so there are at most Len() rounds. Each final block becomes one state,
// numbered in breadth-first order from the start state; transitions and the
// accept flag are taken from the block's first member.
func Minimize(a *Automaton) *Automaton {
	a = Prune(a)
	block, count := refine(a)

	// Representative of each block: its lowest-numbered member.
	rep := make([]StateID, count)
	for i := range rep {
		rep[i] = InvalidState
	}
	for s := a.Len() - 1; s >= 0; s-- {
		rep[block[s]] = StateID(s)
	}

	// Number blocks breadth-first from the start block so that equivalent
	// machines always come out identical.
	order := make([]int, count)
	for i := range order {
		order[i] = -1
	}
	out := newAutomaton(a.alphabet)
	queue := []int{block[a.start]}
	order[block[a.start]] = int(out.addState(a.accept[a.start]))
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		for _, next := range a.row(rep[b]) {
			if next == DeadState {
				continue
			}
			if nb := block[next]; order[nb] < 0 {
				order[nb] = int(out.addState(a.accept[rep[nb]]))
				queue = append(queue, nb)
			}
		}
	}

	for b := 0; b < count; b++ {
		if order[b] < 0 {
			continue // cannot happen on a pruned automaton
		}
		from := conv.ID[StateID](order[b])
		for col, next := range a.row(rep[b]) {
			if next != DeadState {
				out.setTransition(from, col, conv.ID[StateID](order[block[next]]))
			}
		}
	}
	out.start = 0
	return out
}

// refine computes the coarsest partition of a's states into blocks of
// indistinguishable states. It returns the block of every state and the
// number of blocks.
func refine(a *Automaton) (block []int, count int) {
	block = make([]int, a.Len())
	count = 0
	labels := map[bool]int{}
	for s, accept := range a.accept {
		b, ok := labels[accept]
		if !ok {
			b = count
			labels[accept] = b
			count++
		}
		block[s] = b
	}

	key := make([]byte, 0, 4*(len(a.alphabet)+1))
	for {
		next := make([]int, a.Len())
		index := make(map[string]int, count)
		for s := range block {
			// Signature: current block followed by the block each
			// transition leads to, in alphabet order. Including the
			// current block makes every round a refinement.
			key = binary.LittleEndian.AppendUint32(key[:0], uint32(block[s]))
			for _, t := range a.row(StateID(s)) {
				target := uint32(0)
				if t != DeadState {
					target = uint32(block[t]) + 1
				}
				key = binary.LittleEndian.AppendUint32(key, target)
			}

			b, ok := index[string(key)]
			if !ok {
				b = len(index)
				index[string(key)] = b
			}
			next[s] = b
		}

		if len(index) == count {
			return block, count
		}
		block, count = next, len(index)
	}
}

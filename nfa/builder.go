package nfa

import (
	"fmt"

	"github.com/coregx/relex/internal/conv"
)

// Builder constructs NFAs incrementally using a low-level API.
// This provides full control over NFA construction and is used by the Compiler.
//
// States are allocated in an arena and referenced by StateID, so cycles are
// plain integer references. Build flattens the arena into an NFA.
type Builder struct {
	states []State
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
	}
}

// AddState adds a state without edges and returns its ID
func (b *Builder) AddState() StateID {
	id := conv.ID[StateID](len(b.states))
	b.states = append(b.states, State{id: id})
	return id
}

// AddTransition adds an edge labelled label from one state to another.
// The label is a rune, Any or Not.
func (b *Builder) AddTransition(from StateID, label rune, to StateID) error {
	if err := b.check(from, to); err != nil {
		return err
	}
	b.link(from, label, to)
	return nil
}

// AddEpsilon adds an epsilon edge from one state to another.
func (b *Builder) AddEpsilon(from, to StateID) error {
	if err := b.check(from, to); err != nil {
		return err
	}
	b.linkEpsilon(from, to)
	return nil
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

func (b *Builder) link(from StateID, label rune, to StateID) {
	s := &b.states[from]
	s.transitions = append(s.transitions, Transition{Label: label, Next: to})
}

func (b *Builder) linkEpsilon(from, to StateID) {
	s := &b.states[from]
	s.epsilons = append(s.epsilons, to)
}

func (b *Builder) check(ids ...StateID) error {
	for _, id := range ids {
		if int(id) >= len(b.states) {
			return &BuildError{
				Message: "state ID out of bounds",
				StateID: id,
				Err:     ErrInvalidState,
			}
		}
	}
	return nil
}

// Build flattens the arena into an NFA with the given start and accept states.
//
// States are renumbered in the order a depth-first walk from start first
// reaches them, following labelled edges before epsilon edges. Each state is
// numbered exactly once; states the walk never reaches are dropped. The
// builder can be discarded afterwards.
func (b *Builder) Build(start, accept StateID) (*NFA, error) {
	if err := b.check(start, accept); err != nil {
		return nil, err
	}

	order := b.walk(start)
	renumber := make([]StateID, len(b.states))
	for i := range renumber {
		renumber[i] = InvalidState
	}
	for i, old := range order {
		renumber[old] = conv.ID[StateID](i)
	}
	if renumber[accept] == InvalidState {
		return nil, &BuildError{
			Message: fmt.Sprintf("accept state %d is unreachable from start state %d", accept, start),
			StateID: accept,
		}
	}

	states := make([]State, len(order))
	for i, old := range order {
		src := &b.states[old]
		dst := &states[i]
		dst.id = conv.ID[StateID](i)
		if len(src.transitions) > 0 {
			dst.transitions = make([]Transition, len(src.transitions))
			for j, t := range src.transitions {
				dst.transitions[j] = Transition{Label: t.Label, Next: renumber[t.Next]}
			}
		}
		if len(src.epsilons) > 0 {
			dst.epsilons = make([]StateID, len(src.epsilons))
			for j, next := range src.epsilons {
				dst.epsilons[j] = renumber[next]
			}
		}
	}

	return &NFA{
		states: states,
		start:  renumber[start],
		accept: renumber[accept],
		labels: collectLabels(states),
	}, nil
}

// walk returns the states reachable from start in depth-first preorder.
// The explicit stack and visited marks keep it finite on cyclic graphs.
func (b *Builder) walk(start StateID) []StateID {
	visited := make([]bool, len(b.states))
	order := make([]StateID, 0, len(b.states))
	stack := []StateID{start}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		order = append(order, id)

		// Push in reverse so the first edge is explored first
		s := &b.states[id]
		for i := len(s.epsilons) - 1; i >= 0; i-- {
			if !visited[s.epsilons[i]] {
				stack = append(stack, s.epsilons[i])
			}
		}
		for i := len(s.transitions) - 1; i >= 0; i-- {
			if next := s.transitions[i].Next; !visited[next] {
				stack = append(stack, next)
			}
		}
	}
	return order
}

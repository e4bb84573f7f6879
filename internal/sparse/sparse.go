// Package sparse provides a sparse set of automaton state identifiers.
//
// A sparse set supports O(1) insertion, membership testing and clearing while
// keeping a dense list of its members in insertion order. The automaton
// builders use it as the visited set of epsilon-closure walks, where the
// universe of values (state IDs) is known up front.
package sparse

// Set is a set of 32-bit identifiers below a fixed capacity.
// The sparse array maps values to indices in the dense array.
type Set[T ~uint32] struct {
	sparse []uint32 // value -> index in dense
	dense  []T      // members in insertion order
}

// New creates an empty set able to hold values in [0, capacity).
func New[T ~uint32](capacity int) *Set[T] {
	return &Set[T]{
		sparse: make([]uint32, capacity),
		dense:  make([]T, 0, capacity),
	}
}

// Insert adds value to the set and reports whether it was absent.
// Panics if value >= capacity.
func (s *Set[T]) Insert(value T) bool {
	if s.Contains(value) {
		return false
	}
	//nolint:gosec // G115: len(dense) < capacity, which fits the sparse slots
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *Set[T]) Contains(value T) bool {
	if int(value) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear removes all members in O(1).
func (s *Set[T]) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of members.
func (s *Set[T]) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no members.
func (s *Set[T]) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns the members in insertion order.
// The returned slice is valid until the next mutation.
func (s *Set[T]) Values() []T {
	return s.dense
}

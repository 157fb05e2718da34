// Package sparse provides a sparse set of uint32 values with O(1)
// insert, membership test, and clear.
//
// The matcher uses it to deduplicate threads by program counter within
// one input position: at most one thread per instruction address is kept,
// which is what bounds total matching work to O(program × input).
package sparse

// Set is a sparse set over the universe [0, capacity). It keeps a sparse
// array mapping values to indices in a dense array, so Clear is O(1) and
// no per-element zeroing is needed between generations.
type Set struct {
	sparse []uint32
	dense  []uint32
}

// New creates a set able to hold values in [0, capacity).
func New(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value to the set. It reports whether the value was newly
// inserted: false means it was already present.
func (s *Set) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < uint32(len(s.dense)) && s.dense[idx] == value
}

// Clear removes all elements in O(1).
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements in the set.
func (s *Set) Len() int {
	return len(s.dense)
}

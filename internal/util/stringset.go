// Package util holds small, dependency-free helpers shared across this
// module's packages. It is a deliberately trimmed adaptation of the
// teacher's internal/util package (github.com/dekarrin/tunaq/internal/util,
// ~900 lines across set.go/sb.go/util.go): only the ordered string-set
// shape and the MakeTextList joiner survive, since grammar and parse only
// ever need sets of symbol names, never the teacher's generic
// ISet[E]/VSet[E,V]/SVSet[V] value-mapping machinery.
package util

// StringSet is an insertion-ordered set of strings. Grammar and automaton
// construction must be deterministic across runs given identical input
// (spec.md §4.3 "Determinism"), so this set remembers the order elements
// were first added and iterates in that order rather than Go's randomized
// map order.
type StringSet struct {
	index map[string]int
	order []string
}

// NewStringSet returns an empty StringSet.
func NewStringSet() *StringSet {
	return &StringSet{index: make(map[string]int)}
}

// StringSetOf returns a StringSet containing the given elements, in the
// order given, with duplicates collapsed to their first occurrence.
func StringSetOf(elems ...string) *StringSet {
	s := NewStringSet()
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

// Add inserts value if not already present, recording its position.
func (s *StringSet) Add(value string) {
	if _, ok := s.index[value]; ok {
		return
	}
	s.index[value] = len(s.order)
	s.order = append(s.order, value)
}

// Has reports whether value is in the set.
func (s *StringSet) Has(value string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[value]
	return ok
}

// Len returns the number of elements in the set.
func (s *StringSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Elements returns the set's elements in insertion order. The returned
// slice is owned by the caller.
func (s *StringSet) Elements() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}


package machine

import (
	"sort"
	"strconv"
	"strings"
)

// StateSet is a set of node ids. Membership is by stable handle, so the
// same set can be carried across a machine without pointer identity.
type StateSet map[int]struct{}

// NewStateSet creates a set containing the given ids.
func NewStateSet(ids ...int) StateSet {
	s := make(StateSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts an id into the set.
func (s StateSet) Add(id int) {
	s[id] = struct{}{}
}

// Union adds every member of other to s.
func (s StateSet) Union(other StateSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Contains reports whether id is a member.
func (s StateSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// Copy creates an independent copy of the set.
func (s StateSet) Copy() StateSet {
	result := make(StateSet, len(s))
	for id := range s {
		result[id] = struct{}{}
	}
	return result
}

// Len returns the number of members.
func (s StateSet) Len() int {
	return len(s)
}

// SortedIDs returns the member ids in ascending order.
func (s StateSet) SortedIDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Key returns a canonical identity for the set, usable as a map key.
// Two sets have equal keys iff they have equal membership.
func (s StateSet) Key() string {
	ids := s.SortedIDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// String returns a human-readable rendering like [S1,S4].
func (s StateSet) String() string {
	ids := s.SortedIDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = "S" + strconv.Itoa(id)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

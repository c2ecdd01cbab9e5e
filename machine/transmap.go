package machine

import (
	"fmt"
	"iter"
	"slices"
	"sort"
)

// TransitionMap stores one state's outgoing transitions: a sorted,
// coalesced boundary table over character codes plus a side table of
// special events.
//
// The boundary table is a pair of parallel slices codes[0..n] and
// sets[0..n-1], where sets[i] holds the targets for every code in
// [codes[i], codes[i+1]). codes is strictly increasing with
// codes[0] == CodeMin and codes[n] == CodeMax, so every code in the domain
// falls into exactly one interval.
type TransitionMap struct {
	codes   []rune
	sets    []StateSet
	special map[Special]StateSet
}

// NewTransitionMap creates an empty map: one interval covering the whole
// domain with no targets, and no special events.
func NewTransitionMap() *TransitionMap {
	return &TransitionMap{
		codes:   []rune{CodeMin, CodeMax},
		sets:    []StateSet{make(StateSet)},
		special: make(map[Special]StateSet),
	}
}

// Add records a transition to target on ev. For a Range the target is added
// to every interval the range covers, splitting boundary intervals as
// needed. A range with Lo >= Hi is a programming error and panics.
func (t *TransitionMap) Add(ev Event, target int) {
	switch e := ev.(type) {
	case Range:
		i := t.splitRange(e)
		j := t.split(e.Hi)
		for k := i; k < j; k++ {
			t.sets[k].Add(target)
		}
	case Special:
		t.getSpecial(e).Add(target)
	}
}

// AddSet is Add generalized to a whole target set: it unions targets into
// every interval or event bucket ev covers.
func (t *TransitionMap) AddSet(ev Event, targets StateSet) {
	switch e := ev.(type) {
	case Range:
		i := t.splitRange(e)
		j := t.split(e.Hi)
		for k := i; k < j; k++ {
			t.sets[k].Union(targets)
		}
	case Special:
		t.getSpecial(e).Union(targets)
	}
}

// Epsilon returns the epsilon target set, or nil if none was recorded.
func (t *TransitionMap) Epsilon() StateSet {
	return t.special[Epsilon]
}

// All iterates (event, target set) pairs, skipping empty sets. Intervals
// come first in ascending code order, then special events in a fixed
// order, so iteration is deterministic. Adjacent intervals with identical
// sets are not merged; merging is a presentation concern.
func (t *TransitionMap) All() iter.Seq2[Event, StateSet] {
	return func(yield func(Event, StateSet) bool) {
		for i := range t.sets {
			if len(t.sets[i]) == 0 {
				continue
			}
			if !yield(Range{t.codes[i], t.codes[i+1]}, t.sets[i]) {
				return
			}
		}
		for _, ev := range specialOrder {
			set := t.special[ev]
			if len(set) == 0 {
				continue
			}
			if !yield(ev, set) {
				return
			}
		}
	}
}

// split locates or creates a boundary at code and returns its index in the
// boundary slice. Inserting a boundary subdivides the interval containing
// code into two intervals carrying copies of the same target set, so the
// map's semantics never change on insertion.
func (t *TransitionMap) split(code rune) int {
	i := sort.Search(len(t.codes), func(k int) bool { return t.codes[k] >= code })
	if t.codes[i] == code {
		return i
	}
	t.codes = slices.Insert(t.codes, i, code)
	t.sets = slices.Insert(t.sets, i, t.sets[i-1].Copy())
	return i
}

func (t *TransitionMap) splitRange(e Range) int {
	if e.Lo >= e.Hi {
		panic(fmt.Sprintf("machine: malformed transition range [%d, %d)", e.Lo, e.Hi))
	}
	return t.split(e.Lo)
}

func (t *TransitionMap) getSpecial(ev Special) StateSet {
	set, ok := t.special[ev]
	if !ok {
		set = make(StateSet)
		t.special[ev] = set
	}
	return set
}

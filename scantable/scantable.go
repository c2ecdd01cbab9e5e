// Package scantable compiles a deterministic machine into flat per-state
// lookup tables for O(1) transition lookup in a scanning loop.
//
// Each state record carries one slot per literal character code in the
// scan alphabet plus four symbolic slots (bol, eol, eof, else). Targets
// are indices into the table's state slice. Construction and lookup are
// distinct phases: a FastMachine never mutates after FromMachine returns,
// so concurrent readers need no synchronization.
package scantable

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lexforge/automata/machine"
)

// AlphabetSize is the number of literal character codes a scan table
// resolves directly; codes outside [0, AlphabetSize) resolve through the
// else slot.
const AlphabetSize = 256

// None marks an empty transition slot.
const None = -1

// Special names the symbolic slots of a state record.
type Special int

const (
	// Bol fires at the beginning of a line.
	Bol Special = iota
	// Eol fires at the end of a line.
	Eol
	// Eof fires at the end of the input.
	Eof
	// Else catches characters with no literal slot of their own.
	Else
)

func (s Special) String() string {
	switch s {
	case Bol:
		return "bol"
	case Eol:
		return "eol"
	case Eof:
		return "eof"
	case Else:
		return "else"
	default:
		return fmt.Sprintf("special(%d)", int(s))
	}
}

var specialOrder = []Special{Bol, Eol, Eof, Else}

var ErrNonDeterministic = errors.New("scantable: non-deterministic machine")

// State is one flat state record.
type State struct {
	id      int
	chars   [AlphabetSize]int
	special [4]int
	action  machine.Action
}

func newState(id int) *State {
	s := &State{id: id}
	for i := range s.chars {
		s.chars[i] = None
	}
	for i := range s.special {
		s.special[i] = None
	}
	return s
}

// ID returns the state's index in the table.
func (s *State) ID() int {
	return s.id
}

// Target returns the successor for literal character ch, consulting the
// else slot when ch has no slot of its own. ok reports whether any
// transition applies.
func (s *State) Target(ch byte) (target int, ok bool) {
	if t := s.chars[ch]; t != None {
		return t, true
	}
	if t := s.special[Else]; t != None {
		return t, true
	}
	return None, false
}

// SpecialTarget returns the successor for a symbolic event.
func (s *State) SpecialTarget(ev Special) (target int, ok bool) {
	t := s.special[ev]
	return t, t != None
}

// Action returns the state's action, or nil if the state does not accept.
func (s *State) Action() machine.Action {
	return s.action
}

// FastMachine is the deterministic scan-time form of a machine.
type FastMachine struct {
	states  []*State
	initial map[string]int
}

// GetInitialState returns the index of the entry state registered under
// name.
func (f *FastMachine) GetInitialState(name string) (int, error) {
	id, ok := f.initial[name]
	if !ok {
		return None, fmt.Errorf("scantable: %w: %q", machine.ErrUnknownStartCondition, name)
	}
	return id, nil
}

// StartConditions returns the registered start-condition names in sorted
// order.
func (f *FastMachine) StartConditions() []string {
	names := make([]string, 0, len(f.initial))
	for name := range f.initial {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// State returns the state record at index id.
func (f *FastMachine) State(id int) *State {
	return f.states[id]
}

// StateCount returns the number of state records.
func (f *FastMachine) StateCount() int {
	return len(f.states)
}

// FromMachine flattens a deterministic machine into a FastMachine. The
// input must already be deterministic: any epsilon edge or multi-target
// event fails with ErrNonDeterministic naming the offending state. The
// input machine is only read.
func FromMachine(m *machine.Machine) (*FastMachine, error) {
	f := &FastMachine{
		states:  make([]*State, 0, m.StateCount()),
		initial: make(map[string]int),
	}
	for range m.States() {
		f.states = append(f.states, newState(len(f.states)))
	}
	for _, name := range m.StartConditions() {
		n, err := m.GetInitialState(name)
		if err != nil {
			return nil, err
		}
		f.initial[name] = n.ID()
	}

	for _, src := range m.States() {
		dst := f.states[src.ID()]
		dst.action = src.Action()
		for ev, targets := range src.Transitions().All() {
			if targets.Len() != 1 {
				return nil, fmt.Errorf("%w: state S%d has %d targets on %s",
					ErrNonDeterministic, src.ID(), targets.Len(), ev)
			}
			target := targets.SortedIDs()[0]
			switch e := ev.(type) {
			case machine.Range:
				dst.fillRange(e, target)
			case machine.Special:
				switch e {
				case machine.Epsilon:
					return nil, fmt.Errorf("%w: state S%d has an epsilon transition",
						ErrNonDeterministic, src.ID())
				case machine.Bol:
					dst.special[Bol] = target
				case machine.Eol:
					dst.special[Eol] = target
				case machine.Eof:
					dst.special[Eof] = target
				}
			}
		}
	}
	return f, nil
}

// fillRange fills the literal slots a range covers. A range open at the
// low end becomes the else slot instead of an unbounded fill; other
// ranges fill their in-alphabet prefix.
func (s *State) fillRange(r machine.Range, target int) {
	if r.Lo == machine.CodeMin {
		s.special[Else] = target
		return
	}
	lo, hi := r.Lo, r.Hi
	if lo < 0 {
		lo = 0
	}
	if hi > AlphabetSize {
		hi = AlphabetSize
	}
	for c := lo; c < hi; c++ {
		s.chars[c] = target
	}
}

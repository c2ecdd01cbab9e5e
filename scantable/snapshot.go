package scantable

import (
	"errors"
	"fmt"

	"github.com/lexforge/automata/machine"
)

var ErrBadSnapshot = errors.New("scantable: invalid snapshot")

// Snapshot is the serializable form of a FastMachine. Literal slots are
// stored sparsely; actions are stored by name only and restore as
// NamedAction values.
type Snapshot struct {
	Initial map[string]int  `json:"initial"`
	States  []StateSnapshot `json:"states"`
}

// StateSnapshot is the serializable form of one state record.
type StateSnapshot struct {
	ID     int         `json:"id"`
	Chars  map[int]int `json:"chars,omitempty"`
	Bol    *int        `json:"bol,omitempty"`
	Eol    *int        `json:"eol,omitempty"`
	Eof    *int        `json:"eof,omitempty"`
	Else   *int        `json:"else,omitempty"`
	Action string      `json:"action,omitempty"`
}

// NamedAction is an action identity restored from a snapshot; it carries
// only the original action's name.
type NamedAction string

func (a NamedAction) Name() string {
	return string(a)
}

// Snapshot captures the table in serializable form.
func (f *FastMachine) Snapshot() *Snapshot {
	snap := &Snapshot{
		Initial: make(map[string]int, len(f.initial)),
		States:  make([]StateSnapshot, 0, len(f.states)),
	}
	for name, id := range f.initial {
		snap.Initial[name] = id
	}
	for _, s := range f.states {
		ss := StateSnapshot{ID: s.id}
		for c := 0; c < AlphabetSize; c++ {
			if t := s.chars[c]; t != None {
				if ss.Chars == nil {
					ss.Chars = make(map[int]int)
				}
				ss.Chars[c] = t
			}
		}
		ss.Bol = slot(s.special[Bol])
		ss.Eol = slot(s.special[Eol])
		ss.Eof = slot(s.special[Eof])
		ss.Else = slot(s.special[Else])
		if s.action != nil {
			ss.Action = s.action.Name()
		}
		snap.States = append(snap.States, ss)
	}
	return snap
}

// FromSnapshot rebuilds a FastMachine from its serializable form,
// validating that every transition target and initial state is a valid
// index into the state slice.
func FromSnapshot(snap *Snapshot) (*FastMachine, error) {
	f := &FastMachine{
		states:  make([]*State, 0, len(snap.States)),
		initial: make(map[string]int, len(snap.Initial)),
	}
	n := len(snap.States)
	check := func(t int) error {
		if t < 0 || t >= n {
			return fmt.Errorf("%w: target S%d out of range", ErrBadSnapshot, t)
		}
		return nil
	}

	for i, ss := range snap.States {
		if ss.ID != i {
			return nil, fmt.Errorf("%w: state %d recorded as S%d", ErrBadSnapshot, i, ss.ID)
		}
		s := newState(i)
		for c, t := range ss.Chars {
			if c < 0 || c >= AlphabetSize {
				return nil, fmt.Errorf("%w: character code %d out of alphabet", ErrBadSnapshot, c)
			}
			if err := check(t); err != nil {
				return nil, err
			}
			s.chars[c] = t
		}
		for ev, p := range map[Special]*int{Bol: ss.Bol, Eol: ss.Eol, Eof: ss.Eof, Else: ss.Else} {
			if p == nil {
				continue
			}
			if err := check(*p); err != nil {
				return nil, err
			}
			s.special[ev] = *p
		}
		if ss.Action != "" {
			s.action = NamedAction(ss.Action)
		}
		f.states = append(f.states, s)
	}

	for name, id := range snap.Initial {
		if err := check(id); err != nil {
			return nil, err
		}
		f.initial[name] = id
	}
	return f, nil
}

func slot(t int) *int {
	if t == None {
		return nil
	}
	return &t
}

var _ machine.Action = NamedAction("")

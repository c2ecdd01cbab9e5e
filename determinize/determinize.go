// Package determinize converts a non-deterministic machine into an
// equivalent deterministic one via subset construction.
//
// Each deterministic state stands for a set of source states, identified by
// the set's canonical key. Conversion walks a worklist of realized states,
// merges the transition maps of every member of the current state set, and
// takes the epsilon closure of each merged target set to find or allocate
// the successor. Accepting members fold into the deterministic state's
// action by priority; equal priority with distinct actions is an error.
package determinize

import (
	"errors"
	"fmt"

	"github.com/lexforge/automata/machine"
)

var (
	ErrAmbiguousAction = errors.New("determinize: ambiguous action")
	ErrStateLimit      = errors.New("determinize: state limit exceeded")
)

// Converter runs subset construction over one source machine.
type Converter struct {
	src       *machine.Machine
	maxStates int
	closures  map[int]machine.StateSet
}

// New creates a converter for src.
func New(src *machine.Machine) *Converter {
	return &Converter{
		src:      src,
		closures: make(map[int]machine.StateSet),
	}
}

// WithMaxStates caps the number of deterministic states realized before
// the conversion fails with ErrStateLimit. Zero (the default) means no
// cap; subset construction is exponential in the worst case, so callers
// feeding untrusted rule sets may want one.
func (c *Converter) WithMaxStates(max int) *Converter {
	c.maxStates = max
	return c
}

// Determinize converts src with default settings.
func Determinize(src *machine.Machine) (*machine.Machine, error) {
	return New(src).Run()
}

// Run performs the conversion and returns a new deterministic machine with
// the same start-condition names. The source machine is only read.
func (c *Converter) Run() (*machine.Machine, error) {
	dst := machine.New()
	byKey := make(map[string]*machine.Node)
	members := make(map[int]machine.StateSet)
	var worklist []*machine.Node

	// realize returns the deterministic node standing for an NFA state
	// set, allocating and queueing it on first sight.
	realize := func(set machine.StateSet) (*machine.Node, error) {
		key := set.Key()
		if n, ok := byKey[key]; ok {
			return n, nil
		}
		if c.maxStates > 0 && dst.StateCount() >= c.maxStates {
			return nil, fmt.Errorf("%w: more than %d states realized", ErrStateLimit, c.maxStates)
		}
		n := dst.NewState()
		if err := foldActions(c.src, set, n); err != nil {
			return nil, err
		}
		byKey[key] = n
		members[n.ID()] = set
		worklist = append(worklist, n)
		return n, nil
	}

	for _, name := range c.src.StartConditions() {
		start, err := c.src.GetInitialState(name)
		if err != nil {
			return nil, err
		}
		n, err := realize(c.closure(start.ID()))
		if err != nil {
			return nil, err
		}
		dst.MakeInitialState(name, n)
	}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		merged := machine.NewTransitionMap()
		for _, id := range members[cur.ID()].SortedIDs() {
			for ev, targets := range c.src.State(id).Transitions().All() {
				merged.AddSet(ev, targets)
			}
		}

		for ev, targets := range merged.All() {
			// Epsilon edges of the members already folded into the
			// state set's closure.
			if sp, ok := ev.(machine.Special); ok && sp == machine.Epsilon {
				continue
			}
			tgt, err := realize(c.closureSet(targets))
			if err != nil {
				return nil, err
			}
			cur.AddTransition(ev, tgt)
		}
	}

	return dst, nil
}

// closure returns the epsilon closure of one source state, memoized per
// state id. The returned set is shared; callers must not mutate it.
func (c *Converter) closure(id int) machine.StateSet {
	if cl, ok := c.closures[id]; ok {
		return cl
	}
	cl := machine.NewStateSet(id)
	stack := []int{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range c.src.State(cur).Transitions().Epsilon() {
			if cl.Contains(next) {
				continue
			}
			cl.Add(next)
			stack = append(stack, next)
		}
	}
	c.closures[id] = cl
	return cl
}

// closureSet returns the union of the epsilon closures of every member.
func (c *Converter) closureSet(set machine.StateSet) machine.StateSet {
	out := machine.NewStateSet()
	for id := range set {
		out.Union(c.closure(id))
	}
	return out
}

// foldActions installs the action of the highest-priority accepting member
// of set on the deterministic node. Two accepting members tied at the
// winning priority with different actions make the rule set ambiguous;
// lower-priority members are masked and never conflict.
func foldActions(src *machine.Machine, set machine.StateSet, into *machine.Node) error {
	best := machine.LowestPriority
	found := false
	for id := range set {
		s := src.State(id)
		if s.Accepting() && (!found || s.Priority() > best) {
			best = s.Priority()
			found = true
		}
	}
	if !found {
		return nil
	}

	var act machine.Action
	for _, id := range set.SortedIDs() {
		s := src.State(id)
		if !s.Accepting() || s.Priority() != best {
			continue
		}
		if act == nil {
			act = s.Action()
			continue
		}
		if s.Action() != act {
			return fmt.Errorf("%w: %s vs %s at priority %d",
				ErrAmbiguousAction, act.Name(), s.Action().Name(), best)
		}
	}
	into.SetAction(act, best)
	return nil
}

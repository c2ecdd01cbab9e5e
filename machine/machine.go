// Package machine implements the automaton data model of a lexical-analyser
// generator: states, transition maps over character-code ranges and special
// events, and named entry points ("start conditions").
//
// A Machine owns its Nodes arena-style: Nodes are created through the
// Machine, addressed by stable integer id, and released with the Machine.
// Transition targets are node ids within the same machine, never pointers
// across machines. The same model represents both NFAs (multiple targets
// per event, epsilon moves) and DFAs (at most one target per event).
package machine

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrUnknownStartCondition = errors.New("machine: unknown start condition")

// LowestPriority is the sentinel priority of a state with no action.
const LowestPriority = math.MinInt

// Action identifies what a scanner should do when an accepting state
// matches. Implementations must be comparable: two accepting states agree
// iff their Actions are equal under ==.
type Action interface {
	Name() string
}

// Node is one state of a machine.
type Node struct {
	id          int
	transitions *TransitionMap
	action      Action
	priority    int
}

// ID returns the node's stable id within its machine.
func (n *Node) ID() int {
	return n.id
}

// Transitions returns the node's outgoing-edge map.
func (n *Node) Transitions() *TransitionMap {
	return n.transitions
}

// AddTransition records a transition to target on ev.
func (n *Node) AddTransition(ev Event, target *Node) {
	n.transitions.Add(ev, target.id)
}

// LinkTo adds an epsilon move from this node to target.
func (n *Node) LinkTo(target *Node) {
	n.AddTransition(Epsilon, target)
}

// SetAction makes this an accepting node with the given action. An action
// installs only when its priority is strictly greater than the current
// one, so the first action assigned at the highest priority seen wins and
// later equal-or-lower-priority calls are no-ops.
func (n *Node) SetAction(a Action, priority int) {
	if priority > n.priority {
		n.action = a
		n.priority = priority
	}
}

// Action returns the node's action, or nil if the node does not accept.
func (n *Node) Action() Action {
	return n.action
}

// Priority returns the action priority; LowestPriority when no action has
// been set.
func (n *Node) Priority() int {
	return n.priority
}

// Accepting reports whether an action has been installed.
func (n *Node) Accepting() bool {
	return n.action != nil
}

func (n *Node) String() string {
	return fmt.Sprintf("S%d", n.id)
}

// Machine is an owned collection of Nodes plus named entry points.
type Machine struct {
	states  []*Node
	initial map[string]*Node
}

// New creates an empty machine.
func New() *Machine {
	return &Machine{
		initial: make(map[string]*Node),
	}
}

// NewState allocates a new node owned by this machine and returns it.
// Node ids are assigned in creation order starting at zero.
func (m *Machine) NewState() *Node {
	n := &Node{
		id:          len(m.states),
		transitions: NewTransitionMap(),
		priority:    LowestPriority,
	}
	m.states = append(m.states, n)
	return n
}

// NewInitialState allocates a new node and registers it as the entry point
// for the named start condition.
func (m *Machine) NewInitialState(name string) *Node {
	n := m.NewState()
	m.MakeInitialState(name, n)
	return n
}

// MakeInitialState registers an existing node as the entry point for the
// named start condition, replacing any previous registration.
func (m *Machine) MakeInitialState(name string, n *Node) {
	m.initial[name] = n
}

// GetInitialState returns the entry point registered under name.
func (m *Machine) GetInitialState(name string) (*Node, error) {
	n, ok := m.initial[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStartCondition, name)
	}
	return n, nil
}

// StartConditions returns the registered start-condition names in sorted
// order.
func (m *Machine) StartConditions() []string {
	names := make([]string, 0, len(m.initial))
	for name := range m.initial {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// State returns the node with the given id.
func (m *Machine) State(id int) *Node {
	return m.states[id]
}

// States returns all nodes in creation order.
func (m *Machine) States() []*Node {
	return m.states
}

// StateCount returns the number of nodes.
func (m *Machine) StateCount() int {
	return len(m.states)
}

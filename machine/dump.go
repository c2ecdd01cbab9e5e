package machine

import (
	"fmt"
	"io"
)

// Dump writes a human-readable rendering of the machine: initial states,
// then every node in creation order with its transitions and action. The
// output is deterministic given identical structure, so it can back
// snapshot-style tests.
func (m *Machine) Dump(w io.Writer) {
	fmt.Fprintf(w, "machine:\n")
	fmt.Fprintf(w, "  initial states:\n")
	for _, name := range m.StartConditions() {
		fmt.Fprintf(w, "    %q: %s\n", name, m.initial[name])
	}
	for _, n := range m.states {
		n.dump(w)
	}
}

func (n *Node) dump(w io.Writer) {
	fmt.Fprintf(w, "  state S%d:\n", n.id)
	n.transitions.dump(w)
	if n.action != nil {
		fmt.Fprintf(w, "    %s [priority %d]\n", n.action.Name(), n.priority)
	}
}

// dump renders the map with adjacent intervals carrying identical target
// sets merged into one range. Merging here is presentation only; the
// stored table keeps its raw boundaries.
func (t *TransitionMap) dump(w io.Writer) {
	i := 0
	for i < len(t.sets) {
		if len(t.sets[i]) == 0 {
			i++
			continue
		}
		key := t.sets[i].Key()
		j := i + 1
		for j < len(t.sets) && t.sets[j].Key() == key {
			j++
		}
		r := Range{t.codes[i], t.codes[j]}
		fmt.Fprintf(w, "    %s --> %s\n", r, t.sets[i])
		i = j
	}
	for _, ev := range specialOrder {
		set := t.special[ev]
		if len(set) == 0 {
			continue
		}
		fmt.Fprintf(w, "    %s --> %s\n", ev, set)
	}
}

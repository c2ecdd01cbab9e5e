package machine

import (
	"errors"
	"strings"
	"testing"
)

type testAction string

func (a testAction) Name() string { return string(a) }

func TestNewStateIDs(t *testing.T) {
	m := New()
	for i := 0; i < 5; i++ {
		n := m.NewState()
		if n.ID() != i {
			t.Errorf("state %d has id %d", i, n.ID())
		}
		if m.State(n.ID()) != n {
			t.Errorf("State(%d) did not return the allocated node", n.ID())
		}
	}
	if m.StateCount() != 5 {
		t.Errorf("StateCount = %d, want 5", m.StateCount())
	}
}

func TestInitialStates(t *testing.T) {
	m := New()
	a := m.NewInitialState("main")

	got, err := m.GetInitialState("main")
	if err != nil {
		t.Fatalf("GetInitialState failed: %v", err)
	}
	if got != a {
		t.Error("GetInitialState returned wrong node")
	}

	_, err = m.GetInitialState("missing")
	if !errors.Is(err, ErrUnknownStartCondition) {
		t.Errorf("expected ErrUnknownStartCondition, got %v", err)
	}

	// Re-registering a name overwrites the previous mapping.
	b := m.NewState()
	m.MakeInitialState("main", b)
	got, _ = m.GetInitialState("main")
	if got != b {
		t.Error("MakeInitialState did not overwrite previous registration")
	}

	m.NewInitialState("string")
	names := m.StartConditions()
	if len(names) != 2 || names[0] != "main" || names[1] != "string" {
		t.Errorf("StartConditions = %v, want [main string]", names)
	}
}

func TestLinkToAddsEpsilon(t *testing.T) {
	m := New()
	a := m.NewState()
	b := m.NewState()
	a.LinkTo(b)

	eps := a.Transitions().Epsilon()
	if eps == nil || !eps.Contains(b.ID()) {
		t.Errorf("epsilon set = %v, want member S%d", eps, b.ID())
	}
}

func TestSetActionPriority(t *testing.T) {
	m := New()
	n := m.NewState()

	if n.Accepting() {
		t.Error("fresh node should not accept")
	}
	if n.Priority() != LowestPriority {
		t.Errorf("fresh priority = %d, want LowestPriority", n.Priority())
	}

	n.SetAction(testAction("A"), 2)
	if !n.Accepting() || n.Action().Name() != "A" || n.Priority() != 2 {
		t.Fatalf("after first set: action %v priority %d", n.Action(), n.Priority())
	}

	// Equal priority: first action wins, call is a no-op.
	n.SetAction(testAction("B"), 2)
	if n.Action().Name() != "A" {
		t.Errorf("equal-priority set replaced action with %s", n.Action().Name())
	}

	// Lower priority: no-op.
	n.SetAction(testAction("C"), 1)
	if n.Action().Name() != "A" || n.Priority() != 2 {
		t.Errorf("lower-priority set changed state: %s [%d]", n.Action().Name(), n.Priority())
	}

	// Strictly higher priority wins.
	n.SetAction(testAction("D"), 5)
	if n.Action().Name() != "D" || n.Priority() != 5 {
		t.Errorf("higher-priority set ignored: %s [%d]", n.Action().Name(), n.Priority())
	}
}

func TestDumpDeterministic(t *testing.T) {
	build := func() *Machine {
		m := New()
		start := m.NewInitialState("main")
		loop := m.NewState()
		start.LinkTo(loop)
		loop.AddTransition(Range{'a', 'z' + 1}, loop)
		loop.AddTransition(Bol, start)
		loop.SetAction(testAction("WORD"), 1)
		return m
	}

	var first, second strings.Builder
	build().Dump(&first)
	build().Dump(&second)
	if first.String() != second.String() {
		t.Error("identical machines dumped differently")
	}

	out := first.String()
	for _, want := range []string{
		`"main": S0`,
		"state S0:",
		"epsilon --> [S1]",
		"'a'..'z' --> [S1]",
		"bol --> [S0]",
		"WORD [priority 1]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestDumpMergesAdjacentRanges(t *testing.T) {
	m := New()
	n := m.NewState()
	tgt := m.NewState()
	// Two touching ranges with the same target render as one.
	n.AddTransition(Range{'a', 'm'}, tgt)
	n.AddTransition(Range{'m', 'z' + 1}, tgt)

	var out strings.Builder
	m.Dump(&out)
	if !strings.Contains(out.String(), "'a'..'z' --> [S1]") {
		t.Errorf("adjacent equal ranges not merged:\n%s", out.String())
	}
}

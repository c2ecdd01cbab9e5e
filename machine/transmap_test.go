package machine

import (
	"strings"
	"testing"
)

func checkInvariant(t *testing.T, tm *TransitionMap) {
	t.Helper()
	if tm.codes[0] != CodeMin {
		t.Errorf("first boundary = %d, want CodeMin", tm.codes[0])
	}
	if tm.codes[len(tm.codes)-1] != CodeMax {
		t.Errorf("last boundary = %d, want CodeMax", tm.codes[len(tm.codes)-1])
	}
	for i := 1; i < len(tm.codes); i++ {
		if tm.codes[i-1] >= tm.codes[i] {
			t.Errorf("boundaries not strictly increasing at %d: %d >= %d",
				i, tm.codes[i-1], tm.codes[i])
		}
	}
	if len(tm.sets) != len(tm.codes)-1 {
		t.Errorf("have %d interval sets for %d boundaries", len(tm.sets), len(tm.codes))
	}
}

func TestTransitionMapRangeInvariant(t *testing.T) {
	tm := NewTransitionMap()
	checkInvariant(t, tm)

	adds := []Range{
		{'a', 'z' + 1},
		{'0', '9' + 1},
		{'m', 'p'},
		{'a', 'b'},
		{CodeMin, 'a'},
		{'x', CodeMax},
	}
	for i, r := range adds {
		tm.Add(r, i)
		checkInvariant(t, tm)
	}
	tm.AddSet(Range{'c', 'q'}, NewStateSet(7, 8))
	checkInvariant(t, tm)
}

func TestSplitIdempotence(t *testing.T) {
	tm := NewTransitionMap()
	tm.Add(Range{'a', 'z' + 1}, 1)

	i := tm.split('m')
	j := tm.split('m')
	if i != j {
		t.Errorf("repeated split returned %d then %d", i, j)
	}

	// The second split must not change any interval's membership.
	k := tm.split('m')
	if k != i {
		t.Errorf("third split returned %d, want %d", k, i)
	}
	for idx, s := range tm.sets {
		want := "1"
		lo, hi := tm.codes[idx], tm.codes[idx+1]
		if hi <= 'a' || lo > 'z' {
			want = ""
		}
		if s.Key() != want {
			t.Errorf("interval [%d,%d) membership = %q, want %q", lo, hi, s.Key(), want)
		}
	}
}

func TestCoverage(t *testing.T) {
	tm := NewTransitionMap()
	tm.Add(Range{'a', 'f'}, 1)
	tm.Add(Range{'d', 'k'}, 2)
	tm.Add(Range{CodeMin, '0'}, 3)

	probes := []rune{CodeMin, CodeMin + 1, -1, 0, '0', 'a', 'e', 'j', 'k', 200, CodeMax - 1}
	for _, c := range probes {
		count := 0
		for i := 0; i < len(tm.sets); i++ {
			if tm.codes[i] <= c && c < tm.codes[i+1] {
				count++
			}
		}
		if count != 1 {
			t.Errorf("code %d contained in %d intervals, want exactly 1", c, count)
		}
	}
}

func TestAddRangeTargets(t *testing.T) {
	tm := NewTransitionMap()
	tm.Add(Range{'a', 'd'}, 1)
	tm.Add(Range{'c', 'f'}, 2)

	lookup := func(c rune) StateSet {
		for i := 0; i < len(tm.sets); i++ {
			if tm.codes[i] <= c && c < tm.codes[i+1] {
				return tm.sets[i]
			}
		}
		return nil
	}

	cases := []struct {
		c    rune
		want string
	}{
		{'`', ""},
		{'a', "1"},
		{'b', "1"},
		{'c', "1,2"},
		{'d', "2"},
		{'e', "2"},
		{'f', ""},
	}
	for _, tc := range cases {
		if got := lookup(tc.c).Key(); got != tc.want {
			t.Errorf("targets for %q = %q, want %q", tc.c, got, tc.want)
		}
	}
}

func TestAddSpecial(t *testing.T) {
	tm := NewTransitionMap()
	tm.Add(Epsilon, 1)
	tm.Add(Epsilon, 2)
	tm.Add(Bol, 3)
	tm.AddSet(Eof, NewStateSet(4, 5))

	if got := tm.Epsilon().Key(); got != "1,2" {
		t.Errorf("epsilon set = %q, want %q", got, "1,2")
	}
	if tm.special[Bol].Key() != "3" {
		t.Errorf("bol set = %q, want %q", tm.special[Bol].Key(), "3")
	}
	if tm.special[Eof].Key() != "4,5" {
		t.Errorf("eof set = %q, want %q", tm.special[Eof].Key(), "4,5")
	}
	if tm.Epsilon() == nil {
		t.Error("Epsilon returned nil after add")
	}

	empty := NewTransitionMap()
	if empty.Epsilon() != nil {
		t.Error("Epsilon on empty map should be nil")
	}
}

func TestAllSkipsEmptySets(t *testing.T) {
	tm := NewTransitionMap()
	tm.Add(Range{'a', 'c'}, 1)
	tm.Add(Bol, 2)

	var events []string
	for ev, set := range tm.All() {
		if set.Len() == 0 {
			t.Errorf("All yielded empty set for %s", ev)
		}
		events = append(events, ev.String())
	}
	want := []string{"'a'..'b'", "bol"}
	if len(events) != len(want) {
		t.Fatalf("All yielded %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestAllRestartable(t *testing.T) {
	tm := NewTransitionMap()
	tm.Add(Range{'a', 'c'}, 1)

	for pass := 0; pass < 2; pass++ {
		n := 0
		for range tm.All() {
			n++
		}
		if n != 1 {
			t.Errorf("pass %d yielded %d events, want 1", pass, n)
		}
	}
}

func TestMalformedRangePanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Add with lo >= hi did not panic")
		}
		if !strings.Contains(r.(string), "malformed transition range") {
			t.Errorf("unexpected panic message: %v", r)
		}
	}()
	NewTransitionMap().Add(Range{'z', 'a'}, 1)
}

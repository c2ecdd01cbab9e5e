package scantable

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// Dump writes a human-readable rendering of the table: initial states,
// then every state record with its transitions grouped into character
// ranges per target. Grouping is presentation only; the stored slots are
// untouched. Output is deterministic given identical structure.
func (f *FastMachine) Dump(w io.Writer) {
	fmt.Fprintf(w, "scan table:\n")
	fmt.Fprintf(w, "  initial states:\n")
	for _, name := range f.StartConditions() {
		fmt.Fprintf(w, "    %q: S%d\n", name, f.initial[name])
	}
	for _, s := range f.states {
		s.dump(w)
	}
}

func (s *State) dump(w io.Writer) {
	fmt.Fprintf(w, "  state S%d:\n", s.id)

	// One 256-bit occupancy bitmap per distinct target: bit c set iff
	// literal code c leads there.
	masks := make(map[int]*uint256.Int)
	first := make(map[int]int)
	for c := 0; c < AlphabetSize; c++ {
		t := s.chars[c]
		if t == None {
			continue
		}
		mask, ok := masks[t]
		if !ok {
			mask = new(uint256.Int)
			masks[t] = mask
			first[t] = c
		}
		mask.Or(mask, new(uint256.Int).Lsh(uint256.NewInt(1), uint(c)))
	}

	targets := make([]int, 0, len(masks))
	for t := range masks {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool { return first[targets[i]] < first[targets[j]] })

	for _, t := range targets {
		fmt.Fprintf(w, "    %s --> S%d\n", maskRanges(masks[t]), t)
	}
	for _, ev := range specialOrder {
		if t := s.special[ev]; t != None {
			fmt.Fprintf(w, "    %s --> S%d\n", ev, t)
		}
	}
	if s.action != nil {
		fmt.Fprintf(w, "    %s\n", s.action.Name())
	}
}

// maskRanges renders the set bits of a character bitmap as a comma-joined
// list of maximal contiguous ranges, like 'a'..'z','_'.
func maskRanges(mask *uint256.Int) string {
	var parts []string
	c := 0
	for c < AlphabetSize {
		if !maskBit(mask, c) {
			c++
			continue
		}
		start := c
		for c < AlphabetSize && maskBit(mask, c) {
			c++
		}
		if start == c-1 {
			parts = append(parts, strconv.QuoteRune(rune(start)))
		} else {
			parts = append(parts, strconv.QuoteRune(rune(start))+".."+strconv.QuoteRune(rune(c-1)))
		}
	}
	return strings.Join(parts, ",")
}

func maskBit(mask *uint256.Int, c int) bool {
	return mask[c/64]&(1<<(c%64)) != 0
}

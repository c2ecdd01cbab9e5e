package machine

import (
	"fmt"
	"math"
	"strconv"
)

// Character-code sentinels marking the open ends of a boundary table.
// Ranges reaching CodeMin or CodeMax are open-ended on that side.
const (
	CodeMin rune = math.MinInt32
	CodeMax rune = math.MaxInt32
)

// Event is an input a transition can fire on: either a half-open range of
// character codes or a symbolic Special event.
type Event interface {
	isEvent()
	String() string
}

// Range is a half-open character-code interval [Lo, Hi).
type Range struct {
	Lo, Hi rune
}

func (Range) isEvent() {}

// String renders the range compactly: single characters as 'a', closed
// ranges as 'a'..'z', and open-ended ranges relative to the sentinel.
func (r Range) String() string {
	switch {
	case r.Lo == CodeMin && r.Hi == CodeMax:
		return "any"
	case r.Lo == CodeMin:
		return "< " + formatCode(r.Hi)
	case r.Hi == CodeMax:
		return "> " + formatCode(r.Lo-1)
	case r.Lo == r.Hi-1:
		return formatCode(r.Lo)
	default:
		return formatCode(r.Lo) + ".." + formatCode(r.Hi-1)
	}
}

// Special is a non-character input symbol.
type Special int

const (
	// Epsilon is the no-input move of an NFA.
	Epsilon Special = iota
	// Bol fires at the beginning of a line.
	Bol
	// Eol fires at the end of a line.
	Eol
	// Eof fires at the end of the input.
	Eof
)

func (Special) isEvent() {}

func (s Special) String() string {
	switch s {
	case Epsilon:
		return "epsilon"
	case Bol:
		return "bol"
	case Eol:
		return "eol"
	case Eof:
		return "eof"
	default:
		return fmt.Sprintf("special(%d)", int(s))
	}
}

// specialOrder fixes the iteration order of special events everywhere the
// map is walked, keeping dumps and conversion deterministic.
var specialOrder = []Special{Epsilon, Bol, Eol, Eof}

func formatCode(c rune) string {
	if c >= 0 && c < 256 {
		return strconv.QuoteRune(c)
	}
	return fmt.Sprintf("chr(%d)", c)
}

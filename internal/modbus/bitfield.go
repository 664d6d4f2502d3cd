package modbus

import "strings"

// FlagPair names one bit of a bitfield vocabulary. A register's FlagTable
// holds a native list and, optionally, a backward-compatible list of
// FlagPairs; most registers only define the native list.
type FlagPair struct {
	Bit   uint64
	Label string
}

// FlagTable is an ordered list of (bit, label) pairs for one register's
// bitfield vocabulary, optionally with a distinct backward-compatible
// rendering.
type FlagTable struct {
	Native             []FlagPair
	BackwardCompatible []FlagPair // nil if the vocabulary has no legacy dialect
}

// Render iterates the flag list matching dialect, appending the label of
// every set bit, joined by "-". If no bits match, it returns "unknown".
func (t FlagTable) Render(v uint64, dialect Dialect) string {
	pairs := t.Native
	if dialect == DialectBackwardCompatible && t.BackwardCompatible != nil {
		pairs = t.BackwardCompatible
	}

	var labels []string
	for _, p := range pairs {
		if v&p.Bit != 0 {
			labels = append(labels, p.Label)
		}
	}
	if len(labels) == 0 {
		return "unknown"
	}
	return strings.Join(labels, "-")
}

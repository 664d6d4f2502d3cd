package modbus

import "fmt"

// formatFloat renders a decoded binary-point value the way the variable
// store expects: two decimal places, matching the original driver's
// sprintf("%.2f", ...) formatting of scaled registers.
func formatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// AccessFlag marks how a binding entry may be used by a collaborator.
type AccessFlag int

const (
	// AccessRead marks a polled, read-only entry.
	AccessRead AccessFlag = 1 << iota
	// AccessWrite marks an entry that accepts a write (RW or CMD).
	AccessWrite
	// AccessCommand marks a command entry: writes always push its fixed
	// Bitmask regardless of the value the caller supplies.
	AccessCommand
	// AccessQuickPoll marks a quick-poll entry (HU_FLAG_QUICK_POLL in the
	// original). QuickPollNames lists these entries; PollOnce does not
	// prioritize them and polls every read entry in declaration order.
	AccessQuickPoll
)

// Dialect selects which bitfield-formatter vocabulary a binding entry uses.
type Dialect int

const (
	// DialectNative renders the documented flag names.
	DialectNative Dialect = iota
	// DialectBackwardCompatible renders legacy phrasing for outlet status
	// and runtime-calibration status.
	DialectBackwardCompatible
)

// Formatter is a tagged variant over the three ways a decoded numeric
// value can be turned into a string for the variable store.
type Formatter struct {
	kind    formatterKind
	dialect Dialect
	flags   FlagTable
	lookup  map[int]string
}

type formatterKind int

const (
	formatterIdentity formatterKind = iota
	formatterBitfieldFlags
	formatterStringLookup
)

// IdentityFormatter renders the decoded number itself, with two decimal
// places (formatFloat).
var IdentityFormatter = Formatter{kind: formatterIdentity}

// BitfieldFormatter renders v against flags in the given dialect.
func BitfieldFormatter(flags FlagTable, dialect Dialect) Formatter {
	return Formatter{kind: formatterBitfieldFlags, dialect: dialect, flags: flags}
}

// StringLookupFormatter maps an enumeration value to a fixed string,
// falling back to "unknown" for an unmapped value.
func StringLookupFormatter(lookup map[int]string) Formatter {
	return Formatter{kind: formatterStringLookup, lookup: lookup}
}

// Format renders v (already decoded per the entry's DataType) to a string.
func (f Formatter) Format(v float64) string {
	switch f.kind {
	case formatterBitfieldFlags:
		return f.flags.Render(uint64(v), f.dialect)
	case formatterStringLookup:
		if s, ok := f.lookup[int(v)]; ok {
			return s
		}
		return "unknown"
	default:
		return formatFloat(v)
	}
}

// Binding is one entry of the declarative binding table (component H):
// a named UPS variable bound to a register location, its datatype, and an
// optional formatter.
type Binding struct {
	Name      string
	Access    AccessFlag
	Register  uint16
	Length    uint16 // in registers; byte span is Length*2
	DataType  DataType
	Bitmask   uint64 // fixed payload for AccessCommand entries; 0 otherwise
	Formatter Formatter
}

// IsCommand reports whether b is a command entry (write-only, fixed bitmask).
func (b Binding) IsCommand() bool {
	return b.Access&AccessCommand != 0
}

// ByteLen returns the register span of b in bytes.
func (b Binding) ByteLen() int {
	return int(b.Length) * 2
}

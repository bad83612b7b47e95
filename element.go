package collate

// A collation element is the unit of comparison produced for each matched
// code-point sequence. Weights are ordinal: only their relative order
// matters. A zero weight means the element is ignorable at that level.
//
// The default secondary and tertiary values follow the conventions of the
// Default Unicode Collation Element Table, where a plain letter carries
// secondary 0x20 and tertiary 0x02.
const (
	defaultSecondary = 0x20
	defaultTertiary  = 0x02

	// Quaternary weight assigned to non-variable, non-ignorable elements
	// under shifted alternate handling (UTS #10 §3.6.2).
	shiftedQuaternary = 0xFFFF
)

// Element is a single collation element: a four-level weight tuple plus a
// variable flag. Variable elements (typically punctuation and whitespace)
// are eligible for shifted quaternary handling, see [AlternateHandling].
type Element struct {
	Primary    uint16
	Secondary  uint16
	Tertiary   uint16
	Quaternary uint16
	Variable   bool
}

// weight returns the element's weight at the given level.
func (e Element) weight(level Level) uint16 {
	switch level {
	case Primary:
		return e.Primary
	case Secondary:
		return e.Secondary
	case Tertiary:
		return e.Tertiary
	case Quaternary:
		return e.Quaternary
	}
	return 0
}

// setWeight returns a copy of the element with the weight at the given
// level replaced.
func (e Element) setWeight(level Level, w uint16) Element {
	switch level {
	case Primary:
		e.Primary = w
	case Secondary:
		e.Secondary = w
	case Tertiary:
		e.Tertiary = w
	case Quaternary:
		e.Quaternary = w
	}
	return e
}

// ignorable reports whether the element carries no weight at any level.
func (e Element) ignorable() bool {
	return e.Primary == 0 && e.Secondary == 0 && e.Tertiary == 0 && e.Quaternary == 0
}

// Level identifies a comparison level. Each strength level includes all
// coarser ones: comparing at [Tertiary] strength also compares primary and
// secondary weights.
type Level int

const (
	// Identical marks a tailoring relation with no difference at any
	// level ("="). It is not a valid comparison strength.
	Identical Level = iota

	Primary
	Secondary
	Tertiary
	Quaternary
)

func (l Level) String() string {
	switch l {
	case Identical:
		return "identical"
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Tertiary:
		return "tertiary"
	case Quaternary:
		return "quaternary"
	}
	return "invalid"
}

// AlternateHandling selects how variable elements contribute to sort keys.
type AlternateHandling int

const (
	// AltNonIgnorable compares variable elements like any other element.
	// This is the default.
	AltNonIgnorable AlternateHandling = iota

	// AltShifted zeroes the primary through tertiary weights of variable
	// elements and re-emits their primary weight at the quaternary level,
	// so punctuation only distinguishes otherwise-equal strings.
	AltShifted
)

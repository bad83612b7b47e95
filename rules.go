package collate

// A Tailoring is the parsed form of a tailoring rule text: the comparison
// settings it declares and its ordered rule sequence. Rules must be
// applied strictly in order because later relations may reset relative to
// characters positioned by earlier ones.
//
// A Tailoring is purely syntactic. Resolving reset points against a table
// and assigning weights happens in [Apply].
type Tailoring struct {
	Settings []Setting
	Rules    []Rule
}

// Setting is a bracketed "[key value]" pair altering the comparison
// configuration, such as "[strength secondary]" or "[alternate shifted]".
// Keys the applier does not recognize are preserved here and otherwise
// ignored.
type Setting struct {
	Key   string
	Value string
}

// RuleKind discriminates the flat rule variants.
type RuleKind int

const (
	// RuleReset ("&seq") makes an existing table entry the current
	// anchor for the relations that follow.
	RuleReset RuleKind = iota

	// RuleRelation ("<seq", "<<seq", ..., "=seq") positions a target
	// sequence relative to the current anchor, after which the target
	// becomes the anchor.
	RuleRelation

	// RuleRangeRelation ("<*abx-z") applies the relation to each
	// character of a contiguous run in turn, each character anchoring
	// the next.
	RuleRangeRelation
)

// Rule is one step of a tailoring: a reset or a (range) relation. The
// fields used depend on Kind.
type Rule struct {
	Kind RuleKind

	// Level is the relation strength: [Primary] through [Quaternary]
	// for "<" through "<<<<", or [Identical] for "=". Unused on resets.
	Level Level

	// Before, on a reset, requests that the first following relation
	// place its target before the anchor instead of after it, at the
	// declared strength (1-3). Zero means no modifier.
	Before Level

	// Sequence is the reset point or the relation target.
	Sequence []rune

	// Prefix restricts a relation's mapping to positions where the
	// given code points were just consumed ("target|prefix").
	Prefix []rune

	// Extension appends the mapped elements of the given code points to
	// the target's element sequence ("target/extension").
	Extension []rune

	// Run holds the contiguous run of a range relation. A single
	// character is an item with Lo == Hi.
	Run []RunItem
}

// RunItem is one piece of a range-relation run: a single character or an
// inclusive character range written "x-y".
type RunItem struct {
	Lo, Hi rune
}

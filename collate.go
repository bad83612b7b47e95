package collate

import "golang.org/x/text/unicode/norm"

// A Collator generates sort keys and compares strings under a collation
// element table and a comparison configuration. Construct it once, then
// share it: all methods except [Collator.ApplyTailoring] are read-only and
// safe for concurrent use.
type Collator struct {
	table     *Table
	strength  Level
	alternate AlternateHandling
	backwards Level
	normalize bool
}

// An Option configures a [Collator].
type Option func(*Collator)

// Strength sets the comparison strength. Each level includes all coarser
// ones. The default is [Tertiary].
func Strength(l Level) Option {
	return func(c *Collator) { c.strength = l }
}

// Alternate sets the handling of variable elements. The default is
// [AltNonIgnorable].
func Alternate(a AlternateHandling) Option {
	return func(c *Collator) { c.alternate = a }
}

// Backwards marks a level whose weights compare in reverse element order,
// as French accent ordering does at the secondary level. Zero (the
// default) marks no level.
func Backwards(l Level) Option {
	return func(c *Collator) { c.backwards = l }
}

// Normalize makes the collator decompose input to NFD before mapping.
// Off by default: input is assumed to be normalized already, and table
// entries are keyed on decomposed sequences.
func Normalize(enabled bool) Option {
	return func(c *Collator) { c.normalize = enabled }
}

// New returns a collator over the given table. Without options it
// compares at tertiary strength with non-ignorable variable handling.
func New(table *Table, opts ...Option) *Collator {
	c := &Collator{table: table, strength: Tertiary}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SortKey generates the sort key for s. Keys from the same collator
// compare with [Key.Compare]; generation is deterministic and never
// fails.
func (c *Collator) SortKey(s string) Key {
	if c.normalize {
		s = norm.NFD.String(s)
	}
	return c.keyFromRunes([]rune(s))
}

// SortKeyFromRunes is like [Collator.SortKey] for an already-decoded
// code-point sequence. The input is not normalized.
func (c *Collator) SortKeyFromRunes(rs []rune) Key {
	return c.keyFromRunes(rs)
}

func (c *Collator) keyFromRunes(rs []rune) Key {
	elems := appendElements(nil, rs, c.table)
	return generateKey(elems, c.strength, c.alternate, c.backwards)
}

// Compare returns -1, 0 or 1 depending on whether a orders before, equal
// to or after b under the collation.
func (c *Collator) Compare(a, b string) int {
	return c.SortKey(a).Compare(c.SortKey(b))
}

// ApplyTailoring derives a tailored table from the collator's current
// table via [Apply] and adopts it, then interprets the tailoring's
// comparison settings:
//
//	[strength primary|secondary|tertiary|quaternary]
//	[alternate non-ignorable|shifted]
//	[backwards 2]
//
// Settings with other keys or unrecognized values are ignored. On error
// the collator is left unchanged. Not safe to call concurrently with key
// generation.
func (c *Collator) ApplyTailoring(t *Tailoring) error {
	table, err := Apply(c.table, t)
	if err != nil {
		return err
	}
	c.table = table
	for _, s := range t.Settings {
		switch s.Key {
		case "strength":
			switch s.Value {
			case "primary", "1":
				c.strength = Primary
			case "secondary", "2":
				c.strength = Secondary
			case "tertiary", "3":
				c.strength = Tertiary
			case "quaternary", "4":
				c.strength = Quaternary
			}
		case "alternate":
			switch s.Value {
			case "non-ignorable":
				c.alternate = AltNonIgnorable
			case "shifted":
				c.alternate = AltShifted
			}
		case "backwards":
			if s.Value == "2" {
				c.backwards = Secondary
			}
		}
	}
	return nil
}

package collate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keyOrder asserts that the sort keys of the given strings are in strictly
// ascending order under c.
func keyOrder(t *testing.T, c *Collator, ss ...string) {
	t.Helper()
	for i := 1; i < len(ss); i++ {
		if c.Compare(ss[i-1], ss[i]) >= 0 {
			t.Errorf("want %q < %q, got keys %v and %v",
				ss[i-1], ss[i], c.SortKey(ss[i-1]), c.SortKey(ss[i]))
		}
	}
}

func TestTailorPrimaryChain(t *testing.T) {
	// Relations chain off the previous target: y and z both end up
	// between x's anchor and the next base letter.
	c := mustTailor(t, "&a<y<z")
	keyOrder(t, c, "a", "y", "z")
}

func TestTailorStrengthLevels(t *testing.T) {
	tests := []struct {
		name    string
		rules   string
		equalAt Level
	}{
		{"secondary difference", "&a<<q", Primary},
		{"tertiary difference", "&a<<<q", Secondary},
		{"quaternary difference", "&a<<<<q", Tertiary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Equal at the coarser strength, ordered one level finer.
			c := mustTailor(t, tt.rules, Strength(tt.equalAt))
			assert.Zero(t, c.Compare("a", "q"))

			c = mustTailor(t, tt.rules, Strength(tt.equalAt+1))
			assert.Negative(t, c.Compare("a", "q"))
		})
	}
}

func TestTailorIdentical(t *testing.T) {
	c := mustTailor(t, "&a=q", Strength(Quaternary))
	assert.Zero(t, c.Compare("a", "q"))
	assert.Equal(t, c.SortKey("a"), c.SortKey("q"))
}

func TestTailorRange(t *testing.T) {
	c := mustTailor(t, "&a<*qrs")
	keyOrder(t, c, "a", "q", "r", "s")
	// Each range character is strictly primary-greater than its
	// predecessor.
	cp := New(c.table, Strength(Primary))
	keyOrder(t, cp, "a", "q", "r", "s")
}

func TestTailorRangeSpan(t *testing.T) {
	c := mustTailor(t, "&a<*q-t")
	keyOrder(t, c, "a", "q", "r", "s", "t")
}

func TestTailorRangeChainsOn(t *testing.T) {
	// A relation after a range anchors on the last range character.
	c := mustTailor(t, "&a<*qr<z")
	keyOrder(t, c, "a", "q", "r", "z")
}

func TestTailorBefore(t *testing.T) {
	// q goes immediately before b at primary strength: after a, before b.
	c := mustTailor(t, "&[before 1]b<q")
	keyOrder(t, c, "a", "q", "b")
}

func TestTailorBeforeSecondary(t *testing.T) {
	c := mustTailor(t, "&[before 2]á<<q", Strength(Secondary))
	keyOrder(t, c, "q", "á")
	assert.Zero(t, New(c.table, Strength(Primary)).Compare("q", "á"))
}

func TestTailorExistingEntryReweighted(t *testing.T) {
	// "&a<c" rewrites c's weights; the old mapping is replaced, not kept
	// alongside.
	c := mustTailor(t, "&a<c")
	keyOrder(t, c, "a", "c", "b")
}

func TestTailorContraction(t *testing.T) {
	// A multi-character target introduces a contraction: "zh" maps as a
	// unit after d.
	c := mustTailor(t, "&d<zh")
	keyOrder(t, c, "d", "zh", "e")
	key := c.SortKey("zh")
	require.NotEmpty(t, key)
	assert.Len(t, c.table.mustLookupKey(t, "zh"), 1)
}

func TestTailorExtension(t *testing.T) {
	// "&a<q/b" gives q the position after a plus b's trailing elements.
	c := mustTailor(t, "&a<q/b", Strength(Primary))
	key := c.SortKey("q")
	wantTail := c.SortKey("b")
	require.Greater(t, len(key), len(wantTail))
	assert.Equal(t, wantTail, key[len(key)-len(wantTail):])
	keyOrder(t, c, "a", "q")
}

func TestTailorPrefixContext(t *testing.T) {
	// "&a<<q|h" repositions q only when it follows h.
	c := mustTailor(t, "&a<<q|h")

	// After h, q maps near a: "hq" and "ha" share primaries.
	cp := New(c.table, Strength(Primary))
	assert.Zero(t, cp.Compare("hq", "ha"))
	assert.Negative(t, c.Compare("ha", "hq"))

	// Without the prefix, q keeps its implicit weights above the table.
	keyOrder(t, cp, "e", "q")
}

func TestTailorUnknownResetPoint(t *testing.T) {
	table := mustTable(t)
	tailoring, err := ParseTailoring("&ж<b")
	require.NoError(t, err)

	got, err := Apply(table, tailoring)
	require.Error(t, err)
	assert.Nil(t, got, "no partial table on error")

	var uerr *UnknownResetPointError
	require.True(t, errors.As(err, &uerr), "want *UnknownResetPointError, got %T", err)
	assert.Equal(t, []rune{0x0436}, uerr.Sequence)
}

func TestTailorResetToTailoredEntry(t *testing.T) {
	// A reset may anchor on a character introduced by an earlier rule.
	c := mustTailor(t, "&a<q &q<w")
	keyOrder(t, c, "a", "q", "w")
}

func TestTailorRelationWithoutReset(t *testing.T) {
	table := mustTable(t)
	_, err := Apply(table, &Tailoring{Rules: []Rule{
		{Kind: RuleRelation, Level: Primary, Sequence: []rune("q")},
	}})
	assert.ErrorIs(t, err, errNoResetPoint)
}

func TestApplyLeavesBaseUntouched(t *testing.T) {
	table := mustTable(t)
	before := New(table).SortKey("abc")

	tailoring, err := ParseTailoring("&a<c<q")
	require.NoError(t, err)
	_, err = Apply(table, tailoring)
	require.NoError(t, err)

	assert.Equal(t, before, New(table).SortKey("abc"), "base table must not change")
}

// mustLookupKey resolves an exact entry for tests.
func (t *Table) mustLookupKey(tb *testing.T, key string) []Element {
	tb.Helper()
	elems, ok := t.lookupExact([]rune(key))
	if !ok {
		tb.Fatalf("no entry for %q", key)
	}
	return elems
}

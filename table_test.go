package collate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupLongestMatch(t *testing.T) {
	table := NewTable()
	table.Insert([]rune("c"), []Element{{Primary: 1}})
	table.Insert([]rune("ch"), []Element{{Primary: 2}})
	table.Insert([]rune("h"), []Element{{Primary: 3}})
	table.Insert([]rune("e"), []Element{{Primary: 4}})

	tests := []struct {
		name    string
		input   string
		pos     int
		n       int
		primary uint16
	}{
		{"longest wins", "che", 0, 2, 2},
		{"single when no longer key", "ce", 0, 1, 1},
		{"match mid-input", "ach", 1, 2, 2},
		{"prefix of key at end of input", "c", 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, elems := table.Lookup([]rune(tt.input), tt.pos, nil)
			assert.Equal(t, tt.n, n)
			require.NotEmpty(t, elems)
			assert.Equal(t, tt.primary, elems[0].Primary)
		})
	}
}

func TestLookupPrefixOnlyKey(t *testing.T) {
	// "ab" is registered but "a" alone is not: looking at "ac" must not
	// get stuck on the keyless interior node.
	table := NewTable()
	table.Insert([]rune("ab"), []Element{{Primary: 1}})

	n, elems := table.Lookup([]rune("ac"), 0, nil)
	assert.Equal(t, 1, n)
	require.Len(t, elems, 2)
	assert.Greater(t, elems[0].Primary, uint16(1), "falls back to implicit weights")
}

func TestInsertReplaces(t *testing.T) {
	table := NewTable()
	table.Insert([]rune("a"), []Element{{Primary: 1}})
	table.Insert([]rune("a"), []Element{{Primary: 9}})

	n, elems := table.Lookup([]rune("a"), 0, nil)
	assert.Equal(t, 1, n)
	require.Len(t, elems, 1)
	assert.Equal(t, uint16(9), elems[0].Primary)
}

func TestLookupContextual(t *testing.T) {
	table := NewTable()
	table.Insert([]rune("a"), []Element{{Primary: 1}})
	table.Insert([]rune("b"), []Element{{Primary: 2}})
	table.insertContextual([]rune("a"), []rune("b"), []Element{{Primary: 7}})

	// After consuming "a" the contextual entry wins over the plain one.
	_, elems := table.Lookup([]rune("ab"), 1, []rune("a"))
	assert.Equal(t, uint16(7), elems[0].Primary)

	// Without the context the plain entry applies.
	_, elems = table.Lookup([]rune("b"), 0, nil)
	assert.Equal(t, uint16(2), elems[0].Primary)
	_, elems = table.Lookup([]rune("bb"), 1, []rune("b"))
	assert.Equal(t, uint16(2), elems[0].Primary)
}

func TestCloneIsolation(t *testing.T) {
	base := NewTable()
	base.Insert([]rune("a"), []Element{{Primary: 1}})

	derived := base.clone()
	derived.Insert([]rune("a"), []Element{{Primary: 5}})
	derived.Insert([]rune("z"), []Element{{Primary: 6}})

	_, elems := base.Lookup([]rune("a"), 0, nil)
	assert.Equal(t, uint16(1), elems[0].Primary, "base entry unchanged")
	n, _ := base.Lookup([]rune("z"), 0, nil)
	assert.Equal(t, 1, n)
	_, elems = base.Lookup([]rune("z"), 0, nil)
	assert.Len(t, elems, 2, "base has no entry for z, only implicit weights")
}

func TestWeightRangeSearch(t *testing.T) {
	ranges := []weightRange{
		{lo: 0x3400, hi: 0x4DBF, base: 0xFB80},
		{lo: 0x17000, hi: 0x18AFF, base: 0xFB00},
		{lo: 0x20000, hi: 0x2A6DF, base: 0xFB84},
	}

	tests := []struct {
		name string
		r    rune
		base uint16
		hit  bool
	}{
		{"first range", 0x3400, 0xFB80, true},
		{"middle range", 0x18000, 0xFB00, true},
		{"last range upper bound", 0x2A6DF, 0xFB84, true},
		{"below all", 0x1000, 0, false},
		{"between ranges", 0x5000, 0, false},
		{"above all", 0x30000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wr := weightRangeSearch(ranges, tt.r)
			if !tt.hit {
				assert.Nil(t, wr)
				return
			}
			require.NotNil(t, wr)
			assert.Equal(t, tt.base, wr.base)
		})
	}
}

func TestAddImplicitRangeKeepsOrder(t *testing.T) {
	table := NewTable()
	table.addImplicitRange(0x20000, 0x2A6DF, 0xFB84)
	table.addImplicitRange(0x3400, 0x4DBF, 0xFB80)
	table.addImplicitRange(0x17000, 0x18AFF, 0xFB00)

	for i := 1; i < len(table.implicit); i++ {
		assert.Less(t, table.implicit[i-1].lo, table.implicit[i].lo)
	}
	wr := weightRangeSearch(table.implicit, 0x17000)
	require.NotNil(t, wr)
	assert.Equal(t, uint16(0xFB00), wr.base)
}

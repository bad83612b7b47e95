package collate

// A Table maps code-point sequences to collation element sequences. Keys of
// length greater than one are contractions; values of length greater than
// one are expansions. Lookup is longest-prefix-match: at any input position
// the longest registered key wins over any shorter one.
//
// A Table is immutable once construction (loading or tailoring) has
// finished and may then be shared freely across goroutines.
type Table struct {
	root *trieNode

	// Implicit-weight ranges declared by the table source, sorted by
	// first code point. Code points inside a range synthesize weights
	// from the range's base primary.
	implicit []weightRange

	// Largest primary weight of any explicit entry. Implicit weights for
	// code points outside any declared range start above this, so
	// untabulated characters sort after all tabulated ones.
	maxPrimary uint16
}

// weightRange flags a contiguous run of code points as implicit-eligible.
type weightRange struct {
	lo, hi rune
	base   uint16
}

// The lookup structure is a trie keyed by code point. Each node may carry
// an unconditional entry, contextual entries (mappings valid only after a
// given preceding sequence, registered by prefixed tailoring rules), or
// both.
type trieNode struct {
	children   map[rune]*trieNode
	elems      []Element // unconditional entry, nil if none
	hasEntry   bool
	contextual []contextEntry
}

// contextEntry is a mapping that applies only when the code points
// consumed immediately before the key match prefix.
type contextEntry struct {
	prefix []rune
	elems  []Element
}

// NewTable returns an empty table. Every lookup on it synthesizes implicit
// weights.
func NewTable() *Table {
	return &Table{root: &trieNode{}}
}

// Insert registers elems as the mapping for the given code-point sequence,
// replacing any existing unconditional mapping for the same key. The key
// must be non-empty and elems non-empty; both are used as given and must
// not be modified afterwards.
func (t *Table) Insert(key []rune, elems []Element) {
	node := t.root
	for _, r := range key {
		child := node.children[r]
		if child == nil {
			if node.children == nil {
				node.children = make(map[rune]*trieNode)
			}
			child = &trieNode{}
			node.children[r] = child
		}
		node = child
	}
	node.elems = elems
	node.hasEntry = true
	for _, e := range elems {
		if e.Primary > t.maxPrimary {
			t.maxPrimary = e.Primary
		}
	}
}

// insertContextual registers a mapping for key that is only active when
// the immediately preceding code points match prefix. A contextual entry
// for the same key and prefix is replaced.
func (t *Table) insertContextual(prefix, key []rune, elems []Element) {
	node := t.root
	for _, r := range key {
		child := node.children[r]
		if child == nil {
			if node.children == nil {
				node.children = make(map[rune]*trieNode)
			}
			child = &trieNode{}
			node.children[r] = child
		}
		node = child
	}
	for i, ce := range node.contextual {
		if runesEqual(ce.prefix, prefix) {
			node.contextual[i].elems = elems
			return
		}
	}
	node.contextual = append(node.contextual, contextEntry{prefix: prefix, elems: elems})
	for _, e := range elems {
		if e.Primary > t.maxPrimary {
			t.maxPrimary = e.Primary
		}
	}
}

// addImplicitRange flags [lo, hi] as deriving implicit weights from base.
// Ranges are kept sorted by first code point; the loader declares them
// before any rows are inserted.
func (t *Table) addImplicitRange(lo, hi rune, base uint16) {
	i := len(t.implicit)
	for i > 0 && t.implicit[i-1].lo > lo {
		i--
	}
	t.implicit = append(t.implicit, weightRange{})
	copy(t.implicit[i+1:], t.implicit[i:])
	t.implicit[i] = weightRange{lo: lo, hi: hi, base: base}
}

// Lookup finds the longest key registered in the table that starts at
// position pos of rs and returns its length in code points together with
// its element sequence. Contextual entries are considered only when
// context (the code points already consumed before pos) ends with their
// prefix; a matching contextual entry takes precedence over an
// unconditional entry of the same length.
//
// Lookup never fails: if no key matches, it consumes one code point and
// returns synthesized implicit weights for it.
func (t *Table) Lookup(rs []rune, pos int, context []rune) (n int, elems []Element) {
	node := t.root
	for i := pos; i < len(rs); i++ {
		node = node.children[rs[i]]
		if node == nil {
			break
		}
		if e, ok := node.match(context); ok {
			n, elems = i-pos+1, e
		}
	}
	if elems == nil {
		return 1, t.implicitElements(rs[pos])
	}
	return n, elems
}

// match resolves the entry active at this node for the given preceding
// context, preferring contextual entries over the unconditional one.
func (nd *trieNode) match(context []rune) ([]Element, bool) {
	for _, ce := range nd.contextual {
		if hasSuffix(context, ce.prefix) {
			return ce.elems, true
		}
	}
	if nd.hasEntry {
		return nd.elems, true
	}
	return nil, false
}

// implicitElements synthesizes the element sequence for a code point with
// no table entry, following the two-element derived form of UTS #10 §10.1:
//
//	[base + (cp >> 15), 0x0020, 0x0002] [(cp & 0x7FFF) | 0x8000, 0, 0]
//
// For code points inside a declared implicit range the base comes from the
// range declaration. All other code points use a base one above the
// largest explicit primary, so their first primary strictly exceeds every
// tabulated primary and code-point order is preserved among them. The
// result depends only on the code point and table metadata, never on
// lookup order.
func (t *Table) implicitElements(r rune) []Element {
	base := t.maxPrimary + 1
	if wr := weightRangeSearch(t.implicit, r); wr != nil {
		base = wr.base
	}
	return []Element{
		{Primary: base + uint16(r>>15), Secondary: defaultSecondary, Tertiary: defaultTertiary},
		{Primary: uint16(r&0x7FFF) | 0x8000},
	}
}

// weightRangeSearch performs a binary search on the sorted implicit-range
// table. Returns nil if r falls in no declared range.
func weightRangeSearch(ranges []weightRange, r rune) *weightRange {
	from, to := 0, len(ranges)
	for to > from {
		middle := (from + to) / 2
		wr := &ranges[middle]
		if r < wr.lo {
			to = middle
			continue
		}
		if r > wr.hi {
			from = middle + 1
			continue
		}
		return wr
	}
	return nil
}

// lookupExact returns the unconditional entry for exactly the given key,
// if one exists. Used by the tailoring applier to resolve reset points.
func (t *Table) lookupExact(key []rune) ([]Element, bool) {
	node := t.root
	for _, r := range key {
		node = node.children[r]
		if node == nil {
			return nil, false
		}
	}
	if !node.hasEntry {
		return nil, false
	}
	return node.elems, true
}

// clone returns a deep copy of the table's index. Element slices are
// shared: entries are only ever replaced whole, never edited in place.
func (t *Table) clone() *Table {
	return &Table{
		root:       t.root.clone(),
		implicit:   t.implicit,
		maxPrimary: t.maxPrimary,
	}
}

func (nd *trieNode) clone() *trieNode {
	c := &trieNode{
		elems:    nd.elems,
		hasEntry: nd.hasEntry,
	}
	if len(nd.contextual) > 0 {
		c.contextual = make([]contextEntry, len(nd.contextual))
		copy(c.contextual, nd.contextual)
	}
	if len(nd.children) > 0 {
		c.children = make(map[rune]*trieNode, len(nd.children))
		for r, child := range nd.children {
			c.children[r] = child.clone()
		}
	}
	return c
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// hasSuffix reports whether rs ends with suffix.
func hasSuffix(rs, suffix []rune) bool {
	if len(rs) < len(suffix) {
		return false
	}
	return runesEqual(rs[len(rs)-len(suffix):], suffix)
}

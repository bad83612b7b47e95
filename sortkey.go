package collate

// A Key is a sort key: the ordered weight sequence generated for one
// input. Two strings compare under the collation exactly as their keys
// compare numerically, weight by weight. Keys generated with differing
// tables or configurations are not comparable.
type Key []uint16

// Compare returns -1, 0 or 1 depending on whether k orders before, equal
// to or after other.
func (k Key) Compare(other Key) int {
	n := len(k)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if k[i] != other[i] {
			if k[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(k) < len(other):
		return -1
	case len(k) > len(other):
		return 1
	}
	return 0
}

// Bytes renders the key as big-endian bytes whose bytewise lexicographic
// order matches the key order, for use as a database or index key.
func (k Key) Bytes() []byte {
	b := make([]byte, 0, 2*len(k))
	for _, w := range k {
		b = append(b, byte(w>>8), byte(w))
	}
	return b
}

// generateKey packs an element sequence into a sort key. For each level
// from primary up to strength it appends every non-zero weight at that
// level in element order, reversing the level marked backwards, with a
// single zero sentinel between levels. Weights are never zero, so the
// sentinel is unambiguous.
func generateKey(elems []Element, strength Level, alternate AlternateHandling, backwards Level) Key {
	if strength < Primary {
		strength = Primary
	}
	if alternate == AltShifted {
		elems = shiftVariable(elems)
	}
	key := make(Key, 0, len(elems)+int(strength))
	for level := Primary; level <= strength; level++ {
		if level > Primary {
			key = append(key, 0)
		}
		start := len(key)
		for _, e := range elems {
			if w := e.weight(level); w != 0 {
				key = append(key, w)
			}
		}
		if level == backwards {
			reverseWeights(key[start:])
		}
	}
	return key
}

// shiftVariable rewrites an element sequence for shifted alternate
// handling (UTS #10 §3.6.2): a variable element moves its primary weight
// to the quaternary level and becomes ignorable at every coarser level; an
// ignorable element following a variable one is dropped entirely, so a
// mark on shifted punctuation cannot outweigh the punctuation itself;
// completely ignorable elements stay without a quaternary; everything else
// gets the maximum quaternary weight.
func shiftVariable(elems []Element) []Element {
	shifted := make([]Element, len(elems))
	afterVariable := false
	for i, e := range elems {
		switch {
		case e.Variable:
			shifted[i] = Element{Quaternary: e.Primary}
			afterVariable = true
		case e.ignorable():
			// Contributes nothing at any level either way.
		case e.Primary == 0 && afterVariable:
			shifted[i] = Element{}
		default:
			e.Quaternary = shiftedQuaternary
			shifted[i] = e
			afterVariable = false
		}
	}
	return shifted
}

func reverseWeights(ws []uint16) {
	for i, j := 0, len(ws)-1; i < j; i, j = i+1, j-1 {
		ws[i], ws[j] = ws[j], ws[i]
	}
}

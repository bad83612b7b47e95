package collate

// appendElements maps a code-point sequence to its collation elements in
// a single left-to-right scan: at each position the longest matching table
// key wins and the scan advances past it. The code points already consumed
// are handed to each lookup as context, so prefix-conditioned tailoring
// entries see exactly the window they were registered for and the scan
// itself stays stateless.
//
// Mapping is total: unmatched code points synthesize implicit weights, and
// empty input yields no elements.
func appendElements(dst []Element, rs []rune, table *Table) []Element {
	for pos := 0; pos < len(rs); {
		n, elems := table.Lookup(rs, pos, rs[:pos])
		dst = append(dst, elems...)
		pos += n
	}
	return dst
}

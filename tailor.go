package collate

import (
	"errors"
	"fmt"
)

// UnknownResetPointError reports a tailoring rule that anchors on a
// sequence with no entry in the table being tailored. Application aborts;
// no partial table is produced.
type UnknownResetPointError struct {
	Sequence []rune
}

func (e *UnknownResetPointError) Error() string {
	return fmt.Sprintf("collate: unknown reset point %q", string(e.Sequence))
}

// errNoResetPoint guards hand-built rule sequences; [ParseTailoring] never
// produces a relation before a reset.
var errNoResetPoint = errors.New("collate: relation with no reset point in effect")

// Apply derives a tailored table from base by applying the tailoring's
// rules in order. The base table is not modified; entries in the result
// are only added or reweighted, never removed.
//
// The applier carries a current anchor element sequence through the rule
// sequence. A reset looks its sequence up in the evolving table and makes
// it the anchor; every relation derives its target's elements from the
// anchor and then becomes the anchor itself, so "&a<b<c" orders c after b
// after a. A reset sequence with no table entry fails with
// [UnknownResetPointError].
//
// Settings carried by the tailoring configure comparison, not table
// content, and are ignored here; [Collator.ApplyTailoring] interprets
// them.
func Apply(base *Table, t *Tailoring) (*Table, error) {
	table := base.clone()

	var anchor []Element
	var before Level // pending [before n] from the last reset
	for _, rule := range t.Rules {
		switch rule.Kind {
		case RuleReset:
			elems, ok := table.lookupExact(rule.Sequence)
			if !ok {
				return nil, &UnknownResetPointError{Sequence: rule.Sequence}
			}
			anchor = elems
			before = rule.Before

		case RuleRelation:
			if anchor == nil {
				return nil, errNoResetPoint
			}
			elems := relativeElements(anchor, rule.Level, before != 0)
			before = 0
			if len(rule.Extension) > 0 {
				elems = appendElements(elems, rule.Extension, table)
			}
			if len(rule.Prefix) > 0 {
				table.insertContextual(rule.Prefix, rule.Sequence, elems)
			} else {
				table.Insert(rule.Sequence, elems)
			}
			anchor = elems

		case RuleRangeRelation:
			if anchor == nil {
				return nil, errNoResetPoint
			}
			for _, item := range rule.Run {
				for r := item.Lo; r <= item.Hi; r++ {
					elems := relativeElements(anchor, rule.Level, before != 0)
					// The [before n] modifier applies to the first
					// character of a run only; the rest chain after
					// it as usual.
					before = 0
					table.Insert([]rune{r}, elems)
					anchor = elems
				}
			}
		}
	}
	return table, nil
}

// relativeElements derives a target's element sequence from the anchor's:
// a copy whose first element differs from the anchor strictly at the
// declared level, with all finer levels reset to their minimum
// distinguishing values. Successive insertions at the same level tie-break
// naturally because each target anchors the next, so its finer weights
// restart and its declared-level weight is bumped once more.
//
// An [Identical] relation shares the anchor's weights exactly.
func relativeElements(anchor []Element, level Level, before bool) []Element {
	elems := make([]Element, len(anchor))
	copy(elems, anchor)
	if level == Identical {
		return elems
	}

	e := elems[0]
	w := e.weight(level)
	if before {
		if w > 0 {
			w--
		}
	} else {
		w++
	}
	e = e.setWeight(level, w)
	if level < Secondary {
		e.Secondary = defaultSecondary
	}
	if level < Tertiary {
		e.Tertiary = defaultTertiary
	}
	if level < Quaternary {
		e.Quaternary = 0
	}
	elems[0] = e
	return elems
}

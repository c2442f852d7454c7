package ledger

import (
	"github.com/biogo/store/llrb"
)

// span is a historical range keyed by its start for use in llrb.
type span struct {
	Range
	owner int // index of the owning entry
}

// Compare compares two span objects for use in llrb.
func (s span) Compare(c llrb.Comparable) int {
	return s.Start - c.(span).Start
}

// rangeIndex keeps the disjoint historical ranges of every namespace
// ordered by start.
type rangeIndex map[Namespace]*llrb.Tree

func (ri rangeIndex) insert(n Namespace, r Range, owner int) {
	t, ok := ri[n]
	if !ok {
		t = &llrb.Tree{}
		ri[n] = t
	}
	t.Insert(span{Range: r, owner: owner})
}

// find returns the owner of a historical range overlapping r. Stored ranges
// never overlap each other, so only the range with the greatest start not
// above r.End can overlap r.
func (ri rangeIndex) find(n Namespace, r Range) (int, bool) {
	t, ok := ri[n]
	if !ok || t.Len() == 0 {
		return 0, false
	}
	c := t.Floor(span{Range: Range{Start: r.End}})
	if c == nil {
		return 0, false
	}
	s := c.(span)
	if s.Overlaps(r) {
		return s.owner, true
	}
	return 0, false
}

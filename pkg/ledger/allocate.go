package ledger

import (
	"cmp"
	"math"
	"slices"
)

// Counts is the number of new accessions a submission needs.
type Counts struct {
	Variants int
	Calls    int
	Regions  int
}

// Allocation is the block of identifiers reserved for one submission.
// Each namespace gets at most one contiguous range.
type Allocation struct {
	SubmissionID string
	Kind         Kind
	Study        int
	Variants     Range
	Calls        Range
	Regions      Range
}

// Range returns the allocated range of the namespace.
func (a Allocation) Range(n Namespace) Range {
	switch n {
	case Study:
		return Range{Start: a.Study, End: a.Study}
	case Variant:
		return a.Variants
	case Call:
		return a.Calls
	case Region:
		return a.Regions
	}
	return Range{}
}

// Entry converts the allocation to a ledger entry.
func (a Allocation) Entry() Entry {
	res := Entry{Study: a.Study, SubmissionID: a.SubmissionID}
	if !a.Variants.IsZero() {
		res.Variants = []Range{a.Variants}
	}
	if !a.Calls.IsZero() {
		res.Calls = []Range{a.Calls}
	}
	if !a.Regions.IsZero() {
		res.Regions = []Range{a.Regions}
	}
	return res
}

// Allocate reserves one contiguous block per namespace for the submission.
// The ledger is not modified, use Commit with Allocation.Entry() for that.
func (l *Ledger) Allocate(
	submissionID string,
	kind Kind,
	counts Counts,
) (Allocation, error) {
	res := Allocation{SubmissionID: submissionID, Kind: kind}
	if err := CheckSubmissionID(submissionID); err != nil {
		return res, err
	}
	if l.Has(submissionID) {
		return res, DuplicateSubmissionError(submissionID)
	}

	switch kind {
	case SNP:
		if counts.Variants <= 0 || counts.Calls != 0 || counts.Regions != 0 {
			return res, ImpossibleRangeError(kind, counts)
		}
	case SV:
		if counts.Calls <= 0 || counts.Regions <= 0 || counts.Variants != 0 {
			return res, ImpossibleRangeError(kind, counts)
		}
	default:
		return res, ImpossibleRangeError(kind, counts)
	}

	for n, count := range map[Namespace]int{
		Study:   1,
		Variant: counts.Variants,
		Call:    counts.Calls,
		Region:  counts.Regions,
	} {
		if count > 0 && l.top(n) > math.MaxInt-count {
			return res, ImpossibleRangeError(kind, counts)
		}
	}

	res.Study = l.Next(Study)
	res.Variants = l.block(Variant, counts.Variants)
	res.Calls = l.block(Call, counts.Calls)
	res.Regions = l.block(Region, counts.Regions)

	// The counters already point past every historical value, the explicit
	// per-namespace check guards against a corrupted in-memory ledger.
	for _, n := range Namespaces {
		r := res.Range(n)
		if r.IsZero() {
			continue
		}
		if owner, ok := l.collision(n, r); ok {
			return res, CollisionError(n, r, owner.SubmissionID)
		}
	}
	return res, nil
}

func (l *Ledger) block(n Namespace, count int) Range {
	if count <= 0 {
		return Range{}
	}
	start := l.Next(n)
	return Range{Start: start, End: start + count - 1}
}

// Gap is a run of values missing between the minimum and maximum of a
// namespace.
type Gap struct {
	Namespace Namespace
	From, To  int
}

// Gaps reports values that were never minted between the historical
// minimum and maximum of every namespace. A perfect ledger has no gaps, so
// any gap points to manual editing of the file. Gaps never influence the
// next free value.
func (l *Ledger) Gaps() []Gap {
	var res []Gap
	for _, n := range Namespaces {
		var rr []Range
		for _, e := range l.Entries {
			rr = append(rr, e.Ranges(n)...)
		}
		if len(rr) == 0 {
			continue
		}
		slices.SortFunc(rr, func(a, b Range) int {
			return cmp.Compare(a.Start, b.Start)
		})
		end := rr[0].End
		for _, r := range rr[1:] {
			if r.Start > end+1 {
				res = append(res, Gap{Namespace: n, From: end + 1, To: r.Start - 1})
			}
			end = max(end, r.End)
		}
	}
	return res
}

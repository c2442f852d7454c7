// Package linkage verifies the relations between Variant Regions and their
// supporting Variant Calls.
package linkage

import (
	"slices"
	"sort"
	"strings"

	"github.com/ddbj/jvar/pkg/finding"
	"github.com/ddbj/jvar/pkg/model"
	"github.com/ddbj/jvar/pkg/refindex"
	"github.com/ddbj/jvar/pkg/vocab"
)

// Placed holds the reference sequences a record resolved to. From and To
// are set for breakpoint calls only.
type Placed struct {
	Sequence refindex.Resolution
	From     refindex.Resolution
	To       refindex.Resolution
}

// Sequences are the resolved placements of calls and regions keyed by
// record ID. Records without a resolved entry are compared by their
// chromosome tokens.
type Sequences struct {
	Calls   map[string]Placed
	Regions map[string]Placed
}

// Verify checks every region against its supporting calls and reports
// calls that support no region.
func Verify(
	regions []*model.VariantRegion,
	calls []*model.VariantCall,
	seqs Sequences,
	rules *vocab.Rules,
) []finding.Finding {
	callByID := make(map[string]*model.VariantCall, len(calls))
	for _, c := range calls {
		if _, ok := callByID[c.ID]; !ok {
			callByID[c.ID] = c
		}
	}
	regionIDs := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		regionIDs[r.ID] = struct{}{}
	}

	var res []finding.Finding
	used := make(map[string]struct{})
	for _, r := range regions {
		rf := regionFindings{region: r, seqs: seqs}
		children := rf.resolve(callByID, regionIDs)
		for _, c := range children {
			used[c.ID] = struct{}{}
		}
		if rules.IsChainRegion(r.Type) {
			rf.chain(children)
		} else {
			rf.containment(children)
		}
		rf.compatibility(children, rules)
		rf.gainAndLoss(children, rules)
		res = append(res, rf.out...)
	}

	for _, c := range calls {
		if _, ok := used[c.ID]; !ok {
			res = append(res,
				finding.New(finding.OrphanCall, finding.VariantCall, c.ID).At(c.Source))
		}
	}
	return res
}

type regionFindings struct {
	region *model.VariantRegion
	seqs   Sequences
	out    []finding.Finding
}

func (rf *regionFindings) add(code finding.Code, vars ...any) {
	f := finding.New(code, finding.VariantRegion, rf.region.ID, vars...)
	rf.out = append(rf.out, f)
}

// addCall attributes a finding of the region to one of its calls.
func (rf *regionFindings) addCall(code finding.Code, c *model.VariantCall) {
	f := finding.New(code, finding.VariantCall, c.ID).At(c.Source)
	rf.out = append(rf.out, f)
}

// resolve returns supporting calls in their listing order.
func (rf *regionFindings) resolve(
	calls map[string]*model.VariantCall,
	regions map[string]struct{},
) []*model.VariantCall {
	r := rf.region
	if len(r.CallIDs) == 0 {
		rf.add(finding.RegionWithoutCalls)
	}
	var res []*model.VariantCall
	for _, id := range r.CallIDs {
		c, ok := calls[id]
		if !ok {
			rf.add(finding.UnknownSupportingCall)
			continue
		}
		res = append(res, c)
	}
	for _, id := range r.RegionIDs {
		if _, ok := regions[id]; !ok {
			rf.add(finding.UnknownSupportingRegion)
		}
	}
	return res
}

// containment checks that every child envelope lies within the region
// envelope.
func (rf *regionFindings) containment(children []*model.VariantCall) {
	p := rf.region.Placement
	start, stop, ok := p.Envelope()
	for _, c := range children {
		if !rf.sameSequence(c) {
			rf.addCall(finding.CallOtherChromosome, c)
			continue
		}
		if !ok {
			continue
		}
		cStart, cStop, cOK := c.Placement.Envelope()
		if !cOK {
			continue
		}
		if cStart < start || cStop > stop {
			rf.addCall(finding.CallOutsideRegion, c)
		}
	}
}

// sameSequence compares the resolved sequences of the region and the call.
// Unresolved placements fall back to their tokens.
func (rf *regionFindings) sameSequence(c *model.VariantCall) bool {
	a := rf.seqs.Regions[rf.region.ID].Sequence
	b := rf.seqs.Calls[c.ID].Sequence
	if a.Resolved() && b.Resolved() {
		return a.Sequence == b.Sequence
	}
	return sameToken(rf.region.Placement, c.Placement)
}

// sameToken compares sequence tokens of the same style. Tokens of
// different styles are assumed to match.
func sameToken(a, b model.Placement) bool {
	switch {
	case a.ChrName != "" && b.ChrName != "":
		return refindex.NormalizeChr(a.ChrName) == refindex.NormalizeChr(b.ChrName)
	case a.ChrAccession != "" && b.ChrAccession != "":
		return a.ChrAccession == b.ChrAccession
	case a.ContigAccession != "" && b.ContigAccession != "":
		return a.ContigAccession == b.ContigAccession
	}
	return true
}

// chain verifies mutation IDs, orders and breakpoint continuity of
// translocation and complex regions.
func (rf *regionFindings) chain(children []*model.VariantCall) {
	var missing bool
	ids := make(map[string]struct{})
	for _, c := range children {
		ids[c.MutationID] = struct{}{}
		if c.MutationOrder == nil {
			rf.addCall(finding.MissingMutationOrder, c)
			missing = true
		}
	}
	if len(ids) > 1 {
		rf.add(finding.MixedMutationID)
	}
	if missing || len(children) == 0 {
		return
	}

	sorted := slices.Clone(children)
	sort.SliceStable(sorted, func(i, j int) bool {
		return *sorted[i].MutationOrder < *sorted[j].MutationOrder
	})

	contiguous := true
	for i, c := range sorted {
		if *c.MutationOrder != i+1 {
			contiguous = false
			break
		}
	}
	listed := true
	for i, c := range children {
		if *c.MutationOrder != i+1 {
			listed = false
			break
		}
	}
	if !contiguous || !listed {
		rf.add(finding.NonSerialMutationOrder)
	}
	if !contiguous {
		return
	}

	for i := 0; i < len(sorted)-1; i++ {
		rf.junction(sorted[i], sorted[i+1])
	}
}

// junction checks that To of one call continues into From of the next.
func (rf *regionFindings) junction(cur, next *model.VariantCall) {
	a, b := cur.To, next.From
	if !rf.sameJunction(cur, next) {
		rf.addCall(finding.ChainChromosome, next)
		return
	}
	if a.Strand != b.Strand {
		rf.addCall(finding.ChainStrand, next)
		return
	}
	if a.Coord == nil || b.Coord == nil {
		return
	}
	switch a.Strand {
	case "+":
		if *b.Coord < *a.Coord {
			rf.addCall(finding.ChainCoordinate, next)
		}
	case "-":
		if *b.Coord > *a.Coord {
			rf.addCall(finding.ChainCoordinate, next)
		}
	}
}

// sameJunction reports whether To of cur and From of next are on the same
// sequence.
func (rf *regionFindings) sameJunction(cur, next *model.VariantCall) bool {
	a := rf.seqs.Calls[cur.ID].To
	b := rf.seqs.Calls[next.ID].From
	if a.Resolved() && b.Resolved() {
		return a.Sequence == b.Sequence
	}
	return refindex.NormalizeChr(cur.To.Chr) == refindex.NormalizeChr(next.From.Chr)
}

func (rf *regionFindings) compatibility(children []*model.VariantCall, rules *vocab.Rules) {
	for _, c := range children {
		if c.Type == "" || rf.region.Type == "" {
			continue
		}
		if !rules.Compatible(rf.region.Type, c.Type) {
			rf.add(finding.IncompatibleCallType, c.Type, rf.region.Type)
		}
	}
}

// gainAndLoss reports a region where one sample has both a copy number
// gain and a copy number loss among the supporting calls.
func (rf *regionFindings) gainAndLoss(children []*model.VariantCall, rules *vocab.Rules) {
	gains := make(map[string]struct{})
	losses := make(map[string]struct{})
	for _, c := range children {
		var target map[string]struct{}
		switch {
		case rules.IsGain(c.Type):
			target = gains
		case rules.IsLoss(c.Type):
			target = losses
		default:
			continue
		}
		for _, s := range callSamples(c) {
			target[s] = struct{}{}
		}
	}

	for s := range gains {
		if _, ok := losses[s]; ok {
			rf.add(finding.GainAndLoss)
			return
		}
	}
}

// callSamples returns the samples a call is asserted for: the declared
// sample or every genotype column that carries a non-reference allele.
func callSamples(c *model.VariantCall) []string {
	if c.SampleID != "" {
		return []string{c.SampleID}
	}
	var res []string
	for s, tags := range c.Genotypes {
		if hasAlt(tags["GT"]) {
			res = append(res, s)
		}
	}
	return res
}

func hasAlt(gt string) bool {
	for _, a := range strings.FieldsFunc(gt, func(r rune) bool {
		return r == '/' || r == '|'
	}) {
		if a != "0" && a != "." {
			return true
		}
	}
	return false
}

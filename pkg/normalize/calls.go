package normalize

import (
	"maps"
	"math"
	"slices"

	"github.com/ddbj/jvar/pkg/finding"
	"github.com/ddbj/jvar/pkg/model"
	"github.com/ddbj/jvar/pkg/vocab"
)

func (n *normalizer) sheetCalls(s *Sheet) {
	for _, r := range n.keyed(s, finding.VariantCall) {
		c := &model.VariantCall{
			ID:              r.Key,
			AssayID:         r.Get(colAssayID),
			ExperimentID:    r.Get(colExperimentID),
			SampleSetID:     r.Get(colSampleSetID),
			SampleID:        r.Get(colSampleID),
			Zygosity:        n.term(r, colZygosity, vocab.Zygosity, finding.VariantCall),
			CopyNumber:      n.intCell(r, colCopyNumber, finding.VariantCall),
			AlleleCount:     n.intCell(r, colAlleleCount, finding.VariantCall),
			AlleleNumber:    n.intCell(r, colAlleleNumber, finding.VariantCall),
			AlleleFrequency: n.floatCell(r, colAlleleFrequency, finding.VariantCall),
			Placement:       n.placement(r, finding.VariantCall),
			From: model.Breakpoint{
				Chr:    r.Get(colFromChr),
				Coord:  n.intCell(r, colFromCoord, finding.VariantCall),
				Strand: r.Get(colFromStrand),
			},
			To: model.Breakpoint{
				Chr:    r.Get(colToChr),
				Coord:  n.intCell(r, colToCoord, finding.VariantCall),
				Strand: r.Get(colToStrand),
			},
			MutationID:    r.Get(colMutationID),
			MutationOrder: n.intCell(r, colMutationOrder, finding.VariantCall),
			Evidence:      r.Get(colEvidence),
			Phenotype:     r.Get(colPhenotype),
		}
		if c.AssayID == "" {
			c.AssayID = r.Get(colAssayAlt)
		}
		n.callType(c, r.Get(colCallType))
		n.linkAssay(c)
		n.addCall(c)
	}
}

func (n *normalizer) callType(c *model.VariantCall, val string) {
	if val == "" {
		n.add(finding.New(finding.MissingRequiredField, finding.VariantCall, c.ID, colCallType).
			At(c.Source))
		return
	}
	term, so, ok := n.voc.CallSO(val)
	if !ok {
		n.add(finding.New(finding.UnknownVocabulary, finding.VariantCall, c.ID, colCallType).
			At(c.Source))
		c.Type = val
		return
	}
	c.Type, c.SOTerm = term, so
}

// linkAssay resolves the Assay of a call and inherits its Experiment and
// SampleSet when the call does not carry them.
func (n *normalizer) linkAssay(c *model.VariantCall) {
	if c.AssayID != "" {
		a, ok := n.sub.Assays[c.AssayID]
		if !ok {
			n.add(finding.New(finding.UnknownAssay, finding.VariantCall, c.ID).
				At(c.Source))
		} else {
			if c.ExperimentID == "" {
				c.ExperimentID = a.ExperimentID
			}
			if c.SampleSetID == "" {
				c.SampleSetID = a.SampleSetID
			}
		}
	}
	if c.ExperimentID != "" {
		if _, ok := n.sub.Experiments[c.ExperimentID]; !ok {
			n.add(finding.New(finding.UnknownExperiment, finding.VariantCall, c.ID).
				At(c.Source))
		}
	}
	if c.SampleSetID != "" {
		if _, ok := n.sub.SampleSets[c.SampleSetID]; !ok {
			n.add(finding.New(finding.UnknownSampleSet, finding.VariantCall, c.ID).
				At(c.Source))
		}
	}
}

// addCall keeps call IDs unique across sheet rows and VCF records.
func (n *normalizer) addCall(c *model.VariantCall) {
	if _, ok := n.calls[c.ID]; ok {
		n.add(finding.New(finding.DuplicateKey, finding.VariantCall, c.ID, finding.VariantCall).
			At(c.Source))
		return
	}
	n.calls[c.ID] = struct{}{}
	n.sub.Calls = append(n.sub.Calls, c)
}

func (n *normalizer) placement(r Row, obj finding.Object) model.Placement {
	res := model.Placement{
		Assembly:        r.Get(colAssembly),
		ChrName:         r.Get(colChrName),
		ChrAccession:    r.Get(colChrAccession),
		ContigAccession: r.Get(colContigAccession),
		OuterStart:      n.intCell(r, colOuterStart, obj),
		Start:           n.intCell(r, colStart, obj),
		InnerStart:      n.intCell(r, colInnerStart, obj),
		InnerStop:       n.intCell(r, colInnerStop, obj),
		Stop:            n.intCell(r, colStop, obj),
		OuterStop:       n.intCell(r, colOuterStop, obj),
	}
	if res.Assembly == "" {
		res.Assembly = n.sub.Study.Assembly
	}
	return res
}

func (n *normalizer) regions(s *Sheet) {
	for _, r := range n.keyed(s, finding.VariantRegion) {
		reg := &model.VariantRegion{
			ID:        r.Key,
			CallIDs:   splitIDs(r.Get(colSupportCalls)),
			RegionIDs: splitIDs(r.Get(colSupportRegions)),
			Placement: n.placement(r, finding.VariantRegion),
		}

		switch val := r.Get(colRegionType); {
		case val == "":
			n.add(finding.New(finding.MissingRequiredField, finding.VariantRegion, reg.ID, colRegionType))
		default:
			term, so, ok := n.voc.RegionSO(val)
			if !ok {
				n.add(finding.New(finding.UnknownVocabulary, finding.VariantRegion, reg.ID,
					colRegionType))
				reg.Type = val
				break
			}
			reg.Type, reg.SOTerm = term, so
		}

		reg.AssertionMethod = n.term(r, colAssertionMethod, vocab.AssertionMethod, finding.VariantRegion)
		if reg.AssertionMethod == "" {
			n.add(finding.New(finding.MissingAssertion, finding.VariantRegion, reg.ID))
			reg.AssertionMethod = n.rules.DefaultAssertionMethod
		}
		n.sub.Regions = append(n.sub.Regions, reg)
	}
}

// alleleFrequencies derives missing frequencies from allele counts with
// float division and flags declared frequencies that disagree.
func (n *normalizer) alleleFrequencies() {
	for _, c := range n.sub.Calls {
		if c.AlleleCount == nil || c.AlleleNumber == nil || *c.AlleleNumber == 0 {
			continue
		}
		derived := AlleleFrequency(*c.AlleleCount, *c.AlleleNumber)
		if c.AlleleFrequency == nil {
			c.AlleleFrequency = &derived
			continue
		}
		if math.Abs(*c.AlleleFrequency-derived) > 1e-4 {
			n.add(finding.New(finding.AlleleFreqMismatch, finding.VariantCall, c.ID).
				At(c.Source))
		}
	}
}

// AlleleFrequency returns count/number rounded to 4 decimal places.
func AlleleFrequency(count, number int) float64 {
	return math.Round(float64(count)/float64(number)*1e4) / 1e4
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

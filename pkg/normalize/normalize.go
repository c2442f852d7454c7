// Package normalize converts workbook rows and VCF records into the
// canonical record model.
//
// Normalization never stops at the first bad row. Missing or duplicated
// keys, dangling references and invalid vocabulary terms are returned as
// findings, only a missing required sheet is fatal.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ddbj/jvar/pkg/finding"
	"github.com/ddbj/jvar/pkg/ledger"
	"github.com/ddbj/jvar/pkg/model"
	"github.com/ddbj/jvar/pkg/vcf"
	"github.com/ddbj/jvar/pkg/vocab"
)

type normalizer struct {
	wb       *Workbook
	voc      *vocab.Vocabulary
	rules    *vocab.Rules
	sub      *model.Submission
	findings []finding.Finding
	calls    map[string]struct{}
}

// Normalize builds a submission from the workbook and its VCF files.
func Normalize(
	submissionID string,
	wb *Workbook,
	vcfs []*vcf.File,
	voc *vocab.Vocabulary,
	rules *vocab.Rules,
) (*model.Submission, []finding.Finding, error) {
	n := &normalizer{
		wb:    wb,
		voc:   voc,
		rules: rules,
		sub:   model.NewSubmission(submissionID),
		calls: make(map[string]struct{}),
	}

	sheets, err := n.requiredSheets()
	if err != nil {
		return nil, nil, err
	}

	n.study()
	n.sampleSets(sheets[0])
	n.samples(sheets[1])
	n.experiments(sheets[2])
	n.assays(sheets[3])
	n.mergeMethods()

	callSheet, hasCalls := wb.Sheet(CallSheet)
	regionSheet, hasRegions := wb.Sheet(RegionSheet)
	n.sub.Kind = ledger.SNP
	if (hasCalls && len(callSheet.Rows) > 0) ||
		(hasRegions && len(regionSheet.Rows) > 0) || hasSV(vcfs) {
		n.sub.Kind = ledger.SV
	}

	if hasCalls {
		n.sheetCalls(callSheet)
	}
	for _, f := range vcfs {
		n.vcf(f)
	}
	if hasRegions {
		n.regions(regionSheet)
	}
	n.alleleFrequencies()
	n.pedigree()

	if len(n.sub.Calls) == 0 && len(n.sub.Variants) == 0 {
		n.add(finding.New(finding.NoVariants, finding.Study, n.sub.ID))
	}
	return n.sub, n.findings, nil
}

func (n *normalizer) requiredSheets() ([]*Sheet, error) {
	required := [][]string{
		{SampleSetSheet},
		{SampleSheet},
		{ExperimentSheet},
		{DatasetSheet, AssaySheet},
	}
	if n.wb.Study == nil {
		return nil, MissingSheetError(StudySheet)
	}
	res := make([]*Sheet, len(required))
	for i, names := range required {
		s, ok := n.wb.Sheet(names...)
		if !ok {
			return nil, MissingSheetError(names...)
		}
		res[i] = s
	}
	return res, nil
}

func hasSV(vcfs []*vcf.File) bool {
	for _, f := range vcfs {
		for _, r := range f.Records {
			if r.IsSV() {
				return true
			}
		}
	}
	return false
}

func (n *normalizer) add(f ...finding.Finding) {
	n.findings = append(n.findings, f...)
}

// keyed returns rows with unique non-empty keys. Rows without a key or
// with a repeated key are reported and dropped.
func (n *normalizer) keyed(s *Sheet, obj finding.Object) []Row {
	seen := make(map[string]struct{}, len(s.Rows))
	var res []Row
	for _, r := range s.Rows {
		if r.Key == "" {
			n.add(finding.New(finding.MissingKey, obj, rowID(r), obj))
			continue
		}
		if _, ok := seen[r.Key]; ok {
			n.add(finding.New(finding.DuplicateKey, obj, r.Key, obj))
			continue
		}
		seen[r.Key] = struct{}{}
		res = append(res, r)
	}
	return res
}

func rowID(r Row) string {
	return fmt.Sprintf("row %d", r.Num)
}

func (n *normalizer) study() {
	st := model.Study{
		Title:       n.wb.StudyValue(colTitle),
		Description: n.wb.StudyValue(colDescription),
		Assembly:    n.wb.StudyValue(colAssembly),
		Submitter:   n.wb.StudyValue(colSubmitter),
	}
	for _, v := range []struct{ col, val string }{
		{colTitle, st.Title},
		{colAssembly, st.Assembly},
	} {
		if v.val == "" {
			n.add(finding.New(finding.MissingRequiredField, finding.Study, n.sub.ID, v.col))
		}
	}
	n.sub.Study = st
}

func (n *normalizer) sampleSets(s *Sheet) {
	for _, r := range n.keyed(s, finding.SampleSet) {
		ss := &model.SampleSet{
			ID:   r.Key,
			Name: r.Get(colSampleSetName),
			Size: n.intCell(r, colSampleSetSize, finding.SampleSet),
			Sex:  n.term(r, colSex, vocab.Sex, finding.SampleSet),
		}
		n.sub.SampleSets[ss.ID] = ss
	}
}

func (n *normalizer) samples(s *Sheet) {
	for _, r := range n.keyed(s, finding.Sample) {
		smp := &model.Sample{
			ID:          r.Key,
			SampleSetID: r.Get(colSampleSetID),
			Name:        r.Get(colSampleName),
			BioSample:   r.Get(colBioSample),
			SubjectID:   r.Get(colSubjectID),
			Sex:         n.term(r, colSex, vocab.Sex, finding.Sample),
			MaternalID:  r.Get(colMaternalID),
			PaternalID:  r.Get(colPaternalID),
		}
		n.sub.Samples[smp.ID] = smp
		ss, ok := n.sub.SampleSets[smp.SampleSetID]
		if !ok {
			n.add(finding.New(finding.UnknownSampleSet, finding.Sample, smp.ID))
			continue
		}
		ss.Samples = append(ss.Samples, smp.ID)
	}
}

func (n *normalizer) experiments(s *Sheet) {
	for _, r := range n.keyed(s, finding.Experiment) {
		exp := &model.Experiment{
			ID:             r.Key,
			Type:           n.term(r, colExperimentType, vocab.ExperimentType, finding.Experiment),
			MethodType:     n.term(r, colMethodType, vocab.MethodType, finding.Experiment),
			AnalysisType:   n.term(r, colAnalysisType, vocab.AnalysisType, finding.Experiment),
			Method:         r.Get(colMethod),
			Merged:         splitIDs(r.Get(colMerged)),
			Resolution:     n.intCell(r, colResolution, finding.Experiment),
			ReferenceType:  r.Get(colReferenceType),
			DetectionLimit: r.Get(colDetectionLimit),
		}
		n.sub.Experiments[exp.ID] = exp
	}
}

// mergeMethods fills METHOD text. Plain experiments describe themselves,
// merging experiments concatenate the methods of the experiments they
// merge, which must be plain experiments of the same Experiment Type.
func (n *normalizer) mergeMethods() {
	for _, exp := range n.sub.Experiments {
		if exp.IsMerging() || exp.Method != "" {
			continue
		}
		exp.Method = joinNonEmpty(", ", exp.MethodType, exp.AnalysisType)
	}

	for _, id := range sortedKeys(n.sub.Experiments) {
		exp := n.sub.Experiments[id]
		if !exp.IsMerging() {
			continue
		}
		var methods []string
		for _, ref := range exp.Merged {
			m, ok := n.sub.Experiments[ref]
			if !ok {
				n.add(finding.New(finding.UnknownMergedExp, finding.Experiment, exp.ID))
				continue
			}
			if m.IsMerging() || m.Type != exp.Type {
				n.add(finding.New(finding.MergedExpTypeMismatch, finding.Experiment, exp.ID))
				continue
			}
			methods = append(methods, m.Method)
		}
		if len(methods) > 0 {
			exp.Method = joinNonEmpty("; ", methods...)
		}
	}
}

func (n *normalizer) assays(s *Sheet) {
	for _, r := range n.keyed(s, finding.Assay) {
		a := &model.Assay{
			ID:           r.Key,
			ExperimentID: r.Get(colExperimentID),
			SampleSetID:  r.Get(colSampleSetID),
			Platform:     r.Get(colPlatform),
			Description:  r.Get(colDescription),
			VCFFile:      r.Get(colVCFFile),
		}
		if _, ok := n.sub.Experiments[a.ExperimentID]; !ok {
			n.add(finding.New(finding.UnknownExperiment, finding.Assay, a.ID))
		}
		if _, ok := n.sub.SampleSets[a.SampleSetID]; !ok {
			n.add(finding.New(finding.UnknownSampleSet, finding.Assay, a.ID))
		}
		n.sub.Assays[a.ID] = a
	}
}

// term validates a vocabulary-controlled cell and returns its canonical
// spelling. Invalid values are kept as written.
func (n *normalizer) term(r Row, col string, f vocab.Field, obj finding.Object) string {
	val := r.Get(col)
	if val == "" {
		return ""
	}
	res, ok := n.voc.Canonical(f, val)
	if !ok {
		n.add(finding.New(finding.UnknownVocabulary, obj, r.Key, col))
		return val
	}
	return res
}

func (n *normalizer) intCell(r Row, col string, obj finding.Object) *int {
	val := r.Get(col)
	if val == "" {
		return nil
	}
	i, ok := parseInt(val)
	if !ok {
		n.add(finding.New(finding.InvalidNumber, obj, r.Key, col))
		return nil
	}
	return &i
}

func (n *normalizer) floatCell(r Row, col string, obj finding.Object) *float64 {
	val := r.Get(col)
	if val == "" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		n.add(finding.New(finding.InvalidNumber, obj, r.Key, col))
		return nil
	}
	return &f
}

// parseInt accepts integers written as spreadsheet numbers, such as
// "1,000" or "1000.0".
func parseInt(s string) (int, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

func splitIDs(s string) []string {
	var res []string
	for _, v := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return res
}

func joinNonEmpty(sep string, ss ...string) string {
	var res []string
	for _, s := range ss {
		if s != "" {
			res = append(res, s)
		}
	}
	return strings.Join(res, sep)
}

// Package model holds the canonical record types of a submission.
//
// Sheet rows and VCF records are normalized into these types, so the
// validators never see where a record came from. Missing text cells are
// empty strings, missing numbers are nil pointers.
package model

import (
	"github.com/ddbj/jvar/pkg/finding"
	"github.com/ddbj/jvar/pkg/ledger"
)

// Study is the single study of a submission, read from the vertical Study
// sheet.
type Study struct {
	Title       string
	Description string
	Assembly    string
	Submitter   string
	Accession   string
}

// SampleSet groups Samples that were analysed together.
type SampleSet struct {
	ID      string
	Name    string
	Size    *int
	Sex     string
	Samples []string
}

// Sample is one subject of a SampleSet.
type Sample struct {
	ID          string
	SampleSetID string
	Name        string
	BioSample   string
	SubjectID   string
	Sex         string
	MaternalID  string
	PaternalID  string
}

// Experiment describes how variants were detected.
type Experiment struct {
	ID             string
	Type           string
	MethodType     string
	AnalysisType   string
	Method         string
	Merged         []string
	Resolution     *int
	ReferenceType  string
	DetectionLimit string
}

// IsMerging reports whether the experiment merges other experiments.
func (e *Experiment) IsMerging() bool {
	return e.MethodType == "Merging"
}

// Assay connects an Experiment with a SampleSet and, optionally, a VCF file.
type Assay struct {
	ID           string
	ExperimentID string
	SampleSetID  string
	Platform     string
	Description  string
	VCFFile      string
}

// Placement is a genomic coordinate assertion of a call or region.
type Placement struct {
	Assembly        string
	ChrName         string
	ChrAccession    string
	ContigAccession string
	OuterStart      *int
	Start           *int
	InnerStart      *int
	InnerStop       *int
	Stop            *int
	OuterStop       *int
}

// ChrToken returns the declared chromosome token, accession first.
func (p Placement) ChrToken() string {
	if p.ChrAccession != "" {
		return p.ChrAccession
	}
	return p.ChrName
}

// Breakpoint is one side of a translocation junction.
type Breakpoint struct {
	Chr    string
	Coord  *int
	Strand string
}

// IsEmpty reports whether none of the breakpoint fields are set.
func (b Breakpoint) IsEmpty() bool {
	return b.Chr == "" && b.Coord == nil && b.Strand == ""
}

// VariantCall is one structural variant call.
type VariantCall struct {
	ID              string
	Type            string
	SOTerm          string
	AssayID         string
	ExperimentID    string
	SampleSetID     string
	SampleID        string
	Zygosity        string
	CopyNumber      *int
	AlleleCount     *int
	AlleleNumber    *int
	AlleleFrequency *float64
	Placement       Placement
	From            Breakpoint
	To              Breakpoint
	MutationID      string
	MutationOrder   *int
	Evidence        string
	Phenotype       string
	// Genotypes maps a sample identifier to FORMAT tag values.
	Genotypes map[string]map[string]string
	Source    finding.Source
	Accession string
}

// VariantRegion groups supporting calls into one variant.
type VariantRegion struct {
	ID              string
	Type            string
	SOTerm          string
	AssertionMethod string
	CallIDs         []string
	RegionIDs       []string
	Placement       Placement
	Accession       string
}

// Variant is a short variant of a dbSNP submission.
type Variant struct {
	ID        string
	AssayID   string
	Assembly  string
	Chr       string
	Pos       int
	Ref       string
	Alt       string
	Info      map[string]string
	Source    finding.Source
	Accession string
}

// Submission is the normalized content of one workbook with its VCFs.
type Submission struct {
	ID          string
	Kind        ledger.Kind
	Study       Study
	SampleSets  map[string]*SampleSet
	Samples     map[string]*Sample
	Experiments map[string]*Experiment
	Assays      map[string]*Assay
	Calls       []*VariantCall
	Regions     []*VariantRegion
	Variants    []*Variant
}

// NewSubmission returns an empty submission with initialized maps.
func NewSubmission(id string) *Submission {
	return &Submission{
		ID:          id,
		SampleSets:  make(map[string]*SampleSet),
		Samples:     make(map[string]*Sample),
		Experiments: make(map[string]*Experiment),
		Assays:      make(map[string]*Assay),
	}
}

// Call finds a call by its local ID.
func (s *Submission) Call(id string) (*VariantCall, bool) {
	for _, v := range s.Calls {
		if v.ID == id {
			return v, true
		}
	}
	return nil, false
}

// Int returns a pointer to i.
func Int(i int) *int {
	return &i
}

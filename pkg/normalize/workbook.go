package normalize

import (
	"strings"
)

// Sheet names of a submission workbook.
const (
	StudySheet      = "Study"
	SampleSetSheet  = "SampleSet"
	SampleSheet     = "Sample"
	ExperimentSheet = "Experiment"
	DatasetSheet    = "Dataset"
	AssaySheet      = "Assay"
	CallSheet       = "Variant Call (SV)"
	RegionSheet     = "Variant Region (SV)"
)

// Row is one data row of a sheet. Key is the value of the first column.
type Row struct {
	Num   int
	Key   string
	Cells map[string]string
}

// NewRow creates a row from column headers and cell values.
func NewRow(num int, columns, values []string) Row {
	res := Row{Num: num, Cells: make(map[string]string, len(columns))}
	for i, c := range columns {
		if i >= len(values) {
			break
		}
		v := strings.TrimSpace(values[i])
		if i == 0 {
			res.Key = v
		}
		if v != "" {
			res.Cells[normCol(c)] = v
		}
	}
	return res
}

// Get returns the trimmed cell value of a column, empty if missing.
// Column names are matched case-insensitively.
func (r Row) Get(col string) string {
	return r.Cells[normCol(col)]
}

// Sheet is a horizontal data sheet.
type Sheet struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Workbook is the content of a submission workbook.
type Workbook struct {
	// Study holds key/value pairs of the vertical Study sheet.
	Study  map[string]string
	Sheets map[string]*Sheet
}

// NewWorkbook returns an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{Sheets: make(map[string]*Sheet)}
}

// AddSheet stores a sheet under its name.
func (w *Workbook) AddSheet(s *Sheet) {
	w.Sheets[normCol(s.Name)] = s
}

// Sheet returns the first existing sheet among the names.
func (w *Workbook) Sheet(names ...string) (*Sheet, bool) {
	for _, n := range names {
		if s, ok := w.Sheets[normCol(n)]; ok {
			return s, true
		}
	}
	return nil, false
}

// StudyValue returns a value of the Study sheet.
func (w *Workbook) StudyValue(key string) string {
	for k, v := range w.Study {
		if strings.EqualFold(strings.TrimSpace(k), key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func normCol(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Column headers.
const (
	colTitle       = "Title"
	colDescription = "Description"
	colAssembly    = "Assembly"
	colSubmitter   = "Submitter"

	colSampleSetID   = "SampleSet ID"
	colSampleSetName = "SampleSet Name"
	colSampleSetSize = "SampleSet Size"
	colSex           = "Sex"

	colSampleName = "Sample Name"
	colBioSample  = "BioSample Accession"
	colSubjectID  = "Subject ID"
	colMaternalID = "Maternal ID"
	colPaternalID = "Paternal ID"

	colExperimentID   = "Experiment ID"
	colExperimentType = "Experiment Type"
	colMethodType     = "Method Type"
	colAnalysisType   = "Analysis Type"
	colMethod         = "Method"
	colMerged         = "Merged Experiment IDs"
	colResolution     = "Experiment Resolution"
	colReferenceType  = "Reference Type"
	colDetectionLimit = "Detection Limit"

	colAssayID  = "Dataset ID"
	colAssayAlt = "Assay ID"
	colPlatform = "Platform"
	colVCFFile  = "VCF Filename"

	colCallID          = "Variant Call ID"
	colCallType        = "Variant Call Type"
	colSampleID        = "Sample ID"
	colZygosity        = "Zygosity"
	colCopyNumber      = "Copy Number"
	colAlleleCount     = "Allele Count"
	colAlleleNumber    = "Allele Number"
	colAlleleFrequency = "Allele Frequency"
	colChrName         = "Chr Name"
	colChrAccession    = "Chr Accession"
	colContigAccession = "Contig Accession"
	colOuterStart      = "Outer Start"
	colStart           = "Start"
	colInnerStart      = "Inner Start"
	colInnerStop       = "Inner Stop"
	colStop            = "Stop"
	colOuterStop       = "Outer Stop"
	colFromChr         = "From Chr"
	colFromCoord       = "From Coord"
	colFromStrand      = "From Strand"
	colToChr           = "To Chr"
	colToCoord         = "To Coord"
	colToStrand        = "To Strand"
	colMutationID      = "Mutation ID"
	colMutationOrder   = "Mutation Order"
	colEvidence        = "Evidence"
	colPhenotype       = "Phenotype"

	colRegionID        = "Variant Region ID"
	colRegionType      = "Variant Region Type"
	colAssertionMethod = "Assertion Method"
	colSupportCalls    = "Supporting Variant Call IDs"
	colSupportRegions  = "Supporting Variant Region IDs"
)

package finding

// Code is the stable identifier of a validation rule.
type Code string

type rule struct {
	severity Severity
	template string
}

// All validation rules live in this table. Templates are fmt formats filled
// with Finding.Vars. Vars name columns, sides or vocabulary terms, never
// values of a single record: the record is named by the finding ID.
const (
	// Normalization
	MissingKey            Code = "JV_C0001"
	DuplicateKey          Code = "JV_C0002"
	MissingRequiredField  Code = "JV_C0003"
	UnknownSampleSet      Code = "JV_C0004"
	UnknownExperiment     Code = "JV_C0005"
	UnknownAssay          Code = "JV_C0006"
	UnknownVocabulary     Code = "JV_C0007"
	UnknownMergedExp      Code = "JV_C0008"
	MergedExpTypeMismatch Code = "JV_C0009"
	UnresolvedSampleCol   Code = "JV_C0010"
	UnknownVCF            Code = "JV_C0011"
	InvalidNumber         Code = "JV_C0012"
	AlleleFreqMismatch    Code = "JV_C0013"
	SampleSetSizeMismatch Code = "JV_C0014"
	SampleSexMismatch     Code = "JV_C0015"
	UnknownParent         Code = "JV_C0016"
	ParentSexMismatch     Code = "JV_C0017"
	MissingAssertion      Code = "JV_C0018"
	EmptySampleSet        Code = "JV_C0019"
	NoVariants            Code = "JV_C0020"

	// Placement
	InvalidAssembly          Code = "JV_SV0001"
	MissingPlacement         Code = "JV_SV0002"
	ChrAndContig             Code = "JV_SV0003"
	InvalidChromosome        Code = "JV_SV0004"
	InvalidContig            Code = "JV_SV0005"
	CoordinateOrder          Code = "JV_SV0006"
	MultipleStarts           Code = "JV_SV0007"
	MultipleStops            Code = "JV_SV0008"
	StartBeyondLength        Code = "JV_SV0009"
	StopBeyondLength         Code = "JV_SV0010"
	NonPositiveCoordinate    Code = "JV_SV0011"
	MissingStart             Code = "JV_SV0012"
	MissingStop              Code = "JV_SV0013"
	IncompleteBreakpoint     Code = "JV_SV0014"
	MissingStrand            Code = "JV_SV0015"
	InvalidStrand            Code = "JV_SV0016"
	StrandOnNonTranslocation Code = "JV_SV0017"
	BreakpointBeyondLength   Code = "JV_SV0018"
	ResolutionOutOfRange     Code = "JV_SV0019"
	CallBelowResolution      Code = "JV_SV0020"
	CopyNumberMismatch       Code = "JV_SV0021"
	ChrNameAccessionMismatch Code = "JV_SV0022"

	// Linkage
	RegionWithoutCalls      Code = "JV_SV0040"
	UnknownSupportingCall   Code = "JV_SV0041"
	UnknownSupportingRegion Code = "JV_SV0042"
	OrphanCall              Code = "JV_SV0043"
	CallOutsideRegion       Code = "JV_SV0044"
	CallOtherChromosome     Code = "JV_SV0045"
	MissingMutationOrder    Code = "JV_SV0046"
	MixedMutationID         Code = "JV_SV0047"
	NonSerialMutationOrder  Code = "JV_SV0048"
	ChainChromosome         Code = "JV_SV0049"
	ChainStrand             Code = "JV_SV0050"
	ChainCoordinate         Code = "JV_SV0051"
	IncompatibleCallType    Code = "JV_SV0052"
	GainAndLoss             Code = "JV_SV0053"

	// Ledger
	NonSerialAccession Code = "JV_L0001"
)

var catalog = map[Code]rule{
	MissingKey:            {Blocking, "%s ID is missing"},
	DuplicateKey:          {Blocking, "duplicated %s ID"},
	MissingRequiredField:  {Blocking, "required field '%s' is missing"},
	UnknownSampleSet:      {Blocking, "SampleSet ID is not defined"},
	UnknownExperiment:     {Blocking, "Experiment ID is not defined"},
	UnknownAssay:          {Blocking, "Assay ID is not defined"},
	UnknownVocabulary:     {Blocking, "invalid value of '%s'"},
	UnknownMergedExp:      {Blocking, "merged Experiment is not defined"},
	MergedExpTypeMismatch: {Soft, "merged Experiment has a different Experiment Type or is a merging experiment"},
	UnresolvedSampleCol:   {Blocking, "VCF sample column does not match a Sample, BioSample or SampleSet of the Assay"},
	UnknownVCF:            {Blocking, "VCF file is not referenced by any Assay"},
	InvalidNumber:         {Blocking, "invalid number in '%s'"},
	AlleleFreqMismatch:    {Advisory, "Allele Frequency differs from Allele Count / Allele Number"},
	SampleSetSizeMismatch: {Advisory, "SampleSet Size differs from the number of Samples"},
	SampleSexMismatch:     {Advisory, "Sample sex conflicts with SampleSet sex"},
	UnknownParent:         {Soft, "%s ID is not a Subject of the SampleSet"},
	ParentSexMismatch:     {Advisory, "%s has sex '%s'"},
	MissingAssertion:      {Soft, "Assertion Method is missing, 'Assertion Method' default is used"},
	EmptySampleSet:        {Advisory, "SampleSet has no Samples"},
	NoVariants:            {Blocking, "submission contains no variants"},

	InvalidAssembly:          {Blocking, "Assembly is not supported"},
	MissingPlacement:         {Blocking, "chromosome or contig is missing"},
	ChrAndContig:             {Blocking, "chromosome and contig are both given"},
	InvalidChromosome:        {Blocking, "chromosome is not in the assembly"},
	InvalidContig:            {Blocking, "contig is not in the assembly"},
	CoordinateOrder:          {Blocking, "%s must be <= %s"},
	MultipleStarts:           {Advisory, "Start disagrees with Outer Start or Inner Start"},
	MultipleStops:            {Advisory, "Stop disagrees with Outer Stop or Inner Stop"},
	StartBeyondLength:        {Blocking, "start is beyond the sequence length"},
	StopBeyondLength:         {Blocking, "stop is beyond the sequence length"},
	NonPositiveCoordinate:    {Blocking, "%s must be positive"},
	MissingStart:             {Blocking, "no start position"},
	MissingStop:              {Blocking, "no stop position"},
	IncompleteBreakpoint:     {Blocking, "%s breakpoint is incomplete"},
	MissingStrand:            {Advisory, "%s strand is missing"},
	InvalidStrand:            {Blocking, "%s strand is not '+' or '-'"},
	StrandOnNonTranslocation: {Advisory, "strand is given for a non-translocation call"},
	BreakpointBeyondLength:   {Blocking, "%s coordinate is beyond the sequence length"},
	ResolutionOutOfRange:     {Advisory, "resolution exceeds %d for %s/%s"},
	CallBelowResolution:      {Advisory, "variant length is below the experiment resolution"},
	CopyNumberMismatch:       {Advisory, "copy number is inconsistent with '%s'"},
	ChrNameAccessionMismatch: {Blocking, "chromosome name and accession point to different sequences"},

	RegionWithoutCalls:      {Blocking, "no supporting Variant Call"},
	UnknownSupportingCall:   {Blocking, "supporting Variant Call is not defined"},
	UnknownSupportingRegion: {Blocking, "supporting Variant Region is not defined"},
	OrphanCall:              {Advisory, "Variant Call does not support any Variant Region"},
	CallOutsideRegion:       {Advisory, "Variant Call is outside the parent Variant Region"},
	CallOtherChromosome:     {Advisory, "Variant Call is on a different chromosome than the parent Variant Region"},
	MissingMutationOrder:    {Blocking, "Variant Call of a chain has no Mutation Order"},
	MixedMutationID:         {Soft, "supporting Variant Calls have different Mutation IDs"},
	NonSerialMutationOrder:  {Soft, "missing serial mutation order"},
	ChainChromosome:         {Soft, "To chromosome differs from From chromosome of the next order"},
	ChainStrand:             {Soft, "To strand differs from From strand of the next order"},
	ChainCoordinate:         {Soft, "breakpoint coordinates of consecutive orders are not consistent with the strand"},
	IncompatibleCallType:    {Advisory, "Variant Call type '%s' is not expected in a '%s' region"},
	GainAndLoss:             {Advisory, "copy number gain and loss for the same sample"},

	NonSerialAccession: {Advisory, "%s accessions are not serial"},
}

// SeverityOf returns the severity of the code.
func SeverityOf(c Code) Severity {
	return catalog[c].severity
}

// Template returns the message template of the code.
func Template(c Code) string {
	return catalog[c].template
}

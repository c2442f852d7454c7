package finding

// Severity decides whether a finding prevents export.
type Severity int

const (
	// Advisory findings are warnings only.
	Advisory Severity = iota
	// Soft findings are recorded, export proceeds with a default.
	Soft
	// Blocking findings prevent export of the submission.
	Blocking
)

func (s Severity) String() string {
	switch s {
	case Blocking:
		return "Error"
	case Soft:
		return "Error (ignore)"
	default:
		return "Warning"
	}
}

// Object is the category of record a finding is attributed to.
type Object string

const (
	Study         Object = "Study"
	SampleSet     Object = "SampleSet"
	Sample        Object = "Sample"
	Experiment    Object = "Experiment"
	Assay         Object = "Assay"
	VariantCall   Object = "Variant Call"
	VariantRegion Object = "Variant Region"
	Variant       Object = "Variant"
	VCF           Object = "VCF"
	Ledger        Object = "Ledger"
)

// Objects lists categories in report order.
var Objects = []Object{
	Study, SampleSet, Sample, Experiment, Assay,
	VariantCall, VariantRegion, Variant, VCF, Ledger,
}

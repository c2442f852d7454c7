// Package placement validates genomic placements of calls and regions
// against a reference index.
//
// Every record is validated independently from an explicit Record context.
// Findings are returned with the resolved sequences, nothing is kept
// between calls.
package placement

import (
	"github.com/ddbj/jvar/pkg/finding"
	"github.com/ddbj/jvar/pkg/model"
	"github.com/ddbj/jvar/pkg/refindex"
	"github.com/ddbj/jvar/pkg/vocab"
)

// Resolver finds sequences of an assembly. *refindex.Index implements it.
type Resolver interface {
	HasAssembly(name string) bool
	Resolve(assembly, token string) refindex.Resolution
}

// Record is the validation context of one call or region.
type Record struct {
	Object    finding.Object
	ID        string
	Type      string
	Placement model.Placement
	From      model.Breakpoint
	To        model.Breakpoint
	// Breakpoint is true for records described by a From/To pair.
	Breakpoint bool
	CopyNumber *int
	Experiment *model.Experiment
	Source     finding.Source
}

// CallRecord builds the validation context of a call.
func CallRecord(c *model.VariantCall, exp *model.Experiment, rules *vocab.Rules) Record {
	return Record{
		Object:     finding.VariantCall,
		ID:         c.ID,
		Type:       c.Type,
		Placement:  c.Placement,
		From:       c.From,
		To:         c.To,
		Breakpoint: rules.IsBreakpointCall(c.Type),
		CopyNumber: c.CopyNumber,
		Experiment: exp,
		Source:     c.Source,
	}
}

// RegionRecord builds the validation context of a region.
func RegionRecord(r *model.VariantRegion) Record {
	return Record{
		Object:    finding.VariantRegion,
		ID:        r.ID,
		Type:      r.Type,
		Placement: r.Placement,
	}
}

// Interval is a closed coordinate interval.
type Interval struct {
	Start int
	Stop  int
}

// Contains reports whether o lies within i.
func (i Interval) Contains(o Interval) bool {
	return i.Start <= o.Start && o.Stop <= i.Stop
}

// Len is the number of bases covered by the interval.
func (i Interval) Len() int {
	return i.Stop - i.Start + 1
}

// Result is the outcome of validating one record.
type Result struct {
	Findings   []finding.Finding
	Chromosome refindex.Resolution
	Contig     refindex.Resolution
	// From and To are the breakpoint sequences. Chromosome repeats From.
	From refindex.Resolution
	To   refindex.Resolution
	// Envelope is set when both a start and a stop are present.
	Envelope *Interval
}

// Sequence returns the resolved sequence of the record, chromosome first.
func (r Result) Sequence() (refindex.Resolution, bool) {
	if r.Chromosome.Resolved() {
		return r.Chromosome, true
	}
	if r.Contig.Resolved() {
		return r.Contig, true
	}
	return refindex.Resolution{}, false
}

// Blocking reports whether any finding of the record prevents export.
func (r Result) Blocking() bool {
	for _, v := range r.Findings {
		if v.Severity() == finding.Blocking {
			return true
		}
	}
	return false
}

type validator struct {
	rec   Record
	res   Resolver
	rules *vocab.Rules
	out   Result
}

// Validate checks references, coordinates and breakpoints of the record.
func Validate(rec Record, res Resolver, rules *vocab.Rules) Result {
	v := &validator{rec: rec, res: res, rules: rules}
	if rec.Breakpoint {
		v.breakpoints()
	} else {
		v.references()
		v.coordinates()
		if rec.From.Strand != "" || rec.To.Strand != "" {
			v.add(finding.StrandOnNonTranslocation)
		}
	}
	v.experiment()
	return v.out
}

func (v *validator) add(code finding.Code, vars ...any) {
	f := finding.New(code, v.rec.Object, v.rec.ID, vars...).At(v.rec.Source)
	v.out.Findings = append(v.out.Findings, f)
}

func (v *validator) assembly() bool {
	asm := v.rec.Placement.Assembly
	if asm == "" {
		v.add(finding.MissingRequiredField, "Assembly")
		return false
	}
	if !v.res.HasAssembly(asm) {
		v.add(finding.InvalidAssembly)
		return false
	}
	return true
}

func (v *validator) references() {
	p := v.rec.Placement
	knownAsm := v.assembly()

	chr := p.ChrToken()
	switch {
	case chr != "" && p.ContigAccession != "":
		v.add(finding.ChrAndContig)
	case chr == "" && p.ContigAccession == "":
		v.add(finding.MissingPlacement)
		return
	}

	if chr != "" {
		v.out.Chromosome = v.res.Resolve(p.Assembly, chr)
		if !v.out.Chromosome.Resolved() {
			if knownAsm {
				v.add(finding.InvalidChromosome)
			}
		} else if p.ChrName != "" && p.ChrAccession != "" {
			byName := v.res.Resolve(p.Assembly, p.ChrName)
			if byName.Resolved() && byName.Sequence != v.out.Chromosome.Sequence {
				v.add(finding.ChrNameAccessionMismatch)
			}
		}
	}

	if p.ContigAccession != "" {
		v.out.Contig = v.res.Resolve(p.Assembly, p.ContigAccession)
		if !v.out.Contig.Resolved() && knownAsm {
			v.add(finding.InvalidContig)
		}
	}
}

// coordinates checks the coordinate algebra. It does not depend on
// reference resolution, except for the length bound.
func (v *validator) coordinates() {
	p := v.rec.Placement
	fields := p.Coordinates()

	for _, f := range fields {
		if f.Value != nil && *f.Value < 1 {
			v.add(finding.NonPositiveCoordinate, f.Name)
		}
	}

	for i := range fields {
		if fields[i].Value == nil {
			continue
		}
		for j := i + 1; j < len(fields); j++ {
			if fields[j].Value == nil {
				continue
			}
			if *fields[i].Value > *fields[j].Value {
				v.add(finding.CoordinateOrder, fields[i].Name, fields[j].Name)
			}
		}
	}

	if p.Start != nil && (disagree(p.Start, p.OuterStart) || disagree(p.Start, p.InnerStart)) {
		v.add(finding.MultipleStarts)
	}
	if p.Stop != nil && (disagree(p.Stop, p.OuterStop) || disagree(p.Stop, p.InnerStop)) {
		v.add(finding.MultipleStops)
	}

	start, okStart := p.MinStart()
	stop, okStop := p.MaxStop()
	if !okStart {
		v.add(finding.MissingStart)
	}
	if !okStop {
		v.add(finding.MissingStop)
	}
	if okStart && okStop {
		v.out.Envelope = &Interval{Start: start, Stop: stop}
	}

	seq, ok := v.out.Sequence()
	if !ok || seq.Length == 0 {
		return
	}
	if okStart && start > seq.Length+1 {
		v.add(finding.StartBeyondLength)
	}
	if okStop && stop > seq.Length+1 {
		v.add(finding.StopBeyondLength)
	}
}

func disagree(a, b *int) bool {
	return a != nil && b != nil && *a != *b
}

// breakpoints validates both sides of a translocation independently.
func (v *validator) breakpoints() {
	knownAsm := v.assembly()
	for _, side := range []struct {
		name string
		bp   model.Breakpoint
	}{
		{"From", v.rec.From},
		{"To", v.rec.To},
	} {
		res := v.breakpoint(side.name, side.bp, knownAsm)
		if side.name == "From" {
			v.out.From = res
			v.out.Chromosome = res
		} else {
			v.out.To = res
		}
	}
}

func (v *validator) breakpoint(side string, bp model.Breakpoint, knownAsm bool) refindex.Resolution {
	var res refindex.Resolution
	if bp.Chr == "" || bp.Coord == nil {
		v.add(finding.IncompleteBreakpoint, side)
	}

	switch bp.Strand {
	case "":
		v.add(finding.MissingStrand, side)
	case "+", "-":
	default:
		v.add(finding.InvalidStrand, side)
	}

	if bp.Coord != nil && *bp.Coord < 1 {
		v.add(finding.NonPositiveCoordinate, side+" coordinate")
	}

	if bp.Chr == "" {
		return res
	}
	res = v.res.Resolve(v.rec.Placement.Assembly, bp.Chr)
	if !res.Resolved() {
		if knownAsm {
			v.add(finding.InvalidChromosome)
		}
		return res
	}
	if bp.Coord != nil && res.Length > 0 && *bp.Coord > res.Length+1 {
		v.add(finding.BreakpointBeyondLength, side)
	}
	return res
}

// experiment runs advisory checks that depend on the experiment and the
// call type.
func (v *validator) experiment() {
	if v.rec.CopyNumber != nil && v.rules != nil {
		cn := *v.rec.CopyNumber
		ploidy := v.rules.CopyNumber.Ploidy
		if (v.rules.IsGain(v.rec.Type) && cn < ploidy) ||
			(v.rules.IsLoss(v.rec.Type) && cn > ploidy) {
			v.add(finding.CopyNumberMismatch, v.rec.Type)
		}
	}

	exp := v.rec.Experiment
	if exp == nil || exp.Resolution == nil || v.out.Envelope == nil {
		return
	}
	if v.out.Envelope.Len() < *exp.Resolution {
		v.add(finding.CallBelowResolution)
	}
}

// ValidateExperiment checks the declared resolution of an experiment
// against the threshold of its method and analysis types.
func ValidateExperiment(exp *model.Experiment, rules *vocab.Rules) []finding.Finding {
	if exp.Resolution == nil {
		return nil
	}
	limit, ok := rules.MaxResolution(exp.MethodType, exp.AnalysisType)
	if !ok || *exp.Resolution <= limit {
		return nil
	}
	return []finding.Finding{
		finding.New(
			finding.ResolutionOutOfRange, finding.Experiment, exp.ID,
			limit, exp.MethodType, exp.AnalysisType,
		),
	}
}

package placement_test

import (
	"testing"

	"github.com/ddbj/jvar/pkg/finding"
	"github.com/ddbj/jvar/pkg/model"
	"github.com/ddbj/jvar/pkg/placement"
	"github.com/ddbj/jvar/pkg/refindex"
	"github.com/ddbj/jvar/pkg/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asm = "GRCh38.p14"

func testIndex() *refindex.Index {
	a := refindex.Assembly{
		Name:   asm,
		RefSeq: "GCF_000001405.40",
		Sequences: []refindex.Sequence{
			{Name: "1", RefSeq: "NC_000001.11", GenBank: "CM000663.2",
				Role: refindex.AssembledMolecule, Length: 248956422},
			{Name: "13", RefSeq: "NC_000013.11", GenBank: "CM000675.2",
				Role: refindex.AssembledMolecule, Length: 114364328},
			{Name: "MT", RefSeq: "NC_012920.1", GenBank: "J01415.2",
				Role: refindex.AssembledMolecule, Length: 16569},
			{Name: "HSCHR1_CTG1_UNLOCALIZED", RefSeq: "NT_187361.1",
				GenBank: "KI270706.1", Role: "unlocalized-scaffold", Length: 175055},
		},
	}
	return refindex.New([]refindex.Assembly{a}, map[string]int{"AP023461.1": 1000})
}

func codes(ff []finding.Finding) []finding.Code {
	res := make([]finding.Code, len(ff))
	for i := range ff {
		res[i] = ff[i].Code
	}
	return res
}

func filter(ff []finding.Finding, code finding.Code) []finding.Finding {
	var res []finding.Finding
	for _, v := range ff {
		if v.Code == code {
			res = append(res, v)
		}
	}
	return res
}

func region(p model.Placement) placement.Record {
	if p.Assembly == "" {
		p.Assembly = asm
	}
	return placement.Record{
		Object:    finding.VariantRegion,
		ID:        "vr1",
		Type:      "deletion",
		Placement: p,
	}
}

func TestOrdering(t *testing.T) {
	idx := testIndex()
	rules := vocab.DefaultRules()

	t.Run("ordered placement", func(t *testing.T) {
		rec := region(model.Placement{
			ChrName:    "1",
			OuterStart: model.Int(5),
			Start:      model.Int(8),
			Stop:       model.Int(20),
			OuterStop:  model.Int(25),
		})
		res := placement.Validate(rec, idx, rules)
		assert.Empty(t, filter(res.Findings, finding.CoordinateOrder))
		assert.False(t, res.Blocking())
		require.NotNil(t, res.Envelope)
		assert.Equal(t, placement.Interval{Start: 5, Stop: 25}, *res.Envelope)
		assert.Equal(t, refindex.Chromosome, res.Chromosome.Kind)
	})

	t.Run("outer coordinates swapped", func(t *testing.T) {
		rec := region(model.Placement{
			ChrName:    "1",
			OuterStart: model.Int(10),
			OuterStop:  model.Int(5),
		})
		res := placement.Validate(rec, idx, rules)
		order := filter(res.Findings, finding.CoordinateOrder)
		require.Len(t, order, 1)
		assert.Equal(t, "outer_start must be <= outer_stop", order[0].Message())
		assert.Equal(t, finding.Blocking, order[0].Severity())
		assert.Equal(t, "vr1", order[0].ID)
	})

	t.Run("pairwise across gaps", func(t *testing.T) {
		rec := region(model.Placement{
			ChrName:   "1",
			Start:     model.Int(100),
			InnerStop: model.Int(50),
			Stop:      model.Int(90),
		})
		res := placement.Validate(rec, idx, rules)
		var msgs []string
		for _, v := range filter(res.Findings, finding.CoordinateOrder) {
			msgs = append(msgs, v.Message())
		}
		assert.Equal(t, []string{
			"start must be <= inner_stop",
			"start must be <= stop",
		}, msgs)
	})

	t.Run("non-positive and missing", func(t *testing.T) {
		rec := region(model.Placement{ChrName: "1", Start: model.Int(0)})
		res := placement.Validate(rec, idx, rules)
		assert.Equal(t,
			[]finding.Code{finding.NonPositiveCoordinate, finding.MissingStop},
			codes(res.Findings))
		assert.Nil(t, res.Envelope)
	})

	t.Run("stop disagrees with inner stop", func(t *testing.T) {
		rec := region(model.Placement{
			ChrName:    "1",
			InnerStart: model.Int(10),
			Start:      model.Int(10),
			Stop:       model.Int(20),
			InnerStop:  model.Int(15),
		})
		res := placement.Validate(rec, idx, rules)
		assert.Equal(t, []finding.Code{finding.MultipleStops}, codes(res.Findings))
	})
}

func TestReferences(t *testing.T) {
	idx := testIndex()
	rules := vocab.DefaultRules()
	span := func(p model.Placement) model.Placement {
		p.Start = model.Int(100)
		p.Stop = model.Int(200)
		return p
	}

	tests := []struct {
		msg   string
		p     model.Placement
		kind  refindex.Kind
		codes []finding.Code
	}{
		{"chromosome name", span(model.Placement{ChrName: "chr1"}),
			refindex.Chromosome, nil},
		{"chromosome accession", span(model.Placement{ChrAccession: "NC_000001.11"}),
			refindex.Contig, nil},
		{"contig accession", span(model.Placement{ContigAccession: "KI270706.1"}),
			refindex.Unresolved, nil},
		{"external contig", span(model.Placement{ContigAccession: "AP023461.1"}),
			refindex.Unresolved, nil},
		{"unknown chromosome", span(model.Placement{ChrName: "chr99"}),
			refindex.Unresolved, []finding.Code{finding.InvalidChromosome}},
		{"unknown contig", span(model.Placement{ContigAccession: "XX000001.1"}),
			refindex.Unresolved, []finding.Code{finding.InvalidContig}},
		{"unlocalized name", span(model.Placement{ChrName: "HSCHR1_CTG1_UNLOCALIZED"}),
			refindex.Unresolved, []finding.Code{finding.InvalidChromosome}},
		{"chromosome and contig", span(model.Placement{ChrName: "1", ContigAccession: "KI270706.1"}),
			refindex.Chromosome, []finding.Code{finding.ChrAndContig}},
		{"nothing", span(model.Placement{}),
			refindex.Unresolved, []finding.Code{finding.MissingPlacement}},
		{"name and accession disagree",
			span(model.Placement{ChrName: "13", ChrAccession: "NC_000001.11"}),
			refindex.Contig, []finding.Code{finding.ChrNameAccessionMismatch}},
		{"unknown assembly", span(model.Placement{Assembly: "GRCh37", ChrName: "1"}),
			refindex.Unresolved, []finding.Code{finding.InvalidAssembly}},
	}
	for _, v := range tests {
		res := placement.Validate(region(v.p), idx, rules)
		assert.Equal(t, v.kind, res.Chromosome.Kind, v.msg)
		assert.Equal(t, v.codes, codes(res.Findings), v.msg)
	}
}

func TestIdempotentResolution(t *testing.T) {
	idx := testIndex()
	rules := vocab.DefaultRules()
	tokens := []string{"chr1", "NC_000001.11", "chr99", "AP023461.1", "1"}
	first := make(map[string]refindex.Kind)
	for range 3 {
		for _, tok := range tokens {
			res := placement.Validate(region(model.Placement{
				ChrName: tok, Start: model.Int(1), Stop: model.Int(2),
			}), idx, rules)
			if k, ok := first[tok]; ok {
				assert.Equal(t, k, res.Chromosome.Kind, tok)
				continue
			}
			first[tok] = res.Chromosome.Kind
		}
		// reverse iteration order for the next round
		for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
			tokens[i], tokens[j] = tokens[j], tokens[i]
		}
	}
	assert.Equal(t, refindex.ExternalContig, first["AP023461.1"])
}

func TestLength(t *testing.T) {
	idx := testIndex()
	rules := vocab.DefaultRules()

	tests := []struct {
		msg         string
		start, stop int
		codes       []finding.Code
	}{
		{"inside", 1, 16569, nil},
		{"length plus one", 16570, 16570, nil},
		{"stop beyond", 100, 16571, []finding.Code{finding.StopBeyondLength}},
		{"both beyond", 16571, 16600,
			[]finding.Code{finding.StartBeyondLength, finding.StopBeyondLength}},
	}
	for _, v := range tests {
		rec := region(model.Placement{
			ChrName: "chrM", Start: model.Int(v.start), Stop: model.Int(v.stop),
		})
		res := placement.Validate(rec, idx, rules)
		assert.Equal(t, v.codes, codes(res.Findings), v.msg)
	}

	rec := region(model.Placement{
		ChrName: "MT", OuterStart: model.Int(10), Start: model.Int(10),
		Stop: model.Int(20), OuterStop: model.Int(16600),
	})
	res := placement.Validate(rec, idx, rules)
	stop := filter(res.Findings, finding.StopBeyondLength)
	require.Len(t, stop, 1)
	assert.Equal(t, "stop is beyond the sequence length", stop[0].Message())
	assert.Equal(t, "vr1", stop[0].ID)
}

func TestBreakpoints(t *testing.T) {
	idx := testIndex()
	rules := vocab.DefaultRules()
	call := func(from, to model.Breakpoint) placement.Record {
		c := &model.VariantCall{
			ID:        "vc1",
			Type:      "interchromosomal translocation",
			Placement: model.Placement{Assembly: asm},
			From:      from,
			To:        to,
		}
		return placement.CallRecord(c, nil, rules)
	}

	tests := []struct {
		msg      string
		from, to model.Breakpoint
		codes    []finding.Code
	}{
		{"complete",
			model.Breakpoint{Chr: "1", Coord: model.Int(1000), Strand: "+"},
			model.Breakpoint{Chr: "13", Coord: model.Int(5000), Strand: "-"},
			nil},
		{"missing strand",
			model.Breakpoint{Chr: "1", Coord: model.Int(1000)},
			model.Breakpoint{Chr: "13", Coord: model.Int(5000), Strand: "-"},
			[]finding.Code{finding.MissingStrand}},
		{"incomplete to",
			model.Breakpoint{Chr: "1", Coord: model.Int(1000), Strand: "+"},
			model.Breakpoint{Chr: "13", Strand: "+"},
			[]finding.Code{finding.IncompleteBreakpoint}},
		{"invalid strand",
			model.Breakpoint{Chr: "1", Coord: model.Int(1000), Strand: "x"},
			model.Breakpoint{Chr: "13", Coord: model.Int(5000), Strand: "+"},
			[]finding.Code{finding.InvalidStrand}},
		{"beyond length",
			model.Breakpoint{Chr: "MT", Coord: model.Int(20000), Strand: "+"},
			model.Breakpoint{Chr: "13", Coord: model.Int(5000), Strand: "+"},
			[]finding.Code{finding.BreakpointBeyondLength}},
		{"unknown chromosome",
			model.Breakpoint{Chr: "1", Coord: model.Int(1000), Strand: "+"},
			model.Breakpoint{Chr: "chr99", Coord: model.Int(5000), Strand: "+"},
			[]finding.Code{finding.InvalidChromosome}},
	}
	for _, v := range tests {
		res := placement.Validate(call(v.from, v.to), idx, rules)
		assert.Equal(t, v.codes, codes(res.Findings), v.msg)
	}

	t.Run("strand on other calls", func(t *testing.T) {
		c := &model.VariantCall{
			ID:   "vc2",
			Type: "deletion",
			Placement: model.Placement{
				Assembly: asm, ChrName: "1", Start: model.Int(1), Stop: model.Int(10),
			},
			From: model.Breakpoint{Strand: "+"},
		}
		res := placement.Validate(placement.CallRecord(c, nil, rules), idx, rules)
		assert.Equal(t, []finding.Code{finding.StrandOnNonTranslocation}, codes(res.Findings))
		assert.False(t, res.Blocking())
	})
}

func TestExperimentChecks(t *testing.T) {
	idx := testIndex()
	rules := vocab.DefaultRules()
	exp := &model.Experiment{
		ID:           "e1",
		MethodType:   "Sequencing",
		AnalysisType: "Read depth",
		Resolution:   model.Int(50000),
	}

	ff := placement.ValidateExperiment(exp, rules)
	require.Len(t, ff, 1)
	assert.Equal(t, finding.ResolutionOutOfRange, ff[0].Code)
	assert.Equal(t, finding.Advisory, ff[0].Severity())

	exp.Resolution = model.Int(500)
	assert.Empty(t, placement.ValidateExperiment(exp, rules))

	c := &model.VariantCall{
		ID:   "vc1",
		Type: "copy number gain",
		Placement: model.Placement{
			Assembly: asm, ChrName: "1", Start: model.Int(100), Stop: model.Int(199),
		},
		CopyNumber: model.Int(1),
	}
	res := placement.Validate(placement.CallRecord(c, exp, rules), idx, rules)
	assert.Equal(t,
		[]finding.Code{finding.CopyNumberMismatch, finding.CallBelowResolution},
		codes(res.Findings))
	assert.False(t, res.Blocking())
}

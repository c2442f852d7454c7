package finding_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ddbj/jvar/pkg/finding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage(t *testing.T) {
	f := finding.New(finding.CoordinateOrder, finding.VariantCall, "call1",
		"outer_start", "outer_stop")
	assert.Equal(t, "outer_start must be <= outer_stop", f.Message())
	assert.Equal(t, finding.Blocking, f.Severity())
	assert.Equal(t,
		"JV_SV0006 Error: outer_start must be <= outer_stop [call1]",
		f.String())

	f = finding.New(finding.OrphanCall, finding.VariantCall, "call2")
	assert.Equal(t, "Variant Call does not support any Variant Region", f.Message())
	assert.Equal(t, finding.Advisory, f.Severity())
}

func TestCatalogComplete(t *testing.T) {
	codes := []finding.Code{
		finding.MissingKey, finding.CoordinateOrder, finding.NonSerialMutationOrder,
		finding.MixedMutationID, finding.NonSerialAccession, finding.GainAndLoss,
	}
	for _, c := range codes {
		assert.NotEmpty(t, finding.Template(c), string(c))
	}
}

func TestSummariesCap(t *testing.T) {
	var s finding.Set
	for i := range 7 {
		s.Add(finding.New(finding.OrphanCall, finding.VariantCall,
			fmt.Sprintf("call%d", i+1)))
	}
	// duplicate ID is listed once
	s.Add(finding.New(finding.OrphanCall, finding.VariantCall, "call1"))
	s.Add(finding.New(finding.MissingStrand, finding.VariantCall, "call9", "From"))

	sums := s.Summaries()
	require.Len(t, sums, 2)
	assert.Equal(t, 8, sums[0].Count)
	assert.Len(t, sums[0].IDs, 7)
	assert.Equal(t,
		"JV_SV0043: Variant Call does not support any Variant Region: "+
			"call1, call2, call3, call4, call5, etc",
		sums[0].String())
	assert.Equal(t, "JV_SV0015: From strand is missing: call9", sums[1].String())
	assert.False(t, s.HasBlocking())
}

func TestSummariesOneLinePerCode(t *testing.T) {
	var s finding.Set
	s.Add(
		finding.New(finding.CoordinateOrder, finding.VariantCall, "a", "start", "stop"),
		finding.New(finding.CoordinateOrder, finding.VariantCall, "b", "outer_start", "outer_stop"),
		finding.New(finding.CoordinateOrder, finding.VariantCall, "c", "start", "stop"),
		finding.New(finding.CoordinateOrder, finding.VariantRegion, "r1", "start", "stop"),
	)
	sums := s.Summaries()
	require.Len(t, sums, 2)
	assert.Equal(t, []string{"a", "b", "c"}, sums[0].IDs)
	assert.Equal(t, 3, sums[0].Count)
	assert.Equal(t,
		"JV_SV0006: start must be <= stop; outer_start must be <= outer_stop: a, b, c",
		sums[0].String())
	assert.Equal(t, finding.VariantRegion, sums[1].Object)
	assert.True(t, s.HasBlocking())
	assert.Equal(t, 2, s.Count(finding.Blocking))
}

func TestSummariesBounded(t *testing.T) {
	var s finding.Set
	for i := range 100 {
		s.Add(finding.New(finding.StartBeyondLength, finding.VariantCall,
			fmt.Sprintf("call%d", i+1)))
		s.Add(finding.New(finding.InvalidNumber, finding.VariantCall,
			fmt.Sprintf("call%d", i+1), fmt.Sprintf("col%d", i%7)))
	}
	sums := s.Summaries()
	require.Len(t, sums, 2)
	assert.Equal(t,
		"JV_SV0009: start is beyond the sequence length: "+
			"call1, call2, call3, call4, call5, etc",
		sums[0].String())
	assert.Len(t, sums[1].Messages, 7)
	assert.Equal(t,
		"invalid number in 'col0'; invalid number in 'col1'; invalid number in 'col2'; "+
			"invalid number in 'col3'; invalid number in 'col4'; etc",
		sums[1].Message())
}

func TestForFile(t *testing.T) {
	var s finding.Set
	src := finding.Source{File: "a.vcf", Line: 12, Row: "1\t100\tcall1"}
	s.Add(
		finding.New(finding.MissingStrand, finding.VariantCall, "call1", "From").At(src),
		finding.New(finding.OrphanCall, finding.VariantCall, "call1").At(src),
		finding.New(finding.OrphanCall, finding.VariantCall, "call2"),
	)
	res := s.ForFile("a.vcf")
	require.Len(t, res, 1)
	assert.Len(t, res[12], 2)
	assert.Empty(t, s.ForFile("b.vcf"))
}

func TestReport(t *testing.T) {
	var s finding.Set
	s.Add(
		finding.New(finding.OrphanCall, finding.VariantCall, "call1"),
		finding.New(finding.DuplicateKey, finding.Sample, "S1", "Sample"),
		finding.New(finding.MixedMutationID, finding.VariantRegion, "r1"),
		finding.New(finding.CoordinateOrder, finding.VariantCall, "call2", "start", "stop"),
	)
	var b strings.Builder
	require.NoError(t, s.Report(&b, "VSUB000001"))
	out := b.String()

	assert.Contains(t, out, "Validation report for VSUB000001")
	assert.Contains(t, out, "Errors: 2, Ignorable errors: 1, Warnings: 1")
	// Sample goes before Variant Call
	assert.Less(t, strings.Index(out, "== Sample =="),
		strings.Index(out, "== Variant Call =="))
	// errors before warnings within a category
	vc := out[strings.Index(out, "== Variant Call =="):]
	assert.Less(t, strings.Index(vc, "JV_SV0006"), strings.Index(vc, "JV_SV0043"))
	assert.Contains(t, out, "Error (ignore)\n  JV_SV0047")
}

package vcf_test

import (
	"strings"
	"testing"

	"github.com/ddbj/jvar/pkg/errcode"
	"github.com/ddbj/jvar/pkg/vcf"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const svVCF = `##fileformat=VCFv4.2
##INFO=<ID=SVTYPE,Number=1,Type=String,Description="Type of structural variant">
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	S1	S2
1	1000	call1	N	<DEL>	.	PASS	SVTYPE=DEL;END=2000;CIPOS=-10,10;CN=1	GT:CN	0/1:1	0/0:.
2	500	call2	A	A]13:123456]	.	PASS	SVTYPE=BND;MUTID=m1;MUTORDER=1	GT	0/1	./.
1	300	rs1	A	G	50	PASS	AC=3;AN=10;DB	GT	0/1	1/1
`

func TestParse(t *testing.T) {
	f, err := vcf.Parse("sv.vcf", strings.NewReader(svVCF))
	require.NoError(t, err)
	assert.Equal(t, "sv.vcf", f.Name)
	assert.Equal(t, "VCFv4.2", f.FileFormat)
	assert.Len(t, f.Meta, 2)
	assert.Equal(t, []string{"S1", "S2"}, f.Samples)
	require.Len(t, f.Records, 3)

	rec := f.Records[0]
	assert.Equal(t, 4, rec.Line)
	assert.Equal(t, "1", rec.Chrom)
	assert.Equal(t, 1000, rec.Pos)
	assert.Equal(t, "call1", rec.ID)
	assert.Equal(t, []string{"<DEL>"}, rec.Alt)
	assert.Equal(t, "", rec.Qual)
	assert.True(t, rec.IsSV())

	end, err := rec.InfoInt("END")
	require.NoError(t, err)
	require.NotNil(t, end)
	assert.Equal(t, 2000, *end)

	ci, ok, err := rec.InfoIntPair("CIPOS")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, [2]int{-10, 10}, ci)

	require.Len(t, rec.Genotypes, 2)
	assert.Equal(t, "1", rec.Genotypes[0]["CN"])
	_, ok = rec.Genotypes[1]["CN"]
	assert.False(t, ok)

	snv := f.Records[2]
	assert.False(t, snv.IsSV())
	_, ok = snv.Info["DB"]
	assert.True(t, ok)
	missing, err := snv.InfoInt("END")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		msg, in string
	}{
		{"no header", "##fileformat=VCFv4.2\n1\t1\t.\tA\tG\t.\t.\t.\n"},
		{"bad pos", "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n1\tx\t.\tA\tG\t.\t.\t.\n"},
		{"short line", "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n1\t1\t.\tA\n"},
		{"sample count", "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tS1\n1\t1\t.\tA\tG\t.\t.\t.\tGT\n"},
		{"empty", ""},
	}
	for _, v := range tests {
		_, err := vcf.Parse("bad.vcf", strings.NewReader(v.in))
		require.Error(t, err, v.msg)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, errcode.VCFFormatError, gnErr.Code, v.msg)
	}
}

func TestParseBreakend(t *testing.T) {
	tests := []struct {
		alt string
		ok  bool
		res vcf.Breakend
	}{
		{"G]17:198982]", true, vcf.Breakend{Chr: "17", Pos: 198982, FromStrand: "+", ToStrand: "-"}},
		{"T[13:123456[", true, vcf.Breakend{Chr: "13", Pos: 123456, FromStrand: "+", ToStrand: "+"}},
		{"]2:321681]T", true, vcf.Breakend{Chr: "2", Pos: 321681, FromStrand: "-", ToStrand: "-"}},
		{"[chrX:99[A", true, vcf.Breakend{Chr: "chrX", Pos: 99, FromStrand: "-", ToStrand: "+"}},
		{"<DEL>", false, vcf.Breakend{}},
		{"G]17:198982[", false, vcf.Breakend{}},
		{"]17:1]", false, vcf.Breakend{}},
	}
	for _, v := range tests {
		res, ok := vcf.ParseBreakend(v.alt)
		assert.Equal(t, v.ok, ok, v.alt)
		assert.Equal(t, v.res, res, v.alt)
	}
}

package refindex_test

import (
	"testing"

	"github.com/ddbj/jvar/pkg/refindex"
	"github.com/stretchr/testify/assert"
)

func testIndex() *refindex.Index {
	asm := refindex.Assembly{
		Name:    "GRCh38.p14",
		RefSeq:  "GCF_000001405.40",
		GenBank: "GCA_000001405.29",
		Sequences: []refindex.Sequence{
			{Name: "1", RefSeq: "NC_000001.11", GenBank: "CM000663.2",
				Role: refindex.AssembledMolecule, Length: 248956422},
			{Name: "X", RefSeq: "NC_000023.11", GenBank: "CM000685.2",
				Role: refindex.AssembledMolecule, Length: 156040895},
			{Name: "MT", RefSeq: "NC_012920.1", GenBank: "J01415.2",
				Role: refindex.AssembledMolecule, Length: 16569},
			{Name: "HSCHR1_CTG1_UNLOCALIZED", RefSeq: "NT_187361.1",
				GenBank: "KI270706.1", Role: "unlocalized-scaffold", Length: 175055},
		},
	}
	return refindex.New([]refindex.Assembly{asm},
		map[string]int{"AP023461.1": 1000})
}

func TestResolve(t *testing.T) {
	idx := testIndex()
	tests := []struct {
		msg      string
		asm, tok string
		kind     refindex.Kind
		length   int
	}{
		{"bare name", "GRCh38.p14", "1", refindex.Chromosome, 248956422},
		{"chr prefix", "GRCh38.p14", "chrX", refindex.Chromosome, 156040895},
		{"CHR prefix", "grch38.p14", "CHRx", refindex.Chromosome, 156040895},
		{"mito alias", "GRCh38.p14", "chrM", refindex.Chromosome, 16569},
		{"assembly by accession", "GCF_000001405.40", "1", refindex.Chromosome, 248956422},
		{"refseq accession", "GRCh38.p14", "NC_000001.11", refindex.Contig, 248956422},
		{"genbank accession", "GRCh38.p14", "KI270706.1", refindex.Contig, 175055},
		{"external contig", "GRCh38.p14", "AP023461.1", refindex.ExternalContig, 1000},
		{"external contig without assembly", "", "AP023461.1", refindex.ExternalContig, 1000},
		{"unlocalized name is not a chromosome", "GRCh38.p14",
			"HSCHR1_CTG1_UNLOCALIZED", refindex.Unresolved, 0},
		{"unknown chromosome", "GRCh38.p14", "chr99", refindex.Unresolved, 0},
		{"unknown assembly", "GRCh37", "1", refindex.Unresolved, 0},
		{"empty token", "GRCh38.p14", "", refindex.Unresolved, 0},
	}
	for _, v := range tests {
		res := idx.Resolve(v.asm, v.tok)
		assert.Equal(t, v.kind, res.Kind, v.msg)
		assert.Equal(t, v.length, res.Length, v.msg)
		assert.Equal(t, v.kind != refindex.Unresolved, res.Resolved(), v.msg)
	}
}

func TestResolveIdempotent(t *testing.T) {
	idx := testIndex()
	tokens := []string{"chr1", "NC_000023.11", "chr99", "AP023461.1", "MT"}
	first := make(map[string]refindex.Kind)
	for _, tok := range tokens {
		first[tok] = idx.Resolve("GRCh38.p14", tok).Kind
	}
	for range 3 {
		for i := len(tokens) - 1; i >= 0; i-- {
			tok := tokens[i]
			assert.Equal(t, first[tok], idx.Resolve("GRCh38.p14", tok).Kind, tok)
		}
	}
}

func TestHasAssembly(t *testing.T) {
	idx := testIndex()
	assert.True(t, idx.HasAssembly("GRCh38.p14"))
	assert.True(t, idx.HasAssembly("GCA_000001405.29"))
	assert.False(t, idx.HasAssembly("hg19"))
	a, ok := idx.Assembly("gcf_000001405.40")
	assert.True(t, ok)
	assert.Equal(t, "GRCh38.p14", a.Name)
}

func TestNormalizeChr(t *testing.T) {
	assert.Equal(t, "X", refindex.NormalizeChr("chrx"))
	assert.Equal(t, "12", refindex.NormalizeChr(" Chr12 "))
	assert.Equal(t, "MT", refindex.NormalizeChr("M"))
	assert.Equal(t, "CHR", refindex.NormalizeChr("chr"))
}

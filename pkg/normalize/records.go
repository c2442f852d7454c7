package normalize

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ddbj/jvar/pkg/finding"
	"github.com/ddbj/jvar/pkg/ledger"
	"github.com/ddbj/jvar/pkg/model"
	"github.com/ddbj/jvar/pkg/vcf"
)

// vcfAssay finds the Assay that lists the file in its VCF Filename column.
func (n *normalizer) vcfAssay(name string) (*model.Assay, bool) {
	base := filepath.Base(name)
	for _, id := range sortedKeys(n.sub.Assays) {
		a := n.sub.Assays[id]
		if a.VCFFile != "" && filepath.Base(a.VCFFile) == base {
			return a, true
		}
	}
	return nil, false
}

func (n *normalizer) vcf(f *vcf.File) {
	a, ok := n.vcfAssay(f.Name)
	if !ok {
		n.add(finding.New(finding.UnknownVCF, finding.VCF, filepath.Base(f.Name)))
		return
	}
	columns := n.sampleColumns(f, a)

	for _, rec := range f.Records {
		src := finding.Source{File: f.Name, Line: rec.Line, Row: rec.Raw}
		if n.sub.Kind == ledger.SV {
			if !rec.IsSV() {
				continue
			}
			n.addCall(n.vcfCall(f, a, rec, columns, src))
			continue
		}
		n.sub.Variants = append(n.sub.Variants, &model.Variant{
			ID:       recordID(f, rec),
			AssayID:  a.ID,
			Assembly: n.sub.Study.Assembly,
			Chr:      rec.Chrom,
			Pos:      rec.Pos,
			Ref:      rec.Ref,
			Alt:      strings.Join(rec.Alt, ","),
			Info:     rec.Info,
			Source:   src,
		})
	}
}

func recordID(f *vcf.File, rec vcf.Record) string {
	if rec.ID != "" {
		return rec.ID
	}
	return fmt.Sprintf("%s:%d", filepath.Base(f.Name), rec.Line)
}

// sampleColumns maps genotype column positions to sample identifiers. A
// column may name a Sample, a BioSample accession or the SampleSet of the
// Assay.
func (n *normalizer) sampleColumns(f *vcf.File, a *model.Assay) map[int]string {
	lookup := make(map[string]string)
	if ss, ok := n.sub.SampleSets[a.SampleSetID]; ok {
		if ss.Name != "" {
			lookup[ss.Name] = ss.ID
		}
		lookup[ss.ID] = ss.ID
		for _, id := range ss.Samples {
			smp := n.sub.Samples[id]
			lookup[smp.ID] = smp.ID
			if smp.Name != "" {
				lookup[smp.Name] = smp.ID
			}
			if smp.BioSample != "" {
				lookup[smp.BioSample] = smp.ID
			}
		}
	}

	res := make(map[int]string, len(f.Samples))
	for i, col := range f.Samples {
		id, ok := lookup[col]
		if !ok {
			n.add(finding.New(finding.UnresolvedSampleCol, finding.VCF,
				filepath.Base(f.Name)+":"+col))
			continue
		}
		res[i] = id
	}
	return res
}

// vcfCall converts an SV record into a call with the same fields a sheet
// row would produce.
func (n *normalizer) vcfCall(
	f *vcf.File,
	a *model.Assay,
	rec vcf.Record,
	columns map[int]string,
	src finding.Source,
) *model.VariantCall {
	c := &model.VariantCall{
		ID:           recordID(f, rec),
		AssayID:      a.ID,
		ExperimentID: a.ExperimentID,
		SampleSetID:  a.SampleSetID,
		Placement:    model.Placement{Assembly: n.sub.Study.Assembly},
		MutationID:   rec.Info["MUTID"],
		Source:       src,
	}

	svtype := recordSVType(rec)
	if typ, ok := n.voc.SVType(svtype); ok {
		n.callType(c, typ)
	} else {
		n.add(finding.New(finding.UnknownVocabulary, finding.VariantCall, c.ID, "SVTYPE").
			At(src))
		c.Type = svtype
	}

	if n.rules.IsBreakpointCall(c.Type) {
		c.From = model.Breakpoint{Chr: rec.Chrom, Coord: model.Int(rec.Pos)}
		for _, alt := range rec.Alt {
			if bnd, ok := vcf.ParseBreakend(alt); ok {
				c.From.Strand = bnd.FromStrand
				c.To = model.Breakpoint{Chr: bnd.Chr, Coord: model.Int(bnd.Pos), Strand: bnd.ToStrand}
				break
			}
		}
	} else {
		n.recordPlacement(c, rec)
	}

	c.CopyNumber = n.infoInt(c, rec, "CN")
	c.AlleleCount = n.infoInt(c, rec, "AC")
	c.AlleleNumber = n.infoInt(c, rec, "AN")
	c.MutationOrder = n.infoInt(c, rec, "MUTORDER")
	if af, err := rec.InfoFloat("AF"); err != nil {
		n.add(finding.New(finding.InvalidNumber, finding.VariantCall, c.ID, "AF").
			At(src))
	} else {
		c.AlleleFrequency = af
	}

	c.Genotypes = make(map[string]map[string]string, len(columns))
	for i, id := range columns {
		if i < len(rec.Genotypes) {
			c.Genotypes[id] = rec.Genotypes[i]
		}
	}
	if len(columns) == 1 {
		for _, gt := range c.Genotypes {
			c.Zygosity = zygosity(gt["GT"])
		}
	}
	return c
}

func recordSVType(rec vcf.Record) string {
	if v := rec.Info["SVTYPE"]; v != "" {
		return v
	}
	for _, alt := range rec.Alt {
		if strings.HasPrefix(alt, "<") && strings.HasSuffix(alt, ">") {
			return alt[1 : len(alt)-1]
		}
		if _, ok := vcf.ParseBreakend(alt); ok {
			return "BND"
		}
	}
	return ""
}

// recordPlacement maps POS/END and confidence intervals. With CIPOS the
// start is given as outer/inner start only, the same for CIEND and stop.
func (n *normalizer) recordPlacement(c *model.VariantCall, rec vcf.Record) {
	p := &c.Placement
	p.ChrName = rec.Chrom

	stop := n.infoInt(c, rec, "END")
	if stop == nil {
		if l := n.infoInt(c, rec, "SVLEN"); l != nil && *l != 0 {
			stop = model.Int(rec.Pos + abs(*l) - 1)
		}
	}

	if ci, ok := n.infoPair(c, rec, "CIPOS"); ok && ci != [2]int{} {
		p.OuterStart = model.Int(rec.Pos + ci[0])
		p.InnerStart = model.Int(rec.Pos + ci[1])
	} else {
		p.Start = model.Int(rec.Pos)
	}

	if stop == nil {
		return
	}
	if ci, ok := n.infoPair(c, rec, "CIEND"); ok && ci != [2]int{} {
		p.InnerStop = model.Int(*stop + ci[0])
		p.OuterStop = model.Int(*stop + ci[1])
	} else {
		p.Stop = stop
	}
}

func (n *normalizer) infoInt(c *model.VariantCall, rec vcf.Record, key string) *int {
	res, err := rec.InfoInt(key)
	if err != nil {
		n.add(finding.New(finding.InvalidNumber, finding.VariantCall, c.ID, key).
			At(c.Source))
		return nil
	}
	return res
}

func (n *normalizer) infoPair(c *model.VariantCall, rec vcf.Record, key string) ([2]int, bool) {
	res, ok, err := rec.InfoIntPair(key)
	if err != nil {
		n.add(finding.New(finding.InvalidNumber, finding.VariantCall, c.ID, key).
			At(c.Source))
		return res, false
	}
	return res, ok
}

func zygosity(gt string) string {
	alleles := strings.FieldsFunc(gt, func(r rune) bool {
		return r == '/' || r == '|'
	})
	var alt, ref int
	for _, a := range alleles {
		switch a {
		case ".":
			return ""
		case "0":
			ref++
		default:
			alt++
		}
	}
	switch {
	case alt == 0:
		return ""
	case len(alleles) == 1:
		return "Hemizygous"
	case ref == 0:
		return "Homozygous"
	default:
		return "Heterozygous"
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// Package export renders accessioned submissions into archive formats:
// per-object TSV tables, dbVar XML and dbSNP flat records.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/ddbj/jvar/pkg/model"
)

// AccessionColumn is the first column of every TSV export.
const AccessionColumn = "Accession"

var callColumns = []string{
	AccessionColumn, "Variant Call ID", "Variant Call Type", "SO Term",
	"Dataset ID", "Experiment ID", "SampleSet ID", "Sample ID", "Zygosity",
	"Copy Number", "Allele Count", "Allele Number", "Allele Frequency",
	"Assembly", "Chr Name", "Chr Accession", "Contig Accession",
	"Outer Start", "Start", "Inner Start", "Inner Stop", "Stop", "Outer Stop",
	"From Chr", "From Coord", "From Strand", "To Chr", "To Coord", "To Strand",
	"Mutation ID", "Mutation Order", "Evidence", "Phenotype",
}

var regionColumns = []string{
	AccessionColumn, "Variant Region ID", "Variant Region Type", "SO Term",
	"Assertion Method", "Supporting Variant Call IDs",
	"Supporting Variant Call Accessions", "Supporting Variant Region IDs",
	"Assembly", "Chr Name", "Chr Accession", "Contig Accession",
	"Outer Start", "Start", "Inner Start", "Inner Stop", "Stop", "Outer Stop",
}

func newTSV(w io.Writer) *csv.Writer {
	res := csv.NewWriter(w)
	res.Comma = '\t'
	return res
}

// WriteCallsTSV writes the Variant Call table with the accession column
// prepended.
func WriteCallsTSV(w io.Writer, sub *model.Submission) error {
	tw := newTSV(w)
	if err := tw.Write(callColumns); err != nil {
		return err
	}
	for _, c := range sub.Calls {
		row := []string{
			c.Accession, c.ID, c.Type, c.SOTerm,
			c.AssayID, c.ExperimentID, c.SampleSetID, c.SampleID, c.Zygosity,
			intStr(c.CopyNumber), intStr(c.AlleleCount), intStr(c.AlleleNumber),
			floatStr(c.AlleleFrequency),
		}
		row = append(row, placementCells(c.Placement)...)
		row = append(row,
			c.From.Chr, intStr(c.From.Coord), c.From.Strand,
			c.To.Chr, intStr(c.To.Coord), c.To.Strand,
			c.MutationID, intStr(c.MutationOrder), c.Evidence, c.Phenotype,
		)
		if err := tw.Write(row); err != nil {
			return err
		}
	}
	tw.Flush()
	return tw.Error()
}

// WriteRegionsTSV writes the Variant Region table with the accession
// column prepended.
func WriteRegionsTSV(w io.Writer, sub *model.Submission) error {
	calls := callAccessions(sub)
	tw := newTSV(w)
	if err := tw.Write(regionColumns); err != nil {
		return err
	}
	for _, r := range sub.Regions {
		accs := make([]string, 0, len(r.CallIDs))
		for _, id := range r.CallIDs {
			accs = append(accs, calls[id])
		}
		row := []string{
			r.Accession, r.ID, r.Type, r.SOTerm, r.AssertionMethod,
			strings.Join(r.CallIDs, ","), strings.Join(accs, ","),
			strings.Join(r.RegionIDs, ","),
		}
		row = append(row, placementCells(r.Placement)...)
		if err := tw.Write(row); err != nil {
			return err
		}
	}
	tw.Flush()
	return tw.Error()
}

func placementCells(p model.Placement) []string {
	return []string{
		p.Assembly, p.ChrName, p.ChrAccession, p.ContigAccession,
		intStr(p.OuterStart), intStr(p.Start), intStr(p.InnerStart),
		intStr(p.InnerStop), intStr(p.Stop), intStr(p.OuterStop),
	}
}

func callAccessions(sub *model.Submission) map[string]string {
	res := make(map[string]string, len(sub.Calls))
	for _, c := range sub.Calls {
		res[c.ID] = c.Accession
	}
	return res
}

func intStr(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

func floatStr(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// Package ioexport writes exports, validation reports and VCF logs to the
// output directory.
package ioexport

import (
	"io"
	"log/slog"
	"path/filepath"

	"github.com/ddbj/jvar/internal/iofs"
	"github.com/ddbj/jvar/pkg/export"
	"github.com/ddbj/jvar/pkg/finding"
	"github.com/ddbj/jvar/pkg/ledger"
	"github.com/ddbj/jvar/pkg/model"
)

// File name suffixes of the outputs, prefixed by the submission ID.
const (
	DbSNPSuffix   = "_dbsnp.tsv"
	DbVarSuffix   = "_dbvar.xml"
	CallsSuffix   = "_variant_call.tsv"
	RegionsSuffix = "_variant_region.tsv"
	ReportSuffix  = "_report.txt"
	VCFLogSuffix  = ".log"
)

// Writer puts output files into one directory.
type Writer struct {
	Dir string
}

// New creates a Writer for dir.
func New(dir string) *Writer {
	return &Writer{Dir: dir}
}

// Path returns the output path of a file name.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// Report writes the validation report of the submission and one log per
// VCF file. It returns the written paths.
func (w *Writer) Report(
	submissionID string,
	set *finding.Set,
	vcfFiles []string,
) ([]string, error) {
	if err := iofs.TouchDir(w.Dir); err != nil {
		return nil, err
	}

	var res []string
	path := w.Path(submissionID + ReportSuffix)
	err := iofs.WriteAtomic(path, func(out io.Writer) error {
		return set.Report(out, submissionID)
	})
	if err != nil {
		return nil, ExportError(path, err)
	}
	res = append(res, path)

	for _, vcf := range vcfFiles {
		path = w.Path(filepath.Base(vcf) + VCFLogSuffix)
		err = iofs.WriteAtomic(path, func(out io.Writer) error {
			return export.WriteVCFLog(out, vcf, set)
		})
		if err != nil {
			return res, ExportError(path, err)
		}
		res = append(res, path)
	}
	return res, nil
}

// Submission writes archive exports of an accessioned submission: dbSNP
// flat records for short variants, dbVar XML and per-object TSV for
// structural variants.
func (w *Writer) Submission(sub *model.Submission) ([]string, error) {
	if err := iofs.TouchDir(w.Dir); err != nil {
		return nil, err
	}

	type output struct {
		suffix string
		write  func(io.Writer, *model.Submission) error
	}
	var outs []output
	switch sub.Kind {
	case ledger.SNP:
		outs = []output{{DbSNPSuffix, export.WriteDbSNP}}
	case ledger.SV:
		outs = []output{
			{DbVarSuffix, export.WriteDbVarXML},
			{CallsSuffix, export.WriteCallsTSV},
			{RegionsSuffix, export.WriteRegionsTSV},
		}
	}

	var res []string
	for _, o := range outs {
		path := w.Path(sub.ID + o.suffix)
		err := iofs.WriteAtomic(path, func(out io.Writer) error {
			return o.write(out, sub)
		})
		if err != nil {
			return res, ExportError(path, err)
		}
		slog.Info("Export written", "path", path)
		res = append(res, path)
	}
	return res, nil
}

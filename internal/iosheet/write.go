package iosheet

import (
	"cmp"
	"errors"
	"io/fs"
	"os"
	"slices"

	"github.com/ddbj/jvar/pkg/ledger"
	"github.com/ddbj/jvar/pkg/normalize"
	"github.com/xuri/excelize/v2"
)

// SheetOrder is the order of sheets in written workbooks.
var SheetOrder = []string{
	normalize.StudySheet,
	normalize.SampleSetSheet,
	normalize.SampleSheet,
	normalize.ExperimentSheet,
	normalize.DatasetSheet,
	normalize.CallSheet,
	normalize.RegionSheet,
}

// WriteTemplate saves an empty submission workbook of the kind. An
// existing file is left alone.
func WriteTemplate(path string, kind ledger.Kind) error {
	if _, err := os.Stat(path); err == nil {
		return WriteError(path, fs.ErrExist)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return WriteError(path, err)
	}
	return Write(path, normalize.Template(kind))
}

// Write saves the workbook as .xlsx. Known sheets come first in
// SheetOrder, the rest follow by name.
func Write(path string, wb *normalize.Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(normalize.StudySheet); err != nil {
		return WriteError(path, err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return WriteError(path, err)
	}
	keys := make([]string, 0, len(wb.Study))
	for k := range wb.Study {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for i, k := range keys {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return WriteError(path, err)
		}
		err = f.SetSheetRow(normalize.StudySheet, cell, &[]any{k, wb.Study[k]})
		if err != nil {
			return WriteError(path, err)
		}
	}

	for _, s := range orderedSheets(wb) {
		if err := writeSheet(f, s); err != nil {
			return WriteError(path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return WriteError(path, err)
	}
	return nil
}

func orderedSheets(wb *normalize.Workbook) []*normalize.Sheet {
	var res, rest []*normalize.Sheet
	seen := make(map[*normalize.Sheet]struct{})
	for _, name := range SheetOrder[1:] {
		if s, ok := wb.Sheet(name); ok {
			res = append(res, s)
			seen[s] = struct{}{}
		}
	}
	for _, s := range wb.Sheets {
		if _, ok := seen[s]; !ok {
			rest = append(rest, s)
		}
	}
	slices.SortFunc(rest, func(a, b *normalize.Sheet) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return append(res, rest...)
}

func writeSheet(f *excelize.File, s *normalize.Sheet) error {
	if _, err := f.NewSheet(s.Name); err != nil {
		return err
	}
	header := make([]any, len(s.Columns))
	for i, c := range s.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return err
	}
	for i, r := range s.Rows {
		vals := make([]any, len(s.Columns))
		for j, c := range s.Columns {
			vals[j] = r.Get(c)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err = f.SetSheetRow(s.Name, cell, &vals); err != nil {
			return err
		}
	}
	return nil
}

// Package iosheet reads submission workbooks (.xlsx).
package iosheet

import (
	"io"
	"log/slog"
	"strings"

	"github.com/ddbj/jvar/pkg/normalize"
	"github.com/xuri/excelize/v2"
)

// CommentPrefix marks rows that are instructions for submitters.
const CommentPrefix = "#"

// Read opens the workbook at path.
func Read(path string) (*normalize.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()
	return convert(path, f)
}

// ReadFrom reads a workbook from r. Name is used in messages only.
func ReadFrom(name string, r io.Reader) (*normalize.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ReadError(name, err)
	}
	defer f.Close()
	return convert(name, f)
}

func convert(name string, f *excelize.File) (*normalize.Workbook, error) {
	res := normalize.NewWorkbook()
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, ReadError(name, err)
		}
		if strings.EqualFold(strings.TrimSpace(sheet), normalize.StudySheet) {
			res.Study = study(rows)
			continue
		}
		s := table(sheet, rows)
		res.AddSheet(s)
		slog.Debug("Sheet read", "sheet", sheet, "rows", len(s.Rows))
	}
	return res, nil
}

// study reads the vertical Study sheet: keys in the first column, values
// in the second one.
func study(rows [][]string) map[string]string {
	res := make(map[string]string)
	for _, r := range rows {
		if len(r) == 0 || skip(r) {
			continue
		}
		key := strings.TrimSpace(r[0])
		var val string
		if len(r) > 1 {
			val = strings.TrimSpace(r[1])
		}
		res[key] = val
	}
	return res
}

// table reads a horizontal sheet. The first row that is neither empty nor
// a comment is the header, row numbers follow the spreadsheet.
func table(name string, rows [][]string) *normalize.Sheet {
	res := &normalize.Sheet{Name: name}
	for i, r := range rows {
		if skip(r) {
			continue
		}
		if res.Columns == nil {
			res.Columns = trimAll(r)
			continue
		}
		res.Rows = append(res.Rows, normalize.NewRow(i+1, res.Columns, r))
	}
	return res
}

func skip(r []string) bool {
	empty := true
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			empty = false
			break
		}
	}
	if empty {
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(r[0]), CommentPrefix)
}

func trimAll(ss []string) []string {
	res := make([]string, len(ss))
	for i, s := range ss {
		res[i] = strings.TrimSpace(s)
	}
	return res
}

package iosheet

import (
	"fmt"

	"github.com/ddbj/jvar/pkg/errcode"
	"github.com/gnames/gn"
)

// ReadError is returned when the workbook cannot be opened or parsed.
func ReadError(path string, err error) error {
	msg := `Cannot read workbook <em>%s</em>

<em>How to fix:</em>
  Save the metadata as an Excel workbook (.xlsx)`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.WorkbookReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read workbook %s: %w", path, err),
	}
}

// WriteError is returned when a workbook cannot be saved.
func WriteError(path string, err error) error {
	msg := "Cannot write workbook <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write workbook %s: %w", path, err),
	}
}

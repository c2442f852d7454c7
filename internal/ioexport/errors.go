package ioexport

import (
	"fmt"

	"github.com/ddbj/jvar/pkg/errcode"
	"github.com/gnames/gn"
)

// ExportError is returned when an output file cannot be written.
func ExportError(path string, err error) error {
	msg := "Cannot write output file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ExportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot export %s: %w", path, err),
	}
}

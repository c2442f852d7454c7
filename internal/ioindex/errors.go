package ioindex

import (
	"fmt"

	"github.com/ddbj/jvar/pkg/errcode"
	"github.com/gnames/gn"
)

// IndexError is returned for failures of the accession index database.
func IndexError(path string, err error) error {
	msg := "Accession index <em>%s</em> failed"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.AccessionIndexError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("accession index %s: %w", path, err),
	}
}

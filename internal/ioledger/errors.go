package ioledger

import (
	"fmt"

	"github.com/ddbj/jvar/pkg/errcode"
	"github.com/gnames/gn"
)

// BackupError is returned when the ledger cannot be copied before a rewrite.
// The ledger is left untouched.
func BackupError(path string, err error) error {
	msg := `Cannot back up accession ledger <em>%s</em>

The ledger was not modified and no accessions were issued.`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.LedgerBackupError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot back up ledger %s: %w", path, err),
	}
}

// WriteError is returned when the new ledger cannot replace the old one.
func WriteError(path string, err error) error {
	msg := `Cannot write accession ledger <em>%s</em>

The previous ledger content is kept, restore it from the backup if needed.`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.LedgerWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write ledger %s: %w", path, err),
	}
}

package iofs

import (
	"fmt"
	"runtime"

	"github.com/ddbj/jvar/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateDirError is returned when a config, data, log or output directory
// cannot be created.
func CreateDirError(dir string, err error) error {
	return fsError(errcode.CreateDirError,
		"Cannot create directory <em>%s</em>", "create directory", dir, err)
}

// CopyFileError is returned when a copy, such as a ledger backup, fails.
func CopyFileError(file string, err error) error {
	return fsError(errcode.CopyFileError,
		"Cannot copy file to <em>%s</em>", "copy file", file, err)
}

func ReadFileError(path string, err error) error {
	return fsError(errcode.ReadFileError,
		"Cannot read <em>%s</em>", "read", path, err)
}

func WriteFileError(path string, err error) error {
	return fsError(errcode.WriteFileError,
		"Cannot write <em>%s</em>", "write", path, err)
}

// fsError records the function that called the exported constructor.
func fsError(code gn.ErrorCode, msg, action, path string, err error) error {
	pc, _, _, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: code,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot %s %s: %w", fn.Name(), action, path, err),
	}
}

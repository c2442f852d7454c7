package ioref

import (
	"fmt"

	"github.com/ddbj/jvar/pkg/errcode"
	"github.com/gnames/gn"
)

// MissingAssembliesError is returned when the reference directory has no
// assemblies.json.
func MissingAssembliesError(dir string) error {
	msg := `Reference directory <em>%s</em> has no assemblies.json

<em>How to fix:</em>
  Point reference.dir in config.yaml or JVAR_REFERENCE_DIR
  to a directory with reference data`
	vars := []any{dir}
	return &gn.Error{
		Code: errcode.ReferenceLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no %s in %s", AssembliesFile, dir),
	}
}

// LoadError is returned when a reference file cannot be read.
func LoadError(path string, err error) error {
	msg := "Cannot read reference file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ReferenceLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read reference %s: %w", path, err),
	}
}

// FormatError is returned for reference files with unexpected content.
// Line is 0 for whole-file documents.
func FormatError(path string, line int, err error) error {
	msg := "Reference file <em>%s</em> is malformed"
	vars := []any{path}
	if line > 0 {
		msg = "Reference file <em>%s</em> is malformed at line %d"
		vars = append(vars, line)
	}
	return &gn.Error{
		Code: errcode.ReferenceFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("malformed reference %s:%d: %w", path, line, err),
	}
}

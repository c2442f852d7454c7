package vcf

import (
	"fmt"

	"github.com/ddbj/jvar/pkg/errcode"
	"github.com/gnames/gn"
)

// FormatError is returned for VCF lines that cannot be parsed.
func FormatError(file string, line int, reason string) error {
	msg := "Malformed VCF <em>%s</em> at line %d: %s"
	vars := []any{file, line, reason}
	return &gn.Error{
		Code: errcode.VCFFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("vcf %s line %d: %s", file, line, reason),
	}
}

// ReadError wraps I/O failures while scanning a VCF stream.
func ReadError(file string, err error) error {
	msg := "Cannot read VCF <em>%s</em>"
	vars := []any{file}
	return &gn.Error{
		Code: errcode.VCFReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read vcf %s: %w", file, err),
	}
}

func errColumns(got, want int) error {
	return fmt.Errorf("expected %d columns, got %d", want, got)
}

func errPos(s string) error {
	return fmt.Errorf("POS '%s' is not a number", s)
}

func errPair(key, val string) error {
	return fmt.Errorf("%s=%s is not a pair of integers", key, val)
}

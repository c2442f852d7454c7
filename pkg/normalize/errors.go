package normalize

import (
	"fmt"
	"strings"

	"github.com/ddbj/jvar/pkg/errcode"
	"github.com/gnames/gn"
)

// MissingSheetError is returned when a required workbook sheet is absent.
func MissingSheetError(names ...string) error {
	msg := `Required sheet <em>%s</em> is missing from the workbook`
	name := strings.Join(names, "' or '")
	vars := []any{name}
	return &gn.Error{
		Code: errcode.MissingSheetError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("missing sheet %s", name),
	}
}

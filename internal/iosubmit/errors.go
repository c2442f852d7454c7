package iosubmit

import (
	"fmt"

	"github.com/ddbj/jvar/pkg/errcode"
	"github.com/gnames/gn"
)

// BlockingFindingsError stops a submission whose validation produced
// blocking findings. No accession is issued.
func BlockingFindingsError(submissionID string, count int, report string) error {
	msg := `Submission <em>%s</em> has %d blocking problem(s), no accessions were issued

<em>How to fix:</em>
  Correct the records listed under Error in <em>%s</em>
  and run the submission again`
	vars := []any{submissionID, count, report}
	return &gn.Error{
		Code: errcode.BlockingFindingsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("submission %s: %d blocking findings",
			submissionID, count),
	}
}

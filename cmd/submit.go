/*
Copyright © 2026 DDBJ

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ddbj/jvar/internal/iosubmit"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"
)

// getSubmitCmd returns the submit command.
func getSubmitCmd() *cobra.Command {
	var sf submissionFlags

	submitCmd := &cobra.Command{
		Use:   "submit <workbook.xlsx>",
		Short: "Validate a submission and issue accessions",
		Long: `Validate a submission and, if nothing blocks it, issue accessions.

This command runs everything 'jvar validate' does, then:
  1. Loads the accession ledger and reports gaps in it as warnings
  2. Stops without touching the ledger if any error was found
  3. Allocates one contiguous block per accession namespace:
     dstd for the study, dss for short variants,
     dssv for Variant Calls and dsv for Variant Regions
  4. Writes dbVar XML and TSV files (structural variants)
     or dbSNP flat files (short variants)
  5. Appends the submission to the ledger, keeping a backup
  6. Updates accessions.sqlite unless --no-index is given

A submission ID can be accessioned only once.

Examples:
  jvar submit -s VSUB000123 study.xlsx -v calls.vcf.gz
  jvar submit -s VSUB000123 study.xlsx --ledger /shared/accession.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(sf.options(args[0]))
			s := iosubmit.New(cfg, sf.progress)
			res, err := s.Submit(context.Background())
			if res != nil && len(res.Files) > 0 {
				fmt.Println(summary(res))
			}
			if err != nil {
				gnlib.PrintUserMessage(err)
				return err
			}

			var ranges []string
			for _, v := range strings.Split(res.Allocation.Entry().String(), "\t") {
				if v != "" && v != res.SubmissionID {
					ranges = append(ranges, v)
				}
			}
			msg := fmt.Sprintf(
				"<em>✓ Accessions issued:</em> %s\n", strings.Join(ranges, ", "),
			)
			fmt.Println(gnlib.FormatMessage(msg, nil))
			return nil
		},
	}

	sf.add(submitCmd)
	return submitCmd
}

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

	"github.com/ddbj/jvar/internal/iosubmit"
	"github.com/ddbj/jvar/pkg/finding"
	"github.com/ddbj/jvar/pkg/jvar"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"
)

// getValidateCmd returns the validate command.
func getValidateCmd() *cobra.Command {
	var sf submissionFlags

	validateCmd := &cobra.Command{
		Use:   "validate <workbook.xlsx>",
		Short: "Validate a submission workbook and its VCF files",
		Long: `Check a submission without issuing accessions.

This command:
  1. Loads the reference assemblies, vocabularies and rules
  2. Reads the metadata workbook and the VCF files
  3. Normalizes them into Study, SampleSets, Samples, Experiments,
     Datasets, Variant Calls, Variant Regions and short variants
  4. Checks placements on the reference and the linkage of
     Variant Regions to their supporting Variant Calls
  5. Writes <submission-id>_report.txt and one <vcf>.log per VCF
     into the output directory

The accession ledger is not read.

Examples:
  jvar validate -s VSUB000123 study.xlsx -v calls.vcf.gz
  jvar validate -s VSUB000123 study.xlsx -v a.vcf,b.vcf -o reports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(sf.options(args[0]))
			v := iosubmit.New(cfg, sf.progress)
			res, err := v.Validate(context.Background())
			if err != nil {
				gnlib.PrintUserMessage(err)
				return err
			}
			fmt.Println(summary(res))
			return nil
		},
	}

	sf.add(validateCmd)
	return validateCmd
}

// summary formats the outcome of a run for the terminal.
func summary(res *jvar.Result) string {
	msg := fmt.Sprintf(`
<em>%s</em> (%s): %d error(s), %d ignorable error(s), %d warning(s)
Report: <em>%s</em>
Finished in %s
`,
		res.SubmissionID, res.Kind,
		res.Findings.Count(finding.Blocking),
		res.Findings.Count(finding.Soft),
		res.Findings.Count(finding.Advisory),
		res.Files[0],
		gnfmt.TimeString(res.Duration.Seconds()),
	)
	return gnlib.FormatMessage(msg, nil)
}

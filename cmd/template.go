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
	"fmt"
	"strings"

	"github.com/ddbj/jvar/internal/iosheet"
	"github.com/ddbj/jvar/pkg/ledger"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/spf13/cobra"
)

// getTemplateCmd returns the template command.
func getTemplateCmd() *cobra.Command {
	var kind string

	templateCmd := &cobra.Command{
		Use:   "template <workbook.xlsx>",
		Short: "Write an empty submission workbook",
		Long: `Create a metadata workbook with every sheet and column header
read by validate and submit. SV workbooks carry the Variant Call (SV)
and Variant Region (SV) sheets, SNP workbooks take their variants from
VCF files and do not. An existing file is never overwritten.

Examples:
  jvar template study.xlsx
  jvar template --kind snp study.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKind(kind)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			if err = iosheet.WriteTemplate(args[0], k); err != nil {
				gnlib.PrintUserMessage(err)
				return err
			}
			gn.Info("%s template written to <em>%s</em>", k, args[0])
			return nil
		},
	}

	templateCmd.Flags().StringVarP(&kind, "kind", "k", "sv",
		"submission kind: sv or snp")
	return templateCmd
}

func parseKind(s string) (ledger.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sv":
		return ledger.SV, nil
	case "snp":
		return ledger.SNP, nil
	}
	return ledger.UnknownKind, fmt.Errorf("unknown submission kind %q, use sv or snp", s)
}

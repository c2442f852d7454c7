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
	"github.com/ddbj/jvar/pkg/config"
	"github.com/spf13/cobra"
)

// addPersistentFlags adds flags shared by all subcommands. They override
// the config file and JVAR_* variables.
func addPersistentFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("ledger", "", "path to the accession ledger file")
	pf.String("backup-dir", "", "directory for ledger backups")
	pf.String("reference", "", "reference data directory")
	pf.StringP("output", "o", "", "directory for generated files")
	pf.Bool("no-index", false, "do not write the accession index")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
}

// persistentOptions turns explicitly set shared flags into config options.
func persistentOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()

	for _, v := range []struct {
		name string
		opt  func(string) config.Option
	}{
		{"ledger", config.OptLedgerPath},
		{"backup-dir", config.OptLedgerBackupDir},
		{"reference", config.OptReferenceDir},
		{"output", config.OptOutputDir},
		{"log-level", config.OptLogLevel},
	} {
		if !flags.Changed(v.name) {
			continue
		}
		val, _ := flags.GetString(v.name)
		res = append(res, v.opt(val))
	}

	if flags.Changed("no-index") {
		noIndex, _ := flags.GetBool("no-index")
		index := !noIndex
		res = append(res, config.OptOutputAccessionIndex(&index))
	}
	return res
}

// submissionFlags holds flags of commands that read a submission.
type submissionFlags struct {
	id       string
	vcfFiles []string
	progress bool
}

func (sf *submissionFlags) add(cmd *cobra.Command) {
	cmd.Flags().StringVarP(
		&sf.id, "submission-id", "s", "",
		"submission ID, VSUB followed by 6 digits",
	)
	cmd.Flags().StringSliceVarP(
		&sf.vcfFiles, "vcf", "v", nil,
		"VCF files of the submission (repeat or separate by commas)",
	)
	cmd.Flags().BoolVarP(
		&sf.progress, "progress", "p", false,
		"show progress while reading VCF files",
	)
	_ = cmd.MarkFlagRequired("submission-id")
}

// options converts submission flags and the workbook argument into
// runtime config options.
func (sf *submissionFlags) options(workbook string) []config.Option {
	return []config.Option{
		config.OptSubmissionID(sf.id),
		config.OptWorkbook(workbook),
		config.OptVCFFiles(sf.vcfFiles),
	}
}

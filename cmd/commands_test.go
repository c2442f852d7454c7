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
	"path/filepath"
	"testing"

	"github.com/ddbj/jvar/pkg/config"
	"github.com/ddbj/jvar/pkg/ledger"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubmissionCommands verifies validate and submit share
// submission flags.
func TestSubmissionCommands(t *testing.T) {
	for _, cmd := range []*cobra.Command{getValidateCmd(), getSubmitCmd()} {
		require.NotNil(t, cmd.RunE, cmd.Name())
		assert.NotEmpty(t, cmd.Short, cmd.Name())
		assert.Contains(t, cmd.Long, "_report.txt", cmd.Name())

		tests := []struct {
			name, short string
		}{
			{"submission-id", "s"},
			{"vcf", "v"},
			{"progress", "p"},
		}
		for _, v := range tests {
			flag := cmd.Flags().Lookup(v.name)
			require.NotNil(t, flag, "--%s flag should exist", v.name)
			assert.Equal(t, v.short, flag.Shorthand)
		}

		id := cmd.Flags().Lookup("submission-id")
		assert.Equal(t, []string{"true"},
			id.Annotations[cobra.BashCompOneRequiredFlag],
			"--submission-id should be required")

		assert.Error(t, cmd.Args(cmd, nil), "workbook argument is required")
		assert.NoError(t, cmd.Args(cmd, []string{"study.xlsx"}))
	}
}

// TestSubmissionFlagsOptions verifies flags become runtime options.
func TestSubmissionFlagsOptions(t *testing.T) {
	cmd := getSubmitCmd()
	err := cmd.ParseFlags([]string{
		"-s", "VSUB000123", "--vcf", "a.vcf, b.vcf.gz", "-v", "c.vcf",
	})
	require.NoError(t, err)

	sf := submissionFlags{}
	sf.id, _ = cmd.Flags().GetString("submission-id")
	sf.vcfFiles, _ = cmd.Flags().GetStringSlice("vcf")

	c := config.New()
	c.Update(sf.options("study.xlsx"))
	assert.Equal(t, "VSUB000123", c.Submission.ID)
	assert.Equal(t, "study.xlsx", c.Submission.Workbook)
	assert.Equal(t, []string{"a.vcf", "b.vcf.gz", "c.vcf"}, c.Submission.VCFFiles)
}

// TestGetLedgerCmd verifies ledger subcommands.
func TestGetLedgerCmd(t *testing.T) {
	cmd := getLedgerCmd()
	assert.Equal(t, "ledger", cmd.Use)

	names := make(map[string]*cobra.Command)
	for _, c := range cmd.Commands() {
		names[c.Name()] = c
	}
	require.Contains(t, names, "check")
	require.Contains(t, names, "lookup")

	assert.Error(t, names["check"].Args(names["check"], []string{"x"}))
	assert.Error(t, names["lookup"].Args(names["lookup"], nil))
	assert.NoError(t, names["lookup"].Args(names["lookup"], []string{"dssv1"}))
}

// TestTemplateCmd verifies the template workbook is written once.
func TestTemplateCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.xlsx")

	cmd := getTemplateCmd()
	cmd.SetArgs([]string{"--kind", "snp", path})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, path)

	cmd = getTemplateCmd()
	cmd.SetArgs([]string{path})
	assert.Error(t, cmd.Execute(), "existing workbook is not overwritten")

	cmd = getTemplateCmd()
	cmd.SetArgs([]string{"--kind", "cnv", filepath.Join(t.TempDir(), "x.xlsx")})
	assert.Error(t, cmd.Execute())

	k, err := parseKind(" SV ")
	require.NoError(t, err)
	assert.Equal(t, ledger.SV, k)
}

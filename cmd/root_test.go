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
	"bytes"
	"strings"
	"testing"

	"github.com/ddbj/jvar/pkg/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "jvar", cmd.Use,
		"Command name should be jvar")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3",
		"Version output should contain version")
	assert.Contains(t, output, "abc123",
		"Version output should contain build")
	assert.NotContains(t, output, "jvar version",
		"Should use custom version template")
}

// TestGetRootCmd_ShortVersionFlag verifies
// -V flag works.
func TestGetRootCmd_ShortVersionFlag(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-V"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "v1.2.3",
		"Version output should work with -V flag")
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	for _, v := range []string{"validate", "submit", "ledger", "JVAR_LEDGER_PATH"} {
		assert.Contains(t, helpText, v, "Help should mention "+v)
	}
}

// TestGetRootCmd_Settings verifies bootstrap and
// error silencing.
func TestGetRootCmd_Settings(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.NotNil(t, cmd.RunE)
	assert.True(t, cmd.SilenceErrors, "Errors should be silenced")
	assert.True(t, cmd.SilenceUsage, "Usage should be silenced on errors")
}

// TestGetRootCmd_Subcommands verifies every subcommand is registered.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()
	for _, v := range []string{"validate", "submit", "ledger", "template"} {
		sub, _, err := cmd.Find([]string{v})
		require.NoError(t, err, v)
		assert.Equal(t, v, sub.Name())
	}
	sub, _, err := cmd.Find([]string{"ledger", "lookup"})
	require.NoError(t, err)
	assert.Equal(t, "lookup", sub.Name())
}

// TestGetRootCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each getRootCmd call should return new instance")

	cmd1.Version = "version1"
	cmd2.Version = "version2"
	assert.Equal(t, "version1", cmd1.Version)
	assert.Equal(t, "version2", cmd2.Version)
}

// TestGetRootCmd_InvalidCommand verifies error on
// invalid command.
func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()
	assert.Error(t, err, "Should error on invalid command")
	assert.True(t,
		strings.Contains(buf.String(), "unknown") ||
			strings.Contains(err.Error(), "unknown"),
		"Error should indicate unknown command")
}

// TestPersistentOptions verifies shared flags override config values
// only when set.
func TestPersistentOptions(t *testing.T) {
	root := getRootCmd()
	var sub *cobra.Command
	root.AddCommand(&cobra.Command{
		Use: "noop",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sub = cmd
			return nil
		},
	})
	root.SetArgs([]string{"noop", "--ledger", "/shared/accession.tsv",
		"-o", "out", "--no-index"})
	require.NoError(t, root.Execute())
	require.NotNil(t, sub)

	c := config.New()
	c.Update(persistentOptions(sub))
	assert.Equal(t, "/shared/accession.tsv", c.Ledger.Path)
	assert.Equal(t, "out", c.Output.Dir)
	assert.False(t, c.Output.AccessionIndex)
	assert.Equal(t, "info", c.Log.Level, "unset flags keep config values")
}

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
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ddbj/jvar/internal/iofs"
	"github.com/ddbj/jvar/internal/iologger"
	app "github.com/ddbj/jvar/pkg"
	"github.com/ddbj/jvar/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "jvar",
		Short:   "JVar validates variant submissions and issues accessions",
		Long: `JVar checks structural and short variant submissions made of a
metadata workbook and VCF files, assigns dstd, dss, dssv and dsv
accessions from the shared ledger and writes archive exports.

Commands:
  - validate: check a submission, write the report and VCF logs
  - submit:   validate, issue accessions and write dbVar or dbSNP files
  - ledger:   inspect the accession ledger and the accession index
  - template: write an empty submission workbook

Configuration precedence (highest to lowest):
  1. CLI flags (--output, --ledger, etc.)
  2. Environment variables (JVAR_*)
  3. Config file (~/.config/jvar/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (ledger.path → JVAR_LEDGER_PATH).

    JVAR_LEDGER_PATH              accession ledger file
    JVAR_LEDGER_BACKUP_DIR        directory for ledger backups
    JVAR_REFERENCE_DIR            reference data directory
    JVAR_OUTPUT_DIR               directory for generated files
    JVAR_OUTPUT_ACCESSION_INDEX   write accessions.sqlite (true/false)
    JVAR_LOG_LEVEL                log level (debug/info/warn/error)
    JVAR_LOG_FORMAT               log format (json/text/tint)
    JVAR_LOG_DESTINATION          log destination (file/stdout/stderr)`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "jvar version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for jvar")
	addPersistentFlags(rootCmd)

	rootCmd.AddCommand(getValidateCmd())
	rootCmd.AddCommand(getSubmitCmd())
	rootCmd.AddCommand(getLedgerCmd())
	rootCmd.AddCommand(getTemplateCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Hardcoded defaults until the user's config is read.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if logCloser, err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Flags common to all subcommands override the config file.
	cfg.Update(persistentOptions(cmd))

	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"ledger", cfg.LedgerPath(),
		"reference", cfg.ReferencePath(),
		"output", cfg.Output.Dir,
	)
	return nil
}

// reconfigureLogging reopens the log with user's settings. The file opened
// with defaults is appended to, so bootstrap records survive.
func reconfigureLogging(cfg *config.Config) error {
	closer, err := iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true)
	if err != nil {
		return err
	}
	if logCloser != nil {
		logCloser.Close()
	}
	logCloser = closer
	return nil
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Only fields of config.ToOptions() are bound, runtime fields such as
	// the submission ID come from flags.
	v.SetEnvPrefix("JVAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("ledger.path", "JVAR_LEDGER_PATH")
	v.BindEnv("ledger.backup_dir", "JVAR_LEDGER_BACKUP_DIR")

	v.BindEnv("reference.dir", "JVAR_REFERENCE_DIR")

	v.BindEnv("output.dir", "JVAR_OUTPUT_DIR")
	v.BindEnv("output.accession_index", "JVAR_OUTPUT_ACCESSION_INDEX")

	v.BindEnv("log.level", "JVAR_LOG_LEVEL")
	v.BindEnv("log.format", "JVAR_LOG_FORMAT")
	v.BindEnv("log.destination", "JVAR_LOG_DESTINATION")

	v.AutomaticEnv()
}

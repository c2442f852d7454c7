// Package config provides configuration management for jvar.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Ledger: path, backup_dir
//   - Reference: dir
//   - Output: dir, accession_index
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Submission.ID, Workbook, VCFFiles (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use JVAR_ prefix with underscores for nesting:
//
//	JVAR_LEDGER_PATH=/data/jvar/accession.tsv
//	JVAR_REFERENCE_DIR=/data/jvar/reference
//	JVAR_OUTPUT_DIR=./out
//	JVAR_LOG_LEVEL=info
package config

// Config represents the complete jvar configuration.
type Config struct {
	// Ledger contains the location of the shared accession ledger.
	Ledger LedgerConfig `mapstructure:"ledger" yaml:"ledger"`

	// Reference points to static reference data (assemblies, vocabularies).
	Reference ReferenceConfig `mapstructure:"reference" yaml:"reference"`

	// Output contains settings for generated files.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Submission describes the submission processed by the current run.
	Submission SubmissionConfig `mapstructure:"-" yaml:"-"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// LedgerConfig contains the accession ledger file settings.
type LedgerConfig struct {
	// Path to the ledger file. Empty means the default location
	// inside the data directory.
	Path string `mapstructure:"path" yaml:"path"`

	// BackupDir keeps timestamped copies of the ledger made before every
	// rewrite. Empty means the directory of the ledger file.
	BackupDir string `mapstructure:"backup_dir" yaml:"backup_dir"`
}

// ReferenceConfig contains the location of reference data.
type ReferenceConfig struct {
	// Dir contains assemblies.json, per-assembly JSONL sequence directories,
	// optional vocabularies.json, rules.yaml and external/*.fai files.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// OutputConfig contains settings for exported files.
type OutputConfig struct {
	// Dir is where exports, validation report and VCF logs are written.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// AccessionIndex enables the SQLite accession lookup file.
	AccessionIndex bool `mapstructure:"accession_index" yaml:"accession_index"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// SubmissionConfig holds runtime-only data about the processed submission.
type SubmissionConfig struct {
	// ID is the submission identifier, VSUB followed by 6 digits.
	ID string

	// Workbook is the path to the metadata spreadsheet.
	Workbook string

	// VCFFiles are paths to VCF files referenced by the workbook.
	VCFFiles []string
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Output: OutputConfig{
			Dir:            ".",
			AccessionIndex: true,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

// LedgerPath returns the configured ledger location or the default one.
func (c *Config) LedgerPath() string {
	if c.Ledger.Path != "" {
		return c.Ledger.Path
	}
	return LedgerFilePath(c.HomeDir)
}

// ReferencePath returns the configured reference directory or the default one.
func (c *Config) ReferencePath() string {
	if c.Reference.Dir != "" {
		return c.Reference.Dir
	}
	return ReferenceDir(c.HomeDir)
}

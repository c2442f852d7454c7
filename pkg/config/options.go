package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptLedgerPath sets the location of the accession ledger file.
func OptLedgerPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Ledger Path", s) {
			c.Ledger.Path = s
		}
	}
}

// OptLedgerBackupDir sets the directory for timestamped ledger backups.
func OptLedgerBackupDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Ledger Backup Dir", s) {
			c.Ledger.BackupDir = s
		}
	}
}

// OptReferenceDir sets the directory with reference data.
func OptReferenceDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Reference Dir", s) {
			c.Reference.Dir = s
		}
	}
}

// OptOutputDir sets the directory for exports and reports.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Dir", s) {
			c.Output.Dir = s
		}
	}
}

// OptOutputAccessionIndex toggles the SQLite accession index.
// Uses pointer to distinguish between unset (nil) and false.
func OptOutputAccessionIndex(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.Output.AccessionIndex = *b
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptSubmissionID sets the identifier of the processed submission.
// The format is checked by the ledger before any processing starts.
// Runtime-only field - not in ToOptions().
func OptSubmissionID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Submission ID", s) {
			c.Submission.ID = s
		}
	}
}

// OptWorkbook sets the path to the metadata workbook.
// Runtime-only field - not in ToOptions().
func OptWorkbook(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Workbook", s) {
			c.Submission.Workbook = s
		}
	}
}

// OptVCFFiles sets paths to VCF files of the submission.
// Runtime-only field - not in ToOptions().
func OptVCFFiles(ss []string) Option {
	return func(c *Config) {
		var res []string
		for _, s := range ss {
			s = strings.TrimSpace(s)
			if s != "" {
				res = append(res, s)
			}
		}
		if len(res) > 0 {
			c.Submission.VCFFiles = res
		}
	}
}

// OptHomeDir sets the home directory for config, data, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "jvar"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/jvar by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// ReferenceDir returns the default directory for reference data.
// Returns ~/.config/jvar/reference by default.
func ReferenceDir(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "reference")
}

// DataDir returns the directory path for persistent data such as the ledger.
// Returns ~/.local/share/jvar by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/jvar/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/jvar/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// LedgerFilePath returns the default path of the accession ledger.
// Returns ~/.local/share/jvar/accession.tsv by default.
func LedgerFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "accession.tsv")
}

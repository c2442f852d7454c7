// Package jvar holds build information for the jvar command line tool.
package jvar

var (
	// Version of jvar, set at build time.
	Version = "v0.1.0"
	// Build timestamp, set at build time.
	Build = "n/a"
)

// Package templates provides embedded configuration and reference
// defaults.
package templates

import _ "embed"

// ConfigYAML contains the default config.yaml template for application configuration.
//
//go:embed config.yaml
var ConfigYAML string

// VocabulariesJSON contains the default controlled vocabularies.
//
//go:embed vocabularies.json
var VocabulariesJSON []byte

// RulesYAML contains default rule tables: region/call type compatibility,
// breakpoint types and experiment resolution thresholds.
//
//go:embed rules.yaml
var RulesYAML []byte

// DbSNPTmpl is the text template of dbSNP flat-record exports.
//
//go:embed dbsnp.tmpl
var DbSNPTmpl string

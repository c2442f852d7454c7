// Package jvar defines the use cases of the application. Implementations
// live in internal packages, the CLI depends on these interfaces only.
package jvar

import (
	"context"
	"time"

	"github.com/ddbj/jvar/pkg/finding"
	"github.com/ddbj/jvar/pkg/ledger"
)

// Validator checks a submission without issuing accessions.
// Config is provided during construction.
type Validator interface {
	// Validate reads the workbook and VCF files, normalizes them and runs
	// placement and linkage checks. The validation report and per-VCF logs
	// are written to the output directory. The ledger is never read or
	// modified.
	Validate(ctx context.Context) (*Result, error)
}

// Submitter validates a submission and, when nothing blocks it, issues
// accessions and writes archive exports.
type Submitter interface {
	Validator

	// Submit runs Validate, loads the ledger and reports gaps in it. If any
	// finding is blocking, it stops with an error before allocation.
	// Otherwise it allocates one contiguous block per namespace, writes
	// the exports, appends the ledger entry and updates the accession
	// index.
	Submit(ctx context.Context) (*Result, error)
}

// Result summarizes one run.
type Result struct {
	SubmissionID string
	// RunID identifies the run in log records.
	RunID    string
	Kind     ledger.Kind
	Findings *finding.Set
	// Allocation is nil unless accessions were issued.
	Allocation *ledger.Allocation
	// Files are the paths written by the run.
	Files    []string
	Duration time.Duration
}

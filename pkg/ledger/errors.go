package ledger

import (
	"errors"
	"fmt"

	"github.com/ddbj/jvar/pkg/errcode"
	"github.com/gnames/gn"
)

// SubmissionIDError is returned for identifiers that do not follow the
// VSUB + 6 digits pattern.
func SubmissionIDError(id string) error {
	msg := `Invalid submission ID <em>'%s'</em>

<em>How to fix:</em>
  Use VSUB followed by 6 digits, for example VSUB000123`
	vars := []any{id}
	return &gn.Error{
		Code: errcode.SubmissionIDError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid submission ID %q", id),
	}
}

// ReadError wraps scanner failures while reading the ledger.
func ReadError(err error) error {
	msg := "Cannot read accession ledger"
	return &gn.Error{
		Code: errcode.LedgerReadError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot read ledger: %w", err),
	}
}

// MalformedLineError is returned for a ledger line that fails the strict
// format.
func MalformedLineError(lineNum int, line, reason string) error {
	msg := `Malformed accession ledger line <em>%d</em>

<em>Line:</em> %s
<em>Problem:</em> %s

The ledger is shared by all runs, fix the file before continuing.`
	vars := []any{lineNum, line, reason}
	return &gn.Error{
		Code: errcode.LedgerFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("ledger line %d: %s", lineNum, reason),
	}
}

// RangeOrderError is returned when a range starts after it ends.
func RangeOrderError(lineNum int, rng string) error {
	msg := "Accession range <em>%s</em> on ledger line %d starts after it ends"
	vars := []any{rng, lineNum}
	return &gn.Error{
		Code: errcode.LedgerRangeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("ledger line %d: range %s low > high", lineNum, rng),
	}
}

// NamespaceRuleError is returned for entries that carry both dss and
// dssv/dsv ranges, or neither group.
func NamespaceRuleError(lineNum int, submissionID string) error {
	msg := `Ledger entry of <em>%s</em> (line %d) breaks the namespace rule

An entry has either dss ranges or both dssv and dsv ranges.`
	vars := []any{submissionID, lineNum}
	return &gn.Error{
		Code: errcode.LedgerNamespaceError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("ledger entry %s: dss and dssv/dsv groups are exclusive",
			submissionID),
	}
}

// DuplicateSubmissionError is returned when the submission already owns
// an entry. It protects against accessioning the same submission twice.
func DuplicateSubmissionError(submissionID string) error {
	msg := `Submission <em>%s</em> is already in the accession ledger

Accessions were assigned to it by an earlier run.`
	vars := []any{submissionID}
	return &gn.Error{
		Code: errcode.LedgerDuplicateSubmissionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("submission %s already in ledger", submissionID),
	}
}

// CollisionError is returned when a range overlaps values owned by an
// existing entry.
func CollisionError(n Namespace, r Range, owner string) error {
	msg := "Accession range <em>%s</em> collides with values owned by %s"
	vars := []any{r.Format(n), owner}
	return &gn.Error{
		Code: errcode.LedgerCollisionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("range %s overlaps %s", r.Format(n), owner),
	}
}

// ErrImpossibleRange is wrapped by ImpossibleRangeError.
var ErrImpossibleRange = errors.New("impossible accession range")

// ImpossibleRangeError is returned when counts do not fit the submission
// kind.
func ImpossibleRangeError(kind Kind, c Counts) error {
	msg := `Cannot allocate accessions for %s submission

<em>Variants:</em> %d, <em>Calls:</em> %d, <em>Regions:</em> %d`
	vars := []any{kind, c.Variants, c.Calls, c.Regions}
	return &gn.Error{
		Code: errcode.LedgerImpossibleRangeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%w: kind %s, counts %+v", ErrImpossibleRange, kind, c),
	}
}

// Package finding defines validation results and their aggregation.
//
// Validators return findings instead of building messages inline. Each
// finding carries a stable Code whose severity and message template live in
// one table, the record type and ID it is attributed to, and, for records
// read from a VCF, the originating file and line.
package finding

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// MaxIDs is the number of record IDs listed in one summary line.
const MaxIDs = 5

// Source locates the VCF row a record was read from.
type Source struct {
	File string
	Line int
	Row  string
}

// Finding is a structured validation result.
type Finding struct {
	Code   Code
	Object Object
	ID     string
	Vars   []any
	Source Source
}

// New creates a finding for a record.
func New(code Code, obj Object, id string, vars ...any) Finding {
	return Finding{Code: code, Object: obj, ID: id, Vars: vars}
}

// At attaches the VCF source of the record to the finding.
func (f Finding) At(src Source) Finding {
	f.Source = src
	return f
}

// Severity returns the severity of the finding code.
func (f Finding) Severity() Severity {
	return SeverityOf(f.Code)
}

// Message renders the template of the code with finding variables.
func (f Finding) Message() string {
	tmpl := Template(f.Code)
	if len(f.Vars) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, f.Vars...)
}

func (f Finding) String() string {
	res := fmt.Sprintf("%s %s: %s", f.Code, f.Severity(), f.Message())
	if f.ID != "" {
		res += " [" + f.ID + "]"
	}
	return res
}

// Summary aggregates all findings of one code within a record category.
type Summary struct {
	Code     Code
	Severity Severity
	Object   Object
	// Messages are the distinct rendered messages in order of appearance.
	Messages []string
	IDs      []string
	Count    int
}

// Message joins the distinct messages of the summary.
func (s Summary) Message() string {
	return capped(s.Messages, "; ")
}

func (s Summary) String() string {
	res := fmt.Sprintf("%s: %s", s.Code, s.Message())
	if len(s.IDs) == 0 {
		return res
	}
	return res + ": " + capped(s.IDs, ", ")
}

// capped joins at most MaxIDs items and marks the rest with "etc".
func capped(items []string, sep string) string {
	if len(items) <= MaxIDs {
		return strings.Join(items, sep)
	}
	return strings.Join(items[:MaxIDs], sep) + sep + "etc"
}

// Set collects findings of one submission.
type Set struct {
	items []Finding
}

// Add appends findings to the set.
func (s *Set) Add(ff ...Finding) {
	s.items = append(s.items, ff...)
}

// All returns every collected finding in the order of addition.
func (s *Set) All() []Finding {
	return s.items
}

// Len returns the number of findings.
func (s *Set) Len() int {
	return len(s.items)
}

// HasBlocking reports whether any finding prevents export.
func (s *Set) HasBlocking() bool {
	return slices.ContainsFunc(s.items, func(f Finding) bool {
		return f.Severity() == Blocking
	})
}

// Count returns the number of aggregated lines of the given severity.
func (s *Set) Count(sev Severity) int {
	var res int
	for _, v := range s.Summaries() {
		if v.Severity == sev {
			res++
		}
	}
	return res
}

// Summaries aggregates findings by category and code, so the number of
// lines does not grow with the number of records. Summaries keep the order
// in which their first finding was added.
func (s *Set) Summaries() []Summary {
	type key struct {
		obj  Object
		code Code
	}
	idx := make(map[key]int)
	var res []Summary
	for _, f := range s.items {
		k := key{obj: f.Object, code: f.Code}
		i, ok := idx[k]
		if !ok {
			i = len(res)
			idx[k] = i
			res = append(res, Summary{
				Code:     f.Code,
				Severity: f.Severity(),
				Object:   f.Object,
			})
		}
		sum := &res[i]
		sum.Count++
		if msg := f.Message(); !slices.Contains(sum.Messages, msg) {
			sum.Messages = append(sum.Messages, msg)
		}
		if f.ID != "" && !slices.Contains(sum.IDs, f.ID) {
			sum.IDs = append(sum.IDs, f.ID)
		}
	}
	return res
}

// ForFile returns findings attributed to rows of the VCF file, keyed by
// line number.
func (s *Set) ForFile(file string) map[int][]Finding {
	res := make(map[int][]Finding)
	for _, f := range s.items {
		if f.Source.File == file && f.Source.Line > 0 {
			res[f.Source.Line] = append(res[f.Source.Line], f)
		}
	}
	return res
}

// Report writes the plain text validation report grouped by record
// category, then by severity.
func (s *Set) Report(w io.Writer, submissionID string) error {
	sums := s.Summaries()
	var b strings.Builder
	fmt.Fprintf(&b, "Validation report for %s\n", submissionID)
	fmt.Fprintf(&b, "Errors: %d, Ignorable errors: %d, Warnings: %d\n",
		s.Count(Blocking), s.Count(Soft), s.Count(Advisory))

	for _, obj := range Objects {
		var lines []Summary
		for _, v := range sums {
			if v.Object == obj {
				lines = append(lines, v)
			}
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n== %s ==\n", obj)
		for _, sev := range []Severity{Blocking, Soft, Advisory} {
			var printed bool
			for _, v := range lines {
				if v.Severity != sev {
					continue
				}
				if !printed {
					fmt.Fprintf(&b, "%s\n", sev)
					printed = true
				}
				fmt.Fprintf(&b, "  %s\n", v)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

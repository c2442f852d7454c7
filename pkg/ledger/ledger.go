// Package ledger implements the append-only accession ledger.
//
// The ledger records every accession range ever minted, one line per
// submission. Counters for the next free identifier are derived from it and
// never stored. The package is pure: reading and writing the ledger file
// belongs to internal/ioledger.
package ledger

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Header is the first line of a ledger file.
const Header = "study\tsubmission\tdss\tdssv\tdsv"

var submissionRe = regexp.MustCompile(`^VSUB[0-9]{6}$`)

// Range is a closed interval of accession numbers.
type Range struct {
	Start, End int
}

// IsZero reports whether the range is unset.
func (r Range) IsZero() bool {
	return r.Start == 0 && r.End == 0
}

// Len returns the number of values in the range.
func (r Range) Len() int {
	if r.IsZero() {
		return 0
	}
	return r.End - r.Start + 1
}

// Overlaps reports whether two ranges share at least one value.
func (r Range) Overlaps(o Range) bool {
	return r.Start <= o.End && o.Start <= r.End
}

// Contains reports whether the value belongs to the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i <= r.End
}

// Format renders the range with the namespace prefix.
func (r Range) Format(n Namespace) string {
	return n.Accession(r.Start) + "-" + n.Accession(r.End)
}

// Entry is one line of the ledger.
type Entry struct {
	Study        int
	SubmissionID string
	Variants     []Range
	Calls        []Range
	Regions      []Range
}

// Ranges returns ranges of the entry in the given namespace.
func (e Entry) Ranges(n Namespace) []Range {
	switch n {
	case Study:
		return []Range{{Start: e.Study, End: e.Study}}
	case Variant:
		return e.Variants
	case Call:
		return e.Calls
	case Region:
		return e.Regions
	}
	return nil
}

// Kind returns SNP or SV depending on which namespaces the entry uses.
func (e Entry) Kind() Kind {
	switch {
	case len(e.Variants) > 0 && len(e.Calls) == 0 && len(e.Regions) == 0:
		return SNP
	case len(e.Variants) == 0 && len(e.Calls) > 0 && len(e.Regions) > 0:
		return SV
	}
	return UnknownKind
}

// String renders the entry as a ledger line without the trailing newline.
func (e Entry) String() string {
	fields := []string{
		Study.Accession(e.Study),
		e.SubmissionID,
		formatRanges(Variant, e.Variants),
		formatRanges(Call, e.Calls),
		formatRanges(Region, e.Regions),
	}
	return strings.Join(fields, "\t")
}

func formatRanges(n Namespace, rr []Range) string {
	res := make([]string, len(rr))
	for i, r := range rr {
		res[i] = r.Format(n)
	}
	return strings.Join(res, ",")
}

// Ledger is the parsed content of the ledger file.
type Ledger struct {
	Entries []Entry
	subs    map[string]struct{}
	spans   rangeIndex
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{
		subs:  make(map[string]struct{}),
		spans: make(rangeIndex),
	}
}

// CheckSubmissionID verifies the VSUB + 6 digits format.
func CheckSubmissionID(id string) error {
	if !submissionRe.MatchString(id) {
		return SubmissionIDError(id)
	}
	return nil
}

// Parse reads the whole ledger. Any malformed line, duplicate submission or
// overlap between historical ranges is fatal for the run.
func Parse(r io.Reader) (*Ledger, error) {
	res := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lineNum int
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		if lineNum == 1 {
			if line != Header {
				return nil, MalformedLineError(lineNum, line,
					"the first line is not the ledger header")
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, err := parseLine(line, lineNum)
		if err != nil {
			return nil, err
		}
		if err = res.check(e, lineNum); err != nil {
			return nil, err
		}
		res.add(e)
	}
	if err := sc.Err(); err != nil {
		return nil, ReadError(err)
	}
	return res, nil
}

func parseLine(line string, lineNum int) (Entry, error) {
	var res Entry
	fields := strings.Split(line, "\t")
	if len(fields) < 2 || len(fields) > 5 {
		return res, MalformedLineError(lineNum, line,
			fmt.Sprintf("expected 5 tab-separated fields, got %d", len(fields)))
	}
	for len(fields) < 5 {
		fields = append(fields, "")
	}

	m := valueRe[Study].FindStringSubmatch(fields[0])
	if m == nil {
		return res, MalformedLineError(lineNum, line,
			fmt.Sprintf("bad study accession '%s'", fields[0]))
	}
	var err error
	if res.Study, err = strconv.Atoi(m[1]); err != nil {
		return res, MalformedLineError(lineNum, line,
			fmt.Sprintf("study accession '%s' is out of range", fields[0]))
	}

	if !submissionRe.MatchString(fields[1]) {
		return res, MalformedLineError(lineNum, line,
			fmt.Sprintf("bad submission ID '%s'", fields[1]))
	}
	res.SubmissionID = fields[1]

	if res.Variants, err = parseRanges(Variant, fields[2], lineNum, line); err != nil {
		return res, err
	}
	if res.Calls, err = parseRanges(Call, fields[3], lineNum, line); err != nil {
		return res, err
	}
	if res.Regions, err = parseRanges(Region, fields[4], lineNum, line); err != nil {
		return res, err
	}

	if res.Kind() == UnknownKind {
		return res, NamespaceRuleError(lineNum, res.SubmissionID)
	}
	return res, nil
}

func parseRanges(n Namespace, s string, lineNum int, line string) ([]Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var res []Range
	for _, part := range strings.Split(s, ",") {
		m := rangeRe[n].FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return nil, MalformedLineError(lineNum, line,
				fmt.Sprintf("bad %s range '%s'", n, part))
		}
		start, err1 := strconv.Atoi(m[1])
		end, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			return nil, MalformedLineError(lineNum, line,
				fmt.Sprintf("%s range '%s' is out of range", n, part))
		}
		if start > end {
			return nil, RangeOrderError(lineNum, part)
		}
		res = append(res, Range{Start: start, End: end})
	}
	return res, nil
}

// check validates a new entry against the ledger content.
// lineNum is 0 for entries that do not come from a file.
func (l *Ledger) check(e Entry, lineNum int) error {
	if e.Kind() == UnknownKind {
		return NamespaceRuleError(lineNum, e.SubmissionID)
	}
	if _, ok := l.subs[e.SubmissionID]; ok {
		return DuplicateSubmissionError(e.SubmissionID)
	}
	for _, n := range Namespaces {
		for _, r := range e.Ranges(n) {
			if r.Start > r.End {
				return RangeOrderError(lineNum, r.Format(n))
			}
			if owner, ok := l.collision(n, r); ok {
				return CollisionError(n, r, owner.SubmissionID)
			}
		}
	}
	if n, r, ok := selfOverlap(e); ok {
		return CollisionError(n, r, e.SubmissionID)
	}
	return nil
}

// selfOverlap finds ranges overlapping inside one entry.
func selfOverlap(e Entry) (Namespace, Range, bool) {
	for _, n := range Namespaces[1:] {
		rr := slices.Clone(e.Ranges(n))
		slices.SortFunc(rr, func(a, b Range) int { return cmp.Compare(a.Start, b.Start) })
		for i := 1; i < len(rr); i++ {
			if rr[i].Overlaps(rr[i-1]) {
				return n, rr[i], true
			}
		}
	}
	return Study, Range{}, false
}

// collision returns the historical entry owning a value of r, if any.
func (l *Ledger) collision(n Namespace, r Range) (Entry, bool) {
	if i, ok := l.spans.find(n, r); ok {
		return l.Entries[i], true
	}
	return Entry{}, false
}

func (l *Ledger) add(e Entry) {
	if l.subs == nil {
		l.subs = make(map[string]struct{})
	}
	if l.spans == nil {
		l.spans = make(rangeIndex)
	}
	owner := len(l.Entries)
	l.Entries = append(l.Entries, e)
	l.subs[e.SubmissionID] = struct{}{}
	for _, n := range Namespaces {
		for _, r := range e.Ranges(n) {
			l.spans.insert(n, r, owner)
		}
	}
}

// Has reports whether the submission already owns a ledger entry.
func (l *Ledger) Has(submissionID string) bool {
	_, ok := l.subs[submissionID]
	return ok
}

// Next returns the next free value of the namespace: 1 for an empty
// namespace, otherwise the maximum allocated value plus one. The order of
// entries in the file does not matter.
func (l *Ledger) Next(n Namespace) int {
	return l.top(n) + 1
}

// top is the highest value minted in the namespace, 0 for none.
func (l *Ledger) top(n Namespace) int {
	var res int
	for _, e := range l.Entries {
		for _, r := range e.Ranges(n) {
			res = max(res, r.End)
		}
	}
	return res
}

// Commit validates the entry against the ledger and appends it.
func (l *Ledger) Commit(e Entry) error {
	if err := CheckSubmissionID(e.SubmissionID); err != nil {
		return err
	}
	if err := l.check(e, 0); err != nil {
		return err
	}
	l.add(e)
	return nil
}

// WriteTo writes the header and all entries.
func (l *Ledger) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	n, err := fmt.Fprintln(bw, Header)
	total += int64(n)
	if err != nil {
		return total, err
	}
	for _, e := range l.Entries {
		n, err = fmt.Fprintln(bw, e.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

package ledger

import (
	"fmt"
	"regexp"
)

// Namespace is one of the four independent accession identifier spaces.
type Namespace int

const (
	// Study accessions, dstd.
	Study Namespace = iota
	// Variant accessions for short variants (dbSNP), dss.
	Variant
	// Call accessions for structural variant calls, dssv.
	Call
	// Region accessions for structural variant regions, dsv.
	Region
)

// Namespaces lists all namespaces in ledger column order.
var Namespaces = []Namespace{Study, Variant, Call, Region}

var prefixes = map[Namespace]string{
	Study:   "dstd",
	Variant: "dss",
	Call:    "dssv",
	Region:  "dsv",
}

// Prefix returns the textual prefix of accessions in the namespace.
func (n Namespace) Prefix() string {
	return prefixes[n]
}

func (n Namespace) String() string {
	return n.Prefix()
}

// Accession renders the integer as an accession of the namespace.
func (n Namespace) Accession(i int) string {
	return fmt.Sprintf("%s%d", n.Prefix(), i)
}

var (
	valueRe = map[Namespace]*regexp.Regexp{}
	rangeRe = map[Namespace]*regexp.Regexp{}
)

func init() {
	for _, n := range Namespaces {
		p := n.Prefix()
		valueRe[n] = regexp.MustCompile(`^` + p + `([1-9][0-9]*)$`)
		rangeRe[n] = regexp.MustCompile(
			`^` + p + `([1-9][0-9]*)-` + p + `([1-9][0-9]*)$`,
		)
	}
}

// Kind distinguishes short variant submissions from structural variant ones.
// It decides which namespaces a ledger entry uses.
type Kind int

const (
	// UnknownKind is the zero value.
	UnknownKind Kind = iota
	// SNP submissions mint dss accessions.
	SNP
	// SV submissions mint dssv and dsv accessions.
	SV
)

func (k Kind) String() string {
	switch k {
	case SNP:
		return "SNP"
	case SV:
		return "SV"
	default:
		return "unknown"
	}
}

// Package vcf parses Variant Call Format text into records.
//
// Only the columns needed for normalization are interpreted. INFO values
// stay strings; typed accessors convert them on demand.
package vcf

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// fixed columns before FORMAT
const fixedCols = 8

// File is a parsed VCF file.
type File struct {
	Name       string
	FileFormat string
	Meta       []string
	Samples    []string
	Records    []Record
}

// Record is one data line of a VCF file.
type Record struct {
	Line   int
	Chrom  string
	Pos    int
	ID     string
	Ref    string
	Alt    []string
	Qual   string
	Filter string
	Info   map[string]string
	Format []string
	// Genotypes are FORMAT values per sample column, in header order.
	Genotypes []map[string]string
	Raw       string
}

// Parse reads a whole VCF stream. The name is used in errors and kept in
// the result to link records back to the file.
func Parse(name string, r io.Reader) (*File, error) {
	res := &File{Name: name}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var header bool
	var lineNum int
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "##"):
			if header {
				return nil, FormatError(name, lineNum, "meta line after header")
			}
			res.Meta = append(res.Meta, line)
			if v, ok := strings.CutPrefix(line, "##fileformat="); ok {
				res.FileFormat = v
			}
		case strings.HasPrefix(line, "#CHROM"):
			cols := strings.Split(line, "\t")
			if len(cols) < fixedCols {
				return nil, FormatError(name, lineNum, "header has fewer than 8 columns")
			}
			if len(cols) > fixedCols+1 {
				res.Samples = cols[fixedCols+1:]
			}
			header = true
		default:
			if !header {
				return nil, FormatError(name, lineNum, "data line before #CHROM header")
			}
			rec, err := parseRecord(line, len(res.Samples))
			if err != nil {
				return nil, FormatError(name, lineNum, err.Error())
			}
			rec.Line = lineNum
			res.Records = append(res.Records, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, ReadError(name, err)
	}
	if !header {
		return nil, FormatError(name, lineNum, "#CHROM header is missing")
	}
	return res, nil
}

func parseRecord(line string, samples int) (Record, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < fixedCols {
		return Record{}, errColumns(len(cols), fixedCols)
	}
	if samples > 0 && len(cols) != fixedCols+1+samples {
		return Record{}, errColumns(len(cols), fixedCols+1+samples)
	}
	pos, err := strconv.Atoi(cols[1])
	if err != nil {
		return Record{}, errPos(cols[1])
	}
	res := Record{
		Chrom:  cols[0],
		Pos:    pos,
		ID:     dot(cols[2]),
		Ref:    cols[3],
		Alt:    splitList(cols[4]),
		Qual:   dot(cols[5]),
		Filter: dot(cols[6]),
		Info:   parseInfo(cols[7]),
		Raw:    line,
	}
	if len(cols) > fixedCols {
		res.Format = strings.Split(cols[fixedCols], ":")
		for _, v := range cols[fixedCols+1:] {
			res.Genotypes = append(res.Genotypes, parseSample(res.Format, v))
		}
	}
	return res, nil
}

func parseInfo(s string) map[string]string {
	res := make(map[string]string)
	if s == "." || s == "" {
		return res
	}
	for _, v := range strings.Split(s, ";") {
		if v == "" {
			continue
		}
		k, val, _ := strings.Cut(v, "=")
		res[k] = val
	}
	return res
}

func parseSample(format []string, s string) map[string]string {
	res := make(map[string]string, len(format))
	vals := strings.Split(s, ":")
	for i, k := range format {
		if i < len(vals) && vals[i] != "." {
			res[k] = vals[i]
		}
	}
	return res
}

func splitList(s string) []string {
	if s == "." || s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func dot(s string) string {
	if s == "." {
		return ""
	}
	return s
}

// InfoInt returns an integer INFO value. The first element is used for
// list values. A missing key returns nil without error.
func (r Record) InfoInt(key string) (*int, error) {
	s, ok := r.Info[key]
	if !ok || s == "" || s == "." {
		return nil, nil
	}
	s, _, _ = strings.Cut(s, ",")
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// InfoIntPair returns a two-element integer INFO value such as CIPOS.
func (r Record) InfoIntPair(key string) ([2]int, bool, error) {
	var res [2]int
	s, ok := r.Info[key]
	if !ok || s == "" || s == "." {
		return res, false, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return res, false, errPair(key, s)
	}
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return res, false, errPair(key, s)
		}
		res[i] = v
	}
	return res, true, nil
}

// InfoFloat returns a float INFO value, first element of a list.
func (r Record) InfoFloat(key string) (*float64, error) {
	s, ok := r.Info[key]
	if !ok || s == "" || s == "." {
		return nil, nil
	}
	s, _, _ = strings.Cut(s, ",")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// IsSV reports whether the record describes a structural variant: it has
// SVTYPE, a symbolic allele or a breakend allele.
func (r Record) IsSV() bool {
	if _, ok := r.Info["SVTYPE"]; ok {
		return true
	}
	for _, v := range r.Alt {
		if strings.HasPrefix(v, "<") {
			return true
		}
		if _, ok := ParseBreakend(v); ok {
			return true
		}
	}
	return false
}

// Breakend is the mate position described by a BND ALT allele.
type Breakend struct {
	Chr        string
	Pos        int
	FromStrand string
	ToStrand   string
}

var bndRe = regexp.MustCompile(`^([A-Za-z.]*)([\[\]])([^:\[\]]+):([0-9]+)([\[\]])([A-Za-z.]*)$`)

// ParseBreakend decodes bracket notation such as G]17:198982] or
// [13:123456[T. The local side strand is '+' when the allele starts with
// bases, the mate strand is '+' for '[' and '-' for ']'.
func ParseBreakend(alt string) (Breakend, bool) {
	m := bndRe.FindStringSubmatch(alt)
	if m == nil || m[2] != m[5] {
		return Breakend{}, false
	}
	if (m[1] == "") == (m[6] == "") {
		return Breakend{}, false
	}
	pos, err := strconv.Atoi(m[4])
	if err != nil {
		return Breakend{}, false
	}
	res := Breakend{Chr: m[3], Pos: pos, FromStrand: "-", ToStrand: "-"}
	if m[1] != "" {
		res.FromStrand = "+"
	}
	if m[2] == "[" {
		res.ToStrand = "+"
	}
	return res, true
}

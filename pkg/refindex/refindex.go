// Package refindex provides lookups of assemblies and their sequences.
//
// The index answers one question for the placement validator: what does a
// chromosome or contig token of a record point to, and how long is it.
package refindex

import (
	"strings"
)

// AssembledMolecule is the role of chromosome-level sequences.
const AssembledMolecule = "assembled-molecule"

// Sequence is an entry of an assembly sequence directory.
type Sequence struct {
	Name    string `json:"name"`
	RefSeq  string `json:"refseq"`
	GenBank string `json:"genbank"`
	Role    string `json:"role"`
	Length  int    `json:"length"`
}

// Assembly is a reference genome assembly with its sequence directory.
type Assembly struct {
	Name      string     `json:"name"`
	RefSeq    string     `json:"refseq"`
	GenBank   string     `json:"genbank"`
	Directory string     `json:"directory"`
	Sequences []Sequence `json:"-"`
}

// Kind is the outcome of resolving a token.
type Kind int

const (
	Unresolved Kind = iota
	Chromosome
	Contig
	ExternalContig
)

func (k Kind) String() string {
	switch k {
	case Chromosome:
		return "chromosome"
	case Contig:
		return "contig"
	case ExternalContig:
		return "external contig"
	default:
		return "unresolved"
	}
}

// Resolution is the sequence a token resolved to.
type Resolution struct {
	Kind     Kind
	Token    string
	Sequence Sequence
	Length   int
}

// Resolved reports whether the token points to a known sequence.
func (r Resolution) Resolved() bool {
	return r.Kind != Unresolved
}

type assembly struct {
	Assembly
	byAcc  map[string]int
	byName map[string]int
}

// Index holds all assemblies and external contigs loaded for a run.
// It is read-only after construction.
type Index struct {
	assemblies map[string]*assembly
	external   map[string]int
}

// New builds an index. External maps accessions of previously downloaded
// contigs that are not part of any assembly to their lengths.
func New(asms []Assembly, external map[string]int) *Index {
	res := &Index{
		assemblies: make(map[string]*assembly),
		external:   make(map[string]int),
	}
	for k, v := range external {
		res.external[k] = v
	}
	for _, a := range asms {
		idx := &assembly{
			Assembly: a,
			byAcc:    make(map[string]int),
			byName:   make(map[string]int),
		}
		for i, s := range a.Sequences {
			if s.RefSeq != "" {
				idx.byAcc[s.RefSeq] = i
			}
			if s.GenBank != "" {
				idx.byAcc[s.GenBank] = i
			}
			if s.Role == AssembledMolecule && s.Name != "" {
				idx.byName[NormalizeChr(s.Name)] = i
			}
		}
		for _, k := range []string{a.Name, a.RefSeq, a.GenBank} {
			if k != "" {
				res.assemblies[strings.ToLower(k)] = idx
			}
		}
	}
	return res
}

// HasAssembly reports whether the assembly is known by name or accession.
func (i *Index) HasAssembly(name string) bool {
	_, ok := i.assemblies[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Assembly returns the assembly by name or accession.
func (i *Index) Assembly(name string) (Assembly, bool) {
	a, ok := i.assemblies[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Assembly{}, false
	}
	return a.Assembly, true
}

// Resolve finds the sequence a chromosome or contig token refers to.
// The order is fixed: external contigs, then RefSeq/GenBank accessions of
// the assembly directory, then bare chromosome names of assembled molecules.
func (i *Index) Resolve(assemblyName, token string) Resolution {
	token = strings.TrimSpace(token)
	res := Resolution{Token: token}
	if token == "" {
		return res
	}

	if l, ok := i.external[token]; ok {
		res.Kind = ExternalContig
		res.Sequence = Sequence{Name: token, GenBank: token, Length: l}
		res.Length = l
		return res
	}

	a, ok := i.assemblies[strings.ToLower(strings.TrimSpace(assemblyName))]
	if !ok {
		return res
	}

	if idx, ok := a.byAcc[token]; ok {
		res.Kind = Contig
		res.Sequence = a.Sequences[idx]
		res.Length = res.Sequence.Length
		return res
	}

	if idx, ok := a.byName[NormalizeChr(token)]; ok {
		res.Kind = Chromosome
		res.Sequence = a.Sequences[idx]
		res.Length = res.Sequence.Length
		return res
	}
	return res
}

// NormalizeChr strips a case-insensitive "chr" prefix and upper-cases the
// name, so "chrX", "CHRx" and "X" compare equal. "M" becomes "MT".
func NormalizeChr(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 3 && strings.EqualFold(s[:3], "chr") {
		s = s[3:]
	}
	s = strings.ToUpper(s)
	if s == "M" {
		s = "MT"
	}
	return s
}

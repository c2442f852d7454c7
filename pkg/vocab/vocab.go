// Package vocab holds controlled vocabularies and rule tables used by the
// normalizer and validators.
//
// Both are data, not code: defaults are embedded in pkg/templates and a
// reference directory can replace them with its own vocabularies.json and
// rules.yaml.
package vocab

import (
	"slices"
	"strings"

	"github.com/ddbj/jvar/pkg/templates"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Field names a vocabulary-controlled column.
type Field string

const (
	Zygosity        Field = "Zygosity"
	AssertionMethod Field = "Assertion Method"
	ExperimentType  Field = "Experiment Type"
	MethodType      Field = "Method Type"
	AnalysisType    Field = "Analysis Type"
	Sex             Field = "Sex"
	CallType        Field = "Variant Call Type"
	RegionType      Field = "Variant Region Type"
)

// Vocabulary contains controlled terms. Term matching is case-insensitive,
// canonical spelling is returned.
type Vocabulary struct {
	CallTypes        map[string]string `json:"variant_call_type"`
	RegionTypes      map[string]string `json:"variant_region_type"`
	SVTypes          map[string]string `json:"svtype"`
	Zygosity         []string          `json:"zygosity"`
	AssertionMethods []string          `json:"assertion_method"`
	ExperimentTypes  []string          `json:"experiment_type"`
	MethodTypes      []string          `json:"method_type"`
	AnalysisTypes    []string          `json:"analysis_type"`
	Sex              []string          `json:"sex"`
}

// ParseVocabulary decodes vocabularies.json content.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	var res Vocabulary
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DefaultVocabulary returns the embedded vocabulary.
func DefaultVocabulary() *Vocabulary {
	res, err := ParseVocabulary(templates.VocabulariesJSON)
	if err != nil {
		panic(err)
	}
	return res
}

// Canonical returns the canonical spelling of a term of the field.
func (v *Vocabulary) Canonical(f Field, term string) (string, bool) {
	term = strings.TrimSpace(term)
	switch f {
	case CallType:
		res, _, ok := lookup(v.CallTypes, term)
		return res, ok
	case RegionType:
		res, _, ok := lookup(v.RegionTypes, term)
		return res, ok
	}
	for _, t := range v.terms(f) {
		if strings.EqualFold(t, term) {
			return t, true
		}
	}
	return "", false
}

// CallSO returns the canonical call type and its Sequence Ontology ID.
func (v *Vocabulary) CallSO(term string) (string, string, bool) {
	return lookup(v.CallTypes, strings.TrimSpace(term))
}

// RegionSO returns the canonical region type and its Sequence Ontology ID.
func (v *Vocabulary) RegionSO(term string) (string, string, bool) {
	return lookup(v.RegionTypes, strings.TrimSpace(term))
}

// SVType maps a VCF SVTYPE value to a call type. Subtypes such as
// DUP:TANDEM fall back to their parent type when not listed.
func (v *Vocabulary) SVType(svtype string) (string, bool) {
	svtype = strings.ToUpper(strings.TrimSpace(svtype))
	for svtype != "" {
		if res, ok := v.SVTypes[svtype]; ok {
			return res, true
		}
		i := strings.LastIndex(svtype, ":")
		if i < 0 {
			break
		}
		svtype = svtype[:i]
	}
	return "", false
}

func (v *Vocabulary) terms(f Field) []string {
	switch f {
	case Zygosity:
		return v.Zygosity
	case AssertionMethod:
		return v.AssertionMethods
	case ExperimentType:
		return v.ExperimentTypes
	case MethodType:
		return v.MethodTypes
	case AnalysisType:
		return v.AnalysisTypes
	case Sex:
		return v.Sex
	}
	return nil
}

func lookup(m map[string]string, term string) (string, string, bool) {
	if so, ok := m[term]; ok {
		return term, so, true
	}
	for k, so := range m {
		if strings.EqualFold(k, term) {
			return k, so, true
		}
	}
	return "", "", false
}

// ResolutionRule is the largest expected resolution of an experiment with
// the given method and analysis types.
type ResolutionRule struct {
	MethodType   string `yaml:"method_type"`
	AnalysisType string `yaml:"analysis_type"`
	Max          int    `yaml:"max"`
}

// CopyNumberRule describes call types that imply a copy number change.
type CopyNumberRule struct {
	Ploidy int      `yaml:"ploidy"`
	Gain   []string `yaml:"gain"`
	Loss   []string `yaml:"loss"`
}

// Rules are configurable tables of the placement and linkage checks.
type Rules struct {
	ChainRegionTypes       []string            `yaml:"chain_region_types"`
	BreakpointCallTypes    []string            `yaml:"breakpoint_call_types"`
	Compatibility          map[string][]string `yaml:"compatibility"`
	CopyNumber             CopyNumberRule      `yaml:"copy_number"`
	Resolution             []ResolutionRule    `yaml:"resolution"`
	DefaultAssertionMethod string              `yaml:"default_assertion_method"`
}

// ParseRules decodes rules.yaml content.
func ParseRules(data []byte) (*Rules, error) {
	var res Rules
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	if res.CopyNumber.Ploidy == 0 {
		res.CopyNumber.Ploidy = 2
	}
	return &res, nil
}

// DefaultRules returns the embedded rule tables.
func DefaultRules() *Rules {
	res, err := ParseRules(templates.RulesYAML)
	if err != nil {
		panic(err)
	}
	return res
}

// IsChainRegion reports whether supporting calls of a region of this type
// form an ordered breakpoint chain.
func (r *Rules) IsChainRegion(regionType string) bool {
	return containsFold(r.ChainRegionTypes, regionType)
}

// IsBreakpointCall reports whether a call of this type is described by
// From/To breakpoints.
func (r *Rules) IsBreakpointCall(callType string) bool {
	return containsFold(r.BreakpointCallTypes, callType)
}

// Compatible reports whether a call type is expected in a region type.
// Region types missing from the table accept every call type.
func (r *Rules) Compatible(regionType, callType string) bool {
	for k, v := range r.Compatibility {
		if strings.EqualFold(k, regionType) {
			return containsFold(v, callType)
		}
	}
	return true
}

// MaxResolution returns the resolution threshold for the method and
// analysis types.
func (r *Rules) MaxResolution(methodType, analysisType string) (int, bool) {
	for _, v := range r.Resolution {
		if strings.EqualFold(v.MethodType, methodType) &&
			strings.EqualFold(v.AnalysisType, analysisType) {
			return v.Max, true
		}
	}
	return 0, false
}

// IsGain reports whether the call type implies a copy number gain.
func (r *Rules) IsGain(callType string) bool {
	return containsFold(r.CopyNumber.Gain, callType)
}

// IsLoss reports whether the call type implies a copy number loss.
func (r *Rules) IsLoss(callType string) bool {
	return containsFold(r.CopyNumber.Loss, callType)
}

func containsFold(ss []string, s string) bool {
	return slices.ContainsFunc(ss, func(v string) bool {
		return strings.EqualFold(v, s)
	})
}

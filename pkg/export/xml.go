package export

import (
	"encoding/xml"
	"io"
	"slices"

	"github.com/ddbj/jvar/pkg/model"
)

// Submission is the dbVar XML document of one study.
type Submission struct {
	XMLName      xml.Name     `xml:"SUBMISSION"`
	SubmissionID string       `xml:"submission_id,attr"`
	Study        Study        `xml:"STUDY"`
	Experiments  []Experiment `xml:"EXPERIMENT"`
	SampleSets   []SampleSet  `xml:"SAMPLESET"`
	Regions      []Region     `xml:"VARIANT_REGION"`
	Calls        []Call       `xml:"VARIANT_CALL"`
}

type Study struct {
	Accession   string `xml:"study_accession,attr"`
	Title       string `xml:"title,attr"`
	Assembly    string `xml:"assembly,attr,omitempty"`
	Description string `xml:"DESCRIPTION,omitempty"`
}

type Experiment struct {
	ID           string `xml:"experiment_id,attr"`
	Type         string `xml:"experiment_type,attr,omitempty"`
	MethodType   string `xml:"method_type,attr,omitempty"`
	AnalysisType string `xml:"analysis_type,attr,omitempty"`
	Resolution   string `xml:"resolution,attr,omitempty"`
	Method       string `xml:"METHOD,omitempty"`
}

type SampleSet struct {
	ID      string   `xml:"sampleset_id,attr"`
	Name    string   `xml:"name,attr,omitempty"`
	Size    string   `xml:"size,attr,omitempty"`
	Samples []Sample `xml:"SAMPLE"`
}

type Sample struct {
	ID         string `xml:"sample_id,attr"`
	Name       string `xml:"name,attr,omitempty"`
	BioSample  string `xml:"biosample_accession,attr,omitempty"`
	Sex        string `xml:"sex,attr,omitempty"`
	MaternalID string `xml:"maternal_id,attr,omitempty"`
	PaternalID string `xml:"paternal_id,attr,omitempty"`
}

type Placement struct {
	Assembly        string `xml:"assembly,attr,omitempty"`
	ChrName         string `xml:"chr_name,attr,omitempty"`
	ChrAccession    string `xml:"chr_accession,attr,omitempty"`
	ContigAccession string `xml:"contig_accession,attr,omitempty"`
	OuterStart      string `xml:"outer_start,attr,omitempty"`
	Start           string `xml:"start,attr,omitempty"`
	InnerStart      string `xml:"inner_start,attr,omitempty"`
	InnerStop       string `xml:"inner_stop,attr,omitempty"`
	Stop            string `xml:"stop,attr,omitempty"`
	OuterStop       string `xml:"outer_stop,attr,omitempty"`
}

type Breakpoint struct {
	Chr    string `xml:"chr,attr,omitempty"`
	Coord  string `xml:"coord,attr,omitempty"`
	Strand string `xml:"strand,attr,omitempty"`
}

type SupportingCall struct {
	Accession string `xml:"variant_call_accession,attr"`
	ID        string `xml:"variant_call_id,attr"`
}

type Region struct {
	Accession       string           `xml:"variant_region_accession,attr"`
	ID              string           `xml:"variant_region_id,attr"`
	Type            string           `xml:"variant_region_type,attr"`
	SOTerm          string           `xml:"so_term,attr,omitempty"`
	AssertionMethod string           `xml:"assertion_method,attr,omitempty"`
	Placement       *Placement       `xml:"PLACEMENT,omitempty"`
	Calls           []SupportingCall `xml:"SUPPORTING_CALL"`
}

type Call struct {
	Accession       string      `xml:"variant_call_accession,attr"`
	ID              string      `xml:"variant_call_id,attr"`
	Type            string      `xml:"variant_call_type,attr"`
	SOTerm          string      `xml:"so_term,attr,omitempty"`
	ExperimentID    string      `xml:"experiment_id,attr,omitempty"`
	SampleSetID     string      `xml:"sampleset_id,attr,omitempty"`
	SampleID        string      `xml:"sample_id,attr,omitempty"`
	Zygosity        string      `xml:"zygosity,attr,omitempty"`
	CopyNumber      string      `xml:"copy_number,attr,omitempty"`
	AlleleCount     string      `xml:"allele_count,attr,omitempty"`
	AlleleNumber    string      `xml:"allele_number,attr,omitempty"`
	AlleleFrequency string      `xml:"allele_frequency,attr,omitempty"`
	MutationID      string      `xml:"mutation_id,attr,omitempty"`
	MutationOrder   string      `xml:"mutation_order,attr,omitempty"`
	Placement       *Placement  `xml:"PLACEMENT,omitempty"`
	From            *Breakpoint `xml:"FROM,omitempty"`
	To              *Breakpoint `xml:"TO,omitempty"`
}

// DbVar converts an accessioned submission into its XML document.
func DbVar(sub *model.Submission) Submission {
	res := Submission{
		SubmissionID: sub.ID,
		Study: Study{
			Accession:   sub.Study.Accession,
			Title:       sub.Study.Title,
			Assembly:    sub.Study.Assembly,
			Description: sub.Study.Description,
		},
	}

	for _, id := range sortedKeys(sub.Experiments) {
		e := sub.Experiments[id]
		res.Experiments = append(res.Experiments, Experiment{
			ID:           e.ID,
			Type:         e.Type,
			MethodType:   e.MethodType,
			AnalysisType: e.AnalysisType,
			Resolution:   intStr(e.Resolution),
			Method:       e.Method,
		})
	}

	for _, id := range sortedKeys(sub.SampleSets) {
		ss := sub.SampleSets[id]
		set := SampleSet{ID: ss.ID, Name: ss.Name, Size: intStr(ss.Size)}
		for _, sid := range ss.Samples {
			s, ok := sub.Samples[sid]
			if !ok {
				continue
			}
			set.Samples = append(set.Samples, Sample{
				ID:         s.ID,
				Name:       s.Name,
				BioSample:  s.BioSample,
				Sex:        s.Sex,
				MaternalID: s.MaternalID,
				PaternalID: s.PaternalID,
			})
		}
		res.SampleSets = append(res.SampleSets, set)
	}

	calls := callAccessions(sub)
	for _, r := range sub.Regions {
		reg := Region{
			Accession:       r.Accession,
			ID:              r.ID,
			Type:            r.Type,
			SOTerm:          r.SOTerm,
			AssertionMethod: r.AssertionMethod,
			Placement:       xmlPlacement(r.Placement),
		}
		for _, id := range r.CallIDs {
			reg.Calls = append(reg.Calls, SupportingCall{Accession: calls[id], ID: id})
		}
		res.Regions = append(res.Regions, reg)
	}

	for _, c := range sub.Calls {
		res.Calls = append(res.Calls, Call{
			Accession:       c.Accession,
			ID:              c.ID,
			Type:            c.Type,
			SOTerm:          c.SOTerm,
			ExperimentID:    c.ExperimentID,
			SampleSetID:     c.SampleSetID,
			SampleID:        c.SampleID,
			Zygosity:        c.Zygosity,
			CopyNumber:      intStr(c.CopyNumber),
			AlleleCount:     intStr(c.AlleleCount),
			AlleleNumber:    intStr(c.AlleleNumber),
			AlleleFrequency: floatStr(c.AlleleFrequency),
			MutationID:      c.MutationID,
			MutationOrder:   intStr(c.MutationOrder),
			Placement:       xmlPlacement(c.Placement),
			From:            xmlBreakpoint(c.From),
			To:              xmlBreakpoint(c.To),
		})
	}
	return res
}

// WriteDbVarXML writes the dbVar XML document of the submission.
func WriteDbVarXML(w io.Writer, sub *model.Submission) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(DbVar(sub)); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func xmlPlacement(p model.Placement) *Placement {
	if p.ChrToken() == "" && p.ContigAccession == "" && !p.HasCoordinates() {
		return nil
	}
	return &Placement{
		Assembly:        p.Assembly,
		ChrName:         p.ChrName,
		ChrAccession:    p.ChrAccession,
		ContigAccession: p.ContigAccession,
		OuterStart:      intStr(p.OuterStart),
		Start:           intStr(p.Start),
		InnerStart:      intStr(p.InnerStart),
		InnerStop:       intStr(p.InnerStop),
		Stop:            intStr(p.Stop),
		OuterStop:       intStr(p.OuterStop),
	}
}

func xmlBreakpoint(b model.Breakpoint) *Breakpoint {
	if b.IsEmpty() {
		return nil
	}
	return &Breakpoint{Chr: b.Chr, Coord: intStr(b.Coord), Strand: b.Strand}
}

func sortedKeys[V any](m map[string]V) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

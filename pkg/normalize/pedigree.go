package normalize

import (
	"github.com/ddbj/jvar/pkg/finding"
	"github.com/ddbj/jvar/pkg/model"
)

// pedigree checks SampleSet membership against the declared size and sex,
// and parent links of Samples.
func (n *normalizer) pedigree() {
	for _, id := range sortedKeys(n.sub.SampleSets) {
		ss := n.sub.SampleSets[id]
		if len(ss.Samples) == 0 {
			n.add(finding.New(finding.EmptySampleSet, finding.SampleSet, ss.ID))
		}
		if ss.Size != nil && *ss.Size != len(ss.Samples) {
			n.add(finding.New(finding.SampleSetSizeMismatch, finding.SampleSet, ss.ID))
		}

		subjects := make(map[string]*model.Sample, len(ss.Samples))
		for _, sid := range ss.Samples {
			smp := n.sub.Samples[sid]
			subjects[smp.ID] = smp
			if smp.SubjectID != "" {
				subjects[smp.SubjectID] = smp
			}
		}

		for _, sid := range ss.Samples {
			smp := n.sub.Samples[sid]
			if constrainsSex(ss.Sex) && smp.Sex != "" && smp.Sex != ss.Sex {
				n.add(finding.New(finding.SampleSexMismatch, finding.Sample, smp.ID))
			}
			n.parent(smp, "Maternal", "Mother", smp.MaternalID, "male", subjects)
			n.parent(smp, "Paternal", "Father", smp.PaternalID, "female", subjects)
		}
	}
}

func (n *normalizer) parent(
	smp *model.Sample,
	link, role, id, wrongSex string,
	subjects map[string]*model.Sample,
) {
	if id == "" {
		return
	}
	p, ok := subjects[id]
	if !ok {
		n.add(finding.New(finding.UnknownParent, finding.Sample, smp.ID, link))
		return
	}
	if p.Sex == wrongSex {
		n.add(finding.New(finding.ParentSexMismatch, finding.Sample, smp.ID, role, p.Sex))
	}
}

func constrainsSex(sex string) bool {
	return sex == "male" || sex == "female"
}

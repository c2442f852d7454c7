package iosubmit

import (
	"maps"
	"slices"

	"github.com/ddbj/jvar/pkg/finding"
	"github.com/ddbj/jvar/pkg/ledger"
	"github.com/ddbj/jvar/pkg/linkage"
	"github.com/ddbj/jvar/pkg/model"
	"github.com/ddbj/jvar/pkg/placement"
	"github.com/ddbj/jvar/pkg/vocab"
)

// validatePlacements runs experiment checks, then placement checks of
// every call and region. It returns the resolved sequences for the
// linkage checks.
func validatePlacements(
	sub *model.Submission,
	res placement.Resolver,
	rules *vocab.Rules,
) ([]finding.Finding, linkage.Sequences) {
	var ff []finding.Finding
	seqs := linkage.Sequences{
		Calls:   make(map[string]linkage.Placed, len(sub.Calls)),
		Regions: make(map[string]linkage.Placed, len(sub.Regions)),
	}
	for _, id := range slices.Sorted(maps.Keys(sub.Experiments)) {
		ff = append(ff, placement.ValidateExperiment(sub.Experiments[id], rules)...)
	}
	for _, c := range sub.Calls {
		exp := sub.Experiments[c.ExperimentID]
		r := placement.Validate(placement.CallRecord(c, exp, rules), res, rules)
		ff = append(ff, r.Findings...)
		if _, ok := seqs.Calls[c.ID]; !ok {
			seqs.Calls[c.ID] = placed(r)
		}
	}
	for _, reg := range sub.Regions {
		r := placement.Validate(placement.RegionRecord(reg), res, rules)
		ff = append(ff, r.Findings...)
		if _, ok := seqs.Regions[reg.ID]; !ok {
			seqs.Regions[reg.ID] = placed(r)
		}
	}
	return ff, seqs
}

func placed(r placement.Result) linkage.Placed {
	seq, _ := r.Sequence()
	return linkage.Placed{Sequence: seq, From: r.From, To: r.To}
}

// gapFindings turns ledger gaps into advisory findings.
func gapFindings(gaps []ledger.Gap) []finding.Finding {
	var res []finding.Finding
	for _, g := range gaps {
		missing := g.Namespace.Accession(g.From)
		if g.To > g.From {
			missing += "-" + g.Namespace.Accession(g.To)
		}
		res = append(res, finding.New(
			finding.NonSerialAccession, finding.Ledger, missing,
			g.Namespace.Prefix(),
		))
	}
	return res
}

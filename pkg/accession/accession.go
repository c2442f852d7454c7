// Package accession embeds allocated identifiers into submission records.
package accession

import (
	"fmt"

	"github.com/ddbj/jvar/pkg/ledger"
	"github.com/ddbj/jvar/pkg/model"
)

// Counts returns the number of identifiers the submission needs per
// namespace.
func Counts(sub *model.Submission) ledger.Counts {
	if sub.Kind == ledger.SNP {
		return ledger.Counts{Variants: len(sub.Variants)}
	}
	return ledger.Counts{Calls: len(sub.Calls), Regions: len(sub.Regions)}
}

// Assign writes accessions into the records in row iteration order: the
// study gets dstd, calls get dssv, regions get dsv and short variants get
// dss.
func Assign(sub *model.Submission, a ledger.Allocation) error {
	counts := Counts(sub)
	for _, v := range []struct {
		ns   ledger.Namespace
		need int
	}{
		{ledger.Variant, counts.Variants},
		{ledger.Call, counts.Calls},
		{ledger.Region, counts.Regions},
	} {
		if got := a.Range(v.ns).Len(); got != v.need {
			return fmt.Errorf("allocation of %d %s accessions for %d records",
				got, v.ns, v.need)
		}
	}

	sub.Study.Accession = ledger.Study.Accession(a.Study)
	for i, c := range sub.Calls {
		c.Accession = ledger.Call.Accession(a.Calls.Start + i)
	}
	for i, r := range sub.Regions {
		r.Accession = ledger.Region.Accession(a.Regions.Start + i)
	}
	for i, v := range sub.Variants {
		v.Accession = ledger.Variant.Accession(a.Variants.Start + i)
	}
	return nil
}

// Mapping lists every accession of the submission with its namespace and
// local ID.
type Mapping struct {
	Accession string
	Namespace ledger.Namespace
	LocalID   string
}

// Mappings returns accession to local ID pairs of all accessioned records.
func Mappings(sub *model.Submission) []Mapping {
	var res []Mapping
	if sub.Study.Accession != "" {
		res = append(res, Mapping{sub.Study.Accession, ledger.Study, sub.ID})
	}
	for _, c := range sub.Calls {
		res = append(res, Mapping{c.Accession, ledger.Call, c.ID})
	}
	for _, r := range sub.Regions {
		res = append(res, Mapping{r.Accession, ledger.Region, r.ID})
	}
	for _, v := range sub.Variants {
		res = append(res, Mapping{v.Accession, ledger.Variant, v.ID})
	}
	return res
}

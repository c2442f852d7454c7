package export

import (
	"io"
	"text/template"

	"github.com/ddbj/jvar/pkg/model"
	"github.com/ddbj/jvar/pkg/templates"
)

// Handle identifies the submitting archive in dbSNP stanzas.
const Handle = "JVAR"

var dbsnpTmpl = template.Must(template.New("dbsnp").Parse(templates.DbSNPTmpl))

type dbsnpAssay struct {
	Handle     string
	Assay      *model.Assay
	Method     string
	SampleSize int
}

type dbsnpVariant struct {
	Handle  string
	Variant *model.Variant
}

type dbsnpDoc struct {
	Handle   string
	Study    model.Study
	Assays   []dbsnpAssay
	Variants []dbsnpVariant
}

// WriteDbSNP writes flat dbSNP records: a contact and publication stanza,
// one SNPASSAY stanza per Assay with variants and one SNP stanza per
// variant. Every stanza begins with TYPE: and ends with ||.
func WriteDbSNP(w io.Writer, sub *model.Submission) error {
	doc := dbsnpDoc{Handle: Handle, Study: sub.Study}

	used := make(map[string]struct{})
	for _, v := range sub.Variants {
		used[v.AssayID] = struct{}{}
		doc.Variants = append(doc.Variants, dbsnpVariant{Handle: Handle, Variant: v})
	}
	for _, id := range sortedKeys(sub.Assays) {
		if _, ok := used[id]; !ok {
			continue
		}
		a := sub.Assays[id]
		da := dbsnpAssay{Handle: Handle, Assay: a}
		if e, ok := sub.Experiments[a.ExperimentID]; ok {
			da.Method = e.Method
		}
		if ss, ok := sub.SampleSets[a.SampleSetID]; ok {
			da.SampleSize = len(ss.Samples)
			if ss.Size != nil {
				da.SampleSize = *ss.Size
			}
		}
		doc.Assays = append(doc.Assays, da)
	}
	return dbsnpTmpl.Execute(w, doc)
}

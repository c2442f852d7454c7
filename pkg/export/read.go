package export

import (
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
)

// ReadAccessions parses a TSV export and returns its accession to local
// ID mapping, taken from the first two columns.
func ReadAccessions(r io.Reader) (map[string]string, error) {
	tr := csv.NewReader(r)
	tr.Comma = '\t'
	tr.FieldsPerRecord = -1

	header, err := tr.Read()
	if err != nil {
		return nil, err
	}
	if len(header) < 2 || header[0] != AccessionColumn {
		return nil, fmt.Errorf("first column is not %s", AccessionColumn)
	}

	res := make(map[string]string)
	for {
		row, err := tr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) < 2 {
			continue
		}
		res[row[0]] = row[1]
	}
	return res, nil
}

// ReadDbVarAccessions parses a dbVar XML export and returns accession to
// local ID mapping of its study, regions and calls.
func ReadDbVarAccessions(r io.Reader) (map[string]string, error) {
	var doc Submission
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	res := make(map[string]string, len(doc.Calls)+len(doc.Regions)+1)
	if doc.Study.Accession != "" {
		res[doc.Study.Accession] = doc.SubmissionID
	}
	for _, v := range doc.Regions {
		res[v.Accession] = v.ID
	}
	for _, v := range doc.Calls {
		res[v.Accession] = v.ID
	}
	return res, nil
}

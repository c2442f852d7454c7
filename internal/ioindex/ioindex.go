// Package ioindex keeps a SQLite lookup table of issued accessions.
//
// The ledger only stores ranges. The index maps every single accession to
// the local ID the submitter used, so curators can answer "which record is
// dssv1234" without the original workbook.
package ioindex

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/ddbj/jvar/pkg/accession"
	"github.com/gnames/gnuuid"
	_ "modernc.org/sqlite"
)

// FileName is the name of the index inside the output directory.
const FileName = "accessions.sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS accessions (
	accession     TEXT PRIMARY KEY,
	namespace     TEXT NOT NULL,
	local_id      TEXT NOT NULL,
	submission_id TEXT NOT NULL,
	record_id     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS accessions_local_id ON accessions (local_id);
CREATE INDEX IF NOT EXISTS accessions_submission_id ON accessions (submission_id);
CREATE INDEX IF NOT EXISTS accessions_record_id ON accessions (record_id);
`

// Row is one indexed accession.
type Row struct {
	Accession    string
	Namespace    string
	LocalID      string
	SubmissionID string
	// RecordID is a UUID v5 of submission and local ID. It stays the same
	// when a submission is accessioned again into another index.
	RecordID string
}

// Index is an open accession index.
type Index struct {
	db   *sql.DB
	path string
}

// Open opens or creates the index file.
func Open(ctx context.Context, path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, IndexError(path, err)
	}
	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, IndexError(path, err)
	}
	return &Index{db: db, path: path}, nil
}

// Close releases the database.
func (i *Index) Close() error {
	return i.db.Close()
}

// RecordID returns the stable identifier of a submitted record.
func RecordID(submissionID, localID string) string {
	return gnuuid.New(submissionID + "|" + localID).String()
}

// Write replaces all rows of the submission with its mappings.
func (i *Index) Write(
	ctx context.Context,
	submissionID string,
	mm []accession.Mapping,
) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return IndexError(i.path, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM accessions WHERE submission_id = ?", submissionID)
	if err != nil {
		return IndexError(i.path, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO accessions
	(accession, namespace, local_id, submission_id, record_id)
	VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return IndexError(i.path, err)
	}
	defer stmt.Close()

	for _, m := range mm {
		_, err = stmt.ExecContext(ctx,
			m.Accession,
			m.Namespace.String(),
			m.LocalID,
			submissionID,
			RecordID(submissionID, m.LocalID),
		)
		if err != nil {
			return IndexError(i.path, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return IndexError(i.path, err)
	}
	slog.Info("Accession index updated",
		"path", i.path, "submission", submissionID, "rows", len(mm))
	return nil
}

// Lookup finds rows by accession, local ID, submission ID or record ID.
func (i *Index) Lookup(ctx context.Context, key string) ([]Row, error) {
	key = strings.TrimSpace(key)
	q := `
SELECT accession, namespace, local_id, submission_id, record_id
	FROM accessions
	WHERE accession = ? OR local_id = ? OR submission_id = ? OR record_id = ?
	ORDER BY submission_id, namespace, accession
`
	rows, err := i.db.QueryContext(ctx, q, key, key, key, key)
	if err != nil {
		return nil, IndexError(i.path, err)
	}
	defer rows.Close()

	var res []Row
	for rows.Next() {
		var r Row
		err = rows.Scan(&r.Accession, &r.Namespace, &r.LocalID,
			&r.SubmissionID, &r.RecordID)
		if err != nil {
			return nil, IndexError(i.path, err)
		}
		res = append(res, r)
	}
	if err = rows.Err(); err != nil {
		return nil, IndexError(i.path, err)
	}
	return res, nil
}

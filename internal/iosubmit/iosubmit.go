// Package iosubmit runs the validation and accessioning pipeline.
package iosubmit

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ddbj/jvar/internal/ioexport"
	"github.com/ddbj/jvar/internal/ioindex"
	"github.com/ddbj/jvar/internal/ioledger"
	"github.com/ddbj/jvar/internal/ioref"
	"github.com/ddbj/jvar/internal/iosheet"
	"github.com/ddbj/jvar/internal/iovcf"
	"github.com/ddbj/jvar/pkg/accession"
	"github.com/ddbj/jvar/pkg/config"
	"github.com/ddbj/jvar/pkg/finding"
	"github.com/ddbj/jvar/pkg/jvar"
	"github.com/ddbj/jvar/pkg/ledger"
	"github.com/ddbj/jvar/pkg/linkage"
	"github.com/ddbj/jvar/pkg/model"
	"github.com/ddbj/jvar/pkg/normalize"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
)

type submitter struct {
	cfg      *config.Config
	progress bool
	runID    string
	log      *slog.Logger
}

// New creates the pipeline for the submission described by cfg. With
// progress on, VCF reading shows a progress bar on STDERR.
func New(cfg *config.Config, progress bool) jvar.Submitter {
	runID := uuid.NewString()
	return &submitter{
		cfg:      cfg,
		progress: progress,
		runID:    runID,
		log: slog.Default().With(
			"run", runID,
			"submission", cfg.Submission.ID,
		),
	}
}

// state is the validated submission of one run.
type state struct {
	sub *model.Submission
	set *finding.Set
}

func (s *submitter) Validate(ctx context.Context) (*jvar.Result, error) {
	timeStart := time.Now()
	st, err := s.check(ctx)
	if err != nil {
		return nil, err
	}

	res := s.result(st)
	res.Files, err = s.report(st)
	if err != nil {
		return res, err
	}
	res.Duration = time.Since(timeStart)
	s.finished("Validation finished", res)
	return res, nil
}

func (s *submitter) Submit(ctx context.Context) (*jvar.Result, error) {
	timeStart := time.Now()
	st, err := s.check(ctx)
	if err != nil {
		return nil, err
	}

	store := ioledger.New(s.cfg.LedgerPath(), s.cfg.Ledger.BackupDir)
	l, err := store.Load()
	if err != nil {
		return nil, err
	}
	st.set.Add(gapFindings(l.Gaps())...)

	res := s.result(st)
	res.Files, err = s.report(st)
	if err != nil {
		return res, err
	}
	if st.set.HasBlocking() {
		res.Duration = time.Since(timeStart)
		s.finished("Submission rejected", res)
		return res, BlockingFindingsError(
			st.sub.ID, st.set.Count(finding.Blocking), res.Files[0],
		)
	}

	alloc, err := l.Allocate(st.sub.ID, st.sub.Kind, accession.Counts(st.sub))
	if err != nil {
		return res, err
	}
	if err = accession.Assign(st.sub, alloc); err != nil {
		return res, err
	}

	// Exports go first: if the ledger cannot be saved, they are removed
	// and no accession leaves the run.
	exports, err := ioexport.New(s.cfg.Output.Dir).Submission(st.sub)
	if err != nil {
		removeFiles(exports)
		return res, err
	}
	if err = l.Commit(alloc.Entry()); err != nil {
		removeFiles(exports)
		return res, err
	}
	backup, err := store.Save(l)
	if err != nil {
		removeFiles(exports)
		return res, err
	}
	res.Allocation = &alloc
	res.Files = append(res.Files, exports...)
	s.log.Info("Accessions issued",
		"ledger", store.Path,
		"backup", backup,
		"entry", alloc.Entry().String(),
	)

	if s.cfg.Output.AccessionIndex {
		path, err := s.index(ctx, st.sub)
		if err != nil {
			// The ledger is already saved, the index is a convenience copy.
			s.log.Error("Cannot update accession index", "error", err)
			gn.Warn("Accession index was not updated: %s", err)
		} else {
			res.Files = append(res.Files, path)
		}
	}

	res.Duration = time.Since(timeStart)
	s.finished("Submission accessioned", res)
	return res, nil
}

// check reads all inputs and collects findings of every validation stage.
func (s *submitter) check(ctx context.Context) (*state, error) {
	id := s.cfg.Submission.ID
	if err := ledger.CheckSubmissionID(id); err != nil {
		return nil, err
	}

	ref, err := ioref.Load(ctx, s.cfg.ReferencePath())
	if err != nil {
		return nil, err
	}

	wb, err := iosheet.Read(s.cfg.Submission.Workbook)
	if err != nil {
		return nil, err
	}

	vcfs, err := iovcf.ReadAll(s.cfg.Submission.VCFFiles, s.progress)
	if err != nil {
		return nil, err
	}

	sub, ff, err := normalize.Normalize(id, wb, vcfs, ref.Vocabulary, ref.Rules)
	if err != nil {
		return nil, err
	}
	set := &finding.Set{}
	set.Add(ff...)
	placed, seqs := validatePlacements(sub, ref.Index, ref.Rules)
	set.Add(placed...)
	set.Add(linkage.Verify(sub.Regions, sub.Calls, seqs, ref.Rules)...)

	s.log.Info("Submission validated",
		"kind", sub.Kind.String(),
		"calls", humanize.Comma(int64(len(sub.Calls))),
		"regions", humanize.Comma(int64(len(sub.Regions))),
		"variants", humanize.Comma(int64(len(sub.Variants))),
		"findings", set.Len(),
	)
	return &state{sub: sub, set: set}, nil
}

func (s *submitter) report(st *state) ([]string, error) {
	w := ioexport.New(s.cfg.Output.Dir)
	return w.Report(st.sub.ID, st.set, s.cfg.Submission.VCFFiles)
}

func (s *submitter) index(ctx context.Context, sub *model.Submission) (string, error) {
	path := filepath.Join(s.cfg.Output.Dir, ioindex.FileName)
	idx, err := ioindex.Open(ctx, path)
	if err != nil {
		return "", err
	}
	defer idx.Close()
	if err = idx.Write(ctx, sub.ID, accession.Mappings(sub)); err != nil {
		return "", err
	}
	return path, nil
}

func (s *submitter) result(st *state) *jvar.Result {
	return &jvar.Result{
		SubmissionID: st.sub.ID,
		RunID:        s.runID,
		Kind:         st.sub.Kind,
		Findings:     st.set,
	}
}

func (s *submitter) finished(msg string, res *jvar.Result) {
	s.log.Info(msg,
		"errors", res.Findings.Count(finding.Blocking),
		"ignorable", res.Findings.Count(finding.Soft),
		"warnings", res.Findings.Count(finding.Advisory),
		"files", len(res.Files),
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
}

func removeFiles(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			slog.Warn("Cannot remove export", "path", p, "error", err)
		}
	}
}

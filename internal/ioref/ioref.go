// Package ioref loads reference data from the reference directory.
//
// Layout of the directory:
//
//	assemblies.json       list of assemblies
//	<directory>           JSONL sequence directory of an assembly, one
//	                      sequence per line, path relative to the root
//	external/*.fai        lengths of contigs outside of assemblies
//	vocabularies.json     optional, replaces embedded vocabularies
//	rules.yaml            optional, replaces embedded rule tables
//
// Parsed assemblies are cached in a gob file next to assemblies.json and
// reused while the source files stay unchanged.
package ioref

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ddbj/jvar/pkg/refindex"
	"github.com/ddbj/jvar/pkg/vocab"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/errgroup"
)

const (
	AssembliesFile   = "assemblies.json"
	VocabulariesFile = "vocabularies.json"
	RulesFile        = "rules.yaml"
	ExternalDir      = "external"
	CacheFile        = ".refindex.gob"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Reference is everything the validators need besides the submission.
type Reference struct {
	Index      *refindex.Index
	Vocabulary *vocab.Vocabulary
	Rules      *vocab.Rules
}

// Load reads the reference directory. Sequence directories of assemblies
// are read concurrently.
func Load(ctx context.Context, dir string) (*Reference, error) {
	timeStart := time.Now()
	res := &Reference{}

	asms, err := readAssemblies(dir)
	if err != nil {
		return nil, err
	}

	fp, err := fingerprint(dir, asms)
	if err != nil {
		return nil, err
	}

	c, ok := readCache(dir, fp)
	if !ok {
		c = cached{Fingerprint: fp}
		if c.Assemblies, err = loadSequences(ctx, dir, asms); err != nil {
			return nil, err
		}
		if c.External, err = loadExternal(dir); err != nil {
			return nil, err
		}
		writeCache(dir, c)
	}
	res.Index = refindex.New(c.Assemblies, c.External)

	if res.Vocabulary, err = loadVocabulary(dir); err != nil {
		return nil, err
	}
	if res.Rules, err = loadRules(dir); err != nil {
		return nil, err
	}

	var seqNum int
	for _, a := range c.Assemblies {
		seqNum += len(a.Sequences)
	}
	slog.Info("Reference data loaded",
		"dir", dir,
		"assemblies", len(c.Assemblies),
		"sequences", humanize.Comma(int64(seqNum)),
		"external", humanize.Comma(int64(len(c.External))),
		"cached", ok,
		"duration", gnfmt.TimeString(time.Since(timeStart).Seconds()),
	)
	return res, nil
}

func readAssemblies(dir string) ([]refindex.Assembly, error) {
	path := filepath.Join(dir, AssembliesFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, MissingAssembliesError(dir)
	}
	if err != nil {
		return nil, LoadError(path, err)
	}
	var res []refindex.Assembly
	if err = json.Unmarshal(data, &res); err != nil {
		return nil, FormatError(path, 0, err)
	}
	return res, nil
}

// loadSequences reads sequence directories in parallel. Each goroutine
// owns one slot of the result, so no locking is needed.
func loadSequences(
	ctx context.Context,
	dir string,
	asms []refindex.Assembly,
) ([]refindex.Assembly, error) {
	res := make([]refindex.Assembly, len(asms))
	g, gCtx := errgroup.WithContext(ctx)
	for i, a := range asms {
		g.Go(func() error {
			if a.Directory == "" {
				res[i] = a
				return nil
			}
			seqs, err := readJSONL(gCtx, filepath.Join(dir, a.Directory))
			if err != nil {
				return err
			}
			a.Sequences = seqs
			res[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func readJSONL(ctx context.Context, path string) ([]refindex.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadError(path, err)
	}
	defer f.Close()

	var res []refindex.Sequence
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	var lineNum int
	for sc.Scan() {
		lineNum++
		if lineNum%1000 == 0 {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var seq refindex.Sequence
		if err = json.UnmarshalFromString(line, &seq); err != nil {
			return nil, FormatError(path, lineNum, err)
		}
		res = append(res, seq)
	}
	if err = sc.Err(); err != nil {
		return nil, LoadError(path, err)
	}
	return res, nil
}

func externalFiles(dir string) ([]string, error) {
	res, err := filepath.Glob(filepath.Join(dir, ExternalDir, "*.fai"))
	if err != nil {
		return nil, LoadError(filepath.Join(dir, ExternalDir), err)
	}
	return res, nil
}

// loadExternal reads samtools faidx files: name, length, then offsets
// that are ignored.
func loadExternal(dir string) (map[string]int, error) {
	files, err := externalFiles(dir)
	if err != nil {
		return nil, err
	}
	res := make(map[string]int)
	for _, path := range files {
		if err = readFai(path, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func readFai(path string, res map[string]int) error {
	f, err := os.Open(path)
	if err != nil {
		return LoadError(path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	var lineNum int
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return FormatError(path, lineNum, errors.New("expected name and length"))
		}
		l, err := strconv.Atoi(fields[1])
		if err != nil {
			return FormatError(path, lineNum, err)
		}
		res[fields[0]] = l
	}
	if err = sc.Err(); err != nil {
		return LoadError(path, err)
	}
	return nil
}

func loadVocabulary(dir string) (*vocab.Vocabulary, error) {
	path := filepath.Join(dir, VocabulariesFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return vocab.DefaultVocabulary(), nil
	}
	if err != nil {
		return nil, LoadError(path, err)
	}
	res, err := vocab.ParseVocabulary(data)
	if err != nil {
		return nil, FormatError(path, 0, err)
	}
	slog.Info("Using custom vocabularies", "path", path)
	return res, nil
}

func loadRules(dir string) (*vocab.Rules, error) {
	path := filepath.Join(dir, RulesFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return vocab.DefaultRules(), nil
	}
	if err != nil {
		return nil, LoadError(path, err)
	}
	res, err := vocab.ParseRules(data)
	if err != nil {
		return nil, FormatError(path, 0, err)
	}
	slog.Info("Using custom rules", "path", path)
	return res, nil
}

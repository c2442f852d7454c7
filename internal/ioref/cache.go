package ioref

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ddbj/jvar/pkg/refindex"
	"github.com/gnames/gnfmt"
)

// cached is the parsed content of the reference directory stored with the
// fingerprint of the files it was built from.
type cached struct {
	Fingerprint string
	Assemblies  []refindex.Assembly
	External    map[string]int
}

// fingerprint lists every source file with its size and modification
// time. Any edit of the reference directory changes it.
func fingerprint(dir string, asms []refindex.Assembly) (string, error) {
	files := []string{filepath.Join(dir, AssembliesFile)}
	for _, a := range asms {
		if a.Directory != "" {
			files = append(files, filepath.Join(dir, a.Directory))
		}
	}
	ext, err := externalFiles(dir)
	if err != nil {
		return "", err
	}
	files = append(files, ext...)
	slices.Sort(files)

	var b strings.Builder
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return "", LoadError(f, err)
		}
		fmt.Fprintf(&b, "%s|%d|%d\n", f, info.Size(), info.ModTime().UnixNano())
	}
	return b.String(), nil
}

func readCache(dir, fp string) (cached, bool) {
	var res cached
	data, err := os.ReadFile(filepath.Join(dir, CacheFile))
	if err != nil {
		return res, false
	}
	enc := gnfmt.GNgob{}
	if err = enc.Decode(data, &res); err != nil {
		slog.Warn("Cannot decode reference cache", "error", err)
		return res, false
	}
	if res.Fingerprint != fp {
		return res, false
	}
	return res, true
}

// writeCache is best effort: the reference directory can be read-only.
func writeCache(dir string, c cached) {
	enc := gnfmt.GNgob{}
	data, err := enc.Encode(c)
	if err != nil {
		slog.Warn("Cannot encode reference cache", "error", err)
		return
	}
	path := filepath.Join(dir, CacheFile)
	if err = os.WriteFile(path, data, 0644); err != nil {
		slog.Warn("Cannot write reference cache", "path", path, "error", err)
	}
}

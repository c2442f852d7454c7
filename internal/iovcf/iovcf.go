// Package iovcf opens VCF files, plain or gzip-compressed.
package iovcf

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/ddbj/jvar/pkg/vcf"
	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Read parses the VCF at path. Compression is detected from the content,
// not the file extension. With progress on, a bar tracks bytes read from
// disk.
func Read(path string, progress bool) (*vcf.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, vcf.ReadError(path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if progress {
		info, err := f.Stat()
		if err != nil {
			return nil, vcf.ReadError(path, err)
		}
		bar := newProgressBar(info.Size(), filepath.Base(path))
		defer bar.Finish()
		r = bar.NewProxyReader(f)
	}

	r, closer, err := decompress(r)
	if err != nil {
		return nil, vcf.ReadError(path, err)
	}
	defer closer.Close()

	res, err := vcf.Parse(path, r)
	if err != nil {
		return nil, err
	}
	slog.Info("VCF read",
		"file", path,
		"samples", len(res.Samples),
		"records", humanize.Comma(int64(len(res.Records))),
	)
	return res, nil
}

// ReadAll parses every file in order and stops at the first failure.
func ReadAll(paths []string, progress bool) ([]*vcf.File, error) {
	res := make([]*vcf.File, 0, len(paths))
	for _, p := range paths {
		f, err := Read(p, progress)
		if err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	return res, nil
}

func decompress(r io.Reader) (io.Reader, io.Closer, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, nil, err
	}
	if len(head) < len(gzipMagic) || head[0] != gzipMagic[0] || head[1] != gzipMagic[1] {
		return br, io.NopCloser(br), nil
	}
	// gzip.Reader reads concatenated members, so BGZF works too.
	gz, err := gzip.NewReader(br)
	if err != nil {
		return nil, nil, err
	}
	return gz, gz, nil
}

func newProgressBar(total int64, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start64(total)
	bar.Set("prefix", prefix+" ")
	bar.Set(pb.Bytes, true)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}

// Package iofs prepares the directories and files jvar works with.
package iofs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ddbj/jvar/pkg/config"
	"github.com/ddbj/jvar/pkg/templates"
)

// EnsureDirs creates config, reference, data and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.ReferenceDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := TouchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// TouchDir creates the directory with parents unless it exists.
func TouchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml on the first run.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(templates.ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// Exists reports whether the path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteAtomic writes a file through a temporary file in the same directory.
// The temporary file is synced to disk and renamed over path, so readers
// see either the old or the new content.
func WriteAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return WriteFileError(path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err = write(tmp); err != nil {
		tmp.Close()
		return WriteFileError(path, err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return WriteFileError(path, err)
	}
	if err = tmp.Close(); err != nil {
		return WriteFileError(path, err)
	}
	if err = os.Chmod(tmpPath, 0644); err != nil {
		return WriteFileError(path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return WriteFileError(path, err)
	}
	return nil
}

// CopyNew copies src to dst only if dst does not exist yet. It reports
// false, and leaves dst untouched, when dst is already there.
func CopyNew(src, dst string) (bool, error) {
	in, err := os.Open(src)
	if err != nil {
		return false, ReadFileError(src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, CopyFileError(dst, err)
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return false, CopyFileError(dst, err)
	}
	if err = out.Close(); err != nil {
		return false, CopyFileError(dst, err)
	}
	return true, nil
}

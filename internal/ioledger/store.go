// Package ioledger keeps the accession ledger on disk.
package ioledger

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ddbj/jvar/internal/iofs"
	"github.com/ddbj/jvar/pkg/ledger"
)

// BackupLayout is the timestamp format of ledger backups.
const BackupLayout = "20060102-150405"

const maxBackupsPerSecond = 1000

// Store reads and rewrites one ledger file. It does not lock the file,
// a single writer per ledger is assumed.
type Store struct {
	// Path to the ledger file.
	Path string

	// BackupDir receives a copy of the ledger before every rewrite.
	// Empty means the directory of the ledger.
	BackupDir string

	now func() time.Time
}

// New creates a Store for the ledger at path.
func New(path, backupDir string) *Store {
	return &Store{Path: path, BackupDir: backupDir, now: time.Now}
}

// Load parses the ledger file. A missing file is a first run and loads as
// an empty ledger.
func (s *Store) Load() (*ledger.Ledger, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("Ledger file does not exist, starting empty", "path", s.Path)
		return ledger.New(), nil
	}
	if err != nil {
		return nil, iofs.ReadFileError(s.Path, err)
	}
	defer f.Close()

	l, err := ledger.Parse(f)
	if err != nil {
		return nil, err
	}
	slog.Info("Ledger loaded", "path", s.Path, "entries", len(l.Entries))
	return l, nil
}

// Save backs up the current file and atomically replaces it with the
// content of l. It returns the path of the backup, empty on the first run.
func (s *Store) Save(l *ledger.Ledger) (string, error) {
	if err := iofs.TouchDir(filepath.Dir(s.Path)); err != nil {
		return "", err
	}

	backup, err := s.backup()
	if err != nil {
		return "", err
	}

	err = iofs.WriteAtomic(s.Path, func(w io.Writer) error {
		_, err := l.WriteTo(w)
		return err
	})
	if err != nil {
		return backup, WriteError(s.Path, err)
	}
	slog.Info("Ledger saved", "path", s.Path, "backup", backup)
	return backup, nil
}

func (s *Store) backup() (string, error) {
	if !iofs.Exists(s.Path) {
		return "", nil
	}

	dir := s.BackupDir
	if dir == "" {
		dir = filepath.Dir(s.Path)
	}
	if err := iofs.TouchDir(dir); err != nil {
		return "", BackupError(s.Path, err)
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	stamp := filepath.Base(s.Path) + "." + now().Format(BackupLayout)
	// backups are never overwritten, saves within one second get a counter
	for i := 0; i < maxBackupsPerSecond; i++ {
		name := stamp + ".bak"
		if i > 0 {
			name = fmt.Sprintf("%s.%d.bak", stamp, i)
		}
		res := filepath.Join(dir, name)
		ok, err := iofs.CopyNew(s.Path, res)
		if err != nil {
			return "", BackupError(s.Path, err)
		}
		if ok {
			return res, nil
		}
	}
	return "", BackupError(s.Path,
		fmt.Errorf("more than %d backups for %s", maxBackupsPerSecond, stamp))
}

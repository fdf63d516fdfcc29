package eventlog

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Mavwarf/moonicon/internal/export"
	"github.com/Mavwarf/moonicon/internal/paths"
)

// Run statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
	StatusDryRun = "dry-run"
)

// Backends accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Run is one recorded export invocation.
type Run struct {
	ID        int64 // assigned by the store
	Time      time.Time
	Root      string
	Sets      []string
	Status    string
	Error     string
	Elapsed   time.Duration
	FileCount int
	Files     []FileRecord // written by LogRun; Runs leaves it nil
}

// FileRecord is one file produced by a run.
type FileRecord struct {
	Set    string
	Path   string
	Size   int
	Bytes  int
	SHA256 string
}

// Store abstracts run ledger storage.
type Store interface {
	LogRun(r Run) error
	Runs(limit int) ([]Run, error)           // newest first, 0 = all
	Files(runID int64) ([]FileRecord, error) // in write order
	Clear() error
	Path() string
	Close() error
}

// Open returns the store for backend in dir. An empty backend means
// sqlite.
func Open(dir, backend string) (Store, error) {
	switch backend {
	case "", BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, paths.DBFileName))
	case BackendFile:
		return NewFileStore(filepath.Join(dir, paths.LogFileName)), nil
	default:
		return nil, fmt.Errorf("eventlog: unknown backend %q", backend)
	}
}

// NewRun builds the ledger record for an export result. runErr is the
// error Run returned, if any.
func NewRun(res export.Result, sets []string, dryRun bool, runErr error) Run {
	r := Run{
		Time:      res.Started,
		Root:      res.Root,
		Sets:      sets,
		Status:    StatusOK,
		Elapsed:   res.Elapsed,
		FileCount: len(res.Files),
	}
	switch {
	case runErr != nil:
		r.Status = StatusFailed
		r.Error = runErr.Error()
	case dryRun:
		r.Status = StatusDryRun
	}
	for _, f := range res.Files {
		r.Files = append(r.Files, FileRecord{
			Set:    f.Set,
			Path:   f.Path,
			Size:   f.Size,
			Bytes:  f.Bytes,
			SHA256: f.SHA256,
		})
	}
	return r
}

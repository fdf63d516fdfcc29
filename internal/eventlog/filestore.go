package eventlog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Mavwarf/moonicon/internal/paths"
)

// FileStore implements Store using a flat log file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// openLog opens (or creates) the log file for appending, creating the
// parent directory if needed.
func (f *FileStore) openLog() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return nil, err
	}
	return os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
}

func (f *FileStore) LogRun(r Run) error {
	file, err := f.openLog()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprint(file, formatRun(r)); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (f *FileStore) readRuns() ([]Run, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return ParseRuns(string(data)), nil
}

func (f *FileStore) Runs(limit int) ([]Run, error) {
	runs, err := f.readRuns()
	if err != nil {
		return nil, err
	}
	out := make([]Run, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		r := runs[i]
		r.Files = nil
		out = append(out, r)
	}
	return out, nil
}

func (f *FileStore) Files(runID int64) ([]FileRecord, error) {
	runs, err := f.readRuns()
	if err != nil {
		return nil, err
	}
	for _, r := range runs {
		if r.ID == runID {
			return r.Files, nil
		}
	}
	return nil, fmt.Errorf("run %d not found", runID)
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Close() error {
	return nil
}

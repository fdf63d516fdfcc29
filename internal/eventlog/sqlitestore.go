package eventlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mavwarf/moonicon/internal/paths"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at path, creates
// tables and indexes, and performs one-time migration from moonicon.log
// if it exists in the same directory.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// PRAGMAs are per connection; keep a single one so foreign_keys holds.
	db.SetMaxOpenConns(1)

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp   TEXT    NOT NULL,
    root        TEXT    NOT NULL DEFAULT '',
    sets_csv    TEXT    NOT NULL DEFAULT '',
    status      TEXT    NOT NULL,
    error       TEXT    NOT NULL DEFAULT '',
    elapsed_ms  INTEGER NOT NULL DEFAULT 0,
    file_count  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS files (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id    INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    seq       INTEGER NOT NULL,
    set_name  TEXT    NOT NULL,
    path      TEXT    NOT NULL,
    size      INTEGER NOT NULL DEFAULT 0,
    bytes     INTEGER NOT NULL DEFAULT 0,
    sha256    TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_files_run      ON files(run_id, seq);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}

	// One-time migration from flat file.
	logPath := filepath.Join(filepath.Dir(path), paths.LogFileName)
	if _, err := os.Stat(logPath); err == nil {
		if err := s.migrateFromFile(logPath); err != nil {
			fmt.Fprintf(os.Stderr, "eventlog: migration: %v\n", err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LogRun(r Run) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertRun(tx, r); err != nil {
		return err
	}
	return tx.Commit()
}

func insertRun(tx *sql.Tx, r Run) error {
	res, err := tx.Exec(
		`INSERT INTO runs (timestamp, root, sets_csv, status, error, elapsed_ms, file_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Time.Format(time.RFC3339), r.Root, strings.Join(r.Sets, ","), r.Status, r.Error,
		r.Elapsed.Milliseconds(), r.FileCount,
	)
	if err != nil {
		return err
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, f := range r.Files {
		if _, err := tx.Exec(
			`INSERT INTO files (run_id, seq, set_name, path, size, bytes, sha256)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, i+1, f.Set, f.Path, f.Size, f.Bytes, f.SHA256,
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // no limit
	}
	rows, err := s.db.Query(
		`SELECT id, timestamp, root, sets_csv, status, error, elapsed_ms, file_count
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			tsStr     string
			setsCSV   string
			elapsedMS int64
		)
		if err := rows.Scan(&r.ID, &tsStr, &r.Root, &setsCSV, &r.Status, &r.Error, &elapsedMS, &r.FileCount); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			continue
		}
		r.Time = ts
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		if setsCSV != "" {
			r.Sets = strings.Split(setsCSV, ",")
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) Files(runID int64) ([]FileRecord, error) {
	var exists int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("run %d not found", runID)
	}

	rows, err := s.db.Query(
		`SELECT set_name, path, size, bytes, sha256
		 FROM files WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		if err := rows.Scan(&f.Set, &f.Path, &f.Size, &f.Bytes, &f.SHA256); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM runs`)
	return err
}

func (s *SQLiteStore) Path() string {
	return s.path
}

// migrateFromFile imports the runs of an existing moonicon.log into the
// database. On success, renames the log to moonicon.log.migrated.
func (s *SQLiteStore) migrateFromFile(logPath string) error {
	data, err := os.ReadFile(logPath)
	if err != nil {
		return err
	}
	runs := ParseRuns(string(data))

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range runs {
		if err := insertRun(tx, r); err != nil {
			return fmt.Errorf("migrate run: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if len(runs) > 0 {
		fmt.Fprintf(os.Stderr, "eventlog: migrated %d runs from %s\n", len(runs), paths.LogFileName)
	}
	return os.Rename(logPath, logPath+".migrated")
}

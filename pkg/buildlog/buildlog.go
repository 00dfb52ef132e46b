// Package buildlog tracks what the generator has built before: one row
// per page URL with a content hash and timestamps. The sitemap reads
// last_modified from here so <lastmod> reflects real content changes, not
// the time of the latest re-run. Every caller treats this log as
// best-effort; a missing or broken log degrades page generation to
// warnings, never failures.
package buildlog

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the log's name inside the output root.
const FileName = ".buildlog.db"

// timeFormat is how timestamps are stored; TEXT columns keep the file
// greppable.
const timeFormat = time.RFC3339

// Log is the build-log database handle.
type Log struct {
	*sql.DB
	path string
}

// openDB opens a SQLite database at the given path.
func openDB(dbPath string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return sqlDB, nil
}

// Open opens or creates the build log inside the output root.
func Open(outDir string) (*Log, error) {
	dbPath := filepath.Join(outDir, FileName)

	sqlDB, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	l := &Log{DB: sqlDB, path: dbPath}
	if err := l.ensureSchemaExists(); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return l, nil
}

// Path returns the database file path.
func (l *Log) Path() string {
	return l.path
}

// ensureSchemaExists checks for the pages table and initializes the
// schema when it is missing.
func (l *Log) ensureSchemaExists() error {
	var tableName string
	err := l.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='pages'").Scan(&tableName)

	if err == sql.ErrNoRows {
		return l.InitSchema()
	}
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	return nil
}

// InitSchema initializes the database schema.
func (l *Log) InitSchema() error {
	_, err := l.Exec(schema)
	return err
}

// Touch records that url was built at now with the given content hash and
// returns the page's effective last-modified time: unchanged content
// keeps its stored timestamp, changed content advances it to now.
func (l *Log) Touch(url, title, contentHash string, now time.Time) (time.Time, error) {
	now = now.UTC().Truncate(time.Second)

	var storedHash, storedModified string
	err := l.QueryRow("SELECT content_hash, last_modified FROM pages WHERE url = ?", url).
		Scan(&storedHash, &storedModified)

	switch {
	case err == sql.ErrNoRows:
		_, err = l.Exec(
			"INSERT INTO pages (url, title, content_hash, first_built, last_modified) VALUES (?, ?, ?, ?, ?)",
			url, title, contentHash, now.Format(timeFormat), now.Format(timeFormat),
		)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to insert build entry: %w", err)
		}
		return now, nil

	case err != nil:
		return time.Time{}, fmt.Errorf("failed to query build entry: %w", err)
	}

	if storedHash == contentHash {
		stored, parseErr := time.Parse(timeFormat, storedModified)
		if parseErr != nil {
			return now, nil
		}
		return stored, nil
	}

	_, err = l.Exec(
		"UPDATE pages SET title = ?, content_hash = ?, last_modified = ? WHERE url = ?",
		title, contentHash, now.Format(timeFormat), url,
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to update build entry: %w", err)
	}
	return now, nil
}

// LastModified returns the stored last-modified time for url.
func (l *Log) LastModified(url string) (time.Time, bool) {
	var stored string
	err := l.QueryRow("SELECT last_modified FROM pages WHERE url = ?", url).Scan(&stored)
	if err != nil {
		return time.Time{}, false
	}
	ts, err := time.Parse(timeFormat, stored)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// FileName is the name of the database file inside the data directory.
const FileName = "cmdowser.db"

// ErrNotFound is returned by Open when CreateIfNotExists is false and
// no database exists yet.
var ErrNotFound = errors.New("visit log not found")

// VisitDB is the SQLite visit log.
type VisitDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures Open.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL switches the journal to write-ahead logging.
	EnableWAL bool
}

// DefaultOptions returns the options used when recording visits.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// ReadOnlyOptions returns the options used to list visits without creating
// an empty database as a side effect.
func ReadOnlyOptions() Options {
	return Options{}
}

// Open opens the visit log in dbDir.
func Open(dbDir string, opts Options) (*VisitDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?mode=rwc"
	} else if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, dbPath)
		}
		return nil, fmt.Errorf("failed to check database path: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	vdb := &VisitDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := vdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return vdb, nil
}

// Close closes the database connection.
func (vdb *VisitDB) Close() error {
	return vdb.db.Close()
}

// Path returns the database file path.
func (vdb *VisitDB) Path() string {
	return vdb.dbPath
}

func (vdb *VisitDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		final_url TEXT NOT NULL,
		title TEXT,
		status_code INTEGER,
		locale TEXT,
		visited_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_visits_visited_at ON visits(visited_at);
	`
	_, err := vdb.db.ExecContext(context.Background(), schema)
	return err
}

// Visit is one displayed page.
type Visit struct {
	ID         int64
	URL        string
	FinalURL   string
	Title      string
	StatusCode int
	Locale     string
	VisitedAt  time.Time
}

// RecordVisit appends a visit and returns its ID. A zero VisitedAt is
// replaced with the current time; an empty FinalURL with URL.
func (vdb *VisitDB) RecordVisit(ctx context.Context, v *Visit) (int64, error) {
	if v.VisitedAt.IsZero() {
		v.VisitedAt = time.Now()
	}
	if v.FinalURL == "" {
		v.FinalURL = v.URL
	}

	query := `
	INSERT INTO visits (url, final_url, title, status_code, locale, visited_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := vdb.db.ExecContext(ctx, query,
		v.URL, v.FinalURL, v.Title, v.StatusCode, v.Locale,
		v.VisitedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record visit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get visit id: %w", err)
	}
	v.ID = id
	return id, nil
}

// RecentVisits returns up to limit visits, newest first.
// A limit of zero or less returns every visit.
func (vdb *VisitDB) RecentVisits(ctx context.Context, limit int) ([]Visit, error) {
	if limit <= 0 {
		limit = -1 // no LIMIT in SQLite
	}

	query := `
	SELECT id, url, final_url, COALESCE(title, ''), COALESCE(status_code, 0), COALESCE(locale, ''), visited_at
	FROM visits
	ORDER BY id DESC
	LIMIT ?
	`
	rows, err := vdb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var (
			v         Visit
			visitedAt string
		)
		if err := rows.Scan(&v.ID, &v.URL, &v.FinalURL, &v.Title, &v.StatusCode, &v.Locale, &visitedAt); err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		v.VisitedAt = parseTimestamp(visitedAt)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// CountVisits returns the number of recorded visits.
func (vdb *VisitDB) CountVisits(ctx context.Context) (int, error) {
	var count int
	if err := vdb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM visits").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}
	return count, nil
}

// ClearVisits deletes every recorded visit and returns how many were removed.
func (vdb *VisitDB) ClearVisits(ctx context.Context) (int64, error) {
	result, err := vdb.db.ExecContext(ctx, "DELETE FROM visits")
	if err != nil {
		return 0, fmt.Errorf("failed to clear visits: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared visits: %w", err)
	}
	return n, nil
}

// timestampFormats are tried in order by parseTimestamp.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp parses a stored timestamp. It returns the zero time for
// values in an unknown format.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/pagegrade/internal/model"
)

// DBFileName is the name of the database file inside the data directory.
const DBFileName = "history.db"

// ErrDatabaseNotFound is returned when opening a missing database without
// CreateIfNotExists.
var ErrDatabaseNotFound = errors.New("history database not found")

// timestampLayout is the format timestamps are stored in.
const timestampLayout = "2006-01-02 15:04:05"

// Store provides SQLite-based storage for grading runs.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string

	// now returns the current time; replaced in tests.
	now func() time.Time
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
func Open(dbDir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	var dsn string
	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = dbPath + "?mode=rwc"
	} else {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		directory TEXT NOT NULL,
		profile TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		total INTEGER NOT NULL,
		max INTEGER NOT NULL,
		threshold INTEGER NOT NULL,
		passed INTEGER NOT NULL,
		timestamp DATETIME NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_directory ON runs(directory);
	CREATE INDEX IF NOT EXISTS idx_runs_fingerprint ON runs(fingerprint);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is a stored grading run without the full report.
type RunRecord struct {
	ID          int64     `json:"id"`
	Directory   string    `json:"directory"`
	Profile     string    `json:"profile"`
	Fingerprint string    `json:"fingerprint"`
	Total       int       `json:"total"`
	Max         int       `json:"max"`
	Threshold   int       `json:"threshold"`
	Passed      bool      `json:"passed"`
	Timestamp   time.Time `json:"timestamp"`

	// Unchanged is true when the submission content is identical to the
	// previous run of the same directory.
	Unchanged bool `json:"unchanged"`
}

// SubmissionSummary describes one graded directory.
type SubmissionSummary struct {
	Directory string    `json:"directory"`
	Runs      int       `json:"runs"`
	LastRun   time.Time `json:"last_run"`
}

// SubmissionKey returns the key a directory is stored under: its absolute,
// cleaned path.
func SubmissionKey(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Clean(dir)
	}
	return abs
}

// SaveRun stores a grading run and returns its ID.
func (s *Store) SaveRun(ctx context.Context, dir, fingerprint string, report *model.Report) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO runs (directory, profile, fingerprint, total, max, threshold, passed, timestamp, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		SubmissionKey(dir),
		report.Profile,
		fingerprint,
		report.Total(),
		report.Max(),
		report.Threshold,
		report.Passed(),
		s.now().UTC().Format(timestampLayout),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	return result.LastInsertId()
}

// ListRuns returns the runs of dir, newest first. A limit of zero or less
// returns every run.
func (s *Store) ListRuns(ctx context.Context, dir string, limit int) ([]RunRecord, error) {
	query := `
	SELECT id, directory, profile, fingerprint, total, max, threshold, passed, timestamp
	FROM runs
	WHERE directory = ?
	ORDER BY id DESC
	`
	args := []any{SubmissionKey(dir)}
	if limit > 0 {
		// One extra row tells whether the oldest listed run changed.
		query += "LIMIT ?"
		args = append(args, limit+1)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	records := make([]RunRecord, 0)
	for rows.Next() {
		var rec RunRecord
		var timestamp string
		if err := rows.Scan(&rec.ID, &rec.Directory, &rec.Profile, &rec.Fingerprint,
			&rec.Total, &rec.Max, &rec.Threshold, &rec.Passed, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		rec.Timestamp = parseTimestamp(timestamp)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := 0; i+1 < len(records); i++ {
		records[i].Unchanged = records[i].Fingerprint == records[i+1].Fingerprint
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// ListSubmissions returns every graded directory, sorted by path.
func (s *Store) ListSubmissions(ctx context.Context) ([]SubmissionSummary, error) {
	query := `
	SELECT directory, COUNT(*), MAX(timestamp)
	FROM runs
	GROUP BY directory
	ORDER BY directory
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	summaries := make([]SubmissionSummary, 0)
	for rows.Next() {
		var sum SubmissionSummary
		var timestamp string
		if err := rows.Scan(&sum.Directory, &sum.Runs, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		sum.LastRun = parseTimestamp(timestamp)
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// Latest returns the most recent report for dir, or nil when dir was never
// graded.
func (s *Store) Latest(ctx context.Context, dir string) (*model.Report, error) {
	query := `
	SELECT report_json FROM runs
	WHERE directory = ?
	ORDER BY id DESC
	LIMIT 1
	`
	return s.queryReport(ctx, query, SubmissionKey(dir))
}

// ReportByID returns the report of the run with the given ID, or nil.
func (s *Store) ReportByID(ctx context.Context, id int64) (*model.Report, error) {
	return s.queryReport(ctx, `SELECT report_json FROM runs WHERE id = ?`, id)
}

// queryReport runs a single-row query selecting report_json.
func (s *Store) queryReport(ctx context.Context, query string, args ...any) (*model.Report, error) {
	var reportJSON string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
var timestampFormats = []string{
	timestampLayout,
	"2006-01-02T15:04:05Z",
	time.RFC3339,
	time.RFC3339Nano,
}

// parseTimestamp parses a stored timestamp, returning zero time when no
// format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

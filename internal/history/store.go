// Package history records check runs in a SQLite database so contrast
// regressions can be traced across palette revisions.
package history

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/marcus/wcagcheck/internal/contrast"
	"github.com/marcus/wcagcheck/internal/report"
)

// Run is one recorded invocation of the checker.
type Run struct {
	ID        string         `json:"id"`
	Revision  string         `json:"revision"`
	Sets      string         `json:"sets"`
	CreatedAt time.Time      `json:"created_at"`
	Summary   report.Summary `json:"summary"`
	Rows      []report.Row   `json:"rows,omitempty"`
}

// createdLayout is fixed width so created_at text sorts in time order.
const createdLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store handles SQLite operations for run history.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore opens (creating if needed) the history database at dbPath.
func NewStore(dbPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db, logger: logger}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    revision TEXT NOT NULL,
    sets TEXT NOT NULL,
    created_at TEXT NOT NULL,
    total INTEGER NOT NULL,
    passed INTEGER NOT NULL,
    failed INTEGER NOT NULL,
    errors INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_rows (
    run_id TEXT NOT NULL REFERENCES runs(id),
    position INTEGER NOT NULL,
    label TEXT NOT NULL,
    mode TEXT,
    element TEXT,
    size TEXT NOT NULL,
    spec TEXT NOT NULL,
    ratio REAL,
    level TEXT,
    background TEXT,
    foreground TEXT,
    error TEXT,
    PRIMARY KEY (run_id, position)
);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores a run and its rows in one transaction. A new ID and
// timestamp are assigned when missing.
func (s *Store) Record(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if run.Summary.Total == 0 && len(run.Rows) > 0 {
		run.Summary = report.Summarize(run.Rows)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, revision, sets, created_at, total, passed, failed, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Revision, run.Sets,
		run.CreatedAt.UTC().Format(createdLayout),
		run.Summary.Total, run.Summary.Passed, run.Summary.Failed, run.Summary.Errors)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, r := range run.Rows {
		_, err = tx.Exec(`
			INSERT INTO run_rows (run_id, position, label, mode, element, size, spec, ratio, level, background, foreground, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, i, r.Label, r.Mode, r.Element, string(r.Size), r.Spec,
			r.Ratio, string(r.Level), r.Background, r.Foreground, r.Error)
		if err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug("recorded run", "id", run.ID, "revision", run.Revision, "rows", len(run.Rows))
	return nil
}

// Recent returns up to limit runs, newest first, without their rows.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, revision, sets, created_at, total, passed, failed, errors
		FROM runs ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.ID, &run.Revision, &run.Sets, &createdAt,
			&run.Summary.Total, &run.Summary.Passed, &run.Summary.Failed, &run.Summary.Errors); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CreatedAt, _ = time.Parse(createdLayout, createdAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get retrieves a run with its rows. Returns nil, nil if not found.
func (s *Store) Get(id string) (*Run, error) {
	var run Run
	var createdAt string
	err := s.db.QueryRow(`
		SELECT id, revision, sets, created_at, total, passed, failed, errors
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Revision, &run.Sets, &createdAt,
		&run.Summary.Total, &run.Summary.Passed, &run.Summary.Failed, &run.Summary.Errors)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	run.CreatedAt, _ = time.Parse(createdLayout, createdAt)

	rows, err := s.db.Query(`
		SELECT label, mode, element, size, spec, ratio, level, background, foreground, error
		FROM run_rows WHERE run_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r report.Row
		var mode, element, level, bg, fg, errText sql.NullString
		var size string
		var ratio sql.NullFloat64
		if err := rows.Scan(&r.Label, &mode, &element, &size, &r.Spec, &ratio, &level, &bg, &fg, &errText); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r.Mode = mode.String
		r.Element = element.String
		r.Size = contrast.Size(size)
		r.Ratio = ratio.Float64
		r.Level = contrast.Level(level.String)
		r.Background = bg.String
		r.Foreground = fg.String
		r.Error = errText.String
		r.Pass = r.Error == "" && r.Level != "" && r.Level != contrast.LevelFail
		r.AAA = r.Level == contrast.LevelAAA
		run.Rows = append(run.Rows, r)
	}
	return &run, rows.Err()
}

// Regressions compares the rows of two runs and returns the names of rows
// whose level got worse in next. Rows are matched on mode and label; repeated
// mode/label pairs are matched in order of appearance.
func Regressions(prev, next *Run) []string {
	before := make(map[rowKey]report.Row, len(prev.Rows))
	seen := make(map[rowKey]int)
	for _, r := range prev.Rows {
		before[keyFor(r, seen)] = r
	}
	clear(seen)
	var out []string
	for _, r := range next.Rows {
		old, ok := before[keyFor(r, seen)]
		if !ok {
			continue
		}
		if levelRank(r) < levelRank(old) {
			out = append(out, rowName(r))
		}
	}
	return out
}

type rowKey struct {
	mode, label string
	n           int
}

func keyFor(r report.Row, seen map[rowKey]int) rowKey {
	k := rowKey{mode: r.Mode, label: r.Label}
	n := seen[k]
	seen[k] = n + 1
	k.n = n
	return k
}

func rowName(r report.Row) string {
	if r.Mode == "" {
		return r.Label
	}
	return r.Mode + " " + r.Label
}

func levelRank(r report.Row) int {
	switch {
	case r.Error != "":
		return -1
	case r.Level == contrast.LevelAAA:
		return 2
	case r.Level == contrast.LevelAA:
		return 1
	default:
		return 0
	}
}

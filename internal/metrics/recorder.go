// Package metrics records per-process tool usage in SQLite.
//
// The recorder is an explicitly constructed, process-scoped object passed
// to whoever needs it — there is no ambient global state. A nil *Recorder
// is a valid no-op recorder, so callers never need to branch on whether
// metrics are enabled.
package metrics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Recorder is the usage-metrics engine backed by SQLite.
type Recorder struct {
	db *sql.DB
}

// ToolCount is the per-tool aggregate for Stats.
type ToolCount struct {
	Tool   string `json:"tool"`
	Calls  int    `json:"calls"`
	Errors int    `json:"errors"`
}

// Stats holds aggregate usage statistics.
type Stats struct {
	TotalCalls  int         `json:"total_calls"`
	TotalErrors int         `json:"total_errors"`
	ByTool      []ToolCount `json:"by_tool"`
}

// New creates a Recorder, opening (or creating) dataDir/metrics.db with WAL
// mode and running migrations.
func New(dataDir string) (*Recorder, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("metrics: create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "metrics.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("metrics: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("metrics: pragma %q: %w", p, err)
		}
	}

	r := &Recorder{db: db}
	if err := r.migrate(); err != nil {
		return nil, fmt.Errorf("metrics: migration: %w", err)
	}
	return r, nil
}

// Close closes the underlying database connection. Safe on nil.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Recorder) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tool_calls (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			tool        TEXT    NOT NULL,
			ok          INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			called_at   TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_calls_tool ON tool_calls(tool);
	`
	_, err := r.db.Exec(schema)
	return err
}

// Record stores one tool invocation. Safe on nil (no-op).
func (r *Recorder) Record(tool string, ok bool, duration time.Duration) error {
	if r == nil {
		return nil
	}
	okInt := 0
	if ok {
		okInt = 1
	}
	_, err := r.db.Exec(
		`INSERT INTO tool_calls (tool, ok, duration_ms) VALUES (?, ?, ?)`,
		tool, okInt, duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("metrics: record %s: %w", tool, err)
	}
	return nil
}

// Stats aggregates call counts overall and per tool, busiest tool first.
// Safe on nil (returns zero stats).
func (r *Recorder) Stats() (Stats, error) {
	var stats Stats
	if r == nil {
		return stats, nil
	}

	rows, err := r.db.Query(`
		SELECT tool, COUNT(*), SUM(CASE WHEN ok = 0 THEN 1 ELSE 0 END)
		FROM tool_calls
		GROUP BY tool
		ORDER BY COUNT(*) DESC, tool ASC
	`)
	if err != nil {
		return stats, fmt.Errorf("metrics: stats query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tc ToolCount
		if err := rows.Scan(&tc.Tool, &tc.Calls, &tc.Errors); err != nil {
			return stats, fmt.Errorf("metrics: stats scan: %w", err)
		}
		stats.ByTool = append(stats.ByTool, tc)
		stats.TotalCalls += tc.Calls
		stats.TotalErrors += tc.Errors
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("metrics: stats rows: %w", err)
	}
	return stats, nil
}

package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // pure Go driver, no cgo
)

// Outcome values stored with a run.
const (
	OutcomeComplete = "complete"
	OutcomeQuit     = "quit"
)

// Run is one finished or abandoned attempt at a level.
type Run struct {
	ID        int64
	Level     string
	Outcome   string
	Frames    int64
	Deaths    int
	Endless   bool
	FurthestX float64 // right edge reached, useful for endless runs
	CreatedAt time.Time
}

// LevelStats summarises every run of one level.
type LevelStats struct {
	Level      string
	Runs       int
	Completed  int
	BestFrames int64 // 0 when never completed
	Deaths     int
}

// RunStore is the run history database.
type RunStore struct {
	db *sql.DB
}

// OpenRuns creates or opens the history database at path. A leading ~ is
// expanded to the home directory and parent directories are created.
func OpenRuns(path string) (*RunStore, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &RunStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func (s *RunStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			outcome TEXT NOT NULL,
			frames INTEGER NOT NULL,
			deaths INTEGER NOT NULL DEFAULT 0,
			endless INTEGER NOT NULL DEFAULT 0,
			furthest_x REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(level, outcome, frames);
	`)
	return err
}

// Close closes the database.
func (s *RunStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records r and returns its ID. ID and CreatedAt are ignored.
func (s *RunStore) SaveRun(r Run) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (level, outcome, frames, deaths, endless, furthest_x)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Level, r.Outcome, r.Frames, r.Deaths, r.Endless, r.FurthestX,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns the newest runs first. An empty level matches all.
func (s *RunStore) RecentRuns(level string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, level, outcome, frames, deaths, endless, furthest_x, created_at
		 FROM runs
		 WHERE ? = '' OR level = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		level, level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// BestRuns returns the fastest completed runs of level.
func (s *RunStore) BestRuns(level string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, level, outcome, frames, deaths, endless, furthest_x, created_at
		 FROM runs
		 WHERE level = ? AND outcome = ?
		 ORDER BY frames ASC, deaths ASC, id ASC
		 LIMIT ?`,
		level, OutcomeComplete, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// Stats aggregates the history of every level that has runs, by name.
func (s *RunStore) Stats() ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level,
		        COUNT(*),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        MIN(CASE WHEN outcome = ? THEN frames END),
		        SUM(deaths)
		 FROM runs
		 GROUP BY level
		 ORDER BY level`,
		OutcomeComplete, OutcomeComplete,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	var out []LevelStats
	for rows.Next() {
		var st LevelStats
		var best sql.NullInt64
		if err := rows.Scan(&st.Level, &st.Runs, &st.Completed, &best, &st.Deaths); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.BestFrames = best.Int64
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Level, &r.Outcome, &r.Frames, &r.Deaths, &r.Endless, &r.FurthestX, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		// the driver hands DATETIME back as either type
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

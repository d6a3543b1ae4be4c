// Package storage provides SQLite-based persistence for high scores and the
// history of played levels. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/survive2020/internal/highscore"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is one finished level in the history.
type RunEntry struct {
	ID        int64     `csv:"id"`
	Level     string    `csv:"level"`
	Score     int64     `csv:"score"`
	Seconds   float64   `csv:"seconds"`
	CreatedAt time.Time `csv:"played_at"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_scores (
			level TEXT PRIMARY KEY,
			best INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			score INTEGER NOT NULL,
			seconds REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(level, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadHighScores implements highscore.Store.
func (s *Store) LoadHighScores() (highscore.Table, error) {
	rows, err := s.db.Query("SELECT level, best FROM high_scores")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query high scores: %w", err)
	}
	defer rows.Close()

	table := highscore.Table{}
	for rows.Next() {
		var (
			level string
			best  int64
		)
		if err := rows.Scan(&level, &best); err != nil {
			return nil, fmt.Errorf("storage: cannot scan high score: %w", err)
		}
		table[level] = uint64(best)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return table, nil
}

// SaveHighScores implements highscore.Store. The stored table is replaced
// as a whole inside one transaction.
func (s *Store) SaveHighScores(table highscore.Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM high_scores"); err != nil {
		return fmt.Errorf("storage: cannot clear high scores: %w", err)
	}
	for _, level := range table.Keys() {
		if _, err := tx.Exec("INSERT INTO high_scores (level, best) VALUES (?, ?)", level, dbScore(table[level])); err != nil {
			return fmt.Errorf("storage: cannot save high score for %s: %w", level, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit high scores: %w", err)
	}
	return nil
}

// SaveRun records a finished level.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(level string, score uint64, seconds float64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (level, score, seconds) VALUES (?, ?, ?)",
		level, dbScore(score), seconds,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRuns retrieves the best N runs of a level, ordered by score descending.
func (s *Store) TopRuns(level string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, level, score, seconds, created_at
		 FROM runs
		 WHERE level = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		level, limit,
	)
}

// AllRuns retrieves every run of a level in the order they were played.
// An empty level selects all levels.
func (s *Store) AllRuns(level string) ([]RunEntry, error) {
	if level == "" {
		return s.queryRuns(
			`SELECT id, level, score, seconds, created_at FROM runs ORDER BY id ASC`,
		)
	}
	return s.queryRuns(
		`SELECT id, level, score, seconds, created_at FROM runs WHERE level = ? ORDER BY id ASC`,
		level,
	)
}

// ClearRuns deletes the history of a level. High scores are kept.
func (s *Store) ClearRuns(level string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level = ?", level)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// dbScore converts a score to an SQLite integer. Saturated scores are
// stored as the largest signed value.
func dbScore(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Level, &e.Score, &e.Seconds, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

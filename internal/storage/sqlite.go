// Package storage persists Jump Quest results and save slots.
// Scores and versus matches live in SQLite through the pure-Go
// modernc.org/sqlite driver; save slots are encrypted files.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/jump-quest/internal/core"
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished run: a completed level or a game over.
type ScoreEntry struct {
	ID        int64
	Player    string
	Mode      string
	Level     int
	Score     int
	Seconds   float64
	Completed bool
	CreatedAt time.Time
}

// VersusMatch is a stored versus round.
type VersusMatch struct {
	ID        int64
	Result    core.VersusResult
	Winner    core.PlayerID // 0 on a draw
	CreatedAt time.Time
}

// LevelStats aggregates completed runs of one level.
type LevelStats struct {
	Level       int
	Completions int
	BestScore   int
	BestSeconds float64
	AvgSeconds  float64
	LastPlayed  time.Time
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL DEFAULT '',
			mode TEXT NOT NULL,
			level INTEGER NOT NULL,
			score INTEGER NOT NULL,
			seconds REAL NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_mode ON scores(mode);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(mode, score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_level ON scores(level, completed);

		CREATE TABLE IF NOT EXISTS versus_matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			p1_kills INTEGER NOT NULL DEFAULT 0,
			p2_kills INTEGER NOT NULL DEFAULT 0,
			p1_points INTEGER NOT NULL DEFAULT 0,
			p2_points INTEGER NOT NULL DEFAULT 0,
			winner INTEGER NOT NULL DEFAULT 0,
			duration_secs REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// parseTime reads a DATETIME column, which the driver may return as
// time.Time or as text.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveScore records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (player, mode, level, score, seconds, completed) VALUES (?, ?, ?, ?, ?, ?)",
		e.Player, e.Mode, e.Level, e.Score, e.Seconds, e.Completed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const scoreColumns = `id, player, mode, level, score, seconds, completed, created_at`

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Mode, &e.Level, &e.Score, &e.Seconds, &e.Completed, &createdAt); err != nil {
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

// TopScores retrieves the top N scores for a mode; an empty mode means
// every mode. Results are ordered by score descending.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+scoreColumns+`
		 FROM scores
		 WHERE ? = '' OR mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// PlayerScores retrieves a player's runs, newest first.
func (s *Store) PlayerScores(player string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+scoreColumns+`
		 FROM scores
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player scores: %w", err)
	}
	return scanScores(rows)
}

// HighScore returns the highest score for a mode, or 0 if none exist.
func (s *Store) HighScore(mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE ? = '' OR mode = ?",
		mode, mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for a mode; an empty mode clears all.
func (s *Store) ClearScores(mode string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE ? = '' OR mode = ?", mode, mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveVersusMatch records a finished versus round.
func (s *Store) SaveVersusMatch(r core.VersusResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO versus_matches
		 (p1_kills, p2_kills, p1_points, p2_points, winner, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.P1Kills, r.P2Kills, r.P1Points, r.P2Points, int(r.Winner()), r.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save versus match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentVersusMatches retrieves the most recent versus rounds.
func (s *Store) RecentVersusMatches(limit int) ([]VersusMatch, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, p1_kills, p2_kills, p1_points, p2_points, winner, duration_secs, created_at
		 FROM versus_matches
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query versus matches: %w", err)
	}
	defer rows.Close()

	var matches []VersusMatch
	for rows.Next() {
		var m VersusMatch
		var winner int
		var createdAt any
		if err := rows.Scan(
			&m.ID,
			&m.Result.P1Kills,
			&m.Result.P2Kills,
			&m.Result.P1Points,
			&m.Result.P2Points,
			&winner,
			&m.Result.Duration,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		m.Winner = core.PlayerID(winner)
		m.CreatedAt = parseTime(createdAt)
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return matches, nil
}

// VersusRecord returns P1 wins, P2 wins and draws over all matches.
func (s *Store) VersusRecord() (p1, p2, draws int, err error) {
	err = s.db.QueryRow(
		`SELECT
			COALESCE(SUM(winner = 1), 0),
			COALESCE(SUM(winner = 2), 0),
			COALESCE(SUM(winner = 0), 0)
		 FROM versus_matches`,
	).Scan(&p1, &p2, &draws)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("storage: cannot query versus record: %w", err)
	}
	return p1, p2, draws, nil
}

// AllLevelStats aggregates completed runs per level, ordered by level.
func (s *Store) AllLevelStats() ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), MAX(score), MIN(seconds), AVG(seconds), MAX(created_at)
		 FROM scores
		 WHERE completed = 1
		 GROUP BY level
		 ORDER BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStats
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.Level, &ls.Completions, &ls.BestScore, &ls.BestSeconds, &ls.AvgSeconds, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, ls)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ErrNotRecorded is returned by Record for events that carry no result.
var ErrNotRecorded = errors.New("storage: event not recorded")

// Record stores the result carried by a game event: level completions and
// game overs become scores, versus ends become matches.
func (s *Store) Record(e core.Event) error {
	switch e.Kind {
	case core.EventLevelComplete, core.EventGameOver:
		_, err := s.SaveScore(ScoreEntry{
			Player:    e.Player,
			Mode:      e.Mode,
			Level:     e.Level,
			Score:     e.Score,
			Seconds:   e.Seconds,
			Completed: e.Kind == core.EventLevelComplete,
		})
		return err
	case core.EventVersusEnd:
		if e.Versus == nil {
			return ErrNotRecorded
		}
		_, err := s.SaveVersusMatch(*e.Versus)
		return err
	}
	return ErrNotRecorded
}

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vanillaSlice/Snake/pkg/config"
	"github.com/vanillaSlice/Snake/pkg/game"

	_ "modernc.org/sqlite"
)

// Preference keys
const (
	keyHighScore  = "high-score"
	keyLevel      = "level"
	keyPlaySounds = "play-sounds"
)

// SQLite stores preferences and finished games in a SQLite file
type SQLite struct {
	db           *sql.DB
	defaultLevel int
}

// OpenSQLite opens (and creates if needed) the database at path
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, defaultLevel: config.DefaultLevel}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			played_at INTEGER NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) put(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) getInt(key string, def int) (int, error) {
	value, ok, err := s.get(key)
	if err != nil || !ok {
		return def, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def, nil
	}
	return n, nil
}

// HighScore returns the stored high score, 0 if none
func (s *SQLite) HighScore() (int, error) {
	return s.getInt(keyHighScore, 0)
}

// SetHighScore stores the high score
func (s *SQLite) SetHighScore(score int) error {
	return s.put(keyHighScore, strconv.Itoa(score))
}

// Level returns the stored level, the default level when unset or invalid
func (s *SQLite) Level() (int, error) {
	level, err := s.getInt(keyLevel, s.defaultLevel)
	if err != nil {
		return s.defaultLevel, err
	}
	if !config.IsValidLevel(level) {
		return s.defaultLevel, nil
	}
	return level, nil
}

// SetDefaultLevel sets the level reported while no level is stored.
// Invalid levels are ignored.
func (s *SQLite) SetDefaultLevel(level int) {
	if config.IsValidLevel(level) {
		s.defaultLevel = level
	}
}

// SetLevel stores level if it is valid
func (s *SQLite) SetLevel(level int) error {
	if !config.IsValidLevel(level) {
		return nil
	}
	return s.put(keyLevel, strconv.Itoa(level))
}

// PlaySounds returns the sound preference, true when unset
func (s *SQLite) PlaySounds() (bool, error) {
	value, ok, err := s.get(keyPlaySounds)
	if err != nil || !ok {
		return true, err
	}
	play, err := strconv.ParseBool(value)
	if err != nil {
		return true, nil
	}
	return play, nil
}

// SetPlaySounds stores the sound preference
func (s *SQLite) SetPlaySounds(play bool) error {
	return s.put(keyPlaySounds, strconv.FormatBool(play))
}

// RecordScore stores a finished game
func (s *SQLite) RecordScore(entry game.ScoreEntry) error {
	_, err := s.db.Exec(`INSERT INTO scores (score, level, played_at) VALUES (?, ?, ?)`,
		entry.Score, entry.Level, entry.Date.Unix())
	if err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}
	return nil
}

// TopScores returns the best games, highest score first
func (s *SQLite) TopScores(limit int) ([]game.ScoreEntry, error) {
	rows, err := s.db.Query(`SELECT score, level, played_at FROM scores
		ORDER BY score DESC, played_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var entries []game.ScoreEntry
	for rows.Next() {
		var e game.ScoreEntry
		var playedAt int64
		if err := rows.Scan(&e.Score, &e.Level, &playedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		e.Date = time.Unix(playedAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

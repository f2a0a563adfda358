package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Settings holds the runtime options shared by the commands
type Settings struct {
	DBPath     string // SQLite file for preferences and scores
	RecordDir  string // Directory for JSONL game records, empty disables recording
	ListenAddr string // Websocket server address
	Seed       uint64 // Random seed, 0 picks one from the clock
	Level      int    // Level used when no stored preference exists
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		DBPath:     "data/snake.db",
		RecordDir:  "",
		ListenAddr: ":8080",
		Seed:       0,
		Level:      DefaultLevel,
	}
}

// LoadSettings reads SNAKE_* variables from the environment. Files are loaded
// with godotenv first; a missing file is not an error.
func LoadSettings(envFiles ...string) (Settings, error) {
	s := DefaultSettings()

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return s, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	if v := os.Getenv("SNAKE_DB_PATH"); v != "" {
		s.DBPath = v
	}
	if v := os.Getenv("SNAKE_RECORD_DIR"); v != "" {
		s.RecordDir = v
	}
	if v := os.Getenv("SNAKE_LISTEN_ADDR"); v != "" {
		s.ListenAddr = v
	}
	if v := os.Getenv("SNAKE_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return s, fmt.Errorf("invalid SNAKE_SEED %q: %w", v, err)
		}
		s.Seed = seed
	}
	if v := os.Getenv("SNAKE_LEVEL"); v != "" {
		level, err := strconv.Atoi(v)
		if err != nil || !IsValidLevel(level) {
			return s, fmt.Errorf("invalid SNAKE_LEVEL %q", v)
		}
		s.Level = level
	}

	return s, nil
}

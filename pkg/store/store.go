package store

import (
	"github.com/vanillaSlice/Snake/pkg/config"
	"github.com/vanillaSlice/Snake/pkg/game"
)

// Store is what the commands need from a backend
type Store interface {
	game.ScoreStore
	game.SettingsStore
	SetDefaultLevel(level int)
	Close() error
}

// Open returns the SQLite store at settings.DBPath, or a memory store when
// the path is empty. settings.Level is used until a level is stored.
func Open(settings config.Settings) (Store, error) {
	var s Store
	if settings.DBPath == "" {
		s = NewMemory()
	} else {
		db, err := OpenSQLite(settings.DBPath)
		if err != nil {
			return nil, err
		}
		s = db
	}
	s.SetDefaultLevel(settings.Level)
	return s, nil
}

package store

import (
	"sort"
	"sync"

	"github.com/vanillaSlice/Snake/pkg/config"
	"github.com/vanillaSlice/Snake/pkg/game"
)

// Memory keeps preferences and scores in memory. Used when no database is
// configured and in tests.
type Memory struct {
	mu         sync.Mutex
	highScore  int
	level      int
	levelSet   bool
	playSounds bool
	scores     []game.ScoreEntry
}

// NewMemory returns a store with default preferences
func NewMemory() *Memory {
	return &Memory{level: config.DefaultLevel, playSounds: true}
}

func (m *Memory) HighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.highScore, nil
}

func (m *Memory) SetHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.highScore = score
	return nil
}

func (m *Memory) Level() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level, nil
}

// SetLevel ignores invalid levels
func (m *Memory) SetLevel(level int) error {
	if !config.IsValidLevel(level) {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = level
	m.levelSet = true
	return nil
}

// SetDefaultLevel sets the level reported until SetLevel is called
func (m *Memory) SetDefaultLevel(level int) {
	if !config.IsValidLevel(level) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.levelSet {
		m.level = level
	}
}

// Close is a no-op
func (m *Memory) Close() error { return nil }

func (m *Memory) PlaySounds() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playSounds, nil
}

func (m *Memory) SetPlaySounds(play bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playSounds = play
	return nil
}

func (m *Memory) RecordScore(entry game.ScoreEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, entry)
	return nil
}

func (m *Memory) TopScores(limit int) ([]game.ScoreEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]game.ScoreEntry, len(m.scores))
	copy(entries, m.scores)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

package game

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/vanillaSlice/Snake/pkg/config"
)

// SessionState is the screen-level state driven by World events
type SessionState int

const (
	Running SessionState = iota
	Paused
	EnteringGameOver
	GameOver
)

func (s SessionState) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case EnteringGameOver:
		return "entering-game-over"
	case GameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// SessionOptions configures a Session. Zero values fall back to defaults.
type SessionOptions struct {
	Grid     *Grid
	Seed     uint64
	Scores   ScoreStore
	Settings SettingsStore
	Recorder *GameRecorder
}

// Session runs rounds of a World and persists their outcome
type Session struct {
	world    *World
	grid     Grid
	seed     uint64
	scores   ScoreStore
	settings SettingsStore
	recorder *GameRecorder

	state        SessionState
	highScore    int
	newHighScore bool
	frame        int
	inputs       []Direction
	lastEvents   []Event
}

// NewSession creates a session and starts the first round
func NewSession(opts SessionOptions) (*Session, error) {
	grid := NewStandardGrid()
	if opts.Grid != nil {
		grid = *opts.Grid
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	s := &Session{
		grid:     grid,
		seed:     seed,
		scores:   opts.Scores,
		settings: opts.Settings,
		recorder: opts.Recorder,
	}

	level, err := s.storedLevel()
	if err != nil {
		return nil, err
	}
	if s.scores != nil {
		if s.highScore, err = s.scores.HighScore(); err != nil {
			return nil, fmt.Errorf("failed to read high score: %w", err)
		}
	}

	s.world = NewWorld(grid, rand.New(rand.NewSource(seed)), level)
	s.state = Running
	s.recorder.RecordStep(StepRecord{
		Kind:    RecordStart,
		Seed:    seed,
		Level:   level,
		Columns: grid.Columns(),
		Rows:    grid.Rows(),
	})
	return s, nil
}

func (s *Session) storedLevel() (int, error) {
	if s.settings == nil {
		return config.DefaultLevel, nil
	}
	level, err := s.settings.Level()
	if err != nil {
		return 0, fmt.Errorf("failed to read level: %w", err)
	}
	if !config.IsValidLevel(level) {
		return config.DefaultLevel, nil
	}
	return level, nil
}

// SetDirection passes the player's intent to the world while running
func (s *Session) SetDirection(d Direction) bool {
	if s.state != Running {
		return false
	}
	s.inputs = append(s.inputs, d)
	return s.world.SetDirection(d)
}

// TogglePause switches between Running and Paused
func (s *Session) TogglePause() {
	switch s.state {
	case Running:
		s.state = Paused
	case Paused:
		s.state = Running
	}
}

// Update advances the world while running or while the death sequence plays.
// Returned events are also kept for the next Snapshot.
func (s *Session) Update(delta time.Duration) ([]Event, error) {
	if s.state != Running && s.state != EnteringGameOver {
		s.lastEvents = nil
		return nil, nil
	}

	s.frame++
	s.world.Update(delta)
	events := s.world.DrainEvents()
	s.recorder.RecordStep(StepRecord{
		Kind:   RecordStep,
		Frame:  s.frame,
		Delta:  delta,
		Inputs: s.inputs,
		Score:  s.world.Score(),
		Events: events,
	})
	s.inputs = nil
	s.lastEvents = events

	for _, e := range events {
		switch e.Kind {
		case EventDying:
			s.state = EnteringGameOver
		case EventDied, EventBoardFull:
			if err := s.finish(); err != nil {
				return events, err
			}
		}
	}
	return events, nil
}

func (s *Session) finish() error {
	s.state = GameOver
	score := s.world.Score()
	if score > s.highScore {
		s.highScore = score
		s.newHighScore = true
	}
	if s.scores == nil {
		return nil
	}
	if s.newHighScore {
		if err := s.scores.SetHighScore(score); err != nil {
			return fmt.Errorf("failed to save high score: %w", err)
		}
	}
	entry := ScoreEntry{Score: score, Level: s.world.Level(), Date: time.Now()}
	if err := s.scores.RecordScore(entry); err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}
	return nil
}

// Restart begins a new round once the current one is over. The level is
// re-read from the settings store.
func (s *Session) Restart() (bool, error) {
	if s.state != GameOver {
		return false, nil
	}
	level, err := s.storedLevel()
	if err != nil {
		return false, err
	}
	s.world.SetLevel(level)
	s.world.Reset()
	s.state = Running
	s.newHighScore = false
	s.inputs = nil
	s.lastEvents = nil
	s.recorder.RecordStep(StepRecord{Kind: RecordRestart, Frame: s.frame, Level: s.world.Level()})
	return true, nil
}

// SetLevel stores the level for the next round. Invalid levels are ignored.
func (s *Session) SetLevel(level int) error {
	if !config.IsValidLevel(level) || s.settings == nil {
		return nil
	}
	if err := s.settings.SetLevel(level); err != nil {
		return fmt.Errorf("failed to save level: %w", err)
	}
	return nil
}

// ToggleSounds flips the stored sound preference and returns the new value
func (s *Session) ToggleSounds() (bool, error) {
	if s.settings == nil {
		return false, nil
	}
	play, err := s.settings.PlaySounds()
	if err != nil {
		return false, fmt.Errorf("failed to read sound setting: %w", err)
	}
	if err := s.settings.SetPlaySounds(!play); err != nil {
		return play, fmt.Errorf("failed to save sound setting: %w", err)
	}
	return !play, nil
}

// TopScores returns the best finished games, if a score store is configured
func (s *Session) TopScores(limit int) ([]ScoreEntry, error) {
	if s.scores == nil {
		return nil, nil
	}
	return s.scores.TopScores(limit)
}

func (s *Session) World() *World       { return s.world }
func (s *Session) State() SessionState { return s.state }
func (s *Session) Seed() uint64        { return s.seed }
func (s *Session) HighScore() int      { return s.highScore }
func (s *Session) NewHighScore() bool  { return s.newHighScore }
func (s *Session) IsGameOver() bool    { return s.state == GameOver }

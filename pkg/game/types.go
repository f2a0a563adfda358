package game

import (
	"errors"
	"time"
)

// ErrBoardFull is returned when no free cell is left for placement
var ErrBoardFull = errors.New("game: board is full")

// Point represents a cell coordinate on the grid
type Point struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

// Direction is one of the four movement directions
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Delta returns the one-cell offset for the direction (Y grows downwards)
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 1, Y: 0}
	}
}

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// ParseDirection maps "up", "right", "down" and "left" to a Direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "right":
		return Right, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	}
	return Right, false
}

// SnakeState is the life cycle state of the snake
type SnakeState int

const (
	Alive SnakeState = iota
	Dying
	Dead
)

func (s SnakeState) String() string {
	switch s {
	case Alive:
		return "alive"
	case Dying:
		return "dying"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// Rand is the random source used for placement
type Rand interface {
	Intn(n int) int
}

// EventKind identifies what happened during an update
type EventKind string

const (
	EventAteFood      EventKind = "ate-food"
	EventAteBonus     EventKind = "ate-bonus"
	EventBonusSpawned EventKind = "bonus-spawned"
	EventBonusExpired EventKind = "bonus-expired"
	EventDying        EventKind = "dying"
	EventDied         EventKind = "died"
	EventBoardFull    EventKind = "board-full"
)

// Event is emitted by World for the presentation layer. Amount carries the
// score delta for pickups.
type Event struct {
	Kind   EventKind `json:"kind" msgpack:"kind"`
	Pos    Point     `json:"pos" msgpack:"pos"`
	Amount int       `json:"amount,omitempty" msgpack:"amount,omitempty"`
}

// ScoreEntry is one finished game
type ScoreEntry struct {
	Score int       `json:"score"`
	Level int       `json:"level"`
	Date  time.Time `json:"date"`
}

// ScoreStore persists the high score and finished games
type ScoreStore interface {
	HighScore() (int, error)
	SetHighScore(score int) error
	RecordScore(entry ScoreEntry) error
	TopScores(limit int) ([]ScoreEntry, error)
}

// SettingsStore persists the player's preferences
type SettingsStore interface {
	Level() (int, error)
	SetLevel(level int) error
	PlaySounds() (bool, error)
	SetPlaySounds(play bool) error
}

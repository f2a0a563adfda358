package game

import (
	"time"

	"github.com/vanillaSlice/Snake/pkg/config"
)

// Snake is the player's body. Segments[0] is the head.
type Snake struct {
	grid     Grid
	spawn    Point
	segments []Point

	direction Direction // committed for the current tick
	pending   Direction // applied at the next tick

	state         SnakeState
	deathProgress int
	deathElapsed  time.Duration
}

// NewSnake creates a single-segment snake at spawn heading right
func NewSnake(grid Grid, spawn Point) *Snake {
	s := &Snake{grid: grid, spawn: grid.Wrap(spawn)}
	s.Reset()
	return s
}

// Reset restores the snake to its spawn state
func (s *Snake) Reset() {
	s.segments = []Point{s.spawn}
	s.direction = Right
	s.pending = Right
	s.state = Alive
	s.deathProgress = 0
	s.deathElapsed = 0
}

// SetDirection requests a direction for the next tick. A reversal of the
// committed direction is ignored; later requests overwrite earlier ones.
func (s *Snake) SetDirection(d Direction) bool {
	if s.state != Alive || d == s.direction.Opposite() {
		return false
	}
	s.pending = d
	return true
}

// AdvanceOneTick moves the snake one cell and checks for self-collision
func (s *Snake) AdvanceOneTick() {
	if s.state != Alive {
		return
	}

	s.direction = s.pending

	// Tail first so nothing is overwritten before it is read
	for i := len(s.segments) - 1; i > 0; i-- {
		s.segments[i] = s.segments[i-1]
	}

	d := s.direction.Delta()
	head := s.segments[0]
	s.segments[0] = s.grid.Wrap(Point{X: head.X + d.X, Y: head.Y + d.Y})

	if s.IsBodyPartOccupyingPosition(s.segments[0]) {
		s.state = Dying
	}
}

// AddBodyPart appends a segment on top of the tail; the next tick pulls it into line
func (s *Snake) AddBodyPart() {
	s.segments = append(s.segments, s.segments[len(s.segments)-1])
}

// IsHeadOccupyingPosition reports whether the head is on p
func (s *Snake) IsHeadOccupyingPosition(p Point) bool {
	return s.segments[0] == p
}

// IsBodyPartOccupyingPosition reports whether any segment behind the head is on p
func (s *Snake) IsBodyPartOccupyingPosition(p Point) bool {
	for _, seg := range s.segments[1:] {
		if seg == p {
			return true
		}
	}
	return false
}

// IsOccupyingPosition reports whether any segment, head included, is on p
func (s *Snake) IsOccupyingPosition(p Point) bool {
	return s.IsHeadOccupyingPosition(p) || s.IsBodyPartOccupyingPosition(p)
}

// UpdateDeathSequence advances the death animation by real time. The snake
// becomes Dead once config.DeathSteps steps have elapsed.
func (s *Snake) UpdateDeathSequence(delta time.Duration) {
	if s.state != Dying {
		return
	}
	s.deathElapsed += delta
	for s.deathElapsed >= config.DeathStepInterval && s.state == Dying {
		s.deathElapsed -= config.DeathStepInterval
		s.deathProgress++
		if s.deathProgress >= config.DeathSteps {
			s.state = Dead
		}
	}
}

// DeathFlashOn is the blink state of the body while dying
func (s *Snake) DeathFlashOn() bool {
	return s.deathProgress%2 == 0
}

func (s *Snake) IsAlive() bool        { return s.state == Alive }
func (s *Snake) IsDying() bool        { return s.state == Dying }
func (s *Snake) IsDead() bool         { return s.state == Dead }
func (s *Snake) State() SnakeState    { return s.state }
func (s *Snake) DeathProgress() int   { return s.deathProgress }
func (s *Snake) Direction() Direction { return s.direction }
func (s *Snake) Head() Point          { return s.segments[0] }
func (s *Snake) Len() int             { return len(s.segments) }

// PendingDirection is the direction the next tick will commit
func (s *Snake) PendingDirection() Direction { return s.pending }

// Segments returns a copy of the body, head first
func (s *Snake) Segments() []Point {
	out := make([]Point, len(s.segments))
	copy(out, s.segments)
	return out
}

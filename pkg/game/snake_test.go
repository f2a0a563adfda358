package game

import (
	"reflect"
	"testing"

	"github.com/vanillaSlice/Snake/pkg/config"
)

func TestSnakeReversalIgnored(t *testing.T) {
	for _, d := range []Direction{Up, Right, Down, Left} {
		t.Run(d.String(), func(t *testing.T) {
			s := NewSnake(unitGrid(10, 10), Point{5, 5})
			s.direction, s.pending = d, d

			if s.SetDirection(d.Opposite()) {
				t.Errorf("Reversal from %v should be rejected", d)
			}
			if s.PendingDirection() != d {
				t.Errorf("Pending direction changed to %v", s.PendingDirection())
			}

			turn := (d + 1) % 4
			if !s.SetDirection(turn) {
				t.Errorf("Turn from %v to %v should be accepted", d, turn)
			}
			if !s.SetDirection(d) {
				t.Errorf("Keeping direction %v should be accepted", d)
			}
		})
	}
}

func TestSnakeLastRequestWins(t *testing.T) {
	s := NewSnake(unitGrid(10, 10), Point{5, 5})
	s.SetDirection(Up)
	s.SetDirection(Down)
	s.AdvanceOneTick()

	if s.Direction() != Down || s.Head() != (Point{5, 6}) {
		t.Errorf("Expected to move down to (5,6), got %v at %v", s.Direction(), s.Head())
	}
}

// TestSnakeQuickDoubleTurn checks reversal is judged against the committed direction
func TestSnakeQuickDoubleTurn(t *testing.T) {
	s := NewSnake(unitGrid(10, 10), Point{5, 5})
	s.SetDirection(Up)
	if s.SetDirection(Left) {
		t.Error("Left should still be a reversal of the committed Right")
	}
	s.AdvanceOneTick()
	if !s.SetDirection(Left) {
		t.Error("Left should be accepted once Up is committed")
	}
}

func TestSnakeWrapsAllEdges(t *testing.T) {
	g := unitGrid(5, 4)
	tests := []struct {
		name  string
		start Point
		dir   Direction
		want  Point
	}{
		{"right edge", Point{4, 2}, Right, Point{0, 2}},
		{"left edge", Point{0, 2}, Left, Point{4, 2}},
		{"top edge", Point{2, 0}, Up, Point{2, 3}},
		{"bottom edge", Point{2, 3}, Down, Point{2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnake(g, tt.start)
			s.direction, s.pending = tt.dir, tt.dir
			s.AdvanceOneTick()
			if s.Head() != tt.want {
				t.Errorf("Expected head at %v, got %v", tt.want, s.Head())
			}
			if !s.IsAlive() {
				t.Error("Wrapping should not kill the snake")
			}
		})
	}
}

// TestSnakeFollowTheLeader checks that every segment takes the place of the one ahead
func TestSnakeFollowTheLeader(t *testing.T) {
	s := NewSnake(unitGrid(20, 20), Point{5, 5})
	for i := 0; i < 4; i++ {
		s.AddBodyPart()
		s.AdvanceOneTick()
	}

	want := []Point{{9, 5}, {8, 5}, {7, 5}, {6, 5}, {5, 5}}
	if got := s.Segments(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}

	s.SetDirection(Down)
	s.AdvanceOneTick()
	want = []Point{{9, 6}, {9, 5}, {8, 5}, {7, 5}, {6, 5}}
	if got := s.Segments(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v after turning, got %v", want, got)
	}
}

func TestSnakeAddBodyPartStacksOnTail(t *testing.T) {
	s := NewSnake(unitGrid(10, 10), Point{3, 3})
	s.AddBodyPart()
	if s.Len() != 2 {
		t.Fatalf("Expected length 2, got %d", s.Len())
	}
	segs := s.Segments()
	if segs[0] != segs[1] {
		t.Errorf("New part should sit on the tail, got %v", segs)
	}

	s.AdvanceOneTick()
	if !s.IsAlive() {
		t.Error("A freshly grown snake should not collide with its stacked tail")
	}
}

func TestSnakeSelfCollision(t *testing.T) {
	s := NewSnake(unitGrid(20, 20), Point{5, 5})
	for i := 0; i < 4; i++ {
		s.AddBodyPart()
		s.AdvanceOneTick()
	}

	for _, d := range []Direction{Down, Left} {
		s.SetDirection(d)
		s.AdvanceOneTick()
		if !s.IsAlive() {
			t.Fatalf("Snake died early after moving %v", d)
		}
	}
	s.SetDirection(Up)
	s.AdvanceOneTick()

	if !s.IsDying() {
		t.Fatalf("Expected Dying after hitting the body, got %v", s.State())
	}
	if s.IsDead() {
		t.Error("Collision should never go straight to Dead")
	}
	if s.SetDirection(Right) {
		t.Error("Dying snake should ignore direction changes")
	}

	head := s.Head()
	s.AdvanceOneTick()
	if s.Head() != head {
		t.Error("Dying snake should not move")
	}

	s.UpdateDeathSequence(config.DeathStepInterval * (config.DeathSteps - 1))
	if !s.IsDying() {
		t.Fatalf("Expected still Dying after %d steps", config.DeathSteps-1)
	}
	s.UpdateDeathSequence(config.DeathStepInterval)
	if !s.IsDead() {
		t.Errorf("Expected Dead after %d steps, got %v", config.DeathSteps, s.State())
	}
	t.Logf("Death progress: %d", s.DeathProgress())
}

func TestSnakeReset(t *testing.T) {
	s := NewSnake(unitGrid(10, 10), Point{2, 2})
	s.AddBodyPart()
	s.SetDirection(Down)
	s.AdvanceOneTick()
	s.state = Dying

	s.Reset()
	if s.Len() != 1 || s.Head() != (Point{2, 2}) {
		t.Errorf("Expected single segment at spawn, got %v", s.Segments())
	}
	if s.Direction() != Right || !s.IsAlive() || s.DeathProgress() != 0 {
		t.Errorf("Expected alive and heading right, got %v %v", s.State(), s.Direction())
	}
}

func TestSnakeOccupancy(t *testing.T) {
	s := NewSnake(unitGrid(10, 10), Point{1, 1})
	s.AddBodyPart()
	s.AdvanceOneTick()

	if !s.IsHeadOccupyingPosition(Point{2, 1}) || s.IsBodyPartOccupyingPosition(Point{2, 1}) {
		t.Error("Head should be at (2,1) and not count as body")
	}
	if !s.IsBodyPartOccupyingPosition(Point{1, 1}) || !s.IsOccupyingPosition(Point{1, 1}) {
		t.Error("Body should be at (1,1)")
	}
	if s.IsOccupyingPosition(Point{5, 5}) {
		t.Error("(5,5) should be free")
	}
}

package game

import (
	"errors"
	"testing"
)

// seqRand returns queued values (mod n) and 0 once the queue is empty
type seqRand struct {
	vals []int
	next int
}

func (r *seqRand) Intn(n int) int {
	if r.next >= len(r.vals) {
		return 0
	}
	v := r.vals[r.next]
	r.next++
	return v % n
}

func unitGrid(columns, rows int) Grid {
	return NewGrid(Bounds{Width: float64(columns), Height: float64(rows)}, 1, 1)
}

// ticks runs n whole ticks on w
func ticks(w *World, n int) []Event {
	var events []Event
	for i := 0; i < n; i++ {
		w.Update(w.TickInterval())
		events = append(events, w.DrainEvents()...)
	}
	return events
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// placeSnake overwrites the body of w's snake, head first
func placeSnake(w *World, dir Direction, segments ...Point) {
	w.snake.segments = append([]Point(nil), segments...)
	w.snake.direction = dir
	w.snake.pending = dir
}

type fakeScores struct {
	high    int
	entries []ScoreEntry
	saves   int
	err     error
}

func (f *fakeScores) HighScore() (int, error) { return f.high, f.err }

func (f *fakeScores) SetHighScore(score int) error {
	f.high = score
	f.saves++
	return f.err
}

func (f *fakeScores) RecordScore(entry ScoreEntry) error {
	f.entries = append(f.entries, entry)
	return f.err
}

func (f *fakeScores) TopScores(limit int) ([]ScoreEntry, error) {
	if limit < len(f.entries) {
		return f.entries[:limit], f.err
	}
	return f.entries, f.err
}

type fakeSettings struct {
	level  int
	sounds bool
}

func (f *fakeSettings) Level() (int, error)       { return f.level, nil }
func (f *fakeSettings) PlaySounds() (bool, error) { return f.sounds, nil }

func (f *fakeSettings) SetLevel(level int) error {
	f.level = level
	return nil
}

func (f *fakeSettings) SetPlaySounds(play bool) error {
	f.sounds = play
	return nil
}

var errStore = errors.New("store unavailable")

func mustSession(t *testing.T, opts SessionOptions) *Session {
	t.Helper()
	s, err := NewSession(opts)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return s
}

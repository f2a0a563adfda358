package game

import (
	"testing"

	"github.com/vanillaSlice/Snake/pkg/config"
)

// bonusWorld returns a level 9 world whose snake eats five foods along row 0.
// The fifth food moves to (10,10) and the bonus spawns at bonus.
func bonusWorld(t *testing.T, bonus Point) *World {
	t.Helper()
	vals := []int{1, 0, 2, 0, 3, 0, 4, 0, 5, 0, 10, 10, bonus.X, bonus.Y}
	w := NewWorld(unitGrid(20, 20), &seqRand{vals: vals}, config.MaxLevel)

	events := ticks(w, config.BonusInterval)
	if w.EatenCount() != config.BonusInterval {
		t.Fatalf("Expected %d foods eaten, got %d", config.BonusInterval, w.EatenCount())
	}
	if !hasEvent(events, EventBonusSpawned) {
		t.Fatalf("Expected the bonus to spawn with the fifth food, got %v", events)
	}
	if !w.IsBonusFoodShowing() || w.BonusFood().Pos != bonus {
		t.Fatalf("Expected bonus showing at %v, got %+v", bonus, w.BonusFood())
	}
	return w
}

func TestBonusFoodExpires(t *testing.T) {
	w := bonusWorld(t, Point{15, 15})
	score := w.Score()

	ticks(w, config.BonusFoodTicks-1)
	if !w.IsBonusFoodShowing() || w.BonusFood().RemainingTicks != 1 {
		t.Fatalf("Expected 1 tick left, got %d", w.BonusFood().RemainingTicks)
	}

	if w.NextBonusThreshold() != config.BonusInterval {
		t.Errorf("Threshold should only advance on expiry, got %d", w.NextBonusThreshold())
	}

	events := ticks(w, 1)
	if w.IsBonusFoodShowing() {
		t.Errorf("Bonus should be hidden after %d ticks", config.BonusFoodTicks)
	}
	if !hasEvent(events, EventBonusExpired) {
		t.Errorf("Expected a bonus-expired event, got %v", events)
	}
	if w.BonusFood().IsSpawned() {
		t.Error("Expired bonus should be removed")
	}
	if w.NextBonusThreshold() != 2*config.BonusInterval {
		t.Errorf("Expected threshold %d, got %d", 2*config.BonusInterval, w.NextBonusThreshold())
	}
	if w.Score() != score {
		t.Errorf("Expiry should not change the score, got %d", w.Score())
	}

	if events := ticks(w, 3); hasEvent(events, EventBonusSpawned) {
		t.Error("No new bonus before the next threshold")
	}
}

// TestBonusFoodAwardsRemainingTicks eats the bonus after five countdown ticks
func TestBonusFoodAwardsRemainingTicks(t *testing.T) {
	w := bonusWorld(t, Point{11, 0})
	score := w.Score()
	length := w.Snake().Len()

	ticks(w, 5)
	if w.BonusFood().RemainingTicks != 15 {
		t.Fatalf("Expected 15 ticks left, got %d", w.BonusFood().RemainingTicks)
	}

	events := ticks(w, 1)
	var ate *Event
	for i := range events {
		if events[i].Kind == EventAteBonus {
			ate = &events[i]
		}
	}
	if ate == nil || ate.Amount != 15 {
		t.Fatalf("Expected an ate-bonus event worth 15, got %v", events)
	}
	if w.Score() != score+15 {
		t.Errorf("Expected score %d, got %d", score+15, w.Score())
	}
	if w.Snake().Len() != length+1 {
		t.Errorf("Bonus should grow the snake to %d, got %d", length+1, w.Snake().Len())
	}
	if w.IsBonusFoodShowing() || w.BonusFood().IsSpawned() {
		t.Error("Eaten bonus should be removed")
	}
	if w.NextBonusThreshold() != 2*config.BonusInterval {
		t.Errorf("Expected threshold %d, got %d", 2*config.BonusInterval, w.NextBonusThreshold())
	}
	t.Logf("Score after bonus: %d", w.Score())
}

func TestBonusSkippedWhenNoRoom(t *testing.T) {
	w := NewWorld(unitGrid(3, 1), &seqRand{}, config.MaxLevel)
	placeSnake(w, Right, Point{0, 0}, Point{2, 0})
	w.food.Pos = Point{2, 0}
	w.eatenCount = config.BonusInterval

	w.bonusFood.Despawn()
	w.tick()
	if w.BonusFood().IsSpawned() {
		t.Error("Bonus should not spawn on a full board")
	}
	if w.NextBonusThreshold() != 2*config.BonusInterval {
		t.Errorf("Skipped round should advance the threshold, got %d", w.NextBonusThreshold())
	}
}

// TestBonusCatchesUpPastThreshold spawns the next bonus as soon as the eaten
// count is already past the new threshold when the previous round ends
func TestBonusCatchesUpPastThreshold(t *testing.T) {
	w := NewWorld(unitGrid(20, 20), &seqRand{vals: []int{10, 10, 15, 15}}, config.MaxLevel)
	w.bonusFood = BonusFood{Pos: Point{15, 15}, RemainingTicks: 1, spawned: true}
	w.eatenCount = 2*config.BonusInterval + 2

	events := ticks(w, 1)
	if !hasEvent(events, EventBonusExpired) {
		t.Fatalf("Expected the bonus to expire, got %v", events)
	}
	if w.NextBonusThreshold() != 2*config.BonusInterval {
		t.Fatalf("Expected threshold %d, got %d", 2*config.BonusInterval, w.NextBonusThreshold())
	}

	events = ticks(w, 1)
	if !hasEvent(events, EventBonusSpawned) {
		t.Fatalf("Expected a new bonus on the next tick, got %v", events)
	}
	if !w.IsBonusFoodShowing() || w.BonusFood().Pos != (Point{15, 15}) {
		t.Errorf("Expected bonus showing at (15,15), got %+v", w.BonusFood())
	}
}

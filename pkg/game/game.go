package game

import (
	"time"

	"github.com/vanillaSlice/Snake/pkg/config"
)

// World owns the snake and its pickups and steps them on a fixed tick
type World struct {
	grid      Grid
	rng       Rand
	snake     *Snake
	food      Food
	bonusFood BonusFood

	level           int
	tickInterval    time.Duration
	tickAccumulator time.Duration

	score              int
	eatenCount         int
	nextBonusThreshold int
	boardFull          bool

	events []Event
}

// NewStandardGrid returns the 20x20 play area
func NewStandardGrid() Grid {
	return NewGrid(Bounds{
		X:      config.BoardX,
		Y:      config.BoardY,
		Width:  config.BoardWidth,
		Height: config.BoardHeight,
	}, config.CellSize, config.CellSize)
}

// NewWorld creates a world on grid at the given level
func NewWorld(grid Grid, rng Rand, level int) *World {
	w := &World{
		grid:  grid,
		rng:   rng,
		snake: NewSnake(grid, Point{X: config.SpawnColumn, Y: config.SpawnRow}),
	}
	w.SetLevel(level)
	w.Reset()
	return w
}

// SetLevel sets the level and derives the tick interval; higher levels tick faster
func (w *World) SetLevel(level int) {
	w.level = config.ClampLevel(level)
	w.tickInterval = time.Duration(config.MaxLevel+1-w.level) * config.TickIntervalIncrement
}

// Reset starts a new round at the current level
func (w *World) Reset() {
	w.score = 0
	w.eatenCount = 0
	w.nextBonusThreshold = config.BonusInterval
	w.tickAccumulator = 0
	w.boardFull = false
	w.events = nil
	w.snake.Reset()
	w.bonusFood.Despawn()
	w.relocateFood()
}

// SetDirection forwards the player's intent to the snake
func (w *World) SetDirection(d Direction) bool {
	return w.snake.SetDirection(d)
}

// Update advances the world by delta of real time. Whole tick intervals are
// consumed one tick at a time and the remainder carries over.
func (w *World) Update(delta time.Duration) {
	// Only time after the collision counts towards the death sequence
	deathDelta := delta

	w.tickAccumulator += delta
	for w.tickAccumulator >= w.tickInterval {
		if !w.snake.IsAlive() || w.boardFull {
			w.tickAccumulator = 0
			break
		}
		w.tickAccumulator -= w.tickInterval
		w.tick()
		if !w.snake.IsAlive() {
			deathDelta = w.tickAccumulator
			w.tickAccumulator = 0
			break
		}
	}

	wasDying := w.snake.IsDying()
	w.snake.UpdateDeathSequence(deathDelta)
	if wasDying && w.snake.IsDead() {
		w.emit(Event{Kind: EventDied, Pos: w.snake.Head()})
	}
	w.bonusFood.UpdateFlash(delta)
}

func (w *World) tick() {
	w.snake.AdvanceOneTick()
	head := w.snake.Head()
	if w.snake.IsDying() {
		w.emit(Event{Kind: EventDying, Pos: head})
	}

	if w.food.IsOccupyingPosition(head) {
		w.score += w.level
		w.eatenCount++
		w.emit(Event{Kind: EventAteFood, Pos: head, Amount: w.level})
		w.relocateFood()
		w.snake.AddBodyPart()
	}

	if w.bonusFood.IsOccupyingPosition(head) {
		bonus := w.bonusFood.RemainingTicks
		w.score += bonus
		w.emit(Event{Kind: EventAteBonus, Pos: head, Amount: bonus})
		w.snake.AddBodyPart()
		w.bonusFood.Despawn()
		w.nextBonusThreshold += config.BonusInterval
	}

	switch {
	case w.bonusFood.IsShowing():
		w.bonusFood.TickDown()
		if !w.bonusFood.IsShowing() {
			w.expireBonus()
		}
	case w.bonusFood.IsSpawned():
		w.expireBonus()
	case w.eatenCount >= w.nextBonusThreshold && !w.boardFull:
		if err := w.bonusFood.Spawn(w.grid, w.rng, w.isOccupiedForBonus); err != nil {
			// No room for a bonus round; skip it
			w.nextBonusThreshold += config.BonusInterval
			return
		}
		w.emit(Event{Kind: EventBonusSpawned, Pos: w.bonusFood.Pos})
	}
}

// expireBonus removes an uneaten bonus and schedules the next round
func (w *World) expireBonus() {
	w.emit(Event{Kind: EventBonusExpired, Pos: w.bonusFood.Pos})
	w.bonusFood.Despawn()
	w.nextBonusThreshold += config.BonusInterval
}

func (w *World) relocateFood() {
	if err := w.food.Relocate(w.grid, w.rng, w.isOccupiedForFood); err != nil {
		w.boardFull = true
		w.emit(Event{Kind: EventBoardFull, Pos: w.snake.Head()})
	}
}

func (w *World) isOccupiedForFood(p Point) bool {
	return w.snake.IsOccupyingPosition(p) || w.bonusFood.IsOccupyingPosition(p)
}

func (w *World) isOccupiedForBonus(p Point) bool {
	return w.snake.IsOccupyingPosition(p) || (!w.boardFull && w.food.IsOccupyingPosition(p))
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

// DrainEvents returns the events emitted since the last call and clears them
func (w *World) DrainEvents() []Event {
	events := w.events
	w.events = nil
	return events
}

// IsGameOver reports whether the round has ended, by death or a full board
func (w *World) IsGameOver() bool {
	return w.snake.IsDead() || w.boardFull
}

func (w *World) IsDead() bool                   { return w.snake.IsDead() }
func (w *World) IsBoardFull() bool              { return w.boardFull }
func (w *World) IsBonusFoodShowing() bool       { return w.bonusFood.IsShowing() }
func (w *World) Grid() Grid                     { return w.grid }
func (w *World) Snake() *Snake                  { return w.snake }
func (w *World) Food() Food                     { return w.food }
func (w *World) BonusFood() BonusFood           { return w.bonusFood }
func (w *World) Score() int                     { return w.score }
func (w *World) Level() int                     { return w.level }
func (w *World) TickInterval() time.Duration    { return w.tickInterval }
func (w *World) TickAccumulator() time.Duration { return w.tickAccumulator }
func (w *World) EatenCount() int                { return w.eatenCount }
func (w *World) NextBonusThreshold() int        { return w.nextBonusThreshold }

package game

import (
	"time"

	"github.com/vanillaSlice/Snake/pkg/config"
)

// Food is a single-cell pickup
type Food struct {
	Pos Point
}

// Relocate moves the food to a random cell for which occupied returns false
func (f *Food) Relocate(grid Grid, rng Rand, occupied func(Point) bool) error {
	pos, err := findFreeCell(grid, rng, occupied)
	if err != nil {
		return err
	}
	f.Pos = pos
	return nil
}

// IsOccupyingPosition reports whether the food is on p
func (f Food) IsOccupyingPosition(p Point) bool {
	return f.Pos == p
}

// BonusFood is a pickup that only stays for config.BonusFoodTicks ticks
type BonusFood struct {
	Pos            Point
	RemainingTicks int

	spawned      bool
	flashOn      bool
	flashElapsed time.Duration
}

// Spawn places the bonus food on a free cell and starts its countdown
func (b *BonusFood) Spawn(grid Grid, rng Rand, occupied func(Point) bool) error {
	pos, err := findFreeCell(grid, rng, occupied)
	if err != nil {
		return err
	}
	b.Pos = pos
	b.RemainingTicks = config.BonusFoodTicks
	b.spawned = true
	b.flashOn = true
	b.flashElapsed = 0
	return nil
}

// Despawn removes the bonus food from the board
func (b *BonusFood) Despawn() {
	b.spawned = false
	b.RemainingTicks = 0
	b.flashOn = false
	b.flashElapsed = 0
}

// TickDown consumes one tick of the bonus lifetime
func (b *BonusFood) TickDown() {
	if b.RemainingTicks > 0 {
		b.RemainingTicks--
	}
}

// IsSpawned reports whether the bonus food is on the board, expired or not
func (b BonusFood) IsSpawned() bool {
	return b.spawned
}

// IsShowing reports whether the bonus food can be eaten
func (b BonusFood) IsShowing() bool {
	return b.spawned && b.RemainingTicks > 0
}

// IsOccupyingPosition reports whether a showing bonus food is on p
func (b BonusFood) IsOccupyingPosition(p Point) bool {
	return b.IsShowing() && b.Pos == p
}

// UpdateFlash advances the blink animation. Cosmetic only.
func (b *BonusFood) UpdateFlash(delta time.Duration) {
	if !b.spawned {
		return
	}
	if b.RemainingTicks > config.BonusFlashTicks {
		b.flashOn = true
		b.flashElapsed = 0
		return
	}
	b.flashElapsed += delta
	for b.flashElapsed >= config.BonusFlashInterval {
		b.flashElapsed -= config.BonusFlashInterval
		b.flashOn = !b.flashOn
	}
}

// FlashOn is the blink state used by renderers
func (b BonusFood) FlashOn() bool {
	return b.IsShowing() && b.flashOn
}

// findFreeCell samples random cells and falls back to a row-major scan
func findFreeCell(grid Grid, rng Rand, occupied func(Point) bool) (Point, error) {
	for attempts := 0; attempts < config.MaxPlacementAttempts; attempts++ {
		p := grid.RandomCell(rng)
		if !occupied(p) {
			return p, nil
		}
	}

	for y := 0; y < grid.Rows(); y++ {
		for x := 0; x < grid.Columns(); x++ {
			p := Point{X: x, Y: y}
			if !occupied(p) {
				return p, nil
			}
		}
	}
	return Point{}, ErrBoardFull
}

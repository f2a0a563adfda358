package config

import "time"

// Level settings
const (
	MinLevel     = 1
	MaxLevel     = 9
	DefaultLevel = MinLevel

	// TickIntervalIncrement is the tick interval added per level below MaxLevel
	TickIntervalIncrement = 75 * time.Millisecond
)

// Board geometry in world units (matches the 320x320 play area of the mobile layout)
const (
	BoardX      = 20.0
	BoardY      = 240.0
	BoardWidth  = 320.0
	BoardHeight = 320.0
	CellSize    = 16.0 // 20x20 cells
)

// Spawn cell of the snake head after a reset
const (
	SpawnColumn = 0
	SpawnRow    = 0
)

// Food placement
const (
	MaxPlacementAttempts = 100 // Random samples before falling back to a linear scan
)

// Bonus food settings
const (
	BonusFoodTicks     = 20 // Ticks a bonus food stays on the board
	BonusInterval      = 5  // Foods eaten between bonus rounds
	BonusFlashInterval = 100 * time.Millisecond
	BonusFlashTicks    = 5 // Remaining ticks at which the bonus starts blinking
)

// Death sequence settings
const (
	DeathStepInterval = 150 * time.Millisecond
	DeathSteps        = 8
)

// Front-end loop settings
const (
	BaseTick      = 16 * time.Millisecond // Frame interval (~60 FPS)
	MaxFrameDelta = 250 * time.Millisecond
	RecordBuffer  = 1000 // Frames buffered by the recorder
	TopScoreLimit = 5
)

// Emoji characters for rendering
const (
	CharEmpty = "  " // Two spaces to match emoji width
	CharWall  = "⬜"
	CharHead  = "🟢"
	CharBody  = "🟩"
	CharDying = "💥"
	CharFood  = "🍎"
	CharBonus = "⭐"
)

// IsValidLevel reports whether level is within [MinLevel, MaxLevel]
func IsValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}

// ClampLevel forces level into [MinLevel, MaxLevel]
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

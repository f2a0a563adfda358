package game

// Controller decides the snake's next direction (human or autopilot)
type Controller interface {
	NextDirection(w *World) (Direction, bool)
}

// --- Implementation: Manual Controller (Human) ---

type ManualController struct {
	pending    Direction
	hasPending bool
}

// SetDirection stores the direction set by an input event
func (c *ManualController) SetDirection(d Direction) {
	c.pending = d
	c.hasPending = true
}

// NextDirection hands out the stored direction once
func (c *ManualController) NextDirection(w *World) (Direction, bool) {
	if !c.hasPending {
		return 0, false
	}
	c.hasPending = false
	return c.pending, true
}

// --- Implementation: Heuristic AI Controller ---

// HeuristicController steers toward the bonus food when it is showing,
// otherwise toward the food, never into its own body unless trapped
type HeuristicController struct{}

func (c *HeuristicController) NextDirection(w *World) (Direction, bool) {
	snake := w.Snake()
	if !snake.IsAlive() {
		return 0, false
	}

	target := w.Food().Pos
	if w.IsBonusFoodShowing() {
		target = w.BonusFood().Pos
	}

	grid := w.Grid()
	head := snake.Head()
	current := snake.Direction()

	best := current
	bestScore := -1 << 30
	found := false
	for _, d := range []Direction{current, Up, Right, Down, Left} {
		if d == current.Opposite() {
			continue
		}
		delta := d.Delta()
		next := grid.Wrap(Point{X: head.X + delta.X, Y: head.Y + delta.Y})
		if snake.IsBodyPartOccupyingPosition(next) {
			continue
		}

		// Closer is better; free neighbours break ties so the snake avoids dead ends
		score := -torusDistance(grid, next, target)*10 + freeNeighbours(grid, snake, next)
		if score > bestScore {
			best, bestScore, found = d, score, true
		}
	}
	if !found {
		return current, true
	}
	return best, true
}

func torusDistance(grid Grid, a, b Point) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if w := grid.Columns() - dx; w < dx {
		dx = w
	}
	if h := grid.Rows() - dy; h < dy {
		dy = h
	}
	return dx + dy
}

func freeNeighbours(grid Grid, snake *Snake, p Point) int {
	free := 0
	for _, d := range []Direction{Up, Right, Down, Left} {
		delta := d.Delta()
		if !snake.IsBodyPartOccupyingPosition(grid.Wrap(Point{X: p.X + delta.X, Y: p.Y + delta.Y})) {
			free++
		}
	}
	return free
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package game

import "math"

// Bounds is a rectangle in world units
type Bounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Grid maps world bounds onto a fixed number of cells
type Grid struct {
	bounds     Bounds
	cellWidth  float64
	cellHeight float64
	columns    int
	rows       int
}

// NewGrid creates a grid covering bounds with cells of the given size
func NewGrid(bounds Bounds, cellWidth, cellHeight float64) Grid {
	return Grid{
		bounds:     bounds,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		columns:    int(math.Ceil(bounds.Width / cellWidth)),
		rows:       int(math.Ceil(bounds.Height / cellHeight)),
	}
}

func (g Grid) Bounds() Bounds      { return g.bounds }
func (g Grid) CellWidth() float64  { return g.cellWidth }
func (g Grid) CellHeight() float64 { return g.cellHeight }
func (g Grid) Columns() int        { return g.columns }
func (g Grid) Rows() int           { return g.rows }

// Cells returns the total number of cells
func (g Grid) Cells() int {
	return g.columns * g.rows
}

// ToCell returns the cell containing the world coordinate (x, y)
func (g Grid) ToCell(x, y float64) Point {
	return Point{
		X: int(math.Floor((x - g.bounds.X) / g.cellWidth)),
		Y: int(math.Floor((y - g.bounds.Y) / g.cellHeight)),
	}
}

// CellOrigin returns the world coordinate of the cell's origin corner
func (g Grid) CellOrigin(p Point) (float64, float64) {
	return g.bounds.X + float64(p.X)*g.cellWidth, g.bounds.Y + float64(p.Y)*g.cellHeight
}

// Contains reports whether p is a cell of the grid
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.columns && p.Y >= 0 && p.Y < g.rows
}

// Wrap folds p back onto the grid, leaving one edge re-enters at the opposite edge
func (g Grid) Wrap(p Point) Point {
	return Point{X: wrap(p.X, g.columns), Y: wrap(p.Y, g.rows)}
}

// RandomCell picks a cell uniformly
func (g Grid) RandomCell(rng Rand) Point {
	return Point{X: rng.Intn(g.columns), Y: rng.Intn(g.rows)}
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

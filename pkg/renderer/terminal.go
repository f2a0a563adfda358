package renderer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vanillaSlice/Snake/pkg/config"
	"github.com/vanillaSlice/Snake/pkg/game"
)

// TerminalRenderer handles terminal-based rendering
type TerminalRenderer struct {
	out    io.Writer
	board  [][]int
	buffer strings.Builder
}

// Cell types for the board
const (
	cellEmpty = iota
	cellWall
	cellHead
	cellBody
	cellDying
	cellFood
	cellBonus
)

// NewTerminalRenderer creates a renderer for a columns x rows grid writing to stdout
func NewTerminalRenderer(columns, rows int) *TerminalRenderer {
	return NewTerminalRendererTo(os.Stdout, columns, rows)
}

// NewTerminalRendererTo creates a renderer writing to out
func NewTerminalRendererTo(out io.Writer, columns, rows int) *TerminalRenderer {
	// Pre-allocate board (grid plus a one-cell frame) to reduce GC pressure
	board := make([][]int, rows+2)
	for i := range board {
		board[i] = make([]int, columns+2)
	}

	return &TerminalRenderer{
		out:   out,
		board: board,
	}
}

// clearScreen clears the terminal using ANSI escape codes
func (r *TerminalRenderer) clearScreen() {
	r.buffer.WriteString("\033[H\033[2J\033[3J")
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	fmt.Fprint(r.out, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	fmt.Fprint(r.out, "\033[?25l")
}

// Render draws the snapshot. autopilot only changes the status line.
func (r *TerminalRenderer) Render(snap game.Snapshot, autopilot bool) {
	r.buffer.Reset()
	r.clearScreen()
	r.fillBoard(snap)

	r.buffer.WriteString("\n  🐍 SNAKE 🐍\n")

	autoStr := ""
	if autopilot {
		autoStr = "  |  🤖 AUTO"
	}
	r.buffer.WriteString(fmt.Sprintf("  Score: %d  |  High: %d  |  Level: %d  |  Eaten: %d%s\n",
		snap.Score, snap.HighScore, snap.Level, snap.EatenCount, autoStr))

	if snap.Bonus != nil {
		r.buffer.WriteString(fmt.Sprintf("  %s bonus: %d\n", config.CharBonus, snap.Bonus.RemainingTicks))
	} else {
		r.buffer.WriteString("\n")
	}
	r.buffer.WriteString("\n")

	for _, row := range r.board {
		r.buffer.WriteString("  ")
		for _, cell := range row {
			switch cell {
			case cellEmpty:
				r.buffer.WriteString(config.CharEmpty)
			case cellWall:
				r.buffer.WriteString(config.CharWall)
			case cellHead:
				r.buffer.WriteString(config.CharHead)
			case cellBody:
				r.buffer.WriteString(config.CharBody)
			case cellDying:
				r.buffer.WriteString(config.CharDying)
			case cellFood:
				r.buffer.WriteString(config.CharFood)
			case cellBonus:
				r.buffer.WriteString(config.CharBonus)
			}
		}
		r.buffer.WriteString("\n")
	}

	r.buffer.WriteString("\n  WASD/Arrows move, 1-9 level, O autopilot, M sounds\n")
	r.buffer.WriteString("  P to pause, Q to quit\n")

	switch snap.State {
	case game.Paused.String():
		r.buffer.WriteString("\n  ⏸️  PAUSED - Press P to continue\n")
	case game.GameOver.String():
		if snap.BoardFull {
			r.buffer.WriteString("\n  🏆 BOARD FULL! Press R to restart or Q to quit\n")
		} else {
			r.buffer.WriteString("\n  💀 GAME OVER! Press R to restart or Q to quit\n")
		}
		if snap.NewHighScore {
			r.buffer.WriteString("  🎉 NEW HIGH SCORE!\n")
		}
	}

	fmt.Fprint(r.out, r.buffer.String())
}

// RenderScores prints a leaderboard below the board
func (r *TerminalRenderer) RenderScores(entries []game.ScoreEntry) {
	if len(entries) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString("\n  Top scores:\n")
	for i, e := range entries {
		b.WriteString(fmt.Sprintf("  %d. %5d  (level %d, %s)\n", i+1, e.Score, e.Level, e.Date.Format("2006-01-02")))
	}
	fmt.Fprint(r.out, b.String())
}

func (r *TerminalRenderer) fillBoard(snap game.Snapshot) {
	height := len(r.board)
	width := len(r.board[0])
	for y := range r.board {
		for x := range r.board[y] {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				r.board[y][x] = cellWall
			} else {
				r.board[y][x] = cellEmpty
			}
		}
	}

	// Cells are offset by the frame
	set := func(p game.Point, cell int) {
		if p.X >= 0 && p.X < width-2 && p.Y >= 0 && p.Y < height-2 {
			r.board[p.Y+1][p.X+1] = cell
		}
	}

	if snap.Food != nil {
		set(*snap.Food, cellFood)
	}
	if snap.Bonus != nil && snap.Bonus.FlashOn {
		set(snap.Bonus.Pos, cellBonus)
	}

	dying := snap.SnakeState != game.Alive.String()
	if dying && !snap.DeathFlashOn {
		return
	}
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		switch {
		case dying:
			set(snap.Snake[i], cellDying)
		case i == 0:
			set(snap.Snake[i], cellHead)
		default:
			set(snap.Snake[i], cellBody)
		}
	}
}

package blockfall

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall/engine"
)

const (
	hudWidth  = 18
	hudGap    = 2
	blockRune = '█'
	ghostRune = '░'
)

// layout places the board frame and the HUD panel on the screen.
type layout struct {
	board core.Rect // Frame including the border
	hudX  int
	minW  int
	minH  int
}

func (g *Game) layout() layout {
	cw := max(g.cfg.Board.CellWidth, 1)
	bw := g.cfg.Board.Width*cw + 2
	bh := g.cfg.Board.Height + 2

	l := layout{
		minW: bw + hudGap + hudWidth,
		minH: bh,
	}
	x := max((g.runtime.ScreenW-l.minW)/2, 0)
	y := max((g.runtime.ScreenH-bh)/2, 0)
	l.board = core.NewRect(x, y, bw, bh)
	l.hudX = l.board.Right() + hudGap
	return l
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.eng == nil {
		return
	}

	if g.tooSmall {
		l := g.layout()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", l.minW, l.minH))
		return
	}

	l := g.layout()
	dst.DrawBox(l.board, core.ColorGray)
	g.renderGrid(dst, l)
	if !g.eng.GameOver() {
		g.renderGhost(dst, l)
		g.renderPiece(dst, l, g.eng.Current(), blockRune)
	}
	g.renderHUD(dst, l)

	switch {
	case g.eng.GameOver():
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// drawCell paints one grid cell, cell_width characters wide.
func (g *Game) drawCell(dst *core.Screen, l layout, x, y int, r rune, c core.Color) {
	if y < 0 {
		return
	}
	cw := max(g.cfg.Board.CellWidth, 1)
	sx := l.board.X + 1 + x*cw
	sy := l.board.Y + 1 + y
	for i := 0; i < cw; i++ {
		dst.SetColored(sx+i, sy, r, c)
	}
}

func (g *Game) renderGrid(dst *core.Screen, l layout) {
	grid := g.eng.Grid()
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if c := grid.Cell(x, y); c.Filled {
				g.drawCell(dst, l, x, y, blockRune, c.Color)
			}
		}
	}
}

// renderGhost shows where the current piece would land.
func (g *Game) renderGhost(dst *core.Screen, l layout) {
	d := g.eng.DropDistance()
	if d == 0 {
		return
	}
	g.renderPiece(dst, l, g.eng.Current().Moved(0, d), ghostRune)
}

func (g *Game) renderPiece(dst *core.Screen, l layout, p engine.Piece, r rune) {
	for _, c := range p.Cells() {
		g.drawCell(dst, l, c.X, c.Y, r, p.Color)
	}
}

// renderHUD draws the side panel.
func (g *Game) renderHUD(dst *core.Screen, l layout) {
	x, y := l.hudX, l.board.Y
	dst.DrawTextColored(x, y, strings.ToUpper(g.Title()), core.ColorCyan)
	y += 2

	lines := []string{
		fmt.Sprintf("Score  %d", g.eng.Score()),
		fmt.Sprintf("Lines  %d", g.eng.Lines()),
		fmt.Sprintf("Pieces %d", g.eng.Pieces()),
	}
	if g.mode == ModeMarathon {
		lines = append(lines, fmt.Sprintf("Level  %d", g.displayLevel()))
	}
	lines = append(lines, fmt.Sprintf("Speed  %dms", g.fallEvery*1000/g.runtime.TickRate))
	for _, s := range lines {
		dst.DrawText(x, y, s)
		y++
	}
}

// displayLevel maps the difficulty level onto 1..10.
func (g *Game) displayLevel() int {
	return 1 + int(g.level*9+0.5)
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

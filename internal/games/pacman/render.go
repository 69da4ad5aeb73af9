package pacman

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/mazechase/internal/core"
)

const (
	hudRows    = 2
	footerRows = 1
)

var ghostColors = map[string]core.Color{
	"blinky": core.ColorRed,
	"pinky":  core.ColorPink,
	"inky":   core.ColorCyan,
	"clyde":  core.ColorOrange,
}

// board maps maze cells to screen positions.
type board struct {
	offX, offY int
	cellW      int
	rows, cols int
}

func (b board) at(col, row int) (int, int) {
	return b.offX + col*b.cellW, b.offY + row
}

// RenderSnapshot draws a frame. Cells are two characters wide when the
// screen allows it.
func RenderSnapshot(dst *core.Screen, snap Snapshot) {
	dst.Clear()
	renderHUD(dst, snap)

	b, ok := layoutBoard(dst, snap)
	if !ok {
		needW, needH := snap.Cols, snap.Rows+hudRows+footerRows
		renderOverlay(dst, core.ColorYellow, "Window too small", fmt.Sprintf("Need at least %dx%d", needW, needH))
		return
	}

	renderMaze(dst, b, snap)
	renderFood(dst, b, snap)
	if snap.Phase != PhaseMenu {
		renderGhosts(dst, b, snap)
		renderPlayer(dst, b, snap)
	}
	renderFooter(dst, b, snap)

	switch {
	case snap.Phase == PhaseMenu:
		renderOverlay(dst, core.ColorBrightYellow, "MAZE CHASE", "Press Enter to start")
	case snap.Phase == PhaseGameOver:
		renderOverlay(dst, core.ColorBrightRed, "Game Over", fmt.Sprintf("Score %d  R restart  Esc menu", snap.Score))
	case snap.Phase == PhaseVictory:
		renderOverlay(dst, core.ColorBrightGreen, fmt.Sprintf("Level %d cleared!", snap.Level), "N next level  R restart")
	case snap.Paused:
		renderOverlay(dst, core.ColorWhite, "Paused", "Press P to continue")
	case snap.Respawning:
		x, y := b.at(snap.Cols/2, snap.Rows/2+2)
		text := "READY!"
		dst.DrawTextColor(x-len(text)/2, y, text, core.ColorBrightYellow)
	}
}

func layoutBoard(dst *core.Screen, snap Snapshot) (board, bool) {
	if dst.Height() < snap.Rows+hudRows+footerRows || dst.Width() < snap.Cols {
		return board{}, false
	}
	cellW := 1
	if dst.Width() >= snap.Cols*2 {
		cellW = 2
	}
	return board{
		offX:  (dst.Width() - snap.Cols*cellW) / 2,
		offY:  hudRows,
		cellW: cellW,
		rows:  snap.Rows,
		cols:  snap.Cols,
	}, true
}

func renderHUD(dst *core.Screen, snap Snapshot) {
	lives := strings.Repeat("C ", snap.Lives)
	hud := fmt.Sprintf(" Score: %-6d Level: %-3d Lives: %s", snap.Score, snap.Level, lives)
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)

	if snap.PowerRemainingMs > 0 {
		c := core.ColorBrightBlue
		if snap.PowerWarning {
			c = core.ColorBrightRed
		}
		power := fmt.Sprintf("POWER %4.1fs ", float64(snap.PowerRemainingMs)/1000)
		dst.DrawTextColor(dst.Width()-len(power), 0, power, c)
	}

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

func renderMaze(dst *core.Screen, b board, snap Snapshot) {
	for row, line := range snap.Cells {
		for col, ch := range line {
			if ch != SymbolWall {
				continue
			}
			x, y := b.at(col, row)
			for i := range b.cellW {
				dst.SetColor(x+i, y, '█', core.ColorBlue)
			}
		}
	}
}

func renderFood(dst *core.Screen, b board, snap Snapshot) {
	for _, d := range snap.Dots {
		if d.Visible {
			x, y := b.at(d.Col, d.Row)
			dst.SetColor(x, y, '·', core.ColorWhite)
		}
	}
	// Pellets blink at roughly 4 Hz at 60 fps.
	if (snap.Tick/15)%2 == 1 && snap.Phase == PhasePlaying {
		return
	}
	for _, p := range snap.Pellets {
		if p.Visible {
			x, y := b.at(p.Col, p.Row)
			dst.SetColor(x, y, '●', core.ColorBrightWhite)
		}
	}
}

// screenCell draws an entity in the floored cell, the one collisions and
// turns use, so it never shows inside a wall.
func screenCell(b board, pos core.Vec) (int, int) {
	col, row := pos.Cell()
	return b.at(core.WrapInt(col, b.cols), core.WrapInt(row, b.rows))
}

func renderPlayer(dst *core.Screen, b board, snap Snapshot) {
	glyph := 'c'
	if snap.Player.MouthOpen {
		glyph = 'C'
	}
	c := core.ColorBrightYellow
	if snap.Respawning {
		c = core.ColorGray
	}
	x, y := screenCell(b, snap.Player.Pos)
	dst.SetColor(x, y, glyph, c)
}

func renderGhosts(dst *core.Screen, b board, snap Snapshot) {
	for _, g := range snap.Ghosts {
		glyph, c := 'M', ghostColors[g.Name]
		if c == core.ColorDefault {
			c = core.ColorMagenta
		}
		switch g.Mode() {
		case ModeReturningHome:
			glyph, c = '"', core.ColorWhite
		case ModeFrightened:
			c = core.ColorBrightBlue
			if snap.PowerWarning && (snap.Tick/8)%2 == 0 {
				c = core.ColorBrightWhite
			}
		}
		x, y := screenCell(b, g.Pos)
		dst.SetColor(x, y, glyph, c)
	}
}

func renderFooter(dst *core.Screen, b board, snap Snapshot) {
	var hint string
	switch snap.Phase {
	case PhaseMenu:
		hint = "Enter start  Tab scores  Q quit"
	case PhasePlaying:
		hint = "Arrows/WASD move  P pause  Esc menu  Q quit"
	case PhaseGameOver:
		hint = "R restart  Esc menu  Q quit"
	case PhaseVictory:
		hint = "N next level  R restart  Esc menu"
	}
	dst.DrawTextCentered(b.offY+b.rows, hint, core.ColorGray)
}

// renderOverlay draws a centered box with two lines of text.
func renderOverlay(dst *core.Screen, c core.Color, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	h := 5
	r := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)
	dst.DrawBox(r, c)
	dst.DrawTextCentered(r.Y+1, line1, c)
	dst.DrawTextCentered(r.Y+3, line2, core.ColorDefault)
}

package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/tetristerm/pkg/game"
)

const (
	leftMargin = 2
	topMargin  = 1

	// Each block is drawn two columns wide so it looks square
	blockWidth = 2

	sideMargin = 3
	ghostRune  = '░'
)

// Board is the read-only view of a session the renderer draws
type Board interface {
	Snapshot() *game.Snapshot
}

// Status is the text shown next to the board that the session does not own
type Status struct {
	Nick    string
	Message string
}

var helpLines = []string{
	"←→ h l   move",
	"↓ j      soft drop",
	"space k  hard drop",
	"↑ x w    rotate",
	"z        rotate left",
	"p        pause",
	"enter n  new game",
	"q esc    quit",
}

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range []rune(text) {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawCell draws one board cell. Board row 0 is the bottom row.
func drawCell(s tcell.Screen, left, top, h int, x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || y >= h {
		return
	}

	col := left + 1 + x*blockWidth
	row := top + 1 + (h - 1 - y)
	for i := 0; i < blockWidth; i++ {
		s.SetContent(col+i, row, r, nil, style)
	}
}

func drawBorder(s tcell.Screen, left, top, w, h int, t Theme) {
	style := tcell.StyleDefault.Foreground(t.Border)
	right := left + 1 + w*blockWidth
	bottom := top + 1 + h

	s.SetContent(left, top, tcell.RuneULCorner, nil, style)
	s.SetContent(right, top, tcell.RuneURCorner, nil, style)
	s.SetContent(left, bottom, tcell.RuneLLCorner, nil, style)
	s.SetContent(right, bottom, tcell.RuneLRCorner, nil, style)

	for x := left + 1; x < right; x++ {
		s.SetContent(x, top, tcell.RuneHLine, nil, style)
		s.SetContent(x, bottom, tcell.RuneHLine, nil, style)
	}
	for y := top + 1; y < bottom; y++ {
		s.SetContent(left, y, tcell.RuneVLine, nil, style)
		s.SetContent(right, y, tcell.RuneVLine, nil, style)
	}
}

func drawMatrix(s tcell.Screen, left, top int, snap *game.Snapshot, t Theme) {
	h := snap.H

	drawBorder(s, left, top, snap.W, h, t)

	empty := tcell.StyleDefault.Background(t.Background)
	for y := 0; y < h; y++ {
		for x := 0; x < snap.W; x++ {
			drawCell(s, left, top, h, x, y, ' ', empty)
		}
	}

	for _, c := range snap.Blocks {
		style := empty.Foreground(t.BlockColor(c.Block))
		drawCell(s, left, top, h, c.X, c.Y, c.Block.Rune(), style)
	}

	for _, c := range snap.Ghost {
		style := empty.Foreground(t.BlockColor(c.Block))
		drawCell(s, left, top, h, c.X, c.Y, ghostRune, style)
	}

	for _, c := range snap.Piece {
		style := empty.Foreground(t.BlockColor(c.Block))
		drawCell(s, left, top, h, c.X, c.Y, c.Block.Rune(), style)
	}
}

func statusText(state game.State) string {
	switch state {
	case game.StateNotStarted:
		return "Press Enter to start"
	case game.StatePaused:
		return "PAUSED"
	case game.StateGameOver:
		return "GAME OVER"
	default:
		return ""
	}
}

func drawSide(s tcell.Screen, left, top int, snap *game.Snapshot, st Status, t Theme) {
	labelStyle := tcell.StyleDefault.Foreground(t.Label)
	textStyle := tcell.StyleDefault.Foreground(t.Text)
	alertStyle := tcell.StyleDefault.Foreground(t.Alert)

	drawText(s, left, top, labelStyle, st.Nick)

	drawText(s, left, top+2, textStyle, fmt.Sprintf("Score: %d", snap.Score))
	drawText(s, left, top+3, textStyle, fmt.Sprintf("Level: %d", snap.Level+1))

	best := "-"
	if snap.Best >= 0 {
		best = fmt.Sprint(snap.Best)
	}
	drawText(s, left, top+4, textStyle, "Best:  "+best)

	drawText(s, left, top+6, alertStyle, statusText(snap.State))
	if snap.State == game.StateGameOver {
		drawText(s, left, top+7, textStyle, "Press Enter to play again")
	}

	drawText(s, left, top+8, labelStyle, st.Message)

	for i, line := range helpLines {
		drawText(s, left, top+10+i, labelStyle, line)
	}
}

// Render draws the session with its top left corner at x, y
func Render(s tcell.Screen, x, y int, b Board, st Status, t Theme) {
	left, top := x+leftMargin, y+topMargin
	snap := b.Snapshot()

	drawMatrix(s, left, top, snap, t)
	drawSide(s, left+2+snap.W*blockWidth+sideMargin, top, snap, st, t)
}

package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/termtris/pkg/game"
	"github.com/qnkhuat/termtris/pkg/mino"
)

const (
	leftMargin = 2
	topMargin  = 1

	// Each cell is drawn two columns wide so blocks come out square.
	cellWidth = 2

	sideWidth  = 16
	sideHeight = 15
)

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range []rune(text) {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawRune places a rune at the specified coordinates with the provided style
func drawRune(s tcell.Screen, x, y int, style tcell.Style, r rune) {
	s.SetContent(x, y, r, nil, style)
}

// DefStyle is the default style for tcell rendering
var DefStyle = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)

// Size returns the screen area needed to draw a w by h matrix.
func Size(w, h int) (int, int) {
	return leftMargin + w*cellWidth + 2 + 2 + sideWidth, topMargin + max(h+2, sideHeight)
}

// drawBlock draws one matrix cell
func drawBlock(s tcell.Screen, x, y int, b mino.Block, t Theme) {
	if b == mino.BlockNone {
		drawText(s, x, y, DefStyle, "  ")
		return
	}

	style := DefStyle.Foreground(t.BlockColor(b))
	if b.IsGhost() {
		style = style.Dim(true)
	}

	r := b.Rune()
	drawRune(s, x, y, style, r)
	drawRune(s, x+1, y, style, r)
}

// drawBorder draws a box around the interior at (x, y) sized w by h
func drawBorder(s tcell.Screen, x, y, w, h int, color tcell.Color) {
	style := DefStyle.Foreground(color)

	for i := 0; i < w; i++ {
		drawRune(s, x+1+i, y, style, tcell.RuneHLine)
		drawRune(s, x+1+i, y+h+1, style, tcell.RuneHLine)
	}
	for i := 0; i < h; i++ {
		drawRune(s, x, y+1+i, style, tcell.RuneVLine)
		drawRune(s, x+w+1, y+1+i, style, tcell.RuneVLine)
	}

	drawRune(s, x, y, style, tcell.RuneULCorner)
	drawRune(s, x+w+1, y, style, tcell.RuneURCorner)
	drawRune(s, x, y+h+1, style, tcell.RuneLLCorner)
	drawRune(s, x+w+1, y+h+1, style, tcell.RuneLRCorner)
}

// drawMatrix draws the visible rows of the matrix with the falling piece and
// its ghost on top
func drawMatrix(s tcell.Screen, x, y int, snap *game.Snapshot, t Theme) {
	border := t.Border
	if snap.Danger {
		border = t.Danger
	}
	drawBorder(s, x, y, snap.W*cellWidth, snap.H, border)

	for row := 0; row < snap.H; row++ {
		for col := 0; col < snap.W; col++ {
			b := snap.Block(snap.B+row, col)
			drawBlock(s, x+1+col*cellWidth, y+1+row, b, t)
		}
	}
}

// drawNext draws rotation 0 of the upcoming piece
func drawNext(s tcell.Screen, x, y int, k mino.Kind, t Theme) {
	drawText(s, x, y, DefStyle.Foreground(t.Label), "Next")

	for row := 0; row < 2; row++ {
		drawText(s, x, y+1+row, DefStyle, "        ")
	}
	if !k.Valid() {
		return
	}

	minRow, minCol, _, _ := k.Bounds(mino.Rotation0)
	for _, p := range k.Offsets(mino.Rotation0) {
		drawBlock(s, x+(p.Col-minCol)*cellWidth, y+1+p.Row-minRow, k.Block(), t)
	}
}

// drawStats displays the player name and the scoring HUD
func drawStats(s tcell.Screen, x, y int, snap *game.Snapshot, t Theme) {
	labelStyle := DefStyle.Foreground(t.Label)
	valueStyle := DefStyle.Foreground(t.Value)

	stats := []struct {
		label string
		value string
	}{
		{"Player", snap.Name},
		{"Score", fmt.Sprintf("%d", snap.Score)},
		{"Lines", fmt.Sprintf("%d", snap.Lines)},
		{"Level", fmt.Sprintf("%d", snap.Level)},
		{"Speed", fmt.Sprintf("%dms", snap.Interval.Milliseconds())},
	}

	for i, stat := range stats {
		drawText(s, x, y+i*2, labelStyle, stat.label)
		drawText(s, x, y+i*2+1, valueStyle, fmt.Sprintf("%-*s", sideWidth, stat.value))
	}

	y += len(stats) * 2
	if snap.Danger && snap.State != game.StateGameOver {
		drawText(s, x, y, DefStyle.Foreground(t.Danger).Bold(true), "DANGER")
	} else {
		drawText(s, x, y, DefStyle, "      ")
	}
}

// drawGameOver writes the game over banner across the middle of the matrix
func drawGameOver(s tcell.Screen, x, y int, snap *game.Snapshot, t Theme) {
	style := DefStyle.Foreground(t.GameOver).Bold(true)

	lines := []string{"GAME OVER", "press any key"}
	width := snap.W * cellWidth
	mid := y + 1 + snap.H/2 - 1
	for i, line := range lines {
		if len(line) > width {
			line = line[:width]
		}
		drawText(s, x+1+(width-len(line))/2, mid+i, style, line)
	}
}

// Render draws the snapshot with its top left corner at (x, y)
func Render(s tcell.Screen, x, y int, snap *game.Snapshot, t Theme) {
	x += leftMargin
	y += topMargin

	drawMatrix(s, x, y, snap, t)

	side := x + snap.W*cellWidth + 2 + 2
	drawNext(s, side, y, snap.Next, t)
	drawStats(s, side, y+4, snap, t)

	if snap.State == game.StateGameOver {
		drawGameOver(s, x, y, snap, t)
	}
}

// DrawMsgLabel displays a single message at (x, y)
func DrawMsgLabel(s tcell.Screen, x, y int, msg string, t Theme) {
	drawText(s, x+leftMargin, y+topMargin, DefStyle.Foreground(t.Label), msg)
}

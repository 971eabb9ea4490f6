package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/bingo/internal/card"
	"github.com/Makepad-fr/bingo/internal/model"
)

// CellWidth caps how much of an entry a grid cell shows.
const CellWidth = 16

// GridLines lays the card out row by row. Each cell is numbered from 1 so
// `bingo mark <n>` can address it.
func GridLines(c card.Card, marks model.Marks) []string {
	t := Current()
	size := c.Size()
	width := 0
	for _, sq := range c.Squares {
		width = max(width, lipgloss.Width(Truncate(sq, CellWidth)))
	}

	var lines []string
	for row := 0; row*size < len(c.Squares); row++ {
		cells := make([]string, 0, size)
		for col := 0; col < size; col++ {
			i := row*size + col
			if i >= len(c.Squares) {
				break
			}
			text := Truncate(c.Squares[i], CellWidth)
			text += strings.Repeat(" ", width-lipgloss.Width(text))
			box, color := t.BoxUnchecked, t.Muted
			if marks.Marked(i) {
				box, color = t.BoxChecked, t.Success
			}
			cells = append(cells, fmt.Sprintf("%s %s %s", C(dim, fmt.Sprintf("%2d", i+1)), C(color, box), text))
		}
		lines = append(lines, strings.Join(cells, "  "))
	}
	return lines
}

// Truncate shortens s to at most n visible cells, ending in "…".
func Truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

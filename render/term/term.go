// Package term prints boards as coloured text for headless runs.
package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/plus3/blockfall/board"
)

const (
	emptyCell  = "  "
	filledCell = "▓▓"
	activeCell = "[]"
)

// WriteBoard draws the grid inside a border, overlays the active piece, and
// ends with the score and state.
func WriteBoard(w io.Writer, b *board.Board) error {
	active := make(map[[2]int]bool, 4)
	if cells, ok := b.ActiveCells(); ok && b.State() == board.Running {
		for _, c := range cells {
			active[c] = true
		}
	}

	var sb strings.Builder
	border := "+" + strings.Repeat("-", b.Width()*2) + "+\n"
	sb.WriteString(border)
	for row := 0; row < b.Height(); row++ {
		sb.WriteString("|")
		for col := 0; col < b.Width(); col++ {
			sb.WriteString(cell(b, row, col, active[[2]int{row, col}]))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	fmt.Fprintf(&sb, "Score: %d (%s)\n", b.Score(), b.State())

	_, err := io.WriteString(w, sb.String())
	return err
}

func cell(b *board.Board, row, col int, active bool) string {
	if active {
		p, _ := b.Active()
		return paint(p.Kind.ColorIndex(), activeCell)
	}
	value := b.Cell(row, col)
	if value == 0 {
		return emptyCell
	}
	return paint(value, filledCell)
}

func paint(value int, s string) string {
	rgb, ok := board.ColorOf(value)
	if !ok {
		return s
	}
	return color.RGB(int(rgb[0]), int(rgb[1]), int(rgb[2])).Sprint(s)
}

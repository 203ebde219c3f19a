package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown          CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
	/*
	 * 0 to 8 mean the cell is open and has that many mines around it.
	 *
	 * The values from 64 up only appear once the game is lost:
	 *
	 * 	- 64 is a flag that was placed on a mine.
	 *
	 * 	- 65 is the mine the player hit.
	 *
	 * 	- 66 is a flag that was placed on a safe cell.
	 *
	 * 	- 67 is a mine nobody flagged.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "#"
	case s == Flagged, s == CorrectlyFlagged:
		return "F"
	case s == ExplodedMine:
		return "X"
	case s == FalselyFlagged:
		return "x"
	case s == UnflaggedMine:
		return "*"
	case s == 0:
		return "."
	case 1 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "?"
	}
}

type Grid []CellState

func (g Grid) Rows(width int) [][]string {
	if width <= 0 {
		return nil
	}
	rows := make([][]string, 0, len(g)/width)
	for y := range len(g) / width {
		row := make([]string, width)
		for x := range width {
			row[x] = g[y*width+x].String()
		}
		rows = append(rows, row)
	}
	return rows
}

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for _, row := range g.Rows(width) {
		fmt.Fprint(&b, strings.Join(row, " "), "\n")
	}
	return b.String()
}

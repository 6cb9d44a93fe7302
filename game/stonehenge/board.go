package stonehenge

import (
	"sort"
)

// cell coordinates on the hexagonal board: rows 0..side-1 hold columns
// 0..row+1, the last row holds columns 1..side.
type coord struct {
	row, col int
}

// board is the static part of a game, shared by every state of it.
type board struct {
	side      int
	coords    []coord
	lines     [][]int // cells of each ley-line
	cellLines [][]int // ley-lines through each cell
	families  [3][]int
}

func newBoard(side int) *board {
	b := &board{side: side}
	for r := 0; r < side; r++ {
		for c := 0; c <= r+1; c++ {
			b.coords = append(b.coords, coord{row: r, col: c})
		}
	}
	for c := 1; c <= side; c++ {
		b.coords = append(b.coords, coord{row: side, col: c})
	}

	// Ley-lines run along rows, columns and the remaining hex axis (col - row)
	keys := [3]func(coord) int{
		func(c coord) int { return c.row },
		func(c coord) int { return c.col },
		func(c coord) int { return c.col - c.row },
	}
	b.cellLines = make([][]int, len(b.coords))
	for f, key := range keys {
		groups := map[int][]int{}
		for i, c := range b.coords {
			k := key(c)
			groups[k] = append(groups[k], i)
		}
		ordered := make([]int, 0, len(groups))
		for k := range groups {
			ordered = append(ordered, k)
		}
		sort.Ints(ordered)
		for _, k := range ordered {
			line := len(b.lines)
			b.lines = append(b.lines, groups[k])
			b.families[f] = append(b.families[f], line)
			for _, cell := range groups[k] {
				b.cellLines[cell] = append(b.cellLines[cell], line)
			}
		}
	}
	return b
}

func (b *board) rows() [][]int {
	rows := make([][]int, b.side+1)
	for i, c := range b.coords {
		rows[c.row] = append(rows[c.row], i)
	}
	return rows
}

// x is the column at which a cell is drawn, so neighbouring rows interleave.
func (b *board) x(c coord) int {
	return 2*c.col - c.row + b.side
}

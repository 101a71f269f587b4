package tetris

import (
	"fmt"
)

// Board is the grid of locked cells. Row 0 is the top row. Its dimensions are
// fixed at creation.
type Board struct {
	width, height int
	tiles         [][]Cell
}

func NewBoard(width, height int) *Board {
	if width < 1 || height < 1 {
		panic(fmt.Errorf("invalid board size %dx%d", width, height))
	}

	b := &Board{width: width, height: height}
	b.tiles = make([][]Cell, height)
	for y := range b.tiles {
		b.tiles[y] = make([]Cell, width)
	}
	return b
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

func (b *Board) Get(row, col int) Cell {
	b.mustContain(row, col)
	return b.tiles[row][col]
}

func (b *Board) Set(row, col int, value Cell) {
	b.mustContain(row, col)
	b.tiles[row][col] = value
}

func (b *Board) mustContain(row, col int) {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		panic(fmt.Errorf("cell (%d,%d) outside %dx%d board", row, col, b.width, b.height))
	}
}

func (b *Board) IsRowFull(row int) bool {
	b.mustContain(row, 0)
	for _, c := range b.tiles[row] {
		if c == CellEmpty {
			return false
		}
	}
	return true
}

// ClearRow removes the row and pushes an empty row in at the top, shifting
// every row above it down by one.
func (b *Board) ClearRow(row int) {
	b.mustContain(row, 0)
	cleared := b.tiles[row]
	copy(b.tiles[1:row+1], b.tiles[:row])
	for x := range cleared {
		cleared[x] = CellEmpty
	}
	b.tiles[0] = cleared
}

// Rows returns a deep copy of the grid.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.height)
	for y := range rows {
		rows[y] = make([]Cell, b.width)
		copy(rows[y], b.tiles[y])
	}
	return rows
}

func (b *Board) Clone() *Board {
	return &Board{width: b.width, height: b.height, tiles: b.Rows()}
}

package tetris

import (
	"fmt"
	"math/rand"
)

// Cell is the content of one board or shape square. Zero is empty, any other
// value is a shape id and indexes Colors.
type Cell uint8

const CellEmpty Cell = 0

// Colors holds the display colour of every shape id.
var Colors = [...]string{
	CellEmpty: "",
	1:         "cyan",
	2:         "orange",
	3:         "blue",
	4:         "yellow",
	5:         "red",
	6:         "green",
	7:         "purple",
}

// Shape is an immutable rectangular matrix of cells describing one tetromino
// in one rotation state.
type Shape struct {
	rows, cols int
	id         Cell
	cells      []Cell
}

// NewShape builds a shape from a row-major matrix. It panics when the matrix
// is empty, ragged, mixes more than one non-zero value, or uses an id without
// a colour.
func NewShape(matrix [][]Cell) Shape {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		panic(fmt.Errorf("shape matrix cannot be empty"))
	}

	s := Shape{rows: len(matrix), cols: len(matrix[0])}
	s.cells = make([]Cell, 0, s.rows*s.cols)
	for y, row := range matrix {
		if len(row) != s.cols {
			panic(fmt.Errorf("shape row %d has %d columns, want %d", y, len(row), s.cols))
		}
		for _, c := range row {
			if c != CellEmpty {
				if int(c) >= len(Colors) {
					panic(fmt.Errorf("shape cell %d has no colour", c))
				}
				if s.id != CellEmpty && s.id != c {
					panic(fmt.Errorf("shape mixes cell values %d and %d", s.id, c))
				}
				s.id = c
			}
			s.cells = append(s.cells, c)
		}
	}
	return s
}

func (s Shape) Rows() int { return s.rows }
func (s Shape) Cols() int { return s.cols }

// ID is the colour id shared by every non-empty cell of the shape.
func (s Shape) ID() Cell { return s.id }

func (s Shape) At(y, x int) Cell {
	if y < 0 || y >= s.rows || x < 0 || x >= s.cols {
		panic(fmt.Errorf("shape cell (%d,%d) outside %dx%d", y, x, s.rows, s.cols))
	}
	return s.cells[y*s.cols+x]
}

func (s Shape) IsZero() bool { return s.rows == 0 }

func (s Shape) Equal(other Shape) bool {
	if s.rows != other.rows || s.cols != other.cols {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Matrix returns a fresh copy of the shape cells.
func (s Shape) Matrix() [][]Cell {
	m := make([][]Cell, s.rows)
	for y := range m {
		m[y] = make([]Cell, s.cols)
		copy(m[y], s.cells[y*s.cols:(y+1)*s.cols])
	}
	return m
}

func (s Shape) String() string {
	buf := make([]byte, 0, s.rows*(s.cols+1))
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			if s.At(y, x) == CellEmpty {
				buf = append(buf, '.')
			} else {
				buf = append(buf, '#')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

var (
	ShapeEmpty = NewShape([][]Cell{{0}})
	ShapeI     = NewShape([][]Cell{{0, 1, 0, 0}, {0, 1, 0, 0}, {0, 1, 0, 0}, {0, 1, 0, 0}})
	ShapeL     = NewShape([][]Cell{{0, 2, 0}, {0, 2, 0}, {0, 2, 2}})
	ShapeJ     = NewShape([][]Cell{{0, 3, 0}, {0, 3, 0}, {3, 3, 0}})
	ShapeO     = NewShape([][]Cell{{4, 4}, {4, 4}})
	ShapeZ     = NewShape([][]Cell{{5, 5, 0}, {0, 5, 5}, {0, 0, 0}})
	ShapeS     = NewShape([][]Cell{{0, 6, 6}, {6, 6, 0}, {0, 0, 0}})
	ShapeT     = NewShape([][]Cell{{0, 0, 0}, {7, 7, 7}, {0, 7, 0}})
)

// Shapes is the catalogue random selection draws from. ShapeEmpty is not part
// of it.
var Shapes = []Shape{ShapeI, ShapeL, ShapeJ, ShapeO, ShapeZ, ShapeS, ShapeT}

// RandomShape picks a shape from Shapes uniformly.
func RandomShape(r *rand.Rand) Shape {
	return Shapes[r.Intn(len(Shapes))]
}

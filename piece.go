package tetris

// Piece is the falling shape and its offset from the board origin.
type Piece struct {
	Shape Shape
	X, Y  int
}

// SpawnPiece places shape horizontally centred on the top row.
func SpawnPiece(b *Board, shape Shape) Piece {
	return Piece{
		Shape: shape,
		X:     b.Width()/2 - shape.Cols()/2,
		Y:     0,
	}
}

// cells calls fn with the absolute board coordinates of every non-empty cell.
func (p Piece) cells(fn func(row, col int, c Cell)) {
	for y := 0; y < p.Shape.Rows(); y++ {
		for x := 0; x < p.Shape.Cols(); x++ {
			if c := p.Shape.At(y, x); c != CellEmpty {
				fn(p.Y+y, p.X+x, c)
			}
		}
	}
}

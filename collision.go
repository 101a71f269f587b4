package tetris

// Collides reports whether any cell of the piece is outside the side walls,
// below the floor, or on top of a locked cell. Cells above the top edge are
// free so pieces can spawn and rotate partially off screen.
func Collides(b *Board, p Piece) bool {
	for y := 0; y < p.Shape.Rows(); y++ {
		for x := 0; x < p.Shape.Cols(); x++ {
			if p.Shape.At(y, x) == CellEmpty {
				continue
			}

			row, col := p.Y+y, p.X+x
			if col < 0 || col >= b.width || row >= b.height {
				return true
			}
			if row < 0 {
				continue
			}
			if b.tiles[row][col] != CellEmpty {
				return true
			}
		}
	}
	return false
}

package tetris

// Rotate turns the shape 90 degrees clockwise: transpose, then reverse every
// row. An r x c shape becomes c x r.
func Rotate(s Shape) Shape {
	rotated := Shape{rows: s.cols, cols: s.rows, id: s.id, cells: make([]Cell, len(s.cells))}
	for y := 0; y < rotated.rows; y++ {
		for x := 0; x < rotated.cols; x++ {
			rotated.cells[y*rotated.cols+x] = s.cells[(s.rows-1-x)*s.cols+y]
		}
	}
	return rotated
}

// KickOffsets lists the horizontal shifts tried, one after another, when a
// rotated shape with cols columns collides: +1, -2, +3, -4, ... Shifts add
// up, so the piece visits x+1, x-1, x+2, x-2, ... No shift is larger than
// cols in magnitude.
func KickOffsets(cols int) []int {
	var offsets []int
	for n := 1; n <= cols; n++ {
		if n%2 == 0 {
			offsets = append(offsets, -n)
		} else {
			offsets = append(offsets, n)
		}
	}
	return offsets
}

// TryRotate rotates the piece in place, kicking it sideways when the rotated
// shape collides. If no kick resolves the collision the piece is left as it
// was and false is returned.
func TryRotate(b *Board, p *Piece) bool {
	initial := *p
	p.Shape = Rotate(p.Shape)
	if !Collides(b, *p) {
		return true
	}

	for _, offset := range KickOffsets(p.Shape.Cols()) {
		p.X += offset
		if !Collides(b, *p) {
			return true
		}
	}

	*p = initial
	return false
}

package tetris

// RowScore is the award for the first row cleared by a sweep. Every further
// row in the same sweep is worth twice the previous one.
const RowScore = 15

// Lock writes the piece into the board. Every cell must be inside the board;
// a piece that Collides reports as clear always is.
func Lock(b *Board, p Piece) {
	p.cells(func(row, col int, c Cell) {
		b.Set(row, col, c)
	})
}

// Sweep removes every full row, scanning from the bottom up. After a clear
// the same index is checked again since the rows above have shifted into it.
func Sweep(b *Board) int {
	cleared := 0
	for y := b.height - 1; y >= 0 && cleared < b.height; y-- {
		if b.IsRowFull(y) {
			b.ClearRow(y)
			cleared++
			y++
		}
	}
	return cleared
}

// CascadeScore is the award for a sweep that cleared rows rows:
// 15 + 30 + 60 + ... with one term per row.
func CascadeScore(rows int) int {
	score, award := 0, RowScore
	for i := 0; i < rows; i++ {
		score += award
		award *= 2
	}
	return score
}

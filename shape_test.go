package tetris

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, s := range Shapes {
		rotated := Rotate(Rotate(Rotate(Rotate(s))))
		assert.True(t, rotated.Equal(s), "shape %d:\n%s", s.ID(), s)
	}
}

func TestRotateIsClockwise(t *testing.T) {
	s := NewShape([][]Cell{
		{1, 1, 1},
		{0, 0, 1},
	})

	rotated := Rotate(s)

	require.Equal(t, 3, rotated.Rows())
	require.Equal(t, 2, rotated.Cols())
	assert.Equal(t, [][]Cell{
		{0, 1},
		{0, 1},
		{1, 1},
	}, rotated.Matrix())
	assert.Equal(t, Cell(1), rotated.ID())
	assert.Equal(t, [][]Cell{{1, 1, 1}, {0, 0, 1}}, s.Matrix(), "input must not change")
}

func TestNewShapeRejectsMalformedMatrix(t *testing.T) {
	assert.Panics(t, func() { NewShape(nil) })
	assert.Panics(t, func() { NewShape([][]Cell{{}}) })
	assert.Panics(t, func() { NewShape([][]Cell{{1, 1}, {1}}) })
	assert.Panics(t, func() { NewShape([][]Cell{{1, 2}}) })
	assert.Panics(t, func() { NewShape([][]Cell{{Cell(len(Colors))}}) })
}

func TestShapeCatalogue(t *testing.T) {
	seen := map[Cell]bool{}
	for _, s := range Shapes {
		require.NotEqual(t, CellEmpty, s.ID())
		assert.NotEmpty(t, Colors[s.ID()])
		assert.False(t, seen[s.ID()], "duplicate id %d", s.ID())
		seen[s.ID()] = true
	}
	assert.Len(t, seen, 7)
	assert.Equal(t, CellEmpty, ShapeEmpty.ID())
}

func TestRandomShapeSkipsEmptySentinel(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	seen := map[Cell]int{}
	for i := 0; i < 7000; i++ {
		s := RandomShape(r)
		require.NotEqual(t, CellEmpty, s.ID())
		seen[s.ID()]++
	}
	assert.Len(t, seen, len(Shapes))
	for id, n := range seen {
		assert.Greater(t, n, 700, "shape %d drawn too rarely", id)
	}
}

func TestQueueGetter(t *testing.T) {
	q := NewQueueGetter(ShapeI, ShapeO)
	assert.Equal(t, 2, q.Len())
	assert.True(t, q.Next().Equal(ShapeI))
	assert.True(t, q.Next().Equal(ShapeO))
	assert.Panics(t, func() { q.Next() })

	q.Push(ShapeT)
	q.WithFallback(NewQueueGetter(ShapeS))
	assert.True(t, q.Next().Equal(ShapeT))
	assert.True(t, q.Next().Equal(ShapeS))
}

func TestRandomGetterIsSeeded(t *testing.T) {
	a, b := NewRandomGetter(7), NewRandomGetter(7)
	for i := 0; i < 50; i++ {
		require.True(t, a.Next().Equal(b.Next()))
	}
}

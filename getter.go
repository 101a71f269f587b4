package tetris

import (
	"math/rand"
)

// ShapeGetter supplies the shape of every newly spawned piece.
type ShapeGetter interface {
	Next() Shape
}

type RandomGetter struct {
	randomizer *rand.Rand
}

func NewRandomGetter(seed int64) *RandomGetter {
	return &RandomGetter{randomizer: rand.New(rand.NewSource(seed))}
}

func (r *RandomGetter) Next() Shape {
	return RandomShape(r.randomizer)
}

// QueueGetter hands out pushed shapes in order and falls back to its
// fallback getter once the queue is drained. Without a fallback an empty
// queue panics.
type QueueGetter struct {
	queue    []Shape
	fallback ShapeGetter
}

func NewQueueGetter(shapes ...Shape) *QueueGetter {
	q := &QueueGetter{queue: make([]Shape, 0, len(shapes))}
	q.Push(shapes...)
	return q
}

func (q *QueueGetter) WithFallback(g ShapeGetter) *QueueGetter {
	q.fallback = g
	return q
}

func (q *QueueGetter) Next() Shape {
	if len(q.queue) == 0 && q.fallback != nil {
		return q.fallback.Next()
	}
	s := q.queue[0]
	q.queue = q.queue[1:]
	return s
}

func (q *QueueGetter) Push(s ...Shape) {
	q.queue = append(q.queue, s...)
}

func (q *QueueGetter) Len() int {
	return len(q.queue)
}

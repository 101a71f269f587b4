package tetris

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicker struct {
	c       chan time.Time
	mu      sync.Mutex
	stopped bool
	resets  int
}

func (f *fakeTicker) Chan() <-chan time.Time { return f.c }

func (f *fakeTicker) Reset(time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeTicker) resetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type fakeClock struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (c *fakeClock) newTicker(time.Duration) ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{c: make(chan time.Time, 1)}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *fakeClock) all() []*fakeTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*fakeTicker(nil), c.tickers...)
}

func (c *fakeClock) active() int {
	n := 0
	for _, t := range c.all() {
		if !t.isStopped() {
			n++
		}
	}
	return n
}

func (c *fakeClock) last() *fakeTicker {
	all := c.all()
	return all[len(all)-1]
}

type runnerHarness struct {
	runner *Runner
	clock  *fakeClock
	states chan State
	cancel context.CancelFunc
	done   chan error
}

func startRunner(t *testing.T, game *Game) *runnerHarness {
	t.Helper()
	h := &runnerHarness{
		clock:  &fakeClock{},
		states: make(chan State, 256),
		done:   make(chan error, 1),
	}
	h.runner = NewRunner(game, WithStateHandler(StateHandlerFunc(func(s State) {
		h.states <- s
	})))
	h.runner.newTicker = h.clock.newTicker

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() { h.done <- h.runner.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-h.done
	})

	initial := h.next(t)
	require.Equal(t, PhaseNotStarted, initial.Phase)
	return h
}

func (h *runnerHarness) next(t *testing.T) State {
	t.Helper()
	select {
	case s := <-h.states:
		return s
	case <-time.After(2 * time.Second):
		t.Fatalf("no state published")
	}
	return State{}
}

func (h *runnerHarness) send(t *testing.T, action Action) State {
	t.Helper()
	require.NoError(t, h.runner.Send(context.Background(), action))
	return h.next(t)
}

func TestRunnerStartsGravityOnStart(t *testing.T) {
	h := startRunner(t, NewGame(WithGetter(NewQueueGetter(ShapeO, ShapeO))))
	assert.Empty(t, h.clock.all())

	s := h.send(t, ActionStart)
	require.Equal(t, PhaseRunning, s.Phase)
	require.Len(t, h.clock.all(), 1)

	h.clock.last().c <- time.Now()
	s = h.next(t)
	assert.Equal(t, 1, s.Piece.Y)
}

func TestRunnerRestartReplacesTicker(t *testing.T) {
	h := startRunner(t, NewGame(WithGetter(NewRandomGetter(3))))

	h.send(t, ActionStart)
	first := h.clock.last()

	s := h.send(t, ActionRestart)
	require.Equal(t, PhaseRunning, s.Phase)

	all := h.clock.all()
	require.Len(t, all, 2)
	assert.True(t, first.isStopped())
	assert.Equal(t, 1, h.clock.active())
}

func TestRunnerStopsGravityOnGameOver(t *testing.T) {
	shapes := make([]Shape, 12)
	for i := range shapes {
		shapes[i] = ShapeO
	}
	h := startRunner(t, NewGame(WithGetter(NewQueueGetter(shapes...).WithFallback(NewRandomGetter(1)))))
	h.send(t, ActionStart)

	var s State
	for i := 0; i < 10; i++ {
		s = h.send(t, ActionSmash)
	}

	require.Equal(t, PhaseGameOver, s.Phase)
	assert.Equal(t, 0, h.clock.active())

	// Moves after game over change nothing and publish nothing; the next
	// published state comes from the restart.
	require.NoError(t, h.runner.Send(context.Background(), ActionGoLeft))
	s = h.send(t, ActionRestart)
	assert.Equal(t, PhaseRunning, s.Phase)
	assert.Equal(t, 1, h.clock.active())
}

func TestRunnerSoftDropResetsGravity(t *testing.T) {
	h := startRunner(t, NewGame(WithGetter(NewRandomGetter(5))))
	h.send(t, ActionStart)

	s := h.send(t, ActionSoftDrop)
	assert.Equal(t, 1, s.Piece.Y)
	assert.Equal(t, 1, h.clock.last().resetCount())
}

func TestRunnerCancelStopsTicker(t *testing.T) {
	clock := &fakeClock{}
	r := NewRunner(NewGame())
	r.newTicker = clock.newTicker
	require.True(t, r.TrySend(ActionStart))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return len(clock.all()) == 1 }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop")
	}
	assert.Equal(t, 0, clock.active())
}

func TestRunnerWithRealTicker(t *testing.T) {
	var mu sync.Mutex
	var latest State
	r := NewRunner(
		NewGame(WithGetter(NewRandomGetter(9))),
		WithInterval(5*time.Millisecond),
		WithStateHandler(StateHandlerFunc(func(s State) {
			mu.Lock()
			defer mu.Unlock()
			latest = s
		})),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)
	require.NoError(t, r.Send(ctx, ActionStart))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return latest.Phase == PhaseRunning && latest.Piece.Y >= 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestTrySendDropsWhenFull(t *testing.T) {
	r := NewRunner(NewGame(), WithQueueSize(1))
	assert.True(t, r.TrySend(ActionGoLeft))
	assert.False(t, r.TrySend(ActionGoRight))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Send(ctx, ActionRotate), context.Canceled)
}

func TestWithIntervalRejectsNonPositive(t *testing.T) {
	assert.Panics(t, func() { WithInterval(0) })
}

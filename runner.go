package tetris

import (
	"context"
	"fmt"
	"time"
)

// DefaultInterval is the gravity period of a Runner.
const DefaultInterval = 200 * time.Millisecond

type StateHandler interface {
	OnState(state State)
}

type StateHandlerFunc func(state State)

func (f StateHandlerFunc) OnState(state State) {
	f(state)
}

type ticker interface {
	Chan() <-chan time.Time
	Reset(d time.Duration)
	Stop()
}

type timeTicker struct {
	*time.Ticker
}

func (t timeTicker) Chan() <-chan time.Time {
	return t.C
}

func newTimeTicker(d time.Duration) ticker {
	return timeTicker{time.NewTicker(d)}
}

// Runner owns a Game and applies commands and gravity ticks to it one at a
// time on the goroutine that calls Run. A gravity ticker only exists while the
// game is running, and it is stopped before a restart creates a new one.
type Runner struct {
	game         *Game
	interval     time.Duration
	stateHandler StateHandler
	commands     chan Action
	newTicker    func(time.Duration) ticker
}

type RunnerOption func(*Runner)

func WithInterval(interval time.Duration) RunnerOption {
	if interval <= 0 {
		panic(fmt.Errorf("gravity interval must be positive, got %v", interval))
	}
	return func(r *Runner) {
		r.interval = interval
	}
}

func WithStateHandler(handler StateHandler) RunnerOption {
	return func(r *Runner) {
		r.stateHandler = handler
	}
}

func WithQueueSize(size int) RunnerOption {
	return func(r *Runner) {
		r.commands = make(chan Action, size)
	}
}

func NewRunner(game *Game, options ...RunnerOption) *Runner {
	r := &Runner{
		game:      game,
		interval:  DefaultInterval,
		commands:  make(chan Action, 64),
		newTicker: newTimeTicker,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Send queues an action, waiting for room in the queue until ctx is done.
func (r *Runner) Send(ctx context.Context, action Action) error {
	select {
	case r.commands <- action:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySend queues an action without blocking. It reports false when the queue
// is full and the action was dropped.
func (r *Runner) TrySend(action Action) bool {
	select {
	case r.commands <- action:
		return true
	default:
		return false
	}
}

// Run processes actions until ctx is cancelled. The game must not be touched
// by anything else while Run is active.
func (r *Runner) Run(ctx context.Context) error {
	var (
		gravity ticker
		tickC   <-chan time.Time
	)
	stopGravity := func() {
		if gravity != nil {
			gravity.Stop()
			gravity = nil
			tickC = nil
		}
	}
	defer stopGravity()

	handle := func(action Action) {
		changed := r.game.Apply(action)

		switch {
		case (action == ActionStart || action == ActionRestart) && changed:
			stopGravity()
		case action == ActionSoftDrop && gravity != nil:
			gravity.Reset(r.interval)
		}

		if r.game.Phase() != PhaseRunning {
			stopGravity()
		} else if gravity == nil {
			gravity = r.newTicker(r.interval)
			tickC = gravity.Chan()
		}

		if changed {
			r.publish()
		}
	}

	r.publish()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tickC:
			handle(ActionTick)
		case action := <-r.commands:
			handle(action)
		}
	}
}

func (r *Runner) publish() {
	if r.stateHandler != nil {
		r.stateHandler.OnState(r.game.State())
	}
}

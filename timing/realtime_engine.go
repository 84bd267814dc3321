package timing

import (
	"context"
	"sync"
	"time"
)

// RealTimeEngine paces a SerialEngine with the wall clock. All events are
// handled on the goroutine that calls Serve or Run; other goroutines reach
// the state behind the engine only through Invoke.
//
// Pausing freezes engine time: the clock resumes on Continue where it
// stopped, so nothing that fell due during the pause is replayed.
type RealTimeEngine struct {
	*SerialEngine

	clockLock sync.Mutex
	startedAt time.Time
	pausedAt  time.Time
	paused    bool

	wake chan struct{}
}

// NewRealTimeEngine creates a RealTimeEngine whose time zero is now.
func NewRealTimeEngine() *RealTimeEngine {
	return &RealTimeEngine{
		SerialEngine: NewSerialEngine(),
		startedAt:    time.Now(),
		wake:         make(chan struct{}, 1),
	}
}

// Name returns the name of the engine.
func (e *RealTimeEngine) Name() string {
	return "RealTimeEngine"
}

// Elapsed returns the wall-clock time since the engine was created, minus
// the time spent paused.
func (e *RealTimeEngine) Elapsed() VTimeInMs {
	e.clockLock.Lock()
	defer e.clockLock.Unlock()

	return FromDuration(e.elapsedLocked())
}

func (e *RealTimeEngine) elapsedLocked() time.Duration {
	now := time.Now()
	if e.paused {
		now = e.pausedAt
	}

	return now.Sub(e.startedAt)
}

// Pause stops the clock and the dispatching of events. Unlike
// SerialEngine.Pause it never blocks the serving goroutine, which keeps
// watching its context.
func (e *RealTimeEngine) Pause() {
	e.clockLock.Lock()
	if !e.paused {
		e.paused = true
		e.pausedAt = time.Now()
	}
	e.clockLock.Unlock()

	e.poke()
}

// Continue restarts the clock from where Pause stopped it.
func (e *RealTimeEngine) Continue() {
	e.clockLock.Lock()
	if e.paused {
		e.startedAt = e.startedAt.Add(time.Since(e.pausedAt))
		e.paused = false
	}
	e.clockLock.Unlock()

	e.poke()
}

// IsPaused tells whether Pause has been called without a matching Continue.
func (e *RealTimeEngine) IsPaused() bool {
	e.clockLock.Lock()
	defer e.clockLock.Unlock()

	return e.paused
}

// Schedule registers an event and wakes the serving goroutine so it can
// recompute its deadline.
func (e *RealTimeEngine) Schedule(evt Event) {
	e.SerialEngine.Schedule(evt)
	e.poke()
}

// Cancel removes a pending event and wakes the serving goroutine.
func (e *RealTimeEngine) Cancel(evt Event) bool {
	removed := e.SerialEngine.Cancel(evt)
	if removed {
		e.poke()
	}

	return removed
}

func (e *RealTimeEngine) poke() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Invoke runs fn on the serial queue. Before fn runs, the engine time is
// brought as close to the clock as possible without skipping a pending
// event, so that anything fn schedules is relative to the present.
func (e *RealTimeEngine) Invoke(fn func()) {
	e.runLock.Lock()
	defer e.runLock.Unlock()

	target := e.Elapsed()
	if next, ok := e.NextEventTime(); ok && next < target {
		target = next
	}

	if target > e.readNow() {
		e.writeNow(target)
	}

	fn()
}

// Run handles events at their wall-clock times until the queue is empty.
func (e *RealTimeEngine) Run() error {
	return e.serve(context.Background(), true)
}

// Serve handles events at their wall-clock times until ctx is done. An empty
// queue does not end Serve; it waits for new events. While the engine is
// paused Serve handles nothing but still returns when ctx is done.
func (e *RealTimeEngine) Serve(ctx context.Context) error {
	return e.serve(ctx, false)
}

func (e *RealTimeEngine) serve(ctx context.Context, stopWhenIdle bool) error {
	for {
		paused := e.IsPaused()
		if !paused {
			if err := e.SerialEngine.RunUntil(e.Elapsed()); err != nil {
				return err
			}
		}

		next, ok := e.NextEventTime()
		if !ok && stopWhenIdle && !paused {
			return nil
		}

		var (
			timer    *time.Timer
			deadline <-chan time.Time
		)
		if ok && !paused {
			timer = time.NewTimer(e.until(next))
			deadline = timer.C
		}

		select {
		case <-ctx.Done():
		case <-e.wake:
		case <-deadline:
		}

		if timer != nil {
			timer.Stop()
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (e *RealTimeEngine) until(t VTimeInMs) time.Duration {
	e.clockLock.Lock()
	defer e.clockLock.Unlock()

	wait := t.Duration() - e.elapsedLocked()
	if wait < 0 {
		return 0
	}

	return wait
}

var _ Engine = (*RealTimeEngine)(nil)

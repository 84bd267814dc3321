package timing

import (
	"errors"
	"fmt"

	"github.com/novaera/showcase/id"
)

// ErrTimerRunning is returned when starting an IntervalTimer that already has
// a pending tick.
var ErrTimerRunning = errors.New("timing: interval timer already running")

// TickEvent is the event an IntervalTimer schedules for itself.
type TickEvent struct {
	EventBase
}

// MakeTickEvent creates a new TickEvent.
func MakeTickEvent(handler Handler, time VTimeInMs) TickEvent {
	return TickEvent{
		EventBase: EventBase{
			id:      id.Generate(),
			time:    time,
			handler: handler,
		},
	}
}

// A Ticker is an object that updates states with ticks.
type Ticker interface {
	Tick(now VTimeInMs)
}

// IntervalTimer fires a Ticker every period, at fixed rate: the k-th tick
// after Start happens at start + k*period no matter what the Ticker does in
// between. It has at most one pending tick in the engine at any time.
//
// An IntervalTimer is not safe for concurrent use. Drive it from handlers or
// from Engine.Invoke.
type IntervalTimer struct {
	engine EventScheduler
	period VTimeInMs
	ticker Ticker

	pending *TickEvent
}

// NewIntervalTimer creates a stopped timer.
func NewIntervalTimer(
	engine EventScheduler,
	period VTimeInMs,
	ticker Ticker,
) *IntervalTimer {
	if period == 0 {
		panic("timing: interval period cannot be 0")
	}

	return &IntervalTimer{
		engine: engine,
		period: period,
		ticker: ticker,
	}
}

// Period returns the time between two ticks.
func (t *IntervalTimer) Period() VTimeInMs {
	return t.period
}

// Start schedules the first tick one period from now.
func (t *IntervalTimer) Start() error {
	if t.pending != nil {
		return ErrTimerRunning
	}

	t.schedule(t.engine.CurrentTime() + t.period)

	return nil
}

// Stop cancels the pending tick. It is safe to call on a stopped timer and
// reports whether a tick was cancelled.
func (t *IntervalTimer) Stop() bool {
	if t.pending == nil {
		return false
	}

	t.engine.Cancel(*t.pending)
	t.pending = nil

	return true
}

// IsRunning tells whether a tick is pending.
func (t *IntervalTimer) IsRunning() bool {
	return t.pending != nil
}

// NextTickTime returns the time of the pending tick.
func (t *IntervalTimer) NextTickTime() (VTimeInMs, bool) {
	if t.pending == nil {
		return 0, false
	}

	return t.pending.Time(), true
}

func (t *IntervalTimer) schedule(at VTimeInMs) {
	tick := MakeTickEvent(t, at)
	t.pending = &tick
	t.engine.Schedule(tick)
}

// Handle reschedules the next tick and then calls the Ticker. Ticks that are
// no longer pending, for example because Stop raced with the engine, are
// dropped.
func (t *IntervalTimer) Handle(evt Event) error {
	tick, ok := evt.(TickEvent)
	if !ok {
		return fmt.Errorf("timing: interval timer cannot handle %T", evt)
	}

	if t.pending == nil || t.pending.ID() != tick.ID() {
		return nil
	}

	t.schedule(tick.Time() + t.period)
	t.ticker.Tick(tick.Time())

	return nil
}

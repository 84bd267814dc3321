package timing

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/novaera/showcase/hooking"
)

// SerialEngine processes scheduled events one after another in time order.
// Time only moves when the engine is told to move it, which makes it the
// engine of choice for tests and for the simulate command.
type SerialEngine struct {
	*hooking.HookableBase

	timeLock sync.RWMutex
	now      VTimeInMs

	queue          eventQueue
	secondaryQueue eventQueue

	isPaused     bool
	isPausedLock sync.Mutex
	pauseLock    sync.Mutex

	// runLock is held while an event is handled and while an Invoke
	// callback runs, so the two never interleave.
	runLock       sync.Mutex
	singleRunLock sync.Mutex
}

// NewSerialEngine creates a SerialEngine.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{
		HookableBase:   hooking.NewHookableBase(),
		queue:          newEventQueue(),
		secondaryQueue: newEventQueue(),
	}
}

// Name returns the name of the engine.
func (e *SerialEngine) Name() string {
	return "SerialEngine"
}

// Schedule registers an event to be handled in the future.
func (e *SerialEngine) Schedule(evt Event) {
	now := e.readNow()
	if evt.Time() < now {
		panic(fmt.Sprintf(
			"timing: cannot schedule event in the past, evt %s @ %d, now %d",
			reflect.TypeOf(evt), evt.Time(), now,
		))
	}

	if evt.IsSecondary() {
		e.secondaryQueue.Push(evt)
		return
	}

	e.queue.Push(evt)
}

// Cancel removes a pending event from the queue.
func (e *SerialEngine) Cancel(evt Event) bool {
	if e.queue.Remove(evt.ID()) {
		return true
	}

	return e.secondaryQueue.Remove(evt.ID())
}

func (e *SerialEngine) readNow() VTimeInMs {
	e.timeLock.RLock()
	t := e.now
	e.timeLock.RUnlock()

	return t
}

func (e *SerialEngine) writeNow(t VTimeInMs) {
	e.timeLock.Lock()
	e.now = t
	e.timeLock.Unlock()
}

// Run processes all scheduled events until the queue is empty. A handler
// error stops the run and is returned.
func (e *SerialEngine) Run() error {
	return e.run(0, false)
}

// RunUntil processes every event scheduled at or before t, then moves the
// current time to t. Events scheduled by handlers during the run are
// processed too if they fall inside the window.
func (e *SerialEngine) RunUntil(t VTimeInMs) error {
	return e.run(t, true)
}

// RunFor moves the engine forward by d from the current time.
func (e *SerialEngine) RunFor(d VTimeInMs) error {
	return e.RunUntil(e.readNow() + d)
}

func (e *SerialEngine) run(limit VTimeInMs, bounded bool) error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	for {
		e.pauseLock.Lock()
		e.runLock.Lock()

		evt := e.nextEvent(limit, bounded)
		if evt == nil {
			if bounded && e.readNow() < limit {
				e.writeNow(limit)
			}

			e.runLock.Unlock()
			e.pauseLock.Unlock()

			return nil
		}

		err := e.handle(evt)

		e.runLock.Unlock()
		e.pauseLock.Unlock()

		if err != nil {
			return err
		}
	}
}

func (e *SerialEngine) handle(evt Event) error {
	now := e.readNow()
	if evt.Time() < now {
		panic(fmt.Sprintf(
			"timing: cannot run event in the past, evt %s @ %d, now %d",
			reflect.TypeOf(evt), evt.Time(), now,
		))
	}

	e.writeNow(evt.Time())

	hookCtx := hooking.HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	e.InvokeHook(hookCtx)

	var err error
	if handler := evt.Handler(); handler != nil {
		err = handler.Handle(evt)
	}

	hookCtx.Pos = HookPosAfterEvent
	hookCtx.Detail = err
	e.InvokeHook(hookCtx)

	if err != nil {
		return fmt.Errorf("timing: handling %s @ %d: %w",
			reflect.TypeOf(evt), evt.Time(), err)
	}

	return nil
}

// nextEvent pops the earliest event, preferring primary events over
// secondary events of the same time. It returns nil when no event is due.
func (e *SerialEngine) nextEvent(limit VTimeInMs, bounded bool) Event {
	primary := e.queue.Peek()
	secondary := e.secondaryQueue.Peek()

	var next eventQueue
	switch {
	case primary == nil && secondary == nil:
		return nil
	case secondary == nil:
		next = e.queue
	case primary == nil:
		next = e.secondaryQueue
	case primary.Time() <= secondary.Time():
		next = e.queue
	default:
		next = e.secondaryQueue
	}

	if bounded && next.Peek().Time() > limit {
		return nil
	}

	return next.Pop()
}

// NextEventTime returns the time of the earliest pending event.
func (e *SerialEngine) NextEventTime() (VTimeInMs, bool) {
	primary := e.queue.Peek()
	secondary := e.secondaryQueue.Peek()

	switch {
	case primary == nil && secondary == nil:
		return 0, false
	case secondary == nil:
		return primary.Time(), true
	case primary == nil:
		return secondary.Time(), true
	case primary.Time() <= secondary.Time():
		return primary.Time(), true
	default:
		return secondary.Time(), true
	}
}

// Pending returns the number of events waiting in the queue.
func (e *SerialEngine) Pending() int {
	return e.queue.Len() + e.secondaryQueue.Len()
}

// Invoke runs fn serialized with event handling.
func (e *SerialEngine) Invoke(fn func()) {
	e.runLock.Lock()
	defer e.runLock.Unlock()

	fn()
}

// Pause prevents the engine from dispatching more events until Continue is
// called.
func (e *SerialEngine) Pause() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if e.isPaused {
		return
	}

	e.pauseLock.Lock()
	e.isPaused = true
}

// Continue resumes event processing after a Pause.
func (e *SerialEngine) Continue() {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	if !e.isPaused {
		return
	}

	e.pauseLock.Unlock()
	e.isPaused = false
}

// IsPaused tells whether Pause has been called without a matching Continue.
func (e *SerialEngine) IsPaused() bool {
	e.isPausedLock.Lock()
	defer e.isPausedLock.Unlock()

	return e.isPaused
}

// CurrentTime returns the time of the most recently handled event, or the
// limit of the last RunUntil if that is later.
func (e *SerialEngine) CurrentTime() VTimeInMs {
	return e.readNow()
}

var _ Engine = (*SerialEngine)(nil)

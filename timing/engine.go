package timing

import "github.com/novaera/showcase/hooking"

// HookPosBeforeEvent is a hook position that triggers before handling an event.
var HookPosBeforeEvent = &hooking.HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent is a hook position that triggers after handling an event.
var HookPosAfterEvent = &hooking.HookPos{Name: "AfterEvent"}

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() VTimeInMs
}

// EventScheduler can be used to schedule and cancel future events.
type EventScheduler interface {
	TimeTeller

	// Schedule registers an event to happen in the future. Scheduling an
	// event earlier than the current time panics.
	Schedule(evt Event)

	// Cancel removes a pending event. It reports whether the event was still
	// pending.
	Cancel(evt Event) bool
}

// An Engine owns the serial queue that all state changes go through.
type Engine interface {
	hooking.Hookable
	EventScheduler

	// Run processes events until the queue is empty.
	Run() error

	// Pause stops the engine from dispatching more events until Continue is
	// called.
	Pause()

	// Continue resumes a paused engine.
	Continue()

	// Invoke runs fn on the serial queue, never concurrently with an event
	// handler. It must not be called from inside a handler.
	Invoke(fn func())
}

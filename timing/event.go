// Package timing provides the serial event queue that drives every state
// change in the showcase, either in virtual time or paced by the wall clock.
package timing

import "github.com/novaera/showcase/id"

// An Event is something going to happen in the future.
type Event interface {
	// ID uniquely identifies the event. It is used to cancel the event.
	ID() string

	// Time returns the time that the event should happen.
	Time() VTimeInMs

	// Handler returns the handler that should handle the event.
	Handler() Handler

	// IsSecondary tells if the event is a secondary event. Secondary event are
	// handled after all same-time primary events are handled.
	IsSecondary() bool
}

// EventBase provides the basic fields and getters for other events.
type EventBase struct {
	id        string
	time      VTimeInMs
	handler   Handler
	secondary bool
}

// NewEventBase creates a new EventBase.
func NewEventBase(t VTimeInMs, handler Handler) *EventBase {
	return &EventBase{
		id:      id.Generate(),
		time:    t,
		handler: handler,
	}
}

// ID returns the ID of the event.
func (e EventBase) ID() string {
	return e.id
}

// Time return the time that the event is going to happen.
func (e EventBase) Time() VTimeInMs {
	return e.time
}

// Handler returns the handler to handle the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

// IsSecondary returns true if the event is a secondary event.
func (e EventBase) IsSecondary() bool {
	return e.secondary
}

// A Handler defines a domain for the events.
//
// One event is always constraint to one Handler, which means the event can
// only be scheduled by one handler and can only directly modify that handler.
type Handler interface {
	Handle(evt Event) error
}

// Named is implemented by handlers that can be referred to by name in logs
// and traces.
type Named interface {
	Name() string
}

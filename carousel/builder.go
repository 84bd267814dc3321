package carousel

import (
	"github.com/novaera/showcase/hooking"
	"github.com/novaera/showcase/timing"
)

// Builder can build Controllers.
type Builder struct {
	engine   timing.EventScheduler
	interval timing.VTimeInMs
}

// MakeBuilder creates a builder with the default interval.
func MakeBuilder() Builder {
	return Builder{
		interval: DefaultInterval,
	}
}

// WithEngine sets the engine that schedules the rotation ticks.
func (b Builder) WithEngine(engine timing.EventScheduler) Builder {
	b.engine = engine
	return b
}

// WithInterval sets the interval used when the controller is started through
// a Deck.
func (b Builder) WithInterval(interval timing.VTimeInMs) Builder {
	b.interval = interval
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.engine == nil {
		panic("carousel: engine is not set")
	}

	if b.interval == 0 {
		panic("carousel: interval cannot be 0")
	}
}

// Build creates a stopped controller.
func (b Builder) Build(name string) *Controller {
	b.parametersMustBeValid()

	return &Controller{
		HookableBase: hooking.NewHookableBase(),
		name:         name,
		engine:       b.engine,
		interval:     b.interval,
	}
}

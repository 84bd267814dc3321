// Package carousel implements the auto-advancing slide carousel: a cursor
// over a fixed slide set that a recurring tick moves forward and a manual
// selection moves anywhere.
package carousel

import (
	"fmt"

	"github.com/novaera/showcase/hooking"
	"github.com/novaera/showcase/timing"
)

// DefaultInterval is the time between two automatic advances.
const DefaultInterval timing.VTimeInMs = 4000

// Controller owns the active index and the rotation timer.
//
// A Controller is driven through its engine's serial queue: ticks arrive as
// events, and callers on other goroutines must go through Engine.Invoke.
// Nothing in it is locked.
type Controller struct {
	*hooking.HookableBase

	name     string
	engine   timing.EventScheduler
	interval timing.VTimeInMs
	timer    *timing.IntervalTimer

	slideCount  int
	activeIndex int

	// deckSize is the slide count of the bound Deck, or 0 when unbound.
	deckSize int
}

// Name returns the name of the controller.
func (c *Controller) Name() string {
	return c.name
}

// Start begins automatic rotation over slideCount slides, advancing every
// interval. Starting a running controller restarts it: the live timer is
// released before the new one is created, so there is never more than one.
func (c *Controller) Start(slideCount int, interval timing.VTimeInMs) error {
	if slideCount < 1 {
		return &InvalidConfigurationError{
			Reason: fmt.Sprintf("slide count must be at least 1, got %d", slideCount),
		}
	}

	if interval == 0 {
		return &InvalidConfigurationError{Reason: "interval must be positive"}
	}

	if c.deckSize != 0 && slideCount != c.deckSize {
		return &InvalidConfigurationError{
			Reason: fmt.Sprintf(
				"slide count %d does not match the bound deck of %d slides",
				slideCount, c.deckSize),
		}
	}

	c.Stop()

	from := c.activeIndex
	c.slideCount = slideCount
	c.activeIndex %= slideCount
	c.interval = interval

	c.timer = timing.NewIntervalTimer(c.engine, interval, c)
	if err := c.timer.Start(); err != nil {
		c.timer = nil
		return err
	}

	c.notify(TransitionStart, from, c.engine.CurrentTime())

	return nil
}

// Stop cancels automatic rotation. It is safe to call at any time, including
// on a controller that was never started.
func (c *Controller) Stop() {
	if c.timer == nil {
		return
	}

	c.timer.Stop()
	c.timer = nil

	c.notify(TransitionStop, c.activeIndex, c.engine.CurrentTime())
}

// SelectSlide jumps to index. It does not touch the rotation timer, so the
// next automatic advance happens when it was already due and continues from
// index.
func (c *Controller) SelectSlide(index int) error {
	if index < 0 || index >= c.slideCount {
		return &OutOfRangeError{Index: index, Count: c.slideCount}
	}

	from := c.activeIndex
	c.activeIndex = index

	c.notify(TransitionSelect, from, c.engine.CurrentTime())

	return nil
}

// bind ties a stopped controller to a deck of slideCount slides. Manual
// selection works before the first Start, and Start refuses any other
// count so the cursor always indexes into the deck.
func (c *Controller) bind(slideCount int) {
	if c.IsRunning() {
		panic("carousel: cannot rebind a running controller")
	}

	c.slideCount = slideCount
	c.deckSize = slideCount
	c.activeIndex %= slideCount
}

// ActiveIndex returns the index of the slide on display.
func (c *Controller) ActiveIndex() int {
	return c.activeIndex
}

// SlideCount returns the number of slides the controller rotates over. It
// is zero until the controller is started or bound to a Deck.
func (c *Controller) SlideCount() int {
	return c.slideCount
}

// Interval returns the rotation interval.
func (c *Controller) Interval() timing.VTimeInMs {
	return c.interval
}

// IsRunning tells whether automatic rotation is on.
func (c *Controller) IsRunning() bool {
	return c.timer != nil
}

// NextAdvanceTime returns when the next automatic advance is due.
func (c *Controller) NextAdvanceTime() (timing.VTimeInMs, bool) {
	if c.timer == nil {
		return 0, false
	}

	return c.timer.NextTickTime()
}

// Tick advances the cursor by one, wrapping at the end of the slide set.
func (c *Controller) Tick(now timing.VTimeInMs) {
	from := c.activeIndex
	c.activeIndex = (c.activeIndex + 1) % c.slideCount

	c.notify(TransitionAdvance, from, now)
}

func (c *Controller) notify(
	kind TransitionKind,
	from int,
	now timing.VTimeInMs,
) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    kind.hookPos(),
		Item: Transition{
			Kind: kind,
			From: from,
			To:   c.activeIndex,
			Time: now,
		},
	})
}

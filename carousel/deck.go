package carousel

import (
	"sync"

	"github.com/novaera/showcase/timing"
)

// Indicator is one dot of the position indicator row.
type Indicator struct {
	Index  int  `json:"index"`
	Active bool `json:"active"`
}

// Deck binds a fixed slide set to a Controller and is what the presentation
// layer talks to.
type Deck struct {
	ctrl   *Controller
	slides []Slide
}

// NewDeck copies slides into a new Deck. The slide set cannot change
// afterwards.
func NewDeck(ctrl *Controller, slides []Slide) (*Deck, error) {
	if len(slides) == 0 {
		return nil, &InvalidConfigurationError{Reason: "deck has no slides"}
	}

	owned := make([]Slide, len(slides))
	copy(owned, slides)

	ctrl.bind(len(owned))

	return &Deck{ctrl: ctrl, slides: owned}, nil
}

// Controller returns the controller behind the deck.
func (d *Deck) Controller() *Controller {
	return d.ctrl
}

// Len returns the number of slides.
func (d *Deck) Len() int {
	return len(d.slides)
}

// Slides returns a copy of the slide set.
func (d *Deck) Slides() []Slide {
	out := make([]Slide, len(d.slides))
	copy(out, d.slides)

	return out
}

// Mount starts rotation over the deck with the controller's interval. The
// returned unmount function stops it; calling unmount more than once is
// harmless.
func (d *Deck) Mount() (unmount func(), err error) {
	return d.MountWithInterval(d.ctrl.Interval())
}

// MountWithInterval is Mount with an explicit interval.
func (d *Deck) MountWithInterval(
	interval timing.VTimeInMs,
) (unmount func(), err error) {
	if err := d.ctrl.Start(len(d.slides), interval); err != nil {
		return nil, err
	}

	var once sync.Once

	return func() { once.Do(d.ctrl.Stop) }, nil
}

// WithRotation runs fn with rotation on and stops rotation when fn returns,
// whether it returns an error or panics.
func (d *Deck) WithRotation(fn func() error) error {
	unmount, err := d.Mount()
	if err != nil {
		return err
	}
	defer unmount()

	return fn()
}

// ActiveIndex returns the index of the slide on display.
func (d *Deck) ActiveIndex() int {
	return d.ctrl.ActiveIndex()
}

// ActiveSlide returns the slide on display.
func (d *Deck) ActiveSlide() Slide {
	return d.slides[d.ctrl.ActiveIndex()]
}

// Select shows the slide at index; see Controller.SelectSlide.
func (d *Deck) Select(index int) error {
	return d.ctrl.SelectSlide(index)
}

// Indicators returns one indicator per slide with exactly one active.
func (d *Deck) Indicators() []Indicator {
	active := d.ActiveIndex()
	out := make([]Indicator, len(d.slides))

	for i := range out {
		out[i] = Indicator{Index: i, Active: i == active}
	}

	return out
}

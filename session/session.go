// Package session assembles a running showcase: the engine, the carousel and
// whatever observes it.
package session

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/novaera/showcase/carousel"
	"github.com/novaera/showcase/monitoring"
	"github.com/novaera/showcase/timing"
	"github.com/novaera/showcase/tracing"
)

// ErrWrongEngine is returned when a run method does not match the kind of
// engine the session was built with.
var ErrWrongEngine = errors.New("session: operation not supported by engine")

// A Session owns one carousel and everything wired around it.
type Session struct {
	id     string
	logger *zap.Logger

	engine   timing.Engine
	virtual  *timing.SerialEngine
	realTime *timing.RealTimeEngine

	controller *carousel.Controller
	deck       *carousel.Deck
	recorder   *tracing.TransitionRecorder
	monitor    *monitoring.Monitor

	unmount func()
}

// ID returns the unique ID of the session.
func (s *Session) ID() string {
	return s.id
}

// Engine returns the engine of the session.
func (s *Session) Engine() timing.Engine {
	return s.engine
}

// Controller returns the carousel controller.
func (s *Session) Controller() *carousel.Controller {
	return s.controller
}

// Deck returns the deck.
func (s *Session) Deck() *carousel.Deck {
	return s.deck
}

// Recorder returns the transition recorder, or nil without trace.
func (s *Session) Recorder() *tracing.TransitionRecorder {
	return s.recorder
}

// Monitor returns the monitor, or nil without monitoring.
func (s *Session) Monitor() *monitoring.Monitor {
	return s.monitor
}

// Mount starts rotation. Mounting a mounted session restarts rotation.
func (s *Session) Mount() error {
	var err error

	s.engine.Invoke(func() {
		var unmount func()

		unmount, err = s.deck.Mount()
		if err == nil {
			s.unmount = unmount
		}
	})

	return err
}

// Unmount stops rotation. It is a no-op when not mounted.
func (s *Session) Unmount() {
	s.engine.Invoke(func() {
		if s.unmount != nil {
			s.unmount()
			s.unmount = nil
		}
	})
}

// Select shows the slide at index.
func (s *Session) Select(index int) error {
	var err error

	s.engine.Invoke(func() { err = s.deck.Select(index) })

	return err
}

// ActiveIndex returns the index of the slide on display.
func (s *Session) ActiveIndex() int {
	var active int

	s.engine.Invoke(func() { active = s.deck.ActiveIndex() })

	return active
}

// RunUntil advances a virtual-time session to t.
func (s *Session) RunUntil(t timing.VTimeInMs) error {
	if s.virtual == nil {
		return ErrWrongEngine
	}

	return s.virtual.RunUntil(t)
}

// Serve runs a real-time session until ctx is done.
func (s *Session) Serve(ctx context.Context) error {
	if s.realTime == nil {
		return ErrWrongEngine
	}

	return s.realTime.Serve(ctx)
}

// Terminate stops rotation, shuts the monitor down and closes the trace.
func (s *Session) Terminate() error {
	s.Unmount()

	var errs []error

	if s.monitor != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		errs = append(errs, s.monitor.Shutdown(ctx))
	}

	errs = append(errs, s.closeRecorder())

	err := errors.Join(errs...)
	if err != nil {
		s.logger.Error("terminating session", zap.Error(err))
	}

	return err
}

func (s *Session) closeRecorder() error {
	if s.recorder == nil {
		return nil
	}

	return s.recorder.Close()
}

package session

import (
	"fmt"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/novaera/showcase/carousel"
	"github.com/novaera/showcase/hooking"
	"github.com/novaera/showcase/monitoring"
	"github.com/novaera/showcase/timing"
	"github.com/novaera/showcase/tracing"
)

// Builder can be used to build a Session.
type Builder struct {
	realTime    bool
	monitorOn   bool
	monitorPort int
	traceOn     bool
	tracePath   string
	interval    timing.VTimeInMs
	slides      []carousel.Slide
	hooks       []hooking.Hook
	logger      *zap.Logger
}

// MakeBuilder creates a builder for a virtual-time session over the default
// slides, without monitor or trace.
func MakeBuilder() Builder {
	return Builder{
		interval: carousel.DefaultInterval,
		slides:   carousel.DefaultSlides(),
		logger:   zap.NewNop(),
	}
}

// WithRealTime paces the session with the wall clock.
func (b Builder) WithRealTime() Builder {
	b.realTime = true
	return b
}

// WithMonitor serves the page and the monitoring API.
func (b Builder) WithMonitor() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number of the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithTrace records every transition to SQLite.
func (b Builder) WithTrace() Builder {
	b.traceOn = true
	return b
}

// WithTracePath sets the trace file. Without it the file is named after the
// session ID.
func (b Builder) WithTracePath(path string) Builder {
	b.tracePath = path
	return b
}

// WithInterval sets the time between automatic advances.
func (b Builder) WithInterval(interval timing.VTimeInMs) Builder {
	b.interval = interval
	return b
}

// WithSlides sets the slide set.
func (b Builder) WithSlides(slides []carousel.Slide) Builder {
	b.slides = slides
	return b
}

// WithHook attaches an extra hook to the carousel controller.
func (b Builder) WithHook(h hooking.Hook) Builder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], h)
	return b
}

// WithLogger sets the logger shared by all parts of the session.
func (b Builder) WithLogger(logger *zap.Logger) Builder {
	b.logger = logger
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.traceOn && b.tracePath != "" {
		panic("trace path cannot be set when tracing is disabled")
	}

	if b.interval == 0 {
		panic("interval must be positive")
	}
}

// Build builds the session. Rotation is not started; call Mount.
func (b Builder) Build() (*Session, error) {
	b.parametersMustBeValid()

	s := &Session{
		id:     xid.New().String(),
		logger: b.logger,
	}

	s.logger = s.logger.With(zap.String("session", s.id))

	if b.realTime {
		s.realTime = timing.NewRealTimeEngine()
		s.engine = s.realTime
	} else {
		s.virtual = timing.NewSerialEngine()
		s.engine = s.virtual
	}

	s.engine.AcceptHook(hooking.AtPositions(
		timing.NewEventLogger(s.logger), timing.HookPosBeforeEvent))

	s.controller = carousel.MakeBuilder().
		WithEngine(s.engine).
		WithInterval(b.interval).
		Build("Carousel")
	s.controller.AcceptHook(carousel.NewTransitionLogger(s.logger))

	for _, h := range b.hooks {
		s.controller.AcceptHook(h)
	}

	deck, err := carousel.NewDeck(s.controller, b.slides)
	if err != nil {
		return nil, err
	}
	s.deck = deck

	if b.traceOn {
		if err := b.buildRecorder(s); err != nil {
			return nil, err
		}
	}

	if b.monitorOn {
		if err := b.buildMonitor(s); err != nil {
			s.closeRecorder()
			return nil, err
		}
	}

	return s, nil
}

func (b Builder) buildRecorder(s *Session) error {
	path := b.tracePath
	if path == "" {
		path = "showcase_trace_" + s.id
	}

	recorder, err := tracing.NewTransitionRecorder(path, s.logger)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	s.recorder = recorder
	s.controller.AcceptHook(recorder)

	return nil
}

func (b Builder) buildMonitor(s *Session) error {
	s.monitor = monitoring.NewMonitor().WithLogger(s.logger)
	if b.monitorPort > 0 {
		s.monitor.WithPortNumber(b.monitorPort)
	}

	s.monitor.RegisterEngine(s.engine)
	s.monitor.RegisterDeck(s.deck)
	s.controller.AcceptHook(s.monitor)

	if _, err := s.monitor.StartServer(); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	return nil
}

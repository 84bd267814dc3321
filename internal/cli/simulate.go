package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/novaera/showcase/carousel"
	"github.com/novaera/showcase/hooking"
	"github.com/novaera/showcase/session"
	"github.com/novaera/showcase/timing"
)

type selection struct {
	at    timing.VTimeInMs
	index int
}

// parseSelection parses "time_ms:index".
func parseSelection(s string) (selection, error) {
	at, index, ok := strings.Cut(s, ":")
	if !ok {
		return selection{}, fmt.Errorf("selection %q is not time_ms:index", s)
	}

	t, err := strconv.ParseUint(at, 10, 64)
	if err != nil {
		return selection{}, fmt.Errorf("selection %q: bad time: %w", s, err)
	}

	i, err := strconv.Atoi(index)
	if err != nil {
		return selection{}, fmt.Errorf("selection %q: bad index: %w", s, err)
	}

	return selection{at: timing.VTimeInMs(t), index: i}, nil
}

func parseSelections(raw []string) ([]selection, error) {
	out := make([]selection, 0, len(raw))

	for _, s := range raw {
		sel, err := parseSelection(s)
		if err != nil {
			return nil, err
		}

		out = append(out, sel)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].at < out[j].at })

	return out, nil
}

// intervalOf converts d to engine time. The engine counts whole
// milliseconds, so anything shorter is refused.
func intervalOf(d time.Duration) (timing.VTimeInMs, error) {
	if d < time.Millisecond {
		return 0, fmt.Errorf("interval must be at least 1ms, got %s", d)
	}

	return timing.FromDuration(d), nil
}

type transitionPrinter struct {
	w      io.Writer
	slides []carousel.Slide
}

func (p *transitionPrinter) Func(ctx hooking.HookCtx) {
	tr, ok := ctx.Item.(carousel.Transition)
	if !ok {
		return
	}

	fmt.Fprintf(p.w, "%8d ms  %-7s %d -> %d  %s\n",
		tr.Time, tr.Kind, tr.From, tr.To, p.slides[tr.To].Title)
}

func newSimulateCmd(a *app) *cobra.Command {
	var (
		until      uint64
		selections []string
		interval   time.Duration
		trace      bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay the carousel in virtual time and print every transition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sels, err := parseSelections(selections)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("interval") {
				interval = a.cfg.Carousel.Interval
			}

			period, err := intervalOf(interval)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("trace") {
				trace = a.cfg.Trace.Enabled
			}

			slides := carousel.DefaultSlides()
			b := session.MakeBuilder().
				WithLogger(a.logger).
				WithSlides(slides).
				WithInterval(period).
				WithHook(&transitionPrinter{w: cmd.OutOrStdout(), slides: slides})

			if trace {
				b = b.WithTrace().WithTracePath(a.cfg.Trace.Path)
			}

			s, err := b.Build()
			if err != nil {
				return err
			}

			return runSimulation(s, timing.VTimeInMs(until), sels)
		},
	}

	cmd.Example = `  showcase simulate --until 20000
  showcase simulate --until 8000 --select 4000:3`

	cmd.Flags().Uint64Var(&until, "until", 20000,
		"virtual time in ms to stop at")
	cmd.Flags().StringSliceVar(&selections, "select", nil,
		"manual selection as time_ms:index, may repeat")
	cmd.Flags().DurationVar(&interval, "interval", 4*time.Second,
		"time between automatic advances (default from config)")
	cmd.Flags().BoolVar(&trace, "trace", false,
		"record transitions to SQLite (default from config)")

	return cmd
}

// runSimulation mounts the deck and applies each selection after every
// event at or before its time has been handled.
func runSimulation(
	s *session.Session,
	until timing.VTimeInMs,
	sels []selection,
) (err error) {
	defer func() {
		if termErr := s.Terminate(); err == nil {
			err = termErr
		}
	}()

	if err := s.Mount(); err != nil {
		return err
	}

	for _, sel := range sels {
		if sel.at > until {
			break
		}

		if err := s.RunUntil(sel.at); err != nil {
			return err
		}

		if err := s.Select(sel.index); err != nil {
			return fmt.Errorf("at %d ms: %w", sel.at, err)
		}
	}

	return s.RunUntil(until)
}

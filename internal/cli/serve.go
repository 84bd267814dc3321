package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/novaera/showcase/session"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the page with a live carousel until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Monitor.Port
			}

			period, err := intervalOf(a.cfg.Carousel.Interval)
			if err != nil {
				return err
			}

			b := session.MakeBuilder().
				WithLogger(a.logger).
				WithRealTime().
				WithInterval(period).
				WithMonitor().
				WithMonitorPort(port)

			if a.cfg.Trace.Enabled {
				b = b.WithTrace().WithTracePath(a.cfg.Trace.Path)
			}

			s, err := b.Build()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(),
				os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, a, s)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0,
		"monitor port, 0 for a random one (default from config)")

	return cmd
}

func serve(ctx context.Context, a *app, s *session.Session) (err error) {
	defer func() {
		if termErr := s.Terminate(); err == nil {
			err = termErr
		}
	}()

	if err := s.Mount(); err != nil {
		return err
	}

	if a.cfg.Monitor.OpenBrowser {
		if err := s.Monitor().OpenInBrowser(); err != nil {
			a.logger.Warn("opening browser", zap.Error(err))
		}
	}

	return s.Serve(ctx)
}

// Package cli provides the command-line interface of showcase.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/novaera/showcase/internal/config"
	"github.com/novaera/showcase/internal/logging"
)

type app struct {
	configPath string
	envFile    string

	cfg    *config.Config
	logger *zap.Logger
}

func (a *app) load(_ *cobra.Command, _ []string) error {
	var envFiles []string
	if a.envFile != "" {
		envFiles = append(envFiles, a.envFile)
	}

	cfg, err := config.Load(a.configPath, envFiles...)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger

	return nil
}

func (a *app) sync(_ *cobra.Command, _ []string) {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// NewRootCommand builds the showcase command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "showcase",
		Short: "Showcase runs the auto-advancing slide carousel of the sales page.",
		Long: `Showcase runs the auto-advancing slide carousel of the sales page. ` +
			`It can replay the carousel in virtual time (simulate), serve the page ` +
			`with a live carousel (serve), or list the slides (slides).`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		PersistentPostRun: a.sync,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", "",
		"dotenv file to load before reading the environment (default .env)")

	rootCmd.AddCommand(
		newSimulateCmd(a),
		newServeCmd(a),
		newSlidesCmd(a),
	)

	return rootCmd
}

// Execute runs the command tree on the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}

// Package commands is the landmarkctl command tree.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"landmark-lens/api/internal/config"
	"landmark-lens/api/internal/engines"
	"landmark-lens/api/internal/logging"
	"landmark-lens/api/internal/recognition"
)

var (
	engineName string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
	client *recognition.Client
)

func Execute() error {
	return newRoot().Execute()
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "landmarkctl",
		Short:         "Identify landmarks in photos and get directions to them",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if logger, err = logging.New(logLevel); err != nil {
				return err
			}
			if cfg, err = config.Load(); err != nil {
				return err
			}
			engs, err := engines.Build(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			if client, err = engs.GetEngine(engineName); err != nil {
				return fmt.Errorf("--engine: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&engineName, "engine", "", "backend: gemini | generativeai (default GEMINI_SDK)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	root.AddCommand(identifyCmd(), directionsCmd())
	return root
}

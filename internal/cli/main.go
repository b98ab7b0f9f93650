// Package cli defines the shortsmith command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"shortsmith/internal/config"
	"shortsmith/internal/logging"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shortsmith",
		Short:         "Turn long-form videos into captioned vertical clips",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	root.PersistentFlags().String("config", "config.yaml", "Path to config file")
	root.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	root.PersistentFlags().Bool("verbose", false, "Pretty console logging")

	root.AddCommand(newProcessCmd(), newPublishCmd(), newMetadataCmd(), newAuthCmd())
	return root
}

// setup loads config and builds the logger from the persistent flags. The
// returned closer releases the rotating log file.
func setup(cmd *cobra.Command) (config.Config, zerolog.Logger, func(), error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, err
	}
	if level == "" {
		level = cfg.Logging.Level
	}

	log, closer, err := logging.New(logging.Options{
		Level:   level,
		LogDir:  cfg.Logging.Dir,
		Console: verbose || cfg.Logging.Console,
	})
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, fmt.Errorf("configure logging: %w", err)
	}
	return cfg, log, func() { _ = closer.Close() }, nil
}

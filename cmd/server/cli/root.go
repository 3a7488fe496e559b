package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/simaogato/wizardfund-backend/internal/config"
)

var (
	cfgPath string
	rootCmd = NewRootCmd()
)

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wizardfund",
		Short:         "Wizard Fund backend: share valuation, previews and fund API gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (defaults and WIZARDFUND_* environment when empty)")

	cmd.AddCommand(ServeCmd())
	cmd.AddCommand(PreviewCmd())
	cmd.AddCommand(HealthCmd())
	return cmd
}

// Setup runs the command selected on the command line
func Setup() error {
	return rootCmd.Execute()
}

func GetConfigPath() string {
	return cfgPath
}

// loadConfig reads the config and installs the configured global logger
func loadConfig() (*config.Config, error) {
	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return nil, fmt.Errorf("error while loading config file %q: %w", GetConfigPath(), err)
	}
	setupLogger(&cfg.Log)
	return cfg, nil
}

func setupLogger(cfg *config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

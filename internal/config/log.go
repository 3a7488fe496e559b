package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

func (cfg *LogConfig) Validate() error {
	if _, err := zerolog.ParseLevel(cfg.Level); err != nil {
		return fmt.Errorf("invalid log level %q", cfg.Level)
	}
	if cfg.Format != "console" && cfg.Format != "json" {
		return fmt.Errorf("log format must be console or json, got %q", cfg.Format)
	}
	return nil
}

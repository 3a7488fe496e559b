package config

import (
	"errors"
	"net/url"
	"time"
)

type FundAPIConfig struct {
	BaseURL       string            `mapstructure:"base-url"`
	Timeout       time.Duration     `mapstructure:"timeout"`
	MaxRetryTimes uint              `mapstructure:"max-retry-times"`
	RetryInterval time.Duration     `mapstructure:"retry-interval"`
	Headers       map[string]string `mapstructure:"headers"`
	// Admin credentials for register, deposit and withdraw; optional
	AdminToken  string `mapstructure:"admin-token"`
	AdminWallet string `mapstructure:"admin-wallet"`
}

func (cfg *FundAPIConfig) Validate() error {
	if cfg.BaseURL == "" {
		return errors.New("fund api base-url must be set")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("fund api base-url must be an absolute url")
	}
	if cfg.Timeout <= 0 {
		return errors.New("fund api timeout must be positive")
	}
	if cfg.MaxRetryTimes == 0 {
		return errors.New("fund api max-retry-times must be at least 1")
	}
	if cfg.RetryInterval <= 0 {
		return errors.New("fund api retry-interval must be positive")
	}
	return nil
}

package config

import "errors"

type QueueConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	URL        string `mapstructure:"url"`
	Exchange   string `mapstructure:"exchange"`
	QueueName  string `mapstructure:"queue-name"`
	RoutingKey string `mapstructure:"routing-key"`
	Prefetch   int    `mapstructure:"prefetch"`
}

func (cfg *QueueConfig) Validate() error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.URL == "" {
		return errors.New("queue url must be set")
	}
	if cfg.Exchange == "" {
		return errors.New("queue exchange must be set")
	}
	if cfg.QueueName == "" {
		return errors.New("queue-name must be set")
	}
	if cfg.Prefetch <= 0 {
		return errors.New("queue prefetch must be positive")
	}
	return nil
}

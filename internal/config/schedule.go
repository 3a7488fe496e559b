package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// ScheduleConfig holds cron specs with a seconds field; an empty spec disables the job
type ScheduleConfig struct {
	PerformanceRefresh string `mapstructure:"performance-refresh"`
	HealthCheck        string `mapstructure:"health-check"`
}

var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

func (cfg *ScheduleConfig) Validate() error {
	for name, spec := range map[string]string{
		"performance-refresh": cfg.PerformanceRefresh,
		"health-check":        cfg.HealthCheck,
	} {
		if spec == "" {
			continue
		}
		if _, err := cronParser.Parse(spec); err != nil {
			return fmt.Errorf("invalid %s spec %q: %w", name, spec, err)
		}
	}
	return nil
}

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/simaogato/wizardfund-backend/internal/config"
	"github.com/simaogato/wizardfund-backend/internal/domain"
	"github.com/simaogato/wizardfund-backend/internal/observability/metrics"
)

const (
	jobPerformanceRefresh = "performance-refresh"
	jobHealthCheck        = "health-check"

	jobTimeout = 5 * time.Minute
)

// PerformanceRefresher writes fresh manager performance into the read model
type PerformanceRefresher interface {
	RefreshPerformance(ctx context.Context) (int, error)
}

// HealthProber reports the status of the external fund API
type HealthProber interface {
	Health(ctx context.Context) (*domain.HealthStatus, error)
}

// Scheduler manages the periodic jobs
type Scheduler struct {
	Cron      *cron.Cron
	Refresher PerformanceRefresher
	Prober    HealthProber

	healthy func(bool)
}

// NewScheduler creates a new Scheduler
// healthy, when set, is told the outcome of every health probe
func NewScheduler(refresher PerformanceRefresher, prober HealthProber, healthy func(bool)) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		Refresher: refresher,
		Prober:    prober,
		healthy:   healthy,
	}
}

// RegisterAll registers the jobs whose spec is set
func (s *Scheduler) RegisterAll(ctx context.Context, cfg *config.ScheduleConfig) error {
	if cfg.PerformanceRefresh != "" {
		if _, err := s.Cron.AddFunc(cfg.PerformanceRefresh, func() { s.RefreshPerformance(ctx) }); err != nil {
			return fmt.Errorf("register %s job: %w", jobPerformanceRefresh, err)
		}
	}
	if cfg.HealthCheck != "" {
		if _, err := s.Cron.AddFunc(cfg.HealthCheck, func() { s.CheckHealth(ctx) }); err != nil {
			return fmt.Errorf("register %s job: %w", jobHealthCheck, err)
		}
	}
	return nil
}

// Run starts the cron scheduler and blocks until ctx is done and running jobs finish
func (s *Scheduler) Run(ctx context.Context) error {
	s.Cron.Start()
	log.Ctx(ctx).Info().Int("jobs", len(s.Cron.Entries())).Msg("scheduler started")

	<-ctx.Done()

	<-s.Cron.Stop().Done()
	log.Ctx(ctx).Info().Msg("scheduler stopped")
	return nil
}

// RefreshPerformance runs the performance refresh job once
func (s *Scheduler) RefreshPerformance(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	refreshed, err := s.Refresher.RefreshPerformance(ctx)
	metrics.RecordSchedulerRun(time.Since(start), jobPerformanceRefresh, err != nil)

	if err != nil {
		log.Ctx(ctx).Error().Err(err).Int("refreshed", refreshed).Msg("performance refresh failed")
		return
	}
	log.Ctx(ctx).Info().Int("refreshed", refreshed).Msg("performance refreshed")
}

// CheckHealth runs the health probe job once
func (s *Scheduler) CheckHealth(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	status, err := s.Prober.Health(ctx)
	metrics.RecordSchedulerRun(time.Since(start), jobHealthCheck, err != nil)

	healthy := err == nil && status.Healthy()
	metrics.RecordUpstreamHealth(healthy)
	if s.healthy != nil {
		s.healthy(healthy)
	}

	switch {
	case err != nil:
		log.Ctx(ctx).Warn().Err(err).Msg("fund api health check failed")
	case !healthy:
		log.Ctx(ctx).Warn().Str("status", status.Status).Msg("fund api is not healthy")
	default:
		log.Ctx(ctx).Debug().Str("version", status.Version).Dur("uptime", status.Uptime).Msg("fund api healthy")
	}
}

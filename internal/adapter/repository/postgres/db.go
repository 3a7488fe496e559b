package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wizardfund-backend/internal/config"
	"github.com/simaogato/wizardfund-backend/internal/domain"
	"github.com/simaogato/wizardfund-backend/internal/observability/metrics"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB opens a database connection and pings it, retrying while the database starts up
func NewDB(ctx context.Context, cfg *config.DbConfig) (*DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	attempts := cfg.ConnectRetries
	if attempts == 0 {
		attempts = 1
	}

	err = retry.Do(
		func() error { return db.PingContext(ctx) },
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().Err(err).Uint("attempt", n+1).Msg("database not ready")
		}),
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS fund_pools (
		id              TEXT PRIMARY KEY,
		manager_address TEXT NOT NULL,
		tvl_base_units  NUMERIC NOT NULL,
		share_supply    NUMERIC NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS fund_managers (
		id                   TEXT PRIMARY KEY,
		wallet_address       TEXT NOT NULL UNIQUE,
		twitter_handle       TEXT NOT NULL DEFAULT '',
		fee_bps              BIGINT NOT NULL,
		strategy_description TEXT NOT NULL DEFAULT '',
		verified             BOOLEAN NOT NULL DEFAULT FALSE,
		performance_score    NUMERIC NOT NULL DEFAULT 0,
		reputation_score     NUMERIC NOT NULL DEFAULT 0,
		depositor_count      BIGINT NOT NULL DEFAULT 0,
		performance_refreshed_at TIMESTAMPTZ,
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS user_allocations (
		id                 TEXT NOT NULL DEFAULT '',
		user_address       TEXT NOT NULL,
		pool_id            TEXT NOT NULL,
		share_balance      NUMERIC NOT NULL,
		last_withdrawal_at BIGINT,
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_address, pool_id)
	)`,
	`CREATE TABLE IF NOT EXISTS fund_transactions (
		id                TEXT PRIMARY KEY,
		user_address      TEXT NOT NULL,
		pool_id           TEXT NOT NULL,
		tx_type           TEXT NOT NULL,
		amount_base_units NUMERIC NOT NULL,
		fund_token_change NUMERIC NOT NULL,
		created_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS fund_transactions_user_created_idx
		ON fund_transactions (user_address, created_at DESC)`,
}

// Migrate creates the snapshot tables if they do not exist
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

// observe records the latency of a repository call; a missing row is not a failure
func observe(method string, start time.Time, err error) {
	metrics.RecordDbLatency(time.Since(start), method, err != nil && !errors.Is(err, domain.ErrNotFound))
}

// parseDecimal parses a NUMERIC column scanned as text
func parseDecimal(column, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return d, nil
}

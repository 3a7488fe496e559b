package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/simaogato/wizardfund-backend/internal/domain"
)

// poolRepository implements domain.PoolRepository
type poolRepository struct {
	db *DB
}

// NewPoolRepository creates a new pool repository
func NewPoolRepository(db *DB) domain.PoolRepository {
	return &poolRepository{db: db}
}

const poolColumns = `id, manager_address, tvl_base_units::text, share_supply::text, updated_at`

// GetByID retrieves a pool by its ID
func (r *poolRepository) GetByID(ctx context.Context, id string) (pool *domain.FundPool, err error) {
	defer func(start time.Time) { observe("pools.get", start, err) }(time.Now())

	query := `SELECT ` + poolColumns + ` FROM fund_pools WHERE id = $1`

	pool, err = scanPool(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("pool %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pool by ID: %w", err)
	}
	return pool, nil
}

// List retrieves all pools ordered by ID
func (r *poolRepository) List(ctx context.Context) (pools []*domain.FundPool, err error) {
	defer func(start time.Time) { observe("pools.list", start, err) }(time.Now())

	query := `SELECT ` + poolColumns + ` FROM fund_pools ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		pool, err := scanPool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pool: %w", err)
		}
		pools = append(pools, pool)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pools: %w", err)
	}
	return pools, nil
}

// Upsert inserts or replaces a pool snapshot; an older snapshot never overwrites a newer one
func (r *poolRepository) Upsert(ctx context.Context, pool *domain.FundPool) (err error) {
	defer func(start time.Time) { observe("pools.upsert", start, err) }(time.Now())

	updatedAt := pool.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO fund_pools (id, manager_address, tvl_base_units, share_supply, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			manager_address = EXCLUDED.manager_address,
			tvl_base_units  = EXCLUDED.tvl_base_units,
			share_supply    = EXCLUDED.share_supply,
			updated_at      = EXCLUDED.updated_at
		WHERE fund_pools.updated_at <= EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		pool.ID,
		pool.ManagerAddress,
		pool.TVLBaseUnits.String(),
		pool.ShareSupply.String(),
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pool: %w", err)
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPool(row rowScanner) (*domain.FundPool, error) {
	var pool domain.FundPool
	var tvlStr, supplyStr string

	if err := row.Scan(&pool.ID, &pool.ManagerAddress, &tvlStr, &supplyStr, &pool.UpdatedAt); err != nil {
		return nil, err
	}

	var err error
	if pool.TVLBaseUnits, err = parseDecimal("tvl_base_units", tvlStr); err != nil {
		return nil, err
	}
	if pool.ShareSupply, err = parseDecimal("share_supply", supplyStr); err != nil {
		return nil, err
	}
	return &pool, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/simaogato/wizardfund-backend/internal/domain"
)

// allocationRepository implements domain.AllocationRepository
type allocationRepository struct {
	db *DB
}

// NewAllocationRepository creates a new allocation repository
func NewAllocationRepository(db *DB) domain.AllocationRepository {
	return &allocationRepository{db: db}
}

const allocationColumns = `id, user_address, pool_id, share_balance::text, last_withdrawal_at, updated_at`

// Get retrieves the allocation of a user in a pool
func (r *allocationRepository) Get(ctx context.Context, userAddress, poolID string) (allocation *domain.UserAllocation, err error) {
	defer func(start time.Time) { observe("allocations.get", start, err) }(time.Now())

	query := `SELECT ` + allocationColumns + ` FROM user_allocations WHERE user_address = $1 AND pool_id = $2`

	allocation, err = scanAllocation(r.db.QueryRowContext(ctx, query, userAddress, poolID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("allocation of %s in pool %s: %w", domain.ShortAddress(userAddress), poolID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}
	return allocation, nil
}

// ListByUser retrieves every allocation held by a user ordered by pool
func (r *allocationRepository) ListByUser(ctx context.Context, userAddress string) (allocations []*domain.UserAllocation, err error) {
	defer func(start time.Time) { observe("allocations.list_by_user", start, err) }(time.Now())

	query := `SELECT ` + allocationColumns + ` FROM user_allocations WHERE user_address = $1 ORDER BY pool_id`

	rows, err := r.db.QueryContext(ctx, query, userAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		allocation, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, allocation)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}
	return allocations, nil
}

// Upsert inserts or replaces an allocation snapshot; an older snapshot never overwrites a newer one
func (r *allocationRepository) Upsert(ctx context.Context, allocation *domain.UserAllocation) (err error) {
	defer func(start time.Time) { observe("allocations.upsert", start, err) }(time.Now())

	updatedAt := allocation.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	// Handle nullable last_withdrawal_at
	var lastWithdrawal sql.NullInt64
	if allocation.LastWithdrawalAt != nil {
		lastWithdrawal = sql.NullInt64{Int64: *allocation.LastWithdrawalAt, Valid: true}
	}

	query := `
		INSERT INTO user_allocations (id, user_address, pool_id, share_balance, last_withdrawal_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_address, pool_id) DO UPDATE SET
			id                 = EXCLUDED.id,
			share_balance      = EXCLUDED.share_balance,
			last_withdrawal_at = EXCLUDED.last_withdrawal_at,
			updated_at         = EXCLUDED.updated_at
		WHERE user_allocations.updated_at <= EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		allocation.ID,
		allocation.UserAddress,
		allocation.PoolID,
		allocation.ShareBalance.String(),
		lastWithdrawal,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert allocation: %w", err)
	}
	return nil
}

func scanAllocation(row rowScanner) (*domain.UserAllocation, error) {
	var allocation domain.UserAllocation
	var balanceStr string
	var lastWithdrawal sql.NullInt64

	err := row.Scan(
		&allocation.ID,
		&allocation.UserAddress,
		&allocation.PoolID,
		&balanceStr,
		&lastWithdrawal,
		&allocation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if allocation.ShareBalance, err = parseDecimal("share_balance", balanceStr); err != nil {
		return nil, err
	}
	if lastWithdrawal.Valid {
		allocation.LastWithdrawalAt = &lastWithdrawal.Int64
	}
	return &allocation, nil
}

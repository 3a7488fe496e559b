package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/simaogato/wizardfund-backend/internal/domain"
)

// managerRepository implements domain.ManagerRepository
type managerRepository struct {
	db *DB
}

// NewManagerRepository creates a new manager repository
func NewManagerRepository(db *DB) domain.ManagerRepository {
	return &managerRepository{db: db}
}

const managerColumns = `id, wallet_address, twitter_handle, fee_bps, strategy_description, verified,
	performance_score::text, reputation_score::text, depositor_count, performance_refreshed_at, updated_at`

// GetByID retrieves a manager by its ID
func (r *managerRepository) GetByID(ctx context.Context, id string) (manager *domain.FundManager, err error) {
	defer func(start time.Time) { observe("managers.get", start, err) }(time.Now())

	query := `SELECT ` + managerColumns + ` FROM fund_managers WHERE id = $1`

	manager, err = scanManager(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("manager %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get manager by ID: %w", err)
	}
	return manager, nil
}

// GetByWallet retrieves a manager by wallet address
func (r *managerRepository) GetByWallet(ctx context.Context, walletAddress string) (manager *domain.FundManager, err error) {
	defer func(start time.Time) { observe("managers.get_by_wallet", start, err) }(time.Now())

	query := `SELECT ` + managerColumns + ` FROM fund_managers WHERE wallet_address = $1`

	manager, err = scanManager(r.db.QueryRowContext(ctx, query, walletAddress))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("manager with wallet %s: %w", domain.ShortAddress(walletAddress), domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get manager by wallet: %w", err)
	}
	return manager, nil
}

// List retrieves all managers ordered by ID
func (r *managerRepository) List(ctx context.Context) (managers []*domain.FundManager, err error) {
	defer func(start time.Time) { observe("managers.list", start, err) }(time.Now())

	query := `SELECT ` + managerColumns + ` FROM fund_managers ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		manager, err := scanManager(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manager: %w", err)
		}
		managers = append(managers, manager)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating managers: %w", err)
	}
	return managers, nil
}

// Upsert inserts or replaces a manager snapshot; an older snapshot never overwrites a newer one
func (r *managerRepository) Upsert(ctx context.Context, manager *domain.FundManager) (err error) {
	defer func(start time.Time) { observe("managers.upsert", start, err) }(time.Now())

	updatedAt := manager.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO fund_managers (id, wallet_address, twitter_handle, fee_bps, strategy_description,
			verified, performance_score, reputation_score, depositor_count, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			wallet_address       = EXCLUDED.wallet_address,
			twitter_handle       = EXCLUDED.twitter_handle,
			fee_bps              = EXCLUDED.fee_bps,
			strategy_description = EXCLUDED.strategy_description,
			verified             = EXCLUDED.verified,
			performance_score    = EXCLUDED.performance_score,
			reputation_score     = EXCLUDED.reputation_score,
			depositor_count      = EXCLUDED.depositor_count,
			updated_at           = EXCLUDED.updated_at
		WHERE fund_managers.updated_at <= EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		manager.ID,
		manager.WalletAddress,
		manager.TwitterHandle,
		manager.FeeBps,
		manager.StrategyDescription,
		manager.Verified,
		manager.PerformanceScore.String(),
		manager.ReputationScore.String(),
		manager.DepositorCount,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert manager: %w", err)
	}
	return nil
}

// UpdatePerformance writes the refreshed performance figures and leaves the snapshot columns alone
func (r *managerRepository) UpdatePerformance(ctx context.Context, managerID string, performance *domain.ManagerPerformance, refreshedAt time.Time) (err error) {
	defer func(start time.Time) { observe("managers.update_performance", start, err) }(time.Now())

	query := `
		UPDATE fund_managers SET
			performance_score        = $2,
			reputation_score         = $3,
			depositor_count          = $4,
			performance_refreshed_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		managerID,
		performance.PerformancePercent.String(),
		performance.ReputationScore.String(),
		performance.DepositorCount,
		refreshedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update manager performance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("manager %s: %w", managerID, domain.ErrNotFound)
	}
	return nil
}

func scanManager(row rowScanner) (*domain.FundManager, error) {
	var manager domain.FundManager
	var performanceStr, reputationStr string
	var refreshedAt sql.NullTime

	err := row.Scan(
		&manager.ID,
		&manager.WalletAddress,
		&manager.TwitterHandle,
		&manager.FeeBps,
		&manager.StrategyDescription,
		&manager.Verified,
		&performanceStr,
		&reputationStr,
		&manager.DepositorCount,
		&refreshedAt,
		&manager.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if refreshedAt.Valid {
		manager.PerformanceRefreshedAt = &refreshedAt.Time
	}

	if manager.PerformanceScore, err = parseDecimal("performance_score", performanceStr); err != nil {
		return nil, err
	}
	if manager.ReputationScore, err = parseDecimal("reputation_score", reputationStr); err != nil {
		return nil, err
	}
	return &manager, nil
}

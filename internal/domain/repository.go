package domain

import (
	"context"
	"time"
)

// PoolRepository defines the interface for fund pool snapshot persistence
type PoolRepository interface {
	// GetByID retrieves a pool by its ID; returns ErrNotFound if absent
	GetByID(ctx context.Context, id string) (*FundPool, error)

	// List retrieves all known pools
	List(ctx context.Context) ([]*FundPool, error)

	// Upsert inserts or replaces a pool snapshot
	Upsert(ctx context.Context, pool *FundPool) error
}

// ManagerRepository defines the interface for fund manager snapshot persistence
type ManagerRepository interface {
	// GetByID retrieves a manager by its ID; returns ErrNotFound if absent
	GetByID(ctx context.Context, id string) (*FundManager, error)

	// GetByWallet retrieves a manager by wallet address; returns ErrNotFound if absent
	GetByWallet(ctx context.Context, walletAddress string) (*FundManager, error)

	// List retrieves all known managers
	List(ctx context.Context) ([]*FundManager, error)

	// Upsert inserts or replaces a manager snapshot
	Upsert(ctx context.Context, manager *FundManager) error

	// UpdatePerformance stores refreshed performance figures only; returns ErrNotFound if absent
	UpdatePerformance(ctx context.Context, managerID string, performance *ManagerPerformance, refreshedAt time.Time) error
}

// AllocationRepository defines the interface for user allocation snapshot persistence
type AllocationRepository interface {
	// Get retrieves the allocation of a user in a pool; returns ErrNotFound if absent
	Get(ctx context.Context, userAddress, poolID string) (*UserAllocation, error)

	// ListByUser retrieves every allocation held by a user
	ListByUser(ctx context.Context, userAddress string) ([]*UserAllocation, error)

	// Upsert inserts or replaces an allocation snapshot
	Upsert(ctx context.Context, allocation *UserAllocation) error
}

// TransactionRepository defines the interface for transaction snapshot persistence
type TransactionRepository interface {
	// Create stores a transaction; storing the same ID twice is a no-op
	Create(ctx context.Context, tx *FundTransaction) error

	// ListByUser retrieves a user's transactions, newest first
	// If txType is empty, all types are returned; limit <= 0 means no limit
	ListByUser(ctx context.Context, userAddress string, txType TxType, limit int) ([]*FundTransaction, error)
}

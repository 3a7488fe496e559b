package snapshot

import (
	"context"
	"fmt"

	"github.com/simaogato/wizardfund-backend/internal/domain"
)

// SnapshotService stores snapshots published by the external fund system in the read model
type SnapshotService struct {
	PoolRepo        domain.PoolRepository
	ManagerRepo     domain.ManagerRepository
	AllocationRepo  domain.AllocationRepository
	TransactionRepo domain.TransactionRepository
}

// NewSnapshotService creates a new SnapshotService instance
func NewSnapshotService(
	poolRepo domain.PoolRepository,
	managerRepo domain.ManagerRepository,
	allocationRepo domain.AllocationRepository,
	transactionRepo domain.TransactionRepository,
) *SnapshotService {
	return &SnapshotService{
		PoolRepo:        poolRepo,
		ManagerRepo:     managerRepo,
		AllocationRepo:  allocationRepo,
		TransactionRepo: transactionRepo,
	}
}

// ApplyPool validates and stores a pool snapshot
func (s *SnapshotService) ApplyPool(ctx context.Context, pool *domain.FundPool) error {
	if err := pool.Validate(); err != nil {
		return err
	}
	if err := s.PoolRepo.Upsert(ctx, pool); err != nil {
		return fmt.Errorf("failed to upsert pool %s: %w", pool.ID, err)
	}
	return nil
}

// ApplyManager validates and stores a manager snapshot
func (s *SnapshotService) ApplyManager(ctx context.Context, manager *domain.FundManager) error {
	if err := manager.Validate(); err != nil {
		return err
	}
	if err := s.ManagerRepo.Upsert(ctx, manager); err != nil {
		return fmt.Errorf("failed to upsert manager %s: %w", manager.ID, err)
	}
	return nil
}

// ApplyAllocation validates and stores an allocation snapshot
func (s *SnapshotService) ApplyAllocation(ctx context.Context, allocation *domain.UserAllocation) error {
	if err := allocation.Validate(); err != nil {
		return err
	}
	if err := s.AllocationRepo.Upsert(ctx, allocation); err != nil {
		return fmt.Errorf("failed to upsert allocation %s/%s: %w", allocation.UserAddress, allocation.PoolID, err)
	}
	return nil
}

// ApplyTransaction validates and stores a transaction; replays of the same ID are no-ops
func (s *SnapshotService) ApplyTransaction(ctx context.Context, tx *domain.FundTransaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if err := s.TransactionRepo.Create(ctx, tx); err != nil {
		return fmt.Errorf("failed to store transaction %s: %w", tx.ID, err)
	}
	return nil
}

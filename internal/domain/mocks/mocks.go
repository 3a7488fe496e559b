// Package mocks holds testify mocks of the domain repository and gateway interfaces
package mocks

import (
	"context"
	"time"

	"github.com/simaogato/wizardfund-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

// PoolRepository is a mock implementation of domain.PoolRepository for testing
type PoolRepository struct {
	mock.Mock
}

func (m *PoolRepository) GetByID(ctx context.Context, id string) (*domain.FundPool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundPool), args.Error(1)
}

func (m *PoolRepository) List(ctx context.Context) ([]*domain.FundPool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FundPool), args.Error(1)
}

func (m *PoolRepository) Upsert(ctx context.Context, pool *domain.FundPool) error {
	args := m.Called(ctx, pool)
	return args.Error(0)
}

// ManagerRepository is a mock implementation of domain.ManagerRepository for testing
type ManagerRepository struct {
	mock.Mock
}

func (m *ManagerRepository) GetByID(ctx context.Context, id string) (*domain.FundManager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundManager), args.Error(1)
}

func (m *ManagerRepository) GetByWallet(ctx context.Context, walletAddress string) (*domain.FundManager, error) {
	args := m.Called(ctx, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundManager), args.Error(1)
}

func (m *ManagerRepository) List(ctx context.Context) ([]*domain.FundManager, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FundManager), args.Error(1)
}

func (m *ManagerRepository) Upsert(ctx context.Context, manager *domain.FundManager) error {
	args := m.Called(ctx, manager)
	return args.Error(0)
}

func (m *ManagerRepository) UpdatePerformance(ctx context.Context, managerID string, performance *domain.ManagerPerformance, refreshedAt time.Time) error {
	args := m.Called(ctx, managerID, performance, refreshedAt)
	return args.Error(0)
}

// AllocationRepository is a mock implementation of domain.AllocationRepository for testing
type AllocationRepository struct {
	mock.Mock
}

func (m *AllocationRepository) Get(ctx context.Context, userAddress, poolID string) (*domain.UserAllocation, error) {
	args := m.Called(ctx, userAddress, poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserAllocation), args.Error(1)
}

func (m *AllocationRepository) ListByUser(ctx context.Context, userAddress string) ([]*domain.UserAllocation, error) {
	args := m.Called(ctx, userAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserAllocation), args.Error(1)
}

func (m *AllocationRepository) Upsert(ctx context.Context, allocation *domain.UserAllocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

// TransactionRepository is a mock implementation of domain.TransactionRepository for testing
type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, tx *domain.FundTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *TransactionRepository) ListByUser(ctx context.Context, userAddress string, txType domain.TxType, limit int) ([]*domain.FundTransaction, error) {
	args := m.Called(ctx, userAddress, txType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FundTransaction), args.Error(1)
}

// FundGateway is a mock implementation of domain.FundGateway for testing
type FundGateway struct {
	mock.Mock
}

func (m *FundGateway) Health(ctx context.Context) (*domain.HealthStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthStatus), args.Error(1)
}

func (m *FundGateway) RegisterManager(ctx context.Context, req domain.ManagerRegistrationRequest) (*domain.ManagerRegistration, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManagerRegistration), args.Error(1)
}

func (m *FundGateway) Deposit(ctx context.Context, req domain.DepositRequest) (*domain.DepositReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositReceipt), args.Error(1)
}

func (m *FundGateway) Withdraw(ctx context.Context, req domain.WithdrawRequest) (*domain.WithdrawalReceipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalReceipt), args.Error(1)
}

func (m *FundGateway) Portfolio(ctx context.Context, userAddress string) (*domain.RemotePortfolio, error) {
	args := m.Called(ctx, userAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RemotePortfolio), args.Error(1)
}

func (m *FundGateway) Performance(ctx context.Context, managerID string) (*domain.ManagerPerformance, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ManagerPerformance), args.Error(1)
}

var (
	_ domain.PoolRepository        = (*PoolRepository)(nil)
	_ domain.ManagerRepository     = (*ManagerRepository)(nil)
	_ domain.AllocationRepository  = (*AllocationRepository)(nil)
	_ domain.TransactionRepository = (*TransactionRepository)(nil)
	_ domain.FundGateway           = (*FundGateway)(nil)
)

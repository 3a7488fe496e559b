package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wizardfund-backend/internal/domain"
	"github.com/simaogato/wizardfund-backend/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const user = "UserWallet111111111111111111111111111111111"

func sol(n int64) decimal.Decimal {
	return decimal.NewFromInt(n).Mul(domain.ScalingFactor(9))
}

func setup(t *testing.T) (*PortfolioService, *mocks.PoolRepository, *mocks.ManagerRepository, *mocks.AllocationRepository) {
	t.Helper()
	poolRepo := new(mocks.PoolRepository)
	managerRepo := new(mocks.ManagerRepository)
	allocationRepo := new(mocks.AllocationRepository)
	return NewPortfolioService(poolRepo, managerRepo, allocationRepo, domain.ScalingFactor(9)), poolRepo, managerRepo, allocationRepo
}

func fixturePools() []*domain.FundPool {
	return []*domain.FundPool{
		{ID: "alpha", ManagerAddress: "wallet-alpha", TVLBaseUnits: sol(100), ShareSupply: decimal.NewFromInt(1_000)},
		{ID: "beta", ManagerAddress: "wallet-beta", TVLBaseUnits: sol(50), ShareSupply: decimal.NewFromInt(100)},
		{ID: "empty", ManagerAddress: "wallet-beta", TVLBaseUnits: sol(5), ShareSupply: decimal.Zero},
	}
}

func fixtureManagers() []*domain.FundManager {
	return []*domain.FundManager{
		{ID: "m-alpha", WalletAddress: "wallet-alpha", TwitterHandle: "@alpha", FeeBps: 100, PerformanceScore: decimal.NewFromInt(10)},
		{ID: "m-beta", WalletAddress: "wallet-beta", FeeBps: 300, PerformanceScore: decimal.NewFromInt(4)},
	}
}

func TestGetPortfolio_WeightsReturnsByValue(t *testing.T) {
	ctx := context.Background()
	service, poolRepo, managerRepo, allocationRepo := setup(t)

	poolRepo.On("List", mock.Anything).Return(fixturePools(), nil)
	managerRepo.On("List", mock.Anything).Return(fixtureManagers(), nil)
	allocationRepo.On("ListByUser", mock.Anything, user).Return([]*domain.UserAllocation{
		{UserAddress: user, PoolID: "alpha", ShareBalance: decimal.NewFromInt(300)}, // 30 SOL
		{UserAddress: user, PoolID: "beta", ShareBalance: decimal.NewFromInt(20)},   // 10 SOL
		{UserAddress: user, PoolID: "gone", ShareBalance: decimal.NewFromInt(999)},  // unknown pool
	}, nil)

	portfolio, err := service.GetPortfolio(ctx, user)
	require.NoError(t, err)

	require.Len(t, portfolio.Positions, 2)
	assert.True(t, portfolio.TotalValue.Equal(decimal.NewFromInt(40)), "got %s", portfolio.TotalValue)
	assert.True(t, portfolio.TotalFundTokens.Equal(decimal.NewFromInt(320)))

	alpha := portfolio.Positions[0]
	assert.Equal(t, "alpha", alpha.ManagerName)
	assert.True(t, alpha.AllocationPercent.Equal(decimal.NewFromInt(75)))
	assert.True(t, alpha.Return1y.Equal(decimal.NewFromInt(30)))

	beta := portfolio.Positions[1]
	assert.Equal(t, "wall...beta", beta.ManagerName)
	assert.True(t, beta.AllocationPercent.Equal(decimal.NewFromInt(25)))

	// 0.75 * 10 + 0.25 * 4
	assert.True(t, portfolio.Return30d.Equal(decimal.RequireFromString("8.5")), "got %s", portfolio.Return30d)
	assert.True(t, portfolio.Return1y.Equal(decimal.RequireFromString("25.5")))
}

func TestGetPortfolio_NoValue(t *testing.T) {
	ctx := context.Background()
	service, poolRepo, managerRepo, allocationRepo := setup(t)

	poolRepo.On("List", mock.Anything).Return(fixturePools(), nil)
	managerRepo.On("List", mock.Anything).Return(fixtureManagers(), nil)
	allocationRepo.On("ListByUser", mock.Anything, user).Return([]*domain.UserAllocation{
		{UserAddress: user, PoolID: "empty", ShareBalance: decimal.NewFromInt(10)},
	}, nil)

	portfolio, err := service.GetPortfolio(ctx, user)
	require.NoError(t, err)

	require.Len(t, portfolio.Positions, 1)
	assert.True(t, portfolio.TotalValue.IsZero())
	assert.True(t, portfolio.Positions[0].AllocationPercent.IsZero())
	assert.True(t, portfolio.Return30d.IsZero())
}

func TestGetPortfolio_RepositoryFailure(t *testing.T) {
	ctx := context.Background()
	service, poolRepo, managerRepo, allocationRepo := setup(t)

	poolRepo.On("List", mock.Anything).Return(nil, errors.New("connection reset"))
	managerRepo.On("List", mock.Anything).Return(fixtureManagers(), nil).Maybe()
	allocationRepo.On("ListByUser", mock.Anything, user).Return([]*domain.UserAllocation{}, nil).Maybe()

	portfolio, err := service.GetPortfolio(ctx, user)

	assert.Nil(t, portfolio)
	assert.ErrorContains(t, err, "failed to list pools")
}

func TestGetPortfolio_EmptyAddress(t *testing.T) {
	service, poolRepo, _, _ := setup(t)

	_, err := service.GetPortfolio(context.Background(), " ")

	assert.ErrorIs(t, err, domain.ErrEmptyAddress)
	poolRepo.AssertNotCalled(t, "List", mock.Anything)
}

func TestGetDashboardStats(t *testing.T) {
	ctx := context.Background()
	service, poolRepo, managerRepo, allocationRepo := setup(t)

	poolRepo.On("List", mock.Anything).Return(fixturePools(), nil)
	managerRepo.On("List", mock.Anything).Return(fixtureManagers(), nil)
	allocationRepo.On("ListByUser", mock.Anything, user).Return([]*domain.UserAllocation{
		{UserAddress: user, PoolID: "alpha", ShareBalance: decimal.NewFromInt(300)},
		{UserAddress: user, PoolID: "empty", ShareBalance: decimal.NewFromInt(10)},
		{UserAddress: user, PoolID: "beta", ShareBalance: decimal.Zero},
	}, nil)

	stats, err := service.GetDashboardStats(ctx, user)
	require.NoError(t, err)

	assert.True(t, stats.TotalTVL.Equal(decimal.NewFromInt(155)), "got %s", stats.TotalTVL)
	assert.True(t, stats.PortfolioValue.Equal(decimal.NewFromInt(30)), "got %s", stats.PortfolioValue)
	assert.Equal(t, 2, stats.ManagerCount)
	assert.Equal(t, 2, stats.ActiveAllocations)
}

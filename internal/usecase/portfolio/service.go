package portfolio

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wizardfund-backend/internal/domain"
	"github.com/simaogato/wizardfund-backend/internal/usecase/valuation"
	"golang.org/x/sync/errgroup"
)

var (
	// yearlyReturnMultiplier projects a 30 day return to a yearly figure
	yearlyReturnMultiplier = decimal.NewFromInt(3)
	hundred                = decimal.NewFromInt(100)
)

// Position represents one allocation of a user's portfolio
type Position struct {
	PoolID            string
	ManagerName       string
	ManagerAddress    string
	FundTokens        decimal.Decimal
	Value             decimal.Decimal // In deposit units
	AllocationPercent decimal.Decimal
	Return30d         decimal.Decimal
	Return1y          decimal.Decimal
}

// Portfolio represents the aggregated holdings of a user
type Portfolio struct {
	UserAddress     string
	TotalValue      decimal.Decimal
	TotalFundTokens decimal.Decimal
	Return30d       decimal.Decimal // Value weighted
	Return1y        decimal.Decimal // Value weighted
	Positions       []Position
}

// DashboardStats represents the headline figures of the dashboard
type DashboardStats struct {
	TotalTVL          decimal.Decimal // Across all pools, in deposit units
	PortfolioValue    decimal.Decimal // The user's holdings, in deposit units
	ManagerCount      int
	ActiveAllocations int
}

// PortfolioService handles read-only portfolio and dashboard aggregation
type PortfolioService struct {
	PoolRepo       domain.PoolRepository
	ManagerRepo    domain.ManagerRepository
	AllocationRepo domain.AllocationRepository
	ScalingFactor  decimal.Decimal
}

// NewPortfolioService creates a new PortfolioService instance
func NewPortfolioService(
	poolRepo domain.PoolRepository,
	managerRepo domain.ManagerRepository,
	allocationRepo domain.AllocationRepository,
	scalingFactor decimal.Decimal,
) *PortfolioService {
	return &PortfolioService{
		PoolRepo:       poolRepo,
		ManagerRepo:    managerRepo,
		AllocationRepo: allocationRepo,
		ScalingFactor:  scalingFactor,
	}
}

// snapshot is the read model state an aggregation works on
type snapshot struct {
	pools       map[string]*domain.FundPool
	managers    map[string]*domain.FundManager // Keyed by wallet address
	allocations []*domain.UserAllocation
}

// load fetches pools, managers and the user's allocations concurrently
func (s *PortfolioService) load(ctx context.Context, userAddress string) (*snapshot, error) {
	var (
		pools       []*domain.FundPool
		managers    []*domain.FundManager
		allocations []*domain.UserAllocation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pools, err = s.PoolRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list pools: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		managers, err = s.ManagerRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list managers: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		allocations, err = s.AllocationRepo.ListByUser(gctx, userAddress)
		if err != nil {
			return fmt.Errorf("failed to list allocations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &snapshot{
		pools:       make(map[string]*domain.FundPool, len(pools)),
		managers:    make(map[string]*domain.FundManager, len(managers)),
		allocations: allocations,
	}
	for _, p := range pools {
		snap.pools[p.ID] = p
	}
	for _, m := range managers {
		snap.managers[m.WalletAddress] = m
	}
	return snap, nil
}

// GetPortfolio aggregates a user's allocations
// Logic:
//  1. Value each allocation at its pool's current share price (zero for pools without supply)
//  2. Skip allocations whose pool is unknown to the read model
//  3. Allocation % = value / total; returns are weighted by value
//  4. 30d return = manager performance score; 1y return = 3 x 30d
func (s *PortfolioService) GetPortfolio(ctx context.Context, userAddress string) (*Portfolio, error) {
	if strings.TrimSpace(userAddress) == "" {
		return nil, domain.ErrEmptyAddress
	}

	snap, err := s.load(ctx, userAddress)
	if err != nil {
		return nil, err
	}

	result := &Portfolio{
		UserAddress:     userAddress,
		TotalValue:      decimal.Zero,
		TotalFundTokens: decimal.Zero,
		Return30d:       decimal.Zero,
		Return1y:        decimal.Zero,
		Positions:       make([]Position, 0, len(snap.allocations)),
	}

	for _, a := range snap.allocations {
		pool, ok := snap.pools[a.PoolID]
		if !ok {
			continue
		}

		position := Position{
			PoolID:         pool.ID,
			ManagerAddress: pool.ManagerAddress,
			ManagerName:    domain.ShortAddress(pool.ManagerAddress),
			FundTokens:     a.ShareBalance,
			Value:          valuation.CurrentValue(pool.State(s.ScalingFactor), a.ShareBalance),
			Return30d:      decimal.Zero,
		}
		if manager, ok := snap.managers[pool.ManagerAddress]; ok {
			position.ManagerName = manager.DisplayName()
			position.Return30d = manager.PerformanceScore
		}
		position.Return1y = position.Return30d.Mul(yearlyReturnMultiplier)

		result.TotalValue = result.TotalValue.Add(position.Value)
		result.TotalFundTokens = result.TotalFundTokens.Add(a.ShareBalance)
		result.Positions = append(result.Positions, position)
	}

	if result.TotalValue.IsPositive() {
		for i := range result.Positions {
			p := &result.Positions[i]
			weight := p.Value.Div(result.TotalValue)
			p.AllocationPercent = weight.Mul(hundred)
			result.Return30d = result.Return30d.Add(p.Return30d.Mul(weight))
		}
		result.Return1y = result.Return30d.Mul(yearlyReturnMultiplier)
	} else {
		for i := range result.Positions {
			result.Positions[i].AllocationPercent = decimal.Zero
		}
	}

	return result, nil
}

// GetDashboardStats computes the headline dashboard figures for a user
// Logic:
//   - TotalTVL: sum of every pool's TVL
//   - PortfolioValue: sum of the user's allocation values, skipping pools without supply
//   - ManagerCount: number of known managers
//   - ActiveAllocations: allocations with a positive balance in a known pool
func (s *PortfolioService) GetDashboardStats(ctx context.Context, userAddress string) (*DashboardStats, error) {
	snap, err := s.load(ctx, userAddress)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalTVL:       decimal.Zero,
		PortfolioValue: decimal.Zero,
		ManagerCount:   len(snap.managers),
	}

	for _, pool := range snap.pools {
		stats.TotalTVL = stats.TotalTVL.Add(pool.State(s.ScalingFactor).TotalValueLocked)
	}

	for _, a := range snap.allocations {
		pool, ok := snap.pools[a.PoolID]
		if !ok || !a.ShareBalance.IsPositive() {
			continue
		}
		stats.ActiveAllocations++
		if !pool.ShareSupply.IsPositive() {
			continue
		}
		stats.PortfolioValue = stats.PortfolioValue.Add(valuation.CurrentValue(pool.State(s.ScalingFactor), a.ShareBalance))
	}

	return stats, nil
}

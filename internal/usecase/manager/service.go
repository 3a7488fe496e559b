package manager

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wizardfund-backend/internal/domain"
)

var yearlyReturnMultiplier = decimal.NewFromInt(3)

// Listing is the presentation of a fund manager in the manager directory
type Listing struct {
	ManagerID     string
	WalletAddress string
	DisplayName   string
	Strategy      string
	PoolID        string // Empty when the manager has no pool yet
	AUM           decimal.Decimal
	FeePercent    decimal.Decimal
	RiskLevel     domain.RiskLevel
	Return30d     decimal.Decimal
	Return1y      decimal.Decimal
	Investors     int64
	Verified      bool
}

// RegisterManagerInput represents the input for registering a fund manager
type RegisterManagerInput struct {
	WalletAddress       string
	TwitterHandle       string
	FeeBps              int64
	StrategyDescription string
}

// ManagerService handles manager listing, registration and performance
type ManagerService struct {
	ManagerRepo   domain.ManagerRepository
	PoolRepo      domain.PoolRepository
	Gateway       domain.FundGateway
	ScalingFactor decimal.Decimal
	Now           func() time.Time
}

// NewManagerService creates a new ManagerService instance
func NewManagerService(
	managerRepo domain.ManagerRepository,
	poolRepo domain.PoolRepository,
	gateway domain.FundGateway,
	scalingFactor decimal.Decimal,
) *ManagerService {
	return &ManagerService{
		ManagerRepo:   managerRepo,
		PoolRepo:      poolRepo,
		Gateway:       gateway,
		ScalingFactor: scalingFactor,
		Now:           time.Now,
	}
}

// ListManagers returns the manager directory ordered by AUM, largest first
// A limit <= 0 returns every manager
func (s *ManagerService) ListManagers(ctx context.Context, limit int) ([]Listing, error) {
	managers, err := s.ManagerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}

	pools, err := s.PoolRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}

	poolByManager := make(map[string]*domain.FundPool, len(pools))
	for _, p := range pools {
		poolByManager[p.ManagerAddress] = p
	}

	listings := make([]Listing, 0, len(managers))
	for _, m := range managers {
		listing := Listing{
			ManagerID:     m.ID,
			WalletAddress: m.WalletAddress,
			DisplayName:   m.DisplayName(),
			Strategy:      m.StrategyDescription,
			AUM:           decimal.Zero,
			FeePercent:    m.FeePercent(),
			RiskLevel:     m.RiskLevel(),
			Return30d:     m.PerformanceScore,
			Return1y:      m.PerformanceScore.Mul(yearlyReturnMultiplier),
			Investors:     m.DepositorCount,
			Verified:      m.Verified,
		}
		if pool, ok := poolByManager[m.WalletAddress]; ok {
			listing.PoolID = pool.ID
			listing.AUM = pool.State(s.ScalingFactor).TotalValueLocked
		}
		listings = append(listings, listing)
	}

	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].AUM.GreaterThan(listings[j].AUM)
	})

	if limit > 0 && len(listings) > limit {
		listings = listings[:limit]
	}

	return listings, nil
}

// RegisterManager validates a registration and forwards it to the fund API
func (s *ManagerService) RegisterManager(ctx context.Context, input RegisterManagerInput) (*domain.ManagerRegistration, error) {
	if strings.TrimSpace(input.WalletAddress) == "" {
		return nil, domain.ErrEmptyAddress
	}
	if err := domain.ValidateFeeBps(input.FeeBps); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.StrategyDescription) == "" {
		return nil, fmt.Errorf("%w: strategy description cannot be empty", domain.ErrInvalidInput)
	}

	registration, err := s.Gateway.RegisterManager(ctx, domain.ManagerRegistrationRequest{
		WalletAddress:       input.WalletAddress,
		TwitterHandle:       strings.TrimPrefix(strings.TrimSpace(input.TwitterHandle), "@"),
		FeeBps:              input.FeeBps,
		StrategyDescription: strings.TrimSpace(input.StrategyDescription),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register manager: %w", err)
	}

	log.Info().
		Str("manager_id", registration.ManagerID).
		Str("wallet", domain.ShortAddress(registration.WalletAddress)).
		Str("pool", registration.PoolID).
		Msg("manager registered")

	return registration, nil
}

// GetPerformance fetches a manager's performance from the fund API
func (s *ManagerService) GetPerformance(ctx context.Context, managerID string) (*domain.ManagerPerformance, error) {
	if managerID == "" {
		return nil, fmt.Errorf("%w: manager id cannot be empty", domain.ErrInvalidInput)
	}

	performance, err := s.Gateway.Performance(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get performance of manager %s: %w", managerID, err)
	}
	return performance, nil
}

// RefreshPerformance pulls performance for every known manager and stores it in the read model
// Logic:
//  1. List managers from the read model
//  2. For each, fetch performance and update score, reputation and depositor count only,
//     so snapshot fields applied meanwhile are kept
//  3. A failing manager does not stop the others; all failures are joined
//
// Returns the number of managers updated.
func (s *ManagerService) RefreshPerformance(ctx context.Context) (int, error) {
	managers, err := s.ManagerRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list managers: %w", err)
	}

	var (
		updated int
		errs    []error
	)
	for _, m := range managers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		performance, err := s.Gateway.Performance(ctx, m.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("manager %s: %w", m.ID, err))
			continue
		}

		if err := s.ManagerRepo.UpdatePerformance(ctx, m.ID, performance, s.Now().UTC()); err != nil {
			errs = append(errs, fmt.Errorf("manager %s: %w", m.ID, err))
			continue
		}
		updated++
	}

	log.Debug().Int("updated", updated).Int("failed", len(errs)).Msg("manager performance refreshed")

	return updated, errors.Join(errs...)
}

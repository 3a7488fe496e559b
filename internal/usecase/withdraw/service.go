package withdraw

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/simaogato/wizardfund-backend/internal/domain"
	"github.com/simaogato/wizardfund-backend/internal/usecase/valuation"
)

// WithdrawInput identifies a withdrawal of a percentage of a user's allocation in a pool
type WithdrawInput struct {
	UserAddress string
	PoolID      string
	Percent     int64
}

// WithdrawService handles withdrawal previews and submissions
type WithdrawService struct {
	PoolRepo       domain.PoolRepository
	ManagerRepo    domain.ManagerRepository
	AllocationRepo domain.AllocationRepository
	Gateway        domain.FundGateway
	Settings       domain.FundSettings
	Now            func() time.Time
}

// NewWithdrawService creates a new WithdrawService instance
func NewWithdrawService(
	poolRepo domain.PoolRepository,
	managerRepo domain.ManagerRepository,
	allocationRepo domain.AllocationRepository,
	gateway domain.FundGateway,
	settings domain.FundSettings,
) *WithdrawService {
	return &WithdrawService{
		PoolRepo:       poolRepo,
		ManagerRepo:    managerRepo,
		AllocationRepo: allocationRepo,
		Gateway:        gateway,
		Settings:       settings,
		Now:            time.Now,
	}
}

// PreviewWithdraw computes what a withdrawal would return, including cooldown eligibility
// Logic:
//  1. Fetch the pool, the user's allocation and the manager fee
//  2. Run the valuation calculator with the configured cooldown at the current time
func (s *WithdrawService) PreviewWithdraw(ctx context.Context, input WithdrawInput) (*domain.WithdrawPreview, error) {
	if strings.TrimSpace(input.UserAddress) == "" {
		return nil, domain.ErrEmptyAddress
	}

	pool, err := s.PoolRepo.GetByID(ctx, input.PoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool %s: %w", input.PoolID, err)
	}

	allocation, err := s.AllocationRepo.Get(ctx, input.UserAddress, input.PoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation in pool %s: %w", input.PoolID, err)
	}

	manager, err := s.ManagerRepo.GetByWallet(ctx, pool.ManagerAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get manager of pool %s: %w", pool.ID, err)
	}

	return valuation.ComputeWithdrawPreview(
		pool.State(s.Settings.ScalingFactor),
		*allocation,
		manager.FeeBps,
		input.Percent,
		s.Settings.WithdrawalCooldownSeconds,
		s.Now().Unix(),
	)
}

// SubmitWithdraw forwards a withdrawal to the fund API
// Logic:
//  1. Recompute the preview; a withdrawal still in cooldown is rejected without a request
//  2. Floor the shares to redeem to whole fund tokens
//  3. Call the gateway; its receipt is authoritative
func (s *WithdrawService) SubmitWithdraw(ctx context.Context, input WithdrawInput) (*domain.WithdrawalReceipt, error) {
	preview, err := s.PreviewWithdraw(ctx, input)
	if err != nil {
		return nil, err
	}

	if !preview.CanWithdraw {
		return nil, fmt.Errorf("%w: available at %s", domain.ErrCooldownActive,
			time.Unix(preview.CooldownEndsAt, 0).UTC().Format(time.RFC3339))
	}

	tokens := valuation.FloorAtPresentation(preview.SharesToRedeem)
	if !tokens.IsPositive() {
		return nil, fmt.Errorf("%w: nothing to withdraw", domain.ErrInvalidInput)
	}
	if !tokens.BigInt().IsInt64() {
		return nil, fmt.Errorf("%w: withdrawal amount is too large", domain.ErrInvalidInput)
	}

	receipt, err := s.Gateway.Withdraw(ctx, domain.WithdrawRequest{
		UserAddress:     input.UserAddress,
		PoolID:          input.PoolID,
		FundTokenAmount: tokens.IntPart(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit withdrawal: %w", err)
	}

	log.Info().
		Str("user", domain.ShortAddress(input.UserAddress)).
		Str("pool", input.PoolID).
		Int64("percent", input.Percent).
		Str("burned", receipt.FundTokensBurned.String()).
		Str("net_lamports", receipt.NetAmountLamports.String()).
		Msg("withdrawal submitted")

	return receipt, nil
}

// PreviewEmergencyWithdraw estimates a full exit of the user's portfolio at the emergency fee
// The portfolio total comes from the fund API; the cooldown does not apply
func (s *WithdrawService) PreviewEmergencyWithdraw(ctx context.Context, userAddress string) (*domain.EmergencyWithdrawPreview, error) {
	if strings.TrimSpace(userAddress) == "" {
		return nil, domain.ErrEmptyAddress
	}

	portfolio, err := s.Gateway.Portfolio(ctx, userAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	value := valuation.FromBaseUnits(portfolio.TotalValueLamports, s.Settings.ScalingFactor)

	return valuation.ComputeEmergencyWithdrawPreview(value, s.Settings.EmergencyFeeBps)
}

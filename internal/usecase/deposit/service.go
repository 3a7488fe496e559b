package deposit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wizardfund-backend/internal/domain"
	"github.com/simaogato/wizardfund-backend/internal/usecase/valuation"
)

// PreviewDepositInput represents the input for previewing a deposit
type PreviewDepositInput struct {
	PoolID string
	Amount decimal.Decimal // In deposit units (SOL)
}

// SubmitDepositInput represents the input for submitting a deposit
type SubmitDepositInput struct {
	UserAddress string
	PoolID      string
	Amount      decimal.Decimal // In deposit units (SOL)
}

// DepositService handles deposit previews and submissions
type DepositService struct {
	PoolRepo    domain.PoolRepository
	ManagerRepo domain.ManagerRepository
	Gateway     domain.FundGateway
	Settings    domain.FundSettings
}

// NewDepositService creates a new DepositService instance
func NewDepositService(
	poolRepo domain.PoolRepository,
	managerRepo domain.ManagerRepository,
	gateway domain.FundGateway,
	settings domain.FundSettings,
) *DepositService {
	return &DepositService{
		PoolRepo:    poolRepo,
		ManagerRepo: managerRepo,
		Gateway:     gateway,
		Settings:    settings,
	}
}

// PreviewDeposit computes the shares a deposit would mint in a pool
// Logic:
//  1. Fetch the pool snapshot and convert it to deposit units
//  2. Fetch the pool manager's fee
//  3. Run the valuation calculator
func (s *DepositService) PreviewDeposit(ctx context.Context, input PreviewDepositInput) (*domain.DepositPreview, error) {
	pool, err := s.PoolRepo.GetByID(ctx, input.PoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool %s: %w", input.PoolID, err)
	}

	feeBps, err := s.managerFee(ctx, pool)
	if err != nil {
		return nil, err
	}

	return valuation.ComputeDepositPreview(pool.State(s.Settings.ScalingFactor), feeBps, input.Amount, s.Settings.ScalingFactor)
}

// SubmitDeposit forwards a deposit to the fund API
// Logic:
//  1. Validate address and the minimum deposit
//  2. Convert the amount to whole lamports (floor)
//  3. Call the gateway; its receipt is authoritative
func (s *DepositService) SubmitDeposit(ctx context.Context, input SubmitDepositInput) (*domain.DepositReceipt, error) {
	if strings.TrimSpace(input.UserAddress) == "" {
		return nil, domain.ErrEmptyAddress
	}
	if input.PoolID == "" {
		return nil, fmt.Errorf("%w: pool id cannot be empty", domain.ErrInvalidInput)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", domain.ErrInvalidInput)
	}
	if input.Amount.LessThan(s.Settings.MinDeposit) {
		return nil, fmt.Errorf("%w: minimum is %s", domain.ErrBelowMinimumDeposit, s.Settings.MinDeposit)
	}

	lamports := valuation.ToBaseUnits(input.Amount, s.Settings.ScalingFactor)
	if !lamports.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount is below one base unit", domain.ErrInvalidInput)
	}
	if !lamports.BigInt().IsInt64() {
		return nil, fmt.Errorf("%w: deposit amount is too large", domain.ErrInvalidInput)
	}

	start := time.Now()
	receipt, err := s.Gateway.Deposit(ctx, domain.DepositRequest{
		UserAddress:    input.UserAddress,
		PoolID:         input.PoolID,
		AmountLamports: lamports.IntPart(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit deposit: %w", err)
	}

	log.Info().
		Str("user", domain.ShortAddress(input.UserAddress)).
		Str("pool", input.PoolID).
		Str("lamports", lamports.String()).
		Str("minted", receipt.FundTokensMinted.String()).
		Dur("took", time.Since(start)).
		Msg("deposit submitted")

	return receipt, nil
}

// managerFee returns the fee of the pool's manager
func (s *DepositService) managerFee(ctx context.Context, pool *domain.FundPool) (int64, error) {
	manager, err := s.ManagerRepo.GetByWallet(ctx, pool.ManagerAddress)
	if err != nil {
		return 0, fmt.Errorf("failed to get manager of pool %s: %w", pool.ID, err)
	}
	return manager.FeeBps, nil
}

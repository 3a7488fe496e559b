package valuation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wizardfund-backend/internal/domain"
)

var (
	hundred    = decimal.NewFromInt(100)
	bpsDivisor = decimal.NewFromInt(domain.MaxFeeBps)
	minPercent = int64(1)
	maxPercent = int64(100)
)

// ComputeDepositPreview calculates the fund tokens minted by a deposit and the fee it carries
// Logic:
//  1. Empty pool (no supply or no TVL): mint depositAmount * scalingFactor (1:1 with base units)
//  2. Otherwise mint proportionally: depositAmount * supply / TVL, preserving the share price
//  3. Fee = depositAmount * feeBps / 10000; NetDeposit = depositAmount - Fee
//
// The fee is informational: shares are minted on the gross amount.
// SharesMinted is exact; floor happens at presentation boundary only (FloorAtPresentation).
func ComputeDepositPreview(pool domain.PoolState, feeBps int64, depositAmount, scalingFactor decimal.Decimal) (*domain.DepositPreview, error) {
	if depositAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: deposit amount must be positive", domain.ErrInvalidInput)
	}
	if !scalingFactor.IsPositive() {
		return nil, fmt.Errorf("%w: scaling factor must be positive", domain.ErrInvalidInput)
	}
	if err := validatePool(pool); err != nil {
		return nil, err
	}
	if err := domain.ValidateFeeBps(feeBps); err != nil {
		return nil, err
	}

	var sharesMinted decimal.Decimal
	if pool.IsEmpty() {
		sharesMinted = depositAmount.Mul(scalingFactor)
	} else {
		sharesMinted = depositAmount.Mul(pool.ShareSupply).Div(pool.TotalValueLocked)
	}

	fee := FeeAmount(depositAmount, feeBps)

	return &domain.DepositPreview{
		Amount:       depositAmount,
		SharesMinted: sharesMinted,
		FeeAmount:    fee,
		NetDeposit:   depositAmount.Sub(fee),
	}, nil
}

// ComputeWithdrawPreview calculates what withdrawing withdrawPercent of an allocation returns
// Logic:
//  1. Cooldown: eligible when nowSeconds >= lastWithdrawal + cooldownSeconds
//  2. CurrentValue = balance * TVL / supply, or 0 for a pool without supply
//  3. Gross = CurrentValue * pct / 100; SharesToRedeem = balance * pct / 100
//  4. Fee = Gross * feeBps / 10000; Net = Gross - Fee
//
// An ineligible preview is still computed and flagged CanWithdraw = false.
func ComputeWithdrawPreview(
	pool domain.PoolState,
	allocation domain.UserAllocation,
	feeBps int64,
	withdrawPercent int64,
	cooldownSeconds int64,
	nowSeconds int64,
) (*domain.WithdrawPreview, error) {
	if withdrawPercent < minPercent || withdrawPercent > maxPercent {
		return nil, fmt.Errorf("%w: withdraw percentage must be between %d and %d", domain.ErrInvalidInput, minPercent, maxPercent)
	}
	if allocation.ShareBalance.IsNegative() {
		return nil, fmt.Errorf("%w: share balance must be non-negative", domain.ErrInvalidInput)
	}
	if cooldownSeconds < 0 {
		return nil, fmt.Errorf("%w: cooldown must be non-negative", domain.ErrInvalidInput)
	}
	if err := validatePool(pool); err != nil {
		return nil, err
	}
	if err := domain.ValidateFeeBps(feeBps); err != nil {
		return nil, err
	}

	lastWithdrawal := allocation.LastWithdrawal()
	if lastWithdrawal < 0 {
		return nil, fmt.Errorf("%w: last withdrawal timestamp must be non-negative", domain.ErrInvalidInput)
	}
	if lastWithdrawal > math.MaxInt64-cooldownSeconds {
		return nil, fmt.Errorf("%w: cooldown end overflows", domain.ErrInvalidInput)
	}
	cooldownEndsAt := lastWithdrawal + cooldownSeconds
	pct := decimal.NewFromInt(withdrawPercent)

	currentValue := CurrentValue(pool, allocation.ShareBalance)
	gross := currentValue.Mul(pct).Div(hundred)
	fee := FeeAmount(gross, feeBps)

	return &domain.WithdrawPreview{
		Percent:        withdrawPercent,
		CurrentValue:   currentValue,
		SharesToRedeem: allocation.ShareBalance.Mul(pct).Div(hundred),
		GrossAmount:    gross,
		FeeAmount:      fee,
		NetAmount:      gross.Sub(fee),
		CanWithdraw:    nowSeconds >= cooldownEndsAt,
		CooldownEndsAt: cooldownEndsAt,
	}, nil
}

// ComputeEmergencyWithdrawPreview estimates a full exit at a penalty fee, ignoring cooldowns
func ComputeEmergencyWithdrawPreview(portfolioValue decimal.Decimal, feeBps int64) (*domain.EmergencyWithdrawPreview, error) {
	if portfolioValue.IsNegative() {
		return nil, fmt.Errorf("%w: portfolio value must be non-negative", domain.ErrInvalidInput)
	}
	if err := domain.ValidateFeeBps(feeBps); err != nil {
		return nil, err
	}

	fee := FeeAmount(portfolioValue, feeBps)

	return &domain.EmergencyWithdrawPreview{
		PortfolioValue:    portfolioValue,
		FeeBps:            feeBps,
		FeeAmount:         fee,
		EstimatedReceived: portfolioValue.Sub(fee),
	}, nil
}

// CurrentValue returns the value of shareBalance in pool units
// A pool without supply is worth nothing per share; no division happens in that case
func CurrentValue(pool domain.PoolState, shareBalance decimal.Decimal) decimal.Decimal {
	if !pool.ShareSupply.IsPositive() {
		return decimal.Zero
	}
	return shareBalance.Mul(pool.TotalValueLocked).Div(pool.ShareSupply)
}

// FeeAmount returns amount * feeBps / 10000
func FeeAmount(amount decimal.Decimal, feeBps int64) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(feeBps)).Div(bpsDivisor)
}

// FloorAtPresentation floors a share count to an integer
// Only presentation and submission boundaries call this; intermediate math stays exact
func FloorAtPresentation(shares decimal.Decimal) decimal.Decimal {
	return shares.Floor()
}

// ToBaseUnits converts a deposit-unit amount into whole base units (e.g. SOL to lamports)
func ToBaseUnits(amount, scalingFactor decimal.Decimal) decimal.Decimal {
	return amount.Mul(scalingFactor).Floor()
}

// FromBaseUnits converts base units into deposit units (e.g. lamports to SOL)
func FromBaseUnits(baseUnits, scalingFactor decimal.Decimal) decimal.Decimal {
	if !scalingFactor.IsPositive() {
		return decimal.Zero
	}
	return baseUnits.Div(scalingFactor)
}

func validatePool(pool domain.PoolState) error {
	if pool.TotalValueLocked.IsNegative() {
		return fmt.Errorf("%w: pool tvl must be non-negative", domain.ErrInvalidInput)
	}
	if pool.ShareSupply.IsNegative() {
		return fmt.Errorf("%w: pool share supply must be non-negative", domain.ErrInvalidInput)
	}
	return nil
}

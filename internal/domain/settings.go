package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FundSettings are the fund-wide parameters the previews and submissions depend on
type FundSettings struct {
	ScalingFactor             decimal.Decimal // Base units per deposit unit
	MinDeposit                decimal.Decimal // In deposit units
	WithdrawalCooldownSeconds int64
	EmergencyFeeBps           int64
}

// Validate ensures the settings are usable by the calculator
func (s FundSettings) Validate() error {
	if !s.ScalingFactor.IsPositive() {
		return fmt.Errorf("%w: scaling factor must be positive", ErrInvalidInput)
	}
	if s.MinDeposit.IsNegative() {
		return fmt.Errorf("%w: minimum deposit must be non-negative", ErrInvalidInput)
	}
	if s.WithdrawalCooldownSeconds < 0 {
		return fmt.Errorf("%w: withdrawal cooldown must be non-negative", ErrInvalidInput)
	}
	return ValidateFeeBps(s.EmergencyFeeBps)
}

package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxFeeBps is the upper bound of a fee expressed in basis points (100%)
const MaxFeeBps int64 = 10000

// RiskLevel is the coarse risk label derived from a manager's fee
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// FundPool represents a fund pool snapshot in the domain layer
// The pool is owned by the external fund system; this service only reads snapshots of it
type FundPool struct {
	ID             string
	ManagerAddress string
	TVLBaseUnits   decimal.Decimal // Total value locked in lamports
	ShareSupply    decimal.Decimal // Outstanding fund tokens in their smallest unit
	UpdatedAt      time.Time
}

// Validate ensures the pool snapshot adheres to domain rules
func (p *FundPool) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: fund pool id cannot be empty", ErrInvalidInput)
	}
	if p.ManagerAddress == "" {
		return fmt.Errorf("%w: fund pool manager address cannot be empty", ErrInvalidInput)
	}
	if p.TVLBaseUnits.IsNegative() {
		return fmt.Errorf("%w: fund pool tvl must be non-negative", ErrInvalidInput)
	}
	if p.ShareSupply.IsNegative() {
		return fmt.Errorf("%w: fund pool share supply must be non-negative", ErrInvalidInput)
	}
	return nil
}

// State converts the pool into calculator input, expressing TVL in deposit units
// scalingFactor is the number of base units per deposit unit (10^9 for SOL/lamports)
func (p *FundPool) State(scalingFactor decimal.Decimal) PoolState {
	tvl := decimal.Zero
	if scalingFactor.IsPositive() {
		tvl = p.TVLBaseUnits.Div(scalingFactor)
	}
	return PoolState{
		TotalValueLocked: tvl,
		ShareSupply:      p.ShareSupply,
	}
}

// PoolState is the pair of pool figures the valuation calculator works on
// Both values must be expressed in units consistent with the amounts being previewed
type PoolState struct {
	TotalValueLocked decimal.Decimal
	ShareSupply      decimal.Decimal
}

// IsEmpty reports whether the pool has no value or no outstanding shares
func (s PoolState) IsEmpty() bool {
	return s.ShareSupply.IsZero() || s.TotalValueLocked.IsZero()
}

// SharePrice returns TVL / supply; ok is false when the pool has no supply
func (s PoolState) SharePrice() (price decimal.Decimal, ok bool) {
	if !s.ShareSupply.IsPositive() {
		return decimal.Zero, false
	}
	return s.TotalValueLocked.Div(s.ShareSupply), true
}

// FundManager represents a fund manager snapshot in the domain layer
type FundManager struct {
	ID                  string
	WalletAddress       string
	TwitterHandle       string
	FeeBps              int64
	StrategyDescription string
	Verified            bool
	PerformanceScore    decimal.Decimal // Used as the 30 day return, in percent
	ReputationScore     decimal.Decimal
	DepositorCount      int64
	// PerformanceRefreshedAt is nil until the performance job has updated the manager
	PerformanceRefreshedAt *time.Time
	UpdatedAt              time.Time
}

// Validate ensures the manager snapshot adheres to domain rules
func (m *FundManager) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: fund manager id cannot be empty", ErrInvalidInput)
	}
	if m.WalletAddress == "" {
		return fmt.Errorf("%w: fund manager wallet address cannot be empty", ErrInvalidInput)
	}
	return ValidateFeeBps(m.FeeBps)
}

// DisplayName returns the Twitter handle without "@", or a shortened wallet address
func (m *FundManager) DisplayName() string {
	if m.TwitterHandle != "" {
		return strings.TrimPrefix(m.TwitterHandle, "@")
	}
	return ShortAddress(m.WalletAddress)
}

// FeePercent returns the manager fee as a percentage (basis points / 100)
func (m *FundManager) FeePercent() decimal.Decimal {
	return decimal.NewFromInt(m.FeeBps).Div(decimal.NewFromInt(100))
}

// RiskLevel classifies the manager by fee: below 150 bps is Low, above 250 bps is High
func (m *FundManager) RiskLevel() RiskLevel {
	switch {
	case m.FeeBps < 150:
		return RiskLevelLow
	case m.FeeBps > 250:
		return RiskLevelHigh
	default:
		return RiskLevelMedium
	}
}

// UserAllocation represents a user's holding in a fund pool
type UserAllocation struct {
	ID               string
	UserAddress      string
	PoolID           string
	ShareBalance     decimal.Decimal // Fund tokens held, smallest unit
	LastWithdrawalAt *int64          // Epoch seconds; NULL if the user never withdrew
	UpdatedAt        time.Time
}

// Validate ensures the allocation snapshot adheres to domain rules
func (a *UserAllocation) Validate() error {
	if a.UserAddress == "" {
		return fmt.Errorf("%w: allocation user address cannot be empty", ErrInvalidInput)
	}
	if a.PoolID == "" {
		return fmt.Errorf("%w: allocation pool id cannot be empty", ErrInvalidInput)
	}
	if a.ShareBalance.IsNegative() {
		return fmt.Errorf("%w: allocation share balance must be non-negative", ErrInvalidInput)
	}
	if a.LastWithdrawalAt != nil && *a.LastWithdrawalAt < 0 {
		return fmt.Errorf("%w: last withdrawal timestamp must be non-negative", ErrInvalidInput)
	}
	return nil
}

// LastWithdrawal returns the last withdrawal timestamp, or 0 if there was none
func (a *UserAllocation) LastWithdrawal() int64 {
	if a.LastWithdrawalAt == nil {
		return 0
	}
	return *a.LastWithdrawalAt
}

// ValidateFeeBps checks that a fee lies in [0, 10000] basis points
func ValidateFeeBps(feeBps int64) error {
	if feeBps < 0 || feeBps > MaxFeeBps {
		return fmt.Errorf("%w: fee must be between 0 and %d basis points", ErrInvalidInput, MaxFeeBps)
	}
	return nil
}

// ShortAddress renders a wallet address as "abcd...wxyz"
func ShortAddress(address string) string {
	if len(address) <= 8 {
		return address
	}
	return address[:4] + "..." + address[len(address)-4:]
}

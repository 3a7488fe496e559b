package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TxType represents the kind of fund transaction recorded by the external system
type TxType string

const (
	TxTypeDeposit   TxType = "deposit"
	TxTypeWithdraw  TxType = "withdraw"
	TxTypeRebalance TxType = "rebalance"
	TxTypeFee       TxType = "fee"
	TxTypeReward    TxType = "reward"
)

// Valid reports whether t is one of the known transaction types
func (t TxType) Valid() bool {
	switch t {
	case TxTypeDeposit, TxTypeWithdraw, TxTypeRebalance, TxTypeFee, TxTypeReward:
		return true
	}
	return false
}

// FundTransaction represents a transaction snapshot in the domain layer
type FundTransaction struct {
	ID              string
	UserAddress     string
	PoolID          string
	Type            TxType
	AmountBaseUnits decimal.Decimal // Lamports, always non-negative
	FundTokenChange decimal.Decimal // Signed: positive on mint, negative on burn
	CreatedAt       time.Time
}

// Validate ensures the transaction snapshot adheres to domain rules
func (t *FundTransaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: transaction id cannot be empty", ErrInvalidInput)
	}
	if t.UserAddress == "" {
		return fmt.Errorf("%w: transaction user address cannot be empty", ErrInvalidInput)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, t.Type)
	}
	if t.AmountBaseUnits.IsNegative() {
		return fmt.Errorf("%w: transaction amount must be non-negative", ErrInvalidInput)
	}
	if t.CreatedAt.IsZero() {
		return fmt.Errorf("%w: transaction timestamp cannot be empty", ErrInvalidInput)
	}
	return nil
}

package domain

import "github.com/shopspring/decimal"

// DepositPreview is the derived, never persisted, outcome of a prospective deposit
type DepositPreview struct {
	Amount       decimal.Decimal
	SharesMinted decimal.Decimal // Exact; floor only at the presentation boundary
	FeeAmount    decimal.Decimal
	NetDeposit   decimal.Decimal
}

// WithdrawPreview is the derived, never persisted, outcome of a prospective withdrawal
type WithdrawPreview struct {
	Percent        int64
	CurrentValue   decimal.Decimal
	SharesToRedeem decimal.Decimal // Exact; floor only at the presentation boundary
	GrossAmount    decimal.Decimal
	FeeAmount      decimal.Decimal
	NetAmount      decimal.Decimal
	CanWithdraw    bool
	CooldownEndsAt int64 // Epoch seconds
}

// EmergencyWithdrawPreview estimates a full exit that bypasses the cooldown at a penalty fee
type EmergencyWithdrawPreview struct {
	PortfolioValue    decimal.Decimal
	FeeBps            int64
	FeeAmount         decimal.Decimal
	EstimatedReceived decimal.Decimal
}

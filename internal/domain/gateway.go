package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// FundGateway is the external fund API that owns all state-changing logic
// Implementations map the API's loose response shapes into these types
type FundGateway interface {
	Health(ctx context.Context) (*HealthStatus, error)
	RegisterManager(ctx context.Context, req ManagerRegistrationRequest) (*ManagerRegistration, error)
	Deposit(ctx context.Context, req DepositRequest) (*DepositReceipt, error)
	Withdraw(ctx context.Context, req WithdrawRequest) (*WithdrawalReceipt, error)
	Portfolio(ctx context.Context, userAddress string) (*RemotePortfolio, error)
	Performance(ctx context.Context, managerID string) (*ManagerPerformance, error)
}

// HealthStatus reports the external system's health
type HealthStatus struct {
	Status    string // healthy, degraded or unhealthy
	Version   string
	Uptime    time.Duration
	CheckedAt time.Time
}

// Healthy reports whether the external system declared itself healthy
func (h *HealthStatus) Healthy() bool {
	return h != nil && h.Status == "healthy"
}

// ManagerRegistrationRequest is the payload used to register a fund manager
type ManagerRegistrationRequest struct {
	WalletAddress       string
	TwitterHandle       string
	FeeBps              int64
	StrategyDescription string
}

// ManagerRegistration is the external system's answer to a registration
type ManagerRegistration struct {
	ManagerID           string
	WalletAddress       string
	TwitterHandle       string
	FeeBps              int64
	StrategyDescription string
	PoolID              string
	Status              string
}

// DepositRequest asks the external system to deposit lamports into a pool
type DepositRequest struct {
	UserAddress    string
	PoolID         string
	AmountLamports int64
}

// DepositReceipt is the authoritative result of a deposit
type DepositReceipt struct {
	DepositID           string
	UserAddress         string
	PoolID              string
	AmountLamports      decimal.Decimal
	FundTokensMinted    decimal.Decimal
	NewFundTokenBalance decimal.Decimal
	Timestamp           time.Time
}

// WithdrawRequest asks the external system to burn fund tokens from a pool
type WithdrawRequest struct {
	UserAddress     string
	PoolID          string
	FundTokenAmount int64
}

// WithdrawalReceipt is the authoritative result of a withdrawal
type WithdrawalReceipt struct {
	WithdrawalID        string
	UserAddress         string
	PoolID              string
	FundTokensBurned    decimal.Decimal
	GrossAmountLamports decimal.Decimal
	ManagerFeeLamports  decimal.Decimal
	NetAmountLamports   decimal.Decimal
	RemainingFundTokens decimal.Decimal
	Timestamp           time.Time
}

// RemotePortfolio is the authoritative portfolio of a user
type RemotePortfolio struct {
	UserAddress        string
	TotalValueLamports decimal.Decimal
	Allocations        []RemoteAllocation
	RecentTransactions []FundTransaction
}

// RemoteAllocation is one allocation line of a RemotePortfolio
type RemoteAllocation struct {
	PoolID          string
	FundTokenAmount decimal.Decimal
	ValueLamports   decimal.Decimal
	ManagerAddress  string
}

// ManagerPerformance holds the external system's metrics for a manager
type ManagerPerformance struct {
	ManagerID             string
	ManagerAddress        string
	TwitterHandle         string
	FeeBps                int64
	StrategyDescription   string
	TotalDepositsLamports decimal.Decimal
	CurrentTVLLamports    decimal.Decimal
	PerformancePercent    decimal.Decimal
	DepositorCount        int64
	ReputationScore       decimal.Decimal
}

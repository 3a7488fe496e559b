package history

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wizardfund-backend/internal/domain"
	"github.com/simaogato/wizardfund-backend/internal/usecase/valuation"
)

// Entry is a transaction presented in deposit units
type Entry struct {
	ID              string
	PoolID          string
	Type            domain.TxType
	Amount          decimal.Decimal // In deposit units (SOL)
	FundTokenChange decimal.Decimal
	CreatedAt       time.Time
}

// ListTransactionsInput represents the filters of a history query
type ListTransactionsInput struct {
	UserAddress string
	Type        domain.TxType // Empty for every type
	Limit       int           // <= 0 for no limit
}

// HistoryService handles transaction history queries
type HistoryService struct {
	TransactionRepo domain.TransactionRepository
	ScalingFactor   decimal.Decimal
}

// NewHistoryService creates a new HistoryService instance
func NewHistoryService(transactionRepo domain.TransactionRepository, scalingFactor decimal.Decimal) *HistoryService {
	return &HistoryService{
		TransactionRepo: transactionRepo,
		ScalingFactor:   scalingFactor,
	}
}

// ListTransactions returns a user's transactions, newest first
func (s *HistoryService) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]Entry, error) {
	if strings.TrimSpace(input.UserAddress) == "" {
		return nil, domain.ErrEmptyAddress
	}
	if input.Type != "" && !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", domain.ErrInvalidInput, input.Type)
	}

	txs, err := s.TransactionRepo.ListByUser(ctx, input.UserAddress, input.Type, input.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	// Newest first regardless of repository ordering
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
	if input.Limit > 0 && len(txs) > input.Limit {
		txs = txs[:input.Limit]
	}

	entries := make([]Entry, 0, len(txs))
	for _, tx := range txs {
		entries = append(entries, Entry{
			ID:              tx.ID,
			PoolID:          tx.PoolID,
			Type:            tx.Type,
			Amount:          valuation.FromBaseUnits(tx.AmountBaseUnits, s.ScalingFactor),
			FundTokenChange: tx.FundTokenChange,
			CreatedAt:       tx.CreatedAt,
		})
	}
	return entries, nil
}

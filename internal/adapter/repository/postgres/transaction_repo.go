package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/simaogato/wizardfund-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create stores a transaction; a transaction already stored under the same ID is left untouched
func (r *transactionRepository) Create(ctx context.Context, tx *domain.FundTransaction) (err error) {
	defer func(start time.Time) { observe("transactions.create", start, err) }(time.Now())

	query := `
		INSERT INTO fund_transactions (id, user_address, pool_id, tx_type, amount_base_units, fund_token_change, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	_, err = r.db.ExecContext(ctx, query,
		tx.ID,
		tx.UserAddress,
		tx.PoolID,
		string(tx.Type),
		tx.AmountBaseUnits.String(),
		tx.FundTokenChange.String(),
		tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ListByUser retrieves a user's transactions, newest first
func (r *transactionRepository) ListByUser(ctx context.Context, userAddress string, txType domain.TxType, limit int) (txs []*domain.FundTransaction, err error) {
	defer func(start time.Time) { observe("transactions.list_by_user", start, err) }(time.Now())

	query := `
		SELECT id, user_address, pool_id, tx_type, amount_base_units::text, fund_token_change::text, created_at
		FROM fund_transactions
		WHERE user_address = $1 AND ($2::text = '' OR tx_type = $2::text)
		ORDER BY created_at DESC, id
	`
	args := []any{userAddress, string(txType)}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tx domain.FundTransaction
		var txTypeStr, amountStr, changeStr string

		if err := rows.Scan(&tx.ID, &tx.UserAddress, &tx.PoolID, &txTypeStr, &amountStr, &changeStr, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		tx.Type = domain.TxType(txTypeStr)
		if tx.AmountBaseUnits, err = parseDecimal("amount_base_units", amountStr); err != nil {
			return nil, err
		}
		if tx.FundTokenChange, err = parseDecimal("fund_token_change", changeStr); err != nil {
			return nil, err
		}
		txs = append(txs, &tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txs, nil
}

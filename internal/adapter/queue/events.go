package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/simaogato/wizardfund-backend/internal/domain"
)

// Kind names the entity carried by a snapshot event
type Kind string

const (
	KindFundPool       Kind = "fund_pool"
	KindFundManager    Kind = "fund_manager"
	KindUserAllocation Kind = "user_allocation"
	KindTransaction    Kind = "transaction"
)

// SnapshotApplier stores validated snapshots in the read model
type SnapshotApplier interface {
	ApplyPool(ctx context.Context, pool *domain.FundPool) error
	ApplyManager(ctx context.Context, manager *domain.FundManager) error
	ApplyAllocation(ctx context.Context, allocation *domain.UserAllocation) error
	ApplyTransaction(ctx context.Context, tx *domain.FundTransaction) error
}

// envelope is the message published for every snapshot change
type envelope struct {
	EventID string          `json:"eventId"`
	Kind    Kind            `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Payloads mirror the data layer records, where every field is optional

type poolPayload struct {
	ID                 *string  `json:"id"`
	ManagerAddress     *string  `json:"managerAddress"`
	CurrentTvlLamports *float64 `json:"currentTvlLamports"`
	FundTokenSupply    *float64 `json:"fundTokenSupply"`
	UpdatedAt          *int64   `json:"tarobase_updated_at"` // Milliseconds
}

type managerPayload struct {
	ID                  *string  `json:"id"`
	WalletAddress       *string  `json:"walletAddress"`
	TwitterHandle       *string  `json:"twitterHandle"`
	FeePercentageBps    *int64   `json:"feePercentageBps"`
	StrategyDescription *string  `json:"strategyDescription"`
	TwitterVerified     *bool    `json:"twitterVerified"`
	PerformanceScore    *float64 `json:"performanceScore"`
	ReputationScore     *float64 `json:"reputationScore"`
	DepositorCount      *int64   `json:"depositorCount"`
	UpdatedAt           *int64   `json:"tarobase_updated_at"` // Milliseconds
}

type allocationPayload struct {
	ID                      *string  `json:"id"`
	UserAddress             *string  `json:"userAddress"`
	FundPoolID              *string  `json:"fundPoolId"`
	FundTokenAmount         *float64 `json:"fundTokenAmount"`
	LastWithdrawalTimestamp *int64   `json:"lastWithdrawalTimestamp"` // Seconds
	UpdatedAt               *int64   `json:"tarobase_updated_at"`     // Milliseconds
}

type transactionPayload struct {
	ID              *string  `json:"id"`
	UserAddress     *string  `json:"userAddress"`
	FundPoolID      *string  `json:"fundPoolId"`
	TxType          *string  `json:"txType"`
	AmountLamports  *float64 `json:"amountLamports"`
	FundTokenChange *float64 `json:"fundTokenChange"`
	CreatedAt       *int64   `json:"tarobase_created_at"` // Milliseconds
}

// Event is a decoded snapshot event ready to be applied
type Event struct {
	ID   string
	Kind Kind

	pool        *domain.FundPool
	manager     *domain.FundManager
	allocation  *domain.UserAllocation
	transaction *domain.FundTransaction
}

// Apply hands the event's entity to the applier
func (e *Event) Apply(ctx context.Context, applier SnapshotApplier) error {
	switch e.Kind {
	case KindFundPool:
		return applier.ApplyPool(ctx, e.pool)
	case KindFundManager:
		return applier.ApplyManager(ctx, e.manager)
	case KindUserAllocation:
		return applier.ApplyAllocation(ctx, e.allocation)
	case KindTransaction:
		return applier.ApplyTransaction(ctx, e.transaction)
	}
	return fmt.Errorf("%w: unknown event kind %q", domain.ErrInvalidInput, e.Kind)
}

// DecodeEvent parses a message body into an Event
// Malformed bodies and payloads are reported as domain.ErrInvalidInput
func DecodeEvent(body []byte) (*Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: malformed event: %v", domain.ErrInvalidInput, err)
	}
	if env.EventID == "" {
		return nil, fmt.Errorf("%w: event id is missing", domain.ErrInvalidInput)
	}
	if len(env.Payload) == 0 {
		return nil, fmt.Errorf("%w: event %s has no payload", domain.ErrInvalidInput, env.EventID)
	}

	event := &Event{ID: env.EventID, Kind: env.Kind}
	var err error

	switch env.Kind {
	case KindFundPool:
		var p poolPayload
		if err = unmarshalPayload(env.Payload, &p); err == nil {
			event.pool, err = p.toDomain()
		}
	case KindFundManager:
		var p managerPayload
		if err = unmarshalPayload(env.Payload, &p); err == nil {
			event.manager, err = p.toDomain()
		}
	case KindUserAllocation:
		var p allocationPayload
		if err = unmarshalPayload(env.Payload, &p); err == nil {
			event.allocation, err = p.toDomain()
		}
	case KindTransaction:
		var p transactionPayload
		if err = unmarshalPayload(env.Payload, &p); err == nil {
			event.transaction, err = p.toDomain()
		}
	default:
		err = fmt.Errorf("%w: unknown event kind %q", domain.ErrInvalidInput, env.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", env.EventID, err)
	}
	return event, nil
}

func unmarshalPayload(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: malformed payload: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func (p poolPayload) toDomain() (*domain.FundPool, error) {
	var f fields
	pool := &domain.FundPool{
		ID:             f.required("id", p.ID),
		ManagerAddress: f.required("managerAddress", p.ManagerAddress),
		TVLBaseUnits:   f.number("currentTvlLamports", p.CurrentTvlLamports),
		ShareSupply:    f.number("fundTokenSupply", p.FundTokenSupply),
		UpdatedAt:      fromMillis(p.UpdatedAt),
	}
	if f.err != nil {
		return nil, f.err
	}
	return pool, nil
}

func (p managerPayload) toDomain() (*domain.FundManager, error) {
	var f fields
	manager := &domain.FundManager{
		ID:                  f.required("id", p.ID),
		WalletAddress:       f.required("walletAddress", p.WalletAddress),
		TwitterHandle:       optional(p.TwitterHandle),
		StrategyDescription: optional(p.StrategyDescription),
		Verified:            optional(p.TwitterVerified),
		FeeBps:              optional(p.FeePercentageBps),
		DepositorCount:      optional(p.DepositorCount),
		PerformanceScore:    f.number("performanceScore", p.PerformanceScore),
		ReputationScore:     f.number("reputationScore", p.ReputationScore),
		UpdatedAt:           fromMillis(p.UpdatedAt),
	}
	if p.FeePercentageBps == nil {
		f.fail(errors.New("feePercentageBps is missing"))
	}
	if f.err != nil {
		return nil, f.err
	}
	return manager, nil
}

func (p allocationPayload) toDomain() (*domain.UserAllocation, error) {
	var f fields
	allocation := &domain.UserAllocation{
		ID:               optional(p.ID),
		UserAddress:      f.required("userAddress", p.UserAddress),
		PoolID:           f.required("fundPoolId", p.FundPoolID),
		ShareBalance:     f.number("fundTokenAmount", p.FundTokenAmount),
		LastWithdrawalAt: p.LastWithdrawalTimestamp,
		UpdatedAt:        fromMillis(p.UpdatedAt),
	}
	// The data layer writes 0 for "never withdrew"
	if allocation.LastWithdrawalAt != nil && *allocation.LastWithdrawalAt == 0 {
		allocation.LastWithdrawalAt = nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return allocation, nil
}

func (p transactionPayload) toDomain() (*domain.FundTransaction, error) {
	var f fields
	tx := &domain.FundTransaction{
		ID:              f.required("id", p.ID),
		UserAddress:     f.required("userAddress", p.UserAddress),
		PoolID:          f.required("fundPoolId", p.FundPoolID),
		Type:            domain.TxType(f.required("txType", p.TxType)),
		AmountBaseUnits: f.number("amountLamports", p.AmountLamports),
		FundTokenChange: f.number("fundTokenChange", p.FundTokenChange),
		CreatedAt:       fromMillis(p.CreatedAt),
	}
	if p.CreatedAt == nil {
		f.fail(errors.New("tarobase_created_at is missing"))
	}
	if f.err != nil {
		return nil, f.err
	}
	return tx, nil
}

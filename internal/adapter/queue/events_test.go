package queue

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wizardfund-backend/internal/domain"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestDecodeEvent_FundPool(t *testing.T) {
	body := []byte(`{
		"eventId": "evt-1",
		"kind": "fund_pool",
		"payload": {
			"id": "pool-1",
			"managerAddress": "manager-wallet",
			"currentTvlLamports": 100000000000,
			"fundTokenSupply": 1000,
			"tarobase_updated_at": 1767225600000
		}
	}`)

	event, err := DecodeEvent(body)

	require.NoError(t, err)
	assert.Equal(t, "evt-1", event.ID)
	assert.Equal(t, KindFundPool, event.Kind)
	want := &domain.FundPool{
		ID:             "pool-1",
		ManagerAddress: "manager-wallet",
		TVLBaseUnits:   decimal.NewFromInt(100_000_000_000),
		ShareSupply:    decimal.NewFromInt(1000),
		UpdatedAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, event.pool, decimalComparer); diff != "" {
		t.Errorf("pool mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEvent_FundManagerDefaults(t *testing.T) {
	body := []byte(`{"eventId":"evt-2","kind":"fund_manager","payload":{"id":"m-1","walletAddress":"w","feePercentageBps":200}}`)

	event, err := DecodeEvent(body)

	require.NoError(t, err)
	require.NotNil(t, event.manager)
	assert.Equal(t, int64(200), event.manager.FeeBps)
	assert.Empty(t, event.manager.TwitterHandle)
	assert.False(t, event.manager.Verified)
	assert.True(t, event.manager.PerformanceScore.IsZero())
}

func TestDecodeEvent_AllocationNeverWithdrew(t *testing.T) {
	body := []byte(`{"eventId":"evt-3","kind":"user_allocation","payload":{"userAddress":"u","fundPoolId":"p","fundTokenAmount":42,"lastWithdrawalTimestamp":0}}`)

	event, err := DecodeEvent(body)

	require.NoError(t, err)
	assert.Nil(t, event.allocation.LastWithdrawalAt)
	assert.True(t, event.allocation.ShareBalance.Equal(decimal.NewFromInt(42)))
}

func TestDecodeEvent_Transaction(t *testing.T) {
	body := []byte(`{"eventId":"evt-4","kind":"transaction","payload":{"id":"tx-1","userAddress":"u","fundPoolId":"p","txType":"withdraw","amountLamports":5000,"fundTokenChange":-50,"tarobase_created_at":1767225600000}}`)

	event, err := DecodeEvent(body)

	require.NoError(t, err)
	assert.Equal(t, domain.TxTypeWithdraw, event.transaction.Type)
	assert.True(t, event.transaction.FundTokenChange.Equal(decimal.NewFromInt(-50)))
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), event.transaction.CreatedAt)
}

func TestDecodeEvent_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Not JSON", `not json`},
		{"Missing Event ID", `{"kind":"fund_pool","payload":{"id":"p","managerAddress":"m"}}`},
		{"Missing Payload", `{"eventId":"e","kind":"fund_pool"}`},
		{"Unknown Kind", `{"eventId":"e","kind":"vault","payload":{}}`},
		{"Payload Wrong Shape", `{"eventId":"e","kind":"fund_pool","payload":{"id":7}}`},
		{"Pool Without Manager", `{"eventId":"e","kind":"fund_pool","payload":{"id":"p"}}`},
		{"Manager Without Fee", `{"eventId":"e","kind":"fund_manager","payload":{"id":"m","walletAddress":"w"}}`},
		{"Transaction Without Timestamp", `{"eventId":"e","kind":"transaction","payload":{"id":"t","userAddress":"u","fundPoolId":"p","txType":"fee"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEvent([]byte(tt.body))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

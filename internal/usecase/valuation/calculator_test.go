package valuation

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wizardfund-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lamportsPerSol = decimal.NewFromInt(1_000_000_000)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr(v int64) *int64 {
	return &v
}

// decimalComparer lets cmp.Diff compare decimals by value instead of by representation
var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func TestComputeDepositPreview_EmptyPoolBootstrap(t *testing.T) {
	pool := domain.PoolState{TotalValueLocked: decimal.Zero, ShareSupply: decimal.Zero}

	preview, err := ComputeDepositPreview(pool, 200, d("1.0"), lamportsPerSol)
	require.NoError(t, err)

	want := &domain.DepositPreview{
		Amount:       d("1"),
		SharesMinted: d("1000000000"),
		FeeAmount:    d("0.02"),
		NetDeposit:   d("0.98"),
	}
	if diff := cmp.Diff(want, preview, decimalComparer); diff != "" {
		t.Errorf("deposit preview mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeDepositPreview_Proportional(t *testing.T) {
	pool := domain.PoolState{TotalValueLocked: d("100"), ShareSupply: d("1000000000")}

	preview, err := ComputeDepositPreview(pool, 0, d("10"), lamportsPerSol)
	require.NoError(t, err)

	assert.True(t, preview.SharesMinted.Equal(d("100000000")), "got %s", preview.SharesMinted)
	assert.True(t, preview.FeeAmount.IsZero())
	assert.True(t, preview.NetDeposit.Equal(d("10")))
}

func TestComputeDepositPreview_ZeroTVLWithSupplyBootstraps(t *testing.T) {
	pool := domain.PoolState{TotalValueLocked: decimal.Zero, ShareSupply: d("500")}

	preview, err := ComputeDepositPreview(pool, 0, d("2"), lamportsPerSol)
	require.NoError(t, err)

	assert.True(t, preview.SharesMinted.Equal(d("2000000000")))
}

func TestComputeDepositPreview_SharesStayExact(t *testing.T) {
	pool := domain.PoolState{TotalValueLocked: d("3"), ShareSupply: d("10")}

	preview, err := ComputeDepositPreview(pool, 0, d("1"), lamportsPerSol)
	require.NoError(t, err)

	assert.False(t, preview.SharesMinted.Equal(preview.SharesMinted.Floor()), "intermediate result must not be floored")
	assert.True(t, FloorAtPresentation(preview.SharesMinted).Equal(d("3")))
}

func TestComputeDepositPreview_InvalidInput(t *testing.T) {
	validPool := domain.PoolState{TotalValueLocked: d("100"), ShareSupply: d("1000")}

	tests := []struct {
		name    string
		pool    domain.PoolState
		feeBps  int64
		amount  decimal.Decimal
		scaling decimal.Decimal
	}{
		{name: "Zero amount", pool: validPool, amount: decimal.Zero, scaling: lamportsPerSol},
		{name: "Negative amount", pool: validPool, amount: d("-1"), scaling: lamportsPerSol},
		{name: "Fee above 100%", pool: validPool, feeBps: 10001, amount: d("1"), scaling: lamportsPerSol},
		{name: "Negative fee", pool: validPool, feeBps: -1, amount: d("1"), scaling: lamportsPerSol},
		{name: "Negative TVL", pool: domain.PoolState{TotalValueLocked: d("-1"), ShareSupply: d("1")}, amount: d("1"), scaling: lamportsPerSol},
		{name: "Negative supply", pool: domain.PoolState{TotalValueLocked: d("1"), ShareSupply: d("-1")}, amount: d("1"), scaling: lamportsPerSol},
		{name: "Zero scaling factor", pool: validPool, amount: d("1"), scaling: decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preview, err := ComputeDepositPreview(tt.pool, tt.feeBps, tt.amount, tt.scaling)
			assert.Nil(t, preview)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestComputeWithdrawPreview_HalfOfAllocation(t *testing.T) {
	pool := domain.PoolState{TotalValueLocked: d("100"), ShareSupply: d("1000000000")}
	allocation := domain.UserAllocation{UserAddress: "user", PoolID: "pool", ShareBalance: d("200000000")}

	preview, err := ComputeWithdrawPreview(pool, allocation, 0, 50, 86400, 1_700_000_000)
	require.NoError(t, err)

	want := &domain.WithdrawPreview{
		Percent:        50,
		CurrentValue:   d("20"),
		SharesToRedeem: d("100000000"),
		GrossAmount:    d("10"),
		FeeAmount:      decimal.Zero,
		NetAmount:      d("10"),
		CanWithdraw:    true,
		CooldownEndsAt: 86400,
	}
	if diff := cmp.Diff(want, preview, decimalComparer); diff != "" {
		t.Errorf("withdraw preview mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeWithdrawPreview_FeeDeducted(t *testing.T) {
	pool := domain.PoolState{TotalValueLocked: d("100"), ShareSupply: d("1000")}
	allocation := domain.UserAllocation{ShareBalance: d("100")}

	preview, err := ComputeWithdrawPreview(pool, allocation, 250, 100, 0, 0)
	require.NoError(t, err)

	assert.True(t, preview.GrossAmount.Equal(d("10")))
	assert.True(t, preview.FeeAmount.Equal(d("0.25")))
	assert.True(t, preview.NetAmount.Equal(d("9.75")))
}

func TestComputeWithdrawPreview_FullWithdrawalRedeemsBalance(t *testing.T) {
	pool := domain.PoolState{TotalValueLocked: d("77.7"), ShareSupply: d("123456789")}
	allocation := domain.UserAllocation{ShareBalance: d("98765")}

	preview, err := ComputeWithdrawPreview(pool, allocation, 100, 100, 0, 0)
	require.NoError(t, err)

	assert.True(t, preview.SharesToRedeem.Equal(allocation.ShareBalance))
}

func TestComputeWithdrawPreview_ZeroSupplyIsWorthless(t *testing.T) {
	pool := domain.PoolState{TotalValueLocked: d("50"), ShareSupply: decimal.Zero}
	allocation := domain.UserAllocation{ShareBalance: d("10")}

	preview, err := ComputeWithdrawPreview(pool, allocation, 100, 50, 0, 0)
	require.NoError(t, err)

	assert.True(t, preview.CurrentValue.IsZero())
	assert.True(t, preview.GrossAmount.IsZero())
	assert.True(t, preview.NetAmount.IsZero())
	assert.True(t, preview.SharesToRedeem.Equal(d("5")))
}

func TestComputeWithdrawPreview_CooldownBoundary(t *testing.T) {
	pool := domain.PoolState{TotalValueLocked: d("100"), ShareSupply: d("1000")}
	last := int64(1_700_000_000)
	cooldown := int64(86400)
	allocation := domain.UserAllocation{ShareBalance: d("10"), LastWithdrawalAt: ptr(last)}

	tests := []struct {
		name        string
		now         int64
		canWithdraw bool
	}{
		{name: "One second before the end", now: last + cooldown - 1, canWithdraw: false},
		{name: "Exactly at the end", now: last + cooldown, canWithdraw: true},
		{name: "After the end", now: last + cooldown + 1, canWithdraw: true},
		{name: "Right after the last withdrawal", now: last, canWithdraw: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preview, err := ComputeWithdrawPreview(pool, allocation, 0, 10, cooldown, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.canWithdraw, preview.CanWithdraw)
			assert.Equal(t, last+cooldown, preview.CooldownEndsAt)
			assert.True(t, preview.GrossAmount.IsPositive(), "ineligible previews are still computed")
		})
	}
}

func TestComputeWithdrawPreview_NeverWithdrawn(t *testing.T) {
	pool := domain.PoolState{TotalValueLocked: d("100"), ShareSupply: d("1000")}
	allocation := domain.UserAllocation{ShareBalance: d("10")}

	preview, err := ComputeWithdrawPreview(pool, allocation, 0, 10, 3600, 3599)
	require.NoError(t, err)
	assert.False(t, preview.CanWithdraw)

	preview, err = ComputeWithdrawPreview(pool, allocation, 0, 10, 3600, 3600)
	require.NoError(t, err)
	assert.True(t, preview.CanWithdraw)
}

func TestComputeWithdrawPreview_InvalidInput(t *testing.T) {
	pool := domain.PoolState{TotalValueLocked: d("100"), ShareSupply: d("1000")}
	allocation := domain.UserAllocation{ShareBalance: d("10")}

	tests := []struct {
		name       string
		pool       domain.PoolState
		allocation domain.UserAllocation
		feeBps     int64
		percent    int64
		cooldown   int64
	}{
		{name: "Zero percent", pool: pool, allocation: allocation, percent: 0},
		{name: "Above 100 percent", pool: pool, allocation: allocation, percent: 101},
		{name: "Negative balance", pool: pool, allocation: domain.UserAllocation{ShareBalance: d("-1")}, percent: 10},
		{name: "Negative cooldown", pool: pool, allocation: allocation, percent: 10, cooldown: -1},
		{name: "Negative TVL", pool: domain.PoolState{TotalValueLocked: d("-5"), ShareSupply: d("1")}, allocation: allocation, percent: 10},
		{name: "Fee out of range", pool: pool, allocation: allocation, feeBps: 20000, percent: 10},
		{name: "Negative last withdrawal", pool: pool, allocation: domain.UserAllocation{ShareBalance: d("10"), LastWithdrawalAt: ptr(-1)}, percent: 10},
		{name: "Cooldown end overflows", pool: pool, allocation: domain.UserAllocation{ShareBalance: d("10"), LastWithdrawalAt: ptr(math.MaxInt64 - 10)}, percent: 10, cooldown: 86400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preview, err := ComputeWithdrawPreview(tt.pool, tt.allocation, tt.feeBps, tt.percent, tt.cooldown, 0)
			assert.Nil(t, preview)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestComputeWithdrawPreview_LatestRepresentableCooldownEnd(t *testing.T) {
	pool := domain.PoolState{TotalValueLocked: d("100"), ShareSupply: d("1000")}
	allocation := domain.UserAllocation{ShareBalance: d("10"), LastWithdrawalAt: ptr(math.MaxInt64 - 86400)}

	preview, err := ComputeWithdrawPreview(pool, allocation, 0, 100, 86400, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), preview.CooldownEndsAt)
	assert.False(t, preview.CanWithdraw)
}

func TestComputeEmergencyWithdrawPreview(t *testing.T) {
	preview, err := ComputeEmergencyWithdrawPreview(d("12.5"), 500)
	require.NoError(t, err)

	assert.True(t, preview.FeeAmount.Equal(d("0.625")))
	assert.True(t, preview.EstimatedReceived.Equal(d("11.875")))
	assert.Equal(t, int64(500), preview.FeeBps)

	_, err = ComputeEmergencyWithdrawPreview(d("-1"), 500)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ComputeEmergencyWithdrawPreview(d("1"), 10001)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBaseUnitConversion(t *testing.T) {
	assert.True(t, ToBaseUnits(d("0.1234567891"), lamportsPerSol).Equal(d("123456789")))
	assert.True(t, FromBaseUnits(d("1500000000"), lamportsPerSol).Equal(d("1.5")))
	assert.True(t, FromBaseUnits(d("10"), decimal.Zero).IsZero())
}

func TestProperty_DepositPreservesSharePrice(t *testing.T) {
	faker := gofakeit.New(42)

	for i := 0; i < 200; i++ {
		tvl := decimal.NewFromInt(int64(faker.IntRange(1, 1_000_000)))
		supply := decimal.NewFromInt(int64(faker.IntRange(1, 1_000_000_000)))
		amount := decimal.NewFromInt(int64(faker.IntRange(1, 100_000)))
		feeBps := int64(faker.IntRange(0, int(domain.MaxFeeBps)))
		pool := domain.PoolState{TotalValueLocked: tvl, ShareSupply: supply}

		preview, err := ComputeDepositPreview(pool, feeBps, amount, lamportsPerSol)
		require.NoError(t, err)

		// New holders buy in at the current price: minted/amount == supply/tvl
		priceBefore := tvl.Div(supply)
		priceAfter := tvl.Add(amount).Div(supply.Add(preview.SharesMinted))
		assert.InDelta(t, priceBefore.InexactFloat64(), priceAfter.InexactFloat64(), priceBefore.InexactFloat64()*1e-9,
			"tvl=%s supply=%s amount=%s", tvl, supply, amount)

		assert.True(t, preview.FeeAmount.Add(preview.NetDeposit).Equal(amount))
		assert.False(t, preview.FeeAmount.IsNegative())
	}
}

func TestProperty_WithdrawThenDepositRoundTrip(t *testing.T) {
	faker := gofakeit.New(7)

	for i := 0; i < 200; i++ {
		supply := decimal.NewFromInt(int64(faker.IntRange(1_000, 1_000_000_000)))
		tvl := decimal.NewFromInt(int64(faker.IntRange(1, 1_000_000)))
		balance := decimal.NewFromInt(int64(faker.IntRange(1, 1_000))).Mul(supply).Div(decimal.NewFromInt(1_000)).Floor()
		percent := int64(faker.IntRange(1, 100))

		pool := domain.PoolState{TotalValueLocked: tvl, ShareSupply: supply}
		allocation := domain.UserAllocation{ShareBalance: balance}

		withdraw, err := ComputeWithdrawPreview(pool, allocation, 0, percent, 0, 0)
		require.NoError(t, err)
		if withdraw.GrossAmount.IsZero() {
			continue
		}

		deposit, err := ComputeDepositPreview(pool, 0, withdraw.GrossAmount, lamportsPerSol)
		require.NoError(t, err)

		diff := deposit.SharesMinted.Sub(withdraw.SharesToRedeem).Abs()
		assert.True(t, diff.LessThan(d("0.001")),
			"round trip drifted by %s shares (tvl=%s supply=%s balance=%s pct=%d)", diff, tvl, supply, balance, percent)
	}
}

func TestProperty_WithdrawIsMonotonicInPercent(t *testing.T) {
	faker := gofakeit.New(99)
	pool := domain.PoolState{TotalValueLocked: d("1234.5"), ShareSupply: d("987654321")}

	for i := 0; i < 100; i++ {
		allocation := domain.UserAllocation{ShareBalance: decimal.NewFromInt(int64(faker.IntRange(1, 987654321)))}
		lower := int64(faker.IntRange(1, 99))
		higher := lower + 1

		a, err := ComputeWithdrawPreview(pool, allocation, 100, lower, 0, 0)
		require.NoError(t, err)
		b, err := ComputeWithdrawPreview(pool, allocation, 100, higher, 0, 0)
		require.NoError(t, err)

		assert.True(t, b.SharesToRedeem.GreaterThan(a.SharesToRedeem))
		assert.True(t, b.NetAmount.GreaterThanOrEqual(a.NetAmount))
		assert.False(t, b.NetAmount.GreaterThan(b.CurrentValue))
	}
}

package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/simaogato/wizardfund-backend/internal/adapter/grpc/fundv1"
	"github.com/simaogato/wizardfund-backend/internal/domain"
	"github.com/simaogato/wizardfund-backend/internal/domain/mocks"
	"github.com/simaogato/wizardfund-backend/internal/usecase/deposit"
	"github.com/simaogato/wizardfund-backend/internal/usecase/history"
	"github.com/simaogato/wizardfund-backend/internal/usecase/manager"
	"github.com/simaogato/wizardfund-backend/internal/usecase/portfolio"
	"github.com/simaogato/wizardfund-backend/internal/usecase/withdraw"
)

const testToken = "grpc-token"

var scaling = domain.ScalingFactor(9)

type fixture struct {
	pools        *mocks.PoolRepository
	managers     *mocks.ManagerRepository
	allocations  *mocks.AllocationRepository
	transactions *mocks.TransactionRepository
	gateway      *mocks.FundGateway
	client       fundv1.FundServiceClient
	now          time.Time
}

func startServer(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		pools:        new(mocks.PoolRepository),
		managers:     new(mocks.ManagerRepository),
		allocations:  new(mocks.AllocationRepository),
		transactions: new(mocks.TransactionRepository),
		gateway:      new(mocks.FundGateway),
		now:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	settings := domain.FundSettings{
		ScalingFactor:             scaling,
		MinDeposit:                decimal.RequireFromString("0.1"),
		WithdrawalCooldownSeconds: 86400,
		EmergencyFeeBps:           500,
	}

	withdrawService := withdraw.NewWithdrawService(f.pools, f.managers, f.allocations, f.gateway, settings)
	withdrawService.Now = func() time.Time { return f.now }

	server := NewServer(
		deposit.NewDepositService(f.pools, f.managers, f.gateway, settings),
		withdrawService,
		portfolio.NewPortfolioService(f.pools, f.managers, f.allocations, scaling),
		manager.NewManagerService(f.managers, f.pools, f.gateway, scaling),
		history.NewHistoryService(f.transactions, scaling),
	)

	lis := bufconn.Listen(1 << 20)
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		LoggingInterceptor(),
		AuthInterceptor(testToken, MutatingMethods...),
	))
	fundv1.RegisterFundServiceServer(grpcServer, server)
	go func() {
		_ = grpcServer.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		grpcServer.Stop()
	})

	f.client = fundv1.NewFundServiceClient(conn)
	return f
}

func authorized(ctx context.Context) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+testToken)
}

func (f *fixture) seedPool() {
	f.pools.On("GetByID", mock.Anything, "pool-1").Return(&domain.FundPool{
		ID:             "pool-1",
		ManagerAddress: "manager-wallet",
		TVLBaseUnits:   decimal.NewFromInt(100).Mul(scaling),
		ShareSupply:    decimal.NewFromInt(1000),
	}, nil)
	f.managers.On("GetByWallet", mock.Anything, "manager-wallet").Return(&domain.FundManager{
		ID:            "m-1",
		WalletAddress: "manager-wallet",
		FeeBps:        200,
	}, nil)
}

func TestPreviewDeposit(t *testing.T) {
	f := startServer(t)
	f.seedPool()

	resp, err := f.client.PreviewDeposit(context.Background(), &fundv1.PreviewDepositRequest{PoolId: "pool-1", Amount: "10"})

	require.NoError(t, err)
	assert.Equal(t, "10", resp.Amount)
	assert.Equal(t, "100", resp.SharesMinted)
	assert.Equal(t, "0.2", resp.FeeAmount)
	assert.Equal(t, "9.8", resp.NetDeposit)
}

func TestPreviewDeposit_InvalidAmount(t *testing.T) {
	f := startServer(t)

	for _, amount := range []string{"ten", "1e3000000", "1e-3000000"} {
		_, err := f.client.PreviewDeposit(context.Background(), &fundv1.PreviewDepositRequest{PoolId: "pool-1", Amount: amount})

		assert.Equal(t, codes.InvalidArgument, status.Code(err), amount)
	}
}

func TestPreviewDeposit_UnknownPool(t *testing.T) {
	f := startServer(t)
	f.pools.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := f.client.PreviewDeposit(context.Background(), &fundv1.PreviewDepositRequest{PoolId: "ghost", Amount: "1"})

	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestSubmitDeposit_RequiresToken(t *testing.T) {
	f := startServer(t)

	_, err := f.client.SubmitDeposit(context.Background(), &fundv1.SubmitDepositRequest{UserAddress: "u", PoolId: "pool-1", Amount: "1"})

	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	f.gateway.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything)
}

func TestSubmitDeposit(t *testing.T) {
	f := startServer(t)
	f.gateway.On("Deposit", mock.Anything, domain.DepositRequest{
		UserAddress:    "user-1",
		PoolID:         "pool-1",
		AmountLamports: 1_500_000_000,
	}).Return(&domain.DepositReceipt{
		DepositID:           "dep-1",
		PoolID:              "pool-1",
		AmountLamports:      decimal.NewFromInt(1_500_000_000),
		FundTokensMinted:    decimal.NewFromInt(15),
		NewFundTokenBalance: decimal.NewFromInt(40),
		Timestamp:           f.now,
	}, nil)

	resp, err := f.client.SubmitDeposit(authorized(context.Background()), &fundv1.SubmitDepositRequest{
		UserAddress: "user-1",
		PoolId:      "pool-1",
		Amount:      "1.5",
	})

	require.NoError(t, err)
	assert.Equal(t, "dep-1", resp.DepositId)
	assert.Equal(t, "1500000000", resp.AmountLamports)
	assert.Equal(t, "15", resp.FundTokensMinted)
	assert.Equal(t, f.now.Unix(), resp.Timestamp)
}

func TestSubmitWithdraw_CooldownIsFailedPrecondition(t *testing.T) {
	f := startServer(t)
	f.seedPool()
	last := f.now.Add(-time.Hour).Unix()
	f.allocations.On("Get", mock.Anything, "user-1", "pool-1").Return(&domain.UserAllocation{
		UserAddress:      "user-1",
		PoolID:           "pool-1",
		ShareBalance:     decimal.NewFromInt(100),
		LastWithdrawalAt: &last,
	}, nil)

	preview, err := f.client.PreviewWithdraw(context.Background(), &fundv1.PreviewWithdrawRequest{UserAddress: "user-1", PoolId: "pool-1", Percent: 50})
	require.NoError(t, err)
	assert.False(t, preview.CanWithdraw)
	assert.Equal(t, last+86400, preview.CooldownEndsAt)
	assert.Equal(t, "10", preview.CurrentValue)
	assert.Equal(t, "50", preview.SharesToRedeem)

	_, err = f.client.SubmitWithdraw(authorized(context.Background()), &fundv1.SubmitWithdrawRequest{UserAddress: "user-1", PoolId: "pool-1", Percent: 50})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	f.gateway.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything)
}

func TestPreviewEmergencyWithdraw_UpstreamFailure(t *testing.T) {
	f := startServer(t)
	f.gateway.On("Portfolio", mock.Anything, "user-1").Return(nil, fmt.Errorf("%w: connection refused", domain.ErrUpstream))

	_, err := f.client.PreviewEmergencyWithdraw(context.Background(), &fundv1.PreviewEmergencyWithdrawRequest{UserAddress: "user-1"})

	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestListTransactions_NegativeLimit(t *testing.T) {
	f := startServer(t)

	_, err := f.client.ListTransactions(context.Background(), &fundv1.ListTransactionsRequest{UserAddress: "u", Limit: -1})

	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestListTransactions(t *testing.T) {
	f := startServer(t)
	f.transactions.On("ListByUser", mock.Anything, "user-1", domain.TxTypeDeposit, 10).Return([]*domain.FundTransaction{
		{
			ID:              "tx-1",
			UserAddress:     "user-1",
			PoolID:          "pool-1",
			Type:            domain.TxTypeDeposit,
			AmountBaseUnits: decimal.NewFromInt(2_500_000_000),
			FundTokenChange: decimal.NewFromInt(25),
			CreatedAt:       f.now,
		},
	}, nil)

	resp, err := f.client.ListTransactions(context.Background(), &fundv1.ListTransactionsRequest{UserAddress: "user-1", Type: "deposit", Limit: 10})

	require.NoError(t, err)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, "2.5", resp.Transactions[0].Amount)
	assert.Equal(t, "deposit", resp.Transactions[0].Type)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"Nil", nil, codes.OK},
		{"Invalid", fmt.Errorf("wrap: %w", domain.ErrInvalidInput), codes.InvalidArgument},
		{"Below Minimum", domain.ErrBelowMinimumDeposit, codes.InvalidArgument},
		{"Not Found", domain.ErrNotFound, codes.NotFound},
		{"Cooldown", domain.ErrCooldownActive, codes.FailedPrecondition},
		{"Cooldown From Upstream", errors.Join(domain.ErrUpstream, domain.ErrCooldownActive), codes.FailedPrecondition},
		{"Upstream", domain.ErrUpstream, codes.Unavailable},
		{"Deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"Unknown", errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(mapError(tt.err)))
		})
	}
}

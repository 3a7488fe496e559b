package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simaogato/wizardfund-backend/internal/adapter/grpc/fundv1"
	"github.com/simaogato/wizardfund-backend/internal/domain"
	"github.com/simaogato/wizardfund-backend/internal/usecase/deposit"
	"github.com/simaogato/wizardfund-backend/internal/usecase/history"
	"github.com/simaogato/wizardfund-backend/internal/usecase/manager"
	"github.com/simaogato/wizardfund-backend/internal/usecase/portfolio"
	"github.com/simaogato/wizardfund-backend/internal/usecase/valuation"
	"github.com/simaogato/wizardfund-backend/internal/usecase/withdraw"
)

// MutatingMethods are the RPCs that change state in the fund system and require the API token
var MutatingMethods = []string{
	fundv1.FundService_SubmitDeposit_FullMethodName,
	fundv1.FundService_SubmitWithdraw_FullMethodName,
	fundv1.FundService_RegisterManager_FullMethodName,
}

// Server implements the FundService gRPC server
type Server struct {
	fundv1.UnimplementedFundServiceServer

	DepositService   *deposit.DepositService
	WithdrawService  *withdraw.WithdrawService
	PortfolioService *portfolio.PortfolioService
	ManagerService   *manager.ManagerService
	HistoryService   *history.HistoryService
}

// NewServer creates a new gRPC server instance
func NewServer(
	depositService *deposit.DepositService,
	withdrawService *withdraw.WithdrawService,
	portfolioService *portfolio.PortfolioService,
	managerService *manager.ManagerService,
	historyService *history.HistoryService,
) *Server {
	return &Server{
		DepositService:   depositService,
		WithdrawService:  withdrawService,
		PortfolioService: portfolioService,
		ManagerService:   managerService,
		HistoryService:   historyService,
	}
}

// PreviewDeposit handles the PreviewDeposit RPC
func (s *Server) PreviewDeposit(ctx context.Context, req *fundv1.PreviewDepositRequest) (*fundv1.PreviewDepositResponse, error) {
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, mapError(err)
	}

	preview, err := s.DepositService.PreviewDeposit(ctx, deposit.PreviewDepositInput{
		PoolID: req.PoolId,
		Amount: amount,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &fundv1.PreviewDepositResponse{
		Amount:       preview.Amount.String(),
		SharesMinted: valuation.FloorAtPresentation(preview.SharesMinted).String(),
		FeeAmount:    preview.FeeAmount.String(),
		NetDeposit:   preview.NetDeposit.String(),
	}, nil
}

// SubmitDeposit handles the SubmitDeposit RPC
func (s *Server) SubmitDeposit(ctx context.Context, req *fundv1.SubmitDepositRequest) (*fundv1.SubmitDepositResponse, error) {
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, mapError(err)
	}

	receipt, err := s.DepositService.SubmitDeposit(ctx, deposit.SubmitDepositInput{
		UserAddress: req.UserAddress,
		PoolID:      req.PoolId,
		Amount:      amount,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &fundv1.SubmitDepositResponse{
		DepositId:           receipt.DepositID,
		PoolId:              receipt.PoolID,
		AmountLamports:      receipt.AmountLamports.String(),
		FundTokensMinted:    receipt.FundTokensMinted.String(),
		NewFundTokenBalance: receipt.NewFundTokenBalance.String(),
		Timestamp:           receipt.Timestamp.Unix(),
	}, nil
}

// PreviewWithdraw handles the PreviewWithdraw RPC
func (s *Server) PreviewWithdraw(ctx context.Context, req *fundv1.PreviewWithdrawRequest) (*fundv1.PreviewWithdrawResponse, error) {
	preview, err := s.WithdrawService.PreviewWithdraw(ctx, withdraw.WithdrawInput{
		UserAddress: req.UserAddress,
		PoolID:      req.PoolId,
		Percent:     req.Percent,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &fundv1.PreviewWithdrawResponse{
		Percent:        preview.Percent,
		CurrentValue:   preview.CurrentValue.String(),
		SharesToRedeem: valuation.FloorAtPresentation(preview.SharesToRedeem).String(),
		GrossAmount:    preview.GrossAmount.String(),
		FeeAmount:      preview.FeeAmount.String(),
		NetAmount:      preview.NetAmount.String(),
		CanWithdraw:    preview.CanWithdraw,
		CooldownEndsAt: preview.CooldownEndsAt,
	}, nil
}

// SubmitWithdraw handles the SubmitWithdraw RPC
func (s *Server) SubmitWithdraw(ctx context.Context, req *fundv1.SubmitWithdrawRequest) (*fundv1.SubmitWithdrawResponse, error) {
	receipt, err := s.WithdrawService.SubmitWithdraw(ctx, withdraw.WithdrawInput{
		UserAddress: req.UserAddress,
		PoolID:      req.PoolId,
		Percent:     req.Percent,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &fundv1.SubmitWithdrawResponse{
		WithdrawalId:        receipt.WithdrawalID,
		PoolId:              receipt.PoolID,
		FundTokensBurned:    receipt.FundTokensBurned.String(),
		GrossAmountLamports: receipt.GrossAmountLamports.String(),
		ManagerFeeLamports:  receipt.ManagerFeeLamports.String(),
		NetAmountLamports:   receipt.NetAmountLamports.String(),
		RemainingFundTokens: receipt.RemainingFundTokens.String(),
		Timestamp:           receipt.Timestamp.Unix(),
	}, nil
}

// PreviewEmergencyWithdraw handles the PreviewEmergencyWithdraw RPC
func (s *Server) PreviewEmergencyWithdraw(ctx context.Context, req *fundv1.PreviewEmergencyWithdrawRequest) (*fundv1.PreviewEmergencyWithdrawResponse, error) {
	preview, err := s.WithdrawService.PreviewEmergencyWithdraw(ctx, req.UserAddress)
	if err != nil {
		return nil, mapError(err)
	}

	return &fundv1.PreviewEmergencyWithdrawResponse{
		PortfolioValue:    preview.PortfolioValue.String(),
		FeeBps:            preview.FeeBps,
		FeeAmount:         preview.FeeAmount.String(),
		EstimatedReceived: preview.EstimatedReceived.String(),
	}, nil
}

// GetPortfolio handles the GetPortfolio RPC
func (s *Server) GetPortfolio(ctx context.Context, req *fundv1.GetPortfolioRequest) (*fundv1.GetPortfolioResponse, error) {
	result, err := s.PortfolioService.GetPortfolio(ctx, req.UserAddress)
	if err != nil {
		return nil, mapError(err)
	}

	positions := make([]*fundv1.Position, 0, len(result.Positions))
	for _, p := range result.Positions {
		positions = append(positions, &fundv1.Position{
			PoolId:            p.PoolID,
			ManagerName:       p.ManagerName,
			ManagerAddress:    p.ManagerAddress,
			FundTokens:        valuation.FloorAtPresentation(p.FundTokens).String(),
			Value:             p.Value.String(),
			AllocationPercent: p.AllocationPercent.StringFixed(2),
			Return30D:         p.Return30d.StringFixed(2),
			Return1Y:          p.Return1y.StringFixed(2),
		})
	}

	return &fundv1.GetPortfolioResponse{
		UserAddress:     result.UserAddress,
		TotalValue:      result.TotalValue.String(),
		TotalFundTokens: valuation.FloorAtPresentation(result.TotalFundTokens).String(),
		Return30D:       result.Return30d.StringFixed(2),
		Return1Y:        result.Return1y.StringFixed(2),
		Positions:       positions,
	}, nil
}

// GetDashboardStats handles the GetDashboardStats RPC
func (s *Server) GetDashboardStats(ctx context.Context, req *fundv1.GetDashboardStatsRequest) (*fundv1.GetDashboardStatsResponse, error) {
	stats, err := s.PortfolioService.GetDashboardStats(ctx, req.UserAddress)
	if err != nil {
		return nil, mapError(err)
	}

	return &fundv1.GetDashboardStatsResponse{
		TotalTvl:          stats.TotalTVL.String(),
		PortfolioValue:    stats.PortfolioValue.String(),
		ManagerCount:      int32(stats.ManagerCount),
		ActiveAllocations: int32(stats.ActiveAllocations),
	}, nil
}

// ListManagers handles the ListManagers RPC
func (s *Server) ListManagers(ctx context.Context, req *fundv1.ListManagersRequest) (*fundv1.ListManagersResponse, error) {
	if req.Limit < 0 {
		return nil, status.Errorf(codes.InvalidArgument, "limit must be non-negative")
	}

	listings, err := s.ManagerService.ListManagers(ctx, int(req.Limit))
	if err != nil {
		return nil, mapError(err)
	}

	managers := make([]*fundv1.Manager, 0, len(listings))
	for _, l := range listings {
		managers = append(managers, &fundv1.Manager{
			ManagerId:     l.ManagerID,
			WalletAddress: l.WalletAddress,
			DisplayName:   l.DisplayName,
			Strategy:      l.Strategy,
			PoolId:        l.PoolID,
			Aum:           l.AUM.String(),
			FeePercent:    l.FeePercent.String(),
			RiskLevel:     string(l.RiskLevel),
			Return30D:     l.Return30d.StringFixed(2),
			Return1Y:      l.Return1y.StringFixed(2),
			Investors:     l.Investors,
			Verified:      l.Verified,
		})
	}

	return &fundv1.ListManagersResponse{Managers: managers}, nil
}

// RegisterManager handles the RegisterManager RPC
func (s *Server) RegisterManager(ctx context.Context, req *fundv1.RegisterManagerRequest) (*fundv1.RegisterManagerResponse, error) {
	registration, err := s.ManagerService.RegisterManager(ctx, manager.RegisterManagerInput{
		WalletAddress:       req.WalletAddress,
		TwitterHandle:       req.TwitterHandle,
		FeeBps:              req.FeeBps,
		StrategyDescription: req.StrategyDescription,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return &fundv1.RegisterManagerResponse{
		ManagerId: registration.ManagerID,
		PoolId:    registration.PoolID,
		Status:    registration.Status,
	}, nil
}

// GetManagerPerformance handles the GetManagerPerformance RPC
func (s *Server) GetManagerPerformance(ctx context.Context, req *fundv1.GetManagerPerformanceRequest) (*fundv1.GetManagerPerformanceResponse, error) {
	performance, err := s.ManagerService.GetPerformance(ctx, req.ManagerId)
	if err != nil {
		return nil, mapError(err)
	}

	return &fundv1.GetManagerPerformanceResponse{
		ManagerId:             performance.ManagerID,
		ManagerAddress:        performance.ManagerAddress,
		TwitterHandle:         performance.TwitterHandle,
		FeeBps:                performance.FeeBps,
		StrategyDescription:   performance.StrategyDescription,
		TotalDepositsLamports: performance.TotalDepositsLamports.String(),
		CurrentTvlLamports:    performance.CurrentTVLLamports.String(),
		PerformancePercent:    performance.PerformancePercent.String(),
		DepositorCount:        performance.DepositorCount,
		ReputationScore:       performance.ReputationScore.String(),
	}, nil
}

// ListTransactions handles the ListTransactions RPC
func (s *Server) ListTransactions(ctx context.Context, req *fundv1.ListTransactionsRequest) (*fundv1.ListTransactionsResponse, error) {
	// Validate limit (zero means no limit)
	if req.Limit < 0 {
		return nil, status.Errorf(codes.InvalidArgument, "limit must be non-negative")
	}

	entries, err := s.HistoryService.ListTransactions(ctx, history.ListTransactionsInput{
		UserAddress: req.UserAddress,
		Type:        domain.TxType(req.Type),
		Limit:       int(req.Limit),
	})
	if err != nil {
		return nil, mapError(err)
	}

	transactions := make([]*fundv1.Transaction, 0, len(entries))
	for _, e := range entries {
		transactions = append(transactions, &fundv1.Transaction{
			Id:              e.ID,
			PoolId:          e.PoolID,
			Type:            string(e.Type),
			Amount:          e.Amount.String(),
			FundTokenChange: e.FundTokenChange.String(),
			Timestamp:       e.CreatedAt.Unix(),
		})
	}

	return &fundv1.ListTransactionsResponse{Transactions: transactions}, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrCooldownActive):
		return status.Errorf(codes.FailedPrecondition, "%s", err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, domain.ErrUpstream):
		return status.Errorf(codes.Unavailable, "%s", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", err.Error())
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", err.Error())
}

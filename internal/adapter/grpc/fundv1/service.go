package fundv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "wizardfund.v1.FundService"

const (
	FundService_PreviewDeposit_FullMethodName           = "/" + ServiceName + "/PreviewDeposit"
	FundService_SubmitDeposit_FullMethodName            = "/" + ServiceName + "/SubmitDeposit"
	FundService_PreviewWithdraw_FullMethodName          = "/" + ServiceName + "/PreviewWithdraw"
	FundService_SubmitWithdraw_FullMethodName           = "/" + ServiceName + "/SubmitWithdraw"
	FundService_PreviewEmergencyWithdraw_FullMethodName = "/" + ServiceName + "/PreviewEmergencyWithdraw"
	FundService_GetPortfolio_FullMethodName             = "/" + ServiceName + "/GetPortfolio"
	FundService_GetDashboardStats_FullMethodName        = "/" + ServiceName + "/GetDashboardStats"
	FundService_ListManagers_FullMethodName             = "/" + ServiceName + "/ListManagers"
	FundService_RegisterManager_FullMethodName          = "/" + ServiceName + "/RegisterManager"
	FundService_GetManagerPerformance_FullMethodName    = "/" + ServiceName + "/GetManagerPerformance"
	FundService_ListTransactions_FullMethodName         = "/" + ServiceName + "/ListTransactions"
)

// FundServiceServer is the server API for the FundService service
type FundServiceServer interface {
	PreviewDeposit(context.Context, *PreviewDepositRequest) (*PreviewDepositResponse, error)
	SubmitDeposit(context.Context, *SubmitDepositRequest) (*SubmitDepositResponse, error)
	PreviewWithdraw(context.Context, *PreviewWithdrawRequest) (*PreviewWithdrawResponse, error)
	SubmitWithdraw(context.Context, *SubmitWithdrawRequest) (*SubmitWithdrawResponse, error)
	PreviewEmergencyWithdraw(context.Context, *PreviewEmergencyWithdrawRequest) (*PreviewEmergencyWithdrawResponse, error)
	GetPortfolio(context.Context, *GetPortfolioRequest) (*GetPortfolioResponse, error)
	GetDashboardStats(context.Context, *GetDashboardStatsRequest) (*GetDashboardStatsResponse, error)
	ListManagers(context.Context, *ListManagersRequest) (*ListManagersResponse, error)
	RegisterManager(context.Context, *RegisterManagerRequest) (*RegisterManagerResponse, error)
	GetManagerPerformance(context.Context, *GetManagerPerformanceRequest) (*GetManagerPerformanceResponse, error)
	ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error)
}

// UnimplementedFundServiceServer can be embedded to have forward compatible implementations
type UnimplementedFundServiceServer struct{}

func (UnimplementedFundServiceServer) PreviewDeposit(context.Context, *PreviewDepositRequest) (*PreviewDepositResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PreviewDeposit not implemented")
}

func (UnimplementedFundServiceServer) SubmitDeposit(context.Context, *SubmitDepositRequest) (*SubmitDepositResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitDeposit not implemented")
}

func (UnimplementedFundServiceServer) PreviewWithdraw(context.Context, *PreviewWithdrawRequest) (*PreviewWithdrawResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PreviewWithdraw not implemented")
}

func (UnimplementedFundServiceServer) SubmitWithdraw(context.Context, *SubmitWithdrawRequest) (*SubmitWithdrawResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitWithdraw not implemented")
}

func (UnimplementedFundServiceServer) PreviewEmergencyWithdraw(context.Context, *PreviewEmergencyWithdrawRequest) (*PreviewEmergencyWithdrawResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PreviewEmergencyWithdraw not implemented")
}

func (UnimplementedFundServiceServer) GetPortfolio(context.Context, *GetPortfolioRequest) (*GetPortfolioResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPortfolio not implemented")
}

func (UnimplementedFundServiceServer) GetDashboardStats(context.Context, *GetDashboardStatsRequest) (*GetDashboardStatsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDashboardStats not implemented")
}

func (UnimplementedFundServiceServer) ListManagers(context.Context, *ListManagersRequest) (*ListManagersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListManagers not implemented")
}

func (UnimplementedFundServiceServer) RegisterManager(context.Context, *RegisterManagerRequest) (*RegisterManagerResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterManager not implemented")
}

func (UnimplementedFundServiceServer) GetManagerPerformance(context.Context, *GetManagerPerformanceRequest) (*GetManagerPerformanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetManagerPerformance not implemented")
}

func (UnimplementedFundServiceServer) ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListTransactions not implemented")
}

// RegisterFundServiceServer registers srv on s
func RegisterFundServiceServer(s grpc.ServiceRegistrar, srv FundServiceServer) {
	s.RegisterService(&FundService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to a grpc.MethodHandler
func unaryHandler[Req any, Resp any](fullMethod string, call func(FundServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FundServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FundServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// FundService_ServiceDesc is the grpc.ServiceDesc for the FundService service
var FundService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FundServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PreviewDeposit",
			Handler:    unaryHandler(FundService_PreviewDeposit_FullMethodName, FundServiceServer.PreviewDeposit),
		},
		{
			MethodName: "SubmitDeposit",
			Handler:    unaryHandler(FundService_SubmitDeposit_FullMethodName, FundServiceServer.SubmitDeposit),
		},
		{
			MethodName: "PreviewWithdraw",
			Handler:    unaryHandler(FundService_PreviewWithdraw_FullMethodName, FundServiceServer.PreviewWithdraw),
		},
		{
			MethodName: "SubmitWithdraw",
			Handler:    unaryHandler(FundService_SubmitWithdraw_FullMethodName, FundServiceServer.SubmitWithdraw),
		},
		{
			MethodName: "PreviewEmergencyWithdraw",
			Handler:    unaryHandler(FundService_PreviewEmergencyWithdraw_FullMethodName, FundServiceServer.PreviewEmergencyWithdraw),
		},
		{
			MethodName: "GetPortfolio",
			Handler:    unaryHandler(FundService_GetPortfolio_FullMethodName, FundServiceServer.GetPortfolio),
		},
		{
			MethodName: "GetDashboardStats",
			Handler:    unaryHandler(FundService_GetDashboardStats_FullMethodName, FundServiceServer.GetDashboardStats),
		},
		{
			MethodName: "ListManagers",
			Handler:    unaryHandler(FundService_ListManagers_FullMethodName, FundServiceServer.ListManagers),
		},
		{
			MethodName: "RegisterManager",
			Handler:    unaryHandler(FundService_RegisterManager_FullMethodName, FundServiceServer.RegisterManager),
		},
		{
			MethodName: "GetManagerPerformance",
			Handler:    unaryHandler(FundService_GetManagerPerformance_FullMethodName, FundServiceServer.GetManagerPerformance),
		},
		{
			MethodName: "ListTransactions",
			Handler:    unaryHandler(FundService_ListTransactions_FullMethodName, FundServiceServer.ListTransactions),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// FundServiceClient is the client API for the FundService service
type FundServiceClient interface {
	PreviewDeposit(ctx context.Context, in *PreviewDepositRequest, opts ...grpc.CallOption) (*PreviewDepositResponse, error)
	SubmitDeposit(ctx context.Context, in *SubmitDepositRequest, opts ...grpc.CallOption) (*SubmitDepositResponse, error)
	PreviewWithdraw(ctx context.Context, in *PreviewWithdrawRequest, opts ...grpc.CallOption) (*PreviewWithdrawResponse, error)
	SubmitWithdraw(ctx context.Context, in *SubmitWithdrawRequest, opts ...grpc.CallOption) (*SubmitWithdrawResponse, error)
	PreviewEmergencyWithdraw(ctx context.Context, in *PreviewEmergencyWithdrawRequest, opts ...grpc.CallOption) (*PreviewEmergencyWithdrawResponse, error)
	GetPortfolio(ctx context.Context, in *GetPortfolioRequest, opts ...grpc.CallOption) (*GetPortfolioResponse, error)
	GetDashboardStats(ctx context.Context, in *GetDashboardStatsRequest, opts ...grpc.CallOption) (*GetDashboardStatsResponse, error)
	ListManagers(ctx context.Context, in *ListManagersRequest, opts ...grpc.CallOption) (*ListManagersResponse, error)
	RegisterManager(ctx context.Context, in *RegisterManagerRequest, opts ...grpc.CallOption) (*RegisterManagerResponse, error)
	GetManagerPerformance(ctx context.Context, in *GetManagerPerformanceRequest, opts ...grpc.CallOption) (*GetManagerPerformanceResponse, error)
	ListTransactions(ctx context.Context, in *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error)
}

type fundServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewFundServiceClient returns a client that encodes messages with the json codec
func NewFundServiceClient(cc grpc.ClientConnInterface) FundServiceClient {
	return &fundServiceClient{cc: cc}
}

func callOptions(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *fundServiceClient) PreviewDeposit(ctx context.Context, in *PreviewDepositRequest, opts ...grpc.CallOption) (*PreviewDepositResponse, error) {
	out := new(PreviewDepositResponse)
	if err := c.cc.Invoke(ctx, FundService_PreviewDeposit_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fundServiceClient) SubmitDeposit(ctx context.Context, in *SubmitDepositRequest, opts ...grpc.CallOption) (*SubmitDepositResponse, error) {
	out := new(SubmitDepositResponse)
	if err := c.cc.Invoke(ctx, FundService_SubmitDeposit_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fundServiceClient) PreviewWithdraw(ctx context.Context, in *PreviewWithdrawRequest, opts ...grpc.CallOption) (*PreviewWithdrawResponse, error) {
	out := new(PreviewWithdrawResponse)
	if err := c.cc.Invoke(ctx, FundService_PreviewWithdraw_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fundServiceClient) SubmitWithdraw(ctx context.Context, in *SubmitWithdrawRequest, opts ...grpc.CallOption) (*SubmitWithdrawResponse, error) {
	out := new(SubmitWithdrawResponse)
	if err := c.cc.Invoke(ctx, FundService_SubmitWithdraw_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fundServiceClient) PreviewEmergencyWithdraw(ctx context.Context, in *PreviewEmergencyWithdrawRequest, opts ...grpc.CallOption) (*PreviewEmergencyWithdrawResponse, error) {
	out := new(PreviewEmergencyWithdrawResponse)
	if err := c.cc.Invoke(ctx, FundService_PreviewEmergencyWithdraw_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fundServiceClient) GetPortfolio(ctx context.Context, in *GetPortfolioRequest, opts ...grpc.CallOption) (*GetPortfolioResponse, error) {
	out := new(GetPortfolioResponse)
	if err := c.cc.Invoke(ctx, FundService_GetPortfolio_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fundServiceClient) GetDashboardStats(ctx context.Context, in *GetDashboardStatsRequest, opts ...grpc.CallOption) (*GetDashboardStatsResponse, error) {
	out := new(GetDashboardStatsResponse)
	if err := c.cc.Invoke(ctx, FundService_GetDashboardStats_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fundServiceClient) ListManagers(ctx context.Context, in *ListManagersRequest, opts ...grpc.CallOption) (*ListManagersResponse, error) {
	out := new(ListManagersResponse)
	if err := c.cc.Invoke(ctx, FundService_ListManagers_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fundServiceClient) RegisterManager(ctx context.Context, in *RegisterManagerRequest, opts ...grpc.CallOption) (*RegisterManagerResponse, error) {
	out := new(RegisterManagerResponse)
	if err := c.cc.Invoke(ctx, FundService_RegisterManager_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fundServiceClient) GetManagerPerformance(ctx context.Context, in *GetManagerPerformanceRequest, opts ...grpc.CallOption) (*GetManagerPerformanceResponse, error) {
	out := new(GetManagerPerformanceResponse)
	if err := c.cc.Invoke(ctx, FundService_GetManagerPerformance_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fundServiceClient) ListTransactions(ctx context.Context, in *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error) {
	out := new(ListTransactionsResponse)
	if err := c.cc.Invoke(ctx, FundService_ListTransactions_FullMethodName, in, out, callOptions(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

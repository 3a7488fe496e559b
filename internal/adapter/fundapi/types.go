package fundapi

// envelope is the response wrapper of every fund API endpoint
type envelope[T any] struct {
	Success bool `json:"success"`
	Data    *T   `json:"data,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details,omitempty"`
	} `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
	RequestID string `json:"requestId,omitempty"`
}

type empty struct{}

type healthResponse struct {
	Status    string  `json:"status"`
	Timestamp int64   `json:"timestamp"`
	Version   string  `json:"version"`
	Uptime    float64 `json:"uptime"`
}

type registerManagerRequest struct {
	WalletAddress       string `json:"walletAddress"`
	TwitterHandle       string `json:"twitterHandle,omitempty"`
	FeePercentageBps    int64  `json:"feePercentageBps"`
	StrategyDescription string `json:"strategyDescription"`
}

type registerManagerResponse struct {
	ManagerID           string `json:"managerId"`
	WalletAddress       string `json:"walletAddress"`
	TwitterHandle       string `json:"twitterHandle,omitempty"`
	FeePercentageBps    int64  `json:"feePercentageBps"`
	StrategyDescription string `json:"strategyDescription"`
	PoolID              string `json:"poolId"`
	Status              string `json:"status"`
}

type depositRequest struct {
	UserAddress    string `json:"userAddress"`
	PoolID         string `json:"poolId"`
	AmountLamports int64  `json:"amountLamports"`
}

type depositResponse struct {
	DepositID           string  `json:"depositId"`
	UserAddress         string  `json:"userAddress"`
	PoolID              string  `json:"poolId"`
	AmountLamports      float64 `json:"amountLamports"`
	FundTokensMinted    float64 `json:"fundTokensMinted"`
	NewFundTokenBalance float64 `json:"newFundTokenBalance"`
	Timestamp           int64   `json:"timestamp"`
}

type withdrawRequest struct {
	UserAddress     string `json:"userAddress"`
	FundID          string `json:"fundId"`
	FundTokenAmount int64  `json:"fundTokenAmount"`
}

type withdrawResponse struct {
	WithdrawalID        string  `json:"withdrawalId"`
	UserAddress         string  `json:"userAddress"`
	FundID              string  `json:"fundId"`
	FundTokensBurned    float64 `json:"fundTokensBurned"`
	GrossAmountLamports float64 `json:"grossAmountLamports"`
	ManagerFeeLamports  float64 `json:"managerFeeLamports"`
	NetAmountLamports   float64 `json:"netAmountLamports"`
	RemainingFundTokens float64 `json:"remainingFundTokens"`
	Timestamp           int64   `json:"timestamp"`
}

type portfolioResponse struct {
	UserAddress        string  `json:"userAddress"`
	TotalValueLamports float64 `json:"totalValueLamports"`
	Allocations        []struct {
		FundID          string  `json:"fundId"`
		FundTokenAmount float64 `json:"fundTokenAmount"`
		ValueLamports   float64 `json:"valueLamports"`
		ManagerAddress  string  `json:"managerAddress"`
	} `json:"allocations"`
	RecentTransactions []struct {
		TxID            string  `json:"txId"`
		FundPoolID      string  `json:"fundPoolId"`
		TxType          string  `json:"txType"`
		AmountLamports  float64 `json:"amountLamports"`
		FundTokenChange float64 `json:"fundTokenChange"`
		Timestamp       int64   `json:"timestamp"`
	} `json:"recentTransactions"`
}

type performanceResponse struct {
	ManagerID             string  `json:"managerId"`
	ManagerAddress        string  `json:"managerAddress"`
	TwitterHandle         string  `json:"twitterHandle,omitempty"`
	FeePercentageBps      int64   `json:"feePercentageBps"`
	StrategyDescription   string  `json:"strategyDescription"`
	TotalDepositsLamports float64 `json:"totalDepositsLamports"`
	CurrentTvlLamports    float64 `json:"currentTvlLamports"`
	PerformancePercent    float64 `json:"performancePercent"`
	DepositorCount        int64   `json:"depositorCount"`
	ReputationScore       float64 `json:"reputationScore"`
}

package fundv1

// Amounts are decimal strings in deposit units (SOL) unless the field name says otherwise.
// Share and fund token counts are whole numbers.

type PreviewDepositRequest struct {
	PoolId string `json:"pool_id"`
	Amount string `json:"amount"`
}

type PreviewDepositResponse struct {
	Amount       string `json:"amount"`
	SharesMinted string `json:"shares_minted"`
	FeeAmount    string `json:"fee_amount"`
	NetDeposit   string `json:"net_deposit"`
}

type SubmitDepositRequest struct {
	UserAddress string `json:"user_address"`
	PoolId      string `json:"pool_id"`
	Amount      string `json:"amount"`
}

type SubmitDepositResponse struct {
	DepositId           string `json:"deposit_id"`
	PoolId              string `json:"pool_id"`
	AmountLamports      string `json:"amount_lamports"`
	FundTokensMinted    string `json:"fund_tokens_minted"`
	NewFundTokenBalance string `json:"new_fund_token_balance"`
	Timestamp           int64  `json:"timestamp"`
}

type PreviewWithdrawRequest struct {
	UserAddress string `json:"user_address"`
	PoolId      string `json:"pool_id"`
	Percent     int64  `json:"percent"`
}

type PreviewWithdrawResponse struct {
	Percent        int64  `json:"percent"`
	CurrentValue   string `json:"current_value"`
	SharesToRedeem string `json:"shares_to_redeem"`
	GrossAmount    string `json:"gross_amount"`
	FeeAmount      string `json:"fee_amount"`
	NetAmount      string `json:"net_amount"`
	CanWithdraw    bool   `json:"can_withdraw"`
	CooldownEndsAt int64  `json:"cooldown_ends_at"`
}

type SubmitWithdrawRequest struct {
	UserAddress string `json:"user_address"`
	PoolId      string `json:"pool_id"`
	Percent     int64  `json:"percent"`
}

type SubmitWithdrawResponse struct {
	WithdrawalId        string `json:"withdrawal_id"`
	PoolId              string `json:"pool_id"`
	FundTokensBurned    string `json:"fund_tokens_burned"`
	GrossAmountLamports string `json:"gross_amount_lamports"`
	ManagerFeeLamports  string `json:"manager_fee_lamports"`
	NetAmountLamports   string `json:"net_amount_lamports"`
	RemainingFundTokens string `json:"remaining_fund_tokens"`
	Timestamp           int64  `json:"timestamp"`
}

type PreviewEmergencyWithdrawRequest struct {
	UserAddress string `json:"user_address"`
}

type PreviewEmergencyWithdrawResponse struct {
	PortfolioValue    string `json:"portfolio_value"`
	FeeBps            int64  `json:"fee_bps"`
	FeeAmount         string `json:"fee_amount"`
	EstimatedReceived string `json:"estimated_received"`
}

type GetPortfolioRequest struct {
	UserAddress string `json:"user_address"`
}

type Position struct {
	PoolId            string `json:"pool_id"`
	ManagerName       string `json:"manager_name"`
	ManagerAddress    string `json:"manager_address"`
	FundTokens        string `json:"fund_tokens"`
	Value             string `json:"value"`
	AllocationPercent string `json:"allocation_percent"`
	Return30D         string `json:"return_30d"`
	Return1Y          string `json:"return_1y"`
}

type GetPortfolioResponse struct {
	UserAddress     string      `json:"user_address"`
	TotalValue      string      `json:"total_value"`
	TotalFundTokens string      `json:"total_fund_tokens"`
	Return30D       string      `json:"return_30d"`
	Return1Y        string      `json:"return_1y"`
	Positions       []*Position `json:"positions"`
}

type GetDashboardStatsRequest struct {
	UserAddress string `json:"user_address"`
}

type GetDashboardStatsResponse struct {
	TotalTvl          string `json:"total_tvl"`
	PortfolioValue    string `json:"portfolio_value"`
	ManagerCount      int32  `json:"manager_count"`
	ActiveAllocations int32  `json:"active_allocations"`
}

type ListManagersRequest struct {
	Limit int32 `json:"limit"`
}

type Manager struct {
	ManagerId     string `json:"manager_id"`
	WalletAddress string `json:"wallet_address"`
	DisplayName   string `json:"display_name"`
	Strategy      string `json:"strategy"`
	PoolId        string `json:"pool_id"`
	Aum           string `json:"aum"`
	FeePercent    string `json:"fee_percent"`
	RiskLevel     string `json:"risk_level"`
	Return30D     string `json:"return_30d"`
	Return1Y      string `json:"return_1y"`
	Investors     int64  `json:"investors"`
	Verified      bool   `json:"verified"`
}

type ListManagersResponse struct {
	Managers []*Manager `json:"managers"`
}

type RegisterManagerRequest struct {
	WalletAddress       string `json:"wallet_address"`
	TwitterHandle       string `json:"twitter_handle"`
	FeeBps              int64  `json:"fee_bps"`
	StrategyDescription string `json:"strategy_description"`
}

type RegisterManagerResponse struct {
	ManagerId string `json:"manager_id"`
	PoolId    string `json:"pool_id"`
	Status    string `json:"status"`
}

type GetManagerPerformanceRequest struct {
	ManagerId string `json:"manager_id"`
}

type GetManagerPerformanceResponse struct {
	ManagerId             string `json:"manager_id"`
	ManagerAddress        string `json:"manager_address"`
	TwitterHandle         string `json:"twitter_handle"`
	FeeBps                int64  `json:"fee_bps"`
	StrategyDescription   string `json:"strategy_description"`
	TotalDepositsLamports string `json:"total_deposits_lamports"`
	CurrentTvlLamports    string `json:"current_tvl_lamports"`
	PerformancePercent    string `json:"performance_percent"`
	DepositorCount        int64  `json:"depositor_count"`
	ReputationScore       string `json:"reputation_score"`
}

type ListTransactionsRequest struct {
	UserAddress string `json:"user_address"`
	Type        string `json:"type"`
	Limit       int32  `json:"limit"`
}

type Transaction struct {
	Id              string `json:"id"`
	PoolId          string `json:"pool_id"`
	Type            string `json:"type"`
	Amount          string `json:"amount"`
	FundTokenChange string `json:"fund_token_change"`
	Timestamp       int64  `json:"timestamp"`
}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

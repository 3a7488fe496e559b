package fundapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/simaogato/wizardfund-backend/internal/config"
	"github.com/simaogato/wizardfund-backend/internal/domain"
	"github.com/simaogato/wizardfund-backend/internal/observability/metrics"
)

const (
	defaultTimeout       = 300 * time.Second
	defaultMaxRetryTimes = 3
	defaultRetryInterval = 500 * time.Millisecond

	// maxResponseBytes bounds the body read from the API
	maxResponseBytes = 4 << 20
)

// Client is the REST client of the external fund API
type Client struct {
	httpClient *http.Client
	cfg        *config.FundAPIConfig
	baseURL    string
}

var _ domain.FundGateway = (*Client)(nil)

func NewClient(cfg *config.FundAPIConfig) *Client {
	if cfg == nil {
		return nil
	}

	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (c *Client) GetBaseURL() string {
	return c.baseURL
}

func (c *Client) timeout() time.Duration {
	if c.cfg.Timeout > 0 {
		return c.cfg.Timeout
	}
	return defaultTimeout
}

// requestOptions describes a single call
type requestOptions struct {
	Method       string
	Path         string
	TemplatePath string // Path with placeholders, used as metric label
	Admin        bool   // Adds the admin auth headers when configured
	RequestID    string // Sent as X-Request-Id; shared by every attempt of one call
}

// sendRequest performs one HTTP round trip and unwraps the envelope
func sendRequest[Req any, Resp any](ctx context.Context, c *Client, opts requestOptions, body *Req) (*Resp, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, c.baseURL+opts.Path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	requestID := opts.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-Id", requestID)
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}
	if opts.Admin && c.cfg.AdminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AdminToken)
		req.Header.Set("X-Wallet-Address", c.cfg.AdminWallet)
	}

	timer := metrics.StartClientRequestDurationTimer(c.baseURL, opts.Method, opts.TemplatePath)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		timer(0)
		return nil, fmt.Errorf("failed to send request to %s: %w", opts.TemplatePath, err)
	}
	defer resp.Body.Close()
	timer(resp.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope[Resp]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &APIError{
			Code:       CodeInvalidResponse,
			Message:    fmt.Sprintf("undecodable response: %v", err),
			StatusCode: resp.StatusCode,
		}
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{
			Code:       CodeUnknown,
			Message:    "An unknown error occurred",
			StatusCode: resp.StatusCode,
		}
		if env.Error != nil {
			if env.Error.Code != "" {
				apiErr.Code = env.Error.Code
			}
			if env.Error.Message != "" {
				apiErr.Message = env.Error.Message
			}
			apiErr.Details = env.Error.Details
		}
		return nil, apiErr
	}

	if env.Data == nil {
		return nil, &APIError{
			Code:       CodeInvalidResponse,
			Message:    "response has no data",
			StatusCode: resp.StatusCode,
		}
	}

	return env.Data, nil
}

// clientCallWithRetry repeats call while isRetryable allows it.
// Calls that are not idempotent are only repeated on rate limits.
func clientCallWithRetry[T any](ctx context.Context, call retry.RetryableFuncWithData[T], cfg *config.FundAPIConfig, idempotent bool) (T, error) {
	attempts := cfg.MaxRetryTimes
	if attempts == 0 {
		attempts = defaultMaxRetryTimes
	}
	delay := cfg.RetryInterval
	if delay <= 0 {
		delay = defaultRetryInterval
	}

	return retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			shouldRetry := isRetryable(err, idempotent)
			log.Ctx(ctx).Debug().
				Err(err).
				Bool("should_retry", shouldRetry).
				Msg("fund api retry condition check")
			return shouldRetry
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().
				Uint("attempt", n+1).
				Uint("max_attempts", attempts).
				Err(err).
				Msg("fund api call failed, retrying with exponential backoff")
		}))
}

func isRetryable(err error, idempotent bool) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if !idempotent {
			return apiErr.StatusCode == http.StatusTooManyRequests
		}
		return apiErr.Retryable()
	}
	// Transport failures and per-attempt timeouts; the upstream may already have applied the request
	return idempotent
}

// Health calls GET /health
func (c *Client) Health(ctx context.Context) (*domain.HealthStatus, error) {
	resp, err := clientCallWithRetry(ctx, func() (*healthResponse, error) {
		return sendRequest[empty, healthResponse](ctx, c, requestOptions{
			Method:       http.MethodGet,
			Path:         "/health",
			TemplatePath: "/health",
		}, nil)
	}, c.cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get fund api health: %w", err)
	}

	return &domain.HealthStatus{
		Status:    resp.Status,
		Version:   resp.Version,
		Uptime:    time.Duration(resp.Uptime * float64(time.Second)),
		CheckedAt: fromMillis(resp.Timestamp),
	}, nil
}

// RegisterManager calls POST /fund-managers/register
func (c *Client) RegisterManager(ctx context.Context, req domain.ManagerRegistrationRequest) (*domain.ManagerRegistration, error) {
	body := &registerManagerRequest{
		WalletAddress:       req.WalletAddress,
		TwitterHandle:       req.TwitterHandle,
		FeePercentageBps:    req.FeeBps,
		StrategyDescription: req.StrategyDescription,
	}

	opts := requestOptions{
		Method:       http.MethodPost,
		Path:         "/fund-managers/register",
		TemplatePath: "/fund-managers/register",
		Admin:        true,
		RequestID:    uuid.NewString(),
	}
	resp, err := clientCallWithRetry(ctx, func() (*registerManagerResponse, error) {
		return sendRequest[registerManagerRequest, registerManagerResponse](ctx, c, opts, body)
	}, c.cfg, false)
	if err != nil {
		return nil, fmt.Errorf("failed to register manager: %w", err)
	}

	return &domain.ManagerRegistration{
		ManagerID:           resp.ManagerID,
		WalletAddress:       resp.WalletAddress,
		TwitterHandle:       resp.TwitterHandle,
		FeeBps:              resp.FeePercentageBps,
		StrategyDescription: resp.StrategyDescription,
		PoolID:              resp.PoolID,
		Status:              resp.Status,
	}, nil
}

// Deposit calls POST /funds/deposit
func (c *Client) Deposit(ctx context.Context, req domain.DepositRequest) (*domain.DepositReceipt, error) {
	body := &depositRequest{
		UserAddress:    req.UserAddress,
		PoolID:         req.PoolID,
		AmountLamports: req.AmountLamports,
	}

	opts := requestOptions{
		Method:       http.MethodPost,
		Path:         "/funds/deposit",
		TemplatePath: "/funds/deposit",
		Admin:        true,
		RequestID:    uuid.NewString(),
	}
	resp, err := clientCallWithRetry(ctx, func() (*depositResponse, error) {
		return sendRequest[depositRequest, depositResponse](ctx, c, opts, body)
	}, c.cfg, false)
	if err != nil {
		return nil, fmt.Errorf("failed to deposit: %w", err)
	}

	var m mapper
	receipt := &domain.DepositReceipt{
		DepositID:           resp.DepositID,
		UserAddress:         resp.UserAddress,
		PoolID:              resp.PoolID,
		AmountLamports:      m.decimal("amountLamports", resp.AmountLamports),
		FundTokensMinted:    m.decimal("fundTokensMinted", resp.FundTokensMinted),
		NewFundTokenBalance: m.decimal("newFundTokenBalance", resp.NewFundTokenBalance),
		Timestamp:           fromMillis(resp.Timestamp),
	}
	if m.err != nil {
		return nil, fmt.Errorf("failed to map deposit response: %w", m.err)
	}
	return receipt, nil
}

// Withdraw calls POST /funds/withdraw
func (c *Client) Withdraw(ctx context.Context, req domain.WithdrawRequest) (*domain.WithdrawalReceipt, error) {
	body := &withdrawRequest{
		UserAddress:     req.UserAddress,
		FundID:          req.PoolID,
		FundTokenAmount: req.FundTokenAmount,
	}

	opts := requestOptions{
		Method:       http.MethodPost,
		Path:         "/funds/withdraw",
		TemplatePath: "/funds/withdraw",
		Admin:        true,
		RequestID:    uuid.NewString(),
	}
	resp, err := clientCallWithRetry(ctx, func() (*withdrawResponse, error) {
		return sendRequest[withdrawRequest, withdrawResponse](ctx, c, opts, body)
	}, c.cfg, false)
	if err != nil {
		return nil, fmt.Errorf("failed to withdraw: %w", err)
	}

	var m mapper
	receipt := &domain.WithdrawalReceipt{
		WithdrawalID:        resp.WithdrawalID,
		UserAddress:         resp.UserAddress,
		PoolID:              resp.FundID,
		FundTokensBurned:    m.decimal("fundTokensBurned", resp.FundTokensBurned),
		GrossAmountLamports: m.decimal("grossAmountLamports", resp.GrossAmountLamports),
		ManagerFeeLamports:  m.decimal("managerFeeLamports", resp.ManagerFeeLamports),
		NetAmountLamports:   m.decimal("netAmountLamports", resp.NetAmountLamports),
		RemainingFundTokens: m.decimal("remainingFundTokens", resp.RemainingFundTokens),
		Timestamp:           fromMillis(resp.Timestamp),
	}
	if m.err != nil {
		return nil, fmt.Errorf("failed to map withdraw response: %w", m.err)
	}
	return receipt, nil
}

// Portfolio calls GET /users/{address}/portfolio
func (c *Client) Portfolio(ctx context.Context, userAddress string) (*domain.RemotePortfolio, error) {
	if userAddress == "" {
		return nil, domain.ErrEmptyAddress
	}

	resp, err := clientCallWithRetry(ctx, func() (*portfolioResponse, error) {
		return sendRequest[empty, portfolioResponse](ctx, c, requestOptions{
			Method:       http.MethodGet,
			Path:         "/users/" + url.PathEscape(userAddress) + "/portfolio",
			TemplatePath: "/users/{address}/portfolio",
		}, nil)
	}, c.cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	var m mapper
	portfolio := &domain.RemotePortfolio{
		UserAddress:        resp.UserAddress,
		TotalValueLamports: m.decimal("totalValueLamports", resp.TotalValueLamports),
		Allocations:        make([]domain.RemoteAllocation, 0, len(resp.Allocations)),
		RecentTransactions: make([]domain.FundTransaction, 0, len(resp.RecentTransactions)),
	}
	for _, a := range resp.Allocations {
		portfolio.Allocations = append(portfolio.Allocations, domain.RemoteAllocation{
			PoolID:          a.FundID,
			FundTokenAmount: m.decimal("fundTokenAmount", a.FundTokenAmount),
			ValueLamports:   m.decimal("valueLamports", a.ValueLamports),
			ManagerAddress:  a.ManagerAddress,
		})
	}
	for _, tx := range resp.RecentTransactions {
		portfolio.RecentTransactions = append(portfolio.RecentTransactions, domain.FundTransaction{
			ID:              tx.TxID,
			UserAddress:     resp.UserAddress,
			PoolID:          tx.FundPoolID,
			Type:            domain.TxType(tx.TxType),
			AmountBaseUnits: m.decimal("amountLamports", tx.AmountLamports),
			FundTokenChange: m.decimal("fundTokenChange", tx.FundTokenChange),
			CreatedAt:       fromMillis(tx.Timestamp),
		})
	}
	if m.err != nil {
		return nil, fmt.Errorf("failed to map portfolio response: %w", m.err)
	}
	return portfolio, nil
}

// Performance calls GET /fund-managers/{id}/performance
func (c *Client) Performance(ctx context.Context, managerID string) (*domain.ManagerPerformance, error) {
	if managerID == "" {
		return nil, fmt.Errorf("%w: manager id cannot be empty", domain.ErrInvalidInput)
	}

	resp, err := clientCallWithRetry(ctx, func() (*performanceResponse, error) {
		return sendRequest[empty, performanceResponse](ctx, c, requestOptions{
			Method:       http.MethodGet,
			Path:         "/fund-managers/" + url.PathEscape(managerID) + "/performance",
			TemplatePath: "/fund-managers/{id}/performance",
		}, nil)
	}, c.cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get manager performance: %w", err)
	}

	var m mapper
	performance := &domain.ManagerPerformance{
		ManagerID:             resp.ManagerID,
		ManagerAddress:        resp.ManagerAddress,
		TwitterHandle:         resp.TwitterHandle,
		FeeBps:                resp.FeePercentageBps,
		StrategyDescription:   resp.StrategyDescription,
		TotalDepositsLamports: m.decimal("totalDepositsLamports", resp.TotalDepositsLamports),
		CurrentTVLLamports:    m.decimal("currentTvlLamports", resp.CurrentTvlLamports),
		PerformancePercent:    m.decimal("performancePercent", resp.PerformancePercent),
		DepositorCount:        resp.DepositorCount,
		ReputationScore:       m.decimal("reputationScore", resp.ReputationScore),
	}
	if m.err != nil {
		return nil, fmt.Errorf("failed to map performance response: %w", m.err)
	}
	return performance, nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/simaogato/wizardfund-backend/internal/domain"
	"github.com/simaogato/wizardfund-backend/internal/usecase/valuation"
)

// Previews run the calculator offline on the figures given as flags; TVL is in SOL

func PreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Computes deposit and withdrawal previews offline and prints them as JSON",
	}
	cmd.AddCommand(previewDepositCmd())
	cmd.AddCommand(previewWithdrawCmd())
	return cmd
}

type poolFlags struct {
	tvl      string
	supply   string
	feeBps   int64
	decimals int32
}

func (f *poolFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.tvl, "tvl", "0", "pool total value locked, in SOL")
	cmd.Flags().StringVar(&f.supply, "supply", "0", "outstanding fund tokens")
	cmd.Flags().Int64Var(&f.feeBps, "fee-bps", 0, "manager fee in basis points")
	cmd.Flags().Int32Var(&f.decimals, "decimals", 9, "deposit token decimals")
}

func (f *poolFlags) state() (domain.PoolState, error) {
	tvl, err := domain.ParseAmount(f.tvl)
	if err != nil {
		return domain.PoolState{}, fmt.Errorf("--tvl: %w", err)
	}
	supply, err := domain.ParseAmount(f.supply)
	if err != nil {
		return domain.PoolState{}, fmt.Errorf("--supply: %w", err)
	}
	return domain.PoolState{TotalValueLocked: tvl, ShareSupply: supply}, nil
}

type depositPreviewOutput struct {
	Amount       decimal.Decimal `json:"amount"`
	SharesMinted decimal.Decimal `json:"sharesMinted"`
	FeeAmount    decimal.Decimal `json:"feeAmount"`
	NetDeposit   decimal.Decimal `json:"netDeposit"`
}

func previewDepositCmd() *cobra.Command {
	var pool poolFlags
	var amount string

	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Previews a deposit into a pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := pool.state()
			if err != nil {
				return err
			}
			depositAmount, err := domain.ParseAmount(amount)
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}

			preview, err := valuation.ComputeDepositPreview(state, pool.feeBps, depositAmount, domain.ScalingFactor(pool.decimals))
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), depositPreviewOutput{
				Amount:       preview.Amount,
				SharesMinted: valuation.FloorAtPresentation(preview.SharesMinted),
				FeeAmount:    preview.FeeAmount,
				NetDeposit:   preview.NetDeposit,
			})
		},
	}

	pool.register(cmd)
	cmd.Flags().StringVar(&amount, "amount", "", "deposit amount, in SOL")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

type withdrawPreviewOutput struct {
	Percent        int64           `json:"percent"`
	CurrentValue   decimal.Decimal `json:"currentValue"`
	SharesToRedeem decimal.Decimal `json:"sharesToRedeem"`
	GrossAmount    decimal.Decimal `json:"grossAmount"`
	FeeAmount      decimal.Decimal `json:"feeAmount"`
	NetAmount      decimal.Decimal `json:"netAmount"`
	CanWithdraw    bool            `json:"canWithdraw"`
	CooldownEndsAt int64           `json:"cooldownEndsAt"`
}

func previewWithdrawCmd() *cobra.Command {
	var (
		pool           poolFlags
		balance        string
		percent        int64
		lastWithdrawal int64
		cooldown       time.Duration
		now            int64
	)

	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Previews a withdrawal of a percentage of an allocation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := pool.state()
			if err != nil {
				return err
			}
			shares, err := domain.ParseAmount(balance)
			if err != nil {
				return fmt.Errorf("--balance: %w", err)
			}
			if now == 0 {
				now = time.Now().Unix()
			}

			allocation := domain.UserAllocation{ShareBalance: shares}
			if lastWithdrawal > 0 {
				allocation.LastWithdrawalAt = &lastWithdrawal
			}

			preview, err := valuation.ComputeWithdrawPreview(
				state, allocation, pool.feeBps, percent, int64(cooldown/time.Second), now,
			)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), withdrawPreviewOutput{
				Percent:        preview.Percent,
				CurrentValue:   preview.CurrentValue,
				SharesToRedeem: valuation.FloorAtPresentation(preview.SharesToRedeem),
				GrossAmount:    preview.GrossAmount,
				FeeAmount:      preview.FeeAmount,
				NetAmount:      preview.NetAmount,
				CanWithdraw:    preview.CanWithdraw,
				CooldownEndsAt: preview.CooldownEndsAt,
			})
		},
	}

	pool.register(cmd)
	cmd.Flags().StringVar(&balance, "balance", "0", "fund tokens held by the user")
	cmd.Flags().Int64Var(&percent, "percent", 100, "percentage of the allocation to withdraw (1-100)")
	cmd.Flags().Int64Var(&lastWithdrawal, "last-withdrawal", 0, "last withdrawal time in epoch seconds, 0 if never")
	cmd.Flags().DurationVar(&cooldown, "cooldown", 24*time.Hour, "withdrawal cooldown")
	cmd.Flags().Int64Var(&now, "now", 0, "evaluation time in epoch seconds, defaults to the current time")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

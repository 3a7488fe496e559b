package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wizardfund-backend/internal/domain"
)

type FundConfig struct {
	TokenDecimals      int32         `mapstructure:"token-decimals"`
	WithdrawalCooldown time.Duration `mapstructure:"withdrawal-cooldown"`
	MinDeposit         string        `mapstructure:"min-deposit"`
	EmergencyFeeBps    int64         `mapstructure:"emergency-fee-bps"`
}

func (cfg *FundConfig) Validate() error {
	if cfg.TokenDecimals < 0 || cfg.TokenDecimals > 18 {
		return fmt.Errorf("token-decimals %d is out of range", cfg.TokenDecimals)
	}
	if cfg.WithdrawalCooldown < 0 {
		return errors.New("withdrawal-cooldown must be non-negative")
	}
	if _, err := decimal.NewFromString(cfg.MinDeposit); err != nil {
		return fmt.Errorf("min-deposit %q is not a number", cfg.MinDeposit)
	}
	return domain.ValidateFeeBps(cfg.EmergencyFeeBps)
}

// Settings converts the section into the domain fund settings
func (cfg *FundConfig) Settings() domain.FundSettings {
	minDeposit, err := decimal.NewFromString(cfg.MinDeposit)
	if err != nil {
		minDeposit = decimal.Zero
	}
	return domain.FundSettings{
		ScalingFactor:             domain.ScalingFactor(cfg.TokenDecimals),
		MinDeposit:                minDeposit,
		WithdrawalCooldownSeconds: int64(cfg.WithdrawalCooldown / time.Second),
		EmergencyFeeBps:           cfg.EmergencyFeeBps,
	}
}

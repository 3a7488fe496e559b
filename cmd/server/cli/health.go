package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simaogato/wizardfund-backend/internal/adapter/fundapi"
)

func HealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Checks the health of the external fund API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			status, err := fundapi.NewClient(&cfg.FundAPI).Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("fund api at %s is unreachable: %w", cfg.FundAPI.BaseURL, err)
			}

			if err := writeJSON(cmd.OutOrStdout(), map[string]any{
				"status":    status.Status,
				"version":   status.Version,
				"uptime":    status.Uptime.String(),
				"checkedAt": status.CheckedAt,
			}); err != nil {
				return err
			}

			if !status.Healthy() {
				return errors.New("fund api is not healthy")
			}
			return nil
		},
	}
}

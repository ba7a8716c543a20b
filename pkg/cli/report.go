package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"flowershop/pkg/config"
	"flowershop/pkg/inventory"
	"flowershop/pkg/logger"
	"flowershop/pkg/report"
)

func newReportCmd() *cobra.Command {
	var (
		configPath string
		threshold  int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the daily report for the configured catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("threshold") {
				if threshold <= 0 {
					return fmt.Errorf("--threshold must be positive, got %d", threshold)
				}
				cfg.LowStockThreshold = threshold
			}

			log := logger.NewNop()
			store := inventory.New(inventory.WithLogger(log))
			if err := cfg.Seed(cmd.Context(), store, time.Now); err != nil {
				return err
			}

			d := report.Generator{Threshold: cfg.LowStockThreshold, Logger: log}.Generate(store)
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderReport(d))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML configuration with a flower catalog")
	cmd.Flags().IntVar(&threshold, "threshold", report.DefaultThreshold, "low stock threshold")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

// Package cli implements the flowershop command line.
package cli

import "github.com/spf13/cobra"

var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "flowershop",
		Short:         "Perishable inventory and order fulfillment",
		Long:          "flowershop tracks perishable flower stock, processes orders with rollback on failure and reports on daily activity.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newDemoCmd())
	cmd.AddCommand(newReportCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

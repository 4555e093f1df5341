package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/safedeploy/internal/cli/render"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// NewQueueCmd creates the queue command
func NewQueueCmd() *cobra.Command {
	var safe string

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Show the pending transactions of a Safe",
		Long: `Fetch the queued multisig transactions of a Safe from the Safe
Transaction Service of the network.`,
		Example: `  safedeploy queue --network sepolia --safe 0x5032CE064D481501E6b4a5Cc10D64e6482538948`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			addr, err := parseAddressFlag("safe", safe)
			if err != nil {
				return err
			}
			if addr == nil {
				return fmt.Errorf("--safe is required")
			}

			result, err := app.LoadTxQueue.Run(cmd.Context(), usecase.LoadTxQueueParams{Safe: *addr})
			if err != nil {
				return err
			}

			renderer := render.NewQueueRenderer(cmd.OutOrStdout(), app.Config.Output)
			return renderer.Render(result)
		},
	}

	cmd.Flags().StringVar(&safe, "safe", "", "Address of the Safe")
	_ = cmd.MarkFlagRequired("safe")

	return cmd
}

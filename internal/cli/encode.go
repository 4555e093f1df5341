package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/safedeploy/internal/cli/render"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// NewEncodeCmd creates the encode command
func NewEncodeCmd() *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "encode <family> <method> [args...]",
		Short: "Encode a call to a Safe contract",
		Long: `Resolve a Safe contract and ABI-encode a call to one of its methods.

Arguments are given as strings: addresses and bytes as 0x-prefixed hex,
integers in decimal or 0x hex, booleans as true/false.`,
		Example: `  # Encode a MultiSend batch for mainnet
  safedeploy encode multisend multiSend 0x00... --network mainnet`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			family, err := domain.ParseContractFamily(args[0])
			if err != nil {
				return err
			}

			result, err := app.EncodeCall.Run(cmd.Context(), usecase.EncodeCallParams{
				Family:  family,
				Version: version,
				Method:  args[1],
				Args:    args[2:],
			})
			if err != nil {
				return err
			}

			renderer := render.NewEncodeRenderer(cmd.OutOrStdout(), app.Config.Output)
			return renderer.Render(result)
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Safe protocol version (defaults to the latest version)")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/safedeploy/internal/cli/render"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// NewResolveCmd creates the resolve command
func NewResolveCmd() *cobra.Command {
	var (
		version  string
		safe     string
		override string
		pick     bool
	)

	cmd := &cobra.Command{
		Use:     "resolve [family...]",
		Aliases: []string{"get"},
		Short:   "Resolve Safe contract addresses and ABIs",
		Long: `Resolve the Safe contracts of a network for a protocol version.

Families: core-singleton, batch-relay, call-only-relay, proxy-factory and
fallback-handler (aliases such as safe, multisend or factory are accepted).
Without families every family is resolved.`,
		Example: `  # Resolve every Safe contract on optimism
  safedeploy resolve --network optimism

  # Resolve the MultiSend of Safe 1.1.1 on mainnet as JSON
  safedeploy resolve multisend --network mainnet --version 1.1.1 -o json

  # Use the version of a deployed Safe
  safedeploy resolve --network gnosis --safe 0x5032CE064D481501E6b4a5Cc10D64e6482538948`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			families, err := parseFamilies(args)
			if err != nil {
				return err
			}
			if pick && len(families) == 0 {
				if app.Config.NonInteractive {
					return fmt.Errorf("--pick is not available in non-interactive mode")
				}
				families, err = SelectFamilies(domain.AllContractFamilies, "Select contract families")
				if err != nil {
					return err
				}
			}

			params := usecase.ResolveContractParams{
				Families: families,
				Version:  version,
			}
			if params.Safe, err = parseAddressFlag("safe", safe); err != nil {
				return err
			}
			if params.Override, err = parseAddressFlag("override", override); err != nil {
				return err
			}

			result, err := app.ResolveContract.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			renderer := render.NewContractsRenderer(cmd.OutOrStdout(), app.Config.Output)
			return renderer.Render(result)
		},
	}

	cmd.Flags().StringVar(&version, "version", "", "Safe protocol version (defaults to the latest version)")
	cmd.Flags().StringVar(&safe, "safe", "", "Address of a deployed Safe whose version should be used")
	cmd.Flags().StringVar(&override, "override", "", "Address to report instead of the registry address (single family only)")
	cmd.Flags().BoolVar(&pick, "pick", false, "Choose contract families interactively")

	return cmd
}

package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/safedeploy/internal/cli/render"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// NewDeploymentsCmd creates the deployments command
func NewDeploymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deployments [family]",
		Aliases: []string{"ls"},
		Short:   "List deployment records from the registry",
		Long: `List the deployment records of the registry, newest version first.

With --network only records published on that network are listed, together
with their address there.`,
		Example: `  # List every record
  safedeploy deployments

  # List proxy factories available on polygon
  safedeploy deployments proxy-factory --network polygon`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{
				Network: app.Config.Network,
			}
			if len(args) == 1 {
				if params.Family, err = domain.ParseContractFamily(args[0]); err != nil {
					return err
				}
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentsRenderer(cmd.OutOrStdout(), app.Config.Output)
			return renderer.Render(result)
		},
	}

	return cmd
}

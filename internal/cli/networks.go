package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/safedeploy/internal/cli/render"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var l2Only bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List known networks",
		Long: `List the built-in networks and those declared in safedeploy.toml.

Networks flagged L2 resolve Safe 1.3.0 and later to the L2 singleton.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{L2Only: l2Only})
			if err != nil {
				return err
			}

			renderer := render.NewNetworksRenderer(cmd.OutOrStdout(), app.Config.Output)
			return renderer.Render(result)
		},
	}

	cmd.Flags().BoolVar(&l2Only, "l2", false, "Only list L2 networks")

	return cmd
}

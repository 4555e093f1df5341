package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/safedeploy/internal/app"
	"github.com/trebuchet-org/safedeploy/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "safedeploy",
		Short: "Resolve Safe multisig contract deployments",
		Long: `safedeploy maps a network, a Safe protocol version and a contract family
to the address and ABI of the published Safe deployment.

Deployment data comes from the safe-deployments assets bundled with the
binary, a local checkout, or a remote mirror.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			// Set up viper with every flag of the command bound
			v := config.SetupViper(projectRoot, cmd)

			// Initialize app with DI
			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				// Store cancel func to be called on command completion
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network name or chain ID (e.g., mainnet, optimism, 137)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().String("registry", "", "Deployment registry: embedded, a directory or an https:// base URL")
	rootCmd.PersistentFlags().String("latest-version", "", "Safe version used when none is requested")
	rootCmd.PersistentFlags().Bool("include-unreleased", false, "Include unreleased deployments")
	rootCmd.PersistentFlags().String("config", "", "Path to safedeploy.toml")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "registry",
		Title: "Registry Commands",
	})

	// Main commands
	resolveCmd := NewResolveCmd()
	resolveCmd.GroupID = "main"
	rootCmd.AddCommand(resolveCmd)

	encodeCmd := NewEncodeCmd()
	encodeCmd.GroupID = "main"
	rootCmd.AddCommand(encodeCmd)

	queueCmd := NewQueueCmd()
	queueCmd.GroupID = "main"
	rootCmd.AddCommand(queueCmd)

	// Registry commands
	deploymentsCmd := NewDeploymentsCmd()
	deploymentsCmd.GroupID = "registry"
	rootCmd.AddCommand(deploymentsCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "registry"
	rootCmd.AddCommand(networksCmd)

	// Version command
	versionCmd := NewVersionCmd()
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

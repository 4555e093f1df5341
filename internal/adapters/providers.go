package adapters

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/wire"
	"github.com/trebuchet-org/safedeploy/internal/adapters/interactive"
	"github.com/trebuchet-org/safedeploy/internal/adapters/network"
	"github.com/trebuchet-org/safedeploy/internal/adapters/progress"
	"github.com/trebuchet-org/safedeploy/internal/adapters/registry"
	"github.com/trebuchet-org/safedeploy/internal/adapters/resolvers"
	"github.com/trebuchet-org/safedeploy/internal/adapters/safe"
	"github.com/trebuchet-org/safedeploy/internal/domain/config"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// ProvideRegistrySource picks the asset source named by the registry setting
func ProvideRegistrySource(cfg *config.RuntimeConfig) (registry.Source, error) {
	switch {
	case cfg.Registry == "" || cfg.Registry == config.RegistryEmbedded:
		return registry.NewEmbeddedSource(), nil
	case strings.HasPrefix(cfg.Registry, "http://"), strings.HasPrefix(cfg.Registry, "https://"):
		opts := []registry.RemoteOption{}
		if cfg.Timeout > 0 {
			opts = append(opts, registry.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
		}
		return registry.NewRemoteSource(cfg.Registry, opts...), nil
	default:
		return registry.NewDirSource(cfg.Registry)
	}
}

// ProvideRegistry loads the deployment registry once per process
func ProvideRegistry(cfg *config.RuntimeConfig, source registry.Source, log *slog.Logger) (*registry.Registry, error) {
	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	return registry.Load(ctx, source,
		registry.WithUnreleased(cfg.IncludeUnreleased),
		registry.WithLogger(log),
	)
}

// RegistrySet provides the deployment registry and the resolver over it
var RegistrySet = wire.NewSet(
	ProvideRegistrySource,
	ProvideRegistry,
	wire.Bind(new(usecase.DeploymentRegistry), new(*registry.Registry)),
	wire.Bind(new(usecase.DeploymentCatalog), new(*registry.Registry)),

	resolvers.NewDeploymentResolver,
	wire.Bind(new(usecase.ContractResolver), new(*resolvers.DeploymentResolver)),
)

// NetworkSet provides network resolution
var NetworkSet = wire.NewSet(
	network.NewResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*network.Resolver)),
)

// SafeSet provides the Safe Transaction Service client
var SafeSet = wire.NewSet(
	safe.NewClientFromConfig,
	wire.Bind(new(usecase.SafeClient), new(*safe.Client)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
	progress.ProvideSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RegistrySet,
	NetworkSet,
	SafeSet,
	InteractiveSet,
)

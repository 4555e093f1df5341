package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/domain/config"
)

// ResolveContractParams contains parameters for resolving Safe contracts
type ResolveContractParams struct {
	// Network name or chain id; falls back to the configured network
	Network string
	// Families to resolve; empty means all
	Families []domain.ContractFamily
	// Version of the Safe; empty means the latest version, or the version
	// reported for Safe when set
	Version string
	// Safe, when set, is queried for its version and used as the address of
	// the core singleton
	Safe *common.Address
	// Override replaces the address of a single requested family
	Override *common.Address
}

// ResolveContractResult contains the resolved contracts
type ResolveContractResult struct {
	Network   *domain.Network
	Version   string
	Safe      *domain.SafeInfo
	Contracts []domain.ResolvedContract
}

// Missing returns the contracts that could not be resolved
func (r *ResolveContractResult) Missing() []domain.ResolvedContract {
	var missing []domain.ResolvedContract
	for _, c := range r.Contracts {
		if !c.Found() {
			missing = append(missing, c)
		}
	}
	return missing
}

// ResolveContract resolves the Safe contracts of a network
type ResolveContract struct {
	config   *config.RuntimeConfig
	resolver ContractResolver
	networks NetworkResolver
	safe     SafeClient
	selector NetworkSelector
	sink     ProgressSink
	log      *slog.Logger
}

// NewResolveContract creates a new ResolveContract use case
func NewResolveContract(
	cfg *config.RuntimeConfig,
	resolver ContractResolver,
	networks NetworkResolver,
	safe SafeClient,
	selector NetworkSelector,
	sink ProgressSink,
	log *slog.Logger,
) *ResolveContract {
	return &ResolveContract{
		config:   cfg,
		resolver: resolver,
		networks: networks,
		safe:     safe,
		selector: selector,
		sink:     sink,
		log:      log.With("component", "ResolveContract"),
	}
}

// Run executes the use case
func (uc *ResolveContract) Run(ctx context.Context, params ResolveContractParams) (*ResolveContractResult, error) {
	families := params.Families
	if len(families) == 0 {
		families = domain.AllContractFamilies
	}
	if params.Override != nil && len(families) != 1 {
		return nil, fmt.Errorf("an address override needs exactly one family, got %d", len(families))
	}

	network, err := selectNetwork(ctx, uc.config, uc.networks, uc.selector, params.Network)
	if err != nil {
		return nil, err
	}

	result := &ResolveContractResult{
		Network: network,
		Version: params.Version,
	}

	if params.Safe != nil {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "safe",
			Message: fmt.Sprintf("Fetching Safe %s on %s", params.Safe.Hex(), network.Name),
			Spinner: true,
		})
		info, err := uc.safe.GetSafeInfo(ctx, *network, *params.Safe)
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: "safe"})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch Safe info: %w", err)
		}
		result.Safe = info
		if result.Version == "" {
			result.Version = info.Version
		}
		uc.log.Debug("discovered Safe version", "safe", params.Safe.Hex(), "version", info.Version)
	}

	if result.Version == "" {
		result.Version = uc.resolver.LatestVersion().String()
	}

	for _, family := range families {
		req := domain.ResolveRequest{
			Family:   family,
			Network:  *network,
			Version:  result.Version,
			Override: params.Override,
		}
		if family == domain.CoreSingleton && params.Safe != nil && params.Override == nil {
			req.Override = params.Safe
		}

		resolved, err := uc.resolver.Resolve(req)
		if err != nil {
			var notFound *domain.NotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
			resolved = domain.ResolvedContract{
				Family:           family,
				ChainID:          network.ChainID,
				RequestedVersion: notFound.Version,
				Reason:           notFound.Reason,
			}
		}

		if !resolved.Found() {
			uc.log.Debug("contract not found", "family", family, "chain", network.ChainID, "reason", resolved.Reason)
		}
		result.Contracts = append(result.Contracts, resolved)
	}

	return result, nil
}

// selectNetwork resolves the requested network, the configured one, or asks
// the user to pick one
func selectNetwork(ctx context.Context, cfg *config.RuntimeConfig, networks NetworkResolver, selector NetworkSelector, input string) (*domain.Network, error) {
	if input == "" {
		input = cfg.Network
	}
	if input != "" {
		return networks.ResolveNetwork(ctx, input)
	}

	if cfg.NonInteractive || selector == nil {
		return nil, fmt.Errorf("%w: no network specified (use --network)", domain.ErrUnknownNetwork)
	}

	return selector.SelectNetwork(ctx, networks.ListNetworks(), "Select network")
}

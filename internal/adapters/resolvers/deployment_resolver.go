package resolvers

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/domain/config"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// DeploymentResolver picks the Safe contract deployment to use for a network,
// protocol version and contract family. It holds only immutable state and is
// safe for concurrent use.
type DeploymentResolver struct {
	registry  usecase.DeploymentRegistry
	latest    domain.ProtocolVersion
	overrides map[overrideKey]common.Address
}

type overrideKey struct {
	family  domain.ContractFamily
	chainID uint64
}

// strategy resolves one contract family. Each family keeps its own lookup
// order; they intentionally differ.
type strategy func(r *DeploymentResolver, req domain.ResolveRequest) (domain.ResolvedContract, error)

var strategies = map[domain.ContractFamily]strategy{
	domain.CoreSingleton:   (*DeploymentResolver).resolveCoreSingleton,
	domain.BatchRelay:      (*DeploymentResolver).resolveRelay,
	domain.CallOnlyRelay:   (*DeploymentResolver).resolveRelay,
	domain.ProxyFactory:    (*DeploymentResolver).resolveProxyFactory,
	domain.FallbackHandler: (*DeploymentResolver).resolveFallbackHandler,
}

// NewDeploymentResolver creates a resolver over the given registry. Overrides
// from the runtime config are copied; the registry is never written to.
func NewDeploymentResolver(registry usecase.DeploymentRegistry, cfg *config.RuntimeConfig) (*DeploymentResolver, error) {
	latest := cfg.LatestVersion
	if latest.IsZero() {
		var err error
		latest, err = domain.ParseProtocolVersion(domain.DefaultLatestVersion)
		if err != nil {
			return nil, err
		}
	}

	overrides := make(map[overrideKey]common.Address, len(cfg.Overrides))
	for _, o := range cfg.Overrides {
		if _, ok := strategies[o.Family]; !ok {
			return nil, fmt.Errorf("override for chain %d: %w: %q", o.ChainID, domain.ErrUnsupportedFamily, o.Family)
		}
		if o.ChainID == 0 {
			return nil, fmt.Errorf("override for %s: %w: chain id is required", o.Family, domain.ErrUnknownNetwork)
		}
		overrides[overrideKey{o.Family, o.ChainID}] = o.Address
	}

	return &DeploymentResolver{
		registry:  registry,
		latest:    latest,
		overrides: overrides,
	}, nil
}

// LatestVersion returns the version used when callers do not pin one
func (r *DeploymentResolver) LatestVersion() domain.ProtocolVersion {
	return r.latest
}

// Option customises a single resolution
type Option func(*domain.ResolveRequest)

// WithAddressOverride makes the resolution return addr instead of the
// looked-up address. The ABI still comes from the matched record.
func WithAddressOverride(addr common.Address) Option {
	return func(req *domain.ResolveRequest) {
		req.Override = &addr
	}
}

// Resolve dispatches a request to the strategy of its family
func (r *DeploymentResolver) Resolve(req domain.ResolveRequest) (domain.ResolvedContract, error) {
	if !req.Network.Known() {
		return domain.ResolvedContract{}, fmt.Errorf("%w: network %q has no chain id", domain.ErrUnknownNetwork, req.Network.Name)
	}

	resolve, ok := strategies[req.Family]
	if !ok {
		return domain.ResolvedContract{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedFamily, req.Family)
	}

	return resolve(r, req)
}

// ResolveCoreSingleton resolves the Safe singleton (master copy)
func (r *DeploymentResolver) ResolveCoreSingleton(network domain.Network, version string, opts ...Option) (domain.ResolvedContract, error) {
	return r.Resolve(buildRequest(domain.CoreSingleton, network, version, opts))
}

// ResolveRelay resolves MultiSend or MultiSendCallOnly
func (r *DeploymentResolver) ResolveRelay(kind domain.ContractFamily, network domain.Network, opts ...Option) (domain.ResolvedContract, error) {
	if !kind.IsRelay() {
		return domain.ResolvedContract{}, fmt.Errorf("%w: %q is not a relay", domain.ErrUnsupportedFamily, kind)
	}
	return r.Resolve(buildRequest(kind, network, "", opts))
}

// ResolveProxyFactory resolves the proxy factory. An empty version means latest.
func (r *DeploymentResolver) ResolveProxyFactory(network domain.Network, version string, opts ...Option) (domain.ResolvedContract, error) {
	return r.Resolve(buildRequest(domain.ProxyFactory, network, version, opts))
}

// ResolveFallbackHandler resolves the fallback handler of the latest version.
// A missing deployment is returned as an error.
func (r *DeploymentResolver) ResolveFallbackHandler(network domain.Network, opts ...Option) (domain.ResolvedContract, error) {
	return r.Resolve(buildRequest(domain.FallbackHandler, network, "", opts))
}

func buildRequest(family domain.ContractFamily, network domain.Network, version string, opts []Option) domain.ResolveRequest {
	req := domain.ResolveRequest{
		Family:  family,
		Network: network,
		Version: version,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

// resolveCoreSingleton: (a) network entry for version, (b) default for
// version, (c) for versions below 1.0.0 only, both again at 1.0.0.
func (r *DeploymentResolver) resolveCoreSingleton(req domain.ResolveRequest) (domain.ResolvedContract, error) {
	version, err := domain.ParseProtocolVersion(req.Version)
	if err != nil {
		return domain.ResolvedContract{}, err
	}

	legacy := version.LessThan(domain.Version1_0_0)

	// Some L2 networks still host 1.0.0-1.2.0 Safes built from the standard
	// singleton, so the L2 table only applies from 1.3.0.
	variant := domain.StandardTable
	if req.Network.L2 && version.AtLeast(domain.Version1_3_0) {
		variant = domain.L2Table
	}

	result := newResult(req, variant, version)

	if record, ok := r.registry.Deployment(domain.CoreSingleton, variant, version); ok {
		if found, ok := r.pick(result, record, req); ok {
			return found, nil
		}
	}

	if legacy {
		if record, ok := r.registry.Deployment(domain.CoreSingleton, variant, domain.Version1_0_0); ok {
			if found, ok := r.pick(result, record, req); ok {
				found.Legacy = true
				return found, nil
			}
		}
	}

	return missing(result, domain.NoDeploymentForVersion), nil
}

// resolveRelay: (a) newest record carrying the network, (b) default address
// of the canonical record. Relays are not versioned by the Safe version.
func (r *DeploymentResolver) resolveRelay(req domain.ResolveRequest) (domain.ResolvedContract, error) {
	result := newResult(req, domain.StandardTable, domain.ProtocolVersion{})

	records := r.registry.Deployments(req.Family, domain.StandardTable)
	for _, record := range records {
		if _, ok := record.NetworkAddress(req.Network.ChainID); ok {
			if found, ok := r.pick(result, record, req); ok {
				return found, nil
			}
		}
	}

	if len(records) > 0 {
		if found, ok := r.pick(result, records[0], req); ok {
			return found, nil
		}
	}

	return missing(result, domain.NoDeploymentForFamily), nil
}

// resolveProxyFactory: (a) network entry for version, (b) default for
// version. There is no pre-1.0.0 fallback.
func (r *DeploymentResolver) resolveProxyFactory(req domain.ResolveRequest) (domain.ResolvedContract, error) {
	version := r.latest
	if req.Version != "" {
		var err error
		version, err = domain.ParseProtocolVersion(req.Version)
		if err != nil {
			return domain.ResolvedContract{}, err
		}
	}

	result := newResult(req, domain.StandardTable, version)

	if record, ok := r.registry.Deployment(domain.ProxyFactory, domain.StandardTable, version); ok {
		if found, ok := r.pick(result, record, req); ok {
			return found, nil
		}
	}

	return missing(result, domain.NoDeploymentForVersion), nil
}

// resolveFallbackHandler always uses the latest version. Without a handler a
// Safe cannot be operated correctly, so a miss is an error.
func (r *DeploymentResolver) resolveFallbackHandler(req domain.ResolveRequest) (domain.ResolvedContract, error) {
	result := newResult(req, domain.StandardTable, r.latest)

	if record, ok := r.registry.Deployment(domain.FallbackHandler, domain.StandardTable, r.latest); ok {
		if found, ok := r.pickListed(result, record, req); ok {
			return found, nil
		}
	}

	return domain.ResolvedContract{}, missing(result, domain.NoDeploymentForNetwork).Err()
}

// pick selects the address of a matched record: override, then network
// entry, then default address.
func (r *DeploymentResolver) pick(result domain.ResolvedContract, record *domain.DeploymentRecord, req domain.ResolveRequest) (domain.ResolvedContract, bool) {
	if found, ok := r.pickListed(result, record, req); ok {
		return found, true
	}

	if record.HasDefault() {
		result = withRecord(result, record)
		result.Address = record.DefaultAddress
		result.Source = domain.SourceDefault
		return result, true
	}

	return domain.ResolvedContract{}, false
}

// pickListed is pick without the default address: only an override or an
// entry for the requested chain counts.
func (r *DeploymentResolver) pickListed(result domain.ResolvedContract, record *domain.DeploymentRecord, req domain.ResolveRequest) (domain.ResolvedContract, bool) {
	result = withRecord(result, record)

	if override, ok := r.override(req); ok {
		result.Address = override
		result.Source = domain.SourceOverride
		return result, true
	}

	if addr, ok := record.NetworkAddress(req.Network.ChainID); ok {
		result.Address = addr
		result.Source = domain.SourceNetwork
		return result, true
	}

	return domain.ResolvedContract{}, false
}

func withRecord(result domain.ResolvedContract, record *domain.DeploymentRecord) domain.ResolvedContract {
	result.Version = record.Version
	result.ContractName = record.ContractName
	result.ABI = record.ABI
	return result
}

// override returns the per-call override, falling back to the configured one
func (r *DeploymentResolver) override(req domain.ResolveRequest) (common.Address, bool) {
	if req.Override != nil {
		return *req.Override, true
	}
	addr, ok := r.overrides[overrideKey{req.Family, req.Network.ChainID}]
	return addr, ok
}

func newResult(req domain.ResolveRequest, variant domain.TableVariant, version domain.ProtocolVersion) domain.ResolvedContract {
	return domain.ResolvedContract{
		Family:           req.Family,
		Variant:          variant,
		ChainID:          req.Network.ChainID,
		RequestedVersion: version,
	}
}

func missing(result domain.ResolvedContract, reason domain.NotFoundReason) domain.ResolvedContract {
	result.Reason = reason
	return result
}

// Ensure the adapter implements the interface
var _ usecase.ContractResolver = (*DeploymentResolver)(nil)

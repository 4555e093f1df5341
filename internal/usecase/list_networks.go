package usecase

import (
	"context"

	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// L2Only keeps networks flagged as L2
	L2Only bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus describes a known network
type NetworkStatus struct {
	Network *domain.Network
	// Overrides lists the families with a configured address override
	Overrides []domain.ContractFamily
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{
		config:   cfg,
		resolver: resolver,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	overrides := make(map[uint64][]domain.ContractFamily)
	for _, o := range uc.config.Overrides {
		overrides[o.ChainID] = append(overrides[o.ChainID], o.Family)
	}

	var networks []NetworkStatus
	for _, network := range uc.resolver.ListNetworks() {
		if params.L2Only && !network.L2 {
			continue
		}
		networks = append(networks, NetworkStatus{
			Network:   network,
			Overrides: overrides[network.ChainID],
		})
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}

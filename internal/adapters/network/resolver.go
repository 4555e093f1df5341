package network

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/domain/config"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// transactionServiceURLs are the hosted Safe Transaction Service endpoints
var transactionServiceURLs = map[uint64]string{
	1:        "https://safe-transaction-mainnet.safe.global",
	5:        "https://safe-transaction-goerli.safe.global",
	10:       "https://safe-transaction-optimism.safe.global",
	56:       "https://safe-transaction-bsc.safe.global",
	100:      "https://safe-transaction-gnosis-chain.safe.global",
	137:      "https://safe-transaction-polygon.safe.global",
	324:      "https://safe-transaction-zksync.safe.global",
	8453:     "https://safe-transaction-base.safe.global",
	42161:    "https://safe-transaction-arbitrum.safe.global",
	42220:    "https://safe-transaction-celo.safe.global",
	43114:    "https://safe-transaction-avalanche.safe.global",
	11155111: "https://safe-transaction-sepolia.safe.global",
}

// defaultNetworks are the well-known networks. Gnosis Chain, Energy Web and
// Volta are flagged L2 although they still host pre-1.3.0 L1 Safes.
var defaultNetworks = []domain.Network{
	{ChainID: 1, Name: "mainnet"},
	{ChainID: 5, Name: "goerli"},
	{ChainID: 10, Name: "optimism", L2: true},
	{ChainID: 56, Name: "bsc"},
	{ChainID: 100, Name: "gnosis", L2: true},
	{ChainID: 137, Name: "polygon", L2: true},
	{ChainID: 246, Name: "energy-web", L2: true},
	{ChainID: 324, Name: "zksync", L2: true},
	{ChainID: 1101, Name: "polygon-zkevm", L2: true},
	{ChainID: 8453, Name: "base", L2: true},
	{ChainID: 42161, Name: "arbitrum", L2: true},
	{ChainID: 42220, Name: "celo", L2: true},
	{ChainID: 43114, Name: "avalanche", L2: true},
	{ChainID: 73799, Name: "volta", L2: true},
	{ChainID: 11155111, Name: "sepolia"},
}

// Resolver maps network names and chain IDs to network descriptors
type Resolver struct {
	networks      map[string]*domain.Network
	chainIDLookup map[uint64]*domain.Network
}

// NewResolver creates a resolver holding the default networks plus any
// declared in the runtime config. Config entries win on name or chain ID clash.
func NewResolver(cfg *config.RuntimeConfig) *Resolver {
	r := &Resolver{
		networks:      make(map[string]*domain.Network),
		chainIDLookup: make(map[uint64]*domain.Network),
	}

	for _, network := range defaultNetworks {
		network.TxServiceURL = transactionServiceURLs[network.ChainID]
		r.addNetwork(network)
	}

	if cfg != nil {
		// deterministic order for chain ID collisions between config entries
		names := lo.Keys(cfg.Networks)
		slices.Sort(names)
		for _, name := range names {
			network := cfg.Networks[name]
			if network.Name == "" {
				network.Name = name
			}
			if network.TxServiceURL == "" {
				network.TxServiceURL = transactionServiceURLs[network.ChainID]
			}
			r.addNetwork(network)
		}
	}

	return r
}

func (r *Resolver) addNetwork(network domain.Network) {
	n := &network
	if prev, ok := r.chainIDLookup[n.ChainID]; ok && prev.Name != n.Name {
		delete(r.networks, strings.ToLower(prev.Name))
	}
	if prev, ok := r.networks[strings.ToLower(n.Name)]; ok && prev.ChainID != n.ChainID {
		delete(r.chainIDLookup, prev.ChainID)
	}
	r.networks[strings.ToLower(n.Name)] = n
	r.chainIDLookup[n.ChainID] = n
}

// ResolveNetwork resolves a network by name or chain ID. Unknown chain IDs
// yield an ad-hoc network without L2 flag or transaction service.
func (r *Resolver) ResolveNetwork(ctx context.Context, input string) (*domain.Network, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: network not specified", domain.ErrUnknownNetwork)
	}

	if network, ok := r.networks[strings.ToLower(input)]; ok {
		return clone(network), nil
	}

	if chainID, err := strconv.ParseUint(input, 10, 64); err == nil {
		if chainID == 0 {
			return nil, fmt.Errorf("%w: chain id 0", domain.ErrUnknownNetwork)
		}
		return r.GetNetworkByChainID(chainID), nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownNetwork, input)
}

// GetNetworkByChainID returns the network of a chain ID, or an ad-hoc one
func (r *Resolver) GetNetworkByChainID(chainID uint64) *domain.Network {
	if network, ok := r.chainIDLookup[chainID]; ok {
		return clone(network)
	}
	return &domain.Network{
		ChainID: chainID,
		Name:    fmt.Sprintf("chain-%d", chainID),
	}
}

// ListNetworks returns all configured networks ordered by chain ID
func (r *Resolver) ListNetworks() []*domain.Network {
	networks := lo.MapToSlice(r.chainIDLookup, func(_ uint64, n *domain.Network) *domain.Network {
		return clone(n)
	})
	slices.SortFunc(networks, func(a, b *domain.Network) int {
		return cmp.Compare(a.ChainID, b.ChainID)
	})
	return networks
}

func clone(n *domain.Network) *domain.Network {
	c := *n
	return &c
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*Resolver)(nil)

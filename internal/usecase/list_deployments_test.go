package usecase_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/domain/config"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

func testCatalog() *MockCatalog {
	rec := func(family domain.ContractFamily, variant domain.TableVariant, version string, networks ...uint64) *domain.DeploymentRecord {
		r := &domain.DeploymentRecord{
			Family:           family,
			Variant:          variant,
			Version:          domain.MustParseProtocolVersion(version),
			ContractName:     string(family),
			Released:         true,
			DefaultAddress:   common.HexToAddress("0x00000000000000000000000000000000000000aa"),
			NetworkAddresses: map[uint64]common.Address{},
		}
		for _, id := range networks {
			r.NetworkAddresses[id] = common.BigToAddress(common.Big1)
		}
		return r
	}

	return &MockCatalog{records: []*domain.DeploymentRecord{
		rec(domain.FallbackHandler, domain.StandardTable, "1.3.0", 1, 10),
		rec(domain.CoreSingleton, domain.L2Table, "1.3.0", 10),
		rec(domain.CoreSingleton, domain.StandardTable, "1.3.0", 1),
		rec(domain.CoreSingleton, domain.StandardTable, "1.0.0", 1),
		rec(domain.BatchRelay, domain.StandardTable, "1.1.1", 1),
		rec(domain.BatchRelay, domain.StandardTable, "1.3.0", 1, 10),
	}}
}

func TestListDeployments(t *testing.T) {
	ctx := context.Background()

	t.Run("list all records", func(t *testing.T) {
		uc := usecase.NewListDeployments(testCatalog(), new(MockNetworkResolver), &MockProgressSink{})
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{})
		require.NoError(t, err)

		assert.Equal(t, "memory", result.Source)
		assert.Nil(t, result.Network)
		require.Len(t, result.Deployments, 6)
		assert.Equal(t, 6, result.Summary.Total)
		assert.Equal(t, 3, result.Summary.ByFamily[domain.CoreSingleton])
		assert.Equal(t, 2, result.Summary.ByFamily[domain.BatchRelay])

		// family order, standard before l2, newest first
		first := result.Deployments[0].Record
		assert.Equal(t, domain.CoreSingleton, first.Family)
		assert.Equal(t, domain.StandardTable, first.Variant)
		assert.Equal(t, "1.3.0", first.Version.String())
		assert.Equal(t, "1.0.0", result.Deployments[1].Record.Version.String())
		assert.Equal(t, domain.L2Table, result.Deployments[2].Record.Variant)
		assert.Equal(t, domain.FallbackHandler, result.Deployments[5].Record.Family)
	})

	t.Run("filter by family and network", func(t *testing.T) {
		networks := new(MockNetworkResolver)
		networks.On("ResolveNetwork", ctx, "optimism").Return(optimism, nil)

		uc := usecase.NewListDeployments(testCatalog(), networks, &MockProgressSink{})
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{
			Family:  domain.BatchRelay,
			Network: "optimism",
		})
		require.NoError(t, err)

		assert.Equal(t, optimism, result.Network)
		require.Len(t, result.Deployments, 1)
		assert.Equal(t, "1.3.0", result.Deployments[0].Record.Version.String())
		assert.Equal(t, common.BigToAddress(common.Big1), result.Deployments[0].Address)
	})

	t.Run("unknown network", func(t *testing.T) {
		networks := new(MockNetworkResolver)
		networks.On("ResolveNetwork", ctx, "nowhere").Return(nil, domain.ErrUnknownNetwork)

		uc := usecase.NewListDeployments(testCatalog(), networks, &MockProgressSink{})
		_, err := uc.Run(ctx, usecase.ListDeploymentsParams{Network: "nowhere"})
		assert.ErrorIs(t, err, domain.ErrUnknownNetwork)
	})
}

func TestListNetworks(t *testing.T) {
	ctx := context.Background()

	networks := new(MockNetworkResolver)
	networks.On("ListNetworks").Return([]*domain.Network{mainnet, optimism})

	cfg := &config.RuntimeConfig{
		Overrides: []domain.AddressOverride{
			{Family: domain.CoreSingleton, ChainID: 10, Address: safeAddr},
			{Family: domain.BatchRelay, ChainID: 10, Address: safeAddr},
		},
	}

	uc := usecase.NewListNetworks(cfg, networks)

	result, err := uc.Run(ctx, usecase.ListNetworksParams{})
	require.NoError(t, err)
	require.Len(t, result.Networks, 2)
	assert.Empty(t, result.Networks[0].Overrides)
	assert.Equal(t, []domain.ContractFamily{domain.CoreSingleton, domain.BatchRelay}, result.Networks[1].Overrides)

	result, err = uc.Run(ctx, usecase.ListNetworksParams{L2Only: true})
	require.NoError(t, err)
	require.Len(t, result.Networks, 1)
	assert.Equal(t, "optimism", result.Networks[0].Network.Name)
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"gopkg.in/yaml.v3"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	color.NoColor = true

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--non-interactive"))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestResolveCommand(t *testing.T) {
	out, err := runCommand(t, "resolve", "multisend", "--network", "mainnet", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Network   domain.Network `json:"network"`
		Version   string         `json:"version"`
		Contracts []struct {
			Family       string `json:"family"`
			ContractName string `json:"contractName"`
			Address      string `json:"address"`
		} `json:"contracts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, uint64(1), got.Network.ChainID)
	assert.Equal(t, domain.DefaultLatestVersion, got.Version)
	require.Len(t, got.Contracts, 1)
	assert.Equal(t, "batch-relay", got.Contracts[0].Family)
	assert.Equal(t, "MultiSend", got.Contracts[0].ContractName)
	assert.Equal(t, "0xA238CBeb142c10Ef7Ad8442C6D1f9E89e07e7761", got.Contracts[0].Address)
}

func TestResolveFallbackHandlerWithoutNetworkEntry(t *testing.T) {
	out, err := runCommand(t, "resolve", "fallback-handler", "--network", "920000", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Contracts []struct {
			Family  string `json:"family"`
			ChainID uint64 `json:"chainId"`
			Address string `json:"address"`
			Reason  string `json:"reason"`
		} `json:"contracts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	require.Len(t, got.Contracts, 1)
	assert.Equal(t, "fallback-handler", got.Contracts[0].Family)
	assert.Equal(t, uint64(920000), got.Contracts[0].ChainID)
	assert.Empty(t, got.Contracts[0].Address)
	assert.Equal(t, string(domain.NoDeploymentForNetwork), got.Contracts[0].Reason)
}

func TestResolveCommandTable(t *testing.T) {
	out, err := runCommand(t, "resolve", "--network", "optimism")
	require.NoError(t, err)
	assert.Contains(t, out, "Core Singleton")
	assert.Contains(t, out, "GnosisSafeL2")
	assert.Contains(t, out, "Fallback Handler")
}

func TestResolveCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		msg     string
	}{
		{
			name:    "no network",
			args:    []string{"resolve"},
			wantErr: domain.ErrUnknownNetwork,
		},
		{
			name:    "unknown network",
			args:    []string{"resolve", "--network", "atlantis"},
			wantErr: domain.ErrUnknownNetwork,
		},
		{
			name:    "unknown family",
			args:    []string{"resolve", "vault", "--network", "mainnet"},
			wantErr: domain.ErrUnsupportedFamily,
		},
		{
			name:    "bad version",
			args:    []string{"resolve", "--network", "mainnet", "--version", "one"},
			wantErr: domain.ErrInvalidVersion,
		},
		{
			name:    "bad safe address",
			args:    []string{"resolve", "--network", "mainnet", "--safe", "0x1234"},
			wantErr: domain.ErrInvalidAddress,
		},
		{
			name: "override needs one family",
			args: []string{"resolve", "--network", "mainnet", "--override", "0x5032CE064D481501E6b4a5Cc10D64e6482538948"},
			msg:  "exactly one family",
		},
		{
			name: "invalid output",
			args: []string{"resolve", "--network", "mainnet", "-o", "xml"},
			msg:  "invalid output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.msg != "" {
				assert.ErrorContains(t, err, tt.msg)
			}
		})
	}
}

func TestNetworksCommand(t *testing.T) {
	out, err := runCommand(t, "networks", "--l2", "-o", "yaml")
	require.NoError(t, err)

	var got []domain.Network
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got)

	names := make([]string, 0, len(got))
	for _, n := range got {
		assert.True(t, n.L2, n.Name)
		names = append(names, n.Name)
	}
	assert.Contains(t, names, "optimism")
	assert.NotContains(t, names, "mainnet")
}

func TestDeploymentsCommand(t *testing.T) {
	out, err := runCommand(t, "deployments", "proxy-factory", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Source      string `json:"source"`
		Total       int    `json:"total"`
		Deployments []struct {
			Family  string `json:"family"`
			Version string `json:"version"`
		} `json:"deployments"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, "embedded", got.Source)
	require.NotEmpty(t, got.Deployments)
	assert.Equal(t, len(got.Deployments), got.Total)
	for _, d := range got.Deployments {
		assert.Equal(t, "proxy-factory", d.Family)
	}
	assert.Equal(t, "1.3.0", got.Deployments[0].Version)
}

func TestEncodeCommand(t *testing.T) {
	out, err := runCommand(t, "encode", "multisend", "multiSend", "0x", "--network", "mainnet", "-o", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "0xA238CBeb142c10Ef7Ad8442C6D1f9E89e07e7761", got["to"])
	assert.Equal(t, "multiSend(bytes)", got["method"])
	assert.Equal(t, "0x8d80ff0a", got["selector"])
}

func TestQueueCommandRequiresSafe(t *testing.T) {
	_, err := runCommand(t, "queue", "--network", "mainnet")
	assert.ErrorContains(t, err, "safe")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "safedeploy version dev\n", out)
}

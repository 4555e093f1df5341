package usecase_test

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/domain/config"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

func newEncodeCall(t *testing.T, contract domain.ResolvedContract, err error) *usecase.EncodeCall {
	t.Helper()
	ctx := context.Background()

	networks := new(MockNetworkResolver)
	networks.On("ResolveNetwork", ctx, "mainnet").Return(mainnet, nil)

	resolver := new(MockContractResolver)
	resolver.On("Resolve", domain.ResolveRequest{
		Family:  domain.BatchRelay,
		Network: *mainnet,
	}).Return(contract, err)

	return usecase.NewEncodeCall(&config.RuntimeConfig{}, resolver, networks, new(MockNetworkSelector))
}

func TestEncodeCall(t *testing.T) {
	ctx := context.Background()
	parsed := parseABI(t, multiSendABI)
	contract := domain.ResolvedContract{
		Family:       domain.BatchRelay,
		ChainID:      1,
		ContractName: "MultiSend",
		Address:      common.HexToAddress("0xA238CBeb142c10Ef7Ad8442C6D1f9E89e07e7761"),
		ABI:          parsed,
		Source:       domain.SourceNetwork,
	}

	t.Run("bytes argument", func(t *testing.T) {
		uc := newEncodeCall(t, contract, nil)
		result, err := uc.Run(ctx, usecase.EncodeCallParams{
			Family:  domain.BatchRelay,
			Network: "mainnet",
			Method:  "multiSend",
			Args:    []string{"0x1234"},
		})
		require.NoError(t, err)

		want, err := parsed.Pack("multiSend", []byte{0x12, 0x34})
		require.NoError(t, err)
		assert.Equal(t, want, result.Calldata)
		assert.Equal(t, []byte{0x8d, 0x80, 0xff, 0x0a}, result.Calldata[:4])
		assert.Equal(t, contract.Address, result.Contract.Address)
	})

	t.Run("mixed arguments", func(t *testing.T) {
		uc := newEncodeCall(t, contract, nil)
		salt := "0x11" + strings.Repeat("00", 31)
		result, err := uc.Run(ctx, usecase.EncodeCallParams{
			Family:  domain.BatchRelay,
			Network: "mainnet",
			Method:  "approve",
			Args:    []string{safeAddr.Hex(), "1", salt, "true"},
		})
		require.NoError(t, err)

		var saltBytes [32]byte
		saltBytes[0] = 0x11
		want, err := parsed.Pack("approve", safeAddr, uint8(1), saltBytes, true)
		require.NoError(t, err)
		assert.Equal(t, want, result.Calldata)
	})

	t.Run("unknown method", func(t *testing.T) {
		uc := newEncodeCall(t, contract, nil)
		_, err := uc.Run(ctx, usecase.EncodeCallParams{Family: domain.BatchRelay, Network: "mainnet", Method: "execTransaction"})
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("wrong argument count", func(t *testing.T) {
		uc := newEncodeCall(t, contract, nil)
		_, err := uc.Run(ctx, usecase.EncodeCallParams{Family: domain.BatchRelay, Network: "mainnet", Method: "multiSend"})
		assert.ErrorContains(t, err, "expects 1 arguments")
	})

	t.Run("unsupported argument type", func(t *testing.T) {
		uc := newEncodeCall(t, contract, nil)
		_, err := uc.Run(ctx, usecase.EncodeCallParams{
			Family:  domain.BatchRelay,
			Network: "mainnet",
			Method:  "setup",
			Args:    []string{"[]", "1"},
		})
		assert.ErrorContains(t, err, "unsupported argument type")
	})

	t.Run("contract not found", func(t *testing.T) {
		uc := newEncodeCall(t, domain.ResolvedContract{
			Family:  domain.BatchRelay,
			ChainID: 1,
			Reason:  domain.NoDeploymentForFamily,
		}, nil)
		_, err := uc.Run(ctx, usecase.EncodeCallParams{Family: domain.BatchRelay, Network: "mainnet", Method: "multiSend", Args: []string{"0x"}})
		assert.ErrorIs(t, err, domain.ErrNoDeploymentForFamily)
	})
}

func TestParseABIValue(t *testing.T) {
	mustType := func(s string) abi.Type {
		typ, err := abi.NewType(s, "", nil)
		require.NoError(t, err)
		return typ
	}

	tests := []struct {
		typ     string
		raw     string
		want    any
		wantErr bool
	}{
		{typ: "address", raw: "0x5032CE064D481501E6b4a5Cc10D64e6482538948", want: common.HexToAddress("0x5032CE064D481501E6b4a5Cc10D64e6482538948")},
		{typ: "address", raw: "0x1234", wantErr: true},
		{typ: "bool", raw: "false", want: false},
		{typ: "bool", raw: "maybe", wantErr: true},
		{typ: "string", raw: "hello", want: "hello"},
		{typ: "bytes", raw: "0xdeadbeef", want: []byte{0xde, 0xad, 0xbe, 0xef}},
		{typ: "bytes", raw: "deadbeef", wantErr: true},
		{typ: "bytes4", raw: "0x8d80ff0a", want: [4]byte{0x8d, 0x80, 0xff, 0x0a}},
		{typ: "bytes4", raw: "0x8d80", wantErr: true},
		{typ: "uint8", raw: "255", want: uint8(255)},
		{typ: "uint8", raw: "256", wantErr: true},
		{typ: "uint8", raw: "-1", wantErr: true},
		{typ: "uint64", raw: "0x10", want: uint64(16)},
		{typ: "int32", raw: "-5", want: int32(-5)},
		{typ: "uint24", raw: "7", want: big.NewInt(7)},
		{typ: "uint256", raw: "1000000000000000000000", want: new(big.Int).Exp(big.NewInt(10), big.NewInt(21), nil)},
		{typ: "uint256", raw: "ten", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.typ+"/"+tt.raw, func(t *testing.T) {
			got, err := usecase.ParseABIValue(mustType(tt.typ), tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

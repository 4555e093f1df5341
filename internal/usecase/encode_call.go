package usecase

import (
	"context"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/domain/config"
)

// EncodeCallParams contains parameters for encoding a contract call
type EncodeCallParams struct {
	Family  domain.ContractFamily
	Network string
	Version string
	Method  string
	Args    []string
}

// EncodeCallResult contains the resolved target and the calldata
type EncodeCallResult struct {
	Contract domain.ResolvedContract
	Method   abi.Method
	Calldata []byte
}

// EncodeCall resolves a Safe contract and ABI-encodes a call to it
type EncodeCall struct {
	config   *config.RuntimeConfig
	resolver ContractResolver
	networks NetworkResolver
	selector NetworkSelector
}

// NewEncodeCall creates a new EncodeCall use case
func NewEncodeCall(cfg *config.RuntimeConfig, resolver ContractResolver, networks NetworkResolver, selector NetworkSelector) *EncodeCall {
	return &EncodeCall{
		config:   cfg,
		resolver: resolver,
		networks: networks,
		selector: selector,
	}
}

// Run executes the use case
func (uc *EncodeCall) Run(ctx context.Context, params EncodeCallParams) (*EncodeCallResult, error) {
	network, err := selectNetwork(ctx, uc.config, uc.networks, uc.selector, params.Network)
	if err != nil {
		return nil, err
	}

	contract, err := uc.resolver.Resolve(domain.ResolveRequest{
		Family:  params.Family,
		Network: *network,
		Version: params.Version,
	})
	if err != nil {
		return nil, err
	}
	if err := contract.Err(); err != nil {
		return nil, err
	}
	if contract.ABI == nil {
		return nil, fmt.Errorf("no ABI for %s", contract.ContractName)
	}

	method, ok := contract.ABI.Methods[params.Method]
	if !ok {
		return nil, fmt.Errorf("method %s not found in %s ABI", params.Method, contract.ContractName)
	}
	if len(params.Args) != len(method.Inputs) {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", method.Sig, len(method.Inputs), len(params.Args))
	}

	values := make([]any, len(method.Inputs))
	for i, input := range method.Inputs {
		value, err := ParseABIValue(input.Type, params.Args[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s %s): %w", i, input.Type.String(), input.Name, err)
		}
		values[i] = value
	}

	calldata, err := contract.ABI.Pack(params.Method, values...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", method.Sig, err)
	}

	return &EncodeCallResult{
		Contract: contract,
		Method:   method,
		Calldata: calldata,
	}, nil
}

// ParseABIValue converts a command-line argument into the Go value the ABI
// packer expects for typ. Arrays and tuples are not supported.
func ParseABIValue(typ abi.Type, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch typ.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, raw)
		}
		return common.HexToAddress(raw), nil

	case abi.BoolTy:
		return strconv.ParseBool(raw)

	case abi.StringTy:
		return raw, nil

	case abi.BytesTy:
		return hexutil.Decode(raw)

	case abi.FixedBytesTy:
		data, err := hexutil.Decode(raw)
		if err != nil {
			return nil, err
		}
		if len(data) != typ.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", typ.Size, len(data))
		}
		value := reflect.New(typ.GetType()).Elem()
		reflect.Copy(value, reflect.ValueOf(data))
		return value.Interface(), nil

	case abi.UintTy, abi.IntTy:
		n, ok := new(big.Int).SetString(raw, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		if typ.T == abi.UintTy && n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %s for unsigned type", raw)
		}
		// sizes other than 8, 16, 32 and 64 bits pack from *big.Int
		if typ.GetType() == reflect.TypeOf(n) {
			return n, nil
		}
		value := reflect.New(typ.GetType()).Elem()
		if typ.T == abi.UintTy {
			if !n.IsUint64() || value.OverflowUint(n.Uint64()) {
				return nil, fmt.Errorf("value %s overflows %s", raw, typ.String())
			}
			value.SetUint(n.Uint64())
		} else {
			if !n.IsInt64() || value.OverflowInt(n.Int64()) {
				return nil, fmt.Errorf("value %s overflows %s", raw, typ.String())
			}
			value.SetInt(n.Int64())
		}
		return value.Interface(), nil
	}

	return nil, fmt.Errorf("unsupported argument type %s", typ.String())
}

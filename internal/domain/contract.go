package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ContractFamily is one of the Safe contract families with published deployments
type ContractFamily string

const (
	CoreSingleton   ContractFamily = "core-singleton"
	BatchRelay      ContractFamily = "batch-relay"
	CallOnlyRelay   ContractFamily = "call-only-relay"
	ProxyFactory    ContractFamily = "proxy-factory"
	FallbackHandler ContractFamily = "fallback-handler"
)

// AllContractFamilies lists every family in display order
var AllContractFamilies = []ContractFamily{
	CoreSingleton,
	BatchRelay,
	CallOnlyRelay,
	ProxyFactory,
	FallbackHandler,
}

var familyAliases = map[string]ContractFamily{
	"core-singleton":       CoreSingleton,
	"singleton":            CoreSingleton,
	"safe":                 CoreSingleton,
	"gnosis-safe":          CoreSingleton,
	"batch-relay":          BatchRelay,
	"multisend":            BatchRelay,
	"multi-send":           BatchRelay,
	"call-only-relay":      CallOnlyRelay,
	"multisend-call-only":  CallOnlyRelay,
	"multi-send-call-only": CallOnlyRelay,
	"proxy-factory":        ProxyFactory,
	"factory":              ProxyFactory,
	"fallback-handler":     FallbackHandler,
	"handler":              FallbackHandler,
}

// ParseContractFamily accepts the canonical family names and common aliases
func ParseContractFamily(s string) (ContractFamily, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", "-")
	if family, ok := familyAliases[key]; ok {
		return family, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFamily, s)
}

// IsRelay reports whether the family is one of the unversioned relay contracts
func (f ContractFamily) IsRelay() bool {
	return f == BatchRelay || f == CallOnlyRelay
}

// TableVariant selects between the standard and L2 deployment tables of a family
type TableVariant string

const (
	StandardTable TableVariant = "standard"
	L2Table       TableVariant = "l2"
)

// DeploymentRecord is the published deployment of one family at one version.
// Records are owned by the registry and must not be modified after loading.
type DeploymentRecord struct {
	Family       ContractFamily
	Variant      TableVariant
	Version      ProtocolVersion
	ContractName string
	Released     bool

	DefaultAddress   common.Address
	NetworkAddresses map[uint64]common.Address

	RawABI json.RawMessage
	ABI    *abi.ABI
}

// NetworkAddress returns the network-specific address, if published
func (r *DeploymentRecord) NetworkAddress(chainID uint64) (common.Address, bool) {
	addr, ok := r.NetworkAddresses[chainID]
	if !ok || addr == (common.Address{}) {
		return common.Address{}, false
	}
	return addr, true
}

// HasDefault reports whether the record carries a network-agnostic address
func (r *DeploymentRecord) HasDefault() bool {
	return r.DefaultAddress != (common.Address{})
}

// ResolutionSource tells where a resolved address came from
type ResolutionSource string

const (
	SourceNetwork  ResolutionSource = "network"
	SourceDefault  ResolutionSource = "default"
	SourceOverride ResolutionSource = "override"
)

// AddressOverride pins the address of a family on one chain. It is applied by
// the resolver and never written back into the registry.
type AddressOverride struct {
	Family  ContractFamily `json:"family"`
	ChainID uint64         `json:"chainId"`
	Address common.Address `json:"address"`
}

// ResolvedContract is the outcome of a resolution: an address plus ABI, or a
// not-found reason.
type ResolvedContract struct {
	Family  ContractFamily `json:"family" yaml:"family"`
	Variant TableVariant   `json:"variant,omitempty" yaml:"variant,omitempty"`
	ChainID uint64         `json:"chainId" yaml:"chainId"`

	// RequestedVersion is the version the lookup started from
	RequestedVersion ProtocolVersion `json:"requestedVersion,omitempty" yaml:"requestedVersion,omitempty"`
	// Version of the record that matched
	Version ProtocolVersion `json:"version,omitempty" yaml:"version,omitempty"`

	ContractName string           `json:"contractName,omitempty" yaml:"contractName,omitempty"`
	Address      common.Address   `json:"address" yaml:"address"`
	ABI          *abi.ABI         `json:"-" yaml:"-"`
	Source       ResolutionSource `json:"source,omitempty" yaml:"source,omitempty"`

	// Legacy is set when a pre-1.0.0 version resolved through the 1.0.0 record
	Legacy bool `json:"legacy,omitempty" yaml:"legacy,omitempty"`

	Reason NotFoundReason `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Found reports whether the resolution produced an address
func (r ResolvedContract) Found() bool {
	return r.Reason == ""
}

// Err converts a not-found outcome into a typed error. It returns nil when found.
func (r ResolvedContract) Err() error {
	if r.Found() {
		return nil
	}
	return &NotFoundError{
		Reason:  r.Reason,
		Family:  r.Family,
		ChainID: r.ChainID,
		Version: r.RequestedVersion,
	}
}

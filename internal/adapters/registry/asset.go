package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safedeploy/internal/domain"
)

// assetTable maps a family table to its safe-deployments asset file names.
// Files were renamed from gnosis_* to safe_* in 1.4.x; the first that
// exists for a version is used.
type assetTable struct {
	Family  domain.ContractFamily
	Variant domain.TableVariant
	Files   []string
}

var assetTables = []assetTable{
	{domain.CoreSingleton, domain.StandardTable, []string{"gnosis_safe.json", "safe.json"}},
	{domain.CoreSingleton, domain.L2Table, []string{"gnosis_safe_l2.json", "safe_l2.json"}},
	{domain.BatchRelay, domain.StandardTable, []string{"multi_send.json"}},
	{domain.CallOnlyRelay, domain.StandardTable, []string{"multi_send_call_only.json"}},
	{domain.ProxyFactory, domain.StandardTable, []string{"proxy_factory.json", "safe_proxy_factory.json"}},
	{domain.FallbackHandler, domain.StandardTable, []string{"compatibility_fallback_handler.json", "default_callback_handler.json"}},
}

// deploymentAsset is the JSON layout of a safe-deployments asset file. Older
// assets map chain IDs straight to addresses; newer ones map them to one or
// more deployment type names declared under "deployments".
type deploymentAsset struct {
	ContractName     string                       `json:"contractName"`
	Version          string                       `json:"version"`
	Released         bool                         `json:"released"`
	DefaultAddress   string                       `json:"defaultAddress"`
	Deployments      map[string]deploymentType    `json:"deployments"`
	NetworkAddresses map[string]networkAddressRef `json:"networkAddresses"`
	ABI              json.RawMessage              `json:"abi"`
}

type deploymentType struct {
	Address string `json:"address"`
}

// networkAddressRef is either a single string or a list of strings
type networkAddressRef []string

func (n *networkAddressRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var many []string
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		*n = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*n = []string{one}
	return nil
}

// parseAsset turns an asset file into a deployment record
func parseAsset(data []byte, table assetTable, dirVersion string) (*domain.DeploymentRecord, error) {
	var asset deploymentAsset
	if err := json.Unmarshal(data, &asset); err != nil {
		return nil, fmt.Errorf("failed to decode asset: %w", err)
	}

	rawVersion := asset.Version
	if rawVersion == "" {
		rawVersion = dirVersion
	}
	version, err := domain.ParseProtocolVersion(rawVersion)
	if err != nil {
		return nil, err
	}

	parsedABI, err := abi.JSON(bytes.NewReader(asset.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", asset.ContractName, err)
	}

	record := &domain.DeploymentRecord{
		Family:           table.Family,
		Variant:          table.Variant,
		Version:          version,
		ContractName:     asset.ContractName,
		Released:         asset.Released,
		NetworkAddresses: make(map[uint64]common.Address, len(asset.NetworkAddresses)),
		RawABI:           asset.ABI,
		ABI:              &parsedABI,
	}

	switch {
	case asset.DefaultAddress != "":
		if !common.IsHexAddress(asset.DefaultAddress) {
			return nil, fmt.Errorf("%w: default address %q of %s", domain.ErrInvalidAddress, asset.DefaultAddress, asset.ContractName)
		}
		record.DefaultAddress = common.HexToAddress(asset.DefaultAddress)
	case asset.Deployments["canonical"].Address != "":
		record.DefaultAddress = common.HexToAddress(asset.Deployments["canonical"].Address)
	}

	for chain, ref := range asset.NetworkAddresses {
		chainID, err := strconv.ParseUint(chain, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chain id %q in %s: %w", chain, asset.ContractName, err)
		}
		addr, ok := asset.lookup(ref)
		if !ok {
			return nil, fmt.Errorf("%w: chain %s of %s references %v", domain.ErrInvalidAddress, chain, asset.ContractName, []string(ref))
		}
		record.NetworkAddresses[chainID] = addr
	}

	return record, nil
}

// lookup resolves the first entry of ref that is an address or a known
// deployment type
func (a *deploymentAsset) lookup(ref networkAddressRef) (common.Address, bool) {
	for _, entry := range ref {
		if common.IsHexAddress(entry) {
			return common.HexToAddress(entry), true
		}
		if dt, ok := a.Deployments[entry]; ok && common.IsHexAddress(dt.Address) {
			return common.HexToAddress(dt.Address), true
		}
	}
	return common.Address{}, false
}

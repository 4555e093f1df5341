package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safedeploy/internal/domain"
)

// parseAddressFlag parses an optional address flag value
func parseAddressFlag(name, value string) (*common.Address, error) {
	if value == "" {
		return nil, nil
	}
	if !common.IsHexAddress(value) {
		return nil, fmt.Errorf("--%s: %w: %s", name, domain.ErrInvalidAddress, value)
	}
	addr := common.HexToAddress(value)
	return &addr, nil
}

// parseFamilies parses contract family arguments, accepting aliases
func parseFamilies(args []string) ([]domain.ContractFamily, error) {
	families := make([]domain.ContractFamily, 0, len(args))
	for _, arg := range args {
		family, err := domain.ParseContractFamily(arg)
		if err != nil {
			return nil, err
		}
		families = append(families, family)
	}
	return families, nil
}

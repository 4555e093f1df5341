package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidVersion is returned for malformed protocol versions
	ErrInvalidVersion = errors.New("invalid protocol version")

	// ErrUnknownNetwork is returned when a network descriptor has no chain ID
	// or a network name cannot be resolved
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrUnsupportedFamily is returned for unknown families, or families an
	// operation does not accept
	ErrUnsupportedFamily = errors.New("unsupported contract family")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	ErrNoDeploymentForVersion = errors.New("no deployment for version")
	ErrNoDeploymentForFamily  = errors.New("no deployment for family")
	ErrNoDeploymentForNetwork = errors.New("no deployment for network")
)

// NotFoundReason classifies a missing deployment
type NotFoundReason string

const (
	NoDeploymentForVersion NotFoundReason = "NoDeploymentForVersion"
	NoDeploymentForFamily  NotFoundReason = "NoDeploymentForFamily"
	NoDeploymentForNetwork NotFoundReason = "NoDeploymentForNetwork"
)

// Sentinel returns the sentinel error matching the reason
func (r NotFoundReason) Sentinel() error {
	switch r {
	case NoDeploymentForVersion:
		return ErrNoDeploymentForVersion
	case NoDeploymentForFamily:
		return ErrNoDeploymentForFamily
	case NoDeploymentForNetwork:
		return ErrNoDeploymentForNetwork
	}
	return ErrNotFound
}

// NotFoundError reports absent deployment data. It matches both ErrNotFound
// and the sentinel of its reason.
type NotFoundError struct {
	Reason  NotFoundReason
	Family  ContractFamily
	ChainID uint64
	Version ProtocolVersion
}

func (e *NotFoundError) Error() string {
	switch e.Reason {
	case NoDeploymentForNetwork:
		return fmt.Sprintf("%s contract not found for chain %d", e.Family, e.ChainID)
	case NoDeploymentForFamily:
		return fmt.Sprintf("no %s deployment published for chain %d", e.Family, e.ChainID)
	default:
		return fmt.Sprintf("no %s deployment for version %s on chain %d", e.Family, e.Version, e.ChainID)
	}
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || target == e.Reason.Sentinel()
}

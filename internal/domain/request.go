package domain

import "github.com/ethereum/go-ethereum/common"

// ResolveRequest asks for the contract of one family on one network
type ResolveRequest struct {
	Family  ContractFamily
	Network Network

	// Version is the Safe's protocol version, optionally with build metadata.
	// Families that default to the latest version accept an empty value.
	Version string

	// Override replaces the looked-up address when set
	Override *common.Address
}

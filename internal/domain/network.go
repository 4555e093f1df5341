package domain

import "strconv"

// Network identifies a chain and its capabilities
type Network struct {
	ChainID uint64 `json:"chainId" yaml:"chainId"`
	Name    string `json:"name" yaml:"name"`

	// L2 marks networks with native call-only batching. Safes >= 1.3.0 on
	// these networks use the L2 singleton.
	L2 bool `json:"l2" yaml:"l2"`

	// TxServiceURL is the Safe Transaction Service base URL, if any
	TxServiceURL string `json:"txServiceUrl,omitempty" yaml:"txServiceUrl,omitempty"`
}

// Known reports whether the descriptor carries a usable chain ID
func (n Network) Known() bool {
	return n.ChainID != 0
}

// ChainIDString returns the chain ID in the decimal form used as a key by
// safe-deployments assets.
func (n Network) ChainIDString() string {
	return strconv.FormatUint(n.ChainID, 10)
}

func (n Network) String() string {
	if n.Name == "" {
		return "chain-" + n.ChainIDString()
	}
	return n.Name
}

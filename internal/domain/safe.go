package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// SafeInfo is the on-chain state of a Safe as reported by the Transaction Service
type SafeInfo struct {
	Address         common.Address   `json:"address" yaml:"address"`
	ChainID         uint64           `json:"chainId" yaml:"chainId"`
	Nonce           uint64           `json:"nonce" yaml:"nonce"`
	Threshold       int              `json:"threshold" yaml:"threshold"`
	Owners          []common.Address `json:"owners" yaml:"owners"`
	MasterCopy      common.Address   `json:"masterCopy" yaml:"masterCopy"`
	FallbackHandler common.Address   `json:"fallbackHandler" yaml:"fallbackHandler"`
	Version         string           `json:"version" yaml:"version"`
}

// QueuedTransaction is a pending multisig transaction
type QueuedTransaction struct {
	SafeTxHash            string    `json:"safeTxHash" yaml:"safeTxHash"`
	To                    string    `json:"to" yaml:"to"`
	Value                 string    `json:"value" yaml:"value"`
	Data                  string    `json:"data,omitempty" yaml:"data,omitempty"`
	Operation             int       `json:"operation" yaml:"operation"`
	Nonce                 uint64    `json:"nonce" yaml:"nonce"`
	ConfirmationsRequired int       `json:"confirmationsRequired" yaml:"confirmationsRequired"`
	Confirmations         int       `json:"confirmations" yaml:"confirmations"`
	SubmissionDate        time.Time `json:"submissionDate" yaml:"submissionDate"`
	Modified              time.Time `json:"modified" yaml:"modified"`
}

// TransactionPage is one page of the transaction queue
type TransactionPage struct {
	Count    int                  `json:"count" yaml:"count"`
	Next     string               `json:"next,omitempty" yaml:"next,omitempty"`
	Previous string               `json:"previous,omitempty" yaml:"previous,omitempty"`
	Results  []*QueuedTransaction `json:"results" yaml:"results"`
}

// QueueTags change whenever the queued or executed transactions of a Safe change
type QueueTags struct {
	Queued  string
	History string
}

package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safedeploy/internal/domain"
)

// DeploymentRegistry supplies published deployment records. Implementations
// are read-only and synchronous.
type DeploymentRegistry interface {
	// Deployment returns the record of a family at an exact version
	Deployment(family domain.ContractFamily, variant domain.TableVariant, version domain.ProtocolVersion) (*domain.DeploymentRecord, bool)
	// Deployments returns every record of a family table, newest first
	Deployments(family domain.ContractFamily, variant domain.TableVariant) []*domain.DeploymentRecord
}

// DeploymentCatalog is a registry that can enumerate its records
type DeploymentCatalog interface {
	DeploymentRegistry
	All() []*domain.DeploymentRecord
	SourceName() string
}

// ContractResolver maps a request to a resolved contract
type ContractResolver interface {
	Resolve(req domain.ResolveRequest) (domain.ResolvedContract, error)
	LatestVersion() domain.ProtocolVersion
}

// NetworkResolver resolves network names and chain IDs to descriptors
type NetworkResolver interface {
	ResolveNetwork(ctx context.Context, input string) (*domain.Network, error)
	ListNetworks() []*domain.Network
}

// SafeClient talks to the Safe Transaction Service
type SafeClient interface {
	GetSafeInfo(ctx context.Context, network domain.Network, safe common.Address) (*domain.SafeInfo, error)
	GetTransactionQueue(ctx context.Context, network domain.Network, safe common.Address) (*domain.TransactionPage, error)
	GetQueueTags(ctx context.Context, network domain.Network, safe common.Address) (domain.QueueTags, error)
}

// NetworkSelector picks a network interactively
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []*domain.Network, prompt string) (*domain.Network, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

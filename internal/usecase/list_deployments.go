package usecase

import (
	"context"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/safedeploy/internal/domain"
)

// ListDeploymentsParams contains parameters for listing registry records
type ListDeploymentsParams struct {
	// Family filter; empty lists every family
	Family domain.ContractFamily
	// Network filter (name or chain id); keeps records published on it
	Network string
}

// DeploymentEntry is a registry record, with its address on the filtered
// network when one was given
type DeploymentEntry struct {
	Record  *domain.DeploymentRecord
	Address common.Address
}

// DeploymentSummary counts records per family
type DeploymentSummary struct {
	Total    int
	ByFamily map[domain.ContractFamily]int
}

// DeploymentListResult contains the records of the registry
type DeploymentListResult struct {
	Source      string
	Network     *domain.Network
	Deployments []DeploymentEntry
	Summary     DeploymentSummary
}

// ListDeployments is the use case for listing registry records
type ListDeployments struct {
	catalog  DeploymentCatalog
	networks NetworkResolver
	sink     ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(catalog DeploymentCatalog, networks NetworkResolver, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		catalog:  catalog,
		networks: networks,
		sink:     sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	result := &DeploymentListResult{
		Source: uc.catalog.SourceName(),
	}

	if params.Network != "" {
		network, err := uc.networks.ResolveNetwork(ctx, params.Network)
		if err != nil {
			return nil, err
		}
		result.Network = network
	}

	for _, record := range uc.catalog.All() {
		if params.Family != "" && record.Family != params.Family {
			continue
		}

		entry := DeploymentEntry{Record: record}
		if result.Network != nil {
			addr, ok := record.NetworkAddress(result.Network.ChainID)
			if !ok {
				continue
			}
			entry.Address = addr
		}

		result.Deployments = append(result.Deployments, entry)
	}

	sortDeployments(result.Deployments)
	result.Summary = calculateSummary(result.Deployments)

	return result, nil
}

// sortDeployments sorts by family display order, then variant, then newest version
func sortDeployments(entries []DeploymentEntry) {
	slices.SortStableFunc(entries, func(a, b DeploymentEntry) int {
		if fa, fb := slices.Index(domain.AllContractFamilies, a.Record.Family), slices.Index(domain.AllContractFamilies, b.Record.Family); fa != fb {
			return fa - fb
		}
		if a.Record.Variant != b.Record.Variant {
			if a.Record.Variant == domain.StandardTable {
				return -1
			}
			return 1
		}
		return b.Record.Version.Compare(a.Record.Version)
	})
}

// calculateSummary calculates summary statistics for records
func calculateSummary(entries []DeploymentEntry) DeploymentSummary {
	summary := DeploymentSummary{
		Total:    len(entries),
		ByFamily: make(map[domain.ContractFamily]int),
	}

	for _, entry := range entries {
		summary.ByFamily[entry.Record.Family]++
	}

	return summary
}

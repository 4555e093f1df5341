package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// DeploymentsRenderer renders registry records as a table
type DeploymentsRenderer struct {
	out    io.Writer
	format string
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, format string) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out:    out,
		format: format,
	}
}

type deploymentView struct {
	Family         domain.ContractFamily `json:"family" yaml:"family"`
	Variant        domain.TableVariant   `json:"variant" yaml:"variant"`
	Version        string                `json:"version" yaml:"version"`
	ContractName   string                `json:"contractName" yaml:"contractName"`
	Released       bool                  `json:"released" yaml:"released"`
	DefaultAddress string                `json:"defaultAddress,omitempty" yaml:"defaultAddress,omitempty"`
	Address        string                `json:"address,omitempty" yaml:"address,omitempty"`
	Networks       int                   `json:"networks" yaml:"networks"`
}

type deploymentListView struct {
	Source      string           `json:"source" yaml:"source"`
	Network     *domain.Network  `json:"network,omitempty" yaml:"network,omitempty"`
	Total       int              `json:"total" yaml:"total"`
	Deployments []deploymentView `json:"deployments" yaml:"deployments"`
}

// Render renders the deployment list
func (r *DeploymentsRenderer) Render(result *usecase.DeploymentListResult) error {
	if r.format != FormatTable {
		return writeStructured(r.out, r.format, deploymentListView{
			Source:      result.Source,
			Network:     result.Network,
			Total:       result.Summary.Total,
			Deployments: lo.Map(result.Deployments, func(e usecase.DeploymentEntry, _ int) deploymentView { return newDeploymentView(e) }),
		})
	}

	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	heading := headerStyle.Sprintf("Deployments from %s registry", result.Source)
	if result.Network != nil {
		heading += " on " + networkLabel(result.Network)
	}
	fmt.Fprintf(r.out, "%s\n\n", heading)

	t := newTable()
	if result.Network != nil {
		t.AppendHeader(table.Row{"Family", "Table", "Version", "Contract", "Address"})
	} else {
		t.AppendHeader(table.Row{"Family", "Table", "Version", "Contract", "Default Address", "Networks"})
	}

	for _, entry := range result.Deployments {
		record := entry.Record
		version := record.Version.String()
		if !record.Released {
			version += faintStyle.Sprint(" (unreleased)")
		}

		row := table.Row{
			familyStyle.Sprint(familyTitle(record.Family)),
			string(record.Variant),
			version,
			record.ContractName,
		}
		if result.Network != nil {
			row = append(row, addressStyle.Sprint(entry.Address.Hex()))
		} else {
			row = append(row, addressStyle.Sprint(addressOrDash(record.DefaultAddress)), len(record.NetworkAddresses))
		}
		t.AppendRow(row)
	}
	fmt.Fprintln(r.out, t.Render())

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.summaryLine(result.Summary))
	return nil
}

func (r *DeploymentsRenderer) summaryLine(summary usecase.DeploymentSummary) string {
	parts := lo.FilterMap(domain.AllContractFamilies, func(f domain.ContractFamily, _ int) (string, bool) {
		n := summary.ByFamily[f]
		return fmt.Sprintf("%s: %d", familyTitle(f), n), n > 0
	})
	return faintStyle.Sprintf("Total: %d  (%s)", summary.Total, strings.Join(parts, ", "))
}

func newDeploymentView(entry usecase.DeploymentEntry) deploymentView {
	record := entry.Record
	view := deploymentView{
		Family:       record.Family,
		Variant:      record.Variant,
		Version:      record.Version.String(),
		ContractName: record.ContractName,
		Released:     record.Released,
		Networks:     len(record.NetworkAddresses),
	}
	if record.HasDefault() {
		view.DefaultAddress = record.DefaultAddress.Hex()
	}
	if entry.Address != (common.Address{}) {
		view.Address = entry.Address.Hex()
	}
	return view
}

var _ Renderer[*usecase.DeploymentListResult] = (*DeploymentsRenderer)(nil)

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

// ContractsRenderer renders resolved Safe contracts
type ContractsRenderer struct {
	out    io.Writer
	format string
}

// NewContractsRenderer creates a new contracts renderer
func NewContractsRenderer(out io.Writer, format string) *ContractsRenderer {
	return &ContractsRenderer{
		out:    out,
		format: format,
	}
}

type contractView struct {
	Family           domain.ContractFamily   `json:"family" yaml:"family"`
	Variant          domain.TableVariant     `json:"variant,omitempty" yaml:"variant,omitempty"`
	ChainID          uint64                  `json:"chainId" yaml:"chainId"`
	RequestedVersion string                  `json:"requestedVersion,omitempty" yaml:"requestedVersion,omitempty"`
	Version          string                  `json:"version,omitempty" yaml:"version,omitempty"`
	ContractName     string                  `json:"contractName,omitempty" yaml:"contractName,omitempty"`
	Address          string                  `json:"address,omitempty" yaml:"address,omitempty"`
	Source           domain.ResolutionSource `json:"source,omitempty" yaml:"source,omitempty"`
	Legacy           bool                    `json:"legacy,omitempty" yaml:"legacy,omitempty"`
	Reason           domain.NotFoundReason   `json:"reason,omitempty" yaml:"reason,omitempty"`
}

type resolveView struct {
	Network   *domain.Network  `json:"network" yaml:"network"`
	Version   string           `json:"version" yaml:"version"`
	Safe      *domain.SafeInfo `json:"safe,omitempty" yaml:"safe,omitempty"`
	Contracts []contractView   `json:"contracts" yaml:"contracts"`
}

func newContractView(c domain.ResolvedContract) contractView {
	view := contractView{
		Family:           c.Family,
		Variant:          c.Variant,
		ChainID:          c.ChainID,
		RequestedVersion: c.RequestedVersion.String(),
		Version:          c.Version.String(),
		ContractName:     c.ContractName,
		Source:           c.Source,
		Legacy:           c.Legacy,
		Reason:           c.Reason,
	}
	if c.Found() {
		view.Address = c.Address.Hex()
	}
	return view
}

// Render renders the result of a resolution
func (r *ContractsRenderer) Render(result *usecase.ResolveContractResult) error {
	if r.format != FormatTable {
		return writeStructured(r.out, r.format, resolveView{
			Network:   result.Network,
			Version:   result.Version,
			Safe:      result.Safe,
			Contracts: lo.Map(result.Contracts, func(c domain.ResolvedContract, _ int) contractView { return newContractView(c) }),
		})
	}

	if result.Safe != nil {
		r.renderSafe(result.Safe)
	}

	fmt.Fprintf(r.out, "%s %s\n\n",
		headerStyle.Sprintf("Safe %s contracts on", result.Version),
		networkLabel(result.Network),
	)

	t := newTable()
	t.AppendHeader(table.Row{"Family", "Version", "Contract", "Address", "Source"})
	for _, c := range result.Contracts {
		if !c.Found() {
			t.AppendRow(table.Row{
				familyStyle.Sprint(familyTitle(c.Family)),
				"-",
				"-",
				missingStyle.Sprint(reasonText(c.Reason)),
				"",
			})
			continue
		}

		version := c.Version.String()
		if c.Legacy {
			version += faintStyle.Sprint(" (legacy)")
		}
		t.AppendRow(table.Row{
			familyStyle.Sprint(familyTitle(c.Family)),
			version,
			c.ContractName,
			addressStyle.Sprint(c.Address.Hex()),
			faintStyle.Sprint(string(c.Source)),
		})
	}
	fmt.Fprintln(r.out, t.Render())

	if missing := result.Missing(); len(missing) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d of %d contracts not found", len(missing), len(result.Contracts))))
	}

	return nil
}

func (r *ContractsRenderer) renderSafe(info *domain.SafeInfo) {
	fmt.Fprintln(r.out, headerStyle.Sprint("Safe"))
	fmt.Fprintf(r.out, "  Address:    %s\n", addressStyle.Sprint(info.Address.Hex()))
	fmt.Fprintf(r.out, "  Version:    %s\n", info.Version)
	fmt.Fprintf(r.out, "  Threshold:  %d of %d\n", info.Threshold, len(info.Owners))
	fmt.Fprintf(r.out, "  Nonce:      %d\n", info.Nonce)
	owners := lo.Map(info.Owners, func(a common.Address, _ int) string { return a.Hex() })
	if len(owners) > 0 {
		fmt.Fprintf(r.out, "  Owners:     %s\n", strings.Join(owners, "\n              "))
	}
	fmt.Fprintln(r.out)
}

var _ Renderer[*usecase.ResolveContractResult] = (*ContractsRenderer)(nil)

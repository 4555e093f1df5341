package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out    io.Writer
	format string
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, format string) *NetworksRenderer {
	return &NetworksRenderer{
		out:    out,
		format: format,
	}
}

type networkView struct {
	domain.Network `yaml:",inline"`
	Overrides      []domain.ContractFamily `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// Render renders the list of networks
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if r.format != FormatTable {
		return writeStructured(r.out, r.format, lo.Map(result.Networks, func(s usecase.NetworkStatus, _ int) networkView {
			return networkView{Network: *s.Network, Overrides: s.Overrides}
		}))
	}

	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks available")
		return nil
	}

	fmt.Fprintf(r.out, "%s\n\n", headerStyle.Sprint("🌐 Available Networks"))

	t := newTable()
	t.AppendHeader(table.Row{"Chain ID", "Name", "L2", "Transaction Service", "Overrides"})
	for _, status := range result.Networks {
		network := status.Network
		l2 := ""
		if network.L2 {
			l2 = l2Style.Sprint("yes")
		}
		service := network.TxServiceURL
		if service == "" {
			service = faintStyle.Sprint("-")
		}
		overrides := lo.Map(status.Overrides, func(f domain.ContractFamily, _ int) string { return string(f) })
		t.AppendRow(table.Row{network.ChainID, network.Name, l2, service, strings.Join(overrides, ", ")})
	}
	fmt.Fprintln(r.out, t.Render())

	return nil
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)

package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// EncodeRenderer renders encoded calldata
type EncodeRenderer struct {
	out    io.Writer
	format string
}

// NewEncodeRenderer creates a new encode renderer
func NewEncodeRenderer(out io.Writer, format string) *EncodeRenderer {
	return &EncodeRenderer{
		out:    out,
		format: format,
	}
}

type encodeView struct {
	Family       domain.ContractFamily `json:"family" yaml:"family"`
	ChainID      uint64                `json:"chainId" yaml:"chainId"`
	ContractName string                `json:"contractName" yaml:"contractName"`
	Version      string                `json:"version" yaml:"version"`
	To           string                `json:"to" yaml:"to"`
	Method       string                `json:"method" yaml:"method"`
	Selector     string                `json:"selector" yaml:"selector"`
	Data         string                `json:"data" yaml:"data"`
}

// Render renders the encoded call
func (r *EncodeRenderer) Render(result *usecase.EncodeCallResult) error {
	view := encodeView{
		Family:       result.Contract.Family,
		ChainID:      result.Contract.ChainID,
		ContractName: result.Contract.ContractName,
		Version:      result.Contract.Version.String(),
		To:           result.Contract.Address.Hex(),
		Method:       result.Method.Sig,
		Selector:     hexutil.Encode(result.Method.ID),
		Data:         hexutil.Encode(result.Calldata),
	}

	if r.format != FormatTable {
		return writeStructured(r.out, r.format, view)
	}

	fmt.Fprintf(r.out, "To:        %s %s\n", addressStyle.Sprint(view.To),
		faintStyle.Sprintf("(%s %s, chain %d)", view.ContractName, view.Version, view.ChainID))
	fmt.Fprintf(r.out, "Method:    %s\n", familyStyle.Sprint(view.Method))
	fmt.Fprintf(r.out, "Selector:  %s\n", view.Selector)
	fmt.Fprintf(r.out, "Calldata:  %s\n", view.Data)
	return nil
}

var _ Renderer[*usecase.EncodeCallResult] = (*EncodeRenderer)(nil)

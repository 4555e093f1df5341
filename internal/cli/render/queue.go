package render

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/safedeploy/internal/domain"
	"github.com/trebuchet-org/safedeploy/internal/usecase"
)

// QueueRenderer renders the pending transactions of a Safe
type QueueRenderer struct {
	out    io.Writer
	format string
}

// NewQueueRenderer creates a new queue renderer
func NewQueueRenderer(out io.Writer, format string) *QueueRenderer {
	return &QueueRenderer{
		out:    out,
		format: format,
	}
}

type queueView struct {
	Network      *domain.Network             `json:"network" yaml:"network"`
	Safe         string                      `json:"safe" yaml:"safe"`
	QueuedTag    string                      `json:"queuedTag,omitempty" yaml:"queuedTag,omitempty"`
	HistoryTag   string                      `json:"historyTag,omitempty" yaml:"historyTag,omitempty"`
	Refreshed    bool                        `json:"refreshed" yaml:"refreshed"`
	Count        int                         `json:"count" yaml:"count"`
	Transactions []*domain.QueuedTransaction `json:"transactions" yaml:"transactions"`
}

// Render renders the transaction queue
func (r *QueueRenderer) Render(result *usecase.LoadTxQueueResult) error {
	var txs []*domain.QueuedTransaction
	count := 0
	if result.Page != nil {
		txs = result.Page.Results
		count = result.Page.Count
	}

	if r.format != FormatTable {
		return writeStructured(r.out, r.format, queueView{
			Network:      result.Network,
			Safe:         result.Safe.Hex(),
			QueuedTag:    result.Tags.Queued,
			HistoryTag:   result.Tags.History,
			Refreshed:    result.Refreshed,
			Count:        count,
			Transactions: txs,
		})
	}

	fmt.Fprintf(r.out, "%s %s %s\n\n",
		headerStyle.Sprint("Pending transactions of"),
		addressStyle.Sprint(result.Safe.Hex()),
		"on "+networkLabel(result.Network),
	)

	if len(txs) == 0 {
		fmt.Fprintln(r.out, "No pending transactions")
		return nil
	}

	t := newTable()
	t.AppendHeader(table.Row{"Nonce", "Safe Tx Hash", "To", "Value", "Confirmations", "Submitted"})
	for _, tx := range txs {
		confirmations := fmt.Sprintf("%d/%d", tx.Confirmations, tx.ConfirmationsRequired)
		if tx.ConfirmationsRequired > 0 && tx.Confirmations >= tx.ConfirmationsRequired {
			confirmations = FormatSuccess(confirmations)
		}
		submitted := ""
		if !tx.SubmissionDate.IsZero() {
			submitted = faintStyle.Sprint(tx.SubmissionDate.UTC().Format(time.DateTime))
		}
		t.AppendRow(table.Row{
			tx.Nonce,
			shortHash(tx.SafeTxHash),
			addressStyle.Sprint(tx.To),
			tx.Value,
			confirmations,
			submitted,
		})
	}
	fmt.Fprintln(r.out, t.Render())

	if count > len(txs) {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, faintStyle.Sprintf("Showing %d of %d queued transactions", len(txs), count))
	}
	return nil
}

var _ Renderer[*usecase.LoadTxQueueResult] = (*QueueRenderer)(nil)

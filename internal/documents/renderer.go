package documents

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/millstone-erp/millstone-erp/internal/accounting/posting"
)

// Renderer turns a posted transaction into a printable text voucher. Layout
// engines (PDF, Excel) sit beyond this boundary.
type Renderer struct {
	printer *message.Printer
}

// NewRenderer constructs a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{printer: message.NewPrinter(language.English)}
}

// Voucher renders the transaction as plain text.
func (r *Renderer) Voucher(t posting.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", t.TransactionNo(), t.Date.Format("2006-01-02"))
	if t.Remarks != "" {
		fmt.Fprintf(&b, "%s\n", t.Remarks)
	}
	for _, line := range t.Lines {
		switch {
		case line.Debit != nil:
			fmt.Fprintf(&b, "  Dr ledger %-6d %s\n", line.LedgerID, r.amount(*line.Debit))
		case line.Credit != nil:
			fmt.Fprintf(&b, "  Cr ledger %-6d %s\n", line.LedgerID, r.amount(*line.Credit))
		}
	}
	fmt.Fprintf(&b, "  Total %s / %s\n", r.amount(t.TotalDebit), r.amount(t.TotalCredit))
	return b.String()
}

func (r *Renderer) amount(v float64) string {
	return r.printer.Sprintf("%.2f", v)
}

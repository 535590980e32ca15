package documents

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/millstone-erp/millstone-erp/internal/accounting/posting"
)

func amount(v float64) *float64 {
	return &v
}

func TestRendererVoucher(t *testing.T) {
	r := NewRenderer()
	out := r.Voucher(posting.Transaction{
		Number:      42,
		Date:        time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC),
		Remarks:     "counter sales, morning shift",
		TotalDebit:  1550.50,
		TotalCredit: 1550.50,
		Lines: []posting.Line{
			{LedgerID: 1, Debit: amount(1550.50)},
			{LedgerID: 2, Credit: amount(1550.50)},
		},
	})

	require.True(t, strings.HasPrefix(out, "TXN-000042  2026-04-12\n"))
	require.Contains(t, out, "counter sales, morning shift")
	require.Contains(t, out, "Dr ledger 1")
	require.Contains(t, out, "Cr ledger 2")
	// amounts render with thousands separators
	require.Contains(t, out, "1,550.50")
}

func TestRendererSkipsEmptyRemarks(t *testing.T) {
	r := NewRenderer()
	out := r.Voucher(posting.Transaction{Number: 1, Date: time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)})
	require.Equal(t, 2, strings.Count(out, "\n"))
}

package reports

import (
	"sort"

	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
)

// LedgerBalance models one ledger with aggregated debit/credit sums: the
// opening sums cover everything strictly before the range, Debit/Credit the
// range itself. Net effect is uniformly Debit − Credit for every ledger; no
// per-account-type sign convention is applied.
type LedgerBalance struct {
	LedgerID      int64
	Code          string
	Name          string
	OpeningDebit  float64
	OpeningCredit float64
	Debit         float64
	Credit        float64
}

// OpeningBalance is the net of all postings before the range start.
func (b LedgerBalance) OpeningBalance() float64 {
	return shared.Round2(b.OpeningDebit - b.OpeningCredit)
}

// ClosingDebit is the opening debit plus the period debit.
func (b LedgerBalance) ClosingDebit() float64 {
	return shared.Round2(b.OpeningDebit + b.Debit)
}

// ClosingCredit is the opening credit plus the period credit.
func (b LedgerBalance) ClosingCredit() float64 {
	return shared.Round2(b.OpeningCredit + b.Credit)
}

// ClosingBalance is the opening balance plus the period net.
func (b LedgerBalance) ClosingBalance() float64 {
	return shared.Round2(b.OpeningBalance() + b.Debit - b.Credit)
}

// TrialBalanceRow is one rendered line of the report.
type TrialBalanceRow struct {
	LedgerID       int64
	Code           string
	Name           string
	OpeningDebit   float64
	OpeningCredit  float64
	OpeningBalance float64
	Debit          float64
	Credit         float64
	ClosingDebit   float64
	ClosingCredit  float64
	ClosingBalance float64
}

// TrialBalance is the aggregated report over a date range. It is computed per
// request from the detail rows and never stored.
type TrialBalance struct {
	Rows         []TrialBalanceRow
	TotalOpening float64
	TotalDebit   float64
	TotalCredit  float64
	TotalClosing float64
}

// BuildTrialBalance converts ledger balances into the ordered report.
func BuildTrialBalance(balances []LedgerBalance) TrialBalance {
	sorted := append([]LedgerBalance(nil), balances...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Code < sorted[j].Code
	})

	result := TrialBalance{}
	for _, b := range sorted {
		row := TrialBalanceRow{
			LedgerID:       b.LedgerID,
			Code:           b.Code,
			Name:           b.Name,
			OpeningDebit:   b.OpeningDebit,
			OpeningCredit:  b.OpeningCredit,
			OpeningBalance: b.OpeningBalance(),
			Debit:          b.Debit,
			Credit:         b.Credit,
			ClosingDebit:   b.ClosingDebit(),
			ClosingCredit:  b.ClosingCredit(),
			ClosingBalance: b.ClosingBalance(),
		}
		result.Rows = append(result.Rows, row)
		result.TotalOpening = shared.Round2(result.TotalOpening + row.OpeningBalance)
		result.TotalDebit = shared.Round2(result.TotalDebit + row.Debit)
		result.TotalCredit = shared.Round2(result.TotalCredit + row.Credit)
		result.TotalClosing = shared.Round2(result.TotalClosing + row.ClosingBalance)
	}
	return result
}

// Package cart accumulates candidate debit/credit lines for one accounting
// transaction. A Draft is a value: AddLine, RemoveLine and Recompute return
// new state and never mutate their receiver, so an in-progress cart can be
// held, replayed and revalidated server-side before posting.
package cart

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
	"github.com/millstone-erp/millstone-erp/internal/accounting/vouchers"
)

// Line is one candidate debit or credit posting. Exactly one of Debit/Credit
// must be set and positive for the line to survive Recompute.
type Line struct {
	LedgerID      int64                  `json:"ledger_id"`
	Debit         *float64               `json:"debit,omitempty"`
	Credit        *float64               `json:"credit,omitempty"`
	ReferenceID   *int64                 `json:"reference_id,omitempty"`
	ReferenceNo   string                 `json:"reference_no,omitempty"`
	ReferenceKind vouchers.ReferenceKind `json:"reference_kind,omitempty"`
	Remarks       string                 `json:"remarks,omitempty"`
}

// Draft is the client-held, not-yet-posted transaction. TransactionID is zero
// for a new posting and carries the stored header id when editing; in that
// case OriginalYearID preserves the year the transaction was originally
// posted into, which must still be writable for the edit to proceed.
type Draft struct {
	ID              uuid.UUID `json:"id"`
	CompanyID       int64     `json:"company_id"`
	VoucherID       int64     `json:"voucher_id"`
	Date            time.Time `json:"date"`
	FinancialYearID int64     `json:"financial_year_id"`
	TransactionID   int64     `json:"transaction_id,omitempty"`
	OriginalYearID  int64     `json:"original_year_id,omitempty"`
	ReferenceID     *int64    `json:"reference_id,omitempty"`
	ReferenceNo     string    `json:"reference_no,omitempty"`
	Remarks         string    `json:"remarks,omitempty"`
	Lines           []Line    `json:"lines"`

	TotalDebit  float64 `json:"total_debit"`
	TotalCredit float64 `json:"total_credit"`
	DebitLines  int     `json:"debit_lines"`
	CreditLines int     `json:"credit_lines"`
}

// NewDraft starts an empty draft for a voucher type and date.
func NewDraft(companyID, voucherID int64, date time.Time) Draft {
	return Draft{ID: uuid.New(), CompanyID: companyID, VoucherID: voucherID, Date: date}
}

// AddLine validates and appends a candidate line, returning the new draft.
// Duplicate ledgers are allowed; separate lines are separate postings.
func AddLine(d Draft, line Line) (Draft, error) {
	if err := validateLine(line); err != nil {
		return d, err
	}
	line.Remarks = strings.TrimSpace(line.Remarks)
	next := d
	next.Lines = append(append([]Line(nil), d.Lines...), line)
	return Recompute(next), nil
}

// RemoveLine detaches the line at idx. Always permitted pre-commit.
func RemoveLine(d Draft, idx int) (Draft, error) {
	if idx < 0 || idx >= len(d.Lines) {
		return d, shared.ErrLineNotFound
	}
	next := d
	next.Lines = append(append([]Line(nil), d.Lines[:idx]...), d.Lines[idx+1:]...)
	return Recompute(next), nil
}

// Recompute normalises every line and rebuilds the header totals from the
// surviving set: zero amounts become unset, lines with neither amount are
// dropped, lines with both amounts or a negative amount are stripped as a
// defensive re-check, blank remarks and unresolved references are cleared.
func Recompute(d Draft) Draft {
	next := d
	next.Lines = nil
	next.TotalDebit, next.TotalCredit = 0, 0
	next.DebitLines, next.CreditLines = 0, 0

	for _, line := range d.Lines {
		line.Debit = normalizeAmount(line.Debit)
		line.Credit = normalizeAmount(line.Credit)
		if line.Debit == nil && line.Credit == nil {
			continue
		}
		if line.Debit != nil && line.Credit != nil {
			continue
		}
		if (line.Debit != nil && *line.Debit < 0) || (line.Credit != nil && *line.Credit < 0) {
			continue
		}
		line.Remarks = strings.TrimSpace(line.Remarks)
		clearUnresolvedReference(&line)

		if line.Debit != nil {
			next.TotalDebit = shared.Round2(next.TotalDebit + *line.Debit)
			next.DebitLines++
		} else {
			next.TotalCredit = shared.Round2(next.TotalCredit + *line.Credit)
			next.CreditLines++
		}
		next.Lines = append(next.Lines, line)
	}

	next.Remarks = strings.TrimSpace(next.Remarks)
	if next.ReferenceID != nil && *next.ReferenceID == 0 {
		next.ReferenceID = nil
	}
	if next.ReferenceID == nil {
		next.ReferenceNo = ""
	}
	return next
}

// Validate checks the commit preconditions on an already-recomputed draft.
func Validate(d Draft) error {
	if d.CompanyID == 0 {
		return shared.ErrCompanyRequired
	}
	if d.VoucherID == 0 {
		return shared.ErrVoucherRequired
	}
	if len(d.Lines) == 0 || d.DebitLines+d.CreditLines == 0 {
		return shared.ErrEmptyCart
	}
	if d.TotalDebit == 0 && d.TotalCredit == 0 {
		return shared.ErrZeroTotals
	}
	if !shared.AmountsEqual(d.TotalDebit, d.TotalCredit) {
		return shared.ErrUnbalanced
	}
	return nil
}

// Difference reports the debit/credit gap of an unbalanced draft.
func Difference(d Draft) float64 {
	return shared.Round2(d.TotalDebit - d.TotalCredit)
}

func validateLine(line Line) error {
	if line.LedgerID == 0 {
		return shared.ErrLedgerRequired
	}
	debit := amountOrZero(line.Debit)
	credit := amountOrZero(line.Credit)
	if debit < 0 || credit < 0 {
		return shared.ErrNegativeAmount
	}
	if debit > 0 && credit > 0 {
		return shared.ErrBothAmounts
	}
	if debit == 0 && credit == 0 {
		return shared.ErrNoAmount
	}
	return nil
}

func normalizeAmount(v *float64) *float64 {
	if v == nil {
		return nil
	}
	// round before the zero check: a sub-cent amount is zero at posting
	// resolution and must not survive as a set-but-zero line
	rounded := shared.Round2(*v)
	if rounded == 0 {
		return nil
	}
	return &rounded
}

func clearUnresolvedReference(line *Line) {
	if line.ReferenceID != nil && *line.ReferenceID == 0 {
		line.ReferenceID = nil
	}
	if line.ReferenceID == nil || strings.TrimSpace(line.ReferenceNo) == "" {
		line.ReferenceID = nil
		line.ReferenceNo = ""
		line.ReferenceKind = vouchers.RefNone
		return
	}
	line.ReferenceNo = strings.TrimSpace(line.ReferenceNo)
	if !line.ReferenceKind.Valid() {
		line.ReferenceKind = vouchers.RefNone
	}
}

func amountOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

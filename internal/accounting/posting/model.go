package posting

import (
	"fmt"
	"time"

	"github.com/millstone-erp/millstone-erp/internal/accounting/vouchers"
)

// TransactionStatus is the transaction lifecycle tag. Voided transactions are
// never deleted; historical reconciliation depends on them.
type TransactionStatus string

const (
	StatusPosted TransactionStatus = "POSTED"
	StatusVoided TransactionStatus = "VOIDED"
)

// Valid reports whether the status belongs to the closed set.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPosted, StatusVoided:
		return true
	}
	return false
}

// Transaction is a posted accounting transaction header.
type Transaction struct {
	ID              int64
	Number          int64
	CompanyID       int64
	VoucherID       int64
	Date            time.Time
	FinancialYearID int64
	ReferenceID     *int64
	ReferenceNo     string
	TotalDebit      float64
	TotalCredit     float64
	DebitLines      int
	CreditLines     int
	Remarks         string
	Status          TransactionStatus
	CreatedBy       int64
	CreatedAt       time.Time
	ModifiedBy      *int64
	ModifiedAt      *time.Time
	Platform        string
	Lines           []Line
}

// TransactionNo renders the human-readable sequence number.
func (t Transaction) TransactionNo() string {
	return fmt.Sprintf("TXN-%06d", t.Number)
}

// Line is one persisted debit or credit posting. Exactly one of Debit/Credit
// is non-nil and positive.
type Line struct {
	ID            int64
	TransactionID int64
	LedgerID      int64
	Debit         *float64
	Credit        *float64
	ReferenceID   *int64
	ReferenceNo   string
	ReferenceKind vouchers.ReferenceKind
	Remarks       string
}

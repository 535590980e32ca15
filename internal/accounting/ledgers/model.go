package ledgers

import "time"

// LedgerStatus enumerates the ledger lifecycle.
type LedgerStatus string

const (
	LedgerActive  LedgerStatus = "ACTIVE"
	LedgerRetired LedgerStatus = "RETIRED"
)

// Ledger is a chart-of-accounts entry that accumulates debit/credit postings.
// Name and Code are unique among active ledgers; identity never changes.
type Ledger struct {
	ID            int64
	Name          string
	Code          string
	AccountTypeID int64
	GroupID       int64
	LocationID    *int64
	StateUTID     *int64
	Status        LedgerStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Active reports whether the ledger accepts new postings.
func (l Ledger) Active() bool {
	return l.Status == LedgerActive
}

// AccountType classifies ledgers (asset, liability, income, expense).
type AccountType struct {
	ID   int64
	Name string
}

// Group is a presentation/reporting grouping of ledgers.
type Group struct {
	ID   int64
	Name string
}

package fiscal

import (
	"time"

	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
)

// FinancialYear is a date-bounded accounting period. Once Locked it is
// immutable end to end: nothing dated inside it may be posted or edited.
type FinancialYear struct {
	ID        int64
	StartDate time.Time
	EndDate   time.Time
	Locked    bool
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether the instant falls inside the year.
func (fy FinancialYear) Contains(ts time.Time) bool {
	return !ts.Before(fy.StartDate) && !ts.After(fy.EndDate)
}

// Writable returns nil when the year accepts postings.
func (fy FinancialYear) Writable() error {
	if fy.Locked {
		return shared.ErrYearLocked
	}
	if !fy.Active {
		return shared.ErrYearInactive
	}
	return nil
}

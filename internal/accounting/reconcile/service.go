package reconcile

import (
	"context"
	"time"

	"github.com/millstone-erp/millstone-erp/internal/accounting/fiscal"
)

// Service answers "which references are still open against this ledger".
// Reads are side-effect-free and repeatable; the posting path re-runs the
// same computation inside its own transaction at commit time.
type Service struct {
	repo  Repository
	years *fiscal.Resolver
}

// NewService constructs the Service.
func NewService(repo Repository, years *fiscal.Resolver) *Service {
	return &Service{repo: repo, years: years}
}

// Outstanding returns the open reference groups for a ledger as of the given
// transaction date, windowed to the containing financial year. Warnings list
// rows skipped for referential integrity; they do not fail the load.
func (s *Service) Outstanding(ctx context.Context, ledgerID int64, asOf time.Time) ([]Group, []Warning, error) {
	fy, err := s.years.Resolve(ctx, asOf)
	if err != nil {
		return nil, nil, err
	}
	rows, warnings, err := s.repo.LedgerRows(ctx, ledgerID, fy.StartDate, asOf)
	if err != nil {
		return nil, nil, err
	}
	return GroupOutstanding(rows), warnings, nil
}

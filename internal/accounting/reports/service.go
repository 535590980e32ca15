package reports

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidRange indicates end precedes start.
var ErrInvalidRange = errors.New("reports: range end precedes start")

// Service computes trial balances on demand. Pure reads, no caching: source
// rows per ledger are small and callers recompute per request.
type Service struct {
	repo Repository
}

// NewService constructs the Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// TrialBalance computes the report for one ledger (or all, when ledgerID is
// nil) over [start, end].
func (s *Service) TrialBalance(ctx context.Context, ledgerID *int64, start, end time.Time) (TrialBalance, error) {
	if end.Before(start) {
		return TrialBalance{}, ErrInvalidRange
	}
	balances, err := s.repo.LedgerBalances(ctx, ledgerID, start, end)
	if err != nil {
		return TrialBalance{}, err
	}
	return BuildTrialBalance(balances), nil
}

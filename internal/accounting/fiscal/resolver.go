package fiscal

import (
	"context"
	"time"
)

// Resolver maps timestamps onto financial years and answers the single
// question the posting path cares about: does this instant have a valid,
// writable period.
type Resolver struct {
	repo Repository
	now  func() time.Time
}

// NewResolver constructs a Resolver.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (r *Resolver) WithNow(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Resolve returns the financial year containing the timestamp, or
// shared.ErrYearNotFound.
func (r *Resolver) Resolve(ctx context.Context, ts time.Time) (FinancialYear, error) {
	return r.repo.FindByDate(ctx, ts)
}

// ResolveWritable resolves the year and additionally requires it to be
// unlocked and active.
func (r *Resolver) ResolveWritable(ctx context.Context, ts time.Time) (FinancialYear, error) {
	fy, err := r.Resolve(ctx, ts)
	if err != nil {
		return FinancialYear{}, err
	}
	if err := fy.Writable(); err != nil {
		return fy, err
	}
	return fy, nil
}

// EnsureStoredWritable checks the ORIGINAL year of a previously posted
// transaction by its stored id. Locked history is immutable regardless of
// what period the edited date would now resolve to.
func (r *Resolver) EnsureStoredWritable(ctx context.Context, yearID int64) error {
	fy, err := r.repo.FindByID(ctx, yearID)
	if err != nil {
		return err
	}
	return fy.Writable()
}

// Now exposes the resolver clock so callers reset rejected working dates to
// the same notion of server time.
func (r *Resolver) Now() time.Time {
	return r.now()
}

// List returns all financial years, most recent first.
func (r *Resolver) List(ctx context.Context) ([]FinancialYear, error) {
	return r.repo.List(ctx)
}

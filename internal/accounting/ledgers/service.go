package ledgers

import (
	"context"
	"strings"

	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
)

// Service wraps registry rules for ledger master data.
type Service struct {
	repo Repository
}

// NewService constructs the Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListActive(ctx context.Context) ([]Ledger, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Ledger, error) {
	return s.repo.FindByID(ctx, id)
}

// Create registers a new active ledger. Uniqueness among active ledgers is
// enforced by a partial unique index and surfaced as ErrDuplicateLedger.
func (s *Service) Create(ctx context.Context, in CreateInput) (Ledger, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	if in.Name == "" || in.Code == "" {
		return Ledger{}, shared.ErrLedgerRequired
	}
	return s.repo.Create(ctx, in)
}

// Retire marks a ledger retired. Postings referencing it stay untouched.
func (s *Service) Retire(ctx context.Context, id int64) error {
	return s.repo.Retire(ctx, id)
}

func (s *Service) ListAccountTypes(ctx context.Context) ([]AccountType, error) {
	return s.repo.ListAccountTypes(ctx)
}

func (s *Service) ListGroups(ctx context.Context) ([]Group, error) {
	return s.repo.ListGroups(ctx)
}

package vouchers

import "context"

// Service exposes voucher master data plus the resolved bindings.
type Service struct {
	repo     Repository
	bindings Bindings
}

// NewService constructs the Service with already-resolved bindings.
func NewService(repo Repository, bindings Bindings) *Service {
	return &Service{repo: repo, bindings: bindings}
}

func (s *Service) List(ctx context.Context) ([]Voucher, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Voucher, error) {
	return s.repo.FindByID(ctx, id)
}

// Bindings returns the typed voucher/ledger bindings.
func (s *Service) Bindings() Bindings {
	return s.bindings
}

package posting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/millstone-erp/millstone-erp/internal/accounting/cart"
	"github.com/millstone-erp/millstone-erp/internal/accounting/fiscal"
	acctshared "github.com/millstone-erp/millstone-erp/internal/accounting/shared"
	"github.com/millstone-erp/millstone-erp/internal/accounting/vouchers"
	"github.com/millstone-erp/millstone-erp/internal/shared"
)

// PeriodError is a blocking period failure during save. The engine has reset
// the working date to server time; the caller updates its draft and surfaces
// the failure instead of silently succeeding.
type PeriodError struct {
	Reason    error
	ResetDate time.Time
	// ResetYearID is the year containing ResetDate, when one resolves.
	ResetYearID int64
}

func (e *PeriodError) Error() string {
	return fmt.Sprintf("%v (working date reset to %s)", e.Reason, e.ResetDate.Format("2006-01-02"))
}

func (e *PeriodError) Unwrap() error {
	return e.Reason
}

// AuditPort records posting activity.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// DocumentPort hands finished transactions of document-bound voucher kinds to
// the printable-document collaborator. The engine only enqueues.
type DocumentPort interface {
	EnqueueVoucherPrint(ctx context.Context, transactionID int64, kind vouchers.ReferenceKind) error
}

// Service posts, edits and voids accounting transactions.
type Service struct {
	repo      Repository
	years     *fiscal.Resolver
	bindings  vouchers.Bindings
	audit     AuditPort
	documents DocumentPort
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs the Service.
func NewService(repo Repository, years *fiscal.Resolver, bindings vouchers.Bindings, audit AuditPort, documents DocumentPort, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, years: years, bindings: bindings, audit: audit, documents: documents, logger: logger, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) List(ctx context.Context, limit int) ([]Transaction, error) {
	return s.repo.List(ctx, limit)
}

func (s *Service) Get(ctx context.Context, id int64) (Transaction, error) {
	return s.repo.Get(ctx, id)
}

// Post commits a draft as an accounting transaction and returns it with its
// assigned id and number. Client state is never trusted: the draft is
// recomputed and revalidated here, period rules are re-checked for the new
// date and, when editing, for the originally stored year, and outstanding
// reference balances are re-read inside the commit transaction.
func (s *Service) Post(ctx context.Context, actor shared.Actor, draft cart.Draft) (Transaction, error) {
	draft = cart.Recompute(draft)
	if err := cart.Validate(draft); err != nil {
		return Transaction{}, err
	}

	editing := draft.TransactionID > 0
	if editing && !actor.Admin {
		return Transaction{}, acctshared.ErrEditForbidden
	}

	fy, err := s.years.ResolveWritable(ctx, draft.Date)
	if err != nil {
		return Transaction{}, s.periodFailure(ctx, err)
	}
	draft.FinancialYearID = fy.ID

	var posted Transaction
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if editing {
			stored, err := tx.GetTransactionForUpdate(ctx, draft.TransactionID)
			if err != nil {
				return err
			}
			// The stored year is checked as stored, not re-derived from
			// the possibly-changed date. Locked history stays immutable.
			if err := s.years.EnsureStoredWritable(ctx, stored.FinancialYearID); err != nil {
				return s.periodFailure(ctx, err)
			}
			if err := tx.DeleteLines(ctx, stored.ID); err != nil {
				return err
			}
		}

		if err := s.guardReferences(ctx, tx, draft, fy); err != nil {
			return err
		}

		header := headerFromDraft(draft, actor)
		if editing {
			header.ID = draft.TransactionID
			modifiedBy := actor.UserID
			header.ModifiedBy = &modifiedBy
			if err := tx.UpdateTransaction(ctx, header); err != nil {
				return err
			}
			current, err := tx.GetTransactionForUpdate(ctx, header.ID)
			if err != nil {
				return err
			}
			header.Number = current.Number
			header.Status = current.Status
			header.CreatedAt = current.CreatedAt
		} else {
			inserted, err := tx.InsertTransaction(ctx, header)
			if err != nil {
				return err
			}
			header = inserted
		}

		if err := tx.InsertLines(ctx, header.ID, linesFromDraft(header.ID, draft)); err != nil {
			return err
		}
		header.Lines = linesFromDraft(header.ID, draft)
		posted = header
		return nil
	})
	if err != nil {
		return Transaction{}, err
	}

	s.recordAudit(ctx, actor, "transaction.post", posted.ID, map[string]any{
		"number":  posted.Number,
		"voucher": posted.VoucherID,
		"debit":   posted.TotalDebit,
		"credit":  posted.TotalCredit,
		"edit":    editing,
	})
	s.dispatchDocument(ctx, posted)
	return posted, nil
}

// Void flips the transaction to Voided. The row is never removed; trial
// balance and reconciliation keep seeing it as historical truth.
func (s *Service) Void(ctx context.Context, actor shared.Actor, id int64) (Transaction, error) {
	if !actor.Admin {
		return Transaction{}, acctshared.ErrEditForbidden
	}
	var voided Transaction
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetTransactionForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == StatusVoided {
			return acctshared.ErrAlreadyVoided
		}
		if err := s.years.EnsureStoredWritable(ctx, current.FinancialYearID); err != nil {
			return s.periodFailure(ctx, err)
		}
		if err := tx.SetStatus(ctx, id, StatusVoided, actor.UserID, s.now()); err != nil {
			return err
		}
		voided = current
		voided.Status = StatusVoided
		return nil
	})
	if err != nil {
		return Transaction{}, err
	}
	s.recordAudit(ctx, actor, "transaction.void", voided.ID, map[string]any{"number": voided.Number})
	return voided, nil
}

// periodFailure resets the working date to server time and re-resolves, so
// the caller can move its draft into the current period. The failure is still
// surfaced, never swallowed.
func (s *Service) periodFailure(ctx context.Context, reason error) *PeriodError {
	reset := s.years.Now()
	failure := &PeriodError{Reason: reason, ResetDate: reset}
	if fy, err := s.years.Resolve(ctx, reset); err == nil {
		failure.ResetYearID = fy.ID
	}
	return failure
}

// guardReferences re-reads, inside the commit transaction, the outstanding
// balance of every reference the draft settles against. A reference that was
// open at selection time but settled since is rejected, never double-settled.
func (s *Service) guardReferences(ctx context.Context, tx TxRepository, draft cart.Draft, fy fiscal.FinancialYear) error {
	for _, line := range draft.Lines {
		// any identified reference is reconcilable, whatever its kind;
		// truly unreferenced lines arrive here with a nil id
		if line.ReferenceID == nil {
			continue
		}
		debit, credit, err := tx.ReferenceNet(ctx, line.LedgerID, *line.ReferenceID, line.ReferenceNo, line.ReferenceKind, fy.StartDate, draft.Date)
		if err != nil {
			return err
		}
		if acctshared.AmountsEqual(debit, credit) && (debit != 0 || credit != 0) {
			return fmt.Errorf("%w: %s %s", acctshared.ErrReferenceSettled, line.ReferenceKind, line.ReferenceNo)
		}
	}
	return nil
}

func (s *Service) recordAudit(ctx context.Context, actor shared.Actor, action string, entityID int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  actor.UserID,
		Action:   action,
		Entity:   "accounting_transaction",
		EntityID: fmt.Sprintf("%d", entityID),
		Meta:     meta,
		At:       s.now(),
	})
	if err != nil {
		s.logger.Warn("audit record failed", slog.String("action", action), slog.Any("error", err))
	}
}

func (s *Service) dispatchDocument(ctx context.Context, t Transaction) {
	if s.documents == nil {
		return
	}
	kind := s.bindings.KindForVoucher(t.VoucherID)
	if kind == vouchers.RefNone {
		return
	}
	if err := s.documents.EnqueueVoucherPrint(ctx, t.ID, kind); err != nil {
		s.logger.Warn("enqueue voucher print failed", slog.Int64("transaction_id", t.ID), slog.Any("error", err))
	}
}

func headerFromDraft(d cart.Draft, actor shared.Actor) Transaction {
	return Transaction{
		CompanyID:       d.CompanyID,
		VoucherID:       d.VoucherID,
		Date:            d.Date,
		FinancialYearID: d.FinancialYearID,
		ReferenceID:     d.ReferenceID,
		ReferenceNo:     d.ReferenceNo,
		TotalDebit:      d.TotalDebit,
		TotalCredit:     d.TotalCredit,
		DebitLines:      d.DebitLines,
		CreditLines:     d.CreditLines,
		Remarks:         d.Remarks,
		Status:          StatusPosted,
		CreatedBy:       actor.UserID,
		Platform:        "server",
	}
}

func linesFromDraft(transactionID int64, d cart.Draft) []Line {
	out := make([]Line, 0, len(d.Lines))
	for _, line := range d.Lines {
		out = append(out, Line{
			TransactionID: transactionID,
			LedgerID:      line.LedgerID,
			Debit:         line.Debit,
			Credit:        line.Credit,
			ReferenceID:   line.ReferenceID,
			ReferenceNo:   line.ReferenceNo,
			ReferenceKind: line.ReferenceKind,
			Remarks:       line.Remarks,
		})
	}
	return out
}

package posting

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
	"github.com/millstone-erp/millstone-erp/internal/accounting/vouchers"
)

// Repository encapsulates DB operations for transactions.
type Repository interface {
	List(ctx context.Context, limit int) ([]Transaction, error)
	Get(ctx context.Context, id int64) (Transaction, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the operations available inside one atomic commit.
// Header and line writes either all land or none do.
type TxRepository interface {
	InsertTransaction(ctx context.Context, t Transaction) (Transaction, error)
	UpdateTransaction(ctx context.Context, t Transaction) error
	GetTransactionForUpdate(ctx context.Context, id int64) (Transaction, error)
	DeleteLines(ctx context.Context, transactionID int64) error
	InsertLines(ctx context.Context, transactionID int64, lines []Line) error
	SetStatus(ctx context.Context, id int64, status TransactionStatus, actorID int64, at time.Time) error
	// ReferenceNet re-reads the net posted amounts against a reference at
	// commit time, within the same isolation snapshot as the write.
	ReferenceNet(ctx context.Context, ledgerID, referenceID int64, referenceNo string, kind vouchers.ReferenceKind, from, to time.Time) (debit, credit float64, err error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the pgx-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const headerColumns = `id, number, company_id, voucher_id, transaction_date, financial_year_id,
reference_id, COALESCE(reference_no, ''), total_debit, total_credit, debit_lines, credit_lines,
COALESCE(remarks, ''), status, created_by, created_at, modified_by, modified_at, COALESCE(platform, '')`

func (r *repository) List(ctx context.Context, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `SELECT `+headerColumns+` FROM accounting_transactions ORDER BY number DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Transaction, error) {
	t, err := scanTransaction(r.db.QueryRow(ctx, `SELECT `+headerColumns+` FROM accounting_transactions WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, shared.ErrTransactionNotFound
		}
		return Transaction{}, err
	}
	lines, err := r.loadLines(ctx, id)
	if err != nil {
		return Transaction{}, err
	}
	t.Lines = lines
	return t, nil
}

func (r *repository) loadLines(ctx context.Context, transactionID int64) ([]Line, error) {
	rows, err := r.db.Query(ctx, `SELECT id, transaction_id, ledger_id, debit, credit, reference_id,
COALESCE(reference_no, ''), COALESCE(reference_kind, 'NONE'), COALESCE(remarks, '')
FROM accounting_details WHERE transaction_id=$1 ORDER BY id ASC`, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Line
	for rows.Next() {
		var (
			line    Line
			rawKind string
		)
		if err := rows.Scan(&line.ID, &line.TransactionID, &line.LedgerID, &line.Debit, &line.Credit,
			&line.ReferenceID, &line.ReferenceNo, &rawKind, &line.Remarks); err != nil {
			return nil, err
		}
		line.ReferenceKind = vouchers.ParseReferenceKind(rawKind)
		out = append(out, line)
	}
	return out, rows.Err()
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	wrapper := &txRepository{tx: tx}
	if err := fn(ctx, wrapper); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) InsertTransaction(ctx context.Context, t Transaction) (Transaction, error) {
	row := r.tx.QueryRow(ctx, `INSERT INTO accounting_transactions
(company_id, voucher_id, transaction_date, financial_year_id, reference_id, reference_no,
 total_debit, total_credit, debit_lines, credit_lines, remarks, status, created_by, platform)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,'POSTED',$12,$13)
RETURNING id, number, created_at`,
		t.CompanyID, t.VoucherID, t.Date, t.FinancialYearID, t.ReferenceID, nullString(t.ReferenceNo),
		t.TotalDebit, t.TotalCredit, t.DebitLines, t.CreditLines, nullString(t.Remarks), t.CreatedBy, t.Platform)
	t.Status = StatusPosted
	if err := row.Scan(&t.ID, &t.Number, &t.CreatedAt); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func (r *txRepository) UpdateTransaction(ctx context.Context, t Transaction) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE accounting_transactions SET
company_id=$2, voucher_id=$3, transaction_date=$4, financial_year_id=$5, reference_id=$6, reference_no=$7,
total_debit=$8, total_credit=$9, debit_lines=$10, credit_lines=$11, remarks=$12, modified_by=$13, modified_at=NOW(), platform=$14
WHERE id=$1`,
		t.ID, t.CompanyID, t.VoucherID, t.Date, t.FinancialYearID, t.ReferenceID, nullString(t.ReferenceNo),
		t.TotalDebit, t.TotalCredit, t.DebitLines, t.CreditLines, nullString(t.Remarks), t.ModifiedBy, t.Platform)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrTransactionNotFound
	}
	return nil
}

func (r *txRepository) GetTransactionForUpdate(ctx context.Context, id int64) (Transaction, error) {
	t, err := scanTransaction(r.tx.QueryRow(ctx, `SELECT `+headerColumns+` FROM accounting_transactions WHERE id=$1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, shared.ErrTransactionNotFound
		}
		return Transaction{}, err
	}
	return t, nil
}

func (r *txRepository) DeleteLines(ctx context.Context, transactionID int64) error {
	_, err := r.tx.Exec(ctx, `DELETE FROM accounting_details WHERE transaction_id=$1`, transactionID)
	return err
}

func (r *txRepository) InsertLines(ctx context.Context, transactionID int64, lines []Line) error {
	for _, line := range lines {
		if _, err := r.tx.Exec(ctx, `INSERT INTO accounting_details
(transaction_id, ledger_id, debit, credit, reference_id, reference_no, reference_kind, remarks)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			transactionID, line.LedgerID, line.Debit, line.Credit,
			line.ReferenceID, nullString(line.ReferenceNo), string(line.ReferenceKind), nullString(line.Remarks)); err != nil {
			return err
		}
	}
	return nil
}

func (r *txRepository) SetStatus(ctx context.Context, id int64, status TransactionStatus, actorID int64, at time.Time) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE accounting_transactions SET status=$2, modified_by=$3, modified_at=$4 WHERE id=$1`,
		id, status, actorID, at)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrTransactionNotFound
	}
	return nil
}

func (r *txRepository) ReferenceNet(ctx context.Context, ledgerID, referenceID int64, referenceNo string, kind vouchers.ReferenceKind, from, to time.Time) (float64, float64, error) {
	var debit, credit float64
	err := r.tx.QueryRow(ctx, `SELECT COALESCE(SUM(d.debit), 0), COALESCE(SUM(d.credit), 0)
FROM accounting_details d
JOIN accounting_transactions t ON t.id = d.transaction_id
WHERE d.ledger_id=$1 AND d.reference_id=$2 AND d.reference_no=$3 AND d.reference_kind=$4
AND t.transaction_date >= $5 AND t.transaction_date <= $6`,
		ledgerID, referenceID, referenceNo, string(kind), from, to).Scan(&debit, &credit)
	if err != nil {
		return 0, 0, err
	}
	return debit, credit, nil
}

func scanTransaction(row pgx.Row) (Transaction, error) {
	var t Transaction
	err := row.Scan(&t.ID, &t.Number, &t.CompanyID, &t.VoucherID, &t.Date, &t.FinancialYearID,
		&t.ReferenceID, &t.ReferenceNo, &t.TotalDebit, &t.TotalCredit, &t.DebitLines, &t.CreditLines,
		&t.Remarks, &t.Status, &t.CreatedBy, &t.CreatedAt, &t.ModifiedBy, &t.ModifiedAt, &t.Platform)
	return t, err
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

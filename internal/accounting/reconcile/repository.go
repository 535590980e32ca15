package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/millstone-erp/millstone-erp/internal/accounting/vouchers"
)

// Warning reports a row skipped during a best-effort load.
type Warning struct {
	LineID int64  `json:"line_id"`
	Reason string `json:"reason"`
}

// Repository loads flattened ledger postings.
type Repository interface {
	LedgerRows(ctx context.Context, ledgerID int64, from, to time.Time) ([]Row, []Warning, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the pgx-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

// LedgerRows joins headers and lines for one ledger within the window. Lines
// whose ledger no longer resolves are skipped and reported as warnings; the
// rest of the load proceeds. Voided transactions stay included: they are part
// of historical truth.
func (r *repository) LedgerRows(ctx context.Context, ledgerID int64, from, to time.Time) ([]Row, []Warning, error) {
	rows, err := r.db.Query(ctx, `SELECT d.id, d.transaction_id, t.transaction_date, d.ledger_id,
COALESCE(d.debit, 0), COALESCE(d.credit, 0), d.reference_id, COALESCE(d.reference_no, ''), COALESCE(d.reference_kind, 'NONE'),
l.id IS NOT NULL AS ledger_ok
FROM accounting_details d
JOIN accounting_transactions t ON t.id = d.transaction_id
LEFT JOIN ledgers l ON l.id = d.ledger_id
WHERE d.ledger_id = $1 AND t.transaction_date >= $2 AND t.transaction_date <= $3
ORDER BY t.transaction_date ASC, d.id ASC`, ledgerID, from, to)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	return collectRows(rows)
}

func collectRows(rows pgx.Rows) ([]Row, []Warning, error) {
	var (
		out      []Row
		warnings []Warning
	)
	for rows.Next() {
		var (
			row      Row
			rawKind  string
			ledgerOK bool
		)
		if err := rows.Scan(&row.LineID, &row.TransactionID, &row.Date, &row.LedgerID,
			&row.Debit, &row.Credit, &row.ReferenceID, &row.ReferenceNo, &rawKind, &ledgerOK); err != nil {
			return nil, nil, err
		}
		if !ledgerOK {
			warnings = append(warnings, Warning{
				LineID: row.LineID,
				Reason: fmt.Sprintf("ledger %d no longer resolves", row.LedgerID),
			})
			continue
		}
		row.ReferenceKind = vouchers.ParseReferenceKind(rawKind)
		out = append(out, row)
	}
	return out, warnings, rows.Err()
}

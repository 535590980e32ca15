package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository aggregates detail rows into per-ledger balances.
type Repository interface {
	LedgerBalances(ctx context.Context, ledgerID *int64, start, end time.Time) ([]LedgerBalance, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the pgx-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

// LedgerBalances sums opening (strictly before start) and period (start..end)
// debit/credit per ledger. Voided transactions are included; voiding never
// rewrites history. Pass a nil ledgerID for all ledgers.
func (r *repository) LedgerBalances(ctx context.Context, ledgerID *int64, start, end time.Time) ([]LedgerBalance, error) {
	rows, err := r.db.Query(ctx, `SELECT l.id, l.code, l.name,
COALESCE(SUM(d.debit)  FILTER (WHERE t.transaction_date <  $2), 0) AS opening_debit,
COALESCE(SUM(d.credit) FILTER (WHERE t.transaction_date <  $2), 0) AS opening_credit,
COALESCE(SUM(d.debit)  FILTER (WHERE t.transaction_date >= $2 AND t.transaction_date <= $3), 0) AS period_debit,
COALESCE(SUM(d.credit) FILTER (WHERE t.transaction_date >= $2 AND t.transaction_date <= $3), 0) AS period_credit
FROM ledgers l
LEFT JOIN accounting_details d ON d.ledger_id = l.id
LEFT JOIN accounting_transactions t ON t.id = d.transaction_id AND t.transaction_date <= $3
WHERE ($1::bigint IS NULL OR l.id = $1)
GROUP BY l.id, l.code, l.name
ORDER BY l.code ASC`, ledgerID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LedgerBalance
	for rows.Next() {
		var b LedgerBalance
		if err := rows.Scan(&b.LedgerID, &b.Code, &b.Name, &b.OpeningDebit, &b.OpeningCredit, &b.Debit, &b.Credit); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

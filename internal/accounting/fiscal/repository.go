package fiscal

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
)

// Repository loads financial years.
type Repository interface {
	FindByDate(ctx context.Context, date time.Time) (FinancialYear, error)
	FindByID(ctx context.Context, id int64) (FinancialYear, error)
	List(ctx context.Context) ([]FinancialYear, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the pgx-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const yearColumns = `id, start_date, end_date, locked, active, created_at, updated_at`

// FindByDate returns the financial year covering the supplied date. Years are
// contiguous and non-overlapping by construction, so at most one row matches.
func (r *repository) FindByDate(ctx context.Context, date time.Time) (FinancialYear, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT `+yearColumns+`
FROM financial_years WHERE $1 BETWEEN start_date AND end_date ORDER BY start_date LIMIT 1`, date))
}

func (r *repository) FindByID(ctx context.Context, id int64) (FinancialYear, error) {
	return r.scanOne(r.db.QueryRow(ctx, `SELECT `+yearColumns+` FROM financial_years WHERE id=$1`, id))
}

func (r *repository) List(ctx context.Context) ([]FinancialYear, error) {
	rows, err := r.db.Query(ctx, `SELECT `+yearColumns+` FROM financial_years ORDER BY start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []FinancialYear
	for rows.Next() {
		var fy FinancialYear
		if err := rows.Scan(&fy.ID, &fy.StartDate, &fy.EndDate, &fy.Locked, &fy.Active, &fy.CreatedAt, &fy.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, fy)
	}
	return out, rows.Err()
}

func (r *repository) scanOne(row pgx.Row) (FinancialYear, error) {
	var fy FinancialYear
	err := row.Scan(&fy.ID, &fy.StartDate, &fy.EndDate, &fy.Locked, &fy.Active, &fy.CreatedAt, &fy.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return FinancialYear{}, shared.ErrYearNotFound
		}
		return FinancialYear{}, err
	}
	return fy, nil
}

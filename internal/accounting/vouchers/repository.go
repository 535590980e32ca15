package vouchers

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
)

// Repository encapsulates DB operations for voucher types.
type Repository interface {
	List(ctx context.Context) ([]Voucher, error)
	FindByID(ctx context.Context, id int64) (Voucher, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the pgx-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Voucher, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at, updated_at FROM vouchers ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Voucher
	for rows.Next() {
		var v Voucher
		if err := rows.Scan(&v.ID, &v.Name, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *repository) FindByID(ctx context.Context, id int64) (Voucher, error) {
	var v Voucher
	err := r.db.QueryRow(ctx, `SELECT id, name, created_at, updated_at FROM vouchers WHERE id=$1`, id).
		Scan(&v.ID, &v.Name, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Voucher{}, shared.ErrVoucherNotFound
		}
		return Voucher{}, err
	}
	return v, nil
}

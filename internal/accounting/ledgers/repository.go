package ledgers

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/millstone-erp/millstone-erp/internal/accounting/shared"
)

// Repository encapsulates DB operations for the ledger registry.
type Repository interface {
	ListActive(ctx context.Context) ([]Ledger, error)
	FindByID(ctx context.Context, id int64) (Ledger, error)
	Create(ctx context.Context, in CreateInput) (Ledger, error)
	Retire(ctx context.Context, id int64) error
	ListAccountTypes(ctx context.Context) ([]AccountType, error)
	ListGroups(ctx context.Context) ([]Group, error)
}

// CreateInput carries the fields for a new ledger.
type CreateInput struct {
	Name          string
	Code          string
	AccountTypeID int64
	GroupID       int64
	LocationID    *int64
	StateUTID     *int64
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository constructs the pgx-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const ledgerColumns = `id, name, code, account_type_id, group_id, location_id, state_ut_id, status, created_at, updated_at`

func (r *repository) ListActive(ctx context.Context) ([]Ledger, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE status='ACTIVE' ORDER BY code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Ledger
	for rows.Next() {
		ledger, err := scanLedger(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ledger)
	}
	return out, rows.Err()
}

func (r *repository) FindByID(ctx context.Context, id int64) (Ledger, error) {
	ledger, err := scanLedger(r.db.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM ledgers WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Ledger{}, shared.ErrLedgerNotFound
		}
		return Ledger{}, err
	}
	return ledger, nil
}

func (r *repository) Create(ctx context.Context, in CreateInput) (Ledger, error) {
	ledger, err := scanLedger(r.db.QueryRow(ctx, `INSERT INTO ledgers (name, code, account_type_id, group_id, location_id, state_ut_id, status)
VALUES ($1,$2,$3,$4,$5,$6,'ACTIVE') RETURNING `+ledgerColumns, in.Name, in.Code, in.AccountTypeID, in.GroupID, in.LocationID, in.StateUTID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Ledger{}, shared.ErrDuplicateLedger
		}
		return Ledger{}, err
	}
	return ledger, nil
}

func (r *repository) Retire(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE ledgers SET status='RETIRED', updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrLedgerNotFound
	}
	return nil
}

func (r *repository) ListAccountTypes(ctx context.Context) ([]AccountType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM account_types ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AccountType
	for rows.Next() {
		var at AccountType
		if err := rows.Scan(&at.ID, &at.Name); err != nil {
			return nil, err
		}
		out = append(out, at)
	}
	return out, rows.Err()
}

func (r *repository) ListGroups(ctx context.Context) ([]Group, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM ledger_groups ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func scanLedger(row pgx.Row) (Ledger, error) {
	var l Ledger
	err := row.Scan(&l.ID, &l.Name, &l.Code, &l.AccountTypeID, &l.GroupID, &l.LocationID, &l.StateUTID, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

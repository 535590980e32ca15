// Package settings exposes the key/value configuration gateway. Semantic
// bindings (which voucher represents a sale, which ledger is the cash box)
// are read from here, never computed.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrKeyNotFound indicates a missing configuration key.
var ErrKeyNotFound = errors.New("settings: key not found")

// Store reads stored configuration values by semantic key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	GetInt64(ctx context.Context, key string) (int64, error)
}

type store struct {
	db *pgxpool.Pool
}

// NewStore constructs the pgx-backed store.
func NewStore(db *pgxpool.Pool) Store {
	return &store{db: db}
}

func (s *store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRow(ctx, `SELECT value FROM app_settings WHERE key=$1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		return "", err
	}
	return value, nil
}

func (s *store) GetInt64(ctx context.Context, key string) (int64, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("settings: key %s is not numeric: %w", key, err)
	}
	return parsed, nil
}

// Static is an in-memory Store for tests and seeds.
type Static map[string]string

func (s Static) Get(_ context.Context, key string) (string, error) {
	value, ok := s[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, nil
}

func (s Static) GetInt64(ctx context.Context, key string) (int64, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("settings: key %s is not numeric: %w", key, err)
	}
	return parsed, nil
}

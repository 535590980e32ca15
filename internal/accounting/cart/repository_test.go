package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/millstone-erp/millstone-erp/internal/shared"
)

func newTestRepository(t *testing.T, ttl time.Duration) (DraftRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisRepository(client, ttl), mr
}

func TestDraftRepositoryRoundTrip(t *testing.T) {
	repo, _ := newTestRepository(t, time.Hour)
	ctx := context.Background()

	d := NewDraft(1, 10, time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC))
	d, err := AddLine(d, Line{LedgerID: 1, Debit: amount(250)})
	require.NoError(t, err)
	d, err = AddLine(d, Line{LedgerID: 2, Credit: amount(250)})
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, 7, d))

	loaded, err := repo.Load(ctx, 7, d.ID)
	require.NoError(t, err)
	require.Equal(t, d.ID, loaded.ID)
	require.Equal(t, d.TotalDebit, loaded.TotalDebit)
	require.Len(t, loaded.Lines, 2)
	require.Equal(t, 250.0, *loaded.Lines[0].Debit)
	require.Nil(t, loaded.Lines[0].Credit)
}

func TestDraftRepositoryMissing(t *testing.T) {
	repo, _ := newTestRepository(t, time.Hour)

	_, err := repo.Load(context.Background(), 7, uuid.New())
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDraftRepositoryScopedByUser(t *testing.T) {
	repo, _ := newTestRepository(t, time.Hour)
	ctx := context.Background()

	d := NewDraft(1, 10, time.Now())
	require.NoError(t, repo.Save(ctx, 7, d))

	_, err := repo.Load(ctx, 8, d.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)

	other, err := repo.List(ctx, 8)
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestDraftRepositoryDelete(t *testing.T) {
	repo, _ := newTestRepository(t, time.Hour)
	ctx := context.Background()

	d := NewDraft(1, 10, time.Now())
	require.NoError(t, repo.Save(ctx, 7, d))
	require.NoError(t, repo.Delete(ctx, 7, d.ID))

	_, err := repo.Load(ctx, 7, d.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)

	drafts, err := repo.List(ctx, 7)
	require.NoError(t, err)
	require.Empty(t, drafts)
}

func TestDraftRepositoryListCleansExpiredEntries(t *testing.T) {
	repo, mr := newTestRepository(t, time.Minute)
	ctx := context.Background()

	d := NewDraft(1, 10, time.Now())
	require.NoError(t, repo.Save(ctx, 7, d))

	// the draft key expires but the index entry survives until the next List
	mr.Del(draftKey(7, d.ID))
	drafts, err := repo.List(ctx, 7)
	require.NoError(t, err)
	require.Empty(t, drafts)
	require.False(t, mr.Exists(draftKey(7, d.ID)))
}

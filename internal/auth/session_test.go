package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/millstone-erp/millstone-erp/internal/shared"
)

func newTestSessions(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionManager(client, "test_session", time.Hour), mr
}

func TestSessionRoundTrip(t *testing.T) {
	sessions, _ := newTestSessions(t)
	ctx := context.Background()

	token, err := sessions.Create(ctx, shared.Actor{UserID: 7, Name: "clerk", Admin: true})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	actor, err := sessions.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, actor)
	require.Equal(t, int64(7), actor.UserID)
	require.Equal(t, "clerk", actor.Name)
	require.True(t, actor.Admin)
}

func TestSessionResolveUnknownToken(t *testing.T) {
	sessions, _ := newTestSessions(t)

	actor, err := sessions.Resolve(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, actor)

	actor, err = sessions.Resolve(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, actor)
}

func TestSessionDestroy(t *testing.T) {
	sessions, _ := newTestSessions(t)
	ctx := context.Background()

	token, err := sessions.Create(ctx, shared.Actor{UserID: 7})
	require.NoError(t, err)
	require.NoError(t, sessions.Destroy(ctx, token))

	actor, err := sessions.Resolve(ctx, token)
	require.NoError(t, err)
	require.Nil(t, actor)
}

func TestSessionExpiry(t *testing.T) {
	sessions, mr := newTestSessions(t)
	ctx := context.Background()

	token, err := sessions.Create(ctx, shared.Actor{UserID: 7})
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)
	actor, err := sessions.Resolve(ctx, token)
	require.NoError(t, err)
	require.Nil(t, actor)
}

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/millstone-erp/millstone-erp/internal/shared"
)

// SessionManager keeps authenticated sessions in Redis.
type SessionManager struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(client *redis.Client, prefix string, ttl time.Duration) *SessionManager {
	if prefix == "" {
		prefix = "millstone_session"
	}
	return &SessionManager{client: client, prefix: prefix, ttl: ttl}
}

type sessionRecord struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Admin  bool   `json:"admin"`
}

func (m *SessionManager) key(token string) string {
	return fmt.Sprintf("%s:%s", m.prefix, token)
}

// Create stores a new session and returns its opaque token.
func (m *SessionManager) Create(ctx context.Context, actor shared.Actor) (string, error) {
	token := uuid.NewString()
	data, err := json.Marshal(sessionRecord{UserID: actor.UserID, Name: actor.Name, Admin: actor.Admin})
	if err != nil {
		return "", err
	}
	if err := m.client.Set(ctx, m.key(token), data, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("auth: store session: %w", err)
	}
	return token, nil
}

// Resolve returns the actor bound to a session token, or nil when absent.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*shared.Actor, error) {
	if token == "" {
		return nil, nil
	}
	data, err := m.client.Get(ctx, m.key(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("auth: load session: %w", err)
	}
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("auth: decode session: %w", err)
	}
	return &shared.Actor{UserID: rec.UserID, Name: rec.Name, Admin: rec.Admin}, nil
}

// Destroy removes a session.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	return m.client.Del(ctx, m.key(token)).Err()
}

package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/millstone-erp/millstone-erp/internal/shared"
)

// DraftRepository stores in-progress drafts keyed by user and draft id. It
// replaces the transient client-side cache the posting engine must not
// depend on; drafts from one user are invisible to every other user.
type DraftRepository interface {
	Save(ctx context.Context, userID int64, draft Draft) error
	Load(ctx context.Context, userID int64, id uuid.UUID) (Draft, error)
	Delete(ctx context.Context, userID int64, id uuid.UUID) error
	List(ctx context.Context, userID int64) ([]Draft, error)
}

type redisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepository constructs the Redis-backed draft repository.
func NewRedisRepository(client *redis.Client, ttl time.Duration) DraftRepository {
	return &redisRepository{client: client, ttl: ttl}
}

func draftKey(userID int64, id uuid.UUID) string {
	return fmt.Sprintf("cart:draft:%d:%s", userID, id)
}

func draftIndexKey(userID int64) string {
	return fmt.Sprintf("cart:drafts:%d", userID)
}

func (r *redisRepository) Save(ctx context.Context, userID int64, draft Draft) error {
	if draft.ID == uuid.Nil {
		draft.ID = uuid.New()
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("cart: encode draft: %w", err)
	}
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, draftKey(userID, draft.ID), data, r.ttl)
	pipe.SAdd(ctx, draftIndexKey(userID), draft.ID.String())
	pipe.Expire(ctx, draftIndexKey(userID), r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cart: save draft: %w", err)
	}
	return nil
}

func (r *redisRepository) Load(ctx context.Context, userID int64, id uuid.UUID) (Draft, error) {
	data, err := r.client.Get(ctx, draftKey(userID, id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Draft{}, shared.ErrNotFound
		}
		return Draft{}, fmt.Errorf("cart: load draft: %w", err)
	}
	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return Draft{}, fmt.Errorf("cart: decode draft: %w", err)
	}
	return draft, nil
}

func (r *redisRepository) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, draftKey(userID, id))
	pipe.SRem(ctx, draftIndexKey(userID), id.String())
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisRepository) List(ctx context.Context, userID int64) ([]Draft, error) {
	ids, err := r.client.SMembers(ctx, draftIndexKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cart: list drafts: %w", err)
	}
	var out []Draft
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		draft, err := r.Load(ctx, userID, id)
		if err != nil {
			if err == shared.ErrNotFound {
				// expired entry still in the index
				_ = r.client.SRem(ctx, draftIndexKey(userID), raw).Err()
				continue
			}
			return nil, err
		}
		out = append(out, draft)
	}
	return out, nil
}

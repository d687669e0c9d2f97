package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"faqbot/internal/domain"
)

const redisKeyPrefix = "faqbot:session:"

// RedisStore keeps sessions in Redis with the idle timeout applied as a
// key TTL, refreshed on every write.
type RedisStore struct {
	client      *redis.Client
	idleTimeout time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, idleTimeout time.Duration) *RedisStore {
	return &RedisStore{client: client, idleTimeout: idleTimeout}
}

func (r *RedisStore) Get(ctx context.Context, conversationID string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+conversationID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisStore) Put(ctx context.Context, s *domain.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+s.ConversationID, data, r.idleTimeout).Err()
}

func (r *RedisStore) Delete(ctx context.Context, conversationID string) error {
	return r.client.Del(ctx, redisKeyPrefix+conversationID).Err()
}

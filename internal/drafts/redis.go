package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tickets-go-admin/internal/forms"
)

const (
	draftKeyPrefix = "draft:"
	ownerKeyPrefix = "draft-owner:"
	lockKeyPrefix  = "draft-lock:"

	lockTTL = 2 * time.Minute
)

// releaseLock deletes the lock only while it still holds our token
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps drafts in Redis so every console instance sees them
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a new Redis draft store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisStoreFromURL connects to the Redis at rawURL and checks it answers
func NewRedisStoreFromURL(ctx context.Context, rawURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisStore(client, ttl), nil
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Save(ctx context.Context, d *forms.EventDraft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	ownerKey := ownerKeyPrefix + d.Owner
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, draftKeyPrefix+d.ID, data, s.ttl)
		pipe.SAdd(ctx, ownerKey, d.ID)
		pipe.Expire(ctx, ownerKey, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*forms.EventDraft, error) {
	data, err := s.client.Get(ctx, draftKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var d forms.EventDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &d, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	d, err := s.Get(ctx, id)
	if errors.Is(err, ErrDraftNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, draftKeyPrefix+id)
		pipe.SRem(ctx, ownerKeyPrefix+d.Owner, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteOwner(ctx context.Context, owner string) error {
	ownerKey := ownerKeyPrefix + owner
	ids, err := s.client.SMembers(ctx, ownerKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list drafts: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, draftKeyPrefix+id)
	}
	keys = append(keys, ownerKey)
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete drafts: %w", err)
	}
	return nil
}

func (s *RedisStore) Lock(ctx context.Context, id string) (func() error, error) {
	key := lockKeyPrefix + id
	token := uuid.NewString()

	ok, err := s.client.SetNX(ctx, key, token, lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to lock draft: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	return func() error {
		// the request context may already be done
		if err := releaseLock.Run(context.Background(), s.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("failed to release draft lock: %w", err)
		}
		return nil
	}, nil
}

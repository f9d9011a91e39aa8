package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

const preferencePrefix = "preference:"

type RedisPreferenceRepository struct {
	client *redis.Client
}

func NewRedisPreferenceRepository(client *redis.Client) *RedisPreferenceRepository {
	return &RedisPreferenceRepository{client: client}
}

func (r *RedisPreferenceRepository) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, preferenceKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get preference %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores the value without expiry.
func (r *RedisPreferenceRepository) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, preferenceKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set preference %s: %w", key, err)
	}
	return nil
}

func preferenceKey(key string) string {
	return preferencePrefix + key
}

// MemoryPreferenceRepository is used when no redis URL is configured.
type MemoryPreferenceRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryPreferenceRepository() *MemoryPreferenceRepository {
	return &MemoryPreferenceRepository{values: make(map[string]string)}
}

func (r *MemoryPreferenceRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok, nil
}

func (r *MemoryPreferenceRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

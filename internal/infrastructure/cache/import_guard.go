package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/orderhub/backend/internal/domain/shared"
)

// RedisImportGuard serializes catalog imports per owner across all
// application instances. The slot is a redis key with a TTL so a
// crashed import frees itself.
type RedisImportGuard struct {
	client *redis.Client
}

func NewRedisImportGuard(client *redis.Client) *RedisImportGuard {
	return &RedisImportGuard{client: client}
}

func guardKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("import:guard:%s", ownerID)
}

// Acquire claims the owner's slot with SET NX. Returns false when
// another task already holds it.
func (g *RedisImportGuard) Acquire(ctx context.Context, ownerID uuid.UUID, taskID string, ttl time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, guardKey(ownerID), taskID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire import guard: %w", err)
	}
	return ok, nil
}

// Current returns the task id holding the owner's slot, or
// shared.ErrNotFound when the slot is free
func (g *RedisImportGuard) Current(ctx context.Context, ownerID uuid.UUID) (string, error) {
	taskID, err := g.client.Get(ctx, guardKey(ownerID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", shared.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read import guard: %w", err)
	}
	return taskID, nil
}

// Release frees the owner's slot
func (g *RedisImportGuard) Release(ctx context.Context, ownerID uuid.UUID) error {
	if err := g.client.Del(ctx, guardKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("failed to release import guard: %w", err)
	}
	return nil
}

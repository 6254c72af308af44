package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/domain"
	"github.com/linuskangsoftware/bubbly/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redisConn *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redisConn.Client(),
		logger: redisConn.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

func waypointsKey(filter string) string {
	if filter == "" {
		return "waypoints:all"
	}
	return "waypoints:user:" + filter
}

// GetWaypoints достаёт снапшот списка waypoints из кеша.
func (r *cacheRepository) GetWaypoints(ctx context.Context, filter string) ([]domain.WaypointWithOwner, error) {
	data, err := r.Get(ctx, waypointsKey(filter))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var waypoints []domain.WaypointWithOwner
	if err := json.Unmarshal(data, &waypoints); err != nil {
		r.logger.Error("Failed to unmarshal waypoints from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal waypoints: %w", err)
	}

	return waypoints, nil
}

// SetWaypoints сохраняет снапшот списка waypoints в кеше.
func (r *cacheRepository) SetWaypoints(ctx context.Context, filter string, waypoints []domain.WaypointWithOwner, ttl time.Duration) error {
	data, err := json.Marshal(waypoints)
	if err != nil {
		r.logger.Error("Failed to marshal waypoints", zap.Error(err))
		return fmt.Errorf("marshal waypoints: %w", err)
	}

	return r.Set(ctx, waypointsKey(filter), data, ttl)
}

// InvalidateWaypoints сбрасывает все снапшоты waypoints и кеш кластеров
// после создания или удаления точки.
func (r *cacheRepository) InvalidateWaypoints(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, "waypoints:*", 100).Result()
		if err != nil {
			r.logger.Error("Failed to scan waypoint cache keys", zap.Error(err))
			return fmt.Errorf("cache scan error: %w", err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache delete error: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	// Кластеры считаются от снапшота, сбрасываем вместе с ним.
	cursor = 0
	for {
		keys, next, err := r.client.Scan(ctx, cursor, "clusters:*", 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan error: %w", err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache delete error: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return nil
}

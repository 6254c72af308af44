package repository

import (
	"context"
	"time"

	"github.com/linuskangsoftware/bubbly/internal/domain"
)

// CacheRepository — байтовый кеш с TTL плюс доменные хелперы для снапшота
// waypoints.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	GetWaypoints(ctx context.Context, filter string) ([]domain.WaypointWithOwner, error)
	SetWaypoints(ctx context.Context, filter string, waypoints []domain.WaypointWithOwner, ttl time.Duration) error
	InvalidateWaypoints(ctx context.Context) error
}

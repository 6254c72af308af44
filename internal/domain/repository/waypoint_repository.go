package repository

import (
	"context"

	"github.com/linuskangsoftware/bubbly/internal/domain"
)

// WaypointRepository — хранилище waypoints. Листинг всегда отсортирован
// по created_at DESC; операции обновления нет.
type WaypointRepository interface {
	// List возвращает все waypoints, либо только добавленные userID,
	// если фильтр не пуст.
	List(ctx context.Context, userID string) ([]domain.WaypointWithOwner, error)
	GetByID(ctx context.Context, id int64) (*domain.Waypoint, error)
	Create(ctx context.Context, wp *domain.Waypoint) (*domain.Waypoint, error)
	Delete(ctx context.Context, id int64) error
}

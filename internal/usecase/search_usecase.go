package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/domain"
	"github.com/linuskangsoftware/bubbly/internal/usecase/dto"
)

// WaypointProvider отдаёт текущий снапшот waypoints для поиска.
type WaypointProvider interface {
	List(ctx context.Context, userID string) ([]domain.WaypointWithOwner, error)
}

// SearchUseCase — подстрочный поиск по именам waypoints.
type SearchUseCase struct {
	waypoints WaypointProvider
	logger    *zap.Logger
	flyZoom   float64
}

func NewSearchUseCase(waypoints WaypointProvider, logger *zap.Logger, flyZoom float64) *SearchUseCase {
	return &SearchUseCase{
		waypoints: waypoints,
		logger:    logger,
		flyZoom:   flyZoom,
	}
}

// Match возвращает waypoints, чьё имя содержит query (без учёта
// регистра), в порядке исходного списка. Пустой query — пустой результат.
func (uc *SearchUseCase) Match(ctx context.Context, query string) ([]domain.WaypointWithOwner, error) {
	if query == "" {
		return []domain.WaypointWithOwner{}, nil
	}

	all, err := uc.waypoints.List(ctx, "")
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matches := make([]domain.WaypointWithOwner, 0)
	for _, wp := range all {
		if strings.Contains(strings.ToLower(wp.Name), needle) {
			matches = append(matches, wp)
		}
	}
	return matches, nil
}

// SelectFirst выбирает первое совпадение: камера летит к точке, над ней
// открывается попап. Если совпадений нет, возвращает nil без ошибки.
func (uc *SearchUseCase) SelectFirst(ctx context.Context, query string) (*dto.SelectionResponse, error) {
	matches, err := uc.Match(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	first := matches[0]
	return &dto.SelectionResponse{
		Waypoint: &first,
		EaseTo: &domain.EaseToEffect{
			Lng:  first.Longitude,
			Lat:  first.Latitude,
			Zoom: uc.flyZoom,
		},
		Popup: &domain.PopupEffect{
			Name: first.Name,
			Lng:  first.Longitude,
			Lat:  first.Latitude,
		},
	}, nil
}

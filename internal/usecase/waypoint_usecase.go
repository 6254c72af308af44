package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/cluster"
	"github.com/linuskangsoftware/bubbly/internal/config"
	"github.com/linuskangsoftware/bubbly/internal/domain"
	"github.com/linuskangsoftware/bubbly/internal/domain/repository"
	"github.com/linuskangsoftware/bubbly/internal/pkg/errors"
	"github.com/linuskangsoftware/bubbly/internal/pkg/utils"
	"github.com/linuskangsoftware/bubbly/internal/usecase/dto"
)

// WaypointUseCase — CRUD по waypoints плюс кластерный индекс карты.
// Индекс живёт в памяти и пересобирается из снапшота после каждой
// мутации; Redis кеширует и снапшот, и отрендеренные кластеры.
type WaypointUseCase struct {
	waypointRepo repository.WaypointRepository
	userRepo     repository.UserRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	mapCfg       config.MapConfig
	snapshotTTL  time.Duration
	clustersTTL  time.Duration

	mu       sync.RWMutex
	index    *cluster.Index
	features []domain.PointFeature
}

func NewWaypointUseCase(
	waypointRepo repository.WaypointRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	mapCfg config.MapConfig,
	cacheCfg config.CacheConfig,
) *WaypointUseCase {
	return &WaypointUseCase{
		waypointRepo: waypointRepo,
		userRepo:     userRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		mapCfg:       mapCfg,
		snapshotTTL:  cacheCfg.WaypointsCacheTTL,
		clustersTTL:  cacheCfg.ClustersCacheTTL,
	}
}

// List возвращает waypoints с данными владельца, сначала новые.
// Пустой userID — все записи, иначе только добавленные этим пользователем.
func (uc *WaypointUseCase) List(ctx context.Context, userID string) ([]domain.WaypointWithOwner, error) {
	cached, err := uc.cacheRepo.GetWaypoints(ctx, userID)
	if err != nil {
		uc.logger.Warn("Failed to read waypoints cache", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	waypoints, err := uc.waypointRepo.List(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to list waypoints", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	if err := uc.cacheRepo.SetWaypoints(ctx, userID, waypoints, uc.snapshotTTL); err != nil {
		uc.logger.Warn("Failed to cache waypoints", zap.Error(err))
	}

	return waypoints, nil
}

// GetByID возвращает один waypoint без агрегатов владельца.
func (uc *WaypointUseCase) GetByID(ctx context.Context, id int64) (*domain.Waypoint, error) {
	return uc.waypointRepo.GetByID(ctx, id)
}

// Create сохраняет новый waypoint и начисляет XP владельцу.
//
// Владелец: addedByUserId из тела имеет приоритет над пользователем
// сессии. actorUserID пуст, когда запрос пришёл по сервисному токену.
func (uc *WaypointUseCase) Create(ctx context.Context, req dto.CreateWaypointRequest, actorUserID string) (*domain.Waypoint, error) {
	if !utils.ValidateCoordinates(req.Latitude, req.Longitude) {
		return nil, errors.ErrInvalidCoordinates
	}

	ownerID := actorUserID
	if req.AddedByUserID != nil && *req.AddedByUserID != "" {
		ownerID = *req.AddedByUserID
	}
	if ownerID == "" {
		// сервисный токен без addedByUserId: владельца взять неоткуда
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"addedByUserId": "required when creating via service token",
		})
	}

	wp := &domain.Waypoint{
		Name:        req.Name,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Description: req.Description,
		Amenities:   req.Amenities,
		Image:       req.Image,
		Maintainer:  req.Maintainer,
	}
	// FK на users, проверяем заранее ради внятной ошибки
	if _, err := uc.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	wp.AddedByUserID = ownerID

	created, err := uc.waypointRepo.Create(ctx, wp)
	if err != nil {
		uc.logger.Error("Failed to create waypoint", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	if uc.mapCfg.ContributionXP != 0 {
		if _, err := uc.userRepo.AdjustXP(ctx, ownerID, uc.mapCfg.ContributionXP); err != nil {
			// waypoint уже записан, XP потерян — не откатываем
			uc.logger.Warn("Failed to grant contribution XP",
				zap.String("user_id", ownerID),
				zap.Error(err))
		}
	}

	uc.invalidate(ctx)

	uc.logger.Info("Waypoint created",
		zap.Int64("id", created.ID),
		zap.String("name", created.Name))

	return created, nil
}

// Delete удаляет waypoint по id.
func (uc *WaypointUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.waypointRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	uc.logger.Info("Waypoint deleted", zap.Int64("id", id))
	return nil
}

// SetWaypoints заменяет точки кластерного индекса проекцией переданного
// списка. Повторный вызов с тем же списком даёт тот же индекс.
func (uc *WaypointUseCase) SetWaypoints(waypoints []domain.Waypoint) {
	features := domain.ProjectWaypoints(waypoints)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.features = features
	uc.index = cluster.New(features, cluster.Options{
		Radius:  uc.mapCfg.ClusterRadius,
		MaxZoom: uc.mapCfg.ClusterMaxZoom,
		Extent:  uc.mapCfg.ClusterExtent,
	})
}

// Features — текущая проекция индекса (для тестов и отладки).
func (uc *WaypointUseCase) Features() []domain.PointFeature {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.features
}

// Clusters возвращает кластеры и одиночные точки в bbox для данного зума
// в формате GeoJSON.
func (uc *WaypointUseCase) Clusters(ctx context.Context, req dto.ClustersRequest) (*dto.FeatureCollection, error) {
	if !utils.ValidateCoordinates(req.South, req.West) || !utils.ValidateCoordinates(req.North, req.East) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateZoom(float64(req.Zoom)) {
		return nil, errors.ErrInvalidZoom
	}

	cacheKey := fmt.Sprintf("clusters:%d:%.4f:%.4f:%.4f:%.4f",
		req.Zoom, req.West, req.South, req.East, req.North)

	if cached, err := uc.cacheRepo.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
		var fc dto.FeatureCollection
		if err := json.Unmarshal(cached, &fc); err == nil {
			return &fc, nil
		}
	}

	idx, err := uc.ensureIndex(ctx)
	if err != nil {
		return nil, err
	}

	features := idx.GetClusters(req.West, req.South, req.East, req.North, req.Zoom)
	fc := dto.NewFeatureCollection(features)

	if data, err := json.Marshal(fc); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.clustersTTL); err != nil {
			uc.logger.Warn("Failed to cache clusters", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	return fc, nil
}

// ExpansionZoom — минимальный зум, на котором кластер распадается.
func (uc *WaypointUseCase) ExpansionZoom(ctx context.Context, clusterID int) (int, error) {
	idx, err := uc.ensureIndex(ctx)
	if err != nil {
		return 0, err
	}
	return idx.GetClusterExpansionZoom(clusterID)
}

// ensureIndex лениво строит индекс из полного списка waypoints.
func (uc *WaypointUseCase) ensureIndex(ctx context.Context) (*cluster.Index, error) {
	uc.mu.RLock()
	idx := uc.index
	uc.mu.RUnlock()
	if idx != nil {
		return idx, nil
	}

	all, err := uc.List(ctx, "")
	if err != nil {
		return nil, err
	}
	waypoints := make([]domain.Waypoint, 0, len(all))
	for _, wp := range all {
		waypoints = append(waypoints, wp.Waypoint)
	}
	uc.SetWaypoints(waypoints)

	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.index, nil
}

// invalidate сбрасывает Redis-снапшоты и in-memory индекс после мутации.
func (uc *WaypointUseCase) invalidate(ctx context.Context) {
	if err := uc.cacheRepo.InvalidateWaypoints(ctx); err != nil {
		uc.logger.Warn("Failed to invalidate waypoints cache", zap.Error(err))
	}
	uc.mu.Lock()
	uc.index = nil
	uc.features = nil
	uc.mu.Unlock()
}

// LayerSpecs — источник и слои кластеризованной карты для maplibre.
// Чистая функция: повторный вызов не добавляет дубликатов слоёв.
func (uc *WaypointUseCase) LayerSpecs() *dto.MapLayersResponse {
	return &dto.MapLayersResponse{
		Source: map[string]interface{}{
			"type":           "geojson",
			"cluster":        true,
			"clusterMaxZoom": uc.mapCfg.ClusterMaxZoom,
			"clusterRadius":  uc.mapCfg.ClusterRadius,
		},
		Layers: []dto.LayerSpec{
			{
				"id":     "clusters",
				"type":   "circle",
				"filter": []interface{}{"has", "point_count"},
				"paint": map[string]interface{}{
					"circle-color": []interface{}{
						"step", []interface{}{"get", "point_count"},
						"#60A5FA", 10, "#3B82F6", 50, "#2563EB", 100, "#1E3A8A",
					},
					"circle-radius": []interface{}{
						"step", []interface{}{"get", "point_count"},
						15, 10, 20, 50, 25,
					},
				},
			},
			{
				"id":     "cluster-count",
				"type":   "symbol",
				"filter": []interface{}{"has", "point_count"},
				"layout": map[string]interface{}{
					"text-field": "{point_count_abbreviated}",
					"text-size":  12,
				},
				"paint": map[string]interface{}{
					"text-color": "#ffffff",
				},
			},
			{
				"id":     "unclustered-point",
				"type":   "circle",
				"filter": []interface{}{"!", []interface{}{"has", "point_count"}},
				"paint": map[string]interface{}{
					"circle-color":        "#00BFFF",
					"circle-radius":       8,
					"circle-stroke-width": 2,
					"circle-stroke-color": "#ffffff",
				},
			},
		},
	}
}

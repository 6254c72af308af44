package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/config"
	"github.com/linuskangsoftware/bubbly/internal/domain"
	"github.com/linuskangsoftware/bubbly/internal/pkg/errors"
	"github.com/linuskangsoftware/bubbly/internal/usecase"
	"github.com/linuskangsoftware/bubbly/internal/usecase/dto"
)

func newWaypointUseCase(
	waypointRepo *MockWaypointRepository,
	userRepo *MockUserRepository,
	cacheRepo *MockCacheRepository,
) *usecase.WaypointUseCase {
	return usecase.NewWaypointUseCase(
		waypointRepo,
		userRepo,
		cacheRepo,
		zap.NewNop(),
		config.MapConfig{ContributionXP: 10, ClusterMaxZoom: 14, ClusterRadius: 50, ClusterExtent: 512},
		config.CacheConfig{},
	)
}

func sampleWaypoints() []domain.WaypointWithOwner {
	return []domain.WaypointWithOwner{
		{Waypoint: domain.Waypoint{ID: 1, Name: "Carlton Gardens Fountain", Latitude: -37.8055, Longitude: 144.9710, AddedByUserID: "u1"}},
		{Waypoint: domain.Waypoint{ID: 2, Name: "Flagstaff Bubbler", Latitude: -37.8105, Longitude: 144.9540, AddedByUserID: "u1"}},
		{Waypoint: domain.Waypoint{ID: 3, Name: "Hyde Park Fountain", Latitude: -33.8731, Longitude: 151.2110, AddedByUserID: "u2"}},
	}
}

func TestWaypointUseCase_List_CacheHit(t *testing.T) {
	waypointRepo := new(MockWaypointRepository)
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)
	uc := newWaypointUseCase(waypointRepo, userRepo, cacheRepo)

	cached := sampleWaypoints()
	cacheRepo.On("GetWaypoints", mock.Anything, "").Return(cached, nil)

	got, err := uc.List(context.Background(), "")

	assert.NoError(t, err)
	assert.Len(t, got, 3)
	waypointRepo.AssertNotCalled(t, "List")
}

func TestWaypointUseCase_List_CacheMiss(t *testing.T) {
	waypointRepo := new(MockWaypointRepository)
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)
	uc := newWaypointUseCase(waypointRepo, userRepo, cacheRepo)

	waypoints := sampleWaypoints()
	cacheRepo.On("GetWaypoints", mock.Anything, "u1").Return(nil, nil)
	waypointRepo.On("List", mock.Anything, "u1").Return(waypoints[:2], nil)
	cacheRepo.On("SetWaypoints", mock.Anything, "u1", mock.Anything, mock.Anything).Return(nil)

	got, err := uc.List(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	waypointRepo.AssertExpectations(t)
	cacheRepo.AssertExpectations(t)
}

func TestWaypointUseCase_Create_GrantsXP(t *testing.T) {
	waypointRepo := new(MockWaypointRepository)
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)
	uc := newWaypointUseCase(waypointRepo, userRepo, cacheRepo)

	userRepo.On("GetByID", mock.Anything, "u1").Return(&domain.User{ID: "u1", Handle: "linus"}, nil)
	waypointRepo.On("Create", mock.Anything, mock.MatchedBy(func(wp *domain.Waypoint) bool {
		return wp.Name == "New Fountain" && wp.AddedByUserID == "u1"
	})).Return(&domain.Waypoint{ID: 42, Name: "New Fountain", AddedByUserID: "u1"}, nil)
	userRepo.On("AdjustXP", mock.Anything, "u1", 10).Return(&domain.User{ID: "u1", XP: 10}, nil)
	cacheRepo.On("InvalidateWaypoints", mock.Anything).Return(nil)

	created, err := uc.Create(context.Background(), dto.CreateWaypointRequest{
		Name:      "New Fountain",
		Latitude:  -37.81,
		Longitude: 144.96,
	}, "u1")

	assert.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	userRepo.AssertExpectations(t)
	cacheRepo.AssertExpectations(t)
}

func TestWaypointUseCase_Create_OverrideOwner(t *testing.T) {
	waypointRepo := new(MockWaypointRepository)
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)
	uc := newWaypointUseCase(waypointRepo, userRepo, cacheRepo)

	override := "u2"
	userRepo.On("GetByID", mock.Anything, "u2").Return(&domain.User{ID: "u2"}, nil)
	waypointRepo.On("Create", mock.Anything, mock.MatchedBy(func(wp *domain.Waypoint) bool {
		return wp.AddedByUserID == "u2"
	})).Return(&domain.Waypoint{ID: 7, AddedByUserID: "u2"}, nil)
	userRepo.On("AdjustXP", mock.Anything, "u2", 10).Return(&domain.User{ID: "u2", XP: 10}, nil)
	cacheRepo.On("InvalidateWaypoints", mock.Anything).Return(nil)

	// addedByUserId из тела важнее пользователя сессии
	_, err := uc.Create(context.Background(), dto.CreateWaypointRequest{
		Name:          "Fountain",
		Latitude:      -37.81,
		Longitude:     144.96,
		AddedByUserID: &override,
	}, "u1")

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestWaypointUseCase_Create_InvalidCoordinates(t *testing.T) {
	waypointRepo := new(MockWaypointRepository)
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)
	uc := newWaypointUseCase(waypointRepo, userRepo, cacheRepo)

	_, err := uc.Create(context.Background(), dto.CreateWaypointRequest{
		Name:      "Nowhere",
		Latitude:  95,
		Longitude: 144.96,
	}, "u1")

	assert.Equal(t, errors.ErrInvalidCoordinates, err)
	waypointRepo.AssertNotCalled(t, "Create")
}

func TestWaypointUseCase_Create_NoOwner(t *testing.T) {
	waypointRepo := new(MockWaypointRepository)
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)
	uc := newWaypointUseCase(waypointRepo, userRepo, cacheRepo)

	// сервисный токен без addedByUserId
	_, err := uc.Create(context.Background(), dto.CreateWaypointRequest{
		Name:      "Fountain",
		Latitude:  -37.81,
		Longitude: 144.96,
	}, "")

	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrInvalidRequest.Code, appErr.Code)
}

func TestWaypointUseCase_Delete_Invalidates(t *testing.T) {
	waypointRepo := new(MockWaypointRepository)
	userRepo := new(MockUserRepository)
	cacheRepo := new(MockCacheRepository)
	uc := newWaypointUseCase(waypointRepo, userRepo, cacheRepo)

	waypointRepo.On("Delete", mock.Anything, int64(5)).Return(nil)
	cacheRepo.On("InvalidateWaypoints", mock.Anything).Return(nil)

	err := uc.Delete(context.Background(), 5)

	assert.NoError(t, err)
	cacheRepo.AssertExpectations(t)
}

func TestWaypointUseCase_SetWaypoints_Projection(t *testing.T) {
	uc := newWaypointUseCase(new(MockWaypointRepository), new(MockUserRepository), new(MockCacheRepository))

	waypoints := []domain.Waypoint{
		{ID: 1, Name: "A", Latitude: -37.8, Longitude: 144.9},
		{ID: 2, Name: "B", Latitude: -33.9, Longitude: 151.2},
	}

	uc.SetWaypoints(waypoints)
	features := uc.Features()

	assert.Len(t, features, 2)
	assert.Equal(t, int64(1), features[0].ID)
	assert.Equal(t, "A", features[0].Name)
	assert.Equal(t, 144.9, features[0].Lng)
	assert.Equal(t, -37.8, features[0].Lat)
}

func TestWaypointUseCase_SetWaypoints_Idempotent(t *testing.T) {
	uc := newWaypointUseCase(new(MockWaypointRepository), new(MockUserRepository), new(MockCacheRepository))

	waypoints := []domain.Waypoint{
		{ID: 1, Name: "A", Latitude: -37.8, Longitude: 144.9},
		{ID: 2, Name: "B", Latitude: -37.81, Longitude: 144.91},
	}

	uc.SetWaypoints(waypoints)
	first := uc.Features()
	uc.SetWaypoints(waypoints)
	second := uc.Features()

	assert.Equal(t, first, second)
}

func TestWaypointUseCase_Clusters(t *testing.T) {
	cacheRepo := new(MockCacheRepository)
	uc := newWaypointUseCase(new(MockWaypointRepository), new(MockUserRepository), cacheRepo)

	var waypoints []domain.Waypoint
	for _, wp := range sampleWaypoints() {
		waypoints = append(waypoints, wp.Waypoint)
	}
	uc.SetWaypoints(waypoints)

	cacheRepo.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
	cacheRepo.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	fc, err := uc.Clusters(context.Background(), dto.ClustersRequest{
		West: 100, South: -45, East: 160, North: -10, Zoom: 3,
	})

	assert.NoError(t, err)
	assert.Equal(t, "FeatureCollection", fc.Type)
	// две мельбурнские точки кластеризуются, сиднейская остаётся одна
	assert.Len(t, fc.Features, 2)
}

func TestWaypointUseCase_Clusters_InvalidZoom(t *testing.T) {
	uc := newWaypointUseCase(new(MockWaypointRepository), new(MockUserRepository), new(MockCacheRepository))

	_, err := uc.Clusters(context.Background(), dto.ClustersRequest{
		West: 100, South: -45, East: 160, North: -10, Zoom: 30,
	})

	assert.Equal(t, errors.ErrInvalidZoom, err)
}

func TestWaypointUseCase_ExpansionZoom_UnknownCluster(t *testing.T) {
	uc := newWaypointUseCase(new(MockWaypointRepository), new(MockUserRepository), new(MockCacheRepository))
	uc.SetWaypoints([]domain.Waypoint{{ID: 1, Name: "A", Latitude: -37.8, Longitude: 144.9}})

	_, err := uc.ExpansionZoom(context.Background(), 999999)

	assert.Equal(t, errors.ErrClusterNotFound, err)
}

func TestWaypointUseCase_LayerSpecs_Stable(t *testing.T) {
	uc := newWaypointUseCase(new(MockWaypointRepository), new(MockUserRepository), new(MockCacheRepository))

	first := uc.LayerSpecs()
	second := uc.LayerSpecs()

	assert.Len(t, first.Layers, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, true, first.Source["cluster"])
}

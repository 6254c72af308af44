package usecase_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/config"
	"github.com/linuskangsoftware/bubbly/internal/domain"
	"github.com/linuskangsoftware/bubbly/internal/pkg/errors"
	"github.com/linuskangsoftware/bubbly/internal/usecase"
)

// MockExpansionZoomResolver is a mock of ExpansionZoomResolver
type MockExpansionZoomResolver struct {
	mock.Mock
}

func (m *MockExpansionZoomResolver) ExpansionZoom(ctx context.Context, clusterID int) (int, error) {
	args := m.Called(ctx, clusterID)
	return args.Int(0), args.Error(1)
}

func newMapController(styles *MockStyleRepository, resolver *MockExpansionZoomResolver) *usecase.MapController {
	return usecase.NewMapController(
		config.MapConfig{DefaultLat: 0, DefaultLng: 0, DefaultZoom: 1, RestoreZoom: 14, FlyZoom: 14},
		styles,
		resolver,
		zap.NewNop(),
	)
}

func TestMapController_DefaultViewport(t *testing.T) {
	c := newMapController(new(MockStyleRepository), new(MockExpansionZoomResolver))

	vp := c.Viewport()

	assert.Equal(t, 0.0, vp.CenterLat)
	assert.Equal(t, 0.0, vp.CenterLng)
	assert.Equal(t, 1.0, vp.Zoom)
}

func TestMapController_RestoreFromURL(t *testing.T) {
	c := newMapController(new(MockStyleRepository), new(MockExpansionZoomResolver))

	q, _ := url.ParseQuery("lat=-37.810000&lng=144.960000&zoom=12.50")
	vp, restored := c.RestoreFromURL(q)

	assert.True(t, restored)
	assert.InDelta(t, -37.81, vp.CenterLat, 1e-6)
	assert.InDelta(t, 144.96, vp.CenterLng, 1e-6)
	assert.InDelta(t, 12.5, vp.Zoom, 1e-6)
}

func TestMapController_RestoreFromURL_LatOnly(t *testing.T) {
	c := newMapController(new(MockStyleRepository), new(MockExpansionZoomResolver))

	// только lat, без lng: восстановление не происходит
	q, _ := url.ParseQuery("lat=-37.810000&zoom=12.50")
	vp, restored := c.RestoreFromURL(q)

	assert.False(t, restored)
	assert.Equal(t, 1.0, vp.Zoom)
	assert.Equal(t, 0.0, vp.CenterLat)
}

func TestMapController_RestoreFromURL_MissingZoom(t *testing.T) {
	c := newMapController(new(MockStyleRepository), new(MockExpansionZoomResolver))

	q, _ := url.ParseQuery("lat=-37.810000&lng=144.960000")
	vp, restored := c.RestoreFromURL(q)

	assert.True(t, restored)
	assert.Equal(t, 14.0, vp.Zoom)
}

func TestMapController_ViewportMoved_RoundTrip(t *testing.T) {
	c := newMapController(new(MockStyleRepository), new(MockExpansionZoomResolver))

	moved := domain.Viewport{CenterLat: -37.8136, CenterLng: 144.9631, Zoom: 13.25}
	effects := c.Dispatch(context.Background(), domain.ViewportMoved{Viewport: moved})

	assert.Len(t, effects, 1)
	replace, ok := effects[0].(domain.ReplaceURLEffect)
	assert.True(t, ok)

	// канонический query восстанавливается в тот же вьюпорт
	q, err := url.ParseQuery(replace.Query)
	assert.NoError(t, err)
	vp, restored := c.RestoreFromURL(q)
	assert.True(t, restored)
	assert.InDelta(t, moved.CenterLat, vp.CenterLat, 1e-6)
	assert.InDelta(t, moved.CenterLng, vp.CenterLng, 1e-6)
	assert.InDelta(t, moved.Zoom, vp.Zoom, 1e-2)
}

func TestMapController_ClusterClicked(t *testing.T) {
	resolver := new(MockExpansionZoomResolver)
	c := newMapController(new(MockStyleRepository), resolver)

	resolver.On("ExpansionZoom", mock.Anything, 1057).Return(9, nil)

	effects := c.Dispatch(context.Background(), domain.ClusterClicked{ClusterID: 1057, Lng: 144.96, Lat: -37.81})

	assert.Len(t, effects, 1)
	ease, ok := effects[0].(domain.EaseToEffect)
	assert.True(t, ok)
	assert.Equal(t, 9.0, ease.Zoom)
	assert.Equal(t, 144.96, ease.Lng)
}

func TestMapController_ClusterClicked_Unknown(t *testing.T) {
	resolver := new(MockExpansionZoomResolver)
	c := newMapController(new(MockStyleRepository), resolver)

	resolver.On("ExpansionZoom", mock.Anything, 42).Return(0, errors.ErrClusterNotFound)

	effects := c.Dispatch(context.Background(), domain.ClusterClicked{ClusterID: 42})

	assert.Empty(t, effects)
}

func TestMapController_PointClicked(t *testing.T) {
	c := newMapController(new(MockStyleRepository), new(MockExpansionZoomResolver))

	effects := c.Dispatch(context.Background(), domain.PointClicked{
		Feature: domain.PointFeature{ID: 3, Name: "Hyde Park Fountain", Lng: 151.211, Lat: -33.8731},
	})

	assert.Len(t, effects, 1)
	popup, ok := effects[0].(domain.PopupEffect)
	assert.True(t, ok)
	assert.Equal(t, "Hyde Park Fountain", popup.Name)
}

func TestMapController_PointClicked_MissingProperties(t *testing.T) {
	c := newMapController(new(MockStyleRepository), new(MockExpansionZoomResolver))

	effects := c.Dispatch(context.Background(), domain.PointClicked{
		Feature: domain.PointFeature{Lng: 151.211, Lat: -33.8731},
	})

	assert.Empty(t, effects)
}

func TestMapController_StyleLoadedDeferral(t *testing.T) {
	c := newMapController(new(MockStyleRepository), new(MockExpansionZoomResolver))

	applied := 0
	c.ApplyWaypoints(func() { applied++ })
	assert.Equal(t, 0, applied)

	c.StyleLoaded()
	assert.Equal(t, 1, applied)

	// повторная загрузка стиля не применяет точки второй раз
	c.StyleLoaded()
	assert.Equal(t, 1, applied)
}

func TestMapController_ApplyAfterStyleLoaded(t *testing.T) {
	c := newMapController(new(MockStyleRepository), new(MockExpansionZoomResolver))

	c.StyleLoaded()

	applied := 0
	c.ApplyWaypoints(func() { applied++ })
	assert.Equal(t, 1, applied)
}

func TestMapController_ApplyReplacesPending(t *testing.T) {
	c := newMapController(new(MockStyleRepository), new(MockExpansionZoomResolver))

	first, second := 0, 0
	c.ApplyWaypoints(func() { first++ })
	c.ApplyWaypoints(func() { second++ })
	c.StyleLoaded()

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestMapController_Teardown(t *testing.T) {
	resolver := new(MockExpansionZoomResolver)
	c := newMapController(new(MockStyleRepository), resolver)

	c.Teardown()

	effects := c.Dispatch(context.Background(), domain.ViewportMoved{
		Viewport: domain.Viewport{CenterLat: 1, CenterLng: 2, Zoom: 3},
	})
	assert.Empty(t, effects)

	applied := 0
	c.ApplyWaypoints(func() { applied++ })
	c.StyleLoaded()
	assert.Equal(t, 0, applied)
}

func TestMapController_SetTheme(t *testing.T) {
	styles := new(MockStyleRepository)
	c := newMapController(styles, new(MockExpansionZoomResolver))

	styles.On("StyleURL", "dark").Return("https://tiles.linus.id.au/styles/dark/style.json")

	before := c.Viewport()
	styleURL := c.SetTheme("dark")

	assert.Equal(t, "https://tiles.linus.id.au/styles/dark/style.json", styleURL)
	assert.Equal(t, "dark", c.Theme())
	// смена темы не трогает вьюпорт
	assert.Equal(t, before, c.Viewport())
}

func TestMapController_SetTheme_UnknownFallsBackToLight(t *testing.T) {
	styles := new(MockStyleRepository)
	c := newMapController(styles, new(MockExpansionZoomResolver))

	styles.On("StyleURL", "light").Return("https://tiles.linus.id.au/styles/light/style.json")

	c.SetTheme("system")

	assert.Equal(t, "light", c.Theme())
}

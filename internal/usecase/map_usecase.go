package usecase

import (
	"context"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/config"
	"github.com/linuskangsoftware/bubbly/internal/domain"
	"github.com/linuskangsoftware/bubbly/internal/domain/repository"
)

// ExpansionZoomResolver отвечает на вопрос "на каком зуме распадается
// кластер". Реализуется WaypointUseCase.
type ExpansionZoomResolver interface {
	ExpansionZoom(ctx context.Context, clusterID int) (int, error)
}

// MapController владеет состоянием карты: вьюпортом, темой и отложенным
// применением точек до загрузки стиля. События приходят явными типами,
// результат — список эффектов; контроллер после Teardown игнорирует всё.
//
// HTTP-сервер его не создаёт: это программная поверхность для встраиваемых
// клиентов карты (по контроллеру на mount), которые транслируют события
// maplibre в Dispatch и исполняют вернувшиеся эффекты.
type MapController struct {
	styles   repository.StyleRepository
	resolver ExpansionZoomResolver
	logger   *zap.Logger
	cfg      config.MapConfig

	mu          sync.Mutex
	viewport    domain.Viewport
	theme       string
	styleLoaded bool
	loadFired   bool
	live        bool
	pending     func()
}

func NewMapController(
	cfg config.MapConfig,
	styles repository.StyleRepository,
	resolver ExpansionZoomResolver,
	logger *zap.Logger,
) *MapController {
	return &MapController{
		styles:   styles,
		resolver: resolver,
		logger:   logger,
		cfg:      cfg,
		viewport: domain.Viewport{
			CenterLat: cfg.DefaultLat,
			CenterLng: cfg.DefaultLng,
			Zoom:      cfg.DefaultZoom,
		},
		theme: "light",
		live:  true,
	}
}

// Viewport — текущая позиция камеры.
func (c *MapController) Viewport() domain.Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// RestoreFromURL восстанавливает вьюпорт из query string. Частичные
// параметры (только lat или только lng) игнорируются целиком; зум без
// координат тоже не применяется.
func (c *MapController) RestoreFromURL(q url.Values) (domain.Viewport, bool) {
	def := domain.Viewport{
		CenterLat: c.cfg.DefaultLat,
		CenterLng: c.cfg.DefaultLng,
		Zoom:      c.cfg.DefaultZoom,
	}
	vp, restored := domain.RestoreViewport(q, def, c.cfg.RestoreZoom)

	c.mu.Lock()
	c.viewport = vp
	c.mu.Unlock()

	return vp, restored
}

// URLQuery — канонический query string текущего вьюпорта.
func (c *MapController) URLQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport.QueryString()
}

// Theme — активная тема.
func (c *MapController) Theme() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// SetTheme переключает тему и возвращает URL нового стиля. Вьюпорт
// смена стиля не трогает.
func (c *MapController) SetTheme(theme string) string {
	if theme != "dark" {
		theme = "light"
	}
	c.mu.Lock()
	c.theme = theme
	c.mu.Unlock()
	return c.styles.StyleURL(theme)
}

// StyleURL — URL стиля для произвольной темы, без смены состояния.
func (c *MapController) StyleURL(theme string) string {
	return c.styles.StyleURL(theme)
}

// ApplyWaypoints планирует применение точек к карте. Если стиль уже
// загружен, apply выполняется сразу; иначе откладывается до StyleLoaded.
// Повторный вызов заменяет отложенную функцию, а не добавляет вторую.
func (c *MapController) ApplyWaypoints(apply func()) {
	c.mu.Lock()
	if !c.live {
		c.mu.Unlock()
		return
	}
	if c.styleLoaded {
		c.mu.Unlock()
		apply()
		return
	}
	c.pending = apply
	c.mu.Unlock()
}

// StyleLoaded отмечает загрузку стиля и выполняет отложенное применение
// точек ровно один раз. Повторные вызовы — no-op.
func (c *MapController) StyleLoaded() {
	c.mu.Lock()
	if !c.live || c.loadFired {
		c.mu.Unlock()
		return
	}
	c.loadFired = true
	c.styleLoaded = true
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	if pending != nil {
		pending()
	}
}

// Dispatch обрабатывает событие карты и возвращает эффекты. После
// Teardown всегда возвращает пустой список.
func (c *MapController) Dispatch(ctx context.Context, event domain.MapEvent) []domain.MapEffect {
	c.mu.Lock()
	if !c.live {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	switch e := event.(type) {
	case domain.ViewportMoved:
		c.mu.Lock()
		c.viewport = e.Viewport
		query := c.viewport.QueryString()
		c.mu.Unlock()
		return []domain.MapEffect{domain.ReplaceURLEffect{Query: query}}

	case domain.ClusterClicked:
		zoom, err := c.resolver.ExpansionZoom(ctx, e.ClusterID)
		if err != nil {
			// кластер мог исчезнуть между рендером и кликом
			c.logger.Debug("Cluster expansion lookup failed",
				zap.Int("cluster_id", e.ClusterID),
				zap.Error(err))
			return nil
		}
		return []domain.MapEffect{domain.EaseToEffect{
			Lng:  e.Lng,
			Lat:  e.Lat,
			Zoom: float64(zoom),
		}}

	case domain.PointClicked:
		if e.Feature.ID == 0 || e.Feature.Name == "" {
			return nil
		}
		return []domain.MapEffect{domain.PopupEffect{
			Name: e.Feature.Name,
			Lng:  e.Feature.Lng,
			Lat:  e.Feature.Lat,
		}}
	}

	return nil
}

// Teardown переводит контроллер в мёртвое состояние: события и
// отложенные применения больше не обрабатываются.
func (c *MapController) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.live = false
	c.pending = nil
}

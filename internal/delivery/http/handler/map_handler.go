package handler

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/config"
	"github.com/linuskangsoftware/bubbly/internal/domain"
	"github.com/linuskangsoftware/bubbly/internal/domain/repository"
	"github.com/linuskangsoftware/bubbly/internal/pkg/errors"
	"github.com/linuskangsoftware/bubbly/internal/pkg/utils"
	"github.com/linuskangsoftware/bubbly/internal/usecase"
	"github.com/linuskangsoftware/bubbly/internal/usecase/dto"
)

// MapHandler - обработчик карты: стили, слои, кластеры, viewport
type MapHandler struct {
	waypointUC *usecase.WaypointUseCase
	styles     repository.StyleRepository
	mapCfg     config.MapConfig
	logger     *zap.Logger
}

func NewMapHandler(
	waypointUC *usecase.WaypointUseCase,
	styles repository.StyleRepository,
	mapCfg config.MapConfig,
	logger *zap.Logger,
) *MapHandler {
	return &MapHandler{
		waypointUC: waypointUC,
		styles:     styles,
		mapCfg:     mapCfg,
		logger:     logger,
	}
}

// Style godoc
// @Summary URL стиля карты
// @Description Возвращает URL style.json тайлсервера для светлой или тёмной темы. Неизвестная тема трактуется как light.
// @Tags Map
// @Produce json
// @Param theme query string false "Тема (light или dark)" default(light)
// @Success 200 {object} utils.SuccessResponse{data=dto.StyleResponse}
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/map/style [get]
func (h *MapHandler) Style(c *fiber.Ctx) error {
	theme := c.Query("theme", "light")
	if theme != "dark" {
		theme = "light"
	}

	if err := h.styles.Probe(c.Context(), theme); err != nil {
		h.logger.Warn("Tile server probe failed", zap.String("theme", theme), zap.Error(err))
		return utils.SendError(c, errors.ErrStyleUnavailable)
	}

	return utils.SendSuccess(c, dto.StyleResponse{
		Theme: theme,
		URL:   h.styles.StyleURL(theme),
	}, nil)
}

// Layers godoc
// @Summary Слои кластеризованной карты
// @Description Возвращает конфигурацию geojson-источника и три слоя maplibre: круги кластеров, подписи количества и некластеризованные точки.
// @Tags Map
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.MapLayersResponse}
// @Router /api/v1/map/layers [get]
func (h *MapHandler) Layers(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.waypointUC.LayerSpecs(), nil)
}

// Clusters godoc
// @Summary Кластеры в bbox
// @Description Возвращает GeoJSON с кластерами и одиночными точками в заданном bbox для заданного зума.
// @Tags Map
// @Produce json
// @Param west query number true "Западная граница"
// @Param south query number true "Южная граница"
// @Param east query number true "Восточная граница"
// @Param north query number true "Северная граница"
// @Param zoom query int true "Зум (0-24)"
// @Success 200 {object} dto.FeatureCollection
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/map/clusters [get]
func (h *MapHandler) Clusters(c *fiber.Ctx) error {
	req := dto.ClustersRequest{
		West:  c.QueryFloat("west"),
		South: c.QueryFloat("south"),
		East:  c.QueryFloat("east"),
		North: c.QueryFloat("north"),
		Zoom:  c.QueryInt("zoom"),
	}

	fc, err := h.waypointUC.Clusters(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	// GeoJSON отдаётся без конверта, maplibre читает его напрямую
	return c.JSON(fc)
}

// ExpansionZoom godoc
// @Summary Зум распада кластера
// @Description Минимальный зум, на котором кластер распадается на части.
// @Tags Map
// @Produce json
// @Param id path int true "ID кластера"
// @Success 200 {object} utils.SuccessResponse{data=dto.ExpansionZoomResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/map/clusters/{id}/expansion-zoom [get]
func (h *MapHandler) ExpansionZoom(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	zoom, err := h.waypointUC.ExpansionZoom(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ExpansionZoomResponse{ClusterID: id, Zoom: zoom}, nil)
}

// Viewport godoc
// @Summary Восстановление viewport из query
// @Description Разбирает lat/lng/zoom из query string. Viewport применяется только при обеих валидных координатах; отсутствующий zoom заменяется на 14. Возвращает итоговый viewport и канонический query.
// @Tags Map
// @Produce json
// @Param lat query number false "Широта центра"
// @Param lng query number false "Долгота центра"
// @Param zoom query number false "Зум"
// @Success 200 {object} utils.SuccessResponse{data=dto.ViewportResponse}
// @Router /api/v1/map/viewport [get]
func (h *MapHandler) Viewport(c *fiber.Ctx) error {
	def := domain.Viewport{
		CenterLat: h.mapCfg.DefaultLat,
		CenterLng: h.mapCfg.DefaultLng,
		Zoom:      h.mapCfg.DefaultZoom,
	}

	q := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		q.Add(string(key), string(value))
	})

	vp, restored := domain.RestoreViewport(q, def, h.mapCfg.RestoreZoom)

	return utils.SendSuccess(c, dto.ViewportResponse{
		Latitude:  vp.CenterLat,
		Longitude: vp.CenterLng,
		Zoom:      vp.Zoom,
		Restored:  restored,
		Query:     vp.QueryString(),
	}, nil)
}

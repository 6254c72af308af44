package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/pkg/utils"
)

// HealthChecker пингует внешнюю зависимость.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// MetaHandler - обработчик служебных эндпоинтов: health и meta
type MetaHandler struct {
	version string
	db      HealthChecker
	cache   HealthChecker
	logger  *zap.Logger
}

func NewMetaHandler(version string, db, cache HealthChecker, logger *zap.Logger) *MetaHandler {
	return &MetaHandler{
		version: version,
		db:      db,
		cache:   cache,
		logger:  logger,
	}
}

// Health godoc
// @Summary Проверка живости
// @Description Пингует PostgreSQL и Redis; degraded при недоступности любой из зависимостей.
// @Tags Meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *MetaHandler) Health(c *fiber.Ctx) error {
	status := "healthy"
	deps := fiber.Map{}

	if err := h.db.Health(c.Context()); err != nil {
		h.logger.Warn("Postgres health check failed", zap.Error(err))
		status = "degraded"
		deps["postgres"] = "down"
	} else {
		deps["postgres"] = "up"
	}

	if err := h.cache.Health(c.Context()); err != nil {
		h.logger.Warn("Redis health check failed", zap.Error(err))
		status = "degraded"
		deps["redis"] = "down"
	} else {
		deps["redis"] = "up"
	}

	return c.JSON(fiber.Map{
		"status":       status,
		"dependencies": deps,
		"time":         time.Now(),
	})
}

// Meta godoc
// @Summary Метаданные приложения
// @Tags Meta
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/meta [get]
func (h *MetaHandler) Meta(c *fiber.Ctx) error {
	return utils.SendSuccess(c, fiber.Map{
		"name":        "bubbly",
		"version":     h.version,
		"description": "Find and contribute drinking water fountains near you",
		"author":      "Linus Kang Software",
		"license":     "CC BY-NC 4.0",
		"repository":  "https://github.com/linuskangsoftware/bubbly",
	}, nil)
}

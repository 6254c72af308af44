package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/delivery/http/middleware"
	"github.com/linuskangsoftware/bubbly/internal/pkg/errors"
	"github.com/linuskangsoftware/bubbly/internal/pkg/utils"
	"github.com/linuskangsoftware/bubbly/internal/pkg/validator"
	"github.com/linuskangsoftware/bubbly/internal/usecase"
	"github.com/linuskangsoftware/bubbly/internal/usecase/dto"
)

// WaypointHandler - обработчик для waypoints
type WaypointHandler struct {
	waypointUC *usecase.WaypointUseCase
	logger     *zap.Logger
}

func NewWaypointHandler(waypointUC *usecase.WaypointUseCase, logger *zap.Logger) *WaypointHandler {
	return &WaypointHandler{
		waypointUC: waypointUC,
		logger:     logger,
	}
}

// List godoc
// @Summary Список waypoints
// @Description Возвращает все waypoints с данными владельца и счётчиками избранного и отзывов, новые первыми. Параметр userId ограничивает выдачу одним автором.
// @Tags Waypoints
// @Produce json
// @Param userId query string false "Фильтр по автору"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.WaypointWithOwner}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/waypoints [get]
func (h *WaypointHandler) List(c *fiber.Ctx) error {
	userID := c.Query("userId")

	waypoints, err := h.waypointUC.List(c.Context(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, waypoints, &utils.Meta{Total: len(waypoints)})
}

// Create godoc
// @Summary Создать waypoint
// @Description Создаёт новый waypoint. Требуется сессия или сервисный токен; автору начисляется XP за вклад.
// @Tags Waypoints
// @Accept json
// @Produce json
// @Param request body dto.CreateWaypointRequest true "Новый waypoint"
// @Success 201 {object} utils.SuccessResponse{data=domain.Waypoint}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/waypoints [post]
// @Security BearerAuth
func (h *WaypointHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateWaypointRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	created, err := h.waypointUC.Create(c.Context(), req, middleware.SessionUserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, created)
}

// Delete godoc
// @Summary Удалить waypoint
// @Description Удаляет waypoint по id. Доступно только с сервисным токеном.
// @Tags Waypoints
// @Produce json
// @Param id path int true "ID waypoint"
// @Success 200 {object} utils.SuccessResponse{data=dto.DeleteWaypointResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/waypoints/{id} [delete]
// @Security BearerAuth
func (h *WaypointHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return utils.SendError(c, errors.ErrInvalidWaypointID)
	}

	if err := h.waypointUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.DeleteWaypointResponse{Message: "Waypoint deleted"}, nil)
}

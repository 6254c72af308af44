package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/delivery/http/middleware"
	"github.com/linuskangsoftware/bubbly/internal/pkg/errors"
	"github.com/linuskangsoftware/bubbly/internal/pkg/utils"
	"github.com/linuskangsoftware/bubbly/internal/pkg/validator"
	"github.com/linuskangsoftware/bubbly/internal/usecase"
	"github.com/linuskangsoftware/bubbly/internal/usecase/dto"
)

// UserHandler - обработчик профилей пользователей
type UserHandler struct {
	userUC *usecase.UserUseCase
	logger *zap.Logger
}

func NewUserHandler(userUC *usecase.UserUseCase, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userUC: userUC,
		logger: logger,
	}
}

// List godoc
// @Summary Список пользователей
// @Description Возвращает публичные профили всех пользователей.
// @Tags Users
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.User}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, users, &utils.Meta{Total: len(users)})
}

// Search godoc
// @Summary Поиск пользователей
// @Description Ищет по подстроке handle или displayName без учёта регистра, сортировка по XP.
// @Tags Users
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Param limit query int false "Максимум результатов" default(20)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.User}
// @Router /api/v1/users/search [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	users, err := h.userUC.Search(c.Context(), c.Query("q"), c.QueryInt("limit"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, users, &utils.Meta{Total: len(users)})
}

// Top godoc
// @Summary Лидерборд по XP
// @Tags Users
// @Produce json
// @Param limit query int false "Максимум результатов" default(10)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.User}
// @Router /api/v1/users/top [get]
func (h *UserHandler) Top(c *fiber.Ctx) error {
	users, err := h.userUC.Top(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, users, &utils.Meta{Total: len(users)})
}

// GetByHandle godoc
// @Summary Профиль по handle
// @Tags Users
// @Produce json
// @Param handle path string true "Handle пользователя"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{handle} [get]
func (h *UserHandler) GetByHandle(c *fiber.Ctx) error {
	user, err := h.userUC.GetByHandle(c.Context(), c.Params("handle"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// Update godoc
// @Summary Обновить свой профиль
// @Description Частичное обновление: отсутствующие в теле ключи не трогают поля профиля.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Изменяемые поля"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/users/update [post]
// @Security BearerAuth
func (h *UserHandler) Update(c *fiber.Ctx) error {
	userID := middleware.SessionUserID(c)
	if userID == "" {
		return utils.SendError(c, errors.ErrUnauthorized)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	user, err := h.userUC.UpdateProfile(c.Context(), userID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, user, nil)
}

// AdjustXP godoc
// @Summary Изменить XP пользователя
// @Description Прибавляет delta к XP (может быть отрицательной). Только сервисный токен.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param request body dto.AdjustXPRequest true "Дельта XP"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{id}/xp [post]
// @Security BearerAuth
func (h *UserHandler) AdjustXP(c *fiber.Ctx) error {
	var req dto.AdjustXPRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	user, err := h.userUC.AdjustXP(c.Context(), c.Params("id"), req.Delta)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, user, nil)
}

// SetModerator godoc
// @Summary Флаг модератора
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param request body dto.SetModeratorRequest true "Значение флага"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{id}/moderator [post]
// @Security BearerAuth
func (h *UserHandler) SetModerator(c *fiber.Ctx) error {
	var req dto.SetModeratorRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	id := c.Params("id")
	if err := h.userUC.SetModerator(c.Context(), id, req.Moderator); err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.userUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// SetVerified godoc
// @Summary Флаг верификации
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "ID пользователя"
// @Param request body dto.SetVerifiedRequest true "Значение флага"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{id}/verified [post]
// @Security BearerAuth
func (h *UserHandler) SetVerified(c *fiber.Ctx) error {
	var req dto.SetVerifiedRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	id := c.Params("id")
	if err := h.userUC.SetVerified(c.Context(), id, req.Verified); err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.userUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// Delete godoc
// @Summary Удалить пользователя
// @Tags Users
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{id} [delete]
// @Security BearerAuth
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.userUC.Delete(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"message": "User deleted"}, nil)
}

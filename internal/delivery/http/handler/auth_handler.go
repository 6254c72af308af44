package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/auth"
	"github.com/linuskangsoftware/bubbly/internal/pkg/errors"
	"github.com/linuskangsoftware/bubbly/internal/pkg/utils"
	"github.com/linuskangsoftware/bubbly/internal/pkg/validator"
	"github.com/linuskangsoftware/bubbly/internal/usecase"
	"github.com/linuskangsoftware/bubbly/internal/usecase/dto"
)

// AuthHandler - обработчик входа
type AuthHandler struct {
	userUC  *usecase.UserUseCase
	authSvc *auth.Service
	logger  *zap.Logger
}

func NewAuthHandler(userUC *usecase.UserUseCase, authSvc *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userUC:  userUC,
		authSvc: authSvc,
		logger:  logger,
	}
}

// SignIn godoc
// @Summary Вход по handle
// @Description Находит пользователя по handle или создаёт нового и возвращает сессионный токен.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Handle пользователя"
// @Success 200 {object} utils.SuccessResponse{data=dto.SignInResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/auth/signin [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		}))
	}

	user, err := h.userUC.SignIn(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	token, err := h.authSvc.Issue(user.ID)
	if err != nil {
		h.logger.Error("Failed to issue session token", zap.String("user_id", user.ID), zap.Error(err))
		return utils.SendError(c, errors.ErrInternalServer)
	}

	return utils.SendSuccess(c, dto.SignInResponse{Token: token, User: user}, nil)
}

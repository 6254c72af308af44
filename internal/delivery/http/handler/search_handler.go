package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/pkg/utils"
	"github.com/linuskangsoftware/bubbly/internal/usecase"
)

// SearchHandler - обработчик поиска по waypoints
type SearchHandler struct {
	searchUC *usecase.SearchUseCase
	logger   *zap.Logger
}

func NewSearchHandler(searchUC *usecase.SearchUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// Search godoc
// @Summary Поиск waypoints по имени
// @Description Подстрочный поиск по именам waypoints без учёта регистра. Пустой запрос возвращает пустой список. С параметром fly=1 в ответ добавляются эффекты выбора первого совпадения: перелёт камеры и попап.
// @Tags Search
// @Produce json
// @Param q query string false "Поисковый запрос"
// @Param fly query bool false "Добавить эффекты выбора первого совпадения"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.WaypointWithOwner}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/search/waypoints [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")

	if c.QueryBool("fly") {
		selection, err := h.searchUC.SelectFirst(c.Context(), query)
		if err != nil {
			return utils.SendError(c, err)
		}
		return utils.SendSuccess(c, selection, nil)
	}

	matches, err := h.searchUC.Match(c.Context(), query)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, matches, &utils.Meta{Total: len(matches)})
}

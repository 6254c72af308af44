package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/linuskangsoftware/bubbly/internal/auth"
	"github.com/linuskangsoftware/bubbly/internal/pkg/errors"
	"github.com/linuskangsoftware/bubbly/internal/pkg/utils"
)

// UserIDKey — ключ locals с id пользователя текущей сессии.
const UserIDKey = "user_id"

// Session требует валидный сессионный JWT в Authorization: Bearer.
func Session(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := auth.BearerFromHeader(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		userID, err := svc.Verify(token)
		if err != nil {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// ServiceToken требует сервисный API-токен в Authorization: Bearer.
// Сессионные JWT здесь не принимаются.
func ServiceToken(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !svc.ValidServiceToken(c.Get(fiber.HeaderAuthorization)) {
			return utils.SendError(c, errors.ErrInvalidAPIToken)
		}
		return c.Next()
	}
}

// SessionOrServiceToken пропускает либо сессию, либо сервисный токен.
// При сессии в locals кладётся id пользователя; при сервисном токене
// locals остаётся пустым.
func SessionOrServiceToken(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)

		if svc.ValidServiceToken(header) {
			return c.Next()
		}

		if token := auth.BearerFromHeader(header); token != "" {
			if userID, err := svc.Verify(token); err == nil {
				c.Locals(UserIDKey, userID)
				return c.Next()
			}
		}

		return utils.SendError(c, errors.ErrUnauthorized)
	}
}

// SessionUserID достаёт id пользователя из locals; пустая строка — запрос
// пришёл по сервисному токену.
func SessionUserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(UserIDKey).(string); ok {
		return v
	}
	return ""
}

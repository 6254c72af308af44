// Package auth — пользовательские сессии (HS256 JWT) и сервисный
// API-токен для межсервисных вызовов.
package auth

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/linuskangsoftware/bubbly/internal/config"
	"github.com/linuskangsoftware/bubbly/internal/pkg/errors"
)

// Claims — полезная нагрузка сессионного токена.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

type Service struct {
	secret     []byte
	apiToken   string
	sessionTTL time.Duration
}

func NewService(cfg *config.AuthConfig) *Service {
	return &Service{
		secret:     []byte(cfg.JWTSecret),
		apiToken:   cfg.APIToken,
		sessionTTL: cfg.SessionTTL,
	}
}

// Issue выпускает сессионный токен для пользователя.
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify проверяет сессионный токен и возвращает id пользователя.
func (s *Service) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil {
		return "", errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return "", errors.ErrUnauthorized
	}

	return claims.UserID, nil
}

// ValidServiceToken сравнивает Authorization-заголовок с сервисным токеном.
// Сравнение за константное время.
func (s *Service) ValidServiceToken(header string) bool {
	token := BearerFromHeader(header)
	if token == "" || s.apiToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.apiToken)) == 1
}

// BearerFromHeader извлекает токен из "Bearer <token>".
func BearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

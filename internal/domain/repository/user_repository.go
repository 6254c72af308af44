package repository

import (
	"context"

	"github.com/linuskangsoftware/bubbly/internal/domain"
)

// UserRepository — хранилище профилей пользователей.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByHandle(ctx context.Context, handle string) (*domain.User, error)
	// Search ищет по handle и displayName (подстрока, без учёта регистра),
	// сортировка по xp DESC.
	Search(ctx context.Context, query string, limit int) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch domain.ProfilePatch) (*domain.User, error)
	AdjustXP(ctx context.Context, id string, delta int) (*domain.User, error)
	SetModerator(ctx context.Context, id string, moderator bool) error
	SetVerified(ctx context.Context, id string, verified bool) error
	Delete(ctx context.Context, id string) error
	Top(ctx context.Context, limit int) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}

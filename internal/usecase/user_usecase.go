package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/domain"
	"github.com/linuskangsoftware/bubbly/internal/domain/repository"
	"github.com/linuskangsoftware/bubbly/internal/pkg/errors"
	"github.com/linuskangsoftware/bubbly/internal/usecase/dto"
)

const defaultSearchLimit = 20

// UserUseCase — профили пользователей: вход, патч профиля, XP,
// модераторские флаги.
type UserUseCase struct {
	userRepo         repository.UserRepository
	logger           *zap.Logger
	legacyFalsyPatch bool
}

func NewUserUseCase(userRepo repository.UserRepository, logger *zap.Logger, legacyFalsyPatch bool) *UserUseCase {
	return &UserUseCase{
		userRepo:         userRepo,
		logger:           logger,
		legacyFalsyPatch: legacyFalsyPatch,
	}
}

// SignIn находит пользователя по handle или создаёт его. Handle
// нормализуется к нижнему регистру.
func (uc *UserUseCase) SignIn(ctx context.Context, req dto.SignInRequest) (*domain.User, error) {
	handle := strings.ToLower(strings.TrimSpace(req.Handle))
	if handle == "" {
		return nil, errors.ErrInvalidRequest
	}

	user, err := uc.userRepo.GetByHandle(ctx, handle)
	if err == nil {
		return user, nil
	}
	if err != errors.ErrUserNotFound {
		return nil, err
	}

	created, err := uc.userRepo.Create(ctx, &domain.User{
		ID:          uuid.NewString(),
		Handle:      handle,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("User created", zap.String("id", created.ID), zap.String("handle", created.Handle))
	return created, nil
}

func (uc *UserUseCase) List(ctx context.Context) ([]domain.User, error) {
	return uc.userRepo.List(ctx)
}

func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *UserUseCase) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	return uc.userRepo.GetByHandle(ctx, strings.ToLower(handle))
}

// Search ищет по подстроке handle или displayName без учёта регистра.
func (uc *UserUseCase) Search(ctx context.Context, query string, limit int) ([]domain.User, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.User{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = defaultSearchLimit
	}
	return uc.userRepo.Search(ctx, query, limit)
}

// UpdateProfile применяет частичный патч. Отсутствующие ключи не трогают
// поля; в legacy-режиме пустые строки тоже пропускаются.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, id string, req dto.UpdateProfileRequest) (*domain.User, error) {
	patch := req.ToPatch(uc.legacyFalsyPatch)
	if patch.Handle != nil {
		normalized := strings.ToLower(strings.TrimSpace(*patch.Handle))
		patch.Handle = &normalized
	}
	if patch.Empty() {
		// Патч без полей возвращает профиль как есть
		return uc.userRepo.GetByID(ctx, id)
	}

	user, err := uc.userRepo.UpdateProfile(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Profile updated", zap.String("id", id))
	return user, nil
}

// AdjustXP изменяет XP на дельту и возвращает обновлённый профиль.
func (uc *UserUseCase) AdjustXP(ctx context.Context, id string, delta int) (*domain.User, error) {
	user, err := uc.userRepo.AdjustXP(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("XP adjusted", zap.String("id", id), zap.Int("delta", delta), zap.Int("xp", user.XP))
	return user, nil
}

func (uc *UserUseCase) SetModerator(ctx context.Context, id string, moderator bool) error {
	return uc.userRepo.SetModerator(ctx, id, moderator)
}

func (uc *UserUseCase) SetVerified(ctx context.Context, id string, verified bool) error {
	return uc.userRepo.SetVerified(ctx, id, verified)
}

func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("User deleted", zap.String("id", id))
	return nil
}

// Top — лидерборд по XP.
func (uc *UserUseCase) Top(ctx context.Context, limit int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return uc.userRepo.Top(ctx, limit)
}

func (uc *UserUseCase) Count(ctx context.Context) (int, error) {
	return uc.userRepo.Count(ctx)
}

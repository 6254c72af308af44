package dto

import "github.com/linuskangsoftware/bubbly/internal/domain"

// SignInRequest — вход по handle. Если пользователя нет, он создаётся.
type SignInRequest struct {
	Handle      string  `json:"handle" validate:"required,min=2,max=32"`
	DisplayName *string `json:"displayName"`
}

// SignInResponse содержит сессионный токен и профиль.
type SignInResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// UpdateProfileRequest — частичное обновление профиля. Отличаем
// "ключ отсутствует" (nil) от "явно передана пустая строка".
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	Handle      *string `json:"handle" validate:"omitempty,min=2,max=32"`
	Bio         *string `json:"bio" validate:"omitempty,max=512"`
	Image       *string `json:"image"`
}

// ToPatch переводит запрос в доменный патч. В legacy-режиме пустые
// строки считаются отсутствующими, как это делал старый API.
func (r *UpdateProfileRequest) ToPatch(legacyFalsy bool) domain.ProfilePatch {
	patch := domain.ProfilePatch{
		DisplayName: r.DisplayName,
		Handle:      r.Handle,
		Bio:         r.Bio,
		Image:       r.Image,
	}
	if legacyFalsy {
		patch.DisplayName = dropEmpty(patch.DisplayName)
		patch.Handle = dropEmpty(patch.Handle)
		patch.Bio = dropEmpty(patch.Bio)
		patch.Image = dropEmpty(patch.Image)
	}
	return patch
}

func dropEmpty(s *string) *string {
	if s != nil && *s == "" {
		return nil
	}
	return s
}

// AdjustXPRequest — изменение XP на дельту (может быть отрицательной
// или нулевой, required тут не подходит).
type AdjustXPRequest struct {
	Delta int `json:"delta"`
}

// SetModeratorRequest — выдача или снятие флага модератора.
type SetModeratorRequest struct {
	Moderator bool `json:"moderator"`
}

// SetVerifiedRequest — выдача или снятие флага верификации.
type SetVerifiedRequest struct {
	Verified bool `json:"verified"`
}

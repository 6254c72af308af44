package domain

import "time"

// User — публичный профиль пользователя. Поле id — строковый идентификатор
// (UUID), handle — уникальное публичное имя.
type User struct {
	ID          string    `json:"id" db:"id"`
	Handle      string    `json:"handle" db:"handle"`
	DisplayName *string   `json:"displayName" db:"display_name"`
	Bio         *string   `json:"bio" db:"bio"`
	Image       *string   `json:"image" db:"image"`
	Verified    bool      `json:"verified" db:"verified"`
	Moderator   bool      `json:"moderator" db:"moderator"`
	XP          int       `json:"xp" db:"xp"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ProfilePatch — частичное обновление профиля. nil означает "поле не
// передано": присутствующее в запросе пустое значение перезаписывает поле.
type ProfilePatch struct {
	DisplayName *string
	Handle      *string
	Bio         *string
	Image       *string
}

// Empty сообщает, есть ли в патче хоть одно поле.
func (p ProfilePatch) Empty() bool {
	return p.DisplayName == nil && p.Handle == nil && p.Bio == nil && p.Image == nil
}

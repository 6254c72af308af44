package domain

import "time"

// Waypoint — точка на карте (питьевой фонтан). После создания не изменяется:
// операции обновления нет ни в API, ни в хранилище.
type Waypoint struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Latitude      float64   `json:"latitude" db:"latitude"`
	Longitude     float64   `json:"longitude" db:"longitude"`
	Description   *string   `json:"description" db:"description"`
	Amenities     []string  `json:"amenities" db:"-"`
	Image         *string   `json:"image" db:"image"`
	Maintainer    *string   `json:"maintainer" db:"maintainer"`
	AddedByUserID string    `json:"addedByUserId" db:"added_by_user_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// WaypointOwner — краткая карточка пользователя, добавившего waypoint.
type WaypointOwner struct {
	ID          string  `json:"id" db:"id"`
	Handle      string  `json:"handle" db:"handle"`
	DisplayName *string `json:"displayName" db:"display_name"`
	Image       *string `json:"image" db:"image"`
}

// WaypointWithOwner — waypoint вместе с владельцем и счётчиками связей,
// как его отдаёт листинг /waypoints.
type WaypointWithOwner struct {
	Waypoint
	AddedBy       WaypointOwner `json:"addedBy"`
	FavoriteCount int           `json:"favoriteCount" db:"favorite_count"`
	ReviewCount   int           `json:"reviewCount" db:"review_count"`
}

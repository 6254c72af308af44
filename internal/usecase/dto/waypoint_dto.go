package dto

// CreateWaypointRequest — тело POST /waypoints. AddedByUserID учитывается
// только при валидном сервисном токене или активной сессии.
type CreateWaypointRequest struct {
	// validate:"required" на координатах нельзя: нулевое значение — это
	// валидная точка (экватор, нулевой меридиан). Диапазон проверяет usecase.
	Name          string   `json:"name" validate:"required"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Description   *string  `json:"description"`
	Amenities     []string `json:"amenities"`
	Image         *string  `json:"image"`
	Maintainer    *string  `json:"maintainer"`
	AddedByUserID *string  `json:"addedByUserId"`
}

// DeleteWaypointResponse — ответ успешного удаления.
type DeleteWaypointResponse struct {
	Message string `json:"message"`
}

package utils

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// ValidateZoom проверяет валидность zoom level (0 - 24, диапазон maplibre)
func ValidateZoom(zoom float64) bool {
	return zoom >= 0 && zoom <= 24
}

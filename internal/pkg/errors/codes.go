package errors

import "net/http"

var (
	ErrWaypointNotFound = New(
		"WAYPOINT_NOT_FOUND",
		"Waypoint not found",
		http.StatusNotFound,
	)

	ErrUserNotFound = New(
		"USER_NOT_FOUND",
		"User not found",
		http.StatusNotFound,
	)

	ErrClusterNotFound = New(
		"CLUSTER_NOT_FOUND",
		"No cluster with the given id",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidZoom = New(
		"INVALID_ZOOM",
		"Invalid zoom level",
		http.StatusBadRequest,
	)

	ErrInvalidWaypointID = New(
		"INVALID_WAYPOINT_ID",
		"Invalid waypoint ID",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"You must be logged in or provide an API token",
		http.StatusUnauthorized,
	)

	ErrInvalidAPIToken = New(
		"INVALID_API_TOKEN",
		"Invalid API token",
		http.StatusUnauthorized,
	)

	ErrHandleTaken = New(
		"HANDLE_TAKEN",
		"Handle is already in use",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrStyleUnavailable = New(
		"STYLE_UNAVAILABLE",
		"Map style server is unavailable",
		http.StatusBadGateway,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

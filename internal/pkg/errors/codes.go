package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidLimit = New(
		"INVALID_LIMIT",
		"Invalid results limit",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidSessionID = New(
		"INVALID_SESSION_ID",
		"Invalid session ID",
		http.StatusBadRequest,
	)

	ErrPlaceNotFound = New(
		"PLACE_NOT_FOUND",
		"Location not found",
		http.StatusNotFound,
	)

	ErrSummaryNotFound = New(
		"SUMMARY_NOT_FOUND",
		"No encyclopedia article found",
		http.StatusNotFound,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"No saved search for this session",
		http.StatusNotFound,
	)

	ErrUpstreamRateLimited = New(
		"UPSTREAM_RATE_LIMITED",
		"Too many requests. Please wait a moment and try again.",
		http.StatusTooManyRequests,
	)

	ErrUpstreamBusy = New(
		"UPSTREAM_BUSY",
		"The server is busy. Please try again in a few seconds.",
		http.StatusServiceUnavailable,
	)

	ErrUpstreamTimeout = New(
		"UPSTREAM_TIMEOUT",
		"The search took too long. Please try again.",
		http.StatusGatewayTimeout,
	)

	ErrUpstreamFailed = New(
		"UPSTREAM_FAILED",
		"Error searching for mountains",
		http.StatusBadGateway,
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

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

package errors

import "net/http"

var (
	ErrAreaNotFound = New(
		"AREA_NOT_FOUND",
		"Protected area not found",
		http.StatusNotFound,
	)

	ErrRuleNotFound = New(
		"RULE_NOT_FOUND",
		"Alert rule not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidGeometry = New(
		"INVALID_GEOMETRY",
		"Geometry failed validation gates",
		http.StatusBadRequest,
	)

	ErrInvalidTier = New(
		"INVALID_TIER",
		"Unknown simplification tier",
		http.StatusBadRequest,
	)

	ErrInvalidAlertType = New(
		"INVALID_ALERT_TYPE",
		"Unknown alert type",
		http.StatusBadRequest,
	)

	ErrUnconfirmedChange = New(
		"UNCONFIRMED_SIGNIFICANT_CHANGE",
		"Boundary change is significant and requires confirmation",
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

	ErrEvaluationFailed = New(
		"EVALUATION_FAILED",
		"Alert evaluation pass failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

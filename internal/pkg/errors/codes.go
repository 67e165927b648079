package errors

import "net/http"

// Таксономия ошибок движка: InvalidFilter - исправимая пользователем,
// DataNotFound - пробел в конфигурации данных, Computation - внутренний
// сбой агрегации (наружу уходит без деталей реализации).
var (
	ErrInvalidFilter = New(
		"INVALID_FILTER",
		"Invalid or out-of-range filter values",
		http.StatusBadRequest,
	)

	ErrDataNotFound = New(
		"DATA_NOT_FOUND",
		"Requested city or layer has no backing dataset",
		http.StatusNotFound,
	)

	ErrComputation = New(
		"COMPUTATION_ERROR",
		"Aggregation failed",
		http.StatusInternalServerError,
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

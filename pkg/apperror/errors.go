package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("resource not found")
	ErrDenied     = errors.New("access denied")
)

// MapErrorToStatus maps the subsystem's error kinds to HTTP status codes.
func MapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

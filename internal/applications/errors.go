package applications

import (
	"errors"
	"net/http"
)

// Domain errors for application operations.
var (
	ErrNotFound       = errors.New("application not found")
	ErrDuplicate      = errors.New("application already exists for this opportunity")
	ErrTerminalStatus = errors.New("application is in a terminal status")
	ErrEmptyBatch     = errors.New("bulk operation requires at least one application id")
	ErrPartialFailure = errors.New("bulk operation partially failed")
)

// MapHTTPStatus maps application domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrTerminalStatus) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrEmptyBatch) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrPartialFailure) {
		return http.StatusMultiStatus
	}
	return http.StatusInternalServerError
}

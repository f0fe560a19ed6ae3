package opportunities

import (
	"errors"
	"net/http"
)

// Domain errors for opportunity operations.
var (
	ErrNotFound      = errors.New("opportunity not found")
	ErrDuplicate     = errors.New("opportunity already exists")
	ErrEmptyLabel    = errors.New("stage label must not be empty")
	ErrInvalidKind   = errors.New("unknown stage kind")
	ErrStageConflict = errors.New("stage label already present in pipeline")
)

// MapHTTPStatus maps opportunity domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrStageConflict) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrEmptyLabel) || errors.Is(err, ErrInvalidKind) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

package rewards

import (
	"errors"
	"net/http"
)

// Domain errors for reward ledger operations.
var (
	ErrNotFound  = errors.New("reward account not found")
	ErrDuplicate = errors.New("reward entry already recorded")
)

// MapHTTPStatus maps reward domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

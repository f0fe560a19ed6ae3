package verifications

import (
	"errors"
	"net/http"

	"github.com/talentgate/talentgate/internal/applications"
	"github.com/talentgate/talentgate/internal/verifier"
)

// Domain errors for verification operations.
var (
	ErrNotFound            = errors.New("verification not found")
	ErrDuplicate           = errors.New("verification already recorded for this submission")
	ErrEmptyMilestone      = errors.New("milestone is required")
	ErrTerminalApplication = errors.New("application is in a terminal status")
	ErrArchiveFailed       = errors.New("evidence archival failed")
)

// MapHTTPStatus maps verification domain and service errors to HTTP status
// codes. Classifier availability and decode failures are service errors,
// never coerced into a reject decision.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, applications.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrTerminalApplication):
		return http.StatusConflict
	case errors.Is(err, ErrEmptyMilestone), errors.Is(err, verifier.ErrEmptyEvidence):
		return http.StatusBadRequest
	case errors.Is(err, verifier.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, verifier.ErrModelUnavailable), errors.Is(err, verifier.ErrNoProviders):
		return http.StatusServiceUnavailable
	case errors.Is(err, verifier.ErrDecode):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

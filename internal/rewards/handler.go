package rewards

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/pkg/handlers"
	"github.com/talentgate/talentgate/pkg/pagination"
	"github.com/talentgate/talentgate/pkg/routes"
)

// Handler provides HTTP endpoints for reward ledger reads.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "rewards"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for reward endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/rewards",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{studentId}", Handler: h.Find},
			{Method: "GET", Pattern: "/{studentId}/entries", Handler: h.Entries},
		},
	}
}

// Find returns the reward account for a student, zero-valued when the student
// has never been credited.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	studentID, err := uuid.Parse(r.PathValue("studentId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	a, err := h.sys.Find(r.Context(), studentID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// Entries returns a paginated list of a student's ledger entries.
func (h *Handler) Entries(w http.ResponseWriter, r *http.Request) {
	studentID, err := uuid.Parse(r.PathValue("studentId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.Entries(r.Context(), studentID, page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

package verifications

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/pkg/handlers"
	"github.com/talentgate/talentgate/pkg/pagination"
	"github.com/talentgate/talentgate/pkg/routes"
)

// Handler provides HTTP endpoints for verification operations.
type Handler struct {
	sys             System
	logger          *slog.Logger
	pagination      pagination.Config
	maxEvidenceSize int64
	limit           func(http.Handler) http.Handler
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "verifications"),
		pagination: pagination,
	}
}

// WithMaxEvidenceSize sets the multipart evidence upload limit in bytes.
func (h *Handler) WithMaxEvidenceSize(size int64) *Handler {
	h.maxEvidenceSize = size
	return h
}

// WithRateLimit wraps the submission endpoint with the given middleware.
func (h *Handler) WithRateLimit(mw func(http.Handler) http.Handler) *Handler {
	h.limit = mw
	return h
}

// Routes returns the route group definition for verification endpoints.
func (h *Handler) Routes() routes.Group {
	submit := h.Submit
	if h.limit != nil {
		submit = h.limit(http.HandlerFunc(h.Submit)).ServeHTTP
	}

	return routes.Group{
		Prefix: "/verifications",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/evidence", Handler: h.Evidence},
			{Method: "POST", Pattern: "", Handler: submit},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
		},
	}
}

// List returns a paginated list of verifications with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single verification by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	v, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, v)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching verifications.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Submit processes a multipart evidence submission containing the application
// id, the claimed milestone, and the evidence image.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxEvidenceSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
		return
	}

	applicationID, err := uuid.Parse(r.FormValue("application_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	milestone := r.FormValue("milestone")
	if strings.TrimSpace(milestone) == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyMilestone)
		return
	}

	file, header, err := r.FormFile("evidence")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd := SubmitCommand{
		ApplicationID: applicationID,
		Milestone:     milestone,
		Evidence:      data,
		MediaType:     detectMediaType(header.Header.Get("Content-Type"), data),
	}

	resp, err := h.sys.Submit(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// Evidence streams the archived evidence image for a verification.
func (h *Handler) Evidence(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNotFound)
		return
	}

	body, mediaType, err := h.sys.Evidence(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", mediaType)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}

func detectMediaType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

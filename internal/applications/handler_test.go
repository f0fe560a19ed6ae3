package applications_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/talentgate/talentgate/internal/applications"
	"github.com/talentgate/talentgate/pkg/pagination"
)

type mockSystem struct {
	listFn       func(ctx context.Context, page pagination.PageRequest, filters applications.Filters) (*pagination.PageResult[applications.Application], error)
	findFn       func(ctx context.Context, id uuid.UUID) (*applications.Application, error)
	createFn     func(ctx context.Context, cmd applications.CreateCommand) (*applications.Application, error)
	bulkMoveFn   func(ctx context.Context, cmd applications.BulkMoveCommand) ([]applications.BulkResult, error)
	bulkRejectFn func(ctx context.Context, cmd applications.BulkRejectCommand) ([]applications.BulkResult, error)
}

func (m *mockSystem) Handler() *applications.Handler { return nil }

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters applications.Filters) (*pagination.PageResult[applications.Application], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*applications.Application, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd applications.CreateCommand) (*applications.Application, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) BulkMove(ctx context.Context, cmd applications.BulkMoveCommand) ([]applications.BulkResult, error) {
	return m.bulkMoveFn(ctx, cmd)
}

func (m *mockSystem) BulkReject(ctx context.Context, cmd applications.BulkRejectCommand) ([]applications.BulkResult, error) {
	return m.bulkRejectFn(ctx, cmd)
}

func newTestHandler(sys *mockSystem) *applications.Handler {
	return applications.NewHandler(
		sys,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func setupMux(h *applications.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func TestBulkMovePartialFailure(t *testing.T) {
	okID := uuid.New()
	badID := uuid.New()

	sys := &mockSystem{
		bulkMoveFn: func(ctx context.Context, cmd applications.BulkMoveCommand) ([]applications.BulkResult, error) {
			return []applications.BulkResult{
				{ApplicationID: okID},
				{ApplicationID: badID, Error: "application not found"},
			}, applications.ErrPartialFailure
		},
	}

	body, _ := json.Marshal(applications.BulkMoveCommand{
		ApplicationIDs: []uuid.UUID{okID, badID},
		TargetStage:    "Interview",
	})

	req := httptest.NewRequest("POST", "/applications/bulk/move", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	setupMux(newTestHandler(sys)).ServeHTTP(rec, req)

	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("got status %d, want 207", rec.Code)
	}

	var resp struct {
		Results []applications.BulkResult `json:"results"`
		Failed  int                       `json:"failed"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Failed != 1 {
		t.Errorf("got %d failed, want 1", resp.Failed)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].Failed() {
		t.Error("committed row must not report failure")
	}
	if !resp.Results[1].Failed() {
		t.Error("failed row must carry its error")
	}
}

func TestBulkMoveAllSucceed(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	sys := &mockSystem{
		bulkMoveFn: func(ctx context.Context, cmd applications.BulkMoveCommand) ([]applications.BulkResult, error) {
			results := make([]applications.BulkResult, len(cmd.ApplicationIDs))
			for i, id := range cmd.ApplicationIDs {
				results[i] = applications.BulkResult{ApplicationID: id}
			}
			return results, nil
		},
	}

	body, _ := json.Marshal(applications.BulkMoveCommand{ApplicationIDs: ids, TargetStage: "Offer"})
	req := httptest.NewRequest("POST", "/applications/bulk/move", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	setupMux(newTestHandler(sys)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
}

func TestBulkRejectEmptyBatch(t *testing.T) {
	sys := &mockSystem{
		bulkRejectFn: func(ctx context.Context, cmd applications.BulkRejectCommand) ([]applications.BulkResult, error) {
			return nil, applications.ErrEmptyBatch
		},
	}

	body, _ := json.Marshal(applications.BulkRejectCommand{})
	req := httptest.NewRequest("POST", "/applications/bulk/reject", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	setupMux(newTestHandler(sys)).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
}

func TestFindNotFound(t *testing.T) {
	sys := &mockSystem{
		findFn: func(ctx context.Context, id uuid.UUID) (*applications.Application, error) {
			return nil, applications.ErrNotFound
		},
	}

	req := httptest.NewRequest("GET", "/applications/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	setupMux(newTestHandler(sys)).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}
}

func TestFindInvalidID(t *testing.T) {
	req := httptest.NewRequest("GET", "/applications/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	setupMux(newTestHandler(&mockSystem{})).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
}

func TestCreateDuplicateConflict(t *testing.T) {
	sys := &mockSystem{
		createFn: func(ctx context.Context, cmd applications.CreateCommand) (*applications.Application, error) {
			return nil, applications.ErrDuplicate
		},
	}

	body, _ := json.Marshal(applications.CreateCommand{
		StudentID:     uuid.New(),
		OpportunityID: uuid.New(),
	})
	req := httptest.NewRequest("POST", "/applications", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	setupMux(newTestHandler(sys)).ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("got status %d, want 409", rec.Code)
	}
}

package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/talentgate/talentgate/pkg/middleware"
)

func TestNewLimiterNilClient(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if middleware.NewLimiter(nil, logger) != nil {
		t.Error("nil client must yield nil limiter")
	}
}

func TestNilLimiterAllowsAll(t *testing.T) {
	var l *middleware.Limiter

	req := httptest.NewRequest("POST", "/verifications", nil)
	if !l.Allow(req, "key", 1, time.Minute) {
		t.Error("nil limiter must allow requests")
	}
}

func TestRateLimitPassThroughWithoutRedis(t *testing.T) {
	mw := middleware.RateLimit(nil, 1, time.Minute, func(r *http.Request) string {
		return r.RemoteAddr
	})

	handled := false
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled = true
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/verifications", nil))

	if !handled || rec.Code != http.StatusOK {
		t.Errorf("limiter without backend must pass requests through, got %d", rec.Code)
	}
}

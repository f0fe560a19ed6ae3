package applications

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func fanOutRepo() *repo {
	return &repo{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestFanOutRowFailureLeavesSiblings(t *testing.T) {
	r := fanOutRepo()
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	var mu sync.Mutex
	attempted := make(map[uuid.UUID]bool)

	results := r.fanOut(context.Background(), ids, func(ctx context.Context, id uuid.UUID) error {
		mu.Lock()
		attempted[id] = true
		mu.Unlock()

		if id == ids[1] {
			return errors.New("deadlock detected")
		}
		return nil
	})

	if len(attempted) != len(ids) {
		t.Errorf("a row failure must not stop sibling rows: %d of %d attempted", len(attempted), len(ids))
	}
	if len(results) != len(ids) {
		t.Fatalf("got %d results for %d ids", len(results), len(ids))
	}

	for i, res := range results {
		if res.ApplicationID != ids[i] {
			t.Errorf("result %d out of order: got %s, want %s", i, res.ApplicationID, ids[i])
		}
	}
	if results[0].Failed() || results[2].Failed() {
		t.Errorf("sibling rows must commit: %+v", results)
	}
	if !results[1].Failed() || results[1].Error != "deadlock detected" {
		t.Errorf("failed row must carry its own error: %+v", results[1])
	}

	if got := countFailed(results); got != 1 {
		t.Errorf("got %d failed rows, want 1", got)
	}
	if !errors.Is(aggregateError(results), ErrPartialFailure) {
		t.Error("expected ErrPartialFailure aggregate")
	}
}

func TestFanOutAllRowsSucceed(t *testing.T) {
	r := fanOutRepo()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	results := r.fanOut(context.Background(), ids, func(ctx context.Context, id uuid.UUID) error {
		return nil
	})

	if countFailed(results) != 0 {
		t.Errorf("got failures: %+v", results)
	}
	if err := aggregateError(results); err != nil {
		t.Errorf("expected nil aggregate, got %v", err)
	}
}

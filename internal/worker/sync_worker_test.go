package worker

import (
	"context"
	"path/filepath"
	"testing"

	"storeledger/internal/amqp"
	"storeledger/internal/core"
	sheetsmem "storeledger/internal/sheets/memory"
	"storeledger/internal/storage"
)

func newTestWorker(t *testing.T) (*SyncWorker, *storage.Repository, *sheetsmem.Store) {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	appender := sheetsmem.New()
	return NewSyncWorker(repo, appender, 10), repo, appender
}

func insertVisit(t *testing.T, repo *storage.Repository, team string, number int) int64 {
	t.Helper()
	id, err := repo.Insert(context.Background(), core.Visit{
		TeamName:        team,
		VisitNumber:     number,
		Items:           "rulers x1",
		TotalCents:      100,
		TotalItems:      1,
		TotalSpentCents: int64(number) * 100,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestHandleSyncMessageExportsAndMarks(t *testing.T) {
	w, repo, appender := newTestWorker(t)
	ctx := context.Background()
	id := insertVisit(t, repo, "Alpha", 1)

	if err := w.HandleSyncMessage(ctx, amqp.NewVisitSyncMessage(id)); err != nil {
		t.Fatalf("HandleSyncMessage: %v", err)
	}

	exported := appender.Visits()
	if len(exported) != 1 || exported[0].TeamName != "Alpha" {
		t.Fatalf("exported = %+v", exported)
	}

	pending, err := repo.DequeuePendingSync(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Fatalf("visit still pending after export: %+v", pending)
	}
}

func TestHandleSyncMessageUnknownVisit(t *testing.T) {
	w, _, _ := newTestWorker(t)
	if err := w.HandleSyncMessage(context.Background(), amqp.NewVisitSyncMessage(404)); err == nil {
		t.Fatal("expected error for unknown visit id")
	}
}

func TestHandleSyncMessageAppendFailure(t *testing.T) {
	w, repo, appender := newTestWorker(t)
	ctx := context.Background()
	id := insertVisit(t, repo, "Alpha", 1)

	appender.FailNext = true
	if err := w.HandleSyncMessage(ctx, amqp.NewVisitSyncMessage(id)); err == nil {
		t.Fatal("expected export error")
	}

	// Failure must flag the row rather than leaving it pending.
	pending, err := repo.DequeuePendingSync(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Fatalf("failed visit left pending: %+v", pending)
	}
}

func TestProcessPendingVisits(t *testing.T) {
	w, repo, appender := newTestWorker(t)
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		insertVisit(t, repo, "Alpha", i)
	}

	if err := w.ProcessPendingVisits(ctx); err != nil {
		t.Fatalf("ProcessPendingVisits: %v", err)
	}
	if got := len(appender.Visits()); got != 3 {
		t.Fatalf("exported %d visits, want 3", got)
	}

	// A second sweep finds nothing to do.
	if err := w.ProcessPendingVisits(ctx); err != nil {
		t.Fatal(err)
	}
	if got := len(appender.Visits()); got != 3 {
		t.Fatalf("second sweep re-exported rows: %d", got)
	}
}

func TestProcessPendingVisitsReportsFailures(t *testing.T) {
	w, repo, appender := newTestWorker(t)
	ctx := context.Background()
	insertVisit(t, repo, "Alpha", 1)
	insertVisit(t, repo, "Alpha", 2)

	appender.FailNext = true
	if err := w.ProcessPendingVisits(ctx); err == nil {
		t.Fatal("expected aggregate failure error")
	}
	// The non-failing row was still exported.
	if got := len(appender.Visits()); got != 1 {
		t.Fatalf("exported %d visits, want 1", got)
	}
}

func TestNewSyncWorkerDefaultsBatchSize(t *testing.T) {
	w := NewSyncWorker(nil, nil, 0)
	if w.batchSize != 10 {
		t.Fatalf("batchSize = %d, want 10", w.batchSize)
	}
}

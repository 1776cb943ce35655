package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"storeledger/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func visit(team string, number int, totalCents, spentCents int64) core.Visit {
	return core.Visit{
		TeamName:        team,
		VisitNumber:     number,
		Items:           "rulers x1",
		TotalCents:      totalCents,
		TotalItems:      1,
		TotalSpentCents: spentCents,
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, ok, err := repo.MaxVisitNumber(ctx, "Alpha"); err != nil || ok {
		t.Fatalf("fresh ledger: ok=%v err=%v", ok, err)
	}

	id, err := repo.Insert(ctx, visit("Alpha", 1, 400, 400))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := repo.Insert(ctx, visit("Alpha", 2, 100, 500)); err != nil {
		t.Fatal(err)
	}

	n, ok, err := repo.MaxVisitNumber(ctx, "Alpha")
	if err != nil || !ok || n != 2 {
		t.Fatalf("MaxVisitNumber = %d ok=%v err=%v", n, ok, err)
	}
	spent, ok, err := repo.MaxTotalSpent(ctx, "Alpha")
	if err != nil || !ok || spent != 500 {
		t.Fatalf("MaxTotalSpent = %d ok=%v err=%v", spent, ok, err)
	}

	got, err := repo.GetVisit(ctx, id)
	if err != nil {
		t.Fatalf("GetVisit: %v", err)
	}
	if got.TeamName != "Alpha" || got.VisitNumber != 1 || got.TotalCents != 400 {
		t.Fatalf("GetVisit returned %+v", got)
	}

	visits, err := repo.ListVisits(ctx, "Alpha")
	if err != nil {
		t.Fatal(err)
	}
	if len(visits) != 2 || visits[0].VisitNumber != 1 || visits[1].VisitNumber != 2 {
		t.Fatalf("ListVisits = %+v", visits)
	}

	if _, err := repo.GetVisit(ctx, 9999); !errors.Is(err, ErrVisitNotFound) {
		t.Fatalf("expected ErrVisitNotFound, got %v", err)
	}
}

func TestRepositoryRejectsInvalidVisit(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.Insert(context.Background(), core.Visit{TeamName: "Alpha"}); err == nil {
		t.Fatal("expected validation error for zero visit number")
	}
}

func TestTeamTotalsOrdering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, v := range []core.Visit{
		visit("Alpha", 1, 400, 400),
		visit("Alpha", 2, 600, 1000),
		visit("Beta", 1, 2500, 2500),
	} {
		if _, err := repo.Insert(ctx, v); err != nil {
			t.Fatal(err)
		}
	}

	totals, err := repo.TeamTotals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(totals))
	}
	if totals[0].TeamName != "Beta" || totals[0].SpentCents != 2500 {
		t.Fatalf("first row %+v, want Beta/2500", totals[0])
	}
	if totals[1].TeamName != "Alpha" || totals[1].Visits != 2 || totals[1].SpentCents != 1000 {
		t.Fatalf("second row %+v, want Alpha/2/1000", totals[1])
	}
}

func TestSyncQueueLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id1, err := repo.Insert(ctx, visit("Alpha", 1, 400, 400))
	if err != nil {
		t.Fatal(err)
	}
	id2, err := repo.Insert(ctx, visit("Alpha", 2, 100, 500))
	if err != nil {
		t.Fatal(err)
	}

	pending, err := repo.DequeuePendingSync(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 || pending[0].ID != id1 {
		t.Fatalf("pending = %+v", pending)
	}

	if err := repo.MarkSynced(ctx, id1); err != nil {
		t.Fatal(err)
	}
	if err := repo.MarkSyncError(ctx, id2); err != nil {
		t.Fatal(err)
	}

	pending, err = repo.DequeuePendingSync(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty queue, got %+v", pending)
	}

	if err := repo.MarkSynced(ctx, 9999); !errors.Is(err, ErrVisitNotFound) {
		t.Fatalf("expected ErrVisitNotFound, got %v", err)
	}
}

func TestDequeueRespectsLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if _, err := repo.Insert(ctx, visit("Alpha", i, 100, int64(i)*100)); err != nil {
			t.Fatal(err)
		}
	}
	pending, err := repo.DequeuePendingSync(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 3 {
		t.Fatalf("limit ignored: got %d rows", len(pending))
	}
}

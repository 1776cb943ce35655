package memory

import (
	"context"
	"testing"

	"storeledger/internal/core"
)

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

func TestMaxQueriesOnEmptyStore(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, ok, err := s.MaxVisitNumber(ctx, "Alpha"); err != nil || ok {
		t.Fatalf("expected no visit number, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := s.MaxTotalSpent(ctx, "Alpha"); err != nil || ok {
		t.Fatalf("expected no total, got ok=%v err=%v", ok, err)
	}
}

func TestInsertAndQuery(t *testing.T) {
	s := New()
	ctx := context.Background()

	id1, err := s.Insert(ctx, visit("Alpha", 1, 400, 400))
	if err != nil {
		t.Fatal(err)
	}
	id2, err := s.Insert(ctx, visit("Alpha", 2, 100, 500))
	if err != nil {
		t.Fatal(err)
	}
	if id2 != id1+1 {
		t.Fatalf("ids not sequential: %d then %d", id1, id2)
	}

	n, ok, err := s.MaxVisitNumber(ctx, "Alpha")
	if err != nil || !ok || n != 2 {
		t.Fatalf("MaxVisitNumber = %d ok=%v err=%v", n, ok, err)
	}
	spent, ok, err := s.MaxTotalSpent(ctx, "Alpha")
	if err != nil || !ok || spent != 500 {
		t.Fatalf("MaxTotalSpent = %d ok=%v err=%v", spent, ok, err)
	}

	visits, err := s.ListVisits(ctx, "Alpha")
	if err != nil {
		t.Fatal(err)
	}
	if len(visits) != 2 || visits[0].VisitNumber != 1 || visits[1].VisitNumber != 2 {
		t.Fatalf("ListVisits out of order: %+v", visits)
	}
}

func TestInsertRejectsInvalidVisit(t *testing.T) {
	s := New()
	if _, err := s.Insert(context.Background(), core.Visit{}); err == nil {
		t.Fatal("expected validation error")
	}
	if s.Len() != 0 {
		t.Fatal("invalid visit must not be stored")
	}
}

func TestTeamTotalsOrderedBySpendDescending(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, v := range []core.Visit{
		visit("Alpha", 1, 400, 400),
		visit("Beta", 1, 2500, 2500),
		visit("Alpha", 2, 600, 1000),
	} {
		if _, err := s.Insert(ctx, v); err != nil {
			t.Fatal(err)
		}
	}

	totals, err := s.TeamTotals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(totals))
	}
	if totals[0].TeamName != "Beta" || totals[0].SpentCents != 2500 || totals[0].Visits != 1 {
		t.Fatalf("unexpected first row: %+v", totals[0])
	}
	if totals[1].TeamName != "Alpha" || totals[1].SpentCents != 1000 || totals[1].Visits != 2 {
		t.Fatalf("unexpected second row: %+v", totals[1])
	}
}

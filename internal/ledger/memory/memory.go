// Package memory provides an in-memory visit ledger. It backs tests and
// the DATA_BACKEND=memory mode, where nothing survives process exit.
package memory

import (
	"context"
	"sort"
	"sync"

	"storeledger/internal/core"
)

type Store struct {
	mu     sync.Mutex
	visits []core.Visit
	nextID int64
}

func New() *Store {
	return &Store{nextID: 1}
}

// Insert appends the visit and assigns it a sequential id.
func (s *Store) Insert(_ context.Context, v core.Visit) (int64, error) {
	if err := v.Validate(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = s.nextID
	s.nextID++
	s.visits = append(s.visits, v)
	return v.ID, nil
}

func (s *Store) MaxVisitNumber(_ context.Context, team string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max, found := 0, false
	for _, v := range s.visits {
		if v.TeamName == team && v.VisitNumber > max {
			max, found = v.VisitNumber, true
		}
	}
	return max, found, nil
}

func (s *Store) MaxTotalSpent(_ context.Context, team string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var max int64
	found := false
	for _, v := range s.visits {
		if v.TeamName == team && (!found || v.TotalSpentCents > max) {
			max, found = v.TotalSpentCents, true
		}
	}
	return max, found, nil
}

func (s *Store) ListVisits(_ context.Context, team string) ([]core.Visit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Visit
	for _, v := range s.visits {
		if v.TeamName == team {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Store) TeamTotals(_ context.Context) ([]core.TeamTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byTeam := make(map[string]*core.TeamTotal)
	order := []string{}
	for _, v := range s.visits {
		t, ok := byTeam[v.TeamName]
		if !ok {
			t = &core.TeamTotal{TeamName: v.TeamName}
			byTeam[v.TeamName] = t
			order = append(order, v.TeamName)
		}
		t.Visits++
		t.SpentCents += v.TotalCents
	}
	out := make([]core.TeamTotal, 0, len(order))
	for _, name := range order {
		out = append(out, *byTeam[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SpentCents > out[j].SpentCents
	})
	return out, nil
}

// Len returns the number of stored visits.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visits)
}

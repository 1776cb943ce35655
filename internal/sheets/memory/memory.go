// Package memory is an in-memory VisitAppender used by worker tests and
// dry runs.
package memory

import (
	"context"
	"fmt"
	"sync"

	"storeledger/internal/core"
)

type Store struct {
	mu     sync.Mutex
	visits []core.Visit
	// FailNext makes the next append fail, for exercising error paths.
	FailNext bool
}

func New() *Store {
	return &Store{}
}

func (s *Store) AppendVisit(_ context.Context, v core.Visit) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailNext {
		s.FailNext = false
		return "", fmt.Errorf("append visit: simulated failure")
	}
	s.visits = append(s.visits, v)
	return fmt.Sprintf("mem:%d", len(s.visits)), nil
}

// Visits returns a copy of everything appended so far.
func (s *Store) Visits() []core.Visit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Visit(nil), s.visits...)
}

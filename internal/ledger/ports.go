// Package ledger defines the ports the checkout workflow and reporting
// consume. Implementations live in internal/storage (SQLite) and
// internal/ledger/memory.
package ledger

import (
	"context"

	"storeledger/internal/core"
)

type (
	// VisitReader answers the two point queries the checkout workflow
	// needs before writing a visit.
	VisitReader interface {
		// MaxVisitNumber returns the highest visit number recorded for
		// the team; ok is false when the team has no records.
		MaxVisitNumber(ctx context.Context, team string) (n int, ok bool, err error)
		// MaxTotalSpent returns the team's latest cumulative total in
		// cents; ok is false when the team has no records.
		MaxTotalSpent(ctx context.Context, team string) (cents int64, ok bool, err error)
	}

	// VisitWriter appends one completed visit. The record is durable
	// when Insert returns.
	VisitWriter interface {
		Insert(ctx context.Context, v core.Visit) (id int64, err error)
	}

	// VisitLister returns a team's visits in insertion order.
	VisitLister interface {
		ListVisits(ctx context.Context, team string) ([]core.Visit, error)
	}

	// SummaryReader aggregates per-team totals across the whole ledger,
	// ordered by total spent descending.
	SummaryReader interface {
		TeamTotals(ctx context.Context) ([]core.TeamTotal, error)
	}

	// Ledger is the full store surface used by the interactive CLI.
	Ledger interface {
		VisitReader
		VisitWriter
		VisitLister
		SummaryReader
	}
)

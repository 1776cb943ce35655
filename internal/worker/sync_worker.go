// Package worker exports recorded visits to the organiser spreadsheet.
// It consumes visit-recorded messages from AMQP and, as a safety net,
// periodically sweeps the ledger for rows the broker never delivered.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"storeledger/internal/amqp"
	"storeledger/internal/core"
	"storeledger/internal/sheets"
	"storeledger/internal/storage"
)

type SyncWorker struct {
	storage   *storage.Repository
	sheets    sheets.VisitAppender
	batchSize int
}

func NewSyncWorker(storage *storage.Repository, appender sheets.VisitAppender, batchSize int) *SyncWorker {
	if batchSize < 1 {
		batchSize = 10
	}
	return &SyncWorker{
		storage:   storage,
		sheets:    appender,
		batchSize: batchSize,
	}
}

// HandleSyncMessage exports one visit referenced by an AMQP message.
// Returning an error requeues the message; the row is also flagged in
// the ledger so the periodic sweep can pick it up if the queue drains.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.VisitSyncMessage) error {
	visit, err := w.storage.GetVisit(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get visit %d: %w", msg.ID, err)
	}
	return w.export(ctx, visit)
}

// ProcessPendingVisits sweeps one batch of rows still waiting for
// export. It keeps going past individual failures so one bad row cannot
// stall the queue.
func (w *SyncWorker) ProcessPendingVisits(ctx context.Context) error {
	pending, err := w.storage.DequeuePendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("dequeue pending visits: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending visits", "count", len(pending))

	failed := 0
	for _, visit := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.export(ctx, visit); err != nil {
			slog.ErrorContext(ctx, "Failed to export visit",
				"id", visit.ID, "team", visit.TeamName, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("export pending visits: %d of %d failed", failed, len(pending))
	}
	return nil
}

// export appends one visit to the sheet and records the outcome in the
// ledger's sync state.
func (w *SyncWorker) export(ctx context.Context, visit core.Visit) error {
	ref, err := w.sheets.AppendVisit(ctx, visit)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, visit.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error",
				"id", visit.ID, "error", markErr)
		}
		return fmt.Errorf("append visit %d to sheet: %w", visit.ID, err)
	}

	if err := w.storage.MarkSynced(ctx, visit.ID); err != nil {
		// The row reached the sheet; losing the mark only risks a
		// duplicate export later.
		slog.WarnContext(ctx, "Failed to mark visit as synced",
			"id", visit.ID, "error", err)
	}

	slog.InfoContext(ctx, "Exported visit",
		"id", visit.ID,
		"team", visit.TeamName,
		"visit_number", visit.VisitNumber,
		"sheets_ref", ref)
	return nil
}

// Package services orchestrates checkout persistence across the ledger
// and the export queue.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"storeledger/internal/core"
	"storeledger/internal/ledger"
)

// Publisher announces a recorded visit to the export worker.
// *amqp.Client satisfies it.
type Publisher interface {
	PublishVisitSync(ctx context.Context, id int64) error
	Close() error
}

// CheckoutService persists completed visits and, when a broker is
// configured, queues them for the spreadsheet export. The ledger write
// is the transaction; the publish is best effort and never fails a
// checkout.
type CheckoutService struct {
	writer    ledger.VisitWriter
	publisher Publisher
}

func NewCheckoutService(writer ledger.VisitWriter, publisher Publisher) *CheckoutService {
	return &CheckoutService{
		writer:    writer,
		publisher: publisher,
	}
}

// RecordVisit durably stores one visit and returns its ledger id.
func (s *CheckoutService) RecordVisit(ctx context.Context, v core.Visit) (int64, error) {
	id, err := s.writer.Insert(ctx, v)
	if err != nil {
		return 0, fmt.Errorf("save visit: %w", err)
	}

	if s.publisher == nil {
		return id, nil
	}
	if err := s.publisher.PublishVisitSync(ctx, id); err != nil {
		// The visit is safe in the ledger; the worker's periodic sweep
		// will find it by sync state.
		slog.ErrorContext(ctx, "Failed to publish visit sync message",
			"id", id, "error", err)
	}
	return id, nil
}

// Close releases the publisher and, when the ledger handle is closable,
// the ledger.
func (s *CheckoutService) Close() error {
	var errs []error

	if closer, ok := s.writer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("ledger: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close checkout service: %v", errs)
	}
	return nil
}

package backend

import (
	"context"

	"storeledger/internal/ledger"
	"storeledger/internal/services"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result bundles everything a created backend provides. Publisher is
// nil when no AMQP URL is configured or the backend does not sync.
type Result struct {
	Ledger    ledger.Ledger
	Publisher services.Publisher
	Cleanup   CleanupFunc
}

// Factory creates ledger backends from configuration.
type Factory interface {
	CreateBackend(ctx context.Context, cfg Config) (*Result, error)
}

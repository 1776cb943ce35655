package backend

import (
	"context"
	"fmt"

	"storeledger/internal/amqp"
	applog "storeledger/internal/log"
	"storeledger/internal/ledger/memory"
	"storeledger/internal/services"
	"storeledger/internal/storage"
)

// DefaultFactory creates backends based on configuration.
type DefaultFactory struct {
	logger *applog.Logger
}

func NewDefaultFactory(logger *applog.Logger) *DefaultFactory {
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backend config: %w", err)
	}

	switch cfg.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, cfg)
	case MemoryBackend:
		return f.createMemoryBackend(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, cfg Config) (*Result, error) {
	f.logger.InfoContext(ctx, "Initializing SQLite backend", applog.FieldDBPath, cfg.SQLiteDBPath)

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("create sqlite repository: %w", err)
	}

	var publisher services.Publisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without sync",
				applog.FieldError, err)
		} else {
			publisher = client
		}
	}

	cleanup := func() error {
		var firstErr error
		if publisher != nil {
			if err := publisher.Close(); err != nil {
				firstErr = fmt.Errorf("close amqp client: %w", err)
			}
		}
		if err := repo.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close sqlite repository: %w", err)
		}
		return firstErr
	}

	return &Result{
		Ledger:    repo,
		Publisher: publisher,
		Cleanup:   cleanup,
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, _ Config) (*Result, error) {
	f.logger.InfoContext(ctx, "Initializing in-memory backend")

	return &Result{
		Ledger:  memory.New(),
		Cleanup: func() error { return nil },
	}, nil
}

// Package app wires the client components together: local store, pending
// queue, sync engine and data service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/fieldsync/internal/client/api"
	"github.com/iudanet/fieldsync/internal/client/config"
	"github.com/iudanet/fieldsync/internal/client/data"
	"github.com/iudanet/fieldsync/internal/client/identity"
	"github.com/iudanet/fieldsync/internal/client/queue"
	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/client/storage/boltdb"
	clientsync "github.com/iudanet/fieldsync/internal/client/sync"
)

// App owns every client component for one session
type App struct {
	Store  *boltdb.Storage
	Queue  *queue.Queue
	Engine *clientsync.Engine
	Data   data.Service
	logger *slog.Logger
}

// New opens the local store and builds the components on top of it.
// The pending queue is rebuilt from the store so that Data reports pending
// counts before the engine is started.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	return NewWithRemote(ctx, cfg, api.NewClient(cfg.Server.URL, cfg.Server.Token), logger)
}

// NewWithRemote is New with an explicit remote authority
func NewWithRemote(ctx context.Context, cfg *config.Config, remote clientsync.RemoteService, logger *slog.Logger) (*App, error) {
	store, err := boltdb.New(ctx, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pending := queue.New()
	if err := pending.Rebuild(ctx, store); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to rebuild pending queue: %w", err)
	}

	locks := storage.NewLocks()
	engine := clientsync.NewEngine(remote, store, pending, locks, logger, clientsync.Options{
		Debounce:       cfg.Sync.Debounce,
		Interval:       cfg.Sync.Interval,
		RequestTimeout: cfg.Sync.RequestTimeout,
	})

	service := data.NewService(store, identity.NewAllocator(store), pending, engine, locks, logger)

	logger.Debug("Client initialized", "db", cfg.Storage.Path, "server", cfg.Server.URL)

	return &App{
		Store:  store,
		Queue:  pending,
		Engine: engine,
		Data:   service,
		logger: logger,
	}, nil
}

// Close stops the engine, then closes the queue and the store.
// Closing the store is attempted even if the engine did not stop in time:
// the store waits for running operations, and a late write back from the
// worker fails with storage.ErrStorageClosed.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if err := a.Engine.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	a.Queue.Close()
	if err := a.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}

	return errors.Join(errs...)
}

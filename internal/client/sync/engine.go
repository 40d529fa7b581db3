// Package sync pushes locally modified entities to the remote authority and
// writes the results back into the local store.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

// Options tunes the background worker
type Options struct {
	Debounce       time.Duration // пауза после триггера, поглощающая серию изменений
	Interval       time.Duration // периодический запуск; 0 отключает
	RequestTimeout time.Duration // таймаут одного обращения к серверу
	EventBuffer    int           // емкость канала событий
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		Debounce:       300 * time.Millisecond,
		RequestTimeout: 30 * time.Second,
		EventBuffer:    64,
	}
}

// Engine runs sync passes on a single background worker.
// Passes never overlap and a record's type lock is never held across a
// network call.
type Engine struct {
	remote RemoteService
	store  Store
	queue  PendingQueue
	locks  *storage.Locks
	logger *slog.Logger

	trigger chan struct{}
	events  chan Event
	done    chan struct{}
	cancel  context.CancelFunc

	opts Options

	passMu   sync.Mutex // один проход за раз
	mu       sync.Mutex // защищает started, done, cancel
	started  bool
	stopping atomic.Bool
}

// NewEngine creates an engine. Zero RequestTimeout or EventBuffer fall back
// to DefaultOptions.
func NewEngine(remote RemoteService, store Store, queue PendingQueue, locks *storage.Locks, logger *slog.Logger, opts Options) *Engine {
	defaults := DefaultOptions()
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaults.RequestTimeout
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = defaults.EventBuffer
	}

	return &Engine{
		remote:  remote,
		store:   store,
		queue:   queue,
		locks:   locks,
		logger:  logger,
		opts:    opts,
		trigger: make(chan struct{}, 1),
		events:  make(chan Event, opts.EventBuffer),
	}
}

// Start rebuilds the pending queue from the dirty flags of the store and
// launches the worker. Anything left pending from a previous run is synced
// right away.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopping.Load() {
		return ErrEngineStopped
	}
	if e.started {
		return errors.New("sync engine already started")
	}

	if err := e.queue.Rebuild(ctx, e.store); err != nil {
		return fmt.Errorf("failed to rebuild pending queue: %w", err)
	}

	workerCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.done = make(chan struct{})
	e.started = true

	go e.worker(workerCtx, e.done)

	pending := e.queue.Snapshot()
	e.logger.Info("Sync engine started", "pending", pending)
	for _, count := range pending {
		if count > 0 {
			e.TriggerSyncNow()
			break
		}
	}

	return nil
}

// Shutdown stops the worker. A network call in flight is allowed to finish
// and its result is written back; remaining entities stay queued.
// Returns ctx.Err() if the worker does not exit in time.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.stopping.Store(true)

	e.mu.Lock()
	cancel, done := e.cancel, e.done
	e.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		e.logger.Info("Sync engine stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sync worker did not stop: %w", ctx.Err())
	}
}

// TriggerSyncNow requests a pass without blocking. Requests arriving while a
// pass is pending or running are coalesced into it.
func (e *Engine) TriggerSyncNow() {
	if e.stopping.Load() {
		return
	}
	select {
	case e.trigger <- struct{}{}:
	default:
	}
}

// Events returns the notification channel. Events are dropped when the buffer
// is full, so a slow subscriber never stalls a pass.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// PendingCount returns the number of queued records of type t
func (e *Engine) PendingCount(t models.EntityType) int {
	return e.queue.PendingCount(t)
}

// HasPending reports whether any record of type t is queued
func (e *Engine) HasPending(t models.EntityType) bool {
	return e.queue.HasPending(t)
}

func (e *Engine) worker(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	var tick <-chan time.Time
	if e.opts.Interval > 0 {
		ticker := time.NewTicker(e.opts.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.trigger:
		case <-tick:
		}

		if !e.debounce(ctx) {
			return
		}

		for {
			version := e.queue.Version()
			if _, err := e.RunPass(ctx); err != nil {
				e.logger.Debug("Sync pass ended early", "error", err)
				return
			}

			// Повторяем проход, только если во время прохода пришла новая работа
			select {
			case <-e.trigger:
				if e.queue.Version() != version {
					continue
				}
			default:
			}
			break
		}
	}
}

// debounce waits Options.Debounce and absorbs triggers that arrive meanwhile.
// Returns false if ctx is cancelled.
func (e *Engine) debounce(ctx context.Context) bool {
	if e.opts.Debounce <= 0 {
		return true
	}

	timer := time.NewTimer(e.opts.Debounce)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}

	select {
	case <-e.trigger:
	default:
	}
	return true
}

// emit publishes ev unless the buffer is full
func (e *Engine) emit(ev Event) {
	select {
	case e.events <- ev:
	default:
		e.logger.Debug("Dropping sync event", "kind", ev.Kind)
	}
}

// requestContext detaches a remote call from cancellation of ctx, so a call in
// flight during Shutdown completes, and bounds it by RequestTimeout
func (e *Engine) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), e.opts.RequestTimeout)
}

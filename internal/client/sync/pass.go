package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeCreated
	outcomeUpdated
	outcomeDeleted
	outcomeDeferred
	outcomeFailed
)

func (r *TypeReport) record(o outcome) {
	switch o {
	case outcomeCreated:
		r.Created++
	case outcomeUpdated:
		r.Updated++
	case outcomeDeleted:
		r.Deleted++
	case outcomeDeferred:
		r.Deferred++
	case outcomeFailed:
		r.Failed++
	default:
		r.Skipped++
	}
}

// RunPass drains the queue once per entity type in dependency order and
// pushes every drained record to the remote authority. Each record is tried
// at most once; failures stay dirty and queued for a later pass.
//
// Returns ErrEngineStopped or ctx.Err() when the pass was interrupted, along
// with the report of what was done before that.
func (e *Engine) RunPass(ctx context.Context) (*PassReport, error) {
	if e.stopping.Load() {
		return nil, ErrEngineStopped
	}

	e.passMu.Lock()
	defer e.passMu.Unlock()

	report := newPassReport(time.Now())
	e.logger.Info("Starting sync pass", "pending", e.queue.Snapshot())

	var stopErr error

types:
	for _, t := range models.SyncOrder() {
		ids := e.queue.Drain(t)
		tr := report.Types[t]

		for i, id := range ids {
			if err := e.interrupted(ctx); err != nil {
				// Невыполненные id возвращаем в очередь
				if qErr := e.queue.Requeue(t, ids[i:]...); qErr != nil {
					e.logger.Warn("Failed to requeue", "type", t, "error", qErr)
				}
				report.Interrupted = true
				stopErr = err
				break types
			}

			tr.Attempted++
			tr.record(e.syncOne(ctx, t, id))
		}

		if len(ids) > 0 {
			e.emit(Event{Kind: EventPendingChanged, Pending: e.queue.Snapshot()})
		}
	}

	report.FinishedAt = time.Now()

	total := report.Total()
	e.logger.Info("Sync pass finished",
		"attempted", total.Attempted,
		"created", total.Created,
		"updated", total.Updated,
		"deleted", total.Deleted,
		"failed", total.Failed,
		"deferred", total.Deferred,
		"interrupted", report.Interrupted)

	// Проход без работы ничего не меняет, даже время синхронизации
	if !report.Interrupted && total.Attempted > 0 {
		if err := e.store.SaveLastSyncTime(context.WithoutCancel(ctx), report.FinishedAt); err != nil {
			e.logger.Warn("Failed to save last sync time", "error", err)
		}
	}

	e.emit(Event{Kind: EventPassCompleted, Report: report, Pending: e.queue.Snapshot()})

	return report, stopErr
}

func (e *Engine) interrupted(ctx context.Context) error {
	if e.stopping.Load() {
		return ErrEngineStopped
	}
	return ctx.Err()
}

// syncOne pushes one record and writes the result back
func (e *Engine) syncOne(ctx context.Context, t models.EntityType, id int64) outcome {
	unlock := e.locks.Lock(t)
	rec, err := e.store.Get(ctx, t, id)
	unlock()

	switch {
	case errors.Is(err, storage.ErrEntityNotFound):
		// Запись удалена локально после постановки в очередь
		return outcomeSkipped
	case err != nil:
		return e.fail(ctx, t, id, fmt.Errorf("failed to read record: %w", err))
	case !rec.Dirty:
		return outcomeSkipped
	}

	if !rec.Deleted && models.HasTemporaryReference(rec.Entity) {
		e.logger.Debug("Deferring record with unsynced references", "type", t, "id", id)
		unlock := e.locks.Lock(t)
		e.requeueIfDirty(ctx, t, id)
		unlock()
		return outcomeDeferred
	}

	switch {
	case rec.Deleted:
		return e.pushDelete(ctx, rec)
	case rec.IsTemporary():
		return e.pushCreate(ctx, rec)
	default:
		return e.pushUpdate(ctx, rec)
	}
}

func (e *Engine) pushCreate(ctx context.Context, rec *models.Record) outcome {
	t, oldID := rec.Type, rec.ID

	rctx, cancel := e.requestContext(ctx)
	newID, err := e.remote.Create(rctx, t, rec.ClientRef, rec.Entity)
	cancel()
	if err != nil {
		return e.fail(ctx, t, oldID, fmt.Errorf("remote create failed: %w", err))
	}
	if newID <= 0 {
		return e.fail(ctx, t, oldID, fmt.Errorf("remote create returned invalid id %d", newID))
	}

	// Результат записываем даже если проход уже отменяется
	wctx := context.WithoutCancel(ctx)

	unlock := e.locks.LockMany(append([]models.EntityType{t}, models.Dependents(t)...)...)
	defer unlock()

	current, err := e.store.Get(wctx, t, oldID)
	if errors.Is(err, storage.ErrEntityNotFound) {
		return e.orphan(wctx, rec, newID)
	}
	if err != nil {
		return e.failLocked(ctx, t, oldID, fmt.Errorf("failed to re-read record: %w", err))
	}

	reconciled := current.Clone()
	reconciled.ID = newID
	// Если запись изменили во время запроса, она остается грязной под новым id
	reconciled.Dirty = current.LastUpdated != rec.LastUpdated

	result, err := e.store.Reconcile(wctx, oldID, reconciled)
	if err != nil {
		// Ничего не записано: запись осталась под временным id.
		// Повторный Create с тем же ClientRef вернет тот же id.
		return e.failLocked(ctx, t, oldID, err)
	}

	if err := e.queue.Remove(t, oldID); err != nil {
		e.logger.Warn("Failed to dequeue", "type", t, "id", oldID, "error", err)
	}
	if reconciled.Dirty {
		if err := e.queue.Add(t, newID); err != nil {
			e.logger.Warn("Failed to enqueue", "type", t, "id", newID, "error", err)
		}
	}

	e.logger.Info("Reconciled record",
		"type", t, "old_id", oldID, "new_id", newID, "rewritten", len(result.Rewritten))
	e.emit(Event{Kind: EventReconciled, Type: t, OldID: oldID, NewID: newID})

	return outcomeCreated
}

// orphan handles a record deleted locally while its create was in flight:
// the server copy is marked for deletion on the next pass
func (e *Engine) orphan(ctx context.Context, rec *models.Record, newID int64) outcome {
	tombstone := rec.Clone()
	tombstone.ID = newID
	tombstone.Dirty = true
	tombstone.Deleted = true

	if err := e.store.Upsert(ctx, tombstone); err != nil {
		e.logger.Error("Failed to store tombstone of orphaned record",
			"type", rec.Type, "id", newID, "error", err)
		return outcomeFailed
	}
	if err := e.queue.Add(rec.Type, newID); err != nil {
		e.logger.Warn("Failed to enqueue", "type", rec.Type, "id", newID, "error", err)
	}

	e.logger.Info("Record deleted during create, scheduled remote deletion",
		"type", rec.Type, "old_id", rec.ID, "new_id", newID)
	e.emit(Event{Kind: EventReconciled, Type: rec.Type, OldID: rec.ID, NewID: newID})

	return outcomeCreated
}

func (e *Engine) pushUpdate(ctx context.Context, rec *models.Record) outcome {
	t, id := rec.Type, rec.ID

	rctx, cancel := e.requestContext(ctx)
	err := e.remote.Update(rctx, t, id, rec.Entity)
	cancel()
	if err != nil {
		return e.fail(ctx, t, id, fmt.Errorf("remote update failed: %w", err))
	}

	wctx := context.WithoutCancel(ctx)

	unlock := e.locks.Lock(t)
	defer unlock()

	current, err := e.store.Get(wctx, t, id)
	if errors.Is(err, storage.ErrEntityNotFound) {
		return outcomeUpdated
	}
	if err != nil {
		return e.failLocked(ctx, t, id, fmt.Errorf("failed to re-read record: %w", err))
	}

	if current.LastUpdated != rec.LastUpdated {
		// Изменена во время запроса: остается грязной и в очереди
		return outcomeUpdated
	}

	current.Dirty = false
	if err := e.store.Upsert(wctx, current); err != nil {
		return e.failLocked(ctx, t, id, fmt.Errorf("failed to clear dirty flag: %w", err))
	}
	if err := e.queue.Remove(t, id); err != nil {
		e.logger.Warn("Failed to dequeue", "type", t, "id", id, "error", err)
	}

	e.logger.Debug("Pushed update", "type", t, "id", id)
	return outcomeUpdated
}

func (e *Engine) pushDelete(ctx context.Context, rec *models.Record) outcome {
	t, id := rec.Type, rec.ID

	rctx, cancel := e.requestContext(ctx)
	err := e.remote.Delete(rctx, t, id)
	cancel()
	if err != nil && !errors.Is(err, ErrRemoteNotFound) {
		return e.fail(ctx, t, id, fmt.Errorf("remote delete failed: %w", err))
	}

	wctx := context.WithoutCancel(ctx)

	unlock := e.locks.Lock(t)
	defer unlock()

	if err := e.store.Delete(wctx, t, id); err != nil {
		return e.failLocked(ctx, t, id, fmt.Errorf("failed to remove deleted record: %w", err))
	}
	if err := e.queue.Remove(t, id); err != nil {
		e.logger.Warn("Failed to dequeue", "type", t, "id", id, "error", err)
	}

	e.logger.Debug("Pushed deletion", "type", t, "id", id)
	return outcomeDeleted
}

// fail logs err and puts id back into the queue if the record is still
// dirty. The caller must not hold the lock of t.
func (e *Engine) fail(ctx context.Context, t models.EntityType, id int64, err error) outcome {
	unlock := e.locks.Lock(t)
	defer unlock()
	return e.failLocked(ctx, t, id, err)
}

// failLocked is fail for callers holding the lock of t
func (e *Engine) failLocked(ctx context.Context, t models.EntityType, id int64, err error) outcome {
	e.logger.Warn("Sync failed, record stays pending", "type", t, "id", id, "error", err)
	e.requeueIfDirty(ctx, t, id)
	return outcomeFailed
}

// requeueIfDirty puts id back only while a dirty record stands behind it:
// the UI may have deleted the record while its request was in flight.
// The caller holds the lock of t.
func (e *Engine) requeueIfDirty(ctx context.Context, t models.EntityType, id int64) {
	if e.queue.Contains(t, id) {
		// Уже в очереди после правки из UI
		return
	}

	rec, err := e.store.Get(context.WithoutCancel(ctx), t, id)
	switch {
	case errors.Is(err, storage.ErrEntityNotFound):
		e.logger.Debug("Record removed during sync, not requeued", "type", t, "id", id)
		return
	case err != nil:
		// Состояние неизвестно: следующий проход пропустит чистую или пропавшую запись
		e.logger.Warn("Failed to check record before requeue", "type", t, "id", id, "error", err)
	case !rec.Dirty:
		return
	}

	e.requeue(t, id)
}

func (e *Engine) requeue(t models.EntityType, id int64) {
	if err := e.queue.Requeue(t, id); err != nil {
		e.logger.Warn("Failed to requeue", "type", t, "id", id, "error", err)
	}
}

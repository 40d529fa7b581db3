// Package data is the entry point of the UI layer: every local mutation goes
// through it so that the store, the pending queue and the sync engine stay in step.
package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/validation"
)

//go:generate moq -out service_mock.go . Service

// Service определяет операции, доступные UI
type Service interface {
	// CreateOrEdit creates the entity when id is 0, otherwise replaces the
	// entity stored under id. A temporary id already reconciled by the engine
	// is followed to its permanent id.
	CreateOrEdit(ctx context.Context, id int64, e models.Entity) (*models.Record, error)

	// Delete removes the entity. Unsynced entities are removed outright,
	// synced ones are kept as a tombstone until the server confirms.
	Delete(ctx context.Context, t models.EntityType, id int64) error

	Get(ctx context.Context, t models.EntityType, id int64) (*models.Record, error)
	List(ctx context.Context, t models.EntityType) ([]*models.Record, error)

	TriggerSyncNow()
	PendingCount(t models.EntityType) int
	HasPending(t models.EntityType) bool
}

// IDAllocator issues temporary ids, see identity.Allocator
type IDAllocator interface {
	Allocate(ctx context.Context, t models.EntityType) (int64, error)
}

// PendingQueue is the part of the pending queue the UI writes to
type PendingQueue interface {
	Add(t models.EntityType, id int64) error
	Remove(t models.EntityType, id int64) error
	PendingCount(t models.EntityType) int
	HasPending(t models.EntityType) bool
}

// Syncer requests a sync pass
type Syncer interface {
	TriggerSyncNow()
}

type service struct {
	store     storage.EntityStorage
	allocator IDAllocator
	queue     PendingQueue
	syncer    Syncer
	locks     *storage.Locks
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new data service
func NewService(store storage.EntityStorage, allocator IDAllocator, queue PendingQueue, syncer Syncer, locks *storage.Locks, logger *slog.Logger) Service {
	return &service{
		store:     store,
		allocator: allocator,
		queue:     queue,
		syncer:    syncer,
		locks:     locks,
		logger:    logger,
		now:       time.Now,
	}
}

// nextTimestamp returns a LastUpdated value greater than prev
func (s *service) nextTimestamp(prev int64) int64 {
	ts := s.now().UnixNano()
	if ts <= prev {
		ts = prev + 1
	}
	return ts
}

func (s *service) CreateOrEdit(ctx context.Context, id int64, e models.Entity) (*models.Record, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: no entity", models.ErrInvalidRecord)
	}
	if err := validation.ValidateEntity(e); err != nil {
		return nil, err
	}
	t := e.Type()

	// Ссылки проверяются под блокировкой таблиц, на которые они указывают
	unlock := s.locks.LockMany(append([]models.EntityType{t}, models.Dependencies(t)...)...)
	defer unlock()

	entity, err := s.resolveReferences(ctx, e)
	if err != nil {
		return nil, err
	}

	var rec *models.Record
	if id == 0 {
		rec, err = s.create(ctx, t, entity)
	} else {
		rec, err = s.edit(ctx, t, id, entity)
	}
	if err != nil {
		return nil, err
	}

	if err := s.queue.Add(t, rec.ID); err != nil {
		// Запись уже грязная в хранилище; очередь восстановится при следующем запуске
		s.logger.Warn("Failed to enqueue record", "type", t, "id", rec.ID, "error", err)
	}
	s.syncer.TriggerSyncNow()

	return rec.Clone(), nil
}

func (s *service) create(ctx context.Context, t models.EntityType, e models.Entity) (*models.Record, error) {
	id, err := s.allocator.Allocate(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate id: %w", err)
	}

	rec := &models.Record{
		Type:        t,
		ID:          id,
		ClientRef:   uuid.New().String(),
		Dirty:       true,
		LastUpdated: s.nextTimestamp(0),
		Entity:      e,
	}

	if err := s.store.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", t, err)
	}

	s.logger.Debug("Created record", "type", t, "id", id)
	return rec, nil
}

func (s *service) edit(ctx context.Context, t models.EntityType, id int64, e models.Entity) (*models.Record, error) {
	current, err := s.lookup(ctx, t, id)
	if err != nil {
		return nil, err
	}
	if current.Deleted {
		return nil, fmt.Errorf("%w: %s %d", storage.ErrEntityDeleted, t, current.ID)
	}

	rec := current.Clone()
	rec.Entity = e
	rec.Dirty = true
	rec.LastUpdated = s.nextTimestamp(current.LastUpdated)

	if err := s.store.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", t, err)
	}

	s.logger.Debug("Edited record", "type", t, "id", rec.ID)
	return rec, nil
}

// resolveReferences follows remapped ids in the entity's references and
// checks that every referenced record exists and is not pending deletion
func (s *service) resolveReferences(ctx context.Context, e models.Entity) (models.Entity, error) {
	entity := models.CloneEntity(e)

	for _, ref := range models.References(entity) {
		resolved, err := s.store.ResolveID(ctx, ref.Type, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s %d: %w", ref.Type, ref.ID, err)
		}
		if resolved != ref.ID {
			entity, _, err = models.RewriteReference(entity, ref.Type, ref.ID, resolved)
			if err != nil {
				return nil, err
			}
		}

		target, err := s.store.Get(ctx, ref.Type, resolved)
		if errors.Is(err, storage.ErrEntityNotFound) || (err == nil && target.Deleted) {
			return nil, fmt.Errorf("%w: %s %d does not exist", storage.ErrInvalidReference, ref.Type, ref.ID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s %d: %w", ref.Type, resolved, err)
		}
	}

	return entity, nil
}

// lookup reads a record, following a temp-to-permanent remap
func (s *service) lookup(ctx context.Context, t models.EntityType, id int64) (*models.Record, error) {
	resolved, err := s.store.ResolveID(ctx, t, id)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve id: %w", err)
	}

	rec, err := s.store.Get(ctx, t, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %d: %w", t, id, err)
	}
	return rec, nil
}

func (s *service) Delete(ctx context.Context, t models.EntityType, id int64) error {
	unlock := s.locks.LockMany(append([]models.EntityType{t}, models.Dependents(t)...)...)
	defer unlock()

	current, err := s.lookup(ctx, t, id)
	if err != nil {
		return err
	}
	if current.Deleted {
		return nil
	}

	referencing, err := s.store.FindReferencing(ctx, t, current.ID)
	if err != nil {
		return fmt.Errorf("failed to check references: %w", err)
	}
	if len(referencing) > 0 {
		return fmt.Errorf("%w: %s %d is used by %s %d",
			storage.ErrEntityReferenced, t, current.ID, referencing[0].Type, referencing[0].ID)
	}

	if current.IsTemporary() {
		// Сервер о записи не знает: удаляем только локально
		if err := s.store.Delete(ctx, t, current.ID); err != nil {
			return fmt.Errorf("failed to delete %s: %w", t, err)
		}
		if err := s.queue.Remove(t, current.ID); err != nil {
			s.logger.Warn("Failed to dequeue record", "type", t, "id", current.ID, "error", err)
		}
		s.logger.Debug("Deleted unsynced record", "type", t, "id", current.ID)
		return nil
	}

	tombstone := current.Clone()
	tombstone.Dirty = true
	tombstone.Deleted = true
	tombstone.LastUpdated = s.nextTimestamp(current.LastUpdated)

	if err := s.store.Upsert(ctx, tombstone); err != nil {
		return fmt.Errorf("failed to mark %s deleted: %w", t, err)
	}
	if err := s.queue.Add(t, current.ID); err != nil {
		s.logger.Warn("Failed to enqueue record", "type", t, "id", current.ID, "error", err)
	}
	s.syncer.TriggerSyncNow()

	s.logger.Debug("Marked record deleted", "type", t, "id", current.ID)
	return nil
}

// Get returns a live record. Records pending deletion return ErrEntityDeleted.
func (s *service) Get(ctx context.Context, t models.EntityType, id int64) (*models.Record, error) {
	rec, err := s.lookup(ctx, t, id)
	if err != nil {
		return nil, err
	}
	if rec.Deleted {
		return nil, fmt.Errorf("%w: %s %d", storage.ErrEntityDeleted, t, rec.ID)
	}
	return rec, nil
}

func (s *service) List(ctx context.Context, t models.EntityType) ([]*models.Record, error) {
	records, err := s.store.List(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t, err)
	}
	return records, nil
}

func (s *service) TriggerSyncNow() {
	s.syncer.TriggerSyncNow()
}

func (s *service) PendingCount(t models.EntityType) int {
	return s.queue.PendingCount(t)
}

func (s *service) HasPending(t models.EntityType) bool {
	return s.queue.HasPending(t)
}

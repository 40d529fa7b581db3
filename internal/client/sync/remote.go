package sync

import (
	"context"
	"errors"

	"github.com/iudanet/fieldsync/internal/client/queue"
	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

//go:generate moq -out remote_mock_test.go . RemoteService

var (
	// ErrRemoteNotFound is returned by RemoteService.Delete when the remote
	// authority has no such entity. The engine counts it as a successful deletion.
	ErrRemoteNotFound = errors.New("remote entity not found")

	// ErrEngineStopped is returned once Shutdown has been called
	ErrEngineStopped = errors.New("sync engine stopped")
)

// RemoteService is the remote authority for entities.
// Every error is treated as transient: the record stays dirty and is retried
// on a later trigger.
type RemoteService interface {
	// Create stores a new entity and returns its permanent id.
	// Repeating a create with the same clientRef returns the id assigned the first time.
	Create(ctx context.Context, t models.EntityType, clientRef string, e models.Entity) (int64, error)

	// Update replaces the entity stored under id
	Update(ctx context.Context, t models.EntityType, id int64, e models.Entity) error

	// Delete removes the entity stored under id
	Delete(ctx context.Context, t models.EntityType, id int64) error
}

// Store is the local state the engine writes results back to
type Store interface {
	storage.EntityStorage
	storage.MetadataStorage
}

// PendingQueue is the set of dirty ids waiting for a pass, see queue.Queue
type PendingQueue interface {
	Add(t models.EntityType, id int64) error
	Requeue(t models.EntityType, ids ...int64) error
	Remove(t models.EntityType, id int64) error
	Drain(t models.EntityType) []int64
	PendingCount(t models.EntityType) int
	HasPending(t models.EntityType) bool
	Contains(t models.EntityType, id int64) bool
	Snapshot() map[models.EntityType]int
	Version() uint64
	Rebuild(ctx context.Context, source queue.DirtySource) error
}

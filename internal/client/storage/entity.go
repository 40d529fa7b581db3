package storage

import (
	"context"

	"github.com/iudanet/fieldsync/internal/models"
)

//go:generate moq -out entitystorage_mock.go . EntityStorage

// EntityStorage is the local entity store: one keyed table per entity type
// holding the last known local state of each record. It has no network awareness.
//
// Every mutating call is all-or-nothing: a failed write never leaves other
// records changed.
type EntityStorage interface {
	// Get returns the record stored under id
	// Returns ErrEntityNotFound if the table has no such record
	Get(ctx context.Context, t models.EntityType, id int64) (*models.Record, error)

	// Upsert stores the record under its id, replacing any previous state
	Upsert(ctx context.Context, rec *models.Record) error

	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context, t models.EntityType, id int64) error

	// AllDirty returns every dirty record of the table, pending deletions included
	AllDirty(ctx context.Context, t models.EntityType) ([]*models.Record, error)

	// LowestID returns the smallest id in the table, or 0 for an empty table
	LowestID(ctx context.Context, t models.EntityType) (int64, error)

	// List returns all records that are not pending deletion, ordered by id
	List(ctx context.Context, t models.EntityType) ([]*models.Record, error)

	// Count returns the number of records in the table, pending deletions included
	Count(ctx context.Context, t models.EntityType) (int, error)

	// Reconcile atomically moves the record stored under oldID to rec.ID,
	// rewrites every reference to oldID in dependent tables and remembers the
	// remap. If the write fails nothing is committed.
	Reconcile(ctx context.Context, oldID int64, rec *models.Record) (*ReconcileResult, error)

	// ResolveID follows temporary-to-permanent remaps left by Reconcile.
	// Ids that were never remapped are returned unchanged.
	ResolveID(ctx context.Context, t models.EntityType, id int64) (int64, error)

	// FindReferencing returns live records of dependent tables that reference (t, id)
	FindReferencing(ctx context.Context, t models.EntityType, id int64) ([]*models.Record, error)
}

// ReconcileResult describes what a reconciliation rewrote
type ReconcileResult struct {
	// Rewritten lists the dependent records whose references were moved to the new id
	Rewritten []models.Reference
}

// IDFloorStorage persists the lowest temporary id ever issued per table
type IDFloorStorage interface {
	// GetTempIDFloor returns the lowest temporary id issued for the table, or 0
	GetTempIDFloor(ctx context.Context, t models.EntityType) (int64, error)

	// SaveTempIDFloor stores the lowest temporary id issued for the table
	SaveTempIDFloor(ctx context.Context, t models.EntityType, id int64) error
}

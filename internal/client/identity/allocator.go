// Package identity issues temporary ids for entities created while offline.
package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/iudanet/fieldsync/internal/models"
)

// Store is the persisted state the allocator derives ids from
type Store interface {
	LowestID(ctx context.Context, t models.EntityType) (int64, error)
	GetTempIDFloor(ctx context.Context, t models.EntityType) (int64, error)
	SaveTempIDFloor(ctx context.Context, t models.EntityType, id int64) error
}

// Allocator issues temporary negative ids.
//
// Every id is strictly below all ids present in the table and below every
// temporary id issued before, including ids issued by earlier processes: the
// lowest issued id is persisted before Allocate returns.
type Allocator struct {
	store Store
	mu    sync.Mutex
}

// NewAllocator creates a new allocator over the given store
func NewAllocator(store Store) *Allocator {
	return &Allocator{store: store}
}

// Allocate returns a fresh temporary id for entity type t.
// For an empty table with no history the first id is -1.
func (a *Allocator) Allocate(ctx context.Context, t models.EntityType) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	lowest, err := a.store.LowestID(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("failed to get lowest id: %w", err)
	}

	floor, err := a.store.GetTempIDFloor(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("failed to get temp id floor: %w", err)
	}

	// next = min(lowest, floor, 0) - 1
	next := min(lowest, floor, 0) - 1

	// Сохраняем границу до того, как id попадет к вызывающему
	if err := a.store.SaveTempIDFloor(ctx, t, next); err != nil {
		return 0, fmt.Errorf("failed to save temp id floor: %w", err)
	}

	return next, nil
}

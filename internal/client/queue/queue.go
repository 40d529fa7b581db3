// Package queue tracks the ids of dirty records waiting for the next sync pass.
package queue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/iudanet/fieldsync/internal/models"
)

// ErrClosed is returned when the queue has been released
var ErrClosed = errors.New("pending queue is closed")

// DirtySource lists dirty records of a table; the queue is rebuilt from it
type DirtySource interface {
	AllDirty(ctx context.Context, t models.EntityType) ([]*models.Record, error)
}

// Queue is a per-entity-type set of ids known to be dirty and eligible for
// the next sync pass. It is safe for concurrent use.
//
// The queue is not the source of truth: Rebuild restores it from the dirty
// flags of the store, so a crash in the middle of a pass loses no work.
type Queue struct {
	pending map[models.EntityType]map[int64]struct{}
	version uint64
	mu      sync.Mutex
	closed  bool
}

// New creates an empty queue
func New() *Queue {
	return &Queue{pending: make(map[models.EntityType]map[int64]struct{})}
}

// Add enqueues id of entity type t. Adding a queued id is a no-op.
func (q *Queue) Add(t models.EntityType, id int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	if q.insert(t, id) {
		q.version++
	}
	return nil
}

// Requeue puts ids back after a failed sync attempt. Unlike Add it does not
// count as new work, see Version.
func (q *Queue) Requeue(t models.EntityType, ids ...int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	for _, id := range ids {
		q.insert(t, id)
	}
	return nil
}

// Version is incremented every time Add queues an id that was not queued.
// Comparing versions tells whether new work arrived in between.
func (q *Queue) Version() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.version
}

// insert adds id to the set and reports whether it was absent
func (q *Queue) insert(t models.EntityType, id int64) bool {
	set, ok := q.pending[t]
	if !ok {
		set = make(map[int64]struct{})
		q.pending[t] = set
	}
	if _, exists := set[id]; exists {
		return false
	}
	set[id] = struct{}{}
	return true
}

// Remove dequeues id of entity type t. Removing an absent id is a no-op.
func (q *Queue) Remove(t models.EntityType, id int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	delete(q.pending[t], id)
	return nil
}

// PendingCount returns the number of queued ids of entity type t
func (q *Queue) PendingCount(t models.EntityType) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending[t])
}

// HasPending reports whether any id of entity type t is queued
func (q *Queue) HasPending(t models.EntityType) bool {
	return q.PendingCount(t) > 0
}

// Contains reports whether id of entity type t is queued
func (q *Queue) Contains(t models.EntityType, id int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.pending[t][id]
	return ok
}

// Drain returns and clears the queued ids of entity type t.
// Temporary ids come first in allocation order (-1, -2, ...) so that older
// creations are pushed first, followed by permanent ids in ascending order.
func (q *Queue) Drain(t models.EntityType) []int64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	set := q.pending[t]
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	delete(q.pending, t)

	sortForSync(ids)
	return ids
}

// Snapshot returns the number of queued ids per entity type
func (q *Queue) Snapshot() map[models.EntityType]int {
	q.mu.Lock()
	defer q.mu.Unlock()

	counts := make(map[models.EntityType]int, len(models.AllTypes()))
	for _, t := range models.AllTypes() {
		counts[t] = len(q.pending[t])
	}
	return counts
}

// Rebuild replaces the queue contents with the dirty records of every table
func (q *Queue) Rebuild(ctx context.Context, source DirtySource) error {
	rebuilt := make(map[models.EntityType]map[int64]struct{})

	for _, t := range models.AllTypes() {
		records, err := source.AllDirty(ctx, t)
		if err != nil {
			return fmt.Errorf("failed to list dirty %s records: %w", t, err)
		}

		set := make(map[int64]struct{}, len(records))
		for _, rec := range records {
			set[rec.ID] = struct{}{}
		}
		rebuilt[t] = set
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	q.pending = rebuilt
	return nil
}

// Close releases the queue. Further mutations return ErrClosed.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.pending = make(map[models.EntityType]map[int64]struct{})
}

// sortForSync orders temporary ids by allocation (closest to zero first),
// then permanent ids ascending
func sortForSync(ids []int64) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		switch {
		case a < 0 && b < 0:
			return a > b
		case a < 0:
			return true
		case b < 0:
			return false
		default:
			return a < b
		}
	})
}

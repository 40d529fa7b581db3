package storage

import (
	"sync"

	"github.com/iudanet/fieldsync/internal/models"
)

// Locks serializes read-modify-write cycles on records of one entity type.
// The UI path and the sync engine take the same lock, so a record is never
// rewritten by one while the other is mutating it.
type Locks struct {
	locks map[models.EntityType]*sync.Mutex
	mu    sync.Mutex
}

// NewLocks creates an empty lock registry
func NewLocks() *Locks {
	return &Locks{locks: make(map[models.EntityType]*sync.Mutex)}
}

// For returns the lock of entity type t
func (l *Locks) For(t models.EntityType) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[t]
	if !ok {
		m = &sync.Mutex{}
		l.locks[t] = m
	}
	return m
}

// Lock locks entity type t and returns the matching unlock func
func (l *Locks) Lock(t models.EntityType) func() {
	m := l.For(t)
	m.Lock()
	return m.Unlock
}

// LockMany locks several entity types in sync order, so that two callers
// locking overlapping sets never deadlock.
func (l *Locks) LockMany(types ...models.EntityType) func() {
	want := make(map[models.EntityType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}

	var unlocks []func()
	for _, t := range models.SyncOrder() {
		if want[t] {
			unlocks = append(unlocks, l.Lock(t))
		}
	}

	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}

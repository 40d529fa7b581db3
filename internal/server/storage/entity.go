package storage

import (
	"context"
	"encoding/json"
	"time"
)

// Entity is an entity as stored by the server. Data is kept opaque: the server
// does not interpret entity payloads.
type Entity struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	Type      string
	ClientRef string
	Data      json.RawMessage
	ID        int64
}

// EntityStorage defines interface for entity persistence
type EntityStorage interface {
	// Create stores a new entity and assigns its id. When an entity with the
	// same ClientRef already exists its id is returned and created is false.
	Create(ctx context.Context, e *Entity) (id int64, created bool, err error)

	// Update replaces the payload of an entity.
	// Returns ErrEntityNotFound if there is no entity of type t under id.
	Update(ctx context.Context, t string, id int64, data json.RawMessage) error

	// Delete removes an entity.
	// Returns ErrEntityNotFound if there is no entity of type t under id.
	Delete(ctx context.Context, t string, id int64) error

	// Get retrieves an entity by id
	Get(ctx context.Context, t string, id int64) (*Entity, error)

	// List returns all entities of type t ordered by id
	List(ctx context.Context, t string) ([]*Entity, error)

	// Ping checks that the storage is reachable
	Ping(ctx context.Context) error
}

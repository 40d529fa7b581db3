package storage

import "errors"

// Common storage errors
var (
	// ErrEntityNotFound indicates that no entity of the type exists under the id
	ErrEntityNotFound = errors.New("entity not found")

	// ErrClientRefConflict indicates that the client reference is already used by an entity of another type
	ErrClientRefConflict = errors.New("client reference already used by another entity type")
)

package storage

import "errors"

// Common client storage errors
var (
	// ErrEntityNotFound indicates that no record exists under the requested id
	ErrEntityNotFound = errors.New("entity not found")

	// ErrEntityReferenced indicates that a live record still references the entity
	ErrEntityReferenced = errors.New("entity is referenced by another record")

	// ErrEntityDeleted indicates that the record is a pending deletion and cannot be edited
	ErrEntityDeleted = errors.New("entity is pending deletion")

	// ErrInvalidReference indicates that an entity references a record that does not exist
	ErrInvalidReference = errors.New("invalid entity reference")

	// ErrIDConflict indicates that a record already exists under the target id
	ErrIDConflict = errors.New("entity id already in use")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)

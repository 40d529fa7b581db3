package storage

import (
	"context"
	"time"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastSyncTime saves the time of the last completed sync pass
	SaveLastSyncTime(ctx context.Context, at time.Time) error

	// GetLastSyncTime retrieves the time of the last completed sync pass
	// Returns zero time if no pass has completed yet
	GetLastSyncTime(ctx context.Context) (time.Time, error)
}

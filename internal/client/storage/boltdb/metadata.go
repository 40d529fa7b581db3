package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/fieldsync/internal/models"
)

const (
	keyLastSyncTime      = "last_sync_time"
	keyTempIDFloorPrefix = "temp_id_floor/"
)

func putInt64(bucket *bbolt.Bucket, key string, v int64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(v))
	return bucket.Put([]byte(key), buf)
}

// getInt64 returns 0 when the key is absent
func getInt64(bucket *bbolt.Bucket, key string) int64 {
	v := bucket.Get([]byte(key))
	if v == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(v))
}

// SaveLastSyncTime saves the time of the last completed sync pass
func (s *Storage) SaveLastSyncTime(ctx context.Context, at time.Time) error {
	db, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	return db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := putInt64(bucket, keyLastSyncTime, at.UnixNano()); err != nil {
			return fmt.Errorf("failed to save last sync time: %w", err)
		}

		return nil
	})
}

// GetLastSyncTime retrieves the time of the last completed sync pass
// Returns zero time if no pass has completed yet
func (s *Storage) GetLastSyncTime(ctx context.Context) (time.Time, error) {
	db, release, err := s.acquire()
	if err != nil {
		return time.Time{}, err
	}
	defer release()

	var nanos int64

	err = db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}
		nanos = getInt64(bucket, keyLastSyncTime)
		return nil
	})

	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last sync time: %w", err)
	}

	if nanos == 0 {
		return time.Time{}, nil
	}
	return time.Unix(0, nanos), nil
}

// GetTempIDFloor returns the lowest temporary id ever issued for the table, or 0
func (s *Storage) GetTempIDFloor(ctx context.Context, t models.EntityType) (int64, error) {
	db, release, err := s.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	var floor int64

	err = db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}
		floor = getInt64(bucket, keyTempIDFloorPrefix+string(t))
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to get temp id floor: %w", err)
	}

	return floor, nil
}

// SaveTempIDFloor stores the lowest temporary id issued for the table.
// The floor only moves down: a higher value is ignored.
func (s *Storage) SaveTempIDFloor(ctx context.Context, t models.EntityType, id int64) error {
	db, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	return db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		key := keyTempIDFloorPrefix + string(t)
		if current := getInt64(bucket, key); current != 0 && current <= id {
			return nil
		}

		if err := putInt64(bucket, key, id); err != nil {
			return fmt.Errorf("failed to save temp id floor: %w", err)
		}
		return nil
	})
}

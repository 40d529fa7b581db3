package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

var (
	// BoltDB bucket names
	bucketMetadata = []byte("metadata")
)

// entitiesBucket returns the name of the table of entity type t
func entitiesBucket(t models.EntityType) []byte {
	return []byte("entities/" + string(t))
}

// idMapBucket returns the name of the temp-to-permanent id map of entity type t
func idMapBucket(t models.EntityType) []byte {
	return []byte("idmap/" + string(t))
}

// Storage represents BoltDB storage implementation for client
type Storage struct {
	// mu защищает db: операции держат RLock, Close ждет их завершения
	mu sync.RWMutex
	db *bbolt.DB
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB; таймаут нужен, если файл уже открыт другим процессом
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection. It waits for running operations;
// later calls fail with storage.ErrStorageClosed.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// acquire returns the open database held under a read lock until release is called
func (s *Storage) acquire() (*bbolt.DB, func(), error) {
	s.mu.RLock()
	if s.db == nil {
		s.mu.RUnlock()
		return nil, nil, storage.ErrStorageClosed
	}
	return s.db, s.mu.RUnlock, nil
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketMetadata); err != nil {
			return fmt.Errorf("failed to create metadata bucket: %w", err)
		}

		// По одной таблице и одной карте id на каждый тип сущности
		for _, t := range models.AllTypes() {
			if _, err := tx.CreateBucketIfNotExists(entitiesBucket(t)); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", t, err)
			}
			if _, err := tx.CreateBucketIfNotExists(idMapBucket(t)); err != nil {
				return fmt.Errorf("failed to create %s id map bucket: %w", t, err)
			}
		}

		return nil
	})
}

// encodeID converts an id into a key whose byte order matches numeric order,
// so cursors walk negative ids before positive ones.
func encodeID(id int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(id)^(1<<63))
	return key
}

// decodeID is the inverse of encodeID
func decodeID(key []byte) int64 {
	return int64(binary.BigEndian.Uint64(key) ^ (1 << 63))
}

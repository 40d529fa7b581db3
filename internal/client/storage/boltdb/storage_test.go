package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

// allBuckets возвращает имена всех buckets, которые должен создать initBuckets
func allBuckets() [][]byte {
	buckets := [][]byte{bucketMetadata}
	for _, t := range models.AllTypes() {
		buckets = append(buckets, entitiesBucket(t), idMapBucket(t))
	}
	return buckets
}

func TestNew_Success(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "testdb.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() {
		require.NoError(t, store.Close())
	}()

	// Проверяем что файл БД действительно создан
	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	// Проверяем, что бакеты существуют
	err = store.db.View(func(tx *bbolt.Tx) error {
		for _, b := range allBuckets() {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	ctx := context.Background()
	invalidPath := filepath.Join(t.TempDir(), "missing-dir", "db.db")
	store, err := New(ctx, invalidPath)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "testdb.db")

	ctx := context.Background()
	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	err = store.Close()
	assert.NoError(t, err)

	// После закрытия поле db должно стать nil
	assert.Nil(t, store.db)

	// Второй вызов Close не должен падать и должен просто ничего не делать
	err = store.Close()
	assert.NoError(t, err)
}

func TestClose_ConcurrentWithOperations(t *testing.T) {
	ctx := context.Background()
	store, err := New(ctx, filepath.Join(t.TempDir(), "testdb.db"))
	require.NoError(t, err)

	// Операции, идущие параллельно с Close, либо успевают, либо видят закрытое хранилище
	var wg sync.WaitGroup
	errs := make(chan error, 200)
	for i := range 4 {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := range 50 {
				id := int64(worker*100 + j + 1)
				if err := store.Upsert(ctx, contactRecord(id, "Ann", false)); err != nil {
					errs <- err
					return
				}
			}
		}(i)
	}

	require.NoError(t, store.Close())
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.ErrorIs(t, err, storage.ErrStorageClosed)
	}
	_, err = store.Count(ctx, models.TypeContact)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestInitBuckets_CreatesBuckets(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "testdb.db")

	db, err := bbolt.Open(dbPath, 0600, nil)
	require.NoError(t, err)
	defer db.Close()

	// Создаем Storage с установленным db но без вызова initBuckets
	store := &Storage{db: db}

	err = store.initBuckets()
	assert.NoError(t, err)

	err = db.View(func(tx *bbolt.Tx) error {
		for _, b := range allBuckets() {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	assert.NoError(t, err)

	// Повторная инициализация идемпотентна
	assert.NoError(t, store.initBuckets())
}

func TestEncodeID_PreservesOrder(t *testing.T) {
	ids := []int64{-1 << 62, -100, -2, -1, 1, 2, 100, 1 << 62}
	for i := 1; i < len(ids); i++ {
		prev, cur := encodeID(ids[i-1]), encodeID(ids[i])
		assert.Less(t, string(prev), string(cur), "%d must sort before %d", ids[i-1], ids[i])
		assert.Equal(t, ids[i], decodeID(cur))
	}
}

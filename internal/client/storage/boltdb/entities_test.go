package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

func contactRecord(id int64, name string, dirty bool) *models.Record {
	return &models.Record{
		Type:        models.TypeContact,
		ID:          id,
		Dirty:       dirty,
		LastUpdated: 1,
		Entity:      &models.Contact{Name: name},
	}
}

func cartRecord(id, contactID, productID int64, dirty bool) *models.Record {
	return &models.Record{
		Type:        models.TypeCartItem,
		ID:          id,
		Dirty:       dirty,
		LastUpdated: 1,
		Entity:      &models.CartItem{ContactID: contactID, ProductID: productID, Quantity: 1},
	}
}

func TestStorage_UpsertAndGet(t *testing.T) {
	tests := []struct {
		record *models.Record
		name   string
	}{
		{name: "temporary contact", record: contactRecord(-1, "Ann", true)},
		{name: "synced contact", record: contactRecord(42, "Bob", false)},
		{
			name: "product pending deletion",
			record: &models.Record{
				Type: models.TypeProduct, ID: 7, Dirty: true, Deleted: true,
				Entity: &models.Product{Name: "Widget", PriceCents: 1299},
			},
		},
		{name: "cart item", record: cartRecord(-5, -1, 7, true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()

			ctx := context.Background()
			require.NoError(t, store.Upsert(ctx, tt.record))

			got, err := store.Get(ctx, tt.record.Type, tt.record.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.record, got)
		})
	}
}

func TestStorage_UpsertRejectsInvalidRecord(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	// Чистая запись с временным id нарушает инвариант
	err := store.Upsert(ctx, contactRecord(-1, "Ann", false))
	assert.ErrorIs(t, err, models.ErrInvalidRecord)

	_, err = store.Get(ctx, models.TypeContact, -1)
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)
}

func TestStorage_UpsertReplaces(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, contactRecord(3, "Old", false)))
	require.NoError(t, store.Upsert(ctx, contactRecord(3, "New", true)))

	got, err := store.Get(ctx, models.TypeContact, 3)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Entity.(*models.Contact).Name)
	assert.True(t, got.Dirty)

	count, err := store.Count(ctx, models.TypeContact)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStorage_GetNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.Get(context.Background(), models.TypeContact, 99)
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)
}

func TestStorage_UnknownType(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.Get(context.Background(), models.EntityType("expense"), 1)
	assert.ErrorIs(t, err, models.ErrUnknownEntityType)
}

func TestStorage_Delete(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, contactRecord(-1, "Ann", true)))
	require.NoError(t, store.Upsert(ctx, contactRecord(2, "Bob", false)))

	require.NoError(t, store.Delete(ctx, models.TypeContact, -1))

	_, err := store.Get(ctx, models.TypeContact, -1)
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)

	// Другие записи не затронуты
	_, err = store.Get(ctx, models.TypeContact, 2)
	assert.NoError(t, err)

	// Удаление отсутствующей записи не ошибка
	assert.NoError(t, store.Delete(ctx, models.TypeContact, -1))
}

func TestStorage_AllDirtyAndList(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, contactRecord(-2, "Temp2", true)))
	require.NoError(t, store.Upsert(ctx, contactRecord(-1, "Temp1", true)))
	require.NoError(t, store.Upsert(ctx, contactRecord(5, "Clean", false)))
	require.NoError(t, store.Upsert(ctx, contactRecord(6, "Edited", true)))
	tombstone := contactRecord(9, "Gone", true)
	tombstone.Deleted = true
	require.NoError(t, store.Upsert(ctx, tombstone))

	dirty, err := store.AllDirty(ctx, models.TypeContact)
	require.NoError(t, err)
	assert.Equal(t, []int64{-2, -1, 6, 9}, ids(dirty))

	for _, rec := range dirty {
		assert.True(t, rec.Dirty)
	}

	live, err := store.List(ctx, models.TypeContact)
	require.NoError(t, err)
	assert.Equal(t, []int64{-2, -1, 5, 6}, ids(live))

	// Другие таблицы пусты
	products, err := store.AllDirty(ctx, models.TypeProduct)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestStorage_LowestID(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	lowest, err := store.LowestID(ctx, models.TypeContact)
	require.NoError(t, err)
	assert.Equal(t, int64(0), lowest)

	require.NoError(t, store.Upsert(ctx, contactRecord(10, "a", false)))
	lowest, err = store.LowestID(ctx, models.TypeContact)
	require.NoError(t, err)
	assert.Equal(t, int64(10), lowest)

	require.NoError(t, store.Upsert(ctx, contactRecord(-3, "b", true)))
	require.NoError(t, store.Upsert(ctx, contactRecord(-1, "c", true)))
	lowest, err = store.LowestID(ctx, models.TypeContact)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), lowest)
}

func TestStorage_FindReferencing(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, contactRecord(-1, "Ann", true)))
	require.NoError(t, store.Upsert(ctx, cartRecord(-1, -1, 7, true)))
	require.NoError(t, store.Upsert(ctx, cartRecord(-2, 3, 7, true)))

	deleted := cartRecord(8, -1, 7, true)
	deleted.Entity.(*models.CartItem).ContactID = 4
	deleted.Deleted = true
	require.NoError(t, store.Upsert(ctx, deleted))

	refs, err := store.FindReferencing(ctx, models.TypeContact, -1)
	require.NoError(t, err)
	assert.Equal(t, []int64{-1}, ids(refs))

	refs, err = store.FindReferencing(ctx, models.TypeProduct, 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{-2, -1}, ids(refs))

	// Удаленные записи не считаются ссылающимися
	refs, err = store.FindReferencing(ctx, models.TypeContact, 4)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestStorage_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, contactRecord(-1, "Ann", true)))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	dirty, err := reopened.AllDirty(ctx, models.TypeContact)
	require.NoError(t, err)
	assert.Equal(t, []int64{-1}, ids(dirty))
}

func TestStorage_Closed(t *testing.T) {
	store, _ := createTestStorage(t)
	require.NoError(t, store.Close())

	ctx := context.Background()
	_, err := store.Get(ctx, models.TypeContact, 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Upsert(ctx, contactRecord(1, "a", false)), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Delete(ctx, models.TypeContact, 1), storage.ErrStorageClosed)
	_, err = store.AllDirty(ctx, models.TypeContact)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = store.LowestID(ctx, models.TypeContact)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func ids(records []*models.Record) []int64 {
	result := make([]int64, 0, len(records))
	for _, rec := range records {
		result = append(result, rec.ID)
	}
	return result
}

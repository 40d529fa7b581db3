package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

// tableBucket returns the bucket of entity type t or an error if the type is unknown
func tableBucket(tx *bbolt.Tx, t models.EntityType) (*bbolt.Bucket, error) {
	bucket := tx.Bucket(entitiesBucket(t))
	if bucket == nil {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownEntityType, t)
	}
	return bucket, nil
}

func decodeRecord(data []byte) (*models.Record, error) {
	rec := &models.Record{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return rec, nil
}

func putRecord(bucket *bbolt.Bucket, rec *models.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := bucket.Put(encodeID(rec.ID), data); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// forEachRecord decodes every record of the bucket in id order
func forEachRecord(bucket *bbolt.Bucket, fn func(rec *models.Record) error) error {
	return bucket.ForEach(func(k, v []byte) error {
		rec, err := decodeRecord(v)
		if err != nil {
			return fmt.Errorf("record %d: %w", decodeID(k), err)
		}
		return fn(rec)
	})
}

// Get retrieves a record by id
func (s *Storage) Get(ctx context.Context, t models.EntityType, id int64) (*models.Record, error) {
	db, release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	var rec *models.Record

	err = db.View(func(tx *bbolt.Tx) error {
		bucket, err := tableBucket(tx, t)
		if err != nil {
			return err
		}

		data := bucket.Get(encodeID(id))
		if data == nil {
			return storage.ErrEntityNotFound
		}

		rec, err = decodeRecord(data)
		return err
	})

	if err != nil {
		return nil, err
	}

	return rec, nil
}

// Upsert stores or replaces a record
func (s *Storage) Upsert(ctx context.Context, rec *models.Record) error {
	db, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	if err := rec.Validate(); err != nil {
		return err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tableBucket(tx, rec.Type)
		if err != nil {
			return err
		}
		return putRecord(bucket, rec)
	})

	if err != nil {
		return fmt.Errorf("upsert transaction failed: %w", err)
	}

	return nil
}

// Delete removes a record
func (s *Storage) Delete(ctx context.Context, t models.EntityType, id int64) error {
	db, release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	err = db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tableBucket(tx, t)
		if err != nil {
			return err
		}
		return bucket.Delete(encodeID(id))
	})

	if err != nil {
		return fmt.Errorf("delete transaction failed: %w", err)
	}

	return nil
}

// AllDirty returns all dirty records of a table, pending deletions included
func (s *Storage) AllDirty(ctx context.Context, t models.EntityType) ([]*models.Record, error) {
	return s.collect(t, func(rec *models.Record) bool { return rec.Dirty })
}

// List returns records that are not pending deletion
func (s *Storage) List(ctx context.Context, t models.EntityType) ([]*models.Record, error) {
	return s.collect(t, func(rec *models.Record) bool { return !rec.Deleted })
}

func (s *Storage) collect(t models.EntityType, keep func(rec *models.Record) bool) ([]*models.Record, error) {
	db, release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	var records []*models.Record

	err = db.View(func(tx *bbolt.Tx) error {
		bucket, err := tableBucket(tx, t)
		if err != nil {
			return err
		}

		return forEachRecord(bucket, func(rec *models.Record) error {
			if keep(rec) {
				records = append(records, rec)
			}
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to read %s records: %w", t, err)
	}

	return records, nil
}

// LowestID returns the smallest id in the table or 0 if it is empty
func (s *Storage) LowestID(ctx context.Context, t models.EntityType) (int64, error) {
	db, release, err := s.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	var lowest int64

	err = db.View(func(tx *bbolt.Tx) error {
		bucket, err := tableBucket(tx, t)
		if err != nil {
			return err
		}

		// Ключи упорядочены как числа, поэтому первый ключ и есть минимальный id
		if k, _ := bucket.Cursor().First(); k != nil {
			lowest = decodeID(k)
		}
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to get lowest id: %w", err)
	}

	return lowest, nil
}

// Count returns the number of records in the table
func (s *Storage) Count(ctx context.Context, t models.EntityType) (int, error) {
	db, release, err := s.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	var count int

	err = db.View(func(tx *bbolt.Tx) error {
		bucket, err := tableBucket(tx, t)
		if err != nil {
			return err
		}
		count = bucket.Stats().KeyN
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", t, err)
	}

	return count, nil
}

// FindReferencing returns live records of dependent tables that reference (t, id)
func (s *Storage) FindReferencing(ctx context.Context, t models.EntityType, id int64) ([]*models.Record, error) {
	db, release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	var records []*models.Record

	err = db.View(func(tx *bbolt.Tx) error {
		for _, dependent := range models.Dependents(t) {
			bucket, err := tableBucket(tx, dependent)
			if err != nil {
				return err
			}

			err = forEachRecord(bucket, func(rec *models.Record) error {
				if rec.Deleted {
					return nil
				}
				for _, ref := range models.References(rec.Entity) {
					if ref.Type == t && ref.ID == id {
						records = append(records, rec)
						break
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to find references: %w", err)
	}

	return records, nil
}

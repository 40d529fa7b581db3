package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/fieldsync/internal/client/storage"
	"github.com/iudanet/fieldsync/internal/models"
)

// Reconcile moves the record stored under the temporary oldID to its permanent
// id rec.ID in a single transaction:
//  1. the record is written under rec.ID
//  2. every reference to oldID in dependent tables is rewritten to rec.ID
//  3. the remap oldID -> rec.ID is persisted
//  4. the record under oldID is removed
//
// Any failure rolls back the whole transaction, so the record stays under oldID
// and no reference is left pointing at a removed id.
func (s *Storage) Reconcile(ctx context.Context, oldID int64, rec *models.Record) (*storage.ReconcileResult, error) {
	db, release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if oldID >= 0 || rec.ID <= 0 {
		return nil, fmt.Errorf("%w: cannot reconcile %d to %d", models.ErrInvalidRecord, oldID, rec.ID)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	result := &storage.ReconcileResult{}

	err = db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tableBucket(tx, rec.Type)
		if err != nil {
			return err
		}

		if bucket.Get(encodeID(oldID)) == nil {
			return storage.ErrEntityNotFound
		}
		if bucket.Get(encodeID(rec.ID)) != nil {
			return fmt.Errorf("%w: %s %d", storage.ErrIDConflict, rec.Type, rec.ID)
		}

		if err := putRecord(bucket, rec); err != nil {
			return err
		}

		// Переписываем ссылки до удаления старой записи, в той же транзакции
		for _, dependent := range models.Dependents(rec.Type) {
			rewritten, err := rewriteReferences(tx, dependent, rec.Type, oldID, rec.ID)
			if err != nil {
				return fmt.Errorf("failed to rewrite %s references: %w", dependent, err)
			}
			result.Rewritten = append(result.Rewritten, rewritten...)
		}

		idMap := tx.Bucket(idMapBucket(rec.Type))
		if idMap == nil {
			return fmt.Errorf("%s id map bucket not found", rec.Type)
		}
		if err := idMap.Put(encodeID(oldID), encodeID(rec.ID)); err != nil {
			return fmt.Errorf("failed to save id remap: %w", err)
		}

		return bucket.Delete(encodeID(oldID))
	})

	if err != nil {
		return nil, fmt.Errorf("reconcile transaction failed: %w", err)
	}

	return result, nil
}

// rewriteReferences updates every record of table dependent that references
// (target, oldID). Records are collected first: bbolt forbids modifying a
// bucket while iterating it with ForEach.
func rewriteReferences(tx *bbolt.Tx, dependent, target models.EntityType, oldID, newID int64) ([]models.Reference, error) {
	bucket, err := tableBucket(tx, dependent)
	if err != nil {
		return nil, err
	}

	var changed []*models.Record
	err = forEachRecord(bucket, func(rec *models.Record) error {
		entity, ok, err := models.RewriteReference(rec.Entity, target, oldID, newID)
		if err != nil {
			return err
		}
		if ok {
			rec.Entity = entity
			changed = append(changed, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	refs := make([]models.Reference, 0, len(changed))
	for _, rec := range changed {
		if err := putRecord(bucket, rec); err != nil {
			return nil, err
		}
		refs = append(refs, models.Reference{Type: rec.Type, ID: rec.ID})
	}

	return refs, nil
}

// ResolveID follows a temporary-to-permanent remap
func (s *Storage) ResolveID(ctx context.Context, t models.EntityType, id int64) (int64, error) {
	db, release, err := s.acquire()
	if err != nil {
		return 0, err
	}
	defer release()

	// Только временные id могут быть переназначены
	if id >= 0 {
		return id, nil
	}

	resolved := id

	err = db.View(func(tx *bbolt.Tx) error {
		idMap := tx.Bucket(idMapBucket(t))
		if idMap == nil {
			return fmt.Errorf("%w: %q", models.ErrUnknownEntityType, t)
		}
		if v := idMap.Get(encodeID(id)); v != nil {
			resolved = decodeID(v)
		}
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to resolve id: %w", err)
	}

	return resolved, nil
}

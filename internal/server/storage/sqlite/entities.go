package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/fieldsync/internal/server/storage"
)

var _ storage.EntityStorage = (*Storage)(nil)

// Create stores a new entity. Replaying a create with a known client_ref
// returns the id assigned the first time.
func (s *Storage) Create(ctx context.Context, e *storage.Entity) (int64, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		existingID   int64
		existingType string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT id, type FROM entities WHERE client_ref = ?`, e.ClientRef,
	).Scan(&existingID, &existingType)

	switch {
	case err == nil:
		if existingType != e.Type {
			return 0, false, fmt.Errorf("%w: %s", storage.ErrClientRefConflict, e.ClientRef)
		}
		// Повторный запрос того же клиента, запись уже создана
		return existingID, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, false, fmt.Errorf("failed to look up client_ref: %w", err)
	}

	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = now
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO entities (type, client_ref, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.Type, e.ClientRef, string(e.Data), e.CreatedAt.Unix(), e.UpdatedAt.Unix())
	if err != nil {
		return 0, false, fmt.Errorf("failed to insert entity: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to get entity id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	e.ID = id
	return id, true, nil
}

// Update replaces the payload of an entity
func (s *Storage) Update(ctx context.Context, t string, id int64, data json.RawMessage) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE entities SET data = ?, updated_at = ?
		WHERE id = ? AND type = ?
	`, string(data), time.Now().Unix(), id, t)
	if err != nil {
		return fmt.Errorf("failed to update entity: %w", err)
	}
	return checkAffected(res)
}

// Delete removes an entity
func (s *Storage) Delete(ctx context.Context, t string, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entities WHERE id = ? AND type = ?`, id, t)
	if err != nil {
		return fmt.Errorf("failed to delete entity: %w", err)
	}
	return checkAffected(res)
}

// Get retrieves an entity by id
func (s *Storage) Get(ctx context.Context, t string, id int64) (*storage.Entity, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, type, client_ref, data, created_at, updated_at
		FROM entities
		WHERE id = ? AND type = ?
	`, id, t)

	e, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEntityNotFound
		}
		return nil, fmt.Errorf("failed to get entity: %w", err)
	}
	return e, nil
}

// List returns all entities of a type ordered by id
func (s *Storage) List(ctx context.Context, t string) ([]*storage.Entity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, client_ref, data, created_at, updated_at
		FROM entities
		WHERE type = ?
		ORDER BY id
	`, t)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	entities := make([]*storage.Entity, 0)
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entities: %w", err)
	}

	return entities, nil
}

// scanner is implemented by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanEntity(row scanner) (*storage.Entity, error) {
	e := &storage.Entity{}
	var data string
	var createdAt, updatedAt int64

	if err := row.Scan(&e.ID, &e.Type, &e.ClientRef, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	e.Data = json.RawMessage(data)
	e.CreatedAt = time.Unix(createdAt, 0)
	e.UpdatedAt = time.Unix(updatedAt, 0)
	return e, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return storage.ErrEntityNotFound
	}
	return nil
}

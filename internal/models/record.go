package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidRecord indicates that a record violates a synchronization invariant
var ErrInvalidRecord = errors.New("invalid record")

// Record is the locally cached state of one entity together with its
// synchronization attributes.
//
// ID is positive when assigned by the server and negative when allocated
// locally. Zero is never a valid id.
type Record struct {
	Entity      Entity     // Entity данные сущности
	Type        EntityType // Type таблица, к которой относится запись
	ClientRef   string     // ClientRef UUID, назначенный при локальном создании (ключ идемпотентности)
	ID          int64      // ID >0 серверный, <0 временный
	LastUpdated int64      // LastUpdated монотонно растет при каждой локальной мутации (UnixNano)
	Dirty       bool       // Dirty локальное состояние не подтверждено сервером
	Deleted     bool       // Deleted удаление ожидает отправки на сервер
}

// IsTemporary reports whether the record has never been acknowledged by the server
func (r *Record) IsTemporary() bool {
	return r.ID < 0
}

// Validate checks the record invariants:
//   - id is never zero
//   - a clean record always has a server id
//   - a pending deletion is dirty and refers to a server id
//   - the entity kind matches the record type
func (r *Record) Validate() error {
	if r.ID == 0 {
		return fmt.Errorf("%w: zero id", ErrInvalidRecord)
	}
	if !r.Dirty && r.ID < 0 {
		return fmt.Errorf("%w: clean record %d has temporary id", ErrInvalidRecord, r.ID)
	}
	if r.Deleted && (!r.Dirty || r.ID < 0) {
		return fmt.Errorf("%w: deletion of %d must be dirty with a server id", ErrInvalidRecord, r.ID)
	}
	if r.Entity == nil {
		return fmt.Errorf("%w: record %d has no entity", ErrInvalidRecord, r.ID)
	}
	if r.Entity.Type() != r.Type {
		return fmt.Errorf("%w: entity %s stored as %s", ErrInvalidRecord, r.Entity.Type(), r.Type)
	}
	return nil
}

// Clone создает глубокую копию записи
func (r *Record) Clone() *Record {
	c := *r
	if r.Entity != nil {
		c.Entity = CloneEntity(r.Entity)
	}
	return &c
}

// recordEnvelope is the persisted JSON layout of a record
type recordEnvelope struct {
	Type        EntityType      `json:"type"`
	ClientRef   string          `json:"client_ref,omitempty"`
	Data        json.RawMessage `json:"data"`
	ID          int64           `json:"id"`
	LastUpdated int64           `json:"last_updated"`
	Dirty       bool            `json:"dirty"`
	Deleted     bool            `json:"deleted"`
}

// MarshalJSON encodes the record with its entity as a nested object
func (r Record) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(r.Entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return json.Marshal(recordEnvelope{
		Type:        r.Type,
		ClientRef:   r.ClientRef,
		Data:        data,
		ID:          r.ID,
		LastUpdated: r.LastUpdated,
		Dirty:       r.Dirty,
		Deleted:     r.Deleted,
	})
}

// UnmarshalJSON decodes the entity into the concrete type named by the envelope
func (r *Record) UnmarshalJSON(b []byte) error {
	var env recordEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}

	entity, err := DecodeEntity(env.Type, env.Data)
	if err != nil {
		return err
	}

	*r = Record{
		Entity:      entity,
		Type:        env.Type,
		ClientRef:   env.ClientRef,
		ID:          env.ID,
		LastUpdated: env.LastUpdated,
		Dirty:       env.Dirty,
		Deleted:     env.Deleted,
	}
	return nil
}

// DecodeEntity decodes JSON data into the entity kind for type t
func DecodeEntity(t EntityType, data []byte) (Entity, error) {
	entity, err := NewEntity(t)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return entity, nil
	}
	if err := json.Unmarshal(data, entity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", t, err)
	}
	return entity, nil
}

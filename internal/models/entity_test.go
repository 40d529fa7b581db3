package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncOrder_ReferencedTypesFirst(t *testing.T) {
	order := SyncOrder()
	position := make(map[EntityType]int, len(order))
	for i, typ := range order {
		position[typ] = i
	}

	for _, typ := range order {
		for _, dep := range Dependencies(typ) {
			assert.Less(t, position[dep], position[typ], "%s must sync before %s", dep, typ)
		}
	}
}

func TestDependents(t *testing.T) {
	assert.Equal(t, []EntityType{TypeCartItem}, Dependents(TypeContact))
	assert.Equal(t, []EntityType{TypeCartItem}, Dependents(TypeProduct))
	assert.Empty(t, Dependents(TypeCartItem))
}

func TestParseEntityType(t *testing.T) {
	tests := []struct {
		input   string
		want    EntityType
		wantErr bool
	}{
		{input: "contact", want: TypeContact},
		{input: "product", want: TypeProduct},
		{input: "cart_item", want: TypeCartItem},
		{input: "expense", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEntityType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownEntityType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewriteReference(t *testing.T) {
	tests := []struct {
		entity      Entity
		want        Entity
		name        string
		target      EntityType
		oldID       int64
		newID       int64
		wantChanged bool
	}{
		{
			name:        "cart item contact reference",
			entity:      &CartItem{ContactID: -1, ProductID: 7, Quantity: 2},
			target:      TypeContact,
			oldID:       -1,
			newID:       42,
			want:        &CartItem{ContactID: 42, ProductID: 7, Quantity: 2},
			wantChanged: true,
		},
		{
			name:        "cart item product reference",
			entity:      &CartItem{ContactID: 3, ProductID: -4},
			target:      TypeProduct,
			oldID:       -4,
			newID:       9,
			want:        &CartItem{ContactID: 3, ProductID: 9},
			wantChanged: true,
		},
		{
			name:        "same id of another type is untouched",
			entity:      &CartItem{ContactID: -1, ProductID: -1},
			target:      TypeProduct,
			oldID:       -1,
			newID:       5,
			want:        &CartItem{ContactID: -1, ProductID: 5},
			wantChanged: true,
		},
		{
			name:   "unrelated id",
			entity: &CartItem{ContactID: -2, ProductID: 1},
			target: TypeContact,
			oldID:  -1,
			newID:  42,
			want:   &CartItem{ContactID: -2, ProductID: 1},
		},
		{
			name:   "contact has no references",
			entity: &Contact{Name: "Ann"},
			target: TypeContact,
			oldID:  -1,
			newID:  42,
			want:   &Contact{Name: "Ann"},
		},
		{
			name:        "value variant is accepted",
			entity:      CartItem{ContactID: -1},
			target:      TypeContact,
			oldID:       -1,
			newID:       8,
			want:        &CartItem{ContactID: 8},
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed, err := RewriteReference(tt.entity, tt.target, tt.oldID, tt.newID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewriteReference_DoesNotMutateInput(t *testing.T) {
	item := &CartItem{ContactID: -1}
	_, changed, err := RewriteReference(item, TypeContact, -1, 42)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, int64(-1), item.ContactID)
}

func TestRewriteReference_NilEntity(t *testing.T) {
	_, _, err := RewriteReference(nil, TypeContact, -1, 1)
	assert.ErrorIs(t, err, ErrUnknownEntityType)
}

func TestHasTemporaryReference(t *testing.T) {
	assert.True(t, HasTemporaryReference(&CartItem{ContactID: -1, ProductID: 2}))
	assert.True(t, HasTemporaryReference(&CartItem{ContactID: 1, ProductID: -2}))
	assert.False(t, HasTemporaryReference(&CartItem{ContactID: 1, ProductID: 2}))
	assert.False(t, HasTemporaryReference(&Contact{Name: "x"}))
}

func TestRecord_Validate(t *testing.T) {
	tests := []struct {
		record  Record
		name    string
		wantErr bool
	}{
		{
			name:   "dirty temporary record",
			record: Record{Type: TypeContact, ID: -1, Dirty: true, Entity: &Contact{}},
		},
		{
			name:   "clean server record",
			record: Record{Type: TypeProduct, ID: 7, Entity: &Product{}},
		},
		{
			name:   "pending deletion",
			record: Record{Type: TypeProduct, ID: 7, Dirty: true, Deleted: true, Entity: &Product{}},
		},
		{
			name:    "zero id",
			record:  Record{Type: TypeContact, ID: 0, Dirty: true, Entity: &Contact{}},
			wantErr: true,
		},
		{
			name:    "clean temporary record",
			record:  Record{Type: TypeContact, ID: -3, Entity: &Contact{}},
			wantErr: true,
		},
		{
			name:    "deletion of temporary record",
			record:  Record{Type: TypeContact, ID: -3, Dirty: true, Deleted: true, Entity: &Contact{}},
			wantErr: true,
		},
		{
			name:    "entity kind mismatch",
			record:  Record{Type: TypeProduct, ID: 1, Entity: &Contact{}},
			wantErr: true,
		},
		{
			name:    "missing entity",
			record:  Record{Type: TypeProduct, ID: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRecord)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRecord_JSONKeepsEntityKind(t *testing.T) {
	rec := Record{
		Type:        TypeCartItem,
		ID:          -2,
		ClientRef:   "ref-1",
		Dirty:       true,
		LastUpdated: 100,
		Entity:      &CartItem{ContactID: -1, ProductID: 7, Quantity: 3, Note: "urgent"},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rec, decoded)
	assert.IsType(t, &CartItem{}, decoded.Entity)
}

func TestRecord_UnmarshalUnknownType(t *testing.T) {
	var decoded Record
	err := json.Unmarshal([]byte(`{"type":"expense","id":1,"data":{}}`), &decoded)
	assert.ErrorIs(t, err, ErrUnknownEntityType)
}

func TestRecord_Clone(t *testing.T) {
	rec := &Record{Type: TypeContact, ID: 5, Entity: &Contact{Name: "Bob"}}
	clone := rec.Clone()
	clone.Entity.(*Contact).Name = "Alice"
	clone.Dirty = true

	assert.Equal(t, "Bob", rec.Entity.(*Contact).Name)
	assert.False(t, rec.Dirty)
}

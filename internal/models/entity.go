package models

import (
	"errors"
	"fmt"
)

// EntityType identifies an entity table
type EntityType string

// Entity types known to the client
const (
	TypeContact  EntityType = "contact"
	TypeProduct  EntityType = "product"
	TypeCartItem EntityType = "cart_item"
)

// ErrUnknownEntityType is returned for an entity type outside the closed set
var ErrUnknownEntityType = errors.New("unknown entity type")

// Entity is a business entity payload. The set of implementations is closed:
// only types of this package can satisfy it.
type Entity interface {
	Type() EntityType
	entity()
}

// Contact представляет контакт клиента
type Contact struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Product представляет товар из каталога
type Product struct {
	Name        string `json:"name"`
	SKU         string `json:"sku,omitempty"`
	Description string `json:"description,omitempty"`
	Currency    string `json:"currency,omitempty"`
	PriceCents  int64  `json:"price_cents"`
}

// CartItem is a line of a shopping cart. It references a contact and a product by id.
type CartItem struct {
	Note      string `json:"note,omitempty"`
	ContactID int64  `json:"contact_id"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (Contact) Type() EntityType  { return TypeContact }
func (Product) Type() EntityType  { return TypeProduct }
func (CartItem) Type() EntityType { return TypeCartItem }

func (Contact) entity()  {}
func (Product) entity()  {}
func (CartItem) entity() {}

// Reference points at a record of another entity type
type Reference struct {
	Type EntityType
	ID   int64
}

// AllTypes returns every entity type in sync order
func AllTypes() []EntityType {
	return SyncOrder()
}

// SyncOrder returns entity types so that referenced types come before the types
// that reference them.
func SyncOrder() []EntityType {
	return []EntityType{TypeContact, TypeProduct, TypeCartItem}
}

// Dependencies returns the entity types that records of type t may reference
func Dependencies(t EntityType) []EntityType {
	switch t {
	case TypeCartItem:
		return []EntityType{TypeContact, TypeProduct}
	default:
		return nil
	}
}

// Dependents returns the entity types whose records may reference type t
func Dependents(t EntityType) []EntityType {
	var result []EntityType
	for _, candidate := range SyncOrder() {
		for _, dep := range Dependencies(candidate) {
			if dep == t {
				result = append(result, candidate)
			}
		}
	}
	return result
}

// ParseEntityType validates a string as an entity type
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(s)
	switch t {
	case TypeContact, TypeProduct, TypeCartItem:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, s)
	}
}

// NewEntity returns an empty entity of type t
func NewEntity(t EntityType) (Entity, error) {
	switch t {
	case TypeContact:
		return &Contact{}, nil
	case TypeProduct:
		return &Product{}, nil
	case TypeCartItem:
		return &CartItem{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, t)
	}
}

// References returns the records e points at
func References(e Entity) []Reference {
	if v, ok := normalize(e).(*CartItem); ok {
		return []Reference{
			{Type: TypeContact, ID: v.ContactID},
			{Type: TypeProduct, ID: v.ProductID},
		}
	}
	return nil
}

// HasTemporaryReference reports whether e still references a record that has
// not been assigned a permanent id.
func HasTemporaryReference(e Entity) bool {
	for _, ref := range References(e) {
		if ref.ID < 0 {
			return true
		}
	}
	return false
}

// RewriteReference returns a copy of e where every reference to (target, oldID)
// is replaced with newID. The bool result reports whether a reference changed.
func RewriteReference(e Entity, target EntityType, oldID, newID int64) (Entity, bool, error) {
	switch v := normalize(e).(type) {
	case *Contact:
		c := *v
		return &c, false, nil
	case *Product:
		p := *v
		return &p, false, nil
	case *CartItem:
		item := *v
		changed := false
		if target == TypeContact && item.ContactID == oldID {
			item.ContactID = newID
			changed = true
		}
		if target == TypeProduct && item.ProductID == oldID {
			item.ProductID = newID
			changed = true
		}
		return &item, changed, nil
	case nil:
		return nil, false, fmt.Errorf("%w: nil entity", ErrUnknownEntityType)
	default:
		return nil, false, fmt.Errorf("%w: %T", ErrUnknownEntityType, e)
	}
}

// normalize приводит value-варианты сущностей к указателям
func normalize(e Entity) Entity {
	switch v := e.(type) {
	case Contact:
		return &v
	case Product:
		return &v
	case CartItem:
		return &v
	default:
		return e
	}
}

// CloneEntity returns a copy of e
func CloneEntity(e Entity) Entity {
	switch v := normalize(e).(type) {
	case *Contact:
		c := *v
		return &c
	case *Product:
		p := *v
		return &p
	case *CartItem:
		item := *v
		return &item
	default:
		return e
	}
}

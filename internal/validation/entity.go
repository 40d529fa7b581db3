package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/iudanet/fieldsync/internal/models"
)

// ErrInvalidEntity is wrapped by every validation failure
var ErrInvalidEntity = errors.New("invalid entity")

var (
	// EmailPattern проверяет адрес на базовом уровне: local@domain.tld
	EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// SKUPattern: латинские буквы в верхнем регистре, цифры и дефис, 1-32 символа
	SKUPattern = regexp.MustCompile(`^[A-Z0-9-]{1,32}$`)

	// CurrencyPattern: код ISO 4217 из трех букв
	CurrencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

const (
	// MaxNameLen максимальная длина имени контакта или товара
	MaxNameLen = 200
	// MaxQuantity максимальное количество товара в одной позиции корзины
	MaxQuantity = 10000
)

// ValidateEntity checks the field constraints of an entity.
// References are only checked for being set; whether they point at existing
// records is up to the caller.
func ValidateEntity(e models.Entity) error {
	switch v := e.(type) {
	case *models.Contact:
		return ValidateContact(v)
	case models.Contact:
		return ValidateContact(&v)
	case *models.Product:
		return ValidateProduct(v)
	case models.Product:
		return ValidateProduct(&v)
	case *models.CartItem:
		return ValidateCartItem(v)
	case models.CartItem:
		return ValidateCartItem(&v)
	case nil:
		return fmt.Errorf("%w: entity is missing", ErrInvalidEntity)
	default:
		return fmt.Errorf("%w: unsupported kind %T", ErrInvalidEntity, e)
	}
}

// ValidateContact проверяет контакт: имя обязательно, email опционален
func ValidateContact(c *models.Contact) error {
	if err := validateName(c.Name); err != nil {
		return err
	}

	if c.Email != "" && !EmailPattern.MatchString(c.Email) {
		return fmt.Errorf("%w: email %q is malformed", ErrInvalidEntity, c.Email)
	}

	return nil
}

// ValidateProduct проверяет товар
func ValidateProduct(p *models.Product) error {
	if err := validateName(p.Name); err != nil {
		return err
	}

	if p.SKU != "" && !SKUPattern.MatchString(p.SKU) {
		return fmt.Errorf("%w: sku can only contain A-Z, 0-9 and '-' (1-32 characters)", ErrInvalidEntity)
	}

	if p.PriceCents < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidEntity)
	}

	if p.Currency != "" && !CurrencyPattern.MatchString(p.Currency) {
		return fmt.Errorf("%w: currency must be a 3-letter ISO code", ErrInvalidEntity)
	}

	return nil
}

// ValidateCartItem проверяет позицию корзины
func ValidateCartItem(item *models.CartItem) error {
	if item.ContactID == 0 {
		return fmt.Errorf("%w: contact is required", ErrInvalidEntity)
	}
	if item.ProductID == 0 {
		return fmt.Errorf("%w: product is required", ErrInvalidEntity)
	}
	if item.Quantity < 1 || item.Quantity > MaxQuantity {
		return fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidEntity, MaxQuantity)
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidEntity)
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidEntity, MaxNameLen)
	}
	return nil
}

package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents request to add a catalog item
type CreateItemRequest struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Stock    int             `json:"stock"`
	Brand    *string         `json:"brand"`
}

func (r CreateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 300)),
		validation.Field(&r.SKU, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.Price, validation.By(nonNegativeDecimal)),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

// UpdateItemRequest represents a partial item update; nil fields are untouched.
type UpdateItemRequest struct {
	Name     *string          `json:"name"`
	SKU      *string          `json:"sku"`
	Price    *decimal.Decimal `json:"price"`
	Category *string          `json:"category"`
	Stock    *int             `json:"stock"`
	Brand    *string          `json:"brand"`
	IsActive *bool            `json:"is_active"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 300)),
		validation.Field(&r.SKU, validation.NilOrNotEmpty, validation.Length(1, 64)),
		validation.Field(&r.Price, validation.By(nonNegativeDecimalPtr)),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

// ItemResponse represents an item in API responses
type ItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
	Brand     *string         `json:"brand,omitempty"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ListItemsFilter narrows catalog listings.
type ListItemsFilter struct {
	Search   string // matches name or SKU
	Category string
	Page     int
	Limit    int
}

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return validation.NewError("validation_decimal", "must be a decimal")
	}
	if d.IsNegative() {
		return validation.NewError("validation_negative", "must not be negative")
	}
	return nil
}

func nonNegativeDecimalPtr(value interface{}) error {
	d, ok := value.(*decimal.Decimal)
	if !ok || d == nil {
		return nil
	}
	return nonNegativeDecimal(*d)
}

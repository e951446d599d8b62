package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item represents a pharmacy catalog product.
// Stock is mutated only by inventory operations and the checkout decrement;
// items referenced by historical sales are deactivated, never hard-deleted.
type Item struct {
	ID       uuid.UUID       `json:"id" db:"id"`
	Name     string          `json:"name" db:"name"`
	SKU      string          `json:"sku" db:"sku"`
	Price    decimal.Decimal `json:"price" db:"price"`
	Category string          `json:"category" db:"category"`
	Stock    int             `json:"stock" db:"stock"`
	Brand    *string         `json:"brand,omitempty" db:"brand"`
	IsActive bool            `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ToResponse converts Item to ItemResponse
func (i *Item) ToResponse() ItemResponse {
	return ItemResponse{
		ID:        i.ID,
		Name:      i.Name,
		SKU:       i.SKU,
		Price:     i.Price,
		Category:  i.Category,
		Stock:     i.Stock,
		Brand:     i.Brand,
		IsActive:  i.IsActive,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// ToResponseList converts a slice of items.
func ToResponseList(items []Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for idx := range items {
		out[idx] = items[idx].ToResponse()
	}
	return out
}

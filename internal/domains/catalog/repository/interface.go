package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pharmapos-backend/internal/domains/catalog/model"
)

// RepositoryInterface defines catalog data access.
type RepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Item, error)
	GetBySKU(ctx context.Context, sku string) (*model.Item, error)
	List(ctx context.Context, filter *model.ListItemsFilter) ([]model.Item, int, error)

	Create(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, item *model.Item) error
	Deactivate(ctx context.Context, id uuid.UUID) error

	// DecrementStockWithTx reduces stock for an item inside an existing
	// transaction, flooring at zero. Used by checkout.
	DecrementStockWithTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, qty int) error
}

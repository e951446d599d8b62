package service

import (
	"context"

	"github.com/google/uuid"

	"pharmapos-backend/internal/domains/catalog/model"
)

type ServiceInterface interface {
	CreateItem(ctx context.Context, req model.CreateItemRequest) (*model.ItemResponse, error)
	GetItem(ctx context.Context, id uuid.UUID) (*model.ItemResponse, error)
	ListItems(ctx context.Context, filter *model.ListItemsFilter) ([]model.ItemResponse, int, error)
	UpdateItem(ctx context.Context, id uuid.UUID, req model.UpdateItemRequest) (*model.ItemResponse, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error

	// LookupItems resolves a set of item ids to live catalog records.
	// Used by the POS cart when freezing prices at add time.
	LookupItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Item, error)
}

package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"pharmapos-backend/internal/domains/catalog/model"
	"pharmapos-backend/internal/domains/catalog/repository"
)

type CatalogService struct {
	repo repository.RepositoryInterface
}

// NewService creates a new catalog service
func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &CatalogService{repo: repo}
}

// CreateItem adds a new product to the catalog.
func (s *CatalogService) CreateItem(ctx context.Context, req model.CreateItemRequest) (*model.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item := model.Item{
		ID:       uuid.New(),
		Name:     req.Name,
		SKU:      req.SKU,
		Price:    req.Price,
		Category: req.Category,
		Stock:    req.Stock,
		Brand:    req.Brand,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}

	resp := item.ToResponse()
	return &resp, nil
}

// GetItem fetches a single item by id.
func (s *CatalogService) GetItem(ctx context.Context, id uuid.UUID) (*model.ItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := item.ToResponse()
	return &resp, nil
}

// ListItems returns a filtered, paginated catalog page.
func (s *CatalogService) ListItems(ctx context.Context, filter *model.ListItemsFilter) ([]model.ItemResponse, int, error) {
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return model.ToResponseList(items), total, nil
}

// UpdateItem applies a partial update; only non-nil fields change.
func (s *CatalogService) UpdateItem(ctx context.Context, id uuid.UUID, req model.UpdateItemRequest) (*model.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.SKU != nil {
		item.SKU = *req.SKU
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
	if req.Brand != nil {
		item.Brand = req.Brand
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	resp := item.ToResponse()
	return &resp, nil
}

// DeleteItem deactivates an item. Soft delete only: items referenced by
// historical sales must stay resolvable for reporting.
func (s *CatalogService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}

// LookupItems resolves ids to live items, keyed by id.
func (s *CatalogService) LookupItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Item, error) {
	items, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup items: %w", err)
	}

	out := make(map[uuid.UUID]model.Item, len(items))
	for _, item := range items {
		out[item.ID] = item
	}
	return out, nil
}

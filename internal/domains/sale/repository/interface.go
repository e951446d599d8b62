package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pharmapos-backend/internal/domains/sale/model"
)

// SaleRepository defines transaction log access. Sales are append-only.
type SaleRepository interface {
	// CreateWithTx appends the sale and its lines inside a checkout tx.
	CreateWithTx(ctx context.Context, tx pgx.Tx, sale *model.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context, filter model.ListSalesFilter) ([]model.Transaction, int64, error)
	// ListInRange returns every sale in the window, oldest first. Used by
	// the reporting queries; no pagination.
	ListInRange(ctx context.Context, filter model.ListSalesFilter) ([]model.Transaction, error)
}

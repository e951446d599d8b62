package service

import (
	"context"

	"github.com/google/uuid"

	"pharmapos-backend/internal/domains/sale/model"
)

// SaleService finalizes carts into immutable transactions and reports on
// the transaction log.
type SaleService interface {
	// Checkout atomically records the sale, decrements stock and redeems
	// the applied coupon, then discards the cart.
	Checkout(ctx context.Context, sessionID string, operatorID uuid.UUID, req model.CheckoutRequest) (*model.Transaction, error)
	GetSale(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	ListSales(ctx context.Context, filter model.ListSalesFilter) ([]model.Transaction, int64, error)
	Summary(ctx context.Context, filter model.ListSalesFilter) (*model.SalesSummary, error)
	VendorCompensationReport(ctx context.Context, filter model.ListSalesFilter) ([]model.VendorCompensationRow, error)
	ItemSalesReport(ctx context.Context, filter model.ListSalesFilter) ([]model.ItemSalesRow, error)
}

package service

import (
	"context"

	"github.com/google/uuid"

	"pharmapos-backend/internal/domains/cart/model"
)

// CartService drives the register cart for one terminal session
type CartService interface {
	// StartSession opens a fresh empty cart and returns its session id.
	StartSession(ctx context.Context) (*model.CartResponse, error)
	GetCart(ctx context.Context, sessionID string) (*model.CartResponse, error)
	AddItem(ctx context.Context, sessionID string, req model.AddLineRequest) (*model.CartResponse, error)
	UpdateQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, req model.UpdateLineRequest) (*model.CartResponse, error)
	RemoveItem(ctx context.Context, sessionID string, itemID uuid.UUID) (*model.CartResponse, error)
	// ApplyCoupon runs the validation gate; a rejection is a verdict,
	// not an error.
	ApplyCoupon(ctx context.Context, sessionID string, req model.ApplyCouponRequest) (*model.CouponVerdict, error)
	// RemoveCoupon always succeeds when a coupon is applied.
	RemoveCoupon(ctx context.Context, sessionID string) (*model.CartResponse, error)
	ClearCart(ctx context.Context, sessionID string) error
}

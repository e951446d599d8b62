package service

import (
	"context"

	"github.com/google/uuid"

	"pharmapos-backend/internal/domains/coupon/model"
)

// CouponService defines coupon administration operations
type CouponService interface {
	ListCoupons(ctx context.Context, filter model.ListCouponsFilter) ([]model.CouponResponse, int64, error)
	GetCoupon(ctx context.Context, id uuid.UUID) (*model.CouponResponse, error)
	CreateCoupon(ctx context.Context, req model.CreateCouponRequest) (*model.CouponResponse, error)
	UpdateCoupon(ctx context.Context, id uuid.UUID, req model.UpdateCouponRequest) (*model.CouponResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, active bool) (*model.CouponResponse, error)
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
	// ResetRedemption re-arms a single-use coupon that was already redeemed.
	ResetRedemption(ctx context.Context, id uuid.UUID) (*model.CouponResponse, error)
}

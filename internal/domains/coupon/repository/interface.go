package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pharmapos-backend/internal/domains/coupon/model"
)

// CouponRepository defines coupon data access
type CouponRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)
	// FindByCode matches the code case-insensitively.
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	List(ctx context.Context, filter model.ListCouponsFilter) ([]model.Coupon, int64, error)
	Create(ctx context.Context, coupon *model.Coupon) error
	Update(ctx context.Context, coupon *model.Coupon) error
	UpdateStatus(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ResetRedemption clears the redeemed flag of a single-use coupon.
	ResetRedemption(ctx context.Context, id uuid.UUID) error
	// RecordRedemptionWithTx bumps usage_count and, for single-use
	// coupons, marks the coupon redeemed. Runs inside a checkout tx and
	// returns ErrCouponRedeemed when a single-use coupon was already
	// taken by a concurrent checkout.
	RecordRedemptionWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	CheckCodeExists(ctx context.Context, code string) (bool, error)
}

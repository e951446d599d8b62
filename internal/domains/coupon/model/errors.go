package model

import "errors"

// Application rejections are expected, recoverable, user-visible outcomes.
// The gate returns them as values; they are never Go errors.

// RejectionReason tags why a coupon could not be applied to a cart.
type RejectionReason string

const (
	ReasonInvalidCode           RejectionReason = "INVALID_CODE"
	ReasonAlreadyRedeemed       RejectionReason = "ALREADY_REDEEMED"
	ReasonInactive              RejectionReason = "INACTIVE"
	ReasonNotYetValid           RejectionReason = "NOT_YET_VALID"
	ReasonExpired               RejectionReason = "EXPIRED"
	ReasonExistingNotCombinable RejectionReason = "EXISTING_NOT_COMBINABLE"
	ReasonNoEligibleItems       RejectionReason = "NO_ELIGIBLE_ITEMS"
	ReasonMissingTriggerItems   RejectionReason = "MISSING_TRIGGER_ITEMS"
	ReasonBelowMinimumPurchase  RejectionReason = "BELOW_MINIMUM_PURCHASE"
)

// Rejection is the gate's verdict when a coupon is refused.
type Rejection struct {
	Reason  RejectionReason `json:"reason"`
	Message string          `json:"message"`
}

// Store / admin errors (real errors, not verdicts).
var (
	ErrCouponNotFound       = errors.New("coupon not found")
	ErrDuplicateCode        = errors.New("a coupon with this code already exists")
	ErrInvalidDiscountType  = errors.New("invalid discount type")
	ErrInvalidUsageLimit    = errors.New("usage_limit must be SINGLE or MULTI")
	ErrInvalidCompensation  = errors.New("invalid compensation configuration")
	ErrCouponNotRedeemed    = errors.New("coupon has not been redeemed")
	ErrCouponRedeemed       = errors.New("coupon has already been redeemed")
	ErrNotSingleUse         = errors.New("only SINGLE usage coupons carry a redeemed flag")
)

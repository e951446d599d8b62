package model

import (
	"errors"
	"fmt"
)

var (
	ErrSaleNotFound         = errors.New("sale not found")
	ErrInvalidPaymentMethod = errors.New("payment_method must be CASH or CARD")
	ErrInvalidDateRange     = errors.New("from date must not be after to date")
	ErrCouponNoLongerValid  = errors.New("applied coupon is no longer valid")
)

// NewCouponNoLongerValid wraps ErrCouponNoLongerValid with the gate's
// re-check message so the cashier sees why checkout was blocked.
func NewCouponNoLongerValid(reason string) error {
	return fmt.Errorf("%w: %s", ErrCouponNoLongerValid, reason)
}

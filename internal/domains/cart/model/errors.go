package model

import "errors"

var (
	ErrCartNotFound     = errors.New("no cart for this session")
	ErrLineNotFound     = errors.New("item is not in the cart")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNoCouponApplied  = errors.New("no coupon is applied to this cart")
	ErrSessionRequired  = errors.New("a session id is required")
	ErrItemUnavailable  = errors.New("item is not available for sale")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)

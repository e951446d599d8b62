package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddLineRequest represents request to add an item to the cart
type AddLineRequest struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

func (r AddLineRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ItemID, validation.Required),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(999)),
	)
}

// UpdateLineRequest represents request to change a line quantity
type UpdateLineRequest struct {
	Quantity int `json:"quantity"`
}

func (r UpdateLineRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(999)),
	)
}

// ApplyCouponRequest carries the submitted coupon code.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

func (r ApplyCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(1, 64)),
	)
}

// CartResponse is the cart plus engine-computed totals.
type CartResponse struct {
	SessionID         string          `json:"session_id"`
	Lines             []CartLine      `json:"lines"`
	ItemsCount        int             `json:"items_count"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Discount          decimal.Decimal `json:"discount"`
	Total             decimal.Decimal `json:"total"`
	AppliedCouponCode *string         `json:"applied_coupon_code,omitempty"`
	CouponDescription *string         `json:"coupon_description,omitempty"`
}

// CouponVerdict is returned from an apply attempt: either accepted, or a
// rejection reason the UI can surface.
type CouponVerdict struct {
	Accepted bool          `json:"accepted"`
	Code     string        `json:"code,omitempty"`
	Reason   string        `json:"reason,omitempty"`
	Message  string        `json:"message,omitempty"`
	Cart     *CartResponse `json:"cart,omitempty"`
}

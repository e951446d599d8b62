package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer settled the sale
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentCash || m == PaymentCard
}

// SaleLine is a sold cart line, frozen at checkout.
type SaleLine struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CouponSnapshot freezes the discount-relevant coupon fields at the moment
// of sale. Reports read this snapshot only; the live coupon can be edited
// or deleted afterwards without changing recorded sales.
type CouponSnapshot struct {
	Code                     string          `json:"code"`
	Description              string          `json:"description"`
	VendorName               string          `json:"vendor_name"`
	CompensationType         string          `json:"compensation_type"`
	DiscountType             string          `json:"discount_type"`
	Value                    decimal.Decimal `json:"value"`
	ApplicableItemIDs        []uuid.UUID     `json:"applicable_item_ids"`
	PartnershipVendorPercent *int            `json:"partnership_vendor_percent,omitempty"`
	PartnershipMEPPercent    *int            `json:"partnership_mep_percent,omitempty"`
}

// Transaction is a completed sale. Immutable once created.
type Transaction struct {
	ID             uuid.UUID       `json:"id"`
	Lines          []SaleLine      `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
	CouponCode     *string         `json:"coupon_code,omitempty"`
	CouponSnapshot *CouponSnapshot `json:"coupon_snapshot,omitempty"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	OperatorID     uuid.UUID       `json:"operator_id"`
	Branch         string          `json:"branch"`
	CreatedAt      time.Time       `json:"created_at"`
}

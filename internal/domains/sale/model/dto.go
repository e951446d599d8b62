package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutRequest finalizes the current register cart
type CheckoutRequest struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PaymentMethod, validation.Required, validation.By(func(value interface{}) error {
			m, _ := value.(PaymentMethod)
			if !m.IsValid() {
				return validation.NewError("validation_payment", "payment_method must be CASH or CARD")
			}
			return nil
		})),
	)
}

// ListSalesFilter narrows sale listings by date range.
type ListSalesFilter struct {
	From  *time.Time
	To    *time.Time
	Page  int
	Limit int
}

// SalesSummary aggregates sales over a period.
type SalesSummary struct {
	Count         int64           `json:"count"`
	GrossSales    decimal.Decimal `json:"gross_sales"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	NetSales      decimal.Decimal `json:"net_sales"`
}

// VendorCompensationRow is one coupon's payout line in the vendor report.
// Built entirely from transaction snapshots.
type VendorCompensationRow struct {
	CouponCode       string          `json:"coupon_code"`
	VendorName       string          `json:"vendor_name"`
	CompensationType string          `json:"compensation_type"`
	Redemptions      int             `json:"redemptions"`
	TotalDiscount    decimal.Decimal `json:"total_discount"`
	VendorShare      decimal.Decimal `json:"vendor_share"`
	MEPShare         decimal.Decimal `json:"mep_share"`
}

// ItemSalesRow is one sold line in the item report, with the sale's
// discount allocated proportionally across its eligible lines.
type ItemSalesRow struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	SoldAt        time.Time       `json:"sold_at"`
	ItemID        uuid.UUID       `json:"item_id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Quantity      int             `json:"quantity"`
	GrossAmount   decimal.Decimal `json:"gross_amount"`
	Discount      decimal.Decimal `json:"discount"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	CouponCode    *string         `json:"coupon_code,omitempty"`
}

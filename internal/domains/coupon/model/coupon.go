package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType enumerates the five discount models.
type DiscountType string

const (
	DiscountTypePercentage       DiscountType = "PERCENTAGE"
	DiscountTypeFixedAmount      DiscountType = "FIXED_AMOUNT"
	DiscountTypeBOGO             DiscountType = "BOGO"
	DiscountTypeBundlePercentage DiscountType = "BUNDLE_PERCENTAGE"
	DiscountTypeBundleFixed      DiscountType = "BUNDLE_FIXED"
)

func (dt DiscountType) IsValid() bool {
	switch dt {
	case DiscountTypePercentage, DiscountTypeFixedAmount, DiscountTypeBOGO,
		DiscountTypeBundlePercentage, DiscountTypeBundleFixed:
		return true
	}
	return false
}

func (dt DiscountType) String() string {
	return string(dt)
}

// IsBundle reports whether the type is triggered by required items.
func (dt DiscountType) IsBundle() bool {
	return dt == DiscountTypeBundlePercentage || dt == DiscountTypeBundleFixed
}

// UsageLimit controls whether a coupon is one-shot or reusable.
type UsageLimit string

const (
	UsageLimitSingle UsageLimit = "SINGLE"
	UsageLimitMulti  UsageLimit = "MULTI"
)

func (ul UsageLimit) IsValid() bool {
	return ul == UsageLimitSingle || ul == UsageLimitMulti
}

// CompensationType records who bears the cost of a discount.
type CompensationType string

const (
	CompensationVendorClaim CompensationType = "VENDOR_CLAIM"
	CompensationMEPClaim    CompensationType = "MEP_CLAIM"
	CompensationPartnership CompensationType = "PARTNERSHIP"
)

func (ct CompensationType) IsValid() bool {
	switch ct {
	case CompensationVendorClaim, CompensationMEPClaim, CompensationPartnership:
		return true
	}
	return false
}

// Coupon is a promotional rule. Codes are unique case-insensitively within
// the active set. Once applied to a completed sale the discount-relevant
// fields are snapshotted by the sale domain; the live record stays mutable.
type Coupon struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Description string    `json:"description" db:"description"`

	// Discount configuration. Value semantics depend on the type:
	// percent for PERCENTAGE/BUNDLE_PERCENTAGE, money for
	// FIXED_AMOUNT/BUNDLE_FIXED, ignored for BOGO (free means 100% off).
	DiscountType      DiscountType     `json:"discount_type" db:"discount_type"`
	Value             decimal.Decimal  `json:"value" db:"value"`
	MinPurchaseAmount *decimal.Decimal `json:"min_purchase_amount,omitempty" db:"min_purchase_amount"`

	// Validity window, date-only, each side optional.
	StartDate *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty" db:"end_date"`

	Active       bool       `json:"active" db:"active"`
	IsCombinable bool       `json:"is_combinable" db:"is_combinable"`
	UsageLimit   UsageLimit `json:"usage_limit" db:"usage_limit"`
	UsageCount   int        `json:"usage_count" db:"usage_count"`
	// Redeemed is only meaningful for SINGLE usage; once true it blocks
	// further application until explicitly reset.
	Redeemed bool `json:"redeemed" db:"redeemed"`

	// Vendor / compensation bookkeeping.
	VendorName               string           `json:"vendor_name" db:"vendor_name"`
	CompensationType         CompensationType `json:"compensation_type" db:"compensation_type"`
	PartnershipVendorPercent *int             `json:"partnership_vendor_percent,omitempty" db:"partnership_vendor_percent"`
	PartnershipMEPPercent    *int             `json:"partnership_mep_percent,omitempty" db:"partnership_mep_percent"`

	// ApplicableItemIDs is the reward set: items the discount reduces.
	// Empty means "all items".
	ApplicableItemIDs []uuid.UUID `json:"applicable_item_ids" db:"applicable_item_ids"`
	// RequiredItemIDs is the bundle trigger set; only meaningful for
	// BUNDLE_* types.
	RequiredItemIDs []uuid.UUID `json:"required_item_ids" db:"required_item_ids"`

	// BOGO configuration.
	BuyQuantity *int `json:"buy_quantity,omitempty" db:"buy_quantity"`
	GetQuantity *int `json:"get_quantity,omitempty" db:"get_quantity"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NormalizeCode uppercases and trims a coupon code. Codes match
// case-insensitively, so every lookup and store goes through this.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeCode normalizes the coupon's own code in place.
func (c *Coupon) NormalizeCode() {
	c.Code = NormalizeCode(c.Code)
}

// BOGOQuantities returns buy/get with the original's defaults of 1.
func (c *Coupon) BOGOQuantities() (buy, get int) {
	buy, get = 1, 1
	if c.BuyQuantity != nil && *c.BuyQuantity > 0 {
		buy = *c.BuyQuantity
	}
	if c.GetQuantity != nil && *c.GetQuantity > 0 {
		get = *c.GetQuantity
	}
	return buy, get
}

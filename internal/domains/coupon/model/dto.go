package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCouponRequest represents request to create a coupon
type CreateCouponRequest struct {
	Code        string `json:"code"`
	Description string `json:"description"`

	DiscountType      DiscountType     `json:"discount_type"`
	Value             decimal.Decimal  `json:"value"`
	MinPurchaseAmount *decimal.Decimal `json:"min_purchase_amount"`

	StartDate *string `json:"start_date"` // YYYY-MM-DD
	EndDate   *string `json:"end_date"`   // YYYY-MM-DD

	Active       bool       `json:"active"`
	IsCombinable bool       `json:"is_combinable"`
	UsageLimit   UsageLimit `json:"usage_limit"`

	VendorName               string           `json:"vendor_name"`
	CompensationType         CompensationType `json:"compensation_type"`
	PartnershipVendorPercent *int             `json:"partnership_vendor_percent"`
	PartnershipMEPPercent    *int             `json:"partnership_mep_percent"`

	ApplicableItemIDs []uuid.UUID `json:"applicable_item_ids"`
	RequiredItemIDs   []uuid.UUID `json:"required_item_ids"`

	BuyQuantity *int `json:"buy_quantity"`
	GetQuantity *int `json:"get_quantity"`
}

func (r CreateCouponRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(2, 64)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.DiscountType, validation.Required, validation.By(validDiscountType)),
		validation.Field(&r.UsageLimit, validation.Required, validation.By(validUsageLimit)),
		validation.Field(&r.VendorName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.CompensationType, validation.Required, validation.By(validCompensationType)),
		validation.Field(&r.StartDate, validation.By(validDateString)),
		validation.Field(&r.EndDate, validation.By(validDateString)),
	)
	if err != nil {
		return err
	}

	return r.validateSemantics()
}

// validateSemantics enforces cross-field rules the struct tags cannot express.
func (r CreateCouponRequest) validateSemantics() error {
	errs := validation.Errors{}

	switch r.DiscountType {
	case DiscountTypePercentage, DiscountTypeBundlePercentage:
		if r.Value.LessThanOrEqual(decimal.Zero) || r.Value.GreaterThan(decimal.NewFromInt(100)) {
			errs["value"] = validation.NewError("validation_percent", "percentage value must be between 0 and 100")
		}
	case DiscountTypeFixedAmount, DiscountTypeBundleFixed:
		if r.Value.LessThanOrEqual(decimal.Zero) {
			errs["value"] = validation.NewError("validation_positive", "fixed amount must be positive")
		}
	case DiscountTypeBOGO:
		// Value is ignored for BOGO (free units are 100% off), but the
		// quantities must make sense.
		if r.BuyQuantity == nil || *r.BuyQuantity < 1 {
			errs["buy_quantity"] = validation.NewError("validation_bogo", "buy_quantity must be at least 1")
		}
		if r.GetQuantity == nil || *r.GetQuantity < 1 {
			errs["get_quantity"] = validation.NewError("validation_bogo", "get_quantity must be at least 1")
		}
	}

	if r.DiscountType.IsBundle() && len(r.RequiredItemIDs) == 0 {
		errs["required_item_ids"] = validation.NewError("validation_bundle", "bundle coupons need at least one required item")
	}

	if r.MinPurchaseAmount != nil && r.MinPurchaseAmount.IsNegative() {
		errs["min_purchase_amount"] = validation.NewError("validation_negative", "minimum purchase must not be negative")
	}

	if r.CompensationType == CompensationPartnership {
		if r.PartnershipVendorPercent == nil || r.PartnershipMEPPercent == nil {
			errs["compensation_type"] = validation.NewError("validation_partnership", "partnership requires both split percentages")
		} else if *r.PartnershipVendorPercent+*r.PartnershipMEPPercent != 100 {
			errs["compensation_type"] = validation.NewError("validation_partnership", "partnership split percentages must sum to 100")
		}
	}

	if r.StartDate != nil && r.EndDate != nil {
		start, err1 := time.Parse("2006-01-02", *r.StartDate)
		end, err2 := time.Parse("2006-01-02", *r.EndDate)
		if err1 == nil && err2 == nil && end.Before(start) {
			errs["end_date"] = validation.NewError("validation_dates", "end_date must not precede start_date")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateCouponRequest is a partial update; nil fields stay unchanged.
// Code, usage count and redeemed flag are not editable here.
type UpdateCouponRequest struct {
	Description       *string          `json:"description"`
	DiscountType      *DiscountType    `json:"discount_type"`
	Value             *decimal.Decimal `json:"value"`
	MinPurchaseAmount *decimal.Decimal `json:"min_purchase_amount"`
	StartDate         *string          `json:"start_date"`
	EndDate           *string          `json:"end_date"`
	Active            *bool            `json:"active"`
	IsCombinable      *bool            `json:"is_combinable"`
	UsageLimit        *UsageLimit      `json:"usage_limit"`

	VendorName               *string           `json:"vendor_name"`
	CompensationType         *CompensationType `json:"compensation_type"`
	PartnershipVendorPercent *int              `json:"partnership_vendor_percent"`
	PartnershipMEPPercent    *int              `json:"partnership_mep_percent"`

	ApplicableItemIDs []uuid.UUID `json:"applicable_item_ids"`
	RequiredItemIDs   []uuid.UUID `json:"required_item_ids"`

	BuyQuantity *int `json:"buy_quantity"`
	GetQuantity *int `json:"get_quantity"`
}

func (r UpdateCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&r.DiscountType, validation.By(validDiscountTypePtr)),
		validation.Field(&r.UsageLimit, validation.By(validUsageLimitPtr)),
		validation.Field(&r.CompensationType, validation.By(validCompensationTypePtr)),
		validation.Field(&r.StartDate, validation.By(validDateString)),
		validation.Field(&r.EndDate, validation.By(validDateString)),
	)
}

// CouponResponse represents a coupon in API responses
type CouponResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`

	DiscountType      DiscountType     `json:"discount_type"`
	Value             decimal.Decimal  `json:"value"`
	MinPurchaseAmount *decimal.Decimal `json:"min_purchase_amount,omitempty"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	Active       bool       `json:"active"`
	IsCombinable bool       `json:"is_combinable"`
	UsageLimit   UsageLimit `json:"usage_limit"`
	UsageCount   int        `json:"usage_count"`
	Redeemed     bool       `json:"redeemed"`

	VendorName               string           `json:"vendor_name"`
	CompensationType         CompensationType `json:"compensation_type"`
	PartnershipVendorPercent *int             `json:"partnership_vendor_percent,omitempty"`
	PartnershipMEPPercent    *int             `json:"partnership_mep_percent,omitempty"`

	ApplicableItemIDs []uuid.UUID `json:"applicable_item_ids"`
	RequiredItemIDs   []uuid.UUID `json:"required_item_ids"`

	BuyQuantity *int `json:"buy_quantity,omitempty"`
	GetQuantity *int `json:"get_quantity,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts a Coupon to its API shape.
func (c *Coupon) ToResponse() CouponResponse {
	return CouponResponse{
		ID:                       c.ID,
		Code:                     c.Code,
		Description:              c.Description,
		DiscountType:             c.DiscountType,
		Value:                    c.Value,
		MinPurchaseAmount:        c.MinPurchaseAmount,
		StartDate:                c.StartDate,
		EndDate:                  c.EndDate,
		Active:                   c.Active,
		IsCombinable:             c.IsCombinable,
		UsageLimit:               c.UsageLimit,
		UsageCount:               c.UsageCount,
		Redeemed:                 c.Redeemed,
		VendorName:               c.VendorName,
		CompensationType:         c.CompensationType,
		PartnershipVendorPercent: c.PartnershipVendorPercent,
		PartnershipMEPPercent:    c.PartnershipMEPPercent,
		ApplicableItemIDs:        c.ApplicableItemIDs,
		RequiredItemIDs:          c.RequiredItemIDs,
		BuyQuantity:              c.BuyQuantity,
		GetQuantity:              c.GetQuantity,
		CreatedAt:                c.CreatedAt,
		UpdatedAt:                c.UpdatedAt,
	}
}

// ListCouponsFilter narrows coupon listings.
type ListCouponsFilter struct {
	Active *bool
	Vendor string
	Page   int
	Limit  int
}

// --- field validators ---

func validDiscountType(value interface{}) error {
	dt, _ := value.(DiscountType)
	if !dt.IsValid() {
		return validation.NewError("validation_discount_type", "discount_type must be one of PERCENTAGE, FIXED_AMOUNT, BOGO, BUNDLE_PERCENTAGE, BUNDLE_FIXED")
	}
	return nil
}

func validDiscountTypePtr(value interface{}) error {
	dt, ok := value.(*DiscountType)
	if !ok || dt == nil {
		return nil
	}
	return validDiscountType(*dt)
}

func validUsageLimit(value interface{}) error {
	ul, _ := value.(UsageLimit)
	if !ul.IsValid() {
		return validation.NewError("validation_usage_limit", "usage_limit must be SINGLE or MULTI")
	}
	return nil
}

func validUsageLimitPtr(value interface{}) error {
	ul, ok := value.(*UsageLimit)
	if !ok || ul == nil {
		return nil
	}
	return validUsageLimit(*ul)
}

func validCompensationType(value interface{}) error {
	ct, _ := value.(CompensationType)
	if !ct.IsValid() {
		return validation.NewError("validation_compensation", "compensation_type must be VENDOR_CLAIM, MEP_CLAIM or PARTNERSHIP")
	}
	return nil
}

func validCompensationTypePtr(value interface{}) error {
	ct, ok := value.(*CompensationType)
	if !ok || ct == nil {
		return nil
	}
	return validCompensationType(*ct)
}

func validDateString(value interface{}) error {
	s, ok := value.(*string)
	if !ok || s == nil {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *s); err != nil {
		return validation.NewError("validation_date", "date must be in YYYY-MM-DD format")
	}
	return nil
}

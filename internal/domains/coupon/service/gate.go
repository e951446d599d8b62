package service

import (
	"fmt"

	cartmodel "pharmapos-backend/internal/domains/cart/model"
	"pharmapos-backend/internal/domains/coupon/model"
	"pharmapos-backend/internal/shared"
)

// Gate decides whether a coupon may be applied to a cart. Rules run in a
// fixed order and the first failure wins.
type Gate struct {
	clock shared.Clock
}

// NewGate creates a validation gate
func NewGate(clock shared.Clock) *Gate {
	return &Gate{clock: clock}
}

// Check validates coupon against cart. coupon is nil when the code lookup
// found nothing. existing is the coupon currently applied to the cart, if
// any. Returns nil when the coupon is accepted.
func (g *Gate) Check(coupon *model.Coupon, existing *model.Coupon, cart *cartmodel.Cart) *model.Rejection {
	// 1. Existence
	if coupon == nil {
		return &model.Rejection{
			Reason:  model.ReasonInvalidCode,
			Message: "Invalid coupon code",
		}
	}

	// 2. Redemption, only enforced for single-use coupons
	if coupon.UsageLimit == model.UsageLimitSingle && coupon.Redeemed {
		return &model.Rejection{
			Reason:  model.ReasonAlreadyRedeemed,
			Message: "This coupon has already been redeemed",
		}
	}

	// 3. Active
	if !coupon.Active {
		return &model.Rejection{
			Reason:  model.ReasonInactive,
			Message: "This coupon is currently inactive",
		}
	}

	// 4. Validity window, compared on calendar dates only
	now := g.clock.Now()
	if coupon.StartDate != nil && shared.CompareDates(now, *coupon.StartDate) < 0 {
		return &model.Rejection{
			Reason:  model.ReasonNotYetValid,
			Message: fmt.Sprintf("This coupon is not valid until %s", coupon.StartDate.Format("2006-01-02")),
		}
	}
	if coupon.EndDate != nil && shared.CompareDates(now, *coupon.EndDate) > 0 {
		return &model.Rejection{
			Reason:  model.ReasonExpired,
			Message: fmt.Sprintf("This coupon expired on %s", coupon.EndDate.Format("2006-01-02")),
		}
	}

	// 5. Combinability. Only the already-applied coupon's flag blocks;
	// the incoming coupon's own flag is not checked here.
	if existing != nil && !existing.IsCombinable {
		return &model.Rejection{
			Reason:  model.ReasonExistingNotCombinable,
			Message: "The currently applied coupon cannot be combined with others",
		}
	}

	// 6. Applicable-item presence
	if len(coupon.ApplicableItemIDs) > 0 && !cart.ContainsAny(coupon.ApplicableItemIDs) {
		return &model.Rejection{
			Reason:  model.ReasonNoEligibleItems,
			Message: "Coupon not applicable: requires specific items that are not in the cart",
		}
	}

	// 7. Required-item presence (bundle trigger)
	if len(coupon.RequiredItemIDs) > 0 && !cart.ContainsAny(coupon.RequiredItemIDs) {
		return &model.Rejection{
			Reason:  model.ReasonMissingTriggerItems,
			Message: "Coupon not applicable: the required trigger items are not in the cart",
		}
	}

	// 8. Minimum purchase, checked against the full cart subtotal
	if coupon.MinPurchaseAmount != nil && !coupon.MinPurchaseAmount.IsZero() {
		if cart.Subtotal().LessThan(*coupon.MinPurchaseAmount) {
			return &model.Rejection{
				Reason:  model.ReasonBelowMinimumPurchase,
				Message: fmt.Sprintf("This coupon requires a minimum purchase of %s", coupon.MinPurchaseAmount.StringFixed(2)),
			}
		}
	}

	return nil
}

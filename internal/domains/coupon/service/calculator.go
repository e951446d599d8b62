package service

import (
	"sort"

	"github.com/shopspring/decimal"

	cartmodel "pharmapos-backend/internal/domains/cart/model"
	"pharmapos-backend/internal/domains/coupon/model"
)

var oneHundred = decimal.NewFromInt(100)

// Calculate computes the discount amount for a coupon against a cart. It is
// a pure function of its inputs and never returns a negative amount. The
// result is rounded to 2 decimal places.
func Calculate(coupon *model.Coupon, cart *cartmodel.Cart) decimal.Decimal {
	if coupon == nil || cart == nil {
		return decimal.Zero
	}

	applicable := applicableLines(coupon, cart)
	applicableSubtotal := linesSubtotal(applicable)

	// Nothing eligible to discount
	if applicableSubtotal.IsZero() {
		return decimal.Zero
	}

	// Minimum purchase re-checked here against the eligible amount only;
	// the gate checks the full cart subtotal at apply time.
	if coupon.MinPurchaseAmount != nil && !coupon.MinPurchaseAmount.IsZero() {
		if applicableSubtotal.LessThan(*coupon.MinPurchaseAmount) {
			return decimal.Zero
		}
	}

	var discount decimal.Decimal
	switch coupon.DiscountType {
	case model.DiscountTypeBOGO:
		discount = bogoDiscount(coupon, applicable)
	case model.DiscountTypeBundlePercentage, model.DiscountTypeBundleFixed:
		// Trigger items are re-checked at calculation time: the cart can
		// change after the coupon was applied.
		if len(coupon.RequiredItemIDs) > 0 && !cart.ContainsAny(coupon.RequiredItemIDs) {
			return decimal.Zero
		}
		if coupon.DiscountType == model.DiscountTypeBundlePercentage {
			discount = percentageOf(applicableSubtotal, coupon.Value)
		} else {
			discount = cappedFixed(coupon.Value, applicableSubtotal)
		}
	case model.DiscountTypePercentage:
		discount = percentageOf(applicableSubtotal, coupon.Value)
	case model.DiscountTypeFixedAmount:
		discount = cappedFixed(coupon.Value, applicableSubtotal)
	default:
		return decimal.Zero
	}

	return discount.Round(2)
}

// Total returns the payable amount after discount, floored at zero.
func Total(subtotal, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// applicableLines returns the reward lines. An empty applicable set on the
// coupon means every line is eligible.
func applicableLines(coupon *model.Coupon, cart *cartmodel.Cart) []cartmodel.CartLine {
	if len(coupon.ApplicableItemIDs) == 0 {
		return cart.Lines
	}

	eligible := make(map[string]struct{}, len(coupon.ApplicableItemIDs))
	for _, id := range coupon.ApplicableItemIDs {
		eligible[id.String()] = struct{}{}
	}

	lines := make([]cartmodel.CartLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		if _, ok := eligible[line.ItemID.String()]; ok {
			lines = append(lines, line)
		}
	}
	return lines
}

func linesSubtotal(lines []cartmodel.CartLine) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	return subtotal
}

func percentageOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(oneHundred)
}

// cappedFixed never lets a fixed discount exceed the eligible amount.
func cappedFixed(value, applicableSubtotal decimal.Decimal) decimal.Decimal {
	if value.GreaterThan(applicableSubtotal) {
		return applicableSubtotal
	}
	return value
}

// bogoDiscount gives away the cheapest eligible units. Eligible units are
// pooled across lines: with buy 2 get 1 and five eligible units, one full
// set forms and the single cheapest unit is free.
func bogoDiscount(coupon *model.Coupon, lines []cartmodel.CartLine) decimal.Decimal {
	buyQty, getQty := coupon.BOGOQuantities()
	groupSize := buyQty + getQty

	totalUnits := 0
	for _, line := range lines {
		totalUnits += line.Quantity
	}

	sets := totalUnits / groupSize
	if sets == 0 {
		return decimal.Zero
	}
	freeUnits := sets * getQty

	// Expand lines into individual unit prices, cheapest first.
	unitPrices := make([]decimal.Decimal, 0, totalUnits)
	for _, line := range lines {
		for i := 0; i < line.Quantity; i++ {
			unitPrices = append(unitPrices, line.UnitPrice)
		}
	}
	sort.Slice(unitPrices, func(i, j int) bool {
		return unitPrices[i].LessThan(unitPrices[j])
	})

	discount := decimal.Zero
	for i := 0; i < freeUnits && i < len(unitPrices); i++ {
		discount = discount.Add(unitPrices[i])
	}
	return discount
}

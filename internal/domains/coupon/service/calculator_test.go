package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmodel "pharmapos-backend/internal/domains/cart/model"
	"pharmapos-backend/internal/domains/coupon/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(v int) *int { return &v }

func testCart(lines ...cartmodel.CartLine) *cartmodel.Cart {
	return &cartmodel.Cart{SessionID: "test-session", Lines: lines}
}

func line(id uuid.UUID, price string, qty int) cartmodel.CartLine {
	return cartmodel.CartLine{ItemID: id, Name: "item", SKU: "SKU", Quantity: qty, UnitPrice: dec(price)}
}

func TestCalculatePercentage(t *testing.T) {
	cart := testCart(
		line(uuid.New(), "10.00", 2),
		line(uuid.New(), "5.00", 1),
	)
	coupon := &model.Coupon{
		DiscountType: model.DiscountTypePercentage,
		Value:        dec("10"),
	}

	got := Calculate(coupon, cart)
	assert.True(t, dec("2.50").Equal(got), "want 2.50, got %s", got)
}

func TestCalculatePercentageOnApplicableItemsOnly(t *testing.T) {
	eligible := uuid.New()
	cart := testCart(
		line(eligible, "20.00", 1),
		line(uuid.New(), "80.00", 1),
	)
	coupon := &model.Coupon{
		DiscountType:      model.DiscountTypePercentage,
		Value:             dec("50"),
		ApplicableItemIDs: []uuid.UUID{eligible},
	}

	got := Calculate(coupon, cart)
	assert.True(t, dec("10.00").Equal(got), "want 10.00, got %s", got)
}

func TestCalculateFixedAmountCappedAtApplicableSubtotal(t *testing.T) {
	cart := testCart(line(uuid.New(), "3.00", 2))
	coupon := &model.Coupon{
		DiscountType: model.DiscountTypeFixedAmount,
		Value:        dec("50"),
	}

	got := Calculate(coupon, cart)
	assert.True(t, dec("6.00").Equal(got), "fixed discount must not exceed eligible amount, got %s", got)
}

func TestCalculateFixedAmountBelowSubtotal(t *testing.T) {
	cart := testCart(line(uuid.New(), "10.00", 3))
	coupon := &model.Coupon{
		DiscountType: model.DiscountTypeFixedAmount,
		Value:        dec("5"),
	}

	got := Calculate(coupon, cart)
	assert.True(t, dec("5.00").Equal(got))
}

func TestCalculateZeroWhenNoApplicableItems(t *testing.T) {
	cart := testCart(line(uuid.New(), "10.00", 1))
	coupon := &model.Coupon{
		DiscountType:      model.DiscountTypePercentage,
		Value:             dec("50"),
		ApplicableItemIDs: []uuid.UUID{uuid.New()},
	}

	got := Calculate(coupon, cart)
	assert.True(t, got.IsZero())
}

func TestCalculateZeroBelowMinPurchaseOnApplicableSubtotal(t *testing.T) {
	// Full cart is 100 but only 10 is eligible; the 50 minimum applies
	// to the eligible amount here, unlike the gate's full-cart check.
	eligible := uuid.New()
	cart := testCart(
		line(eligible, "10.00", 1),
		line(uuid.New(), "90.00", 1),
	)

	for _, dt := range []model.DiscountType{
		model.DiscountTypePercentage,
		model.DiscountTypeFixedAmount,
		model.DiscountTypeBOGO,
		model.DiscountTypeBundlePercentage,
		model.DiscountTypeBundleFixed,
	} {
		coupon := &model.Coupon{
			DiscountType:      dt,
			Value:             dec("10"),
			MinPurchaseAmount: decPtr("50"),
			ApplicableItemIDs: []uuid.UUID{eligible},
			RequiredItemIDs:   []uuid.UUID{eligible},
			BuyQuantity:       intPtr(1),
			GetQuantity:       intPtr(1),
		}
		got := Calculate(coupon, cart)
		assert.True(t, got.IsZero(), "type %s: want 0 below minimum, got %s", dt, got)
	}
}

func TestCalculateBOGOCheapestUnitsFree(t *testing.T) {
	// Buy 2 get 1 with unit prices [10, 10, 5]: one set, the 5 is free.
	a, b := uuid.New(), uuid.New()
	cart := testCart(
		line(a, "10.00", 2),
		line(b, "5.00", 1),
	)
	coupon := &model.Coupon{
		DiscountType: model.DiscountTypeBOGO,
		BuyQuantity:  intPtr(2),
		GetQuantity:  intPtr(1),
	}

	got := Calculate(coupon, cart)
	assert.True(t, dec("5.00").Equal(got), "want 5.00, got %s", got)
}

func TestCalculateBOGONoFullSet(t *testing.T) {
	cart := testCart(line(uuid.New(), "10.00", 2))
	coupon := &model.Coupon{
		DiscountType: model.DiscountTypeBOGO,
		BuyQuantity:  intPtr(2),
		GetQuantity:  intPtr(1),
	}

	got := Calculate(coupon, cart)
	assert.True(t, got.IsZero(), "two units cannot form a buy-2-get-1 set")
}

func TestCalculateBOGOPoolsUnitsAcrossLines(t *testing.T) {
	// Buy 1 get 1 over 5 pooled units: two sets, two cheapest free.
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	cart := testCart(
		line(a, "8.00", 2),
		line(b, "3.00", 2),
		line(c, "1.00", 1),
	)
	coupon := &model.Coupon{
		DiscountType: model.DiscountTypeBOGO,
		BuyQuantity:  intPtr(1),
		GetQuantity:  intPtr(1),
	}

	got := Calculate(coupon, cart)
	// freeUnits = floor(5/2) * 1 = 2, cheapest are 1.00 and 3.00
	assert.True(t, dec("4.00").Equal(got), "want 4.00, got %s", got)
}

func TestCalculateBOGODefaultsToBuyOneGetOne(t *testing.T) {
	cart := testCart(line(uuid.New(), "7.00", 2))
	coupon := &model.Coupon{DiscountType: model.DiscountTypeBOGO}

	got := Calculate(coupon, cart)
	assert.True(t, dec("7.00").Equal(got))
}

func TestCalculateBundlePercentageRequiresTriggerItem(t *testing.T) {
	reward := uuid.New()
	trigger := uuid.New()
	coupon := &model.Coupon{
		DiscountType:      model.DiscountTypeBundlePercentage,
		Value:             dec("25"),
		ApplicableItemIDs: []uuid.UUID{reward},
		RequiredItemIDs:   []uuid.UUID{trigger},
	}

	// Trigger missing: reward present but no discount.
	cartNoTrigger := testCart(line(reward, "40.00", 1))
	assert.True(t, Calculate(coupon, cartNoTrigger).IsZero())

	// Trigger present: 25% off the reward line only.
	cartWithTrigger := testCart(
		line(reward, "40.00", 1),
		line(trigger, "15.00", 1),
	)
	got := Calculate(coupon, cartWithTrigger)
	assert.True(t, dec("10.00").Equal(got), "want 10.00, got %s", got)
}

func TestCalculateBundleFixedCapped(t *testing.T) {
	reward := uuid.New()
	trigger := uuid.New()
	cart := testCart(
		line(reward, "8.00", 1),
		line(trigger, "20.00", 1),
	)
	coupon := &model.Coupon{
		DiscountType:      model.DiscountTypeBundleFixed,
		Value:             dec("15"),
		ApplicableItemIDs: []uuid.UUID{reward},
		RequiredItemIDs:   []uuid.UUID{trigger},
	}

	got := Calculate(coupon, cart)
	assert.True(t, dec("8.00").Equal(got), "bundle fixed must cap at the reward subtotal, got %s", got)
}

func TestCalculateNilInputs(t *testing.T) {
	assert.True(t, Calculate(nil, testCart()).IsZero())
	assert.True(t, Calculate(&model.Coupon{DiscountType: model.DiscountTypePercentage, Value: dec("10")}, nil).IsZero())
}

func TestCalculateRoundsToTwoDecimals(t *testing.T) {
	cart := testCart(line(uuid.New(), "9.99", 1))
	coupon := &model.Coupon{
		DiscountType: model.DiscountTypePercentage,
		Value:        dec("33"),
	}

	got := Calculate(coupon, cart)
	// 9.99 * 0.33 = 3.2967 -> 3.30
	assert.True(t, dec("3.30").Equal(got), "want 3.30, got %s", got)
	require.True(t, got.Exponent() >= -2)
}

func TestTotalFloorsAtZero(t *testing.T) {
	assert.True(t, Total(dec("10"), dec("4")).Equal(dec("6")))
	assert.True(t, Total(dec("10"), dec("15")).IsZero())
	assert.True(t, Total(decimal.Zero, decimal.Zero).IsZero())
}

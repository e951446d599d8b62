package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmapos-backend/internal/domains/coupon/model"
	"pharmapos-backend/internal/shared"
)

var testNow = time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC)

func testGate() *Gate {
	return NewGate(shared.FixedClock{T: testNow})
}

func timePtr(t time.Time) *time.Time { return &t }

func validCoupon() *model.Coupon {
	return &model.Coupon{
		ID:           uuid.New(),
		Code:         "SAVE10",
		DiscountType: model.DiscountTypePercentage,
		Value:        dec("10"),
		Active:       true,
		IsCombinable: true,
		UsageLimit:   model.UsageLimitMulti,
	}
}

func TestGateAcceptsValidCoupon(t *testing.T) {
	cart := testCart(line(uuid.New(), "10.00", 1))

	rejection := testGate().Check(validCoupon(), nil, cart)
	assert.Nil(t, rejection)
}

func TestGateRejectsUnknownCode(t *testing.T) {
	cart := testCart(line(uuid.New(), "10.00", 1))

	rejection := testGate().Check(nil, nil, cart)
	require.NotNil(t, rejection)
	assert.Equal(t, model.ReasonInvalidCode, rejection.Reason)
}

func TestGateRejectsRedeemedSingleUse(t *testing.T) {
	coupon := validCoupon()
	coupon.UsageLimit = model.UsageLimitSingle
	coupon.Redeemed = true
	cart := testCart(line(uuid.New(), "10.00", 1))

	rejection := testGate().Check(coupon, nil, cart)
	require.NotNil(t, rejection)
	assert.Equal(t, model.ReasonAlreadyRedeemed, rejection.Reason)
}

func TestGateIgnoresRedeemedFlagForMultiUse(t *testing.T) {
	coupon := validCoupon()
	coupon.UsageLimit = model.UsageLimitMulti
	coupon.Redeemed = true
	cart := testCart(line(uuid.New(), "10.00", 1))

	assert.Nil(t, testGate().Check(coupon, nil, cart))
}

func TestGateRejectsInactive(t *testing.T) {
	coupon := validCoupon()
	coupon.Active = false
	cart := testCart(line(uuid.New(), "10.00", 1))

	rejection := testGate().Check(coupon, nil, cart)
	require.NotNil(t, rejection)
	assert.Equal(t, model.ReasonInactive, rejection.Reason)
}

func TestGateRejectsNotYetValid(t *testing.T) {
	coupon := validCoupon()
	coupon.StartDate = timePtr(testNow.AddDate(0, 0, 1))
	cart := testCart(line(uuid.New(), "10.00", 1))

	rejection := testGate().Check(coupon, nil, cart)
	require.NotNil(t, rejection)
	assert.Equal(t, model.ReasonNotYetValid, rejection.Reason)
}

func TestGateRejectsExpired(t *testing.T) {
	coupon := validCoupon()
	coupon.EndDate = timePtr(testNow.AddDate(0, 0, -1))
	cart := testCart(line(uuid.New(), "10.00", 1))

	rejection := testGate().Check(coupon, nil, cart)
	require.NotNil(t, rejection)
	assert.Equal(t, model.ReasonExpired, rejection.Reason)
}

func TestGateComparesValidityByCalendarDate(t *testing.T) {
	// A coupon starting today at a later wall-clock time is already valid,
	// and one ending today at an earlier time has not expired.
	coupon := validCoupon()
	coupon.StartDate = timePtr(time.Date(2026, 6, 15, 23, 59, 0, 0, time.UTC))
	coupon.EndDate = timePtr(time.Date(2026, 6, 15, 0, 1, 0, 0, time.UTC))
	cart := testCart(line(uuid.New(), "10.00", 1))

	assert.Nil(t, testGate().Check(coupon, nil, cart))
}

func TestGateValidityUsesLocalCalendarDate(t *testing.T) {
	// Window dates are stored as UTC midnight. A terminal at UTC-5 late on
	// the coupon's last day is already past that instant but still on the
	// same calendar date, so the coupon has not expired there.
	terminal := time.FixedZone("UTC-5", -5*60*60)
	gate := NewGate(shared.FixedClock{T: time.Date(2026, 6, 15, 21, 0, 0, 0, terminal)})

	coupon := validCoupon()
	coupon.EndDate = timePtr(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC))
	cart := testCart(line(uuid.New(), "10.00", 1))

	assert.Nil(t, gate.Check(coupon, nil, cart))

	// One local day later it is expired.
	gate = NewGate(shared.FixedClock{T: time.Date(2026, 6, 16, 0, 30, 0, 0, terminal)})
	rejection := gate.Check(coupon, nil, cart)
	require.NotNil(t, rejection)
	assert.Equal(t, model.ReasonExpired, rejection.Reason)
}

func TestGateCombinabilityBlocksOnExistingFlagOnly(t *testing.T) {
	cart := testCart(line(uuid.New(), "10.00", 1))

	// Existing non-combinable coupon blocks any newcomer.
	existing := validCoupon()
	existing.IsCombinable = false
	rejection := testGate().Check(validCoupon(), existing, cart)
	require.NotNil(t, rejection)
	assert.Equal(t, model.ReasonExistingNotCombinable, rejection.Reason)

	// A non-combinable newcomer replaces a combinable existing coupon.
	// Intentional asymmetry: only the applied coupon's flag is consulted.
	incoming := validCoupon()
	incoming.IsCombinable = false
	assert.Nil(t, testGate().Check(incoming, validCoupon(), cart))
}

func TestGateRejectsWhenNoEligibleItems(t *testing.T) {
	coupon := validCoupon()
	coupon.ApplicableItemIDs = []uuid.UUID{uuid.New()}
	cart := testCart(line(uuid.New(), "10.00", 1))

	rejection := testGate().Check(coupon, nil, cart)
	require.NotNil(t, rejection)
	assert.Equal(t, model.ReasonNoEligibleItems, rejection.Reason)
}

func TestGateRejectsWhenTriggerItemsMissing(t *testing.T) {
	coupon := validCoupon()
	coupon.DiscountType = model.DiscountTypeBundlePercentage
	coupon.RequiredItemIDs = []uuid.UUID{uuid.New()}
	cart := testCart(line(uuid.New(), "10.00", 1))

	rejection := testGate().Check(coupon, nil, cart)
	require.NotNil(t, rejection)
	assert.Equal(t, model.ReasonMissingTriggerItems, rejection.Reason)
}

func TestGateAcceptsWithOneOfSeveralTriggerItems(t *testing.T) {
	inCart := uuid.New()
	coupon := validCoupon()
	coupon.DiscountType = model.DiscountTypeBundleFixed
	coupon.RequiredItemIDs = []uuid.UUID{uuid.New(), inCart}
	cart := testCart(line(inCart, "10.00", 1))

	assert.Nil(t, testGate().Check(coupon, nil, cart))
}

func TestGateMinPurchaseUsesFullCartSubtotal(t *testing.T) {
	eligible := uuid.New()
	coupon := validCoupon()
	coupon.MinPurchaseAmount = decPtr("50")
	coupon.ApplicableItemIDs = []uuid.UUID{eligible}

	// Eligible line alone is below the minimum but the full cart clears it.
	cart := testCart(
		line(eligible, "10.00", 1),
		line(uuid.New(), "45.00", 1),
	)
	assert.Nil(t, testGate().Check(coupon, nil, cart))

	// Cart below the minimum is rejected.
	small := testCart(line(eligible, "10.00", 1))
	rejection := testGate().Check(coupon, nil, small)
	require.NotNil(t, rejection)
	assert.Equal(t, model.ReasonBelowMinimumPurchase, rejection.Reason)
}

func TestGateRuleOrderShortCircuits(t *testing.T) {
	// A coupon failing several rules reports the earliest one.
	coupon := validCoupon()
	coupon.UsageLimit = model.UsageLimitSingle
	coupon.Redeemed = true
	coupon.Active = false
	coupon.EndDate = timePtr(testNow.AddDate(0, 0, -5))
	cart := testCart(line(uuid.New(), "10.00", 1))

	rejection := testGate().Check(coupon, nil, cart)
	require.NotNil(t, rejection)
	assert.Equal(t, model.ReasonAlreadyRedeemed, rejection.Reason)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmapos-backend/internal/domains/cart/model"
	catalogmodel "pharmapos-backend/internal/domains/catalog/model"
	couponmodel "pharmapos-backend/internal/domains/coupon/model"
	couponservice "pharmapos-backend/internal/domains/coupon/service"
	"pharmapos-backend/internal/shared"
)

// --- in-memory stubs ---

type memCartRepo struct {
	carts map[string]model.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]model.Cart{}}
}

func (r *memCartRepo) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	cart, ok := r.carts[sessionID]
	if !ok {
		return nil, model.ErrCartNotFound
	}
	return &cart, nil
}

func (r *memCartRepo) Save(ctx context.Context, cart *model.Cart) error {
	r.carts[cart.SessionID] = *cart
	return nil
}

func (r *memCartRepo) Delete(ctx context.Context, sessionID string) error {
	delete(r.carts, sessionID)
	return nil
}

type memCatalog struct {
	items map[uuid.UUID]catalogmodel.Item
}

func (c *memCatalog) CreateItem(ctx context.Context, req catalogmodel.CreateItemRequest) (*catalogmodel.ItemResponse, error) {
	return nil, nil
}
func (c *memCatalog) GetItem(ctx context.Context, id uuid.UUID) (*catalogmodel.ItemResponse, error) {
	return nil, nil
}
func (c *memCatalog) ListItems(ctx context.Context, filter *catalogmodel.ListItemsFilter) ([]catalogmodel.ItemResponse, int, error) {
	return nil, 0, nil
}
func (c *memCatalog) UpdateItem(ctx context.Context, id uuid.UUID, req catalogmodel.UpdateItemRequest) (*catalogmodel.ItemResponse, error) {
	return nil, nil
}
func (c *memCatalog) DeleteItem(ctx context.Context, id uuid.UUID) error { return nil }

func (c *memCatalog) LookupItems(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalogmodel.Item, error) {
	found := map[uuid.UUID]catalogmodel.Item{}
	for _, id := range ids {
		if item, ok := c.items[id]; ok {
			found[id] = item
		}
	}
	return found, nil
}

type memCouponRepo struct {
	byCode map[string]couponmodel.Coupon
}

func (r *memCouponRepo) FindByID(ctx context.Context, id uuid.UUID) (*couponmodel.Coupon, error) {
	for _, c := range r.byCode {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, couponmodel.ErrCouponNotFound
}

func (r *memCouponRepo) FindByCode(ctx context.Context, code string) (*couponmodel.Coupon, error) {
	c, ok := r.byCode[couponmodel.NormalizeCode(code)]
	if !ok {
		return nil, couponmodel.ErrCouponNotFound
	}
	return &c, nil
}

func (r *memCouponRepo) List(ctx context.Context, filter couponmodel.ListCouponsFilter) ([]couponmodel.Coupon, int64, error) {
	return nil, 0, nil
}
func (r *memCouponRepo) Create(ctx context.Context, coupon *couponmodel.Coupon) error { return nil }
func (r *memCouponRepo) Update(ctx context.Context, coupon *couponmodel.Coupon) error { return nil }
func (r *memCouponRepo) UpdateStatus(ctx context.Context, id uuid.UUID, active bool) error {
	return nil
}
func (r *memCouponRepo) Delete(ctx context.Context, id uuid.UUID) error          { return nil }
func (r *memCouponRepo) ResetRedemption(ctx context.Context, id uuid.UUID) error { return nil }
func (r *memCouponRepo) RecordRedemptionWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	return nil
}
func (r *memCouponRepo) CheckCodeExists(ctx context.Context, code string) (bool, error) {
	_, ok := r.byCode[couponmodel.NormalizeCode(code)]
	return ok, nil
}

// --- fixtures ---

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newFixture(t *testing.T, coupons ...couponmodel.Coupon) (CartService, *memCatalog, string) {
	t.Helper()

	couponRepo := &memCouponRepo{byCode: map[string]couponmodel.Coupon{}}
	for _, c := range coupons {
		couponRepo.byCode[c.Code] = c
	}

	catalog := &memCatalog{items: map[uuid.UUID]catalogmodel.Item{}}
	gate := couponservice.NewGate(shared.FixedClock{T: time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)})

	svc := NewCartService(newMemCartRepo(), catalog, couponRepo, gate)

	resp, err := svc.StartSession(context.Background())
	require.NoError(t, err)

	return svc, catalog, resp.SessionID
}

func stockItem(catalog *memCatalog, priceStr string) uuid.UUID {
	item := catalogmodel.Item{
		ID:       uuid.New(),
		Name:     "Paracetamol 500mg",
		SKU:      "PARA500",
		Price:    money(priceStr),
		Stock:    50,
		IsActive: true,
	}
	catalog.items[item.ID] = item
	return item.ID
}

func multiCoupon(code string) couponmodel.Coupon {
	return couponmodel.Coupon{
		ID:           uuid.New(),
		Code:         code,
		Description:  "ten percent off",
		DiscountType: couponmodel.DiscountTypePercentage,
		Value:        money("10"),
		Active:       true,
		IsCombinable: true,
		UsageLimit:   couponmodel.UsageLimitMulti,
	}
}

// --- tests ---

func TestAddItemFreezesPriceAndComputesTotals(t *testing.T) {
	svc, catalog, session := newFixture(t)
	itemID := stockItem(catalog, "4.00")

	resp, err := svc.AddItem(context.Background(), session, model.AddLineRequest{ItemID: itemID, Quantity: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.ItemsCount)
	assert.True(t, money("12.00").Equal(resp.Subtotal))
	assert.True(t, resp.Discount.IsZero())
	assert.True(t, money("12.00").Equal(resp.Total))

	// A later catalog price change does not touch the cart line.
	item := catalog.items[itemID]
	item.Price = money("9.00")
	catalog.items[itemID] = item

	resp, err = svc.GetCart(context.Background(), session)
	require.NoError(t, err)
	assert.True(t, money("12.00").Equal(resp.Subtotal))
}

func TestAddItemRejectsUnknownOrOutOfStock(t *testing.T) {
	svc, catalog, session := newFixture(t)

	_, err := svc.AddItem(context.Background(), session, model.AddLineRequest{ItemID: uuid.New(), Quantity: 1})
	assert.ErrorIs(t, err, model.ErrItemUnavailable)

	itemID := stockItem(catalog, "4.00")
	item := catalog.items[itemID]
	item.Stock = 0
	catalog.items[itemID] = item

	_, err = svc.AddItem(context.Background(), session, model.AddLineRequest{ItemID: itemID, Quantity: 1})
	assert.ErrorIs(t, err, model.ErrItemUnavailable)
}

func TestApplyCouponAcceptedUpdatesTotals(t *testing.T) {
	svc, catalog, session := newFixture(t, multiCoupon("SAVE10"))
	itemID := stockItem(catalog, "10.00")

	_, err := svc.AddItem(context.Background(), session, model.AddLineRequest{ItemID: itemID, Quantity: 2})
	require.NoError(t, err)

	// Codes match case-insensitively.
	verdict, err := svc.ApplyCoupon(context.Background(), session, model.ApplyCouponRequest{Code: "save10"})
	require.NoError(t, err)

	require.True(t, verdict.Accepted)
	assert.Equal(t, "SAVE10", verdict.Code)
	require.NotNil(t, verdict.Cart)
	assert.True(t, money("2.00").Equal(verdict.Cart.Discount))
	assert.True(t, money("18.00").Equal(verdict.Cart.Total))
}

func TestApplyCouponUnknownCodeIsVerdictNotError(t *testing.T) {
	svc, catalog, session := newFixture(t)
	itemID := stockItem(catalog, "10.00")

	_, err := svc.AddItem(context.Background(), session, model.AddLineRequest{ItemID: itemID, Quantity: 1})
	require.NoError(t, err)

	verdict, err := svc.ApplyCoupon(context.Background(), session, model.ApplyCouponRequest{Code: "NOPE"})
	require.NoError(t, err)

	assert.False(t, verdict.Accepted)
	assert.Equal(t, string(couponmodel.ReasonInvalidCode), verdict.Reason)
	assert.Nil(t, verdict.Cart)
}

func TestApplyCouponReplacedUnlessExistingNotCombinable(t *testing.T) {
	exclusive := multiCoupon("EXCLUSIVE")
	exclusive.IsCombinable = false
	second := multiCoupon("SECOND")

	svc, catalog, session := newFixture(t, exclusive, second)
	itemID := stockItem(catalog, "10.00")

	_, err := svc.AddItem(context.Background(), session, model.AddLineRequest{ItemID: itemID, Quantity: 1})
	require.NoError(t, err)

	verdict, err := svc.ApplyCoupon(context.Background(), session, model.ApplyCouponRequest{Code: "EXCLUSIVE"})
	require.NoError(t, err)
	require.True(t, verdict.Accepted)

	// The applied coupon is exclusive, so the newcomer is turned away.
	verdict, err = svc.ApplyCoupon(context.Background(), session, model.ApplyCouponRequest{Code: "SECOND"})
	require.NoError(t, err)
	assert.False(t, verdict.Accepted)
	assert.Equal(t, string(couponmodel.ReasonExistingNotCombinable), verdict.Reason)

	// Removing the exclusive coupon always works and frees the slot.
	_, err = svc.RemoveCoupon(context.Background(), session)
	require.NoError(t, err)

	verdict, err = svc.ApplyCoupon(context.Background(), session, model.ApplyCouponRequest{Code: "SECOND"})
	require.NoError(t, err)
	assert.True(t, verdict.Accepted)
}

func TestRemoveCouponWithoutOneApplied(t *testing.T) {
	svc, _, session := newFixture(t)

	_, err := svc.RemoveCoupon(context.Background(), session)
	assert.ErrorIs(t, err, model.ErrNoCouponApplied)
}

func TestCartRequiresSession(t *testing.T) {
	svc, _, _ := newFixture(t)

	_, err := svc.GetCart(context.Background(), "")
	assert.ErrorIs(t, err, model.ErrSessionRequired)

	_, err = svc.GetCart(context.Background(), "missing-session")
	assert.ErrorIs(t, err, model.ErrCartNotFound)
}

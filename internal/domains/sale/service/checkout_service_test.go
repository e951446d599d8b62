package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartmodel "pharmapos-backend/internal/domains/cart/model"
	catalogmodel "pharmapos-backend/internal/domains/catalog/model"
	couponmodel "pharmapos-backend/internal/domains/coupon/model"
	couponservice "pharmapos-backend/internal/domains/coupon/service"
	"pharmapos-backend/internal/domains/sale/model"
	"pharmapos-backend/internal/shared"
	"pharmapos-backend/pkg/database"
)

type stubCartRepo struct {
	carts   map[string]*cartmodel.Cart
	deleted []string
}

func (s *stubCartRepo) Get(ctx context.Context, sessionID string) (*cartmodel.Cart, error) {
	cart, ok := s.carts[sessionID]
	if !ok {
		return nil, cartmodel.ErrCartNotFound
	}
	return cart, nil
}

func (s *stubCartRepo) Save(ctx context.Context, cart *cartmodel.Cart) error {
	s.carts[cart.SessionID] = cart
	return nil
}

func (s *stubCartRepo) Delete(ctx context.Context, sessionID string) error {
	delete(s.carts, sessionID)
	s.deleted = append(s.deleted, sessionID)
	return nil
}

type stubCatalogRepo struct {
	decrements map[uuid.UUID]int
}

func (s *stubCatalogRepo) GetByID(ctx context.Context, id uuid.UUID) (*catalogmodel.Item, error) {
	return nil, catalogmodel.ErrItemNotFound
}

func (s *stubCatalogRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]catalogmodel.Item, error) {
	return nil, nil
}

func (s *stubCatalogRepo) GetBySKU(ctx context.Context, sku string) (*catalogmodel.Item, error) {
	return nil, catalogmodel.ErrItemNotFound
}

func (s *stubCatalogRepo) List(ctx context.Context, filter *catalogmodel.ListItemsFilter) ([]catalogmodel.Item, int, error) {
	return nil, 0, nil
}

func (s *stubCatalogRepo) Create(ctx context.Context, item *catalogmodel.Item) error { return nil }

func (s *stubCatalogRepo) Update(ctx context.Context, item *catalogmodel.Item) error { return nil }

func (s *stubCatalogRepo) Deactivate(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubCatalogRepo) DecrementStockWithTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, qty int) error {
	if s.decrements == nil {
		s.decrements = map[uuid.UUID]int{}
	}
	s.decrements[itemID] += qty
	return nil
}

type stubCouponRepo struct {
	coupon        *couponmodel.Coupon
	redemptionErr error
	redemptions   int
}

func (s *stubCouponRepo) FindByID(ctx context.Context, id uuid.UUID) (*couponmodel.Coupon, error) {
	if s.coupon != nil && s.coupon.ID == id {
		return s.coupon, nil
	}
	return nil, couponmodel.ErrCouponNotFound
}

func (s *stubCouponRepo) FindByCode(ctx context.Context, code string) (*couponmodel.Coupon, error) {
	if s.coupon != nil && s.coupon.Code == couponmodel.NormalizeCode(code) {
		return s.coupon, nil
	}
	return nil, couponmodel.ErrCouponNotFound
}

func (s *stubCouponRepo) List(ctx context.Context, filter couponmodel.ListCouponsFilter) ([]couponmodel.Coupon, int64, error) {
	return nil, 0, nil
}

func (s *stubCouponRepo) Create(ctx context.Context, coupon *couponmodel.Coupon) error { return nil }

func (s *stubCouponRepo) Update(ctx context.Context, coupon *couponmodel.Coupon) error { return nil }

func (s *stubCouponRepo) UpdateStatus(ctx context.Context, id uuid.UUID, active bool) error {
	return nil
}

func (s *stubCouponRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubCouponRepo) ResetRedemption(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubCouponRepo) RecordRedemptionWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	if s.redemptionErr != nil {
		return s.redemptionErr
	}
	s.redemptions++
	return nil
}

func (s *stubCouponRepo) CheckCodeExists(ctx context.Context, code string) (bool, error) {
	return false, nil
}

type checkoutFixture struct {
	svc     *saleService
	carts   *stubCartRepo
	catalog *stubCatalogRepo
	coupons *stubCouponRepo
	sales   *stubSaleRepo
}

func newCheckoutFixture(cart *cartmodel.Cart, coupon *couponmodel.Coupon) *checkoutFixture {
	f := &checkoutFixture{
		carts:   &stubCartRepo{carts: map[string]*cartmodel.Cart{}},
		catalog: &stubCatalogRepo{},
		coupons: &stubCouponRepo{coupon: coupon},
		sales:   &stubSaleRepo{},
	}
	if cart != nil {
		f.carts.carts[cart.SessionID] = cart
	}
	f.svc = &saleService{
		runTx: func(ctx context.Context, fn database.TxFunc) error {
			return fn(nil)
		},
		saleRepo:    f.sales,
		cartRepo:    f.carts,
		catalogRepo: f.catalog,
		couponRepo:  f.coupons,
		gate:        couponservice.NewGate(shared.FixedClock{T: time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)}),
		branch:      "Main Branch",
	}
	return f
}

func checkoutCart(couponCode *string, lines ...cartmodel.CartLine) *cartmodel.Cart {
	return &cartmodel.Cart{
		SessionID:         "test-session",
		Lines:             lines,
		AppliedCouponCode: couponCode,
	}
}

func singleUseCoupon(code string) *couponmodel.Coupon {
	return &couponmodel.Coupon{
		ID:           uuid.New(),
		Code:         code,
		Description:  "Ten percent off",
		DiscountType: couponmodel.DiscountTypePercentage,
		Value:        d("10"),
		UsageLimit:   couponmodel.UsageLimitSingle,
		Active:       true,
	}
}

func TestCheckoutRecordsSaleAndRedeemsCoupon(t *testing.T) {
	itemID := uuid.New()
	code := "TEN"
	cart := checkoutCart(&code, cartmodel.CartLine{
		ItemID:    itemID,
		Name:      "Paracetamol 500mg",
		SKU:       "PARA-500",
		Quantity:  2,
		UnitPrice: d("25.00"),
	})
	f := newCheckoutFixture(cart, singleUseCoupon("TEN"))
	operatorID := uuid.New()

	sale, err := f.svc.Checkout(context.Background(), "test-session", operatorID, model.CheckoutRequest{
		PaymentMethod: model.PaymentCash,
	})
	require.NoError(t, err)

	assert.True(t, sale.Subtotal.Equal(d("50.00")))
	assert.True(t, sale.Discount.Equal(d("5.00")))
	assert.True(t, sale.Total.Equal(d("45.00")))
	assert.Equal(t, operatorID, sale.OperatorID)
	require.NotNil(t, sale.CouponSnapshot)
	assert.Equal(t, "TEN", sale.CouponSnapshot.Code)

	require.Len(t, f.sales.sales, 1)
	assert.Equal(t, 2, f.catalog.decrements[itemID])
	assert.Equal(t, 1, f.coupons.redemptions)
	assert.Equal(t, []string{"test-session"}, f.carts.deleted)
}

func TestCheckoutConcurrentSingleUseRedemptionConflicts(t *testing.T) {
	code := "TEN"
	cart := checkoutCart(&code, cartmodel.CartLine{
		ItemID:    uuid.New(),
		Name:      "Vitamin C",
		SKU:       "VITC-1000",
		Quantity:  1,
		UnitPrice: d("30.00"),
	})
	f := newCheckoutFixture(cart, singleUseCoupon("TEN"))
	f.coupons.redemptionErr = couponmodel.ErrCouponRedeemed

	_, err := f.svc.Checkout(context.Background(), "test-session", uuid.New(), model.CheckoutRequest{
		PaymentMethod: model.PaymentCard,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrCouponNoLongerValid)

	// The cart survives so the cashier can retry without the coupon.
	assert.Empty(t, f.carts.deleted)
}

func TestCheckoutRejectsStaleCoupon(t *testing.T) {
	code := "TEN"
	coupon := singleUseCoupon("TEN")
	coupon.Redeemed = true
	cart := checkoutCart(&code, cartmodel.CartLine{
		ItemID:    uuid.New(),
		Name:      "Ibuprofen 200mg",
		SKU:       "IBU-200",
		Quantity:  1,
		UnitPrice: d("15.00"),
	})
	f := newCheckoutFixture(cart, coupon)

	_, err := f.svc.Checkout(context.Background(), "test-session", uuid.New(), model.CheckoutRequest{
		PaymentMethod: model.PaymentCash,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrCouponNoLongerValid)
	assert.Empty(t, f.sales.sales)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newCheckoutFixture(checkoutCart(nil), nil)

	_, err := f.svc.Checkout(context.Background(), "test-session", uuid.New(), model.CheckoutRequest{
		PaymentMethod: model.PaymentCash,
	})
	assert.ErrorIs(t, err, cartmodel.ErrEmptyCart)
}

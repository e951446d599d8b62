package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cartmodel "pharmapos-backend/internal/domains/cart/model"
	cartrepo "pharmapos-backend/internal/domains/cart/repository"
	catalogrepo "pharmapos-backend/internal/domains/catalog/repository"
	couponmodel "pharmapos-backend/internal/domains/coupon/model"
	couponrepo "pharmapos-backend/internal/domains/coupon/repository"
	couponservice "pharmapos-backend/internal/domains/coupon/service"
	"pharmapos-backend/internal/domains/sale/model"
	"pharmapos-backend/internal/domains/sale/repository"
	"pharmapos-backend/pkg/database"
	"pharmapos-backend/pkg/logger"
)

type saleService struct {
	runTx       func(ctx context.Context, fn database.TxFunc) error
	saleRepo    repository.SaleRepository
	cartRepo    cartrepo.CartRepository
	catalogRepo catalogrepo.RepositoryInterface
	couponRepo  couponrepo.CouponRepository
	gate        *couponservice.Gate
	branch      string
}

// NewSaleService creates a new sale service
func NewSaleService(
	db *pgxpool.Pool,
	saleRepo repository.SaleRepository,
	cartRepo cartrepo.CartRepository,
	catalogRepo catalogrepo.RepositoryInterface,
	couponRepo couponrepo.CouponRepository,
	gate *couponservice.Gate,
	branch string,
) SaleService {
	return &saleService{
		runTx: func(ctx context.Context, fn database.TxFunc) error {
			return database.WithTransaction(ctx, db, fn)
		},
		saleRepo:    saleRepo,
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
		couponRepo:  couponRepo,
		gate:        gate,
		branch:      branch,
	}
}

func (s *saleService) Checkout(ctx context.Context, sessionID string, operatorID uuid.UUID, req model.CheckoutRequest) (*model.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, cartmodel.ErrEmptyCart
	}

	coupon, err := s.resolveCoupon(ctx, cart)
	if err != nil {
		return nil, err
	}

	// The coupon is re-validated here: the cart may have changed since it
	// was applied, or another terminal may have redeemed a single-use code.
	if coupon != nil {
		if rejection := s.gate.Check(coupon, nil, cart); rejection != nil {
			return nil, model.NewCouponNoLongerValid(rejection.Message)
		}
	}

	subtotal := cart.Subtotal()
	discount := couponservice.Calculate(coupon, cart)
	total := couponservice.Total(subtotal, discount)

	sale := &model.Transaction{
		ID:            uuid.New(),
		Lines:         saleLines(cart),
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         total,
		PaymentMethod: req.PaymentMethod,
		OperatorID:    operatorID,
		Branch:        s.branch,
		CreatedAt:     time.Now(),
	}
	if coupon != nil {
		sale.CouponCode = &coupon.Code
		sale.CouponSnapshot = snapshotCoupon(coupon)
	}

	// Sale insert, stock decrement and coupon redemption commit together
	// or not at all.
	err = s.runTx(ctx, func(tx pgx.Tx) error {
		if err := s.saleRepo.CreateWithTx(ctx, tx, sale); err != nil {
			return err
		}
		for _, line := range sale.Lines {
			if err := s.catalogRepo.DecrementStockWithTx(ctx, tx, line.ItemID, line.Quantity); err != nil {
				return err
			}
		}
		if coupon != nil {
			if err := s.couponRepo.RecordRedemptionWithTx(ctx, tx, coupon.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// A concurrent checkout beat us to a single-use coupon; the whole
		// transaction rolled back, so nothing was sold.
		if errors.Is(err, couponmodel.ErrCouponRedeemed) {
			return nil, model.NewCouponNoLongerValid("This coupon has already been redeemed")
		}
		return nil, err
	}

	// Cart cleanup is best-effort; redis TTL reclaims it either way.
	if err := s.cartRepo.Delete(ctx, sessionID); err != nil {
		logger.Warn("failed to discard cart after checkout", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	logger.Info("checkout completed", map[string]interface{}{
		"sale_id":     sale.ID.String(),
		"operator_id": operatorID.String(),
		"total":       sale.Total.StringFixed(2),
	})

	return sale, nil
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	return s.saleRepo.FindByID(ctx, id)
}

func (s *saleService) ListSales(ctx context.Context, filter model.ListSalesFilter) ([]model.Transaction, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, 0, model.ErrInvalidDateRange
	}
	return s.saleRepo.List(ctx, filter)
}

func (s *saleService) resolveCoupon(ctx context.Context, cart *cartmodel.Cart) (*couponmodel.Coupon, error) {
	if cart.AppliedCouponCode == nil {
		return nil, nil
	}
	coupon, err := s.couponRepo.FindByCode(ctx, *cart.AppliedCouponCode)
	if err != nil {
		if errors.Is(err, couponmodel.ErrCouponNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return coupon, nil
}

func saleLines(cart *cartmodel.Cart) []model.SaleLine {
	lines := make([]model.SaleLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, model.SaleLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			SKU:       l.SKU,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal(),
		})
	}
	return lines
}

func snapshotCoupon(coupon *couponmodel.Coupon) *model.CouponSnapshot {
	ids := make([]uuid.UUID, len(coupon.ApplicableItemIDs))
	copy(ids, coupon.ApplicableItemIDs)

	return &model.CouponSnapshot{
		Code:                     coupon.Code,
		Description:              coupon.Description,
		VendorName:               coupon.VendorName,
		CompensationType:         string(coupon.CompensationType),
		DiscountType:             string(coupon.DiscountType),
		Value:                    coupon.Value,
		ApplicableItemIDs:        ids,
		PartnershipVendorPercent: coupon.PartnershipVendorPercent,
		PartnershipMEPPercent:    coupon.PartnershipMEPPercent,
	}
}

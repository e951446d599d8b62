package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"pharmapos-backend/internal/domains/cart/model"
	"pharmapos-backend/internal/domains/cart/repository"
	catalogservice "pharmapos-backend/internal/domains/catalog/service"
	couponmodel "pharmapos-backend/internal/domains/coupon/model"
	couponrepo "pharmapos-backend/internal/domains/coupon/repository"
	couponservice "pharmapos-backend/internal/domains/coupon/service"
	"pharmapos-backend/pkg/logger"
)

type cartService struct {
	cartRepo   repository.CartRepository
	catalogSvc catalogservice.ServiceInterface
	couponRepo couponrepo.CouponRepository
	gate       *couponservice.Gate
}

// NewCartService creates a new cart service
func NewCartService(
	cartRepo repository.CartRepository,
	catalogSvc catalogservice.ServiceInterface,
	couponRepo couponrepo.CouponRepository,
	gate *couponservice.Gate,
) CartService {
	return &cartService{
		cartRepo:   cartRepo,
		catalogSvc: catalogSvc,
		couponRepo: couponRepo,
		gate:       gate,
	}
}

func (s *cartService) StartSession(ctx context.Context) (*model.CartResponse, error) {
	cart := &model.Cart{
		SessionID: uuid.NewString(),
		Lines:     []model.CartLine{},
		CreatedAt: time.Now(),
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, cart)
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, cart)
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, req model.AddLineRequest) (*model.CartResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items, err := s.catalogSvc.LookupItems(ctx, []uuid.UUID{req.ItemID})
	if err != nil {
		return nil, err
	}
	item, ok := items[req.ItemID]
	if !ok || !item.IsActive || item.Stock <= 0 {
		return nil, model.ErrItemUnavailable
	}

	// Price is frozen at add time; later catalog edits do not touch
	// lines already in the cart.
	cart.AddLine(model.CartLine{
		ItemID:    item.ID,
		Name:      item.Name,
		SKU:       item.SKU,
		Quantity:  req.Quantity,
		UnitPrice: item.Price,
	})

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, cart)
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, req model.UpdateLineRequest) (*model.CartResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !cart.SetQuantity(itemID, req.Quantity) {
		return nil, model.ErrLineNotFound
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, itemID uuid.UUID) (*model.CartResponse, error) {
	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !cart.RemoveLine(itemID) {
		return nil, model.ErrLineNotFound
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, cart)
}

func (s *cartService) ApplyCoupon(ctx context.Context, sessionID string, req model.ApplyCouponRequest) (*model.CouponVerdict, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	code := couponmodel.NormalizeCode(req.Code)

	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, couponmodel.ErrCouponNotFound) {
		return nil, err
	}

	existing, err := s.appliedCoupon(ctx, cart)
	if err != nil {
		return nil, err
	}

	if rejection := s.gate.Check(coupon, existing, cart); rejection != nil {
		logger.Info("coupon rejected", map[string]interface{}{
			"session_id": sessionID,
			"code":       code,
			"reason":     string(rejection.Reason),
		})

		return &model.CouponVerdict{
			Accepted: false,
			Code:     code,
			Reason:   string(rejection.Reason),
			Message:  rejection.Message,
		}, nil
	}

	// Accepted: the new coupon takes the single coupon slot.
	cart.AppliedCouponCode = &coupon.Code
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	resp, err := s.buildResponse(ctx, cart)
	if err != nil {
		return nil, err
	}

	logger.Info("coupon applied", map[string]interface{}{
		"session_id": sessionID,
		"code":       coupon.Code,
	})

	return &model.CouponVerdict{
		Accepted: true,
		Code:     coupon.Code,
		Cart:     resp,
	}, nil
}

func (s *cartService) RemoveCoupon(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	cart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.AppliedCouponCode == nil {
		return nil, model.ErrNoCouponApplied
	}

	cart.AppliedCouponCode = nil
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, cart)
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return model.ErrSessionRequired
	}
	return s.cartRepo.Delete(ctx, sessionID)
}

func (s *cartService) loadCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	if sessionID == "" {
		return nil, model.ErrSessionRequired
	}
	return s.cartRepo.Get(ctx, sessionID)
}

// appliedCoupon resolves the cart's applied coupon, dropping the reference
// if the coupon was deleted since it was applied.
func (s *cartService) appliedCoupon(ctx context.Context, cart *model.Cart) (*couponmodel.Coupon, error) {
	if cart.AppliedCouponCode == nil {
		return nil, nil
	}
	coupon, err := s.couponRepo.FindByCode(ctx, *cart.AppliedCouponCode)
	if err != nil {
		if errors.Is(err, couponmodel.ErrCouponNotFound) {
			cart.AppliedCouponCode = nil
			return nil, nil
		}
		return nil, err
	}
	return coupon, nil
}

// buildResponse recomputes discount and total from the live cart state.
func (s *cartService) buildResponse(ctx context.Context, cart *model.Cart) (*model.CartResponse, error) {
	coupon, err := s.appliedCoupon(ctx, cart)
	if err != nil {
		return nil, err
	}

	subtotal := cart.Subtotal()
	discount := couponservice.Calculate(coupon, cart)
	total := couponservice.Total(subtotal, discount)

	itemsCount := 0
	for _, line := range cart.Lines {
		itemsCount += line.Quantity
	}

	resp := &model.CartResponse{
		SessionID:         cart.SessionID,
		Lines:             cart.Lines,
		ItemsCount:        itemsCount,
		Subtotal:          subtotal,
		Discount:          discount,
		Total:             total,
		AppliedCouponCode: cart.AppliedCouponCode,
	}
	if coupon != nil {
		resp.CouponDescription = &coupon.Description
	}
	return resp, nil
}

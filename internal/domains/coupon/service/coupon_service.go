package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pharmapos-backend/internal/domains/coupon/model"
	"pharmapos-backend/internal/domains/coupon/repository"
	"pharmapos-backend/pkg/logger"
)

type couponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService creates a new coupon service
func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) ListCoupons(ctx context.Context, filter model.ListCouponsFilter) ([]model.CouponResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	coupons, total, err := s.couponRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]model.CouponResponse, 0, len(coupons))
	for i := range coupons {
		responses = append(responses, coupons[i].ToResponse())
	}
	return responses, total, nil
}

func (s *couponService) GetCoupon(ctx context.Context, id uuid.UUID) (*model.CouponResponse, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := coupon.ToResponse()
	return &resp, nil
}

func (s *couponService) CreateCoupon(ctx context.Context, req model.CreateCouponRequest) (*model.CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	code := model.NormalizeCode(req.Code)
	exists, err := s.couponRepo.CheckCodeExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrDuplicateCode
	}

	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	coupon := &model.Coupon{
		ID:                       uuid.New(),
		Code:                     code,
		Description:              req.Description,
		DiscountType:             req.DiscountType,
		Value:                    req.Value,
		MinPurchaseAmount:        req.MinPurchaseAmount,
		StartDate:                startDate,
		EndDate:                  endDate,
		Active:                   req.Active,
		IsCombinable:             req.IsCombinable,
		UsageLimit:               req.UsageLimit,
		UsageCount:               0,
		Redeemed:                 false,
		VendorName:               req.VendorName,
		CompensationType:         req.CompensationType,
		PartnershipVendorPercent: req.PartnershipVendorPercent,
		PartnershipMEPPercent:    req.PartnershipMEPPercent,
		ApplicableItemIDs:        emptyIfNil(req.ApplicableItemIDs),
		RequiredItemIDs:          emptyIfNil(req.RequiredItemIDs),
		BuyQuantity:              req.BuyQuantity,
		GetQuantity:              req.GetQuantity,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}

	logger.Info("coupon created", map[string]interface{}{
		"coupon_id":     coupon.ID.String(),
		"code":          coupon.Code,
		"discount_type": string(coupon.DiscountType),
	})

	resp := coupon.ToResponse()
	return &resp, nil
}

func (s *couponService) UpdateCoupon(ctx context.Context, id uuid.UUID, req model.UpdateCouponRequest) (*model.CouponResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		coupon.Description = *req.Description
	}
	if req.DiscountType != nil {
		coupon.DiscountType = *req.DiscountType
	}
	if req.Value != nil {
		coupon.Value = *req.Value
	}
	if req.MinPurchaseAmount != nil {
		coupon.MinPurchaseAmount = req.MinPurchaseAmount
	}
	if req.StartDate != nil {
		startDate, err := parseDatePtr(req.StartDate)
		if err != nil {
			return nil, err
		}
		coupon.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDatePtr(req.EndDate)
		if err != nil {
			return nil, err
		}
		coupon.EndDate = endDate
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}
	if req.IsCombinable != nil {
		coupon.IsCombinable = *req.IsCombinable
	}
	if req.UsageLimit != nil {
		coupon.UsageLimit = *req.UsageLimit
	}
	if req.VendorName != nil {
		coupon.VendorName = *req.VendorName
	}
	if req.CompensationType != nil {
		coupon.CompensationType = *req.CompensationType
	}
	if req.PartnershipVendorPercent != nil {
		coupon.PartnershipVendorPercent = req.PartnershipVendorPercent
	}
	if req.PartnershipMEPPercent != nil {
		coupon.PartnershipMEPPercent = req.PartnershipMEPPercent
	}
	if req.ApplicableItemIDs != nil {
		coupon.ApplicableItemIDs = req.ApplicableItemIDs
	}
	if req.RequiredItemIDs != nil {
		coupon.RequiredItemIDs = req.RequiredItemIDs
	}
	if req.BuyQuantity != nil {
		coupon.BuyQuantity = req.BuyQuantity
	}
	if req.GetQuantity != nil {
		coupon.GetQuantity = req.GetQuantity
	}

	if coupon.CompensationType == model.CompensationPartnership {
		if coupon.PartnershipVendorPercent == nil || coupon.PartnershipMEPPercent == nil ||
			*coupon.PartnershipVendorPercent+*coupon.PartnershipMEPPercent != 100 {
			return nil, fmt.Errorf("partnership split percentages must sum to 100: %w", model.ErrInvalidCompensation)
		}
	}

	if err := s.couponRepo.Update(ctx, coupon); err != nil {
		return nil, err
	}

	resp := coupon.ToResponse()
	return &resp, nil
}

func (s *couponService) UpdateStatus(ctx context.Context, id uuid.UUID, active bool) (*model.CouponResponse, error) {
	if err := s.couponRepo.UpdateStatus(ctx, id, active); err != nil {
		return nil, err
	}
	return s.GetCoupon(ctx, id)
}

func (s *couponService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	return s.couponRepo.Delete(ctx, id)
}

func (s *couponService) ResetRedemption(ctx context.Context, id uuid.UUID) (*model.CouponResponse, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if coupon.UsageLimit != model.UsageLimitSingle {
		return nil, model.ErrNotSingleUse
	}
	if !coupon.Redeemed {
		return nil, model.ErrCouponNotRedeemed
	}

	if err := s.couponRepo.ResetRedemption(ctx, id); err != nil {
		return nil, err
	}

	logger.Info("coupon redemption reset", map[string]interface{}{
		"coupon_id": id.String(),
		"code":      coupon.Code,
	})

	return s.GetCoupon(ctx, id)
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", *s, err)
	}
	return &t, nil
}

func emptyIfNil(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"pharmapos-backend/internal/domains/coupon/model"
	"pharmapos-backend/internal/domains/coupon/service"
	"pharmapos-backend/internal/shared/response"
)

// CouponHandler exposes coupon administration over HTTP.
type CouponHandler struct {
	service service.CouponService
}

func NewCouponHandler(s service.CouponService) *CouponHandler {
	return &CouponHandler{service: s}
}

// ListCoupons handles GET /coupons
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := model.ListCouponsFilter{
		Vendor: c.Query("vendor"),
		Page:   page,
		Limit:  limit,
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, "active must be true or false")
			return
		}
		filter.Active = &active
	}

	coupons, total, err := h.service.ListCoupons(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, coupons, response.NewMeta(page, limit, int(total)))
}

// GetCoupon handles GET /coupons/:id
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid coupon id")
		return
	}

	coupon, err := h.service.GetCoupon(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, coupon)
}

// CreateCoupon handles POST /coupons
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req model.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	coupon, err := h.service.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, coupon)
}

// UpdateCoupon handles PUT /coupons/:id
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid coupon id")
		return
	}

	var req model.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	coupon, err := h.service.UpdateCoupon(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, coupon)
}

// UpdateStatus handles PATCH /coupons/:id/status
func (h *CouponHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid coupon id")
		return
	}

	var req struct {
		Active *bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		response.BadRequest(c, "active flag is required")
		return
	}

	coupon, err := h.service.UpdateStatus(c.Request.Context(), id, *req.Active)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, coupon)
}

// ResetRedemption handles POST /coupons/:id/reset
func (h *CouponHandler) ResetRedemption(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid coupon id")
		return
	}

	coupon, err := h.service.ResetRedemption(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, coupon)
}

// DeleteCoupon handles DELETE /coupons/:id
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid coupon id")
		return
	}

	if err := h.service.DeleteCoupon(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *CouponHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors

	switch {
	case errors.Is(err, model.ErrCouponNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrDuplicateCode):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrNotSingleUse),
		errors.Is(err, model.ErrCouponNotRedeemed),
		errors.Is(err, model.ErrInvalidCompensation):
		response.BadRequest(c, err.Error())
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_INVALID_INPUT", "validation failed", vErrs)
	default:
		response.InternalServerError(c, "something went wrong")
	}
}

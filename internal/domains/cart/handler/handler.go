package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"pharmapos-backend/internal/domains/cart/model"
	"pharmapos-backend/internal/domains/cart/service"
	"pharmapos-backend/internal/shared/response"
)

// sessionHeader carries the register session across requests.
const sessionHeader = "X-Session-ID"

// CartHandler exposes the register cart over HTTP.
type CartHandler struct {
	service service.CartService
}

func NewCartHandler(s service.CartService) *CartHandler {
	return &CartHandler{service: s}
}

// StartSession handles POST /pos/session
func (h *CartHandler) StartSession(c *gin.Context) {
	cart, err := h.service.StartSession(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cart)
}

// GetCart handles GET /pos/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.service.GetCart(c.Request.Context(), c.GetHeader(sessionHeader))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// AddItem handles POST /pos/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req model.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cart, err := h.service.AddItem(c.Request.Context(), c.GetHeader(sessionHeader), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// UpdateQuantity handles PUT /pos/cart/items/:itemId
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	var req model.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cart, err := h.service.UpdateQuantity(c.Request.Context(), c.GetHeader(sessionHeader), itemID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// RemoveItem handles DELETE /pos/cart/items/:itemId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	cart, err := h.service.RemoveItem(c.Request.Context(), c.GetHeader(sessionHeader), itemID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// ApplyCoupon handles POST /pos/cart/coupon. A gate rejection is a 200
// with accepted=false so the register UI can show the reason inline.
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req model.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	verdict, err := h.service.ApplyCoupon(c.Request.Context(), c.GetHeader(sessionHeader), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, verdict)
}

// RemoveCoupon handles DELETE /pos/cart/coupon
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	cart, err := h.service.RemoveCoupon(c.Request.Context(), c.GetHeader(sessionHeader))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cart)
}

// ClearCart handles DELETE /pos/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.service.ClearCart(c.Request.Context(), c.GetHeader(sessionHeader)); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}

func (h *CartHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors

	switch {
	case errors.Is(err, model.ErrCartNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrLineNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrSessionRequired),
		errors.Is(err, model.ErrNoCouponApplied),
		errors.Is(err, model.ErrItemUnavailable):
		response.BadRequest(c, err.Error())
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_INVALID_INPUT", "validation failed", vErrs)
	default:
		response.InternalServerError(c, "something went wrong")
	}
}

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	cartmodel "pharmapos-backend/internal/domains/cart/model"
	"pharmapos-backend/internal/domains/sale/model"
	"pharmapos-backend/internal/domains/sale/service"
	"pharmapos-backend/internal/shared/response"
)

const sessionHeader = "X-Session-ID"

// SaleHandler exposes checkout and sales reporting over HTTP.
type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

// Checkout handles POST /pos/checkout
func (h *SaleHandler) Checkout(c *gin.Context) {
	operatorID, ok := c.Get("operatorID")
	if !ok {
		response.Unauthorized(c, "operator not authenticated")
		return
	}

	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	sale, err := h.service.Checkout(c.Request.Context(), c.GetHeader(sessionHeader), operatorID.(uuid.UUID), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sale)
}

// GetSale handles GET /sales/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid sale id")
		return
	}

	sale, err := h.service.GetSale(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, sale)
}

// ListSales handles GET /sales
func (h *SaleHandler) ListSales(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sales, total, err := h.service.ListSales(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, sales, response.NewMeta(filter.Page, filter.Limit, int(total)))
}

// Summary handles GET /sales/summary
func (h *SaleHandler) Summary(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// VendorCompensationReport handles GET /sales/reports/vendor-compensation
func (h *SaleHandler) VendorCompensationReport(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rows, err := h.service.VendorCompensationReport(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows)
}

// ItemSalesReport handles GET /sales/reports/items
func (h *SaleHandler) ItemSalesReport(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rows, err := h.service.ItemSalesReport(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, rows)
}

func parseFilter(c *gin.Context) (model.ListSalesFilter, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := model.ListSalesFilter{Page: page, Limit: limit}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errors.New("from must be in YYYY-MM-DD format")
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, errors.New("to must be in YYYY-MM-DD format")
		}
		// Inclusive end of day.
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	return filter, nil
}

func (h *SaleHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors

	switch {
	case errors.Is(err, model.ErrSaleNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, cartmodel.ErrCartNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, cartmodel.ErrEmptyCart),
		errors.Is(err, cartmodel.ErrSessionRequired),
		errors.Is(err, model.ErrInvalidDateRange):
		response.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrCouponNoLongerValid):
		response.Conflict(c, err.Error())
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_INVALID_INPUT", "validation failed", vErrs)
	default:
		response.InternalServerError(c, "something went wrong")
	}
}

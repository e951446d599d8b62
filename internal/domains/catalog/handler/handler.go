package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"pharmapos-backend/internal/domains/catalog/model"
	"pharmapos-backend/internal/domains/catalog/service"
	"pharmapos-backend/internal/shared/response"
)

// CatalogHandler exposes catalog CRUD over HTTP.
type CatalogHandler struct {
	service service.ServiceInterface
}

func NewCatalogHandler(s service.ServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// CreateItem handles POST /items
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req model.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, item)
}

// GetItem handles GET /items/:id
func (h *CatalogHandler) GetItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

// ListItems handles GET /items
func (h *CatalogHandler) ListItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := &model.ListItemsFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	}

	items, total, err := h.service.ListItems(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, items, response.NewMeta(page, limit, total))
}

// UpdateItem handles PUT /items/:id
func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	var req model.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, item)
}

// DeleteItem handles DELETE /items/:id
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *CatalogHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors

	switch {
	case errors.Is(err, model.ErrItemNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrDuplicateSKU):
		response.Conflict(c, err.Error())
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_INVALID_INPUT", "validation failed", vErrs)
	default:
		response.InternalServerError(c, "something went wrong")
	}
}

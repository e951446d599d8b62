package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"pharmapos-backend/internal/domains/operator/model"
	"pharmapos-backend/internal/domains/operator/service"
	"pharmapos-backend/internal/shared/response"
)

// AuthHandler exposes operator authentication over HTTP.
type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *AuthHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors

	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, model.ErrOperatorInactive):
		response.Forbidden(c, err.Error())
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_INVALID_INPUT", "validation failed", vErrs)
	default:
		response.InternalServerError(c, "something went wrong")
	}
}

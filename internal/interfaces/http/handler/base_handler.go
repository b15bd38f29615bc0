// Package handler contains the gin HTTP handlers.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/connector/internal/domain/shared"
	"github.com/erp/connector/internal/interfaces/http/dto"
)

// BaseHandler provides shared response helpers for all handlers
type BaseHandler struct{}

// RespondSuccess writes a success envelope
func (BaseHandler) RespondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.NewSuccessResponse(data))
}

// RespondError maps an error to a status code and writes an error
// envelope. Domain errors keep their code; everything else becomes an
// internal error.
func (BaseHandler) RespondError(c *gin.Context, err error) {
	var domainErr *shared.DomainError

	switch {
	case errors.Is(err, shared.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("NOT_FOUND", err.Error()))
	case errors.Is(err, shared.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse("ALREADY_EXISTS", err.Error()))
	case errors.Is(err, shared.ErrInvalidInput), errors.Is(err, shared.ErrInvalidState):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("INVALID_REQUEST", err.Error()))
	case errors.Is(err, shared.ErrConfiguration):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse("CONFIGURATION", err.Error()))
	case errors.Is(err, shared.ErrAuthentication):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse("UPSTREAM_AUTH", err.Error()))
	case errors.Is(err, shared.ErrTransfer):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse("TRANSFER", err.Error()))
	case errors.Is(err, shared.ErrFormat):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse("FORMAT", err.Error()))
	case errors.As(err, &domainErr):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(domainErr.Code, domainErr.Message))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("INTERNAL", err.Error()))
	}
}

// RespondInvalid writes a 400 for malformed request payloads
func (BaseHandler) RespondInvalid(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse("INVALID_REQUEST", err.Error()))
}

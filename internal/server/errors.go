package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/billcraft/printgen/internal/observability/logger"
	"github.com/billcraft/printgen/internal/templatestore"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// abortWithError maps service errors onto HTTP statuses and writes the
// error envelope. Unknown errors become 500s and are logged with the
// request-scoped logger.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"

	switch {
	case errors.Is(err, templatestore.ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
	case errors.Is(err, templatestore.ErrInvalidOrganization),
		errors.Is(err, templatestore.ErrInvalidID),
		errors.Is(err, templatestore.ErrInvalidName),
		errors.Is(err, templatestore.ErrInvalidVoucherType),
		errors.Is(err, templatestore.ErrInvalidEngine),
		errors.Is(err, templatestore.ErrEmptyContent):
		status = http.StatusBadRequest
		code = err.Error()
	}

	if status == http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error(), Code: code})
}

func abortBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: message, Code: "bad_request"})
}

package api

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"weathertracker.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a successful HTTP response
type SuccessResponse struct {
	Message string `json:"message"`
}

// handleError maps application error types to HTTP status codes
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var statusCode int
	var message string

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.New(errors.ErrorTypeUnknown, "")
	}
	appMessage := appErr.Message

	switch appErr.Type {
	case errors.ErrorTypeValidation:
		statusCode = http.StatusBadRequest
		message = appMessage
	case errors.ErrorTypeNotFound:
		statusCode = http.StatusNotFound
		message = appMessage
	case errors.ErrorTypeAlreadyExists:
		statusCode = http.StatusConflict
		message = appMessage
	case errors.ErrorTypeUnauthorized:
		statusCode = http.StatusUnauthorized
		message = appMessage
	case errors.ErrorTypeForbidden:
		statusCode = http.StatusForbidden
		message = appMessage
	case errors.ErrorTypeExternalAPI:
		statusCode = http.StatusServiceUnavailable
		message = "External service unavailable"
	case errors.ErrorTypeEmail:
		statusCode = http.StatusServiceUnavailable
		message = "Unable to send email"
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	if statusCode >= http.StatusInternalServerError {
		slog.Error("Request failed", "path", c.FullPath(), "error", err, "request_id", c.GetString(requestIDHeader))
	}
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// pathID parses a positive numeric path parameter
func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + name + " parameter")
	}
	return uint(id), nil
}

package utils

import (
	"errors"
	"fmt"
	"net/http"

	"auction-services/internal/auctionerrors"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %v: %w", err, auctionerrors.ErrValidation)
	JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// StatusFor maps an error kind to its HTTP status code
func StatusFor(err error) int {
	switch {
	case errors.Is(err, auctionerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auctionerrors.ErrValidation), errors.Is(err, auctionerrors.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, auctionerrors.ErrStalePrice):
		return http.StatusConflict
	case errors.Is(err, auctionerrors.ErrDownstreamUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	Info(handlerName+": "+message, ctx)
}

package helpers

import (
	"errors"
	"net/http"
	"strings"

	"auction-services/internal/auctionerrors"
	"auction-services/utils"
)

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrNotificationNotFound):
		return http.StatusNotFound, "notification not found"
	case errors.Is(err, auctionerrors.ErrInvalidNotification):
		return http.StatusBadRequest, "invalid notification details"
	case errors.Is(err, auctionerrors.ErrInvalidWindow):
		return http.StatusBadRequest, "invalid reporting window"
	default:
		status := utils.StatusFor(err)
		return status, strings.ToLower(http.StatusText(status))
	}
}

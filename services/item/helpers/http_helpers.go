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
	case errors.Is(err, auctionerrors.ErrItemNotFound):
		return http.StatusNotFound, "item not found"
	case errors.Is(err, auctionerrors.ErrInvalidItem):
		return http.StatusBadRequest, "invalid item details"
	default:
		status := utils.StatusFor(err)
		return status, strings.ToLower(http.StatusText(status))
	}
}

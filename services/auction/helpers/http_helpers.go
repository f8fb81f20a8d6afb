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
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrPriceNotHigher):
		return http.StatusConflict, "price does not exceed current price"
	case errors.Is(err, auctionerrors.ErrIllegalTransition):
		return http.StatusBadRequest, "operation not allowed in current auction status"
	case errors.Is(err, auctionerrors.ErrInvalidAuction):
		return http.StatusBadRequest, "invalid auction details"
	case errors.Is(err, auctionerrors.ErrInvalidWindow):
		return http.StatusBadRequest, "invalid reporting window"
	case errors.Is(err, auctionerrors.ErrDownstreamUnavailable):
		return http.StatusServiceUnavailable, "dependent service unavailable"
	default:
		status := utils.StatusFor(err)
		return status, strings.ToLower(http.StatusText(status))
	}
}

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
	case errors.Is(err, auctionerrors.ErrBidNotFound):
		return http.StatusNotFound, "bid not found"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for auction"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusBadRequest, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrUnknownAuction):
		return http.StatusBadRequest, "auction not found"
	case errors.Is(err, auctionerrors.ErrAuctionNotActive):
		return http.StatusBadRequest, "auction is not active"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrInvalidWindow):
		return http.StatusBadRequest, "invalid reporting window"
	case errors.Is(err, auctionerrors.ErrDownstreamUnavailable):
		return http.StatusServiceUnavailable, "auction service unavailable"
	default:
		status := utils.StatusFor(err)
		return status, strings.ToLower(http.StatusText(status))
	}
}

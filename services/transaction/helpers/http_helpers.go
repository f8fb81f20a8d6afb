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
	case errors.Is(err, auctionerrors.ErrTransactionNotFound):
		return http.StatusNotFound, "transaction not found"
	case errors.Is(err, auctionerrors.ErrIllegalTransition):
		return http.StatusBadRequest, "operation not allowed in current transaction status"
	case errors.Is(err, auctionerrors.ErrInvalidTransaction):
		return http.StatusBadRequest, "invalid transaction details"
	case errors.Is(err, auctionerrors.ErrInvalidWindow):
		return http.StatusBadRequest, "invalid reporting window"
	default:
		status := utils.StatusFor(err)
		return status, strings.ToLower(http.StatusText(status))
	}
}

package auctionerrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every error surfaced by a service wraps exactly one of these.
var (
	ErrNotFound              = errors.New("not found")
	ErrValidation            = errors.New("validation error")
	ErrInvalidState          = errors.New("invalid state")
	ErrStalePrice            = errors.New("stale price")
	ErrDownstreamUnavailable = errors.New("downstream unavailable")
)

// Repository-level errors
var (
	ErrAuctionNotFound      = fmt.Errorf("auction not found: %w", ErrNotFound)
	ErrBidNotFound          = fmt.Errorf("bid not found: %w", ErrNotFound)
	ErrNoBids               = fmt.Errorf("no bids found for auction: %w", ErrNotFound)
	ErrTransactionNotFound  = fmt.Errorf("transaction not found: %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification not found: %w", ErrNotFound)
	ErrItemNotFound         = fmt.Errorf("item not found: %w", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user not found: %w", ErrNotFound)
	ErrEmailTaken           = fmt.Errorf("email already registered: %w", ErrValidation)
	ErrIllegalTransition    = fmt.Errorf("illegal status transition: %w", ErrInvalidState)
	ErrPriceNotHigher       = fmt.Errorf("price does not exceed current price: %w", ErrStalePrice)
)

// business logic errors
var (
	ErrInvalidBid          = fmt.Errorf("invalid bid: %w", ErrValidation)
	ErrBidTooLow           = fmt.Errorf("bid amount too low: %w", ErrValidation)
	ErrUnknownAuction      = fmt.Errorf("auction does not exist: %w", ErrValidation)
	ErrAuctionNotActive    = fmt.Errorf("auction is not active: %w", ErrValidation)
	ErrInvalidAuction      = fmt.Errorf("invalid auction: %w", ErrValidation)
	ErrInvalidTransaction  = fmt.Errorf("invalid transaction: %w", ErrValidation)
	ErrInvalidNotification = fmt.Errorf("invalid notification: %w", ErrValidation)
	ErrInvalidItem         = fmt.Errorf("invalid item: %w", ErrValidation)
	ErrInvalidUser         = fmt.Errorf("invalid user: %w", ErrValidation)
	ErrInvalidCredentials  = fmt.Errorf("invalid email or password: %w", ErrValidation)
	ErrInvalidToken        = fmt.Errorf("invalid token: %w", ErrValidation)
	ErrInvalidWindow       = fmt.Errorf("invalid reporting window: %w", ErrValidation)
)

// Wire codes for the error kinds
const (
	CodeNotFound              = "NOT_FOUND"
	CodeValidation            = "VALIDATION_ERROR"
	CodeInvalidState          = "INVALID_STATE"
	CodeStalePrice            = "STALE_PRICE"
	CodeDownstreamUnavailable = "DOWNSTREAM_UNAVAILABLE"
	CodeInternal              = "INTERNAL"
)

var kinds = []struct {
	err  error
	code string
}{
	{ErrNotFound, CodeNotFound},
	{ErrValidation, CodeValidation},
	{ErrInvalidState, CodeInvalidState},
	{ErrStalePrice, CodeStalePrice},
	{ErrDownstreamUnavailable, CodeDownstreamUnavailable},
}

// Code returns the wire code of the kind err wraps, or CodeInternal.
func Code(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.code
		}
	}
	return CodeInternal
}

// FromCode returns the kind sentinel for a wire code, or nil when the code is unknown.
func FromCode(code string) error {
	for _, k := range kinds {
		if k.code == code {
			return k.err
		}
	}
	return nil
}

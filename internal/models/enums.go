package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"auction-services/internal/auctionerrors"
)

// enumTable maps internal enum values to their wire representation and back.
// Lookups are case-insensitive so both "payment_confirmed" and the legacy
// constant spelling "PAYMENT_CONFIRMED" resolve to the same value.
type enumTable[T comparable] struct {
	kind  string
	wire  map[T]string
	parse map[string]T
}

func newEnumTable[T comparable](kind string, wire map[T]string) enumTable[T] {
	parse := make(map[string]T, len(wire))
	for v, s := range wire {
		parse[strings.ToLower(s)] = v
	}
	return enumTable[T]{kind: kind, wire: wire, parse: parse}
}

func (t enumTable[T]) lookup(s string) (T, error) {
	v, ok := t.parse[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		var zero T
		return zero, fmt.Errorf("unknown %s %q: %w", t.kind, s, auctionerrors.ErrValidation)
	}
	return v, nil
}

func (t enumTable[T]) name(v T) string {
	if s, ok := t.wire[v]; ok {
		return s
	}
	return ""
}

func (t enumTable[T]) marshal(v T) ([]byte, error) {
	s, ok := t.wire[v]
	if !ok {
		return nil, fmt.Errorf("cannot marshal %s value %v", t.kind, v)
	}
	return json.Marshal(s)
}

func (t enumTable[T]) unmarshal(data []byte) (T, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var zero T
		return zero, fmt.Errorf("%s must be a string: %w", t.kind, auctionerrors.ErrValidation)
	}
	return t.lookup(s)
}

func (t enumTable[T]) scan(src any) (T, error) {
	var zero T
	switch v := src.(type) {
	case nil:
		return zero, nil
	case string:
		return t.lookup(v)
	case []byte:
		return t.lookup(string(v))
	default:
		return zero, fmt.Errorf("cannot scan %T into %s", src, t.kind)
	}
}

// AuctionStatus is the lifecycle state of an auction.
type AuctionStatus uint8

const (
	AuctionStatusUnknown AuctionStatus = iota
	AuctionActive
	AuctionClosed
	AuctionCancelled
)

var auctionStatuses = newEnumTable("auction status", map[AuctionStatus]string{
	AuctionActive:    "Active",
	AuctionClosed:    "Closed",
	AuctionCancelled: "Cancelled",
})

// ParseAuctionStatus converts a wire value into an AuctionStatus.
func ParseAuctionStatus(s string) (AuctionStatus, error) { return auctionStatuses.lookup(s) }

func (s AuctionStatus) String() string { return auctionStatuses.name(s) }

func (s AuctionStatus) Valid() bool { return s != AuctionStatusUnknown && s.String() != "" }

// Terminal reports whether no transition may leave the status.
func (s AuctionStatus) Terminal() bool { return s == AuctionClosed || s == AuctionCancelled }

// CanTransitionTo reports whether moving from s to next is a legal lifecycle step.
func (s AuctionStatus) CanTransitionTo(next AuctionStatus) bool {
	return s == AuctionActive && (next == AuctionClosed || next == AuctionCancelled)
}

func (s AuctionStatus) MarshalJSON() ([]byte, error) { return auctionStatuses.marshal(s) }

func (s *AuctionStatus) UnmarshalJSON(data []byte) (err error) {
	*s, err = auctionStatuses.unmarshal(data)
	return err
}

func (s AuctionStatus) Value() (driver.Value, error) { return s.String(), nil }

func (s *AuctionStatus) Scan(src any) (err error) {
	*s, err = auctionStatuses.scan(src)
	return err
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus uint8

const (
	TransactionStatusUnknown TransactionStatus = iota
	TransactionPending
	TransactionCompleted
	TransactionFailed
	TransactionRefunded
)

var transactionStatuses = newEnumTable("transaction status", map[TransactionStatus]string{
	TransactionPending:   "Pending",
	TransactionCompleted: "Completed",
	TransactionFailed:    "Failed",
	TransactionRefunded:  "Refunded",
})

// ParseTransactionStatus converts a wire value into a TransactionStatus.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	return transactionStatuses.lookup(s)
}

func (s TransactionStatus) String() string { return transactionStatuses.name(s) }

func (s TransactionStatus) Valid() bool { return s != TransactionStatusUnknown && s.String() != "" }

func (s TransactionStatus) MarshalJSON() ([]byte, error) { return transactionStatuses.marshal(s) }

func (s *TransactionStatus) UnmarshalJSON(data []byte) (err error) {
	*s, err = transactionStatuses.unmarshal(data)
	return err
}

func (s TransactionStatus) Value() (driver.Value, error) { return s.String(), nil }

func (s *TransactionStatus) Scan(src any) (err error) {
	*s, err = transactionStatuses.scan(src)
	return err
}

// NotificationType is the kind of event a notification reports.
type NotificationType uint8

const (
	NotificationTypeUnknown NotificationType = iota
	NotificationAuctionStarted
	NotificationNewBid
	NotificationAuctionEnded
	NotificationItemSold
	NotificationItemPurchased
	NotificationPaymentConfirmed
	NotificationPaymentReceived
	NotificationRefundProcessed
	NotificationRefundIssued
)

var notificationTypes = newEnumTable("notification type", map[NotificationType]string{
	NotificationAuctionStarted:   "auction_started",
	NotificationNewBid:           "new_bid",
	NotificationAuctionEnded:     "auction_ended",
	NotificationItemSold:         "item_sold",
	NotificationItemPurchased:    "item_purchased",
	NotificationPaymentConfirmed: "payment_confirmed",
	NotificationPaymentReceived:  "payment_received",
	NotificationRefundProcessed:  "refund_processed",
	NotificationRefundIssued:     "refund_issued",
})

// ParseNotificationType converts a wire value into a NotificationType.
func ParseNotificationType(s string) (NotificationType, error) { return notificationTypes.lookup(s) }

func (t NotificationType) String() string { return notificationTypes.name(t) }

func (t NotificationType) Valid() bool { return t != NotificationTypeUnknown && t.String() != "" }

func (t NotificationType) MarshalJSON() ([]byte, error) { return notificationTypes.marshal(t) }

func (t *NotificationType) UnmarshalJSON(data []byte) (err error) {
	*t, err = notificationTypes.unmarshal(data)
	return err
}

func (t NotificationType) Value() (driver.Value, error) { return t.String(), nil }

func (t *NotificationType) Scan(src any) (err error) {
	*t, err = notificationTypes.scan(src)
	return err
}

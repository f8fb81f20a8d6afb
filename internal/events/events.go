//go:generate mockgen -package=events -destination=mock.go -source=events.go
package events

import (
	"context"
	"time"

	"auction-services/internal/metrics"
	"auction-services/utils"
)

// Routing keys on the lifecycle exchange
const (
	AuctionEnded         = "auction.ended"
	BidPlaced            = "bid.placed"
	TransactionCreated   = "transaction.created"
	TransactionConfirmed = "transaction.confirmed"
	TransactionRefunded  = "transaction.refunded"
)

// Event is the JSON body of every lifecycle message
type Event struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entity_id"`
	AuctionID  string    `json:"auction_id"`
	UserID     string    `json:"user_id,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher sends lifecycle events; Type is the routing key
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// SettlementHandler processes an ended auction
type SettlementHandler interface {
	HandleAuctionEnded(ctx context.Context, auctionID string) error
}

// LogPublisher only logs events. It is used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, ev Event) error {
	metrics.EventsPublished.WithLabelValues(ev.Type, "logged").Inc()
	utils.Info("event", map[string]any{
		"type":       ev.Type,
		"entity_id":  ev.EntityID,
		"auction_id": ev.AuctionID,
	})
	return nil
}

func (LogPublisher) Close() error { return nil }

package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"auction-services/utils"

	amqp "github.com/rabbitmq/amqp091-go"
)

// SettlementQueue receives auction.ended events for settlement processing
const SettlementQueue = "auction.settlement"

var errDeliveriesClosed = errors.New("deliveries channel closed")

// SettlementConsumer feeds auction.ended events to a SettlementHandler.
type SettlementConsumer struct {
	url      string
	exchange string
	handler  SettlementHandler

	minBackoff time.Duration
	maxBackoff time.Duration
}

func NewSettlementConsumer(url, exchange string, handler SettlementHandler) *SettlementConsumer {
	return &SettlementConsumer{
		url:        url,
		exchange:   exchange,
		handler:    handler,
		minBackoff: time.Second,
		maxBackoff: 30 * time.Second,
	}
}

// Run reconnects with exponential backoff until ctx is cancelled.
func (c *SettlementConsumer) Run(ctx context.Context) error {
	backoff := c.minBackoff
	for {
		if ctx.Err() != nil {
			return nil
		}

		conn, err := dial(c.url, dialTimeout)
		if err != nil {
			utils.Warn("settlement-consumer: failed to dial broker", map[string]any{
				"error": err.Error(), "retry_in": backoff.String(),
			})
			if !wait(ctx, backoff) {
				return nil
			}
			backoff = min(backoff*2, c.maxBackoff)
			continue
		}
		backoff = c.minBackoff

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil
		}
		utils.Warn("settlement-consumer: consume loop ended, reconnecting", map[string]any{"error": err.Error()})
		if !wait(ctx, 2*time.Second) {
			return nil
		}
	}
}

func (c *SettlementConsumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		utils.Warn("settlement-consumer: set QoS failed", map[string]any{"error": err.Error()})
	}
	if err := declareExchange(ch, c.exchange); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(SettlementQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err := ch.QueueBind(SettlementQueue, AuctionEnded, c.exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind: %w", err)
	}

	msgs, err := ch.Consume(SettlementQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	utils.Info("settlement-consumer: consuming", map[string]any{"queue": SettlementQueue})
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errDeliveriesClosed
			}
			if err := c.handle(ctx, d.Body); err != nil {
				utils.Error("settlement-consumer: handle message failed", map[string]any{"error": err.Error()})
				// reject without requeue to avoid tight redelivery loops
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *SettlementConsumer) handle(ctx context.Context, body []byte) error {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type != AuctionEnded {
		return fmt.Errorf("unexpected event type %q", ev.Type)
	}
	if ev.AuctionID == "" {
		return errors.New("event has no auction_id")
	}
	return c.handler.HandleAuctionEnded(ctx, ev.AuctionID)
}

func wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

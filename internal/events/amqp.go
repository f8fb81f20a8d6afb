package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"auction-services/internal/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
)

// dialTimeout bounds the broker handshake when the caller's ctx has no deadline
const dialTimeout = 5 * time.Second

// AMQPPublisher publishes events to a durable topic exchange.
// The connection is opened lazily and reopened after a failure.
type AMQPPublisher struct {
	url      string
	exchange string

	// sem is a one-slot lock that callers can give up on when their ctx ends
	sem  chan struct{}
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url, exchange string) *AMQPPublisher {
	return &AMQPPublisher{url: url, exchange: exchange, sem: make(chan struct{}, 1)}
}

func (p *AMQPPublisher) lock(ctx context.Context) error {
	select {
	case p.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *AMQPPublisher) unlock() { <-p.sem }

func (p *AMQPPublisher) Publish(ctx context.Context, ev Event) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", ev.Type, err)
	}

	if err := p.lock(ctx); err != nil {
		metrics.EventsPublished.WithLabelValues(ev.Type, "error").Inc()
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	defer p.unlock()

	if err := p.ensureChannel(ctx); err != nil {
		metrics.EventsPublished.WithLabelValues(ev.Type, "error").Inc()
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.OccurredAt,
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, p.exchange, ev.Type, false, false, pub); err != nil {
		p.reset()
		metrics.EventsPublished.WithLabelValues(ev.Type, "error").Inc()
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}

	metrics.EventsPublished.WithLabelValues(ev.Type, "published").Inc()
	return nil
}

// ensureChannel must be called with the lock held. The handshake is bounded by ctx's deadline.
func (p *AMQPPublisher) ensureChannel(ctx context.Context) error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.reset()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	timeout := dialTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	if timeout <= 0 {
		return fmt.Errorf("rabbitmq: dial: %w", context.DeadlineExceeded)
	}
	conn, err := dial(p.url, timeout)
	if err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	if err := ctx.Err(); err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq: channel open: %w", err)
	}
	if err := declareExchange(ch, p.exchange); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	p.conn, p.ch = conn, ch
	return nil
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

func (p *AMQPPublisher) Close() error {
	_ = p.lock(context.Background())
	defer p.unlock()
	p.reset()
	return nil
}

// dial opens a connection whose TCP connect and AMQP handshake both finish within timeout
func dial(url string, timeout time.Duration) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
}

func declareExchange(ch *amqp.Channel, exchange string) error {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: exchange declare: %w", err)
	}
	return nil
}

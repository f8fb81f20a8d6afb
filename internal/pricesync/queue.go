package pricesync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrQueueFull is returned by MemoryQueue.Push when its buffer is exhausted
var ErrQueueFull = errors.New("price sync queue is full")

// Update is a price that still has to reach the Auction Registry
type Update struct {
	AuctionID  string    `json:"auction_id"`
	Price      float64   `json:"price"`
	Attempts   int       `json:"attempts"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Queue holds pending price updates in FIFO order
type Queue interface {
	Push(ctx context.Context, u Update) error
	// Pop waits up to wait for an update; ok is false when none arrived.
	Pop(ctx context.Context, wait time.Duration) (u Update, ok bool, err error)
	Len(ctx context.Context) (int64, error)
}

// RedisQueue is a Queue backed by a Redis list (LPUSH / BRPOP)
type RedisQueue struct {
	client redis.Cmdable
	key    string
}

func NewRedisQueue(client redis.Cmdable, key string) (*RedisQueue, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if key == "" {
		return nil, errors.New("queue key cannot be empty")
	}
	return &RedisQueue{client: client, key: key}, nil
}

func (q *RedisQueue) Push(ctx context.Context, u Update) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode price update: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, string(payload)).Err(); err != nil {
		return fmt.Errorf("push price update for auction %s: %w", u.AuctionID, err)
	}
	return nil
}

func (q *RedisQueue) Pop(ctx context.Context, wait time.Duration) (Update, bool, error) {
	res, err := q.client.BRPop(ctx, wait, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return Update{}, false, nil
	}
	if err != nil {
		return Update{}, false, fmt.Errorf("pop price update: %w", err)
	}
	// BRPOP replies with [key, value]
	if len(res) != 2 {
		return Update{}, false, fmt.Errorf("pop price update: unexpected reply %v", res)
	}

	var u Update
	if err := json.Unmarshal([]byte(res[1]), &u); err != nil {
		return Update{}, false, fmt.Errorf("decode price update: %w", err)
	}
	return u, true, nil
}

func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, q.key).Result()
	if err != nil {
		return 0, fmt.Errorf("price sync queue length: %w", err)
	}
	return n, nil
}

// MemoryQueue is an in-process Queue used when Redis is not configured.
// Its contents do not survive a restart.
type MemoryQueue struct {
	ch chan Update
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 1024
	}
	return &MemoryQueue{ch: make(chan Update, size)}
}

func (q *MemoryQueue) Push(ctx context.Context, u Update) error {
	select {
	case q.ch <- u:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Pop(ctx context.Context, wait time.Duration) (Update, bool, error) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case u := <-q.ch:
		return u, true, nil
	case <-timer.C:
		return Update{}, false, nil
	case <-ctx.Done():
		return Update{}, false, ctx.Err()
	}
}

func (q *MemoryQueue) Len(context.Context) (int64, error) {
	return int64(len(q.ch)), nil
}

package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrNoMessage is returned by Receive when nothing arrived in time.
	ErrNoMessage = errors.New("outbox: no message")
	ErrQueueFull = errors.New("outbox: queue full")
)

type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type Queue interface {
	Publisher
	Receive(ctx context.Context) (Message, error)
}

const DefaultRedisKey = "outbox:email"

// RedisQueue is a FIFO list in Redis: LPUSH to publish, BRPOP to receive.
type RedisQueue struct {
	client *redis.Client
	key    string
	wait   time.Duration
}

func NewRedisQueue(client *redis.Client, key string, wait time.Duration) *RedisQueue {
	if key == "" {
		key = DefaultRedisKey
	}
	if wait < time.Second {
		wait = time.Second
	}
	return &RedisQueue{client: client, key: key, wait: wait}
}

func (q *RedisQueue) Publish(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, payload).Err()
}

func (q *RedisQueue) Receive(ctx context.Context) (Message, error) {
	res, err := q.client.BRPop(ctx, q.wait, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return Message{}, ErrNoMessage
	}
	if err != nil {
		return Message{}, err
	}

	var msg Message
	if err := json.Unmarshal([]byte(res[1]), &msg); err != nil {
		return Message{}, fmt.Errorf("outbox: malformed message: %w", err)
	}
	return msg, nil
}

// MemoryQueue is an in-process fallback used when Redis is not configured.
// Messages are lost on restart.
type MemoryQueue struct {
	ch   chan Message
	wait time.Duration
}

func NewMemoryQueue(size int, wait time.Duration) *MemoryQueue {
	if size <= 0 {
		size = 256
	}
	return &MemoryQueue{ch: make(chan Message, size), wait: wait}
}

func (q *MemoryQueue) Publish(ctx context.Context, msg Message) error {
	select {
	case q.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Receive(ctx context.Context) (Message, error) {
	timer := time.NewTimer(q.wait)
	defer timer.Stop()

	select {
	case msg := <-q.ch:
		return msg, nil
	case <-ctx.Done():
		return Message{}, ctx.Err()
	case <-timer.C:
		return Message{}, ErrNoMessage
	}
}

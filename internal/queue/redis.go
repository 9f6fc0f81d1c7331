// internal/queue/redis.go
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisQueue is a Redis-list transport. Send LPUSHes the encoded message
// onto the pending list; Receive LMOVEs it to a processing list so an
// unacknowledged message survives a consumer crash; Delete LREMs it from the
// processing list. The receipt handle is the raw encoded payload.
type RedisQueue struct {
	client *redis.Client
	key    string
}

// envelope is the wire form stored in the list.
type envelope struct {
	ID         string               `json:"id"`
	Body       string               `json:"body"`
	Attributes map[string]Attribute `json:"attributes,omitempty"`
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	return &RedisQueue{client: client, key: key}
}

func (q *RedisQueue) processingKey() string {
	return q.key + ":processing"
}

func (q *RedisQueue) Send(ctx context.Context, body string, attributes map[string]Attribute) (string, error) {
	env := envelope{
		ID:         uuid.New().String(),
		Body:       body,
		Attributes: attributes,
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode queue message: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return "", fmt.Errorf("push queue message: %w", err)
	}
	return env.ID, nil
}

func (q *RedisQueue) Receive(ctx context.Context) (*Message, error) {
	payload, err := q.client.LMove(ctx, q.key, q.processingKey(), "RIGHT", "LEFT").Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("receive queue message: %w", err)
	}

	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		// Undecodable entry cannot be processed; drop it from processing so
		// it does not redrive forever.
		q.client.LRem(ctx, q.processingKey(), 1, payload)
		return nil, fmt.Errorf("decode queue message: %w", err)
	}

	return &Message{
		ID:            env.ID,
		Body:          env.Body,
		Attributes:    env.Attributes,
		ReceiptHandle: payload,
	}, nil
}

func (q *RedisQueue) Delete(ctx context.Context, receiptHandle string) error {
	if err := q.client.LRem(ctx, q.processingKey(), 1, receiptHandle).Err(); err != nil {
		return fmt.Errorf("acknowledge queue message: %w", err)
	}
	return nil
}

// Redrive moves every message left on the processing list back to the
// pending list. Run once at worker startup; anything still in processing
// belonged to a consumer that died mid-flight.
func (q *RedisQueue) Redrive(ctx context.Context) (int, error) {
	moved := 0
	for {
		_, err := q.client.LMove(ctx, q.processingKey(), q.key, "RIGHT", "LEFT").Result()
		if err == redis.Nil {
			return moved, nil
		}
		if err != nil {
			return moved, fmt.Errorf("redrive queue message: %w", err)
		}
		moved++
	}
}

// internal/queue/redis_test.go
package queue

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) (*RedisQueue, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisQueue(client, "fulfillment:requests"), mr
}

func TestRedisQueue_SendReceiveDelete(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	attrs := map[string]Attribute{
		"Cuisine": {DataType: "String", StringValue: "indian"},
		"Email":   {DataType: "String", StringValue: "diner@example.com"},
	}
	id, err := q.Send(ctx, "User Input", attrs)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	msg, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, id, msg.ID)
	assert.Equal(t, "User Input", msg.Body)
	assert.Equal(t, "indian", msg.Attributes["Cuisine"].StringValue)
	require.NotEmpty(t, msg.ReceiptHandle)

	require.NoError(t, q.Delete(ctx, msg.ReceiptHandle))

	// queue fully drained
	msg, err = q.Receive(ctx)
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestRedisQueue_EmptyReceive(t *testing.T) {
	q, _ := newTestQueue(t)

	msg, err := q.Receive(context.Background())
	require.NoError(t, err)
	assert.Nil(t, msg)
}

func TestRedisQueue_FIFOOrder(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	first, err := q.Send(ctx, "first", nil)
	require.NoError(t, err)
	second, err := q.Send(ctx, "second", nil)
	require.NoError(t, err)

	m1, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NotNil(t, m1)
	assert.Equal(t, first, m1.ID)

	m2, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NotNil(t, m2)
	assert.Equal(t, second, m2.ID)
}

func TestRedisQueue_UnackedMessageNotLost(t *testing.T) {
	q, mr := newTestQueue(t)
	ctx := context.Background()

	_, err := q.Send(ctx, "payload", nil)
	require.NoError(t, err)

	msg, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NotNil(t, msg)

	// never deleted: message sits on the processing list, not gone
	assert.False(t, mr.Exists("fulfillment:requests"))
	n, err := q.client.LLen(ctx, q.processingKey()).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRedisQueue_Redrive(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	id, err := q.Send(ctx, "payload", nil)
	require.NoError(t, err)

	// simulate a consumer crash after receive
	msg, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NotNil(t, msg)

	moved, err := q.Redrive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	// the message is deliverable again
	again, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, id, again.ID)
}

func TestRedisQueue_DeleteIsIdempotent(t *testing.T) {
	q, _ := newTestQueue(t)
	ctx := context.Background()

	_, err := q.Send(ctx, "payload", nil)
	require.NoError(t, err)
	msg, err := q.Receive(ctx)
	require.NoError(t, err)
	require.NotNil(t, msg)

	require.NoError(t, q.Delete(ctx, msg.ReceiptHandle))
	require.NoError(t, q.Delete(ctx, msg.ReceiptHandle))
}

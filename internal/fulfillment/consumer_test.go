// internal/fulfillment/consumer_test.go
package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stderrors "dining-concierge/internal/common/errors"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/observability"
	"dining-concierge/internal/models"
	"dining-concierge/internal/queue"
)

// memQueue is an in-memory transport with the deliver-then-delete contract.
type memQueue struct {
	messages []*queue.Message
	deleted  []string
}

func (m *memQueue) Send(_ context.Context, body string, attrs map[string]queue.Attribute) (string, error) {
	id := fmt.Sprintf("msg-%d", len(m.messages)+1)
	m.messages = append(m.messages, &queue.Message{
		ID: id, Body: body, Attributes: attrs, ReceiptHandle: "rh-" + id,
	})
	return id, nil
}

func (m *memQueue) Receive(context.Context) (*queue.Message, error) {
	for _, msg := range m.messages {
		if !m.isDeleted(msg.ReceiptHandle) {
			return msg, nil
		}
	}
	return nil, nil
}

func (m *memQueue) Delete(_ context.Context, receiptHandle string) error {
	m.deleted = append(m.deleted, receiptHandle)
	return nil
}

func (m *memQueue) isDeleted(rh string) bool {
	for _, d := range m.deleted {
		if d == rh {
			return true
		}
	}
	return false
}

type fakeIndex struct {
	ids []string
	err error
}

func (f *fakeIndex) SearchByCuisine(_ context.Context, cuisine string, limit int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.ids) > limit {
		return f.ids[:limit], nil
	}
	return f.ids, nil
}

func (f *fakeIndex) IndexRestaurant(context.Context, models.Restaurant) error { return nil }

type fakeRecords struct {
	byID map[string]*models.Restaurant
	err  error
}

func (f *fakeRecords) GetByID(_ context.Context, id string) (*models.Restaurant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

func (f *fakeRecords) Put(context.Context, models.Restaurant) error { return nil }

type fakeSender struct {
	sent []struct{ to, subject, text, html string }
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, struct{ to, subject, text, html string }{to, subject, text, html})
	return nil
}

func validAttrs() map[string]queue.Attribute {
	return map[string]queue.Attribute{
		"Cuisine":        {DataType: "String", StringValue: "Indian"},
		"Location":       {DataType: "String", StringValue: "Brooklyn"},
		"DiningDate":     {DataType: "String", StringValue: "2025-06-16"},
		"DiningTime":     {DataType: "String", StringValue: "19:00"},
		"NumberOfPeople": {DataType: "Number", StringValue: "4"},
		"Email":          {DataType: "String", StringValue: "diner@example.com"},
	}
}

func newTestConsumer(t *testing.T, q queue.Queue, idx *fakeIndex, rec *fakeRecords, snd *fakeSender) *Consumer {
	t.Helper()
	return NewConsumer(q, idx, rec, snd, &observability.Observability{}, logger.NewTestLogger(t))
}

func TestConsumer_EmptyQueueIsNoOp(t *testing.T) {
	c := newTestConsumer(t, &memQueue{}, &fakeIndex{}, &fakeRecords{}, &fakeSender{})

	processed, err := c.ProcessOne(context.Background())

	require.NoError(t, err)
	assert.False(t, processed)
}

func TestConsumer_DeliversAndDeletes(t *testing.T) {
	q := &memQueue{}
	_, err := q.Send(context.Background(), "User Input", validAttrs())
	require.NoError(t, err)

	idx := &fakeIndex{ids: []string{"r-1", "r-2"}}
	rec := &fakeRecords{byID: map[string]*models.Restaurant{
		"r-1": {ID: "r-1", Name: "Taj", Address: "12 Curry Ln"},
		"r-2": {ID: "r-2", Name: "Saffron", Address: "3 Spice Rd"},
	}}
	snd := &fakeSender{}
	c := newTestConsumer(t, q, idx, rec, snd)

	processed, err := c.ProcessOne(context.Background())

	require.NoError(t, err)
	assert.True(t, processed)
	require.Len(t, snd.sent, 1)
	assert.Equal(t, "diner@example.com", snd.sent[0].to)
	assert.Contains(t, snd.sent[0].text, "1. Taj, located at 12 Curry Ln.")
	assert.Contains(t, snd.sent[0].text, "2. Saffron, located at 3 Spice Rd.")
	// cuisine is lowercased before the candidate scan
	assert.Contains(t, snd.sent[0].text, "my indian restaurant suggestions")
	require.Len(t, q.deleted, 1)
}

func TestConsumer_DeliveryFailureRetainsMessage(t *testing.T) {
	q := &memQueue{}
	_, err := q.Send(context.Background(), "User Input", validAttrs())
	require.NoError(t, err)

	snd := &fakeSender{err: errors.New("smtp down")}
	c := newTestConsumer(t, q, &fakeIndex{}, &fakeRecords{}, snd)

	processed, err := c.ProcessOne(context.Background())

	assert.True(t, processed)
	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeDeliveryFailed, stderrors.Code(err))
	assert.True(t, stderrors.IsRetryable(err))
	// never delete before successful delivery
	assert.Empty(t, q.deleted)
}

func TestConsumer_MissingEmailAbandonsMessage(t *testing.T) {
	attrs := validAttrs()
	delete(attrs, "Email")
	q := &memQueue{}
	_, err := q.Send(context.Background(), "User Input", attrs)
	require.NoError(t, err)

	snd := &fakeSender{}
	c := newTestConsumer(t, q, &fakeIndex{}, &fakeRecords{}, snd)

	processed, err := c.ProcessOne(context.Background())

	assert.True(t, processed)
	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeMissingEmail, stderrors.Code(err))
	assert.False(t, stderrors.IsRetryable(err))
	assert.Empty(t, snd.sent)
	assert.Empty(t, q.deleted)
}

func TestConsumer_MalformedMessageIsNotDeleted(t *testing.T) {
	attrs := validAttrs()
	attrs["NumberOfPeople"] = queue.Attribute{DataType: "Number", StringValue: "four"}
	q := &memQueue{}
	_, err := q.Send(context.Background(), "User Input", attrs)
	require.NoError(t, err)

	c := newTestConsumer(t, q, &fakeIndex{}, &fakeRecords{}, &fakeSender{})

	processed, err := c.ProcessOne(context.Background())

	assert.True(t, processed)
	require.Error(t, err)
	assert.Equal(t, stderrors.ErrCodeMessageMalformed, stderrors.Code(err))
	assert.Empty(t, q.deleted)
}

func TestConsumer_EmptyCandidateListStillDelivered(t *testing.T) {
	q := &memQueue{}
	_, err := q.Send(context.Background(), "User Input", validAttrs())
	require.NoError(t, err)

	snd := &fakeSender{}
	c := newTestConsumer(t, q, &fakeIndex{ids: nil}, &fakeRecords{}, snd)

	processed, err := c.ProcessOne(context.Background())

	require.NoError(t, err)
	assert.True(t, processed)
	require.Len(t, snd.sent, 1)
	assert.Contains(t, snd.sent[0].text, "Enjoy your meal!")
	require.Len(t, q.deleted, 1)
}

func TestConsumer_MissingRecordsSkipped(t *testing.T) {
	q := &memQueue{}
	_, err := q.Send(context.Background(), "User Input", validAttrs())
	require.NoError(t, err)

	idx := &fakeIndex{ids: []string{"gone", "r-1"}}
	rec := &fakeRecords{byID: map[string]*models.Restaurant{
		"r-1": {ID: "r-1", Name: "Taj", Address: "12 Curry Ln"},
	}}
	snd := &fakeSender{}
	c := newTestConsumer(t, q, idx, rec, snd)

	_, err = c.ProcessOne(context.Background())

	require.NoError(t, err)
	require.Len(t, snd.sent, 1)
	// the surviving record takes position 1
	assert.Contains(t, snd.sent[0].text, "1. Taj, located at 12 Curry Ln.")
	assert.NotContains(t, snd.sent[0].text, "2.")
}

func TestConsumer_CandidateCap(t *testing.T) {
	ids := make([]string, 0, 15)
	byID := make(map[string]*models.Restaurant, 15)
	for i := 1; i <= 15; i++ {
		id := fmt.Sprintf("r-%d", i)
		ids = append(ids, id)
		byID[id] = &models.Restaurant{ID: id, Name: fmt.Sprintf("Place %d", i), Address: "Addr"}
	}

	q := &memQueue{}
	_, err := q.Send(context.Background(), "User Input", validAttrs())
	require.NoError(t, err)

	snd := &fakeSender{}
	c := newTestConsumer(t, q, &fakeIndex{ids: ids}, &fakeRecords{byID: byID}, snd)

	_, err = c.ProcessOne(context.Background())

	require.NoError(t, err)
	require.Len(t, snd.sent, 1)
	assert.Equal(t, 10, strings.Count(snd.sent[0].text, "located at"))
}

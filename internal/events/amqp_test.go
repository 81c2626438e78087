package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"storefront/internal/model"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange  string
	key       string
	msg       amqp.Publishing
	deadline  bool
	err       error
	closed    bool
	published int
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return f.err
	}
	f.exchange = exchange
	f.key = key
	f.msg = msg
	f.published++
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisher_PublishOrderPlaced(t *testing.T) {
	ch := &fakeChannel{}
	p := newAMQPPublisher(ch, "guest_orders", zerolog.Nop())
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	event := OrderPlaced{
		GuestID:  "session-1",
		Lines:    model.GuestCreateOrdersBody{{DishID: 1, Quantity: 2}},
		OrderIDs: []int{10},
		Total:    decimal.NewFromInt(100000),
		PlacedAt: fixed,
	}

	require.NoError(t, p.PublishOrderPlaced(context.Background(), event))

	assert.Equal(t, 1, ch.published)
	assert.Equal(t, "guest_orders", ch.exchange)
	assert.Equal(t, TypeOrderPlaced, ch.key)
	assert.True(t, ch.deadline)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, fixed, ch.msg.Timestamp)

	var got struct {
		Type    string      `json:"type"`
		Payload OrderPlaced `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, TypeOrderPlaced, got.Type)
	assert.Equal(t, "session-1", got.Payload.GuestID)
	assert.Equal(t, event.Lines, got.Payload.Lines)
	assert.True(t, got.Payload.Total.Equal(event.Total))
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: amqp.ErrClosed}
	p := newAMQPPublisher(ch, "guest_orders", zerolog.Nop())

	err := p.PublishOrderPlaced(context.Background(), OrderPlaced{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, amqp.ErrClosed))
}

func TestAMQPPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := newAMQPPublisher(ch, "guest_orders", zerolog.Nop())

	assert.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher(zerolog.Nop())
	assert.NoError(t, p.PublishOrderPlaced(context.Background(), OrderPlaced{}))
	assert.NoError(t, p.Close())
}

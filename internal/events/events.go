// Package events publishes storefront order events to RabbitMQ.
package events

import (
	"context"
	"time"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TypeOrderPlaced is the message type of OrderPlaced.
const TypeOrderPlaced = "order.placed"

// OrderPlaced is emitted after a guest order has been accepted by the backend.
type OrderPlaced struct {
	GuestID  string                      `json:"guestId"`
	Lines    model.GuestCreateOrdersBody `json:"lines"`
	OrderIDs []int                       `json:"orderIds"`
	Total    decimal.Decimal             `json:"total"`
	PlacedAt time.Time                   `json:"placedAt"`
}

// envelope is the wire shape of every published event.
type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// NoopPublisher drops every event. It is used when AMQP is disabled.
type NoopPublisher struct {
	logger zerolog.Logger
}

// NewNoopPublisher creates a publisher that only logs at debug level.
func NewNoopPublisher(logger zerolog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger.With().Str("component", "events").Logger()}
}

func (p *NoopPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlaced) error {
	p.logger.Debug().Int("order_count", len(event.OrderIDs)).Msg("event publishing disabled, dropping order placed event")
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}

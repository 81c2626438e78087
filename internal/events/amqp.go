package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const publishTimeout = 10 * time.Second

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events to a durable fanout exchange.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	logger   zerolog.Logger
	now      func() time.Time
}

// Dial connects to RabbitMQ and declares the exchange.
func Dial(url, exchange string, logger zerolog.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	p := newAMQPPublisher(ch, exchange, logger)
	p.conn = conn
	p.logger.Info().Str("exchange", exchange).Msg("connected to rabbitmq")
	return p, nil
}

func newAMQPPublisher(ch channel, exchange string, logger zerolog.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		ch:       ch,
		exchange: exchange,
		logger:   logger.With().Str("component", "events").Logger(),
		now:      time.Now,
	}
}

// PublishOrderPlaced publishes an order.placed event.
func (p *AMQPPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlaced) error {
	return p.publish(ctx, TypeOrderPlaced, event)
}

func (p *AMQPPublisher) publish(ctx context.Context, eventType string, payload any) error {
	body, err := json.Marshal(envelope{Type: eventType, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, p.exchange, eventType, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         eventType,
		Timestamp:    p.now(),
		Body:         body,
	})
	if err != nil {
		p.logger.Error().Err(err).Str("exchange", p.exchange).Str("type", eventType).Msg("failed to publish event")
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	p.logger.Debug().
		Str("exchange", p.exchange).
		Str("type", eventType).
		Int("size", len(body)).
		Msg("event published")
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.logger.Warn().Err(err).Msg("failed to close channel")
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/cart"
	"storefront/internal/events"
	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderService implements OrderService.
type orderService struct {
	orders    OrderSource
	store     cart.Store
	publisher EventPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders OrderSource,
	store cart.Store,
	publisher EventPublisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orders:    orders,
		store:     store,
		publisher: publisher,
		logger:    logger.With().Str("service", "order").Logger(),
		now:       time.Now,
	}
}

// SubmitOrder sends the cart lines as-is. There is no retry and no
// idempotency key: a failed submission leaves the cart for the guest to
// resubmit.
func (s *orderService) SubmitOrder(ctx context.Context, sessionID string, c cart.Cart) ([]model.Order, error) {
	if c.Empty() {
		return nil, model.ErrEmptyCart
	}

	body := c.Body()
	orders, err := s.orders.CreateGuestOrders(ctx, sessionID, body)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int("line_count", len(body)).
			Msg("failed to submit guest order")
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	s.store.Delete(sessionID)

	event := events.OrderPlaced{
		GuestID:  sessionID,
		Lines:    body,
		OrderIDs: make([]int, len(orders)),
		Total:    decimal.Zero,
		PlacedAt: s.now().UTC(),
	}
	for i, o := range orders {
		event.OrderIDs[i] = o.ID
		event.Total = event.Total.Add(o.Subtotal())
	}
	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Warn().Err(err).Int("order_count", len(orders)).Msg("failed to publish order placed event")
	}

	s.logger.Info().
		Int("line_count", len(body)).
		Int("order_count", len(orders)).
		Str("total", event.Total.String()).
		Msg("guest order submitted")

	return orders, nil
}

// GuestOrders lists the orders placed by the session's guest.
func (s *orderService) GuestOrders(ctx context.Context, sessionID string) ([]model.Order, error) {
	orders, err := s.orders.ListGuestOrders(ctx, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list guest orders")
		return nil, fmt.Errorf("failed to list guest orders: %w", err)
	}
	return orders, nil
}

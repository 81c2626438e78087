package service

import (
	"context"
	"fmt"

	"storefront/internal/cart"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	store  cart.Store
	dishes DishSource
	logger zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(store cart.Store, dishes DishSource, logger zerolog.Logger) CartService {
	return &cartService{
		store:  store,
		dishes: dishes,
		logger: logger.With().Str("service", "cart").Logger(),
	}
}

// Cart returns a copy of the session's cart.
func (s *cartService) Cart(sessionID string) cart.Cart {
	return s.store.Get(sessionID)
}

// SetQuantity clamps negative quantities to zero. Removing a line is always
// allowed so orphaned lines can be cleared; adding or raising one requires
// the dish to exist and be orderable.
func (s *cartService) SetQuantity(ctx context.Context, sessionID string, dishID, quantity int) (cart.Cart, error) {
	if dishID <= 0 {
		return nil, model.ErrDishNotFound
	}
	if quantity < 0 {
		quantity = 0
	}

	if quantity > 0 {
		dish, err := s.dishes.GetDish(ctx, dishID)
		if err != nil {
			s.logger.Error().Err(err).Int("dish_id", dishID).Msg("failed to look up dish")
			return nil, fmt.Errorf("failed to look up dish: %w", err)
		}
		if dish == nil || dish.Status == model.DishStatusHidden {
			s.logger.Warn().Int("dish_id", dishID).Msg("quantity change for unknown dish")
			return nil, model.ErrDishNotFound
		}
		if !dish.Orderable() {
			s.logger.Warn().Int("dish_id", dishID).Str("status", string(dish.Status)).Msg("quantity change for unavailable dish")
			return nil, model.ErrDishUnavailable
		}
	}

	updated := s.store.Update(sessionID, func(c cart.Cart) cart.Cart {
		return cart.UpdateQuantity(c, dishID, quantity)
	})

	s.logger.Debug().
		Int("dish_id", dishID).
		Int("quantity", quantity).
		Int("line_count", len(updated)).
		Msg("cart updated")

	return updated, nil
}

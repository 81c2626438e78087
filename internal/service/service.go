package service

import (
	"context"

	"storefront/internal/cart"
	"storefront/internal/events"
	"storefront/internal/model"
	"storefront/internal/query"
)

// DishSource, CategorySource and OrderSource are satisfied by both the REST
// backend client and the Postgres repositories.
type (
	DishSource     = query.DishSource
	CategorySource = query.CategorySource
	OrderSource    = query.OrderSource
)

// EventPublisher publishes order lifecycle events.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event events.OrderPlaced) error
}

// CatalogueService defines read operations for the public pages.
type CatalogueService interface {
	// HomePage fetches dishes and categories in parallel.
	HomePage(ctx context.Context) (*Catalogue, error)

	// Categories lists every category.
	Categories(ctx context.Context) ([]model.Category, error)

	// CategoryDetail returns one category and its visible dishes.
	CategoryDetail(ctx context.Context, id int) (*CategoryPage, error)

	// DishDetail returns one visible dish.
	DishDetail(ctx context.Context, id int) (*model.Dish, error)

	// Menu returns the guest ordering menu: visible dishes grouped by category.
	Menu(ctx context.Context) (*Catalogue, error)
}

// CartService manages the guest session cart.
type CartService interface {
	// Cart returns a copy of the session's cart.
	Cart(sessionID string) cart.Cart

	// SetQuantity sets the quantity of one dish in the session's cart.
	SetQuantity(ctx context.Context, sessionID string, dishID, quantity int) (cart.Cart, error)
}

// OrderService submits and lists guest orders.
type OrderService interface {
	// SubmitOrder sends the cart lines as a guest order and drops the
	// session's cart on success. The cart is left untouched on failure.
	SubmitOrder(ctx context.Context, sessionID string, c cart.Cart) ([]model.Order, error)

	// GuestOrders lists the orders placed by the session's guest.
	GuestOrders(ctx context.Context, sessionID string) ([]model.Order, error)
}

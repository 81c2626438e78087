package repository

import (
	"context"

	"storefront/internal/model"
)

// DishRepository defines read access to the dish table.
type DishRepository interface {
	// ListDishes retrieves every dish ordered by id.
	ListDishes(ctx context.Context) ([]model.Dish, error)

	// GetDish retrieves a single dish. A missing dish yields (nil, nil).
	GetDish(ctx context.Context, id int) (*model.Dish, error)
}

// CategoryRepository defines read access to the category table.
type CategoryRepository interface {
	// ListCategories retrieves every category ordered by id.
	ListCategories(ctx context.Context) ([]model.Category, error)

	// GetCategory retrieves a single category. A missing category yields (nil, nil).
	GetCategory(ctx context.Context, id int) (*model.Category, error)
}

// GuestOrderRepository defines guest order persistence.
type GuestOrderRepository interface {
	// CreateGuestOrders snapshots each dish and inserts one order per line
	// inside a single transaction.
	CreateGuestOrders(ctx context.Context, guestID string, body model.GuestCreateOrdersBody) ([]model.Order, error)

	// ListGuestOrders retrieves the guest's orders, oldest first.
	ListGuestOrders(ctx context.Context, guestID string) ([]model.Order, error)
}

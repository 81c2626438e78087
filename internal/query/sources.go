package query

import (
	"context"
	"fmt"

	"storefront/internal/model"
)

// Query keys.
const (
	KeyDishes            = "dishes"
	KeyCategories        = "categories"
	keyDishPrefix        = "dish:"
	keyCategoryPrefix    = "category:"
	KeyGuestOrdersPrefix = "guest-orders:"
)

// DishSource reads dishes.
type DishSource interface {
	ListDishes(ctx context.Context) ([]model.Dish, error)
	GetDish(ctx context.Context, id int) (*model.Dish, error)
}

// CategorySource reads categories.
type CategorySource interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int) (*model.Category, error)
}

// OrderSource places and lists guest orders.
type OrderSource interface {
	CreateGuestOrders(ctx context.Context, guestID string, body model.GuestCreateOrdersBody) ([]model.Order, error)
	ListGuestOrders(ctx context.Context, guestID string) ([]model.Order, error)
}

// Dishes caches a DishSource.
type Dishes struct {
	src   DishSource
	cache *Cache
}

// NewDishes wraps src with cache.
func NewDishes(src DishSource, cache *Cache) *Dishes {
	return &Dishes{src: src, cache: cache}
}

func (d *Dishes) ListDishes(ctx context.Context) ([]model.Dish, error) {
	return Fetch(ctx, d.cache, KeyDishes, d.src.ListDishes)
}

func (d *Dishes) GetDish(ctx context.Context, id int) (*model.Dish, error) {
	return Fetch(ctx, d.cache, fmt.Sprintf("%s%d", keyDishPrefix, id), func(ctx context.Context) (*model.Dish, error) {
		return d.src.GetDish(ctx, id)
	})
}

// Categories caches a CategorySource.
type Categories struct {
	src   CategorySource
	cache *Cache
}

// NewCategories wraps src with cache.
func NewCategories(src CategorySource, cache *Cache) *Categories {
	return &Categories{src: src, cache: cache}
}

func (c *Categories) ListCategories(ctx context.Context) ([]model.Category, error) {
	return Fetch(ctx, c.cache, KeyCategories, c.src.ListCategories)
}

func (c *Categories) GetCategory(ctx context.Context, id int) (*model.Category, error) {
	return Fetch(ctx, c.cache, fmt.Sprintf("%s%d", keyCategoryPrefix, id), func(ctx context.Context) (*model.Category, error) {
		return c.src.GetCategory(ctx, id)
	})
}

// Orders caches guest order lists; creating orders invalidates the guest's list.
type Orders struct {
	src   OrderSource
	cache *Cache
}

// NewOrders wraps src with cache.
func NewOrders(src OrderSource, cache *Cache) *Orders {
	return &Orders{src: src, cache: cache}
}

func (o *Orders) CreateGuestOrders(ctx context.Context, guestID string, body model.GuestCreateOrdersBody) ([]model.Order, error) {
	orders, err := o.src.CreateGuestOrders(ctx, guestID, body)
	if err != nil {
		return nil, err
	}
	o.cache.Invalidate(KeyGuestOrdersPrefix + guestID)
	return orders, nil
}

func (o *Orders) ListGuestOrders(ctx context.Context, guestID string) ([]model.Order, error) {
	return Fetch(ctx, o.cache, KeyGuestOrdersPrefix+guestID, func(ctx context.Context) ([]model.Order, error) {
		return o.src.ListGuestOrders(ctx, guestID)
	})
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DishStatus is the availability of a dish on the menu.
type DishStatus string

const (
	DishStatusAvailable   DishStatus = "Available"
	DishStatusUnavailable DishStatus = "Unavailable"
	DishStatusHidden      DishStatus = "Hidden"
)

// Dish represents a menu item.
type Dish struct {
	ID          int             `json:"id" db:"id" validate:"required,gt=0"`
	Name        string          `json:"name" db:"name" validate:"required"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Image       string          `json:"image" db:"image"`
	CategoryID  int             `json:"categoryId" db:"category_id"`
	Status      DishStatus      `json:"status" db:"status" validate:"required,oneof=Available Unavailable Hidden"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// Orderable reports whether a guest may put the dish in a cart.
func (d Dish) Orderable() bool {
	return d.Status == DishStatusAvailable
}

// CreateDishBody is the payload for creating a dish.
type CreateDishBody struct {
	Name        string          `json:"name" validate:"required,min=1,max=256"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description" validate:"max=10000"`
	Image       string          `json:"image" validate:"required"`
	Status      DishStatus      `json:"status,omitempty" validate:"omitempty,oneof=Available Unavailable Hidden"`
	CategoryID  int             `json:"categoryId" validate:"required,gte=1"`
}

// UpdateDishBody is the payload for updating a dish.
type UpdateDishBody = CreateDishBody

// DishListResponse is the backend envelope for a dish list.
type DishListResponse struct {
	Message string `json:"message"`
	Data    []Dish `json:"data" validate:"dive"`
}

// DishResponse is the backend envelope for a single dish.
type DishResponse struct {
	Message string `json:"message"`
	Data    Dish   `json:"data"`
}

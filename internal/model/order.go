package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the kitchen-side lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusRejected   OrderStatus = "Rejected"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusPaid       OrderStatus = "Paid"
)

// CartLine is a pending order item: one dish and how many of it.
type CartLine struct {
	DishID   int `json:"dishId" validate:"required,gte=1"`
	Quantity int `json:"quantity" validate:"required,gte=1"`
}

// GuestCreateOrdersBody is the payload sent to the order-creation endpoint.
type GuestCreateOrdersBody []CartLine

// DishSnapshot is the copy of a dish taken when the order was placed.
type DishSnapshot struct {
	ID          int             `json:"id"`
	DishID      *int            `json:"dishId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Status      DishStatus      `json:"status"`
}

// Order is a single placed order line as returned by the backend.
type Order struct {
	ID           int          `json:"id" db:"id"`
	GuestID      *string      `json:"guestId" db:"guest_id"`
	TableNumber  *int         `json:"tableNumber" db:"table_number"`
	DishSnapshot DishSnapshot `json:"dishSnapshot"`
	Quantity     int          `json:"quantity" db:"quantity"`
	Status       OrderStatus  `json:"status" db:"status"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`
}

// Subtotal returns quantity times the snapshot price.
func (o Order) Subtotal() decimal.Decimal {
	return o.DishSnapshot.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// OrderListResponse is the backend envelope for a list of orders.
type OrderListResponse struct {
	Message string  `json:"message"`
	Data    []Order `json:"data"`
}

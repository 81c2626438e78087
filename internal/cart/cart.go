// Package cart holds the guest's pending order: an ordered list of
// {dishId, quantity} lines with at most one line per dish.
package cart

import (
	"storefront/internal/model"

	"github.com/shopspring/decimal"
)

// Cart is an ordered list of lines in first-insertion order.
type Cart []model.CartLine

// UpdateQuantity returns a new cart with the dish set to quantity.
// A zero quantity removes the line, an unknown dish is appended and a
// known dish keeps its position. The input cart is never modified.
func UpdateQuantity(c Cart, dishID, quantity int) Cart {
	if quantity == 0 {
		out := make(Cart, 0, len(c))
		for _, line := range c {
			if line.DishID != dishID {
				out = append(out, line)
			}
		}
		return out
	}

	out := make(Cart, len(c), len(c)+1)
	copy(out, c)
	for i := range out {
		if out[i].DishID == dishID {
			out[i].Quantity = quantity
			return out
		}
	}
	return append(out, model.CartLine{DishID: dishID, Quantity: quantity})
}

// Total sums quantity × price over lines whose dish is in dishes.
// Lines that reference an unknown dish contribute nothing.
func Total(c Cart, dishes []model.Dish) decimal.Decimal {
	prices := make(map[int]decimal.Decimal, len(dishes))
	for _, d := range dishes {
		prices[d.ID] = d.Price
	}

	total := decimal.Zero
	for _, line := range c {
		price, ok := prices[line.DishID]
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// QuantityOf returns the quantity for dishID, 0 when absent.
func QuantityOf(c Cart, dishID int) int {
	for _, line := range c {
		if line.DishID == dishID {
			return line.Quantity
		}
	}
	return 0
}

// Empty reports whether the cart has no lines.
func (c Cart) Empty() bool {
	return len(c) == 0
}

// Body converts the cart to the order submission payload, preserving order.
func (c Cart) Body() model.GuestCreateOrdersBody {
	body := make(model.GuestCreateOrdersBody, len(c))
	copy(body, c)
	return body
}

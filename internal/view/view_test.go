package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"storefront/internal/cart"
	"storefront/internal/menu"
	"storefront/internal/messages"
	"storefront/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	bundle, err := messages.NewBundle(map[string]messages.Catalogue{
		"en": {
			"HomePage.title":        "Restaurant",
			"HomePage.h2":           "Our dishes",
			"Menu.order":            "Order · {count} dishes",
			"Menu.title":            "Menu",
			"Menu.unavailable":      "Sold out",
			"Orders.status.Pending": "Waiting",
			"Orders.total":          "Total",
			"Orders.empty":          "Nothing yet",
		},
		"vi": {"HomePage.title": "Nhà hàng"},
	}, "en")
	require.NoError(t, err)

	r, err := New(bundle, menu.NewImageResolver("https://shop.example.com"), "https://shop.example.com", []string{"en", "vi"})
	require.NoError(t, err)
	return r
}

func render(t *testing.T, r *Renderer, name string, page Page) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, page))
	return buf.String()
}

func menuDishes() []model.Dish {
	return []model.Dish{
		{ID: 1, Name: "Phở Bò", Price: decimal.NewFromInt(50000), Image: "pho.jpg", CategoryID: 1, Status: model.DishStatusAvailable},
		{ID: 2, Name: "Bún Chả", Price: decimal.NewFromInt(45000), Image: "https://cdn.example.com/bun.jpg", CategoryID: 1, Status: model.DishStatusUnavailable},
	}
}

func TestRenderer_Home(t *testing.T) {
	r := newTestRenderer(t)
	page := r.NewPage("en", "")
	page.Title = "Restaurant"
	page.Data = HomeData{
		Dishes:     menuDishes(),
		Categories: []model.Category{{ID: 3, Name: "Noodles", Image: "noodles.png"}},
	}

	out := render(t, r, PageHome, page)

	assert.Contains(t, out, `<title>Restaurant</title>`)
	assert.Contains(t, out, `href="https://shop.example.com/en"`)
	assert.Contains(t, out, `href="/en/dishes/pho-bo-i.1"`)
	assert.Contains(t, out, `src="https://shop.example.com/images/pho.jpg"`)
	assert.Contains(t, out, `src="https://cdn.example.com/bun.jpg"`)
	assert.Contains(t, out, `href="/en/categories/noodles-i.3"`)
	assert.Contains(t, out, "50,000 ₫")
	assert.Contains(t, out, `href="/vi"`)
}

func TestRenderer_Menu(t *testing.T) {
	r := newTestRenderer(t)
	dishes := menuDishes()
	sections := menu.GroupByCategory([]model.Category{{ID: 1, Name: "Noodles"}}, dishes)

	tests := []struct {
		name        string
		cart        cart.Cart
		expected    []string
		notExpected []string
	}{
		{
			name: "Empty cart disables the order button",
			cart: cart.Cart{},
			expected: []string{
				"Order · 0 dishes",
				"0 ₫",
				`<button type="submit" disabled>`,
				"Sold out",
			},
		},
		{
			name: "Cart with lines",
			cart: cart.Cart{{DishID: 1, Quantity: 2}},
			expected: []string{
				"Order · 1 dishes",
				"100,000 ₫",
				`name="quantity" value="3"`,
				`name="quantity" value="1"`,
				"<output>2</output>",
			},
			notExpected: []string{
				`<button type="submit" disabled>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := r.NewPage("en", "/guest/menu")
			page.Data = NewMenuData(sections, dishes, tt.cart)

			out := render(t, r, PageMenu, page)
			for _, s := range tt.expected {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notExpected {
				assert.NotContains(t, out, s)
			}
			assert.Contains(t, out, `class="dish-grid"`)
			assert.Equal(t, 1, strings.Count(out, `class="stepper"`), "only orderable dishes get a stepper")
		})
	}
}

func TestRenderer_MenuSlider(t *testing.T) {
	r := newTestRenderer(t)
	var dishes []model.Dish
	for i := 1; i <= 5; i++ {
		dishes = append(dishes, model.Dish{ID: i, Name: "Dish", CategoryID: 1, Status: model.DishStatusAvailable})
	}
	sections := menu.GroupByCategory([]model.Category{{ID: 1, Name: "Noodles"}}, dishes)

	page := r.NewPage("en", "/guest/menu")
	page.Data = NewMenuData(sections, dishes, nil)

	out := render(t, r, PageMenu, page)
	assert.Contains(t, out, `class="dish-slider"`)
}

func TestRenderer_Notice(t *testing.T) {
	r := newTestRenderer(t)
	page := r.NewPage("en", "/guest/menu")
	page.Notice = "Your order could not be placed."
	page.Data = NewMenuData(nil, nil, nil)

	out := render(t, r, PageMenu, page)
	assert.Contains(t, out, `role="alert">Your order could not be placed.</div>`)
}

func TestRenderer_Error(t *testing.T) {
	r := newTestRenderer(t)
	page := r.NewPage("en", "")
	page.Data = ErrorData{Message: "Something went wrong"}

	out := render(t, r, PageError, page)
	assert.Contains(t, out, "<div>Something went wrong</div>")
	assert.NotContains(t, out, "<nav>")
	assert.NotContains(t, out, "Restaurant")
}

func TestRenderer_UnknownPage(t *testing.T) {
	r := newTestRenderer(t)
	err := r.Render(&bytes.Buffer{}, "nope", r.NewPage("en", ""))
	assert.Error(t, err)
}

func TestRenderer_EscapesContent(t *testing.T) {
	r := newTestRenderer(t)
	page := r.NewPage("en", "")
	page.Data = DishData{Dish: model.Dish{ID: 1, Name: "<script>alert(1)</script>", Status: model.DishStatusAvailable}}

	out := render(t, r, PageDish, page)
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestNewOrdersData(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	orders := []model.Order{
		{ID: 1, Quantity: 2, Status: model.OrderStatusPaid, CreatedAt: now, DishSnapshot: model.DishSnapshot{Price: decimal.NewFromInt(50000)}},
		{ID: 2, Quantity: 1, Status: model.OrderStatusRejected, CreatedAt: now.Add(time.Minute), DishSnapshot: model.DishSnapshot{Price: decimal.NewFromInt(99000)}},
		{ID: 3, Quantity: 3, Status: model.OrderStatusPending, CreatedAt: now.Add(2 * time.Minute), DishSnapshot: model.DishSnapshot{Price: decimal.NewFromInt(10000)}},
	}

	data := NewOrdersData(orders)

	require.Len(t, data.Orders, 3)
	assert.Equal(t, 3, data.Orders[0].ID)
	assert.Equal(t, 1, data.Orders[2].ID)
	assert.True(t, data.Total.Equal(decimal.NewFromInt(130000)))
	assert.Equal(t, 1, orders[0].ID, "input must not be reordered")
}

func TestRenderer_Orders(t *testing.T) {
	r := newTestRenderer(t)

	page := r.NewPage("en", "/guest/orders")
	page.Data = NewOrdersData(nil)
	assert.Contains(t, render(t, r, PageOrders, page), "Nothing yet")

	page.Data = NewOrdersData([]model.Order{{
		ID: 1, Quantity: 2, Status: model.OrderStatusPending,
		DishSnapshot: model.DishSnapshot{Name: "Phở", Price: decimal.NewFromInt(50000)},
	}})
	out := render(t, r, PageOrders, page)
	assert.Contains(t, out, "Waiting")
	assert.Contains(t, out, "Total: 100,000 ₫")
}

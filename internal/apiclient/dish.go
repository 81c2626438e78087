package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/schema"
)

// ListDishes handles GET /dishes.
func (c *Client) ListDishes(ctx context.Context) ([]model.Dish, error) {
	var res model.DishListResponse
	if err := c.do(ctx, http.MethodGet, "/dishes", nil, &res); err != nil {
		return nil, err
	}
	if err := schema.DishList(&res); err != nil {
		return nil, fmt.Errorf("dish list: %w", err)
	}
	if res.Data == nil {
		return []model.Dish{}, nil
	}
	return res.Data, nil
}

// GetDish handles GET /dishes/{id}. A missing dish yields (nil, nil).
func (c *Client) GetDish(ctx context.Context, id int) (*model.Dish, error) {
	var res model.DishResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/dishes/%d", id), nil, &res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := schema.Dish(&res.Data); err != nil {
		return nil, fmt.Errorf("dish %d: %w", id, err)
	}
	return &res.Data, nil
}

// CreateDish handles POST /dishes.
func (c *Client) CreateDish(ctx context.Context, body model.CreateDishBody) (*model.Dish, error) {
	if err := schema.CreateDishBody(&body); err != nil {
		return nil, err
	}
	var res model.DishResponse
	if err := c.do(ctx, http.MethodPost, "/dishes", body, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// UpdateDish handles PUT /dishes/{id}.
func (c *Client) UpdateDish(ctx context.Context, id int, body model.UpdateDishBody) (*model.Dish, error) {
	if err := schema.CreateDishBody(&body); err != nil {
		return nil, err
	}
	var res model.DishResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/dishes/%d", id), body, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/schema"
)

// ListCategories handles GET /categories.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var res model.CategoryListResponse
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &res); err != nil {
		return nil, err
	}
	if err := schema.CategoryList(&res); err != nil {
		return nil, fmt.Errorf("category list: %w", err)
	}
	if res.Data == nil {
		return []model.Category{}, nil
	}
	return res.Data, nil
}

// GetCategory handles GET /categories/{id}. A missing category yields (nil, nil).
func (c *Client) GetCategory(ctx context.Context, id int) (*model.Category, error) {
	var res model.CategoryResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d", id), nil, &res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := schema.Category(&res.Data); err != nil {
		return nil, fmt.Errorf("category %d: %w", id, err)
	}
	return &res.Data, nil
}

// CreateCategory handles POST /categories.
func (c *Client) CreateCategory(ctx context.Context, body model.CreateCategoryBody) (*model.Category, error) {
	if err := schema.CreateCategoryBody(&body); err != nil {
		return nil, err
	}
	var res model.CategoryResponse
	if err := c.do(ctx, http.MethodPost, "/categories", body, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// UpdateCategory handles PUT /categories/{id}.
func (c *Client) UpdateCategory(ctx context.Context, id int, body model.UpdateCategoryBody) (*model.Category, error) {
	if err := schema.CreateCategoryBody(&body); err != nil {
		return nil, err
	}
	var res model.CategoryResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), body, &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

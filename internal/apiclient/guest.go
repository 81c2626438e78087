package apiclient

import (
	"context"
	"net/http"

	"storefront/internal/model"
	"storefront/internal/schema"
)

// CreateGuestOrders handles POST /guest/orders. The backend identifies the
// guest from the forwarded access token, so guestID is not sent.
func (c *Client) CreateGuestOrders(ctx context.Context, guestID string, body model.GuestCreateOrdersBody) ([]model.Order, error) {
	if err := schema.GuestCreateOrdersBody(body); err != nil {
		return nil, err
	}
	var res model.OrderListResponse
	if err := c.do(ctx, http.MethodPost, "/guest/orders", body, &res); err != nil {
		return nil, err
	}
	c.logger.Info().Int("lines", len(body)).Int("orders", len(res.Data)).Msg("guest orders created")
	return res.Data, nil
}

// ListGuestOrders handles GET /guest/orders.
func (c *Client) ListGuestOrders(ctx context.Context, guestID string) ([]model.Order, error) {
	var res model.OrderListResponse
	if err := c.do(ctx, http.MethodGet, "/guest/orders", nil, &res); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return []model.Order{}, nil
	}
	return res.Data, nil
}

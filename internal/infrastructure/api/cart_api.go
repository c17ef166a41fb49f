package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tambesec/networkstore/domain"
)

// CartAPI implements domain.CartGateway.
type CartAPI struct {
	client *Client
}

// NewCartAPI creates the cart gateway.
func NewCartAPI(client *Client) domain.CartGateway {
	return &CartAPI{client: client}
}

func (c *CartAPI) Get(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.client.DoGenerated(ctx, http.MethodGet, c.client.prefix+"/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *CartAPI) AddItem(ctx context.Context, productID int64, quantity int) error {
	body := map[string]interface{}{"product_id": productID, "quantity": quantity}
	return c.client.DoGenerated(ctx, http.MethodPost, c.client.prefix+"/cart/items", body, nil)
}

func (c *CartAPI) UpdateItem(ctx context.Context, itemID int64, quantity int) error {
	body := map[string]interface{}{"quantity": quantity}
	path := fmt.Sprintf("%s/cart/items/%d", c.client.prefix, itemID)
	return c.client.DoGenerated(ctx, http.MethodPatch, path, body, nil)
}

func (c *CartAPI) RemoveItem(ctx context.Context, itemID int64) error {
	path := fmt.Sprintf("%s/cart/items/%d", c.client.prefix, itemID)
	return c.client.DoGenerated(ctx, http.MethodDelete, path, nil, nil)
}

func (c *CartAPI) Clear(ctx context.Context) error {
	return c.client.DoGenerated(ctx, http.MethodDelete, c.client.prefix+"/cart", nil, nil)
}

var _ domain.CartGateway = (*CartAPI)(nil)

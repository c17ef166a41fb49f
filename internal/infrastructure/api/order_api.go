package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tambesec/networkstore/domain"
)

// OrderAPI implements domain.OrderGateway.
type OrderAPI struct {
	client *Client
}

// NewOrderAPI creates the order gateway.
func NewOrderAPI(client *Client) domain.OrderGateway {
	return &OrderAPI{client: client}
}

func (o *OrderAPI) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := o.client.DoGenerated(ctx, http.MethodPost, o.client.prefix+"/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *OrderAPI) List(ctx context.Context, page, limit int) (*domain.OrderList, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := o.client.prefix + "/orders"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var list domain.OrderList
	if err := o.client.DoGenerated(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (o *OrderAPI) Get(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("%s/orders/%d", o.client.prefix, orderID)
	if err := o.client.DoGenerated(ctx, http.MethodGet, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *OrderAPI) Cancel(ctx context.Context, orderID int64) error {
	path := fmt.Sprintf("%s/orders/%d/cancel", o.client.prefix, orderID)
	return o.client.DoGenerated(ctx, http.MethodPost, path, map[string]string{}, nil)
}

var _ domain.OrderGateway = (*OrderAPI)(nil)

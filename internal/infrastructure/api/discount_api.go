package api

import (
	"context"
	"net/http"

	"github.com/tambesec/networkstore/domain"
)

// DiscountAPI implements domain.DiscountGateway.
type DiscountAPI struct {
	client *Client
}

// NewDiscountAPI creates the discount gateway.
func NewDiscountAPI(client *Client) domain.DiscountGateway {
	return &DiscountAPI{client: client}
}

func (d *DiscountAPI) Validate(ctx context.Context, code string, orderAmount int64) (*domain.DiscountValidation, error) {
	body := map[string]interface{}{"code": code, "order_amount": orderAmount}
	var result domain.DiscountValidation
	if err := d.client.DoGenerated(ctx, http.MethodPost, d.client.prefix+"/discounts/validate", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

var _ domain.DiscountGateway = (*DiscountAPI)(nil)

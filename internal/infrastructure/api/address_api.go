package api

import (
	"context"
	"net/http"

	"github.com/tambesec/networkstore/domain"
)

// AddressAPI implements domain.AddressGateway.
type AddressAPI struct {
	client *Client
}

// NewAddressAPI creates the address gateway.
func NewAddressAPI(client *Client) domain.AddressGateway {
	return &AddressAPI{client: client}
}

func (a *AddressAPI) Create(ctx context.Context, req domain.AddressRequest) (*domain.Address, error) {
	var addr domain.Address
	if err := a.client.DoGenerated(ctx, http.MethodPost, a.client.prefix+"/addresses", req, &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

func (a *AddressAPI) List(ctx context.Context) ([]domain.Address, error) {
	var addrs []domain.Address
	if err := a.client.DoGenerated(ctx, http.MethodGet, a.client.prefix+"/addresses", nil, &addrs); err != nil {
		return nil, err
	}
	return addrs, nil
}

var _ domain.AddressGateway = (*AddressAPI)(nil)

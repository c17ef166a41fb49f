package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tambesec/networkstore/domain"
)

// ReviewAPI implements domain.ReviewGateway.
type ReviewAPI struct {
	client *Client
}

// NewReviewAPI creates the review gateway.
func NewReviewAPI(client *Client) domain.ReviewGateway {
	return &ReviewAPI{client: client}
}

func (r *ReviewAPI) ListByProduct(ctx context.Context, productID int64, page, limit int) (*domain.ReviewList, error) {
	path := fmt.Sprintf("%s/products/%d/reviews?page=%d&limit=%d", r.client.prefix, productID, page, limit)
	var list domain.ReviewList
	if err := r.client.DoGenerated(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *ReviewAPI) Create(ctx context.Context, req domain.ReviewRequest) (*domain.Review, error) {
	var review domain.Review
	if err := r.client.DoGenerated(ctx, http.MethodPost, r.client.prefix+"/reviews", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

var _ domain.ReviewGateway = (*ReviewAPI)(nil)

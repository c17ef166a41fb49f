package services

import (
	"context"

	"github.com/tambesec/networkstore/domain"
)

// ReviewDesk implements domain.ReviewService. Reading reviews is public;
// writing one requires a session.
type ReviewDesk struct {
	gw      domain.ReviewGateway
	session domain.SessionService
}

// NewReviewDesk creates the review service.
func NewReviewDesk(gw domain.ReviewGateway, session domain.SessionService) *ReviewDesk {
	return &ReviewDesk{gw: gw, session: session}
}

// ListByProduct fetches a page of reviews for a product.
func (s *ReviewDesk) ListByProduct(ctx context.Context, productID int64, page, limit int) (*domain.ReviewList, error) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.gw.ListByProduct(ctx, productID, page, limit)
}

// Submit posts a new review. Ratings are a 1-5 star scale.
func (s *ReviewDesk) Submit(ctx context.Context, req domain.ReviewRequest) (*domain.Review, error) {
	if !s.session.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, domain.ErrInvalidRating
	}
	return s.gw.Create(ctx, req)
}

var _ domain.ReviewService = (*ReviewDesk)(nil)

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tambesec/networkstore/domain"
	"github.com/tambesec/networkstore/internal/mocks"
)

func TestSubmitReviewValidatesRating(t *testing.T) {
	gw := &mocks.MockReviewGateway{}
	svc := NewReviewDesk(gw, &mocks.MockSessionService{Authenticated: true})

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.Submit(context.Background(), domain.ReviewRequest{ProductID: 1, Rating: rating})
		if !errors.Is(err, domain.ErrInvalidRating) {
			t.Errorf("Submit(rating=%d) error = %v, want ErrInvalidRating", rating, err)
		}
	}
	if gw.CreateCalls != 0 {
		t.Errorf("gateway calls = %d, want 0", gw.CreateCalls)
	}

	for rating := 1; rating <= 5; rating++ {
		if _, err := svc.Submit(context.Background(), domain.ReviewRequest{ProductID: 1, Rating: rating}); err != nil {
			t.Errorf("Submit(rating=%d) error = %v", rating, err)
		}
	}
}

func TestSubmitReviewRequiresSession(t *testing.T) {
	gw := &mocks.MockReviewGateway{}
	svc := NewReviewDesk(gw, &mocks.MockSessionService{Authenticated: false})

	_, err := svc.Submit(context.Background(), domain.ReviewRequest{ProductID: 1, Rating: 5})
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("Submit() error = %v, want ErrNotAuthenticated", err)
	}
}

func TestListReviewsIsPublic(t *testing.T) {
	gw := &mocks.MockReviewGateway{
		ListByProductFunc: func(ctx context.Context, productID int64, page, limit int) (*domain.ReviewList, error) {
			return &domain.ReviewList{Reviews: []domain.Review{{ID: 1, ProductID: productID, Rating: 4}}}, nil
		},
	}
	svc := NewReviewDesk(gw, &mocks.MockSessionService{Authenticated: false})

	list, err := svc.ListByProduct(context.Background(), 42, 0, 0)
	if err != nil {
		t.Fatalf("ListByProduct() error = %v", err)
	}
	if len(list.Reviews) != 1 {
		t.Errorf("reviews = %d, want 1", len(list.Reviews))
	}
}

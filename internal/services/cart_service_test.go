package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tambesec/networkstore/domain"
	"github.com/tambesec/networkstore/internal/mocks"
)

func sampleCart() *domain.Cart {
	return &domain.Cart{
		ID: 5,
		Items: []domain.CartItem{
			{ID: 1, ProductID: 100, Quantity: 2, Price: 150_000},
		},
		Summary: domain.CartSummary{Subtotal: 300_000, Total: 330_000, ItemsCount: 2},
	}
}

func TestAddItemRequiresSession(t *testing.T) {
	gw := &mocks.MockCartGateway{}
	session := &mocks.MockSessionService{Authenticated: false}
	mgr := NewCartManager(gw, session)

	err := mgr.AddItem(context.Background(), 100, 1)
	if !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("AddItem() error = %v, want ErrNotAuthenticated", err)
	}
	if gw.AddItemCalls != 0 {
		t.Errorf("gateway calls = %d, want 0 (rejected before the network)", gw.AddItemCalls)
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	gw := &mocks.MockCartGateway{}
	session := &mocks.MockSessionService{Authenticated: true}
	mgr := NewCartManager(gw, session)

	for _, q := range []int{0, -1} {
		if err := mgr.AddItem(context.Background(), 100, q); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Errorf("AddItem(q=%d) error = %v, want ErrInvalidQuantity", q, err)
		}
	}
	if gw.AddItemCalls != 0 {
		t.Errorf("gateway calls = %d, want 0", gw.AddItemCalls)
	}
}

func TestMutationsReloadFromServer(t *testing.T) {
	gw := &mocks.MockCartGateway{
		GetFunc: func(ctx context.Context) (*domain.Cart, error) { return sampleCart(), nil },
	}
	session := &mocks.MockSessionService{Authenticated: true}
	mgr := NewCartManager(gw, session)

	if err := mgr.AddItem(context.Background(), 100, 2); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if gw.GetCalls != 1 {
		t.Errorf("reloads after AddItem = %d, want 1", gw.GetCalls)
	}
	cart := mgr.Cart()
	if cart == nil || cart.Summary.Subtotal != 300_000 {
		t.Errorf("Cart() = %+v, want server copy", cart)
	}

	if err := mgr.UpdateQuantity(context.Background(), 1, 3); err != nil {
		t.Fatalf("UpdateQuantity() error = %v", err)
	}
	if err := mgr.RemoveItem(context.Background(), 1); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if gw.GetCalls != 3 {
		t.Errorf("total reloads = %d, want one per mutation", gw.GetCalls)
	}
}

func TestFailedMutationKeepsCart(t *testing.T) {
	gw := &mocks.MockCartGateway{
		GetFunc: func(ctx context.Context) (*domain.Cart, error) { return sampleCart(), nil },
	}
	session := &mocks.MockSessionService{Authenticated: true}
	mgr := NewCartManager(gw, session)
	if err := mgr.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	gw.AddItemFunc = func(ctx context.Context, productID int64, quantity int) error {
		return &domain.APIError{StatusCode: 400, Message: "Not enough stock"}
	}

	err := mgr.AddItem(context.Background(), 100, 99)
	if err == nil {
		t.Fatal("AddItem() error = nil, want stock failure")
	}
	if got := domain.APIMessage(err, ""); got != "Not enough stock" {
		t.Errorf("APIMessage() = %q, want backend message", got)
	}
	if mgr.Cart() == nil {
		t.Error("Cart() = nil, want previous copy kept on failed mutation")
	}
}

func TestCartFollowsSessionLifecycle(t *testing.T) {
	gw := &mocks.MockCartGateway{
		GetFunc: func(ctx context.Context) (*domain.Cart, error) { return sampleCart(), nil },
	}
	session := &mocks.MockSessionService{Authenticated: true}
	mgr := NewCartManager(gw, session)

	session.Publish(domain.NewSessionEvent(domain.SessionSignedIn, &domain.User{ID: 10}))
	if mgr.Cart() == nil {
		t.Fatal("Cart() = nil after sign-in, want loaded cart")
	}

	session.Publish(domain.NewSessionEvent(domain.SessionSignedOut, nil))
	if mgr.Cart() != nil {
		t.Error("Cart() != nil after sign-out")
	}
}

func TestRefreshTreatsFailureAsNoCart(t *testing.T) {
	gw := &mocks.MockCartGateway{
		GetFunc: func(ctx context.Context) (*domain.Cart, error) {
			return nil, &domain.APIError{StatusCode: 404, Message: "Cart not found"}
		},
	}
	session := &mocks.MockSessionService{Authenticated: true}
	mgr := NewCartManager(gw, session)

	if err := mgr.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v, want nil (missing cart is normal)", err)
	}
	if mgr.Cart() != nil {
		t.Error("Cart() != nil, want nil")
	}
}

func TestClearDropsLocalCopy(t *testing.T) {
	gw := &mocks.MockCartGateway{
		GetFunc: func(ctx context.Context) (*domain.Cart, error) { return sampleCart(), nil },
	}
	session := &mocks.MockSessionService{Authenticated: true}
	mgr := NewCartManager(gw, session)
	if err := mgr.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := mgr.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if mgr.Cart() != nil {
		t.Error("Cart() != nil after Clear")
	}
}

package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/tambesec/networkstore/domain"
)

// CartManager implements domain.CartService. The cart itself lives on the
// server; this manager keeps a read-mostly copy that is refetched after
// every mutation — no client-side optimistic math.
type CartManager struct {
	gw      domain.CartGateway
	session domain.SessionService

	mu   sync.RWMutex
	cart *domain.Cart
}

// NewCartManager creates a cart manager wired to the session lifecycle: the
// cart loads on sign-in and is forcibly nulled on sign-out.
func NewCartManager(gw domain.CartGateway, session domain.SessionService) *CartManager {
	m := &CartManager{gw: gw, session: session}
	session.Subscribe(m.onSessionEvent)
	return m
}

func (m *CartManager) onSessionEvent(ev domain.SessionEvent) {
	switch ev.Type {
	case domain.SessionSignedIn:
		if err := m.Refresh(context.Background()); err != nil {
			log.Printf("CART_LOAD_FAILED: error=%v", err)
		}
	case domain.SessionSignedOut:
		m.setCart(nil)
	}
}

// Cart returns the cached cart, nil when absent or unauthenticated.
func (m *CartManager) Cart() *domain.Cart {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cart
}

// Refresh reloads the cart from the backend. A load failure simply means no
// cart (guest session, empty cart) and clears the cached copy.
func (m *CartManager) Refresh(ctx context.Context) error {
	cart, err := m.gw.Get(ctx)
	if err != nil {
		m.setCart(nil)
		return nil
	}
	m.setCart(cart)
	return nil
}

// AddItem adds a product to the cart. Rejects without a network call when
// the session is unauthenticated.
func (m *CartManager) AddItem(ctx context.Context, productID int64, quantity int) error {
	if !m.session.IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if err := m.gw.AddItem(ctx, productID, quantity); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	return m.Refresh(ctx)
}

// UpdateQuantity changes a line's quantity and reloads the cart.
func (m *CartManager) UpdateQuantity(ctx context.Context, itemID int64, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if err := m.gw.UpdateItem(ctx, itemID, quantity); err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	return m.Refresh(ctx)
}

// RemoveItem deletes a line and reloads the cart.
func (m *CartManager) RemoveItem(ctx context.Context, itemID int64) error {
	if err := m.gw.RemoveItem(ctx, itemID); err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	return m.Refresh(ctx)
}

// Clear empties the server cart and drops the local copy.
func (m *CartManager) Clear(ctx context.Context) error {
	if err := m.gw.Clear(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	m.setCart(nil)
	return nil
}

func (m *CartManager) setCart(cart *domain.Cart) {
	m.mu.Lock()
	m.cart = cart
	m.mu.Unlock()
}

var _ domain.CartService = (*CartManager)(nil)

package services

import (
	"context"
	"fmt"
	"log"

	"github.com/tambesec/networkstore/domain"
)

// OrderHistory implements domain.OrderService. All operations require an
// authenticated session; the guard avoids pointless network round-trips.
type OrderHistory struct {
	gw      domain.OrderGateway
	session domain.SessionService
}

// NewOrderHistory creates the order-history service.
func NewOrderHistory(gw domain.OrderGateway, session domain.SessionService) *OrderHistory {
	return &OrderHistory{gw: gw, session: session}
}

// List fetches a page of the customer's orders.
func (s *OrderHistory) List(ctx context.Context, page, limit int) (*domain.OrderList, error) {
	if !s.session.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.gw.List(ctx, page, limit)
}

// Get fetches one order by id.
func (s *OrderHistory) Get(ctx context.Context, orderID int64) (*domain.Order, error) {
	if !s.session.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	return s.gw.Get(ctx, orderID)
}

// Cancel cancels an order that is still pending or confirmed. Orders further
// along must go through support.
func (s *OrderHistory) Cancel(ctx context.Context, orderID int64) error {
	if !s.session.IsAuthenticated() {
		return domain.ErrNotAuthenticated
	}
	order, err := s.gw.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.CanCancel() {
		return fmt.Errorf("order %s can no longer be cancelled", order.OrderNumber)
	}
	if err := s.gw.Cancel(ctx, orderID); err != nil {
		return err
	}
	log.Printf("ORDER_CANCELLED: order_id=%d order_number=%s", orderID, order.OrderNumber)
	return nil
}

var _ domain.OrderService = (*OrderHistory)(nil)

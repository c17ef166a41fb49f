package services

import (
	"context"

	"github.com/tambesec/networkstore/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 12
)

// CatalogBrowser implements domain.CatalogService. Browsing is public; no
// session is required.
type CatalogBrowser struct {
	gw domain.CatalogGateway
}

// NewCatalogBrowser creates the catalog service.
func NewCatalogBrowser(gw domain.CatalogGateway) *CatalogBrowser {
	return &CatalogBrowser{gw: gw}
}

// ListProducts fetches a catalog page, filling in default paging.
func (s *CatalogBrowser) ListProducts(ctx context.Context, q domain.ProductQuery) (*domain.ProductList, error) {
	if q.Page <= 0 {
		q.Page = defaultPage
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	return s.gw.ListProducts(ctx, q)
}

// GetProduct fetches a single product.
func (s *CatalogBrowser) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	return s.gw.GetProduct(ctx, productID)
}

// ListCategories fetches the category tree.
func (s *CatalogBrowser) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.gw.ListCategories(ctx)
}

var _ domain.CatalogService = (*CatalogBrowser)(nil)

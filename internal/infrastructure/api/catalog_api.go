package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tambesec/networkstore/domain"
)

// CatalogAPI implements domain.CatalogGateway. Catalog endpoints are public;
// they still run through the shared pipeline but never carry a session.
type CatalogAPI struct {
	client *Client
}

// NewCatalogAPI creates the catalog gateway.
func NewCatalogAPI(client *Client) domain.CatalogGateway {
	return &CatalogAPI{client: client}
}

func (c *CatalogAPI) ListProducts(ctx context.Context, q domain.ProductQuery) (*domain.ProductList, error) {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.CategoryID > 0 {
		values.Set("category_id", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.MinPrice > 0 {
		values.Set("min_price", strconv.FormatInt(q.MinPrice, 10))
	}
	if q.MaxPrice > 0 {
		values.Set("max_price", strconv.FormatInt(q.MaxPrice, 10))
	}
	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}

	path := c.client.prefix + "/products"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var list domain.ProductList
	if err := c.client.DoGenerated(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *CatalogAPI) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("%s/products/%d", c.client.prefix, productID)
	if err := c.client.DoGenerated(ctx, http.MethodGet, path, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *CatalogAPI) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.client.DoGenerated(ctx, http.MethodGet, c.client.prefix+"/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

var _ domain.CatalogGateway = (*CatalogAPI)(nil)

package commerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/oubata/HealThea/internal/domain"
	pkgerrors "github.com/oubata/HealThea/pkg/errors"
)

// ListRegions fetches the backend's regions. The first one is the session's
// pricing context.
func (c *Client) ListRegions(ctx context.Context) ([]domain.Region, error) {
	var out regionsEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/regions", "", nil, &out); err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	regions := make([]domain.Region, 0, len(out.Regions))
	for _, r := range out.Regions {
		regions = append(regions, domain.Region{ID: r.ID, Name: r.Name, CurrencyCode: r.CurrencyCode})
	}
	return regions, nil
}

// ListProducts fetches catalog products priced for the given region
func (c *Client) ListProducts(ctx context.Context, regionID string) ([]domain.Product, error) {
	q := url.Values{}
	q.Set("region_id", regionID)
	q.Set("limit", "100")
	return c.fetchProducts(ctx, q)
}

// GetProductByHandle fetches a single product by its URL handle
func (c *Client) GetProductByHandle(ctx context.Context, regionID, handle string) (*domain.Product, error) {
	q := url.Values{}
	q.Set("region_id", regionID)
	q.Set("handle", handle)
	products, err := c.fetchProducts(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, &pkgerrors.ErrNotFound{Resource: "product", ID: handle}
	}
	return &products[0], nil
}

// ListProductsByCategory fetches products belonging to a category
func (c *Client) ListProductsByCategory(ctx context.Context, regionID, categoryID string) ([]domain.Product, error) {
	q := url.Values{}
	q.Set("region_id", regionID)
	q.Set("category_id", categoryID)
	q.Set("limit", "100")
	return c.fetchProducts(ctx, q)
}

func (c *Client) fetchProducts(ctx context.Context, q url.Values) ([]domain.Product, error) {
	var out productsEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/products?"+q.Encode(), "", nil, &out); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]domain.Product, 0, len(out.Products))
	for _, p := range out.Products {
		products = append(products, p.toDomain())
	}
	return products, nil
}

// ListCategories fetches the product categories
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out categoriesEnvelope
	if err := c.do(ctx, http.MethodGet, "/store/product-categories", "", nil, &out); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]domain.Category, 0, len(out.ProductCategories))
	for _, cat := range out.ProductCategories {
		categories = append(categories, domain.Category{
			ID:          cat.ID,
			Name:        cat.Name,
			Slug:        cat.Handle,
			Description: cat.Description,
			Image:       cat.Metadata["image"],
		})
	}
	return categories, nil
}

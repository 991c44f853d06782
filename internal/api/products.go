package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gcg-eyewear/storefront/internal/domain"
)

// ProductsAPI maps the public and admin product endpoints.
type ProductsAPI struct {
	client *Client
}

// ProductInput is the write payload for create and update. IsOnSale is
// filled by the form layer from the presence of OriginalPrice; it is never
// edited directly.
type ProductInput struct {
	Name             string             `json:"name"`
	Collection       string             `json:"collection"`
	Price            float64            `json:"price"`
	OriginalPrice    *float64           `json:"original_price"`
	SKU              string             `json:"sku"`
	Gender           domain.Gender      `json:"gender"`
	Type             domain.ProductType `json:"type"`
	FrameColor       string             `json:"frame_color"`
	LensColor        string             `json:"lens_color"`
	Materials        string             `json:"materials"`
	MadeIn           string             `json:"made_in"`
	IsLimitedEdition bool               `json:"is_limited_edition"`
	IsFeatured       bool               `json:"is_featured"`
	IsOnHomepage     bool               `json:"is_on_homepage"`
	IsInCatalog      bool               `json:"is_in_catalog"`
	IsOnSale         bool               `json:"is_on_sale"`
	Status           domain.Status      `json:"status"`
	MainImage        string             `json:"main_image"`
	GalleryImages    []string           `json:"gallery_images"`
	ShortDescription string             `json:"short_description"`
	FullDescription  string             `json:"full_description,omitempty"`
	Tags             []string           `json:"tags"`
	ScheduledAt      *time.Time         `json:"scheduled_at"`
}

// List fetches products matching the filter from GET /products.
func (p *ProductsAPI) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var products []domain.Product
	if err := p.client.getJSON(ctx, "/products", filterQuery(filter), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Featured fetches up to limit featured products.
func (p *ProductsAPI) Featured(ctx context.Context, limit int) ([]domain.Product, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var products []domain.Product
	if err := p.client.getJSON(ctx, "/products/featured", q, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Get fetches a single product by id.
func (p *ProductsAPI) Get(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := p.client.getJSON(ctx, "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ByCollection fetches products belonging to the named collection.
func (p *ProductsAPI) ByCollection(ctx context.Context, collection string, limit int) ([]domain.Product, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	var products []domain.Product
	path := "/products/collection/" + url.PathEscape(collection)
	if err := p.client.getJSON(ctx, path, q, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Search runs a free-text product search.
func (p *ProductsAPI) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	q := url.Values{"q": {query}, "limit": {strconv.Itoa(limit)}}
	var products []domain.Product
	if err := p.client.getJSON(ctx, "/products/search", q, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Create creates a new product.
func (p *ProductsAPI) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := p.client.sendJSON(ctx, "POST", "/products", nil, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update replaces a product by id.
func (p *ProductsAPI) Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := p.client.sendJSON(ctx, "PUT", "/products/"+url.PathEscape(id), nil, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product by id.
func (p *ProductsAPI) Delete(ctx context.Context, id string) error {
	return p.client.delete(ctx, "/products/"+url.PathEscape(id))
}

// filterQuery flattens a ProductFilter into query parameters; zero values
// are omitted so the backend treats the dimension as unconstrained.
func filterQuery(f domain.ProductFilter) url.Values {
	q := url.Values{}
	if f.Collection != "" {
		q.Set("collection", f.Collection)
	}
	if f.Gender != "" {
		q.Set("gender", f.Gender)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.IsFeatured != nil {
		q.Set("is_featured", strconv.FormatBool(*f.IsFeatured))
	}
	if f.IsOnSale != nil {
		q.Set("is_on_sale", strconv.FormatBool(*f.IsOnSale))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.PriceMin != nil {
		q.Set("price_min", fmt.Sprintf("%g", *f.PriceMin))
	}
	if f.PriceMax != nil {
		q.Set("price_max", fmt.Sprintf("%g", *f.PriceMax))
	}
	if f.Skip > 0 {
		q.Set("skip", strconv.Itoa(f.Skip))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

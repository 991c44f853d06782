package api

import (
	"context"
	"net/url"

	"github.com/gcg-eyewear/storefront/internal/domain"
)

// CollectionsAPI maps the collection endpoints.
type CollectionsAPI struct {
	client *Client
}

// CollectionInput is the write payload for create and update.
type CollectionInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

// List fetches all collections.
func (c *CollectionsAPI) List(ctx context.Context) ([]domain.Collection, error) {
	var collections []domain.Collection
	if err := c.client.getJSON(ctx, "/collections", nil, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

// Active fetches only active collections, in display order.
func (c *CollectionsAPI) Active(ctx context.Context) ([]domain.Collection, error) {
	var collections []domain.Collection
	if err := c.client.getJSON(ctx, "/collections/active", nil, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

// Get fetches a collection by id.
func (c *CollectionsAPI) Get(ctx context.Context, id string) (*domain.Collection, error) {
	var collection domain.Collection
	if err := c.client.getJSON(ctx, "/collections/"+url.PathEscape(id), nil, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// BySlug fetches a collection by its display slug.
func (c *CollectionsAPI) BySlug(ctx context.Context, slug string) (*domain.Collection, error) {
	var collection domain.Collection
	if err := c.client.getJSON(ctx, "/collections/slug/"+url.PathEscape(slug), nil, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// Create creates a new collection.
func (c *CollectionsAPI) Create(ctx context.Context, input CollectionInput) (*domain.Collection, error) {
	var collection domain.Collection
	if err := c.client.sendJSON(ctx, "POST", "/collections", nil, input, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// Update replaces a collection by id.
func (c *CollectionsAPI) Update(ctx context.Context, id string, input CollectionInput) (*domain.Collection, error) {
	var collection domain.Collection
	if err := c.client.sendJSON(ctx, "PUT", "/collections/"+url.PathEscape(id), nil, input, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// Delete removes a collection by id.
func (c *CollectionsAPI) Delete(ctx context.Context, id string) error {
	return c.client.delete(ctx, "/collections/"+url.PathEscape(id))
}

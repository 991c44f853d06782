package domain

import (
	"time"

	"github.com/gcg-eyewear/storefront/pkg/slug"
)

// Collection is a named, ordered grouping of products with its own display
// slug. Collections render in ascending SortOrder.
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SlugFor derives the URL-safe slug for a collection name.
func SlugFor(name string) string {
	return slug.Make(name)
}

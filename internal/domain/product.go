package domain

import (
	"time"
)

// Gender classifies who a frame is designed for.
type Gender string

const (
	GenderMen    Gender = "Men"
	GenderWomen  Gender = "Women"
	GenderUnisex Gender = "Unisex"
)

// ProductType distinguishes the two frame families in the catalog.
type ProductType string

const (
	TypeSunglasses ProductType = "Sunglasses"
	TypeEyeglasses ProductType = "Eyeglasses"
)

// Product lifecycle statuses.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusDraft     Status = "draft"
	StatusScheduled Status = "scheduled"
)

// ValidStatuses returns the set of valid product statuses.
func ValidStatuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusDraft, StatusScheduled}
}

// IsValidStatus checks whether the given string is a valid product status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses() {
		if string(v) == s {
			return true
		}
	}
	return false
}

// Product is the backend-owned catalog record. The client holds transient,
// non-authoritative copies only.
type Product struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Collection       string      `json:"collection"`
	Price            float64     `json:"price"`
	OriginalPrice    *float64    `json:"original_price,omitempty"`
	SKU              string      `json:"sku"`
	Gender           Gender      `json:"gender"`
	Type             ProductType `json:"type"`
	FrameColor       string      `json:"frame_color"`
	LensColor        string      `json:"lens_color"`
	Materials        string      `json:"materials"`
	MadeIn           string      `json:"made_in"`
	IsLimitedEdition bool        `json:"is_limited_edition"`
	IsFeatured       bool        `json:"is_featured"`
	IsOnHomepage     bool        `json:"is_on_homepage"`
	IsInCatalog      bool        `json:"is_in_catalog"`
	Status           Status      `json:"status"`
	MainImage        string      `json:"main_image"`
	GalleryImages    []string    `json:"gallery_images"`
	ShortDescription string      `json:"short_description"`
	FullDescription  string      `json:"full_description,omitempty"`
	Tags             []string    `json:"tags"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	ScheduledAt      *time.Time  `json:"scheduled_at,omitempty"`
}

// OnSale reports whether the product is discounted. It is derived from the
// presence of an original price and is never stored independently, so the
// two can't drift apart.
func (p *Product) OnSale() bool {
	return p.OriginalPrice != nil
}

// Images returns the combined ordered image list, main image first.
func (p *Product) Images() ImageList {
	return NewImageList(p.MainImage, p.GalleryImages)
}

// ProductFilter mirrors the admin list query parameters. Zero values mean
// "no constraint on this dimension".
type ProductFilter struct {
	Collection string
	Gender     string
	Type       string
	Status     string
	IsFeatured *bool
	IsOnSale   *bool
	Search     string
	PriceMin   *float64
	PriceMax   *float64
	Skip       int
	Limit      int
}

// CatalogStats is the aggregate returned by the admin stats endpoint.
type CatalogStats struct {
	TotalProducts    int `json:"total_products"`
	ActiveProducts   int `json:"active_products"`
	FeaturedProducts int `json:"featured_products"`
	OnSaleProducts   int `json:"on_sale_products"`
}

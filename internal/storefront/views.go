// Package storefront composes the public site's view models. Each section
// degrades independently: a backend failure yields an inline error or a
// static fallback inside the view, never a failed response for the whole
// page.
package storefront

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gcg-eyewear/storefront/internal/api"
	"github.com/gcg-eyewear/storefront/internal/fetch"
)

const (
	homeCacheKey = "views:home"

	featuredLimit = 8
)

// CollectionCard is a collection as the storefront renders it.
type CollectionCard struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}

// ProductCard is a product tile on the storefront.
type ProductCard struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Collection    string   `json:"collection"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	OnSale        bool     `json:"on_sale"`
	MainImage     string   `json:"main_image,omitempty"`
}

// CollectionsSection is the home page collections strip. Fallback is true
// when the hardcoded defaults replaced an empty backend result.
type CollectionsSection struct {
	Items    []CollectionCard `json:"items"`
	Error    string           `json:"error,omitempty"`
	Fallback bool             `json:"fallback,omitempty"`
}

// FeaturedSection is the home page featured products strip.
type FeaturedSection struct {
	Items []ProductCard `json:"items"`
	Error string        `json:"error,omitempty"`
}

// HeroContent is static brand content supplied at build time.
type HeroContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image,omitempty"`
}

// HomeView is the composed home page view model.
type HomeView struct {
	Hero        HeroContent        `json:"hero"`
	Collections CollectionsSection `json:"collections"`
	Featured    FeaturedSection    `json:"featured"`
}

// AboutView is the static about page view model.
type AboutView struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}

// FallbackCollections are shown when the backend has no active collections
// yet, so the storefront never renders an empty strip.
func FallbackCollections() []CollectionCard {
	return []CollectionCard{
		{Name: "New Arrivals", Slug: "new-arrivals"},
		{Name: "Sunglasses", Slug: "sunglasses"},
		{Name: "Eyeglasses", Slug: "eyeglasses"},
	}
}

func defaultHero() HeroContent {
	return HeroContent{
		Title:    "GCG Eyewear",
		Subtitle: "Handcrafted frames from the Italian Riviera",
	}
}

func defaultAbout() AboutView {
	return AboutView{
		Title: "The Maison",
		Paragraphs: []string{
			"GCG Eyewear crafts limited runs of acetate and titanium frames, finished by hand in Liguria.",
			"Every collection pairs archival silhouettes with contemporary lens technology.",
		},
	}
}

// Views composes storefront view models from the backend catalog.
type Views struct {
	client *api.Client
	cache  *Cache
	logger *slog.Logger
}

// NewViews creates the view composer. cache may be nil.
func NewViews(client *api.Client, cache *Cache, logger *slog.Logger) *Views {
	return &Views{client: client, cache: cache, logger: logger}
}

// Home composes the home page. The two catalog sections load concurrently;
// each converts its own failure into an inline error and empty collections
// fall back to the hardcoded defaults.
func (v *Views) Home(ctx context.Context) HomeView {
	var cached HomeView
	if v.cache.Get(ctx, homeCacheKey, &cached) {
		return cached
	}

	view := HomeView{Hero: defaultHero()}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		view.Collections = v.collectionsSection(ctx)
	}()
	go func() {
		defer wg.Done()
		view.Featured = v.featuredSection(ctx)
	}()
	wg.Wait()

	// Degraded sections are not worth caching; the next request should
	// try the backend again.
	if view.Collections.Error == "" && view.Featured.Error == "" {
		v.cache.Set(ctx, homeCacheKey, view)
	}
	return view
}

// About returns the static about page.
func (v *Views) About() AboutView {
	return defaultAbout()
}

func (v *Views) collectionsSection(ctx context.Context) CollectionsSection {
	collections, err := v.client.Collections.Active(ctx)
	if err != nil {
		v.logger.WarnContext(ctx, "collections section degraded", slog.String("error", err.Error()))
		return CollectionsSection{Items: []CollectionCard{}, Error: fetch.Message(err)}
	}
	if len(collections) == 0 {
		return CollectionsSection{Items: FallbackCollections(), Fallback: true}
	}

	items := make([]CollectionCard, 0, len(collections))
	for _, c := range collections {
		items = append(items, CollectionCard{
			Name:        c.Name,
			Slug:        c.Slug,
			Image:       c.Image,
			Description: c.Description,
		})
	}
	return CollectionsSection{Items: items}
}

func (v *Views) featuredSection(ctx context.Context) FeaturedSection {
	products, err := v.client.Products.Featured(ctx, featuredLimit)
	if err != nil {
		v.logger.WarnContext(ctx, "featured section degraded", slog.String("error", err.Error()))
		return FeaturedSection{Items: []ProductCard{}, Error: fetch.Message(err)}
	}

	items := make([]ProductCard, 0, len(products))
	for i := range products {
		p := &products[i]
		items = append(items, ProductCard{
			ID:            p.ID,
			Name:          p.Name,
			Collection:    p.Collection,
			Price:         p.Price,
			OriginalPrice: p.OriginalPrice,
			OnSale:        p.OnSale(),
			MainImage:     p.MainImage,
		})
	}
	return FeaturedSection{Items: items}
}

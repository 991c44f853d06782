// Package main implements a standalone seed script that populates the
// eyewear backend with realistic demo data: an admin account, a set of
// collections and a catalog of frames across both product families. It
// talks to a running backend through the same API client the storefront
// uses.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/gcg-eyewear/storefront/internal/api"
	"github.com/gcg-eyewear/storefront/internal/domain"
	"github.com/gcg-eyewear/storefront/internal/session"
	"github.com/gcg-eyewear/storefront/pkg/logger"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type seedCollection struct {
	name        string
	description string
	sortOrder   int
}

type seedProduct struct {
	name          string
	collection    string
	price         float64
	originalPrice float64
	sku           string
	gender        domain.Gender
	productType   domain.ProductType
	frameColor    string
	lensColor     string
	materials     string
	featured      bool
	short         string
}

var collections = []seedCollection{
	{name: "Heritage", description: "Archival silhouettes reissued in modern acetates.", sortOrder: 1},
	{name: "Riviera Summer", description: "Light frames for long coastal afternoons.", sortOrder: 2},
	{name: "Atelier Titanium", description: "Hand-polished titanium, made in small runs.", sortOrder: 3},
}

var products = []seedProduct{
	{
		name: "Milano Aviator", collection: "heritage", price: 850, originalPrice: 990,
		sku: "GCG-MA-001", gender: domain.GenderUnisex, productType: domain.TypeSunglasses,
		frameColor: "Tortoise", lensColor: "Green", materials: "Acetate", featured: true,
		short: "Hand-finished acetate aviator with mineral glass lenses.",
	},
	{
		name: "Firenze Round", collection: "heritage", price: 720,
		sku: "GCG-FR-002", gender: domain.GenderWomen, productType: domain.TypeEyeglasses,
		frameColor: "Honey", lensColor: "Clear", materials: "Acetate", featured: true,
		short: "Round optical frame drawn from the 1962 archive.",
	},
	{
		name: "Portofino Square", collection: "riviera-summer", price: 640,
		sku: "GCG-PS-003", gender: domain.GenderMen, productType: domain.TypeSunglasses,
		frameColor: "Navy", lensColor: "Grey", materials: "Bio-acetate",
		short: "Squared navy frame with polarized grey lenses.",
	},
	{
		name: "Cervo Titanium", collection: "atelier-titanium", price: 1150,
		sku: "GCG-CT-004", gender: domain.GenderUnisex, productType: domain.TypeEyeglasses,
		frameColor: "Brushed Silver", lensColor: "Clear", materials: "Titanium", featured: true,
		short: "Featherweight titanium optical, hand-polished in Liguria.",
	},
}

func main() {
	_ = godotenv.Load()

	baseURL := getEnv("API_BASE_URL", "http://localhost:8000/api")
	username := getEnv("SEED_ADMIN_USERNAME", "admin")
	password := getEnv("SEED_ADMIN_PASSWORD", "admin")

	sessionFile := filepath.Join(os.TempDir(), "gcg-seed-session.json")
	defer os.Remove(sessionFile)

	store, err := session.Open(sessionFile)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}

	client := api.New(baseURL, store, logger.New("seed", "info"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := login(ctx, client, username, password); err != nil {
		log.Fatalf("login: %v", err)
	}

	for _, c := range collections {
		created, err := client.Collections.Create(ctx, api.CollectionInput{
			Name:        c.name,
			Slug:        domain.SlugFor(c.name),
			Description: c.description,
			IsActive:    true,
			SortOrder:   c.sortOrder,
		})
		if err != nil {
			log.Printf("collection %q: %v (skipping)", c.name, err)
			continue
		}
		log.Printf("created collection %s (%s)", created.Name, created.Slug)
	}

	for _, p := range products {
		input := api.ProductInput{
			Name:             p.name,
			Collection:       p.collection,
			Price:            p.price,
			SKU:              p.sku,
			Gender:           p.gender,
			Type:             p.productType,
			FrameColor:       p.frameColor,
			LensColor:        p.lensColor,
			Materials:        p.materials,
			MadeIn:           "Italy",
			IsFeatured:       p.featured,
			IsInCatalog:      true,
			Status:           domain.StatusActive,
			MainImage:        fmt.Sprintf("/static/seed/%s.jpg", p.sku),
			GalleryImages:    []string{},
			ShortDescription: p.short,
			Tags:             []string{string(p.gender), string(p.productType)},
		}
		if p.originalPrice > 0 {
			original := p.originalPrice
			input.OriginalPrice = &original
			input.IsOnSale = true
		}

		created, err := client.Products.Create(ctx, input)
		if err != nil {
			log.Printf("product %q: %v (skipping)", p.name, err)
			continue
		}
		log.Printf("created product %s (%s)", created.Name, created.SKU)
	}

	log.Println("seed complete")
}

// login authenticates, registering the admin account first when it does
// not exist yet.
func login(ctx context.Context, client *api.Client, username, password string) error {
	creds := domain.Credentials{Username: username, Password: password}
	if _, err := client.Admin.Login(ctx, creds); err == nil {
		return nil
	}

	_, err := client.Admin.Register(ctx, domain.Registration{
		Username: username,
		Email:    username + "@gcg-eyewear.test",
		Password: password,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("register admin: %w", err)
	}

	_, err = client.Admin.Login(ctx, creds)
	return err
}

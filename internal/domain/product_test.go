package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

// is_on_sale is derived: true iff original_price is present.
func TestProduct_OnSale(t *testing.T) {
	p := Product{Price: 650}
	assert.False(t, p.OnSale())

	p.OriginalPrice = floatPtr(850)
	assert.True(t, p.OnSale())

	p.OriginalPrice = nil
	assert.False(t, p.OnSale())
}

func TestProduct_Images(t *testing.T) {
	p := Product{
		MainImage:     "main.jpg",
		GalleryImages: []string{"g1.jpg", "g2.jpg"},
	}
	l := p.Images()
	assert.Equal(t, "main.jpg", l.Main())
	assert.Equal(t, []string{"g1.jpg", "g2.jpg"}, l.Gallery())
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{"active", "inactive", "draft", "scheduled"} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus("published"))
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("Active"))
}

func TestSlugFor(t *testing.T) {
	assert.Equal(t, "new-arrivals", SlugFor("New Arrivals"))
	assert.Equal(t, "heritage-collection", SlugFor("Heritage Collection!"))
}

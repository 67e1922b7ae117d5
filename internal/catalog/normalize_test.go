package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rumibeauty/storefront/internal/domain"
)

// ============================================================================
// Normalize Tests
// ============================================================================

func TestNormalize_AppliesDefaults(t *testing.T) {
	p := Normalize(RawProduct{ID: "p1", Price: 100})

	assert.Equal(t, DefaultProductName, p.Name)
	assert.Equal(t, DefaultProductImage, p.Image)
	assert.NotNil(t, p.Benefits)
	assert.NotNil(t, p.Reviews)
	assert.Empty(t, p.Benefits)
	assert.Empty(t, p.Reviews)
}

func TestNormalize_DiscountedPriceWins(t *testing.T) {
	p := Normalize(RawProduct{ID: "p1", Name: "Gloss", Price: 5000, DiscountedPrice: 3500})
	assert.Equal(t, int64(3500), p.Price)
}

func TestNormalize_PlainPriceWhenNoDiscount(t *testing.T) {
	p := Normalize(RawProduct{ID: "p1", Name: "Gloss", Price: 5000})
	assert.Equal(t, int64(5000), p.Price)
}

func TestNormalize_KeepsPopulatedFields(t *testing.T) {
	raw := RawProduct{
		ID:              "p1",
		Name:            "Velvet Rose Matte Lipstick",
		Category:        domain.CategoryLips,
		Subcategory:     "Lipstick",
		DiscountedPrice: 3950,
		OriginalPrice:   i64ptr(4500),
		Description:     "A matte lipstick.",
		Image:           "https://example.com/p1.jpg",
		Rating:          4.8,
		Sales:           1500,
		Benefits:        []string{"12-hour wear"},
		Reviews:         []domain.Review{{ID: "r1", Rating: 5}},
	}

	p := Normalize(raw)
	assert.Equal(t, raw.Name, p.Name)
	assert.Equal(t, raw.Image, p.Image)
	assert.Equal(t, int64(3950), p.Price)
	assert.Equal(t, int64(4500), *p.OriginalPrice)
	assert.Equal(t, raw.Benefits, p.Benefits)
	assert.Equal(t, raw.Reviews, p.Reviews)
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, raw := range SeedRows() {
		once := Normalize(raw)
		twice := Normalize(Raw(once))
		assert.Equal(t, once, twice, "re-normalizing %s changed the product", raw.ID)
	}
}

func TestNormalize_IdempotentOnBareRow(t *testing.T) {
	once := Normalize(RawProduct{ID: "px"})
	twice := Normalize(Raw(once))
	assert.Equal(t, once, twice)
}

// ============================================================================
// Seed Tests
// ============================================================================

func TestSeedProducts_TenWellFormedProducts(t *testing.T) {
	products := SeedProducts()
	assert.Len(t, products, 10)

	for _, p := range products {
		assert.NotEmpty(t, p.ID)
		assert.NotEqual(t, DefaultProductName, p.Name)
		assert.True(t, domain.IsValidCategory(p.Category), "category %q", p.Category)
		assert.Positive(t, p.Price)
		assert.NotNil(t, p.Benefits)
		assert.NotNil(t, p.Reviews)
	}
}

func TestSeedProducts_ReviewsCarriedOver(t *testing.T) {
	products := SeedProducts()
	assert.Len(t, products[0].Reviews, 2)
	assert.True(t, products[0].Reviews[0].Verified)
}

package catalog

import (
	"github.com/rumibeauty/storefront/internal/domain"
)

func i64ptr(v int64) *int64 { return &v }

// SeedRows returns the default catalog rows used to bootstrap an empty remote
// catalog and as the local fallback when the remote is unreachable.
func SeedRows() []RawProduct {
	return []RawProduct{
		{
			ID:              "p1",
			Name:            "Velvet Rose Matte Lipstick",
			Category:        domain.CategoryLips,
			Subcategory:     "Lipstick",
			DiscountedPrice: 3950,
			OriginalPrice:   i64ptr(4500),
			Description:     "A long-lasting, hydrating matte lipstick in our signature deep rose shade. Enriched with Vitamin E.",
			Image:           "https://picsum.photos/400/400?random=1",
			Rating:          4.8,
			Sales:           1500,
			Benefits:        []string{"12-hour wear", "Non-drying", "Highly pigmented"},
			Reviews: []domain.Review{
				{ID: "r1", UserName: "Sarah M.", Rating: 5, Comment: "Best lipstick I have ever owned! Stays on all day.", Date: "2023-10-15", HelpfulCount: 12, Verified: true},
				{ID: "r2", UserName: "Jessica K.", Rating: 4, Comment: "Love the color, slightly drying but manageable.", Date: "2023-11-02", HelpfulCount: 3, Verified: true},
			},
		},
		{
			ID:              "p2",
			Name:            "Luminous Silk Foundation",
			Category:        domain.CategoryFace,
			Subcategory:     "Foundation",
			DiscountedPrice: 12500,
			OriginalPrice:   i64ptr(15000),
			Description:     "Buildable coverage that leaves your skin looking naturally radiant and flawless. Oil-free formula.",
			Image:           "https://picsum.photos/400/400?random=2",
			Rating:          4.7,
			Sales:           2300,
			Benefits:        []string{"Medium coverage", "Radiant finish", "SPF 15"},
			Reviews: []domain.Review{
				{ID: "r3", UserName: "Emily R.", Rating: 5, Comment: "My skin looks like glass!", Date: "2023-09-10", HelpfulCount: 20, Verified: true},
			},
		},
		{
			ID:              "p3",
			Name:            "Midnight Drama Mascara",
			Category:        domain.CategoryEyes,
			Subcategory:     "Mascara",
			DiscountedPrice: 4500,
			Description:     "Volumizing and lengthening mascara for a dramatic false-lash effect without clumps.",
			Image:           "https://picsum.photos/400/400?random=3",
			Rating:          4.9,
			Sales:           3100,
			Benefits:        []string{"Water-resistant", "Smudge-proof", "Volumizing"},
		},
		{
			ID:              "p4",
			Name:            "Sunset Glow Blush Palette",
			Category:        domain.CategoryFace,
			Subcategory:     "Blush",
			DiscountedPrice: 6800,
			OriginalPrice:   i64ptr(8500),
			Description:     "A trio of peach, coral, and gold tones to warm up your complexion. Silky powder texture.",
			Image:           "https://picsum.photos/400/400?random=4",
			Rating:          4.6,
			Sales:           850,
			Benefits:        []string{"Buildable", "Universal shades", "Long-lasting"},
		},
		{
			ID:              "p5",
			Name:            "Hydra-Boost Setting Spray",
			Category:        domain.CategorySkincare,
			Subcategory:     "Moisturizers",
			DiscountedPrice: 4200,
			Description:     "Lock in your look for up to 16 hours while keeping skin hydrated and fresh.",
			Image:           "https://picsum.photos/400/400?random=5",
			Rating:          4.5,
			Sales:           1200,
			Benefits:        []string{"Dewy finish", "Alcohol-free", "Soothing"},
		},
		{
			ID:              "p6",
			Name:            "Precision Liquid Liner",
			Category:        domain.CategoryEyes,
			Subcategory:     "Eyeliner",
			DiscountedPrice: 3200,
			Description:     "Ultra-fine tip for precise cat eyes. Intense black pigment that lasts all day.",
			Image:           "https://picsum.photos/400/400?random=6",
			Rating:          4.8,
			Sales:           1800,
			Benefits:        []string{"Waterproof", "Matte black", "Easy application"},
		},
		{
			ID:              "p7",
			Name:            "Radiance Renewal Serum",
			Category:        domain.CategorySkincare,
			Subcategory:     "Serums",
			DiscountedPrice: 14500,
			OriginalPrice:   i64ptr(18000),
			Description:     "A potent vitamin C serum that brightens and evens skin tone over time.",
			Image:           "https://picsum.photos/400/400?random=7",
			Rating:          4.9,
			Sales:           900,
			Benefits:        []string{"Brightening", "Anti-aging", "Hydrating"},
		},
		{
			ID:              "p8",
			Name:            "Sheer Shine Lip Gloss",
			Category:        domain.CategoryLips,
			Subcategory:     "Lip Gloss",
			DiscountedPrice: 3500,
			Description:     "Non-sticky, high-shine gloss with a hint of shimmer. Perfect for layering.",
			Image:           "https://picsum.photos/400/400?random=8",
			Rating:          4.4,
			Sales:           2100,
			Benefits:        []string{"High shine", "Moisturizing", "Non-sticky"},
		},
		{
			ID:              "p9",
			Name:            "Full Coverage Concealer",
			Category:        domain.CategoryFace,
			Subcategory:     "Concealer",
			DiscountedPrice: 4800,
			Description:     "Creamy formula that hides dark circles and blemishes without creasing.",
			Image:           "https://picsum.photos/400/400?random=9",
			Rating:          4.7,
			Sales:           1600,
			Benefits:        []string{"Full coverage", "Crease-proof", "Long-wear"},
		},
		{
			ID:              "p10",
			Name:            "Golden Hour Eyeshadow",
			Category:        domain.CategoryEyes,
			Subcategory:     "Eyeshadow Palettes",
			DiscountedPrice: 9500,
			OriginalPrice:   i64ptr(12000),
			Description:     "12 highly pigmented warm neutral shades in matte and shimmer finishes.",
			Image:           "https://picsum.photos/400/400?random=10",
			Rating:          4.8,
			Sales:           2500,
			Benefits:        []string{"Blendable", "High pigment", "Versatile"},
		},
	}
}

// SeedProducts returns the normalized form of the default catalog.
func SeedProducts() []domain.Product {
	return NormalizeAll(SeedRows())
}

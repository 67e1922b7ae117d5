package catalog

import (
	"github.com/rumibeauty/storefront/internal/domain"
)

// Defaults applied by Normalize when a row is missing the corresponding field.
const (
	DefaultProductName  = "Untitled Product"
	DefaultProductImage = "https://picsum.photos/400/400"
)

// RawProduct is the loose row shape returned by the remote catalog. Price may
// arrive under either the plain or the discounted field name, and array
// columns may be null.
type RawProduct struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Subcategory     string   `json:"subcategory"`
	Price           int64    `json:"price"`
	DiscountedPrice int64    `json:"discounted_price"`
	OriginalPrice   *int64   `json:"original_price"`
	Description     string   `json:"description"`
	Image           string   `json:"image"`
	Rating          float64  `json:"rating"`
	Benefits        []string `json:"benefits"`
	Sales           int      `json:"sales"`

	Reviews []domain.Review `json:"reviews"`
}

// EffectivePrice returns the price a shopper pays: the discounted price when
// one is set, otherwise the plain price.
func (r RawProduct) EffectivePrice() int64 {
	if r.DiscountedPrice > 0 {
		return r.DiscountedPrice
	}
	return r.Price
}

// Normalize converts a raw row into a well-formed product. The result always
// has non-nil slices, a non-empty name and image, and a single effective
// price (discounted wins over plain). Normalize never fails and is
// idempotent: re-normalizing a normalized product changes nothing.
func Normalize(raw RawProduct) domain.Product {
	p := domain.Product{
		ID:            raw.ID,
		Name:          raw.Name,
		Category:      raw.Category,
		Subcategory:   raw.Subcategory,
		Price:         raw.EffectivePrice(),
		OriginalPrice: raw.OriginalPrice,
		Description:   raw.Description,
		Image:         raw.Image,
		Rating:        raw.Rating,
		Benefits:      raw.Benefits,
		Sales:         raw.Sales,
		Reviews:       raw.Reviews,
	}

	if p.Name == "" {
		p.Name = DefaultProductName
	}
	if p.Image == "" {
		p.Image = DefaultProductImage
	}
	if p.Benefits == nil {
		p.Benefits = []string{}
	}
	if p.Reviews == nil {
		p.Reviews = []domain.Review{}
	}

	return p
}

// NormalizeAll normalizes a batch of raw rows.
func NormalizeAll(rows []RawProduct) []domain.Product {
	products := make([]domain.Product, len(rows))
	for i, row := range rows {
		products[i] = Normalize(row)
	}
	return products
}

// Raw converts a product back into the row shape used for remote writes.
func Raw(p domain.Product) RawProduct {
	return RawProduct{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		Subcategory:   p.Subcategory,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Description:   p.Description,
		Image:         p.Image,
		Rating:        p.Rating,
		Benefits:      p.Benefits,
		Sales:         p.Sales,
		Reviews:       p.Reviews,
	}
}

// RawAll converts a batch of products into rows for remote writes.
func RawAll(products []domain.Product) []RawProduct {
	rows := make([]RawProduct, len(products))
	for i, p := range products {
		rows[i] = Raw(p)
	}
	return rows
}

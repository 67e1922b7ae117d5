package domain

// Product category constants.
const (
	CategoryLips     = "Lips"
	CategoryEyes     = "Eyes"
	CategoryFace     = "Face"
	CategorySkincare = "Skincare"
)

// CategoryAll is the filter value that matches every category.
const CategoryAll = "All"

// Product represents a product in the catalog.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Price         int64    `json:"price"`
	OriginalPrice *int64   `json:"original_price,omitempty"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Rating        float64  `json:"rating"`
	Benefits      []string `json:"benefits"`
	Sales         int      `json:"sales"`
	Reviews       []Review `json:"reviews"`
}

// Review represents a customer review attached to a product. A review rating
// is a whole star count, unlike the product's aggregate rating.
type Review struct {
	ID           string `json:"id"`
	UserName     string `json:"user_name"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	Date         string `json:"date"`
	HelpfulCount int    `json:"helpful_count"`
	Verified     bool   `json:"verified"`
}

// ProductDraft holds the admin-supplied fields for a new or edited product.
type ProductDraft struct {
	Name          string   `json:"name" validate:"required"`
	Category      string   `json:"category" validate:"required,oneof=Lips Eyes Face Skincare"`
	Subcategory   string   `json:"subcategory"`
	Price         int64    `json:"price" validate:"gt=0"`
	OriginalPrice *int64   `json:"original_price" validate:"omitempty,gt=0"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Benefits      []string `json:"benefits"`
}

// ReviewInput holds the customer-supplied fields for a new review.
type ReviewInput struct {
	UserName string `json:"user_name" validate:"required"`
	Rating   int    `json:"rating" validate:"gte=1,lte=5"`
	Comment  string `json:"comment" validate:"required"`
}

// ValidCategories returns the set of valid product categories.
func ValidCategories() []string {
	return []string{CategoryLips, CategoryEyes, CategoryFace, CategorySkincare}
}

// IsValidCategory checks whether the given category string is a valid product category.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories() {
		if c == category {
			return true
		}
	}
	return false
}

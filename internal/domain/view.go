package domain

// View constants for the storefront navigation state machine.
const (
	ViewHome           = "HOME"
	ViewShop           = "SHOP"
	ViewAdvisor        = "ADVISOR"
	ViewProductDetails = "PRODUCT_DETAILS"
	ViewAdminLogin     = "ADMIN_LOGIN"
	ViewAdminDashboard = "ADMIN_DASHBOARD"
)

// ViewState holds the per-session navigation state.
type ViewState struct {
	View              string `json:"view"`
	CategoryFilter    string `json:"category_filter"`
	SearchQuery       string `json:"search_query"`
	SelectedProductID string `json:"selected_product_id,omitempty"`
}

// NewViewState returns the initial navigation state: the home view with no
// active search and the catch-all category filter.
func NewViewState() ViewState {
	return ViewState{
		View:           ViewHome,
		CategoryFilter: CategoryAll,
	}
}

// Navigate moves to the given view. Selecting a non-detail view clears the
// product selection.
func (s *ViewState) Navigate(view string) {
	s.View = view
	if view != ViewProductDetails {
		s.SelectedProductID = ""
	}
}

// SelectProduct records the product selection and moves to the detail view.
// The product itself is re-resolved against the catalog on read, so a stale
// snapshot is never shown.
func (s *ViewState) SelectProduct(productID string) {
	s.SelectedProductID = productID
	s.View = ViewProductDetails
}

// ApplySearch sets the search query. A non-empty query entered outside the
// shop view moves the session to the shop and resets the category filter.
func (s *ViewState) ApplySearch(query string) {
	s.SearchQuery = query
	if query != "" && s.View != ViewShop {
		s.View = ViewShop
		s.CategoryFilter = CategoryAll
		s.SelectedProductID = ""
	}
}

// SetCategoryFilter sets the active category filter for the shop view.
func (s *ViewState) SetCategoryFilter(category string) {
	s.CategoryFilter = category
}

// ValidViews returns the set of valid view names.
func ValidViews() []string {
	return []string{ViewHome, ViewShop, ViewAdvisor, ViewProductDetails, ViewAdminLogin, ViewAdminDashboard}
}

// IsValidView checks whether the given view name is valid.
func IsValidView(view string) bool {
	for _, v := range ValidViews() {
		if v == view {
			return true
		}
	}
	return false
}

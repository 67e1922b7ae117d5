package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/rumibeauty/storefront/pkg/httputil"
	"github.com/rumibeauty/storefront/pkg/logger"
	"github.com/rumibeauty/storefront/pkg/validator"

	"github.com/rumibeauty/storefront/internal/admin"
	"github.com/rumibeauty/storefront/internal/catalog"
	"github.com/rumibeauty/storefront/internal/domain"
	"github.com/rumibeauty/storefront/internal/ledger"
	"github.com/rumibeauty/storefront/internal/session"
)

// ViewHandler handles HTTP requests for the per-session navigation state.
type ViewHandler struct {
	store   session.Store
	catalog *catalog.Service
	ledger  *ledger.Ledger
	auth    *admin.Authenticator
	logger  *slog.Logger
}

// NewViewHandler creates a new view HTTP handler.
func NewViewHandler(store session.Store, cat *catalog.Service, led *ledger.Ledger, auth *admin.Authenticator, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		store:   store,
		catalog: cat,
		ledger:  led,
		auth:    auth,
		logger:  logger,
	}
}

// ViewPayload is the navigation state plus the data the view needs: the
// product list for the active filter or search and the selected product,
// re-resolved against the current catalog.
type ViewPayload struct {
	State             domain.ViewState `json:"state"`
	Products          []domain.Product `json:"products"`
	SelectedProduct   *domain.Product  `json:"selected_product,omitempty"`
	SelectedPurchased bool             `json:"selected_purchased"`
}

// NavigateRequest is the JSON request body for an explicit view change.
type NavigateRequest struct {
	View string `json:"view" validate:"required"`
}

// SelectProductRequest is the JSON request body for opening a product detail.
type SelectProductRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// SearchRequest is the JSON request body for a search query change.
type SearchRequest struct {
	Query string `json:"query"`
}

// CategoryRequest is the JSON request body for a category filter change.
type CategoryRequest struct {
	Category string `json:"category" validate:"required"`
}

func (h *ViewHandler) payload(r *http.Request, state domain.ViewState) ViewPayload {
	var products []domain.Product
	if strings.TrimSpace(state.SearchQuery) != "" {
		// The search narrows the active category filter, it does not replace it.
		results := h.catalog.Search(state.SearchQuery)
		products = make([]domain.Product, 0, len(results))
		for _, p := range results {
			if state.CategoryFilter == domain.CategoryAll || p.Category == state.CategoryFilter {
				products = append(products, p)
			}
		}
	} else {
		products = h.catalog.FilterByCategory(state.CategoryFilter)
	}

	out := ViewPayload{State: state, Products: products}

	if state.SelectedProductID != "" {
		if product, err := h.catalog.Get(state.SelectedProductID); err == nil {
			out.SelectedProduct = &product
			sessionID := logger.SessionIDFromContext(r.Context())
			purchased, err := h.ledger.IsPurchased(r.Context(), sessionID, product.ID)
			if err == nil {
				out.SelectedPurchased = purchased
			}
		}
	}

	return out
}

func (h *ViewHandler) state(w http.ResponseWriter, r *http.Request) (domain.ViewState, string, bool) {
	sessionID := logger.SessionIDFromContext(r.Context())
	state, err := h.store.ViewState(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return domain.ViewState{}, "", false
	}
	return state, sessionID, true
}

func (h *ViewHandler) save(w http.ResponseWriter, r *http.Request, sessionID string, state domain.ViewState) {
	if err := h.store.SaveViewState(r.Context(), sessionID, state); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.payload(r, state)})
}

// GetView handles GET /api/v1/view.
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.state(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.payload(r, state)})
}

// Navigate handles POST /api/v1/view/navigate. The admin dashboard is only
// reachable with a valid admin session token.
func (h *ViewHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if !domain.IsValidView(req.View) {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "unknown view"},
		})
		return
	}

	if req.View == domain.ViewAdminDashboard {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "admin login required"},
			})
			return
		}
		if _, err := h.auth.Validate(token); err != nil {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "admin login required"},
			})
			return
		}
	}

	state, sessionID, ok := h.state(w, r)
	if !ok {
		return
	}
	state.Navigate(req.View)
	h.save(w, r, sessionID, state)
}

// SelectProduct handles POST /api/v1/view/select-product. The product must
// exist in the current catalog.
func (h *ViewHandler) SelectProduct(w http.ResponseWriter, r *http.Request) {
	var req SelectProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if _, err := h.catalog.Get(req.ProductID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	state, sessionID, ok := h.state(w, r)
	if !ok {
		return
	}
	state.SelectProduct(req.ProductID)
	h.save(w, r, sessionID, state)
}

// Search handles POST /api/v1/view/search.
func (h *ViewHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	state, sessionID, ok := h.state(w, r)
	if !ok {
		return
	}
	state.ApplySearch(req.Query)
	h.save(w, r, sessionID, state)
}

// SetCategory handles POST /api/v1/view/category.
func (h *ViewHandler) SetCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}
	if req.Category != domain.CategoryAll && !domain.IsValidCategory(req.Category) {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "unknown category"},
		})
		return
	}

	state, sessionID, ok := h.state(w, r)
	if !ok {
		return
	}
	state.SetCategoryFilter(req.Category)
	h.save(w, r, sessionID, state)
}

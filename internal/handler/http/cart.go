package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rumibeauty/storefront/pkg/httputil"
	"github.com/rumibeauty/storefront/pkg/logger"
	"github.com/rumibeauty/storefront/pkg/validator"

	"github.com/rumibeauty/storefront/internal/cart"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *cart.Service
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *cart.Service, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// AddToCartRequest is the JSON request body for adding a product to the cart.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// UpdateQuantityRequest is the JSON request body for adjusting a line quantity.
type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Get(r.Context(), logger.SessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: snap})
}

// AddToCart handles POST /api/v1/cart/items.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	snap, err := h.service.Add(r.Context(), logger.SessionIDFromContext(r.Context()), req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: snap})
}

// UpdateQuantity handles PATCH /api/v1/cart/items/{productId}.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	snap, err := h.service.UpdateQuantity(r.Context(), logger.SessionIDFromContext(r.Context()), chi.URLParam(r, "productId"), req.Delta)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: snap})
}

// RemoveFromCart handles DELETE /api/v1/cart/items/{productId}.
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Remove(r.Context(), logger.SessionIDFromContext(r.Context()), chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: snap})
}

// Checkout handles POST /api/v1/cart/checkout.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Checkout(r.Context(), logger.SessionIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

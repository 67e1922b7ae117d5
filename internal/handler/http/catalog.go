package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rumibeauty/storefront/pkg/httputil"
	"github.com/rumibeauty/storefront/pkg/logger"
	"github.com/rumibeauty/storefront/pkg/validator"

	"github.com/rumibeauty/storefront/internal/catalog"
	"github.com/rumibeauty/storefront/internal/domain"
	"github.com/rumibeauty/storefront/internal/storage"
)

// maxUploadBytes bounds product image uploads.
const maxUploadBytes = 5 << 20

// CatalogHandler handles HTTP requests for catalog endpoints.
type CatalogHandler struct {
	service        *catalog.Service
	store          storage.ObjectStore
	whatsAppNumber string
	uploadBucket   string
	logger         *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *catalog.Service, store storage.ObjectStore, whatsAppNumber, uploadBucket string, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:        svc,
		store:          store,
		whatsAppNumber: whatsAppNumber,
		uploadBucket:   uploadBucket,
		logger:         logger,
	}
}

// --- Request DTOs ---

// ProductRequest is the JSON request body for creating or updating a product.
type ProductRequest struct {
	Name          string   `json:"name" validate:"required,min=1,max=200"`
	Category      string   `json:"category" validate:"required,oneof=Lips Eyes Face Skincare"`
	Subcategory   string   `json:"subcategory" validate:"max=100"`
	Price         int64    `json:"price" validate:"required,gt=0"`
	OriginalPrice *int64   `json:"original_price" validate:"omitempty,gt=0"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Benefits      []string `json:"benefits"`
}

func (req ProductRequest) draft() domain.ProductDraft {
	return domain.ProductDraft{
		Name:          req.Name,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Description:   req.Description,
		Image:         req.Image,
		Benefits:      req.Benefits,
	}
}

// CreateReviewRequest is the JSON request body for submitting a review.
type CreateReviewRequest struct {
	UserName string `json:"user_name" validate:"required,min=1,max=100"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment" validate:"required,min=1,max=2000"`
}

// --- Handlers ---

// ListProducts handles GET /api/v1/products. A search query takes precedence
// over a category filter.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var products []domain.Product
	switch {
	case r.URL.Query().Get("search") != "":
		products = h.service.Search(r.URL.Query().Get("search"))
	case r.URL.Query().Get("category") != "":
		products = h.service.FilterByCategory(r.URL.Query().Get("category"))
	default:
		products = h.service.List()
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// BestSellers handles GET /api/v1/products/best-sellers.
func (h *CatalogHandler) BestSellers(w http.ResponseWriter, r *http.Request) {
	n := 4
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 50 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "limit must be an integer between 1 and 50"},
			})
			return
		}
		n = parsed
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.BestSellers(n)})
}

// Subcategories handles GET /api/v1/products/subcategories.
func (h *CatalogHandler) Subcategories(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = domain.CategoryAll
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Subcategories(category)})
}

// GetProduct handles GET /api/v1/products/{id}.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// BuyLink handles GET /api/v1/products/{id}/buy-link.
func (h *CatalogHandler) BuyLink(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{
		"url": catalog.BuyLink(h.whatsAppNumber, product),
	}})
}

// CreateReview handles POST /api/v1/products/{id}/reviews.
func (h *CatalogHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sessionID := logger.SessionIDFromContext(r.Context())
	review, err := h.service.SubmitReview(r.Context(), sessionID, chi.URLParam(r, "id"), domain.ReviewInput{
		UserName: req.UserName,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: review})
}

// CreateProduct handles POST /api/v1/admin/products.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.service.Add(r.Context(), req.draft())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UpdateProduct handles PUT /api/v1/admin/products/{id}. The request fields
// overlay the stored product; sales, rating and reviews are preserved.
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	existing, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	existing.Name = req.Name
	existing.Category = req.Category
	existing.Subcategory = req.Subcategory
	existing.Price = req.Price
	existing.OriginalPrice = req.OriginalPrice
	existing.Description = req.Description
	existing.Image = req.Image
	existing.Benefits = req.Benefits

	product, err := h.service.Update(r.Context(), existing)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// DeleteProduct handles DELETE /api/v1/admin/products/{id}.
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ImportProducts handles POST /api/v1/admin/products/import. The payload must
// be a JSON array of products; the whole batch is validated before any
// product is created.
func (h *CatalogHandler) ImportProducts(w http.ResponseWriter, r *http.Request) {
	var reqs []ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "import payload must be a JSON array of products"},
		})
		return
	}

	drafts := make([]domain.ProductDraft, len(reqs))
	for i, req := range reqs {
		if err := validator.Validate(req); err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: fmt.Sprintf("product %d: %s", i, err.Error())},
			})
			return
		}
		drafts[i] = req.draft()
	}

	products, err := h.service.BulkAdd(r.Context(), drafts)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]any{
		"imported": len(products),
		"products": products,
	}})
}

// UploadImage handles POST /api/v1/admin/uploads. The raw body is stored in
// the image bucket and the public URL is returned for use in product forms.
func (h *CatalogHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if len(data) == 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "upload body must not be empty"},
		})
		return
	}
	if len(data) > maxUploadBytes {
		httputil.WriteJSON(w, http.StatusRequestEntityTooLarge, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "PAYLOAD_TOO_LARGE", Message: "image must be 5MB or smaller"},
		})
		return
	}

	key := uuid.New().String()
	url, err := h.store.Upload(r.Context(), h.uploadBucket, key, contentType, data)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{"url": url}})
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumibeauty/storefront/pkg/health"
	"github.com/rumibeauty/storefront/pkg/httputil"
	"github.com/rumibeauty/storefront/pkg/middleware"

	"github.com/rumibeauty/storefront/internal/admin"
	"github.com/rumibeauty/storefront/internal/advisor"
	"github.com/rumibeauty/storefront/internal/cart"
	"github.com/rumibeauty/storefront/internal/catalog"
	"github.com/rumibeauty/storefront/internal/event"
	"github.com/rumibeauty/storefront/internal/gateway"
	"github.com/rumibeauty/storefront/internal/ledger"
	"github.com/rumibeauty/storefront/internal/notice"
	"github.com/rumibeauty/storefront/internal/session"
	"github.com/rumibeauty/storefront/internal/storage"
)

// ============================================================================
// Test harness
// ============================================================================

const (
	testAdminEmail    = "admin@rumimakeup.com"
	testAdminPassword = "glow-up-2026"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// testRouter wires the production route layout over memory backends.
func testRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := testLogger()

	hash, err := admin.HashPassword(testAdminPassword)
	require.NoError(t, err)
	auth := admin.NewAuthenticator(testAdminEmail, hash, "test-secret", time.Hour)

	sessions := session.NewMemoryStore()
	led := ledger.New(sessions)
	notices := notice.NewRecorder(20)

	catalogService := catalog.NewService(gateway.NewMemoryGateway(), notices, event.Nop{}, led, logger)
	catalogService.Load(context.Background())

	cartService := cart.NewService(sessions, catalogService, event.Nop{}, logger)
	advisorService := advisor.NewService(advisor.NewScriptedClient("Try the Velvet Rose lipstick"), catalogService, logger)

	return NewRouter(RouterConfig{
		Catalog:        catalogService,
		Cart:           cartService,
		Advisor:        advisorService,
		Auth:           auth,
		Sessions:       sessions,
		Ledger:         led,
		Notices:        notices,
		Objects:        storage.NewMemoryStore(),
		Health:         health.NewHandler(),
		CORS:           middleware.DefaultCORSConfig(),
		WhatsAppNumber: "923315976504",
		UploadBucket:   "product-images",
		AdvisorRPS:     100,
		AdvisorBurst:   100,
		Logger:         logger,
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, sessionID string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var resp struct {
		Data  json.RawMessage         `json:"data"`
		Error *httputil.ErrorResponse `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Nil(t, resp.Error, "unexpected error response")
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *httputil.ErrorResponse {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Error)
	return resp.Error
}

func adminToken(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Token string `json:"token"`
	}
	decodeData(t, rec, &out)
	return out.Token
}

// ============================================================================
// Session middleware
// ============================================================================

func TestRouter_CartRequiresSession(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/cart", "", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_SESSION", decodeError(t, rec).Code)
}

func TestRouter_CartRejectsNonJSONBody(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", bytes.NewBufferString("product_id=p1"))
	req.Header.Set("X-Session-ID", "sess-1")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

// ============================================================================
// Product endpoints
// ============================================================================

func TestRouter_ListProducts(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/products", "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []json.RawMessage
	decodeData(t, rec, &products)
	assert.Len(t, products, 10)
}

func TestRouter_SearchTakesPrecedenceOverCategory(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/products?search=serum&category=Lips", "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []struct {
		Name string `json:"name"`
	}
	decodeData(t, rec, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Radiance Renewal Serum", products[0].Name)
}

func TestRouter_BestSellersLimitValidated(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/products/best-sellers?limit=0", "", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/products/best-sellers?limit=2", "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []json.RawMessage
	decodeData(t, rec, &products)
	assert.Len(t, products, 2)
}

func TestRouter_BuyLink(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/products/p1/buy-link", "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		URL string `json:"url"`
	}
	decodeData(t, rec, &out)
	assert.Contains(t, out.URL, "https://wa.me/923315976504?text=")
}

func TestRouter_GetUnknownProductIs404(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/products/nope", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ============================================================================
// Cart and checkout flow
// ============================================================================

func TestRouter_CartCheckoutReviewFlow(t *testing.T) {
	router := testRouter(t)

	// Review before purchase is rejected.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/products/p1/reviews", "sess-1", map[string]any{
		"user_name": "Mina", "rating": 5, "comment": "Lovely",
	}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Add to cart, twice bumps quantity.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "sess-1", map[string]string{"product_id": "p1"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "sess-1", map[string]string{"product_id": "p1"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap cart.Snapshot
	decodeData(t, rec, &snap)
	require.Len(t, snap.Cart.Lines, 1)
	assert.Equal(t, 2, snap.Cart.Lines[0].Quantity)
	assert.True(t, snap.CartOpen)

	// Checkout.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart/checkout", "sess-1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result cart.CheckoutResult
	decodeData(t, rec, &result)
	assert.Equal(t, []string{"p1"}, result.PurchasedProductIDs)
	assert.Equal(t, cart.CheckoutMessage, result.Message)
	assert.False(t, result.CartOpen)

	// The purchase unlocks a verified review.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/products/p1/reviews", "sess-1", map[string]any{
		"user_name": "Mina", "rating": 5, "comment": "Lovely",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var review struct {
		Verified bool `json:"verified"`
	}
	decodeData(t, rec, &review)
	assert.True(t, review.Verified)

	// A different session is still locked out.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/products/p1/reviews", "sess-2", map[string]any{
		"user_name": "Zara", "rating": 4, "comment": "Nice",
	}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Ratings are whole stars.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/products/p1/reviews", "sess-1", map[string]any{
		"user_name": "Mina", "rating": 4.5, "comment": "Almost perfect",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CheckoutEmptyCartRejected(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/checkout", "sess-1", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// View endpoints
// ============================================================================

func TestRouter_SearchMovesViewToShop(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/view/search", "sess-1", map[string]string{"query": "serum"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload ViewPayload
	decodeData(t, rec, &payload)
	assert.Equal(t, "SHOP", payload.State.View)
	assert.Equal(t, "serum", payload.State.SearchQuery)
	assert.Equal(t, "All", payload.State.CategoryFilter)
	require.Len(t, payload.Products, 1)
	assert.Equal(t, "Radiance Renewal Serum", payload.Products[0].Name)
}

func TestRouter_SelectProductResolvesDetails(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/view/select-product", "sess-1", map[string]string{"product_id": "p1"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload ViewPayload
	decodeData(t, rec, &payload)
	assert.Equal(t, "PRODUCT_DETAILS", payload.State.View)
	require.NotNil(t, payload.SelectedProduct)
	assert.Equal(t, "p1", payload.SelectedProduct.ID)
	assert.False(t, payload.SelectedPurchased)
}

func TestRouter_SelectUnknownProductIs404(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/view/select-product", "sess-1", map[string]string{"product_id": "nope"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_NavigateToAdminDashboardRequiresToken(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/view/navigate", "sess-1", map[string]string{"view": "ADMIN_DASHBOARD"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := adminToken(t, router)
	rec = doJSON(t, router, http.MethodPost, "/api/v1/view/navigate", "sess-1", map[string]string{"view": "ADMIN_DASHBOARD"}, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var payload ViewPayload
	decodeData(t, rec, &payload)
	assert.Equal(t, "ADMIN_DASHBOARD", payload.State.View)
}

func TestRouter_NavigateUnknownViewRejected(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/view/navigate", "sess-1", map[string]string{"view": "BASEMENT"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CategoryFilterValidated(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/view/category", "sess-1", map[string]string{"category": "Nails"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/view/category", "sess-1", map[string]string{"category": "Lips"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload ViewPayload
	decodeData(t, rec, &payload)
	assert.Equal(t, "Lips", payload.State.CategoryFilter)
	assert.Len(t, payload.Products, 2)
}

func TestRouter_SearchInShopNarrowsActiveCategoryFilter(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/view/navigate", "sess-1", map[string]string{"view": "SHOP"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/api/v1/view/category", "sess-1", map[string]string{"category": "Lips"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// A Skincare-only match stays hidden while the Lips filter is active.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/view/search", "sess-1", map[string]string{"query": "serum"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload ViewPayload
	decodeData(t, rec, &payload)
	assert.Equal(t, "Lips", payload.State.CategoryFilter)
	assert.Empty(t, payload.Products)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/view/search", "sess-1", map[string]string{"query": "lipstick"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	decodeData(t, rec, &payload)
	require.Len(t, payload.Products, 1)
	assert.Equal(t, "Velvet Rose Matte Lipstick", payload.Products[0].Name)
}

// ============================================================================
// Admin endpoints
// ============================================================================

func TestRouter_AdminLoginBadCredentials(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"email": testAdminEmail, "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/products", "", map[string]any{
		"name": "Cloud Tint", "category": "Lips", "price": 2800,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/products", "", map[string]any{
		"name": "Cloud Tint", "category": "Lips", "price": 2800,
	}, map[string]string{"Authorization": "Bearer bogus"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminProductLifecycle(t *testing.T) {
	router := testRouter(t)
	token := adminToken(t, router)
	authHeader := map[string]string{"Authorization": "Bearer " + token}

	// Create.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/products", "", map[string]any{
		"name": "Cloud Tint", "category": "Lips", "price": 2800,
	}, authHeader)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &created)
	require.NotEmpty(t, created.ID)

	// Update preserves sales, rating and reviews.
	rec = doJSON(t, router, http.MethodPut, "/api/v1/admin/products/p1", "", map[string]any{
		"name": "Velvet Rose Matte Lipstick v2", "category": "Lips", "price": 4100,
	}, authHeader)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated struct {
		Name    string            `json:"name"`
		Sales   int               `json:"sales"`
		Reviews []json.RawMessage `json:"reviews"`
	}
	decodeData(t, rec, &updated)
	assert.Equal(t, "Velvet Rose Matte Lipstick v2", updated.Name)
	assert.Equal(t, 1500, updated.Sales)
	assert.Len(t, updated.Reviews, 2)

	// Delete.
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/admin/products/"+created.ID, "", nil, authHeader)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/products/"+created.ID, "", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ImportRejectsNonArrayPayload(t *testing.T) {
	router := testRouter(t)
	token := adminToken(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/products/import", "", map[string]any{
		"name": "Cloud Tint", "category": "Lips", "price": 2800,
	}, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decodeError(t, rec).Code)
}

func TestRouter_ImportCreatesBatch(t *testing.T) {
	router := testRouter(t)
	token := adminToken(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/products/import", "", []map[string]any{
		{"name": "Cloud Tint", "category": "Lips", "price": 2800},
		{"name": "Dew Balm", "category": "Skincare", "price": 3100},
	}, map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusCreated, rec.Code)

	var out struct {
		Imported int               `json:"imported"`
		Products []json.RawMessage `json:"products"`
	}
	decodeData(t, rec, &out)
	assert.Equal(t, 2, out.Imported)
	assert.Len(t, out.Products, 2)
}

func TestRouter_UploadImage(t *testing.T) {
	router := testRouter(t)
	token := adminToken(t, router)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", bytes.NewReader([]byte("png-bytes")))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "image/png")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var out struct {
		URL string `json:"url"`
	}
	decodeData(t, rec, &out)
	assert.Contains(t, out.URL, "memory://product-images/")
}

func TestRouter_UploadEmptyBodyRejected(t *testing.T) {
	router := testRouter(t)
	token := adminToken(t, router)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", bytes.NewReader(nil))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// Advisor, notices, about
// ============================================================================

func TestRouter_AdvisorTranscriptAndSend(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/advisor/messages", "sess-1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var transcript []struct {
		Role string `json:"role"`
		Text string `json:"text"`
	}
	decodeData(t, rec, &transcript)
	require.Len(t, transcript, 1)
	assert.Equal(t, advisor.Greeting, transcript[0].Text)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/advisor/messages", "sess-1", map[string]string{"text": "what lipstick?"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
	assert.Contains(t, rec.Body.String(), "event: snapshot")
	assert.Contains(t, rec.Body.String(), "event: done")
	assert.Contains(t, rec.Body.String(), "Try the Velvet Rose lipstick")
}

func TestRouter_NoticesDrainOnce(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/notices", "sess-1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var notices []json.RawMessage
	decodeData(t, rec, &notices)
	assert.Empty(t, notices)
}

func TestRouter_AboutSections(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/about/story", "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/about/unknown", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ============================================================================
// Operational endpoints
// ============================================================================

func TestRouter_HealthEndpoints(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", "", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/health/ready", "", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

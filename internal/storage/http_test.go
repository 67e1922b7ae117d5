package storage

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/rumibeauty/storefront/pkg/errors"
	"github.com/rumibeauty/storefront/pkg/httpclient"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newHTTPStore(baseURL string) *HTTPStore {
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	cb := httpclient.NewCircuitBreakerClient(
		httpclient.New(cfg),
		httpclient.DefaultCircuitBreakerConfig("object-store-test"),
		newTestLogger(),
	)
	return NewHTTPStore(cb, baseURL)
}

func TestHTTPStore_UploadReturnsServerURL(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"url":"https://cdn.rumimakeup.com/product-images/key-1.png"}`))
	}))
	defer srv.Close()

	store := newHTTPStore(srv.URL)
	url, err := store.Upload(context.Background(), "product-images", "key-1.png", "image/png", []byte("png-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.rumimakeup.com/product-images/key-1.png", url)
	assert.Equal(t, "/object/product-images/key-1.png", gotPath)
	assert.Equal(t, "image/png", gotContentType)
	assert.Equal(t, []byte("png-bytes"), gotBody)
}

func TestHTTPStore_UploadEmptyBodyFallsBackToPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := newHTTPStore(srv.URL)
	url, err := store.Upload(context.Background(), "product-images", "key-2.png", "image/png", []byte("data"))
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/object/product-images/key-2.png", url)
}

func TestHTTPStore_UploadRejectedStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"PERMISSION_DENIED","message":"policy"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	store := newHTTPStore(srv.URL)
	_, err := store.Upload(context.Background(), "product-images", "key-3.png", "image/png", []byte("data"))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Contains(t, err.Error(), "storage")
}

func TestMemoryStore_UploadAndGet(t *testing.T) {
	store := NewMemoryStore()

	url, err := store.Upload(context.Background(), "product-images", "k", "image/png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "memory://product-images/k", url)

	data, ok := store.Get("product-images", "k")
	require.True(t, ok)
	assert.Equal(t, []byte("data"), data)
}

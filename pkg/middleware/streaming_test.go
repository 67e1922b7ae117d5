package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFlusherWriter implements both http.ResponseWriter and http.Flusher.
type mockFlusherWriter struct {
	http.ResponseWriter
	flushed bool
}

func (m *mockFlusherWriter) Flush() {
	m.flushed = true
}

// minimalResponseWriter is a bare http.ResponseWriter without Flusher.
type minimalResponseWriter struct {
	header http.Header
}

func (m *minimalResponseWriter) Header() http.Header {
	if m.header == nil {
		m.header = make(http.Header)
	}
	return m.header
}

func (m *minimalResponseWriter) Write(b []byte) (int, error) {
	return len(b), nil
}

func (m *minimalResponseWriter) WriteHeader(int) {}

func TestResponseWriter_Flush_DelegatesToUnderlying(t *testing.T) {
	mock := &mockFlusherWriter{ResponseWriter: httptest.NewRecorder()}
	rw := &responseWriter{ResponseWriter: mock, statusCode: http.StatusOK}

	rw.Flush()
	assert.True(t, mock.flushed, "Flush should delegate to underlying ResponseWriter")
}

func TestResponseWriter_Flush_NoOpWhenNotSupported(t *testing.T) {
	rw := &responseWriter{ResponseWriter: &minimalResponseWriter{}, statusCode: http.StatusOK}

	// Should not panic.
	rw.Flush()
}

func TestMetricsResponseWriter_Flush_DelegatesToUnderlying(t *testing.T) {
	mock := &mockFlusherWriter{ResponseWriter: httptest.NewRecorder()}
	rw := &metricsResponseWriter{ResponseWriter: mock, statusCode: http.StatusOK}

	rw.Flush()
	assert.True(t, mock.flushed, "Flush should delegate to underlying ResponseWriter")
}

func TestTracingResponseWriter_Flush_DelegatesToUnderlying(t *testing.T) {
	mock := &mockFlusherWriter{ResponseWriter: httptest.NewRecorder()}
	rw := &tracingResponseWriter{ResponseWriter: mock, statusCode: http.StatusOK}

	rw.Flush()
	assert.True(t, mock.flushed, "Flush should delegate to underlying ResponseWriter")
}

// Streaming handlers type-assert http.Flusher on the writer they receive, so
// every wrapping middleware must keep the capability visible.
func TestRequestLogging_PreservesFlusher(t *testing.T) {
	l := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	var sawFlusher bool
	handler := RequestLogging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawFlusher = w.(http.Flusher)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/stream", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, sawFlusher, "wrapped writer should still satisfy http.Flusher")
}

func TestPrometheusMetrics_PreservesFlusher(t *testing.T) {
	var sawFlusher bool
	r := chi.NewRouter()
	r.Use(PrometheusMetrics("stream-svc"))
	r.Get("/stream", func(w http.ResponseWriter, _ *http.Request) {
		_, sawFlusher = w.(http.Flusher)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/stream", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.True(t, sawFlusher, "wrapped writer should still satisfy http.Flusher")
}

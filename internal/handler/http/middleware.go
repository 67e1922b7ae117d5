package http

import (
	"net/http"
	"strings"

	"github.com/rumibeauty/storefront/pkg/httputil"
	"github.com/rumibeauty/storefront/pkg/logger"

	"github.com/rumibeauty/storefront/internal/admin"
)

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSession rejects requests without an X-Session-ID header. Session
// state (cart, ledger, view, transcripts) is keyed by this header.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if logger.SessionIDFromContext(r.Context()) == "" {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "MISSING_SESSION", Message: "X-Session-ID header is required"},
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin validates the Bearer session token on admin routes.
func RequireAdmin(auth *admin.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "missing bearer token"},
				})
				return
			}

			if _, err := auth.Validate(token); err != nil {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid session token"},
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

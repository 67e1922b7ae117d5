package http

import (
	"log/slog"
	"net/http"

	"github.com/rumibeauty/storefront/pkg/httputil"
	"github.com/rumibeauty/storefront/pkg/validator"

	"github.com/rumibeauty/storefront/internal/admin"
)

// AdminHandler handles HTTP requests for admin authentication.
type AdminHandler struct {
	auth   *admin.Authenticator
	logger *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(auth *admin.Authenticator, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		auth:   auth,
		logger: logger,
	}
}

// LoginRequest is the JSON request body for an admin login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the admin session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/v1/admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: LoginResponse{Token: token}})
}

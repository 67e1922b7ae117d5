package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rumibeauty/storefront/pkg/httputil"
	"github.com/rumibeauty/storefront/pkg/logger"
	"github.com/rumibeauty/storefront/pkg/validator"

	"github.com/rumibeauty/storefront/internal/advisor"
)

// AdvisorHandler handles HTTP requests for the AI advisory endpoints.
type AdvisorHandler struct {
	service *advisor.Service
	logger  *slog.Logger
}

// NewAdvisorHandler creates a new advisor HTTP handler.
func NewAdvisorHandler(svc *advisor.Service, logger *slog.Logger) *AdvisorHandler {
	return &AdvisorHandler{
		service: svc,
		logger:  logger,
	}
}

// SendMessageRequest is the JSON request body for an advisory message.
type SendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// GetTranscript handles GET /api/v1/advisor/messages.
func (h *AdvisorHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := logger.SessionIDFromContext(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Transcript(sessionID)})
}

// SendMessage handles POST /api/v1/advisor/messages. The reply streams back
// as server-sent events: each "snapshot" event carries the cumulative reply
// text so far, and the final "done" event carries the complete message.
// Closing the connection cancels the upstream model stream.
func (h *AdvisorHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.WriteJSON(w, http.StatusInternalServerError, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INTERNAL", Message: "streaming unsupported"},
		})
		return
	}

	sessionID := logger.SessionIDFromContext(r.Context())

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	started := false
	final, err := h.service.Send(r.Context(), sessionID, req.Text, func(snapshot string) {
		started = true
		writeEvent(w, "snapshot", map[string]string{"text": snapshot})
		flusher.Flush()
	})
	if err != nil {
		if !started {
			// Nothing streamed yet, so a regular JSON error is still possible.
			w.Header().Del("Content-Type")
			httputil.WriteError(w, r, err, h.logger)
			return
		}
		writeEvent(w, "error", map[string]string{"message": "stream aborted"})
		flusher.Flush()
		return
	}

	writeEvent(w, "done", final)
	flusher.Flush()
}

func writeEvent(w http.ResponseWriter, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}

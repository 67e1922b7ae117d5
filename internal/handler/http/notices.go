package http

import (
	"net/http"

	"github.com/rumibeauty/storefront/pkg/httputil"
	"github.com/rumibeauty/storefront/pkg/logger"

	"github.com/rumibeauty/storefront/internal/notice"
)

// NoticeHandler handles HTTP requests for per-session notices.
type NoticeHandler struct {
	recorder *notice.Recorder
}

// NewNoticeHandler creates a new notice HTTP handler.
func NewNoticeHandler(recorder *notice.Recorder) *NoticeHandler {
	return &NoticeHandler{recorder: recorder}
}

// GetNotices handles GET /api/v1/notices. Reading a session's notices drains
// them; each notice is delivered once.
func (h *NoticeHandler) GetNotices(w http.ResponseWriter, r *http.Request) {
	sessionID := logger.SessionIDFromContext(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.recorder.Drain(sessionID)})
}

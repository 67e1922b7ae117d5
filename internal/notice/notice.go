// Package notice collects transient user-facing alerts, one queue per
// session. A notice is shown once: reading a session's notices drains them.
package notice

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rumibeauty/storefront/pkg/logger"
)

// Notice is a single user-facing alert.
type Notice struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Recorder keeps per-session notice queues in memory. Notices are transient
// by nature, so losing them on restart is acceptable.
type Recorder struct {
	mu     sync.Mutex
	queues map[string][]Notice
	maxPer int
	now    func() time.Time
}

// NewRecorder creates an empty recorder. Each session keeps at most maxPer
// undelivered notices; older ones are dropped first.
func NewRecorder(maxPer int) *Recorder {
	if maxPer <= 0 {
		maxPer = 20
	}
	return &Recorder{
		queues: make(map[string][]Notice),
		maxPer: maxPer,
		now:    time.Now,
	}
}

// Record queues a notice for the session carried in ctx. Calls without a
// session in ctx are dropped silently.
func (r *Recorder) Record(ctx context.Context, code, message string) {
	sessionID := logger.SessionIDFromContext(ctx)
	if sessionID == "" {
		return
	}

	n := Notice{
		ID:        uuid.New().String(),
		Code:      code,
		Message:   message,
		CreatedAt: r.now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	q := append(r.queues[sessionID], n)
	if len(q) > r.maxPer {
		q = q[len(q)-r.maxPer:]
	}
	r.queues[sessionID] = q
}

// Drain returns and clears the session's queued notices.
func (r *Recorder) Drain(sessionID string) []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := r.queues[sessionID]
	delete(r.queues, sessionID)
	if q == nil {
		q = []Notice{}
	}
	return q
}

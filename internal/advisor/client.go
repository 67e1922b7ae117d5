package advisor

import (
	"context"

	"github.com/rumibeauty/storefront/internal/domain"
)

// Stream delivers cumulative text snapshots from the model. Each Recv returns
// the full reply text so far, not a delta; the final snapshot is followed by
// io.EOF. Close releases the underlying connection and may be called from any
// goroutine to abort.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// ChatClient produces a streaming model reply for an advisory conversation.
// Implementations must stop streaming when ctx is canceled.
type ChatClient interface {
	Stream(ctx context.Context, systemInstruction string, history []domain.ChatMessage, message string) (Stream, error)
}

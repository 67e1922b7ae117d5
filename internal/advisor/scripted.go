package advisor

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/rumibeauty/storefront/internal/domain"
)

// ScriptedClient implements ChatClient with canned replies. It backs local
// development and tests; replies stream word by word as cumulative snapshots.
type ScriptedClient struct {
	mu      sync.Mutex
	replies []string
	next    int

	// Err, when set, is returned by Stream instead of a reply.
	Err error
}

// NewScriptedClient creates a client that cycles through the given replies.
func NewScriptedClient(replies ...string) *ScriptedClient {
	if len(replies) == 0 {
		replies = []string{"For a natural everyday look, start with the Luminous Silk Foundation and add a touch of the Sunset Glow Blush Palette."}
	}
	return &ScriptedClient{replies: replies}
}

// Stream yields the next scripted reply as a word-by-word cumulative stream.
func (c *ScriptedClient) Stream(ctx context.Context, systemInstruction string, history []domain.ChatMessage, message string) (Stream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}

	reply := c.replies[c.next%len(c.replies)]
	c.next++

	return &scriptedStream{ctx: ctx, words: strings.Fields(reply)}, nil
}

type scriptedStream struct {
	ctx   context.Context
	words []string
	pos   int
}

func (s *scriptedStream) Recv() (string, error) {
	if err := s.ctx.Err(); err != nil {
		return "", err
	}
	if s.pos >= len(s.words) {
		return "", io.EOF
	}
	s.pos++
	return strings.Join(s.words[:s.pos], " "), nil
}

func (s *scriptedStream) Close() error { return nil }

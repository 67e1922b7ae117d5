package advisor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/rumibeauty/storefront/pkg/errors"

	"github.com/rumibeauty/storefront/internal/domain"
)

// Greeting opens every advisory conversation.
const Greeting = "Hello, beautiful! I'm Rumi, your personal beauty advisor. Whether you're looking for the perfect shade or skincare tips, I'm here to help. What can I do for you today?"

// Apology replaces the reply when the model cannot be reached.
const Apology = "I'm having a little trouble connecting to my beauty knowledge right now. Please try again in a moment!"

// Catalog supplies the current product list for the system instruction.
type Catalog interface {
	List() []domain.Product
}

// Service runs per-session advisory conversations. Each session holds one
// transcript and at most one in-flight reply.
type Service struct {
	client  ChatClient
	catalog Catalog
	logger  *slog.Logger

	mu          sync.Mutex
	transcripts map[string][]domain.ChatMessage
	inFlight    map[string]bool
}

// NewService creates a new advisory service.
func NewService(client ChatClient, catalog Catalog, logger *slog.Logger) *Service {
	return &Service{
		client:      client,
		catalog:     catalog,
		logger:      logger,
		transcripts: make(map[string][]domain.ChatMessage),
		inFlight:    make(map[string]bool),
	}
}

// Transcript returns the session's conversation, creating it with the
// greeting on first access.
func (s *Service) Transcript(sessionID string) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ChatMessage{}, s.transcriptLocked(sessionID)...)
}

func (s *Service) transcriptLocked(sessionID string) []domain.ChatMessage {
	if _, ok := s.transcripts[sessionID]; !ok {
		s.transcripts[sessionID] = []domain.ChatMessage{{
			ID:   uuid.New().String(),
			Role: domain.ChatRoleModel,
			Text: Greeting,
		}}
	}
	return s.transcripts[sessionID]
}

// Send submits a user message and streams the reply. Each cumulative snapshot
// replaces the reply text so far and is forwarded to onSnapshot; the final
// message is returned once the stream ends. A session accepts one send at a
// time; a second send while one is in flight is rejected, not queued. If the
// model cannot be reached the reply becomes the apology text instead of an
// error.
func (s *Service) Send(ctx context.Context, sessionID, text string, onSnapshot func(string)) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, apperrors.InvalidInput("message must not be empty")
	}

	s.mu.Lock()
	if s.inFlight[sessionID] {
		s.mu.Unlock()
		return domain.ChatMessage{}, apperrors.Conflict("a reply is already being generated for this session")
	}
	s.inFlight[sessionID] = true

	history := append([]domain.ChatMessage{}, s.transcriptLocked(sessionID)...)

	userMsg := domain.ChatMessage{ID: uuid.New().String(), Role: domain.ChatRoleUser, Text: text}
	reply := domain.ChatMessage{ID: uuid.New().String(), Role: domain.ChatRoleModel, Streaming: true}
	s.transcripts[sessionID] = append(s.transcripts[sessionID], userMsg, reply)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, sessionID)
		s.mu.Unlock()
	}()

	instruction := SystemInstruction(s.catalog.List())

	stream, err := s.client.Stream(ctx, instruction, history, text)
	if err != nil {
		return s.failReply(ctx, sessionID, reply.ID, err), nil
	}
	defer stream.Close()

	for {
		snapshot, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if ctx.Err() != nil {
				s.setReply(sessionID, reply.ID, "", false)
				return domain.ChatMessage{}, ctx.Err()
			}
			return s.failReply(ctx, sessionID, reply.ID, err), nil
		}
		s.setReply(sessionID, reply.ID, snapshot, true)
		if onSnapshot != nil {
			onSnapshot(snapshot)
		}
	}

	final := s.finishReply(sessionID, reply.ID)
	return final, nil
}

// failReply swaps the streaming placeholder for the apology text.
func (s *Service) failReply(ctx context.Context, sessionID, replyID string, cause error) domain.ChatMessage {
	s.logger.ErrorContext(ctx, "advisory reply failed",
		slog.String("error", cause.Error()),
	)
	s.setReply(sessionID, replyID, Apology, false)
	return s.message(sessionID, replyID)
}

func (s *Service) finishReply(sessionID, replyID string) domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, msg := range s.transcripts[sessionID] {
		if msg.ID == replyID {
			s.transcripts[sessionID][i].Streaming = false
			return s.transcripts[sessionID][i]
		}
	}
	return domain.ChatMessage{}
}

func (s *Service) setReply(sessionID, replyID, text string, streaming bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, msg := range s.transcripts[sessionID] {
		if msg.ID == replyID {
			s.transcripts[sessionID][i].Text = text
			s.transcripts[sessionID][i].Streaming = streaming
			return
		}
	}
}

func (s *Service) message(sessionID, id string) domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, msg := range s.transcripts[sessionID] {
		if msg.ID == id {
			return msg
		}
	}
	return domain.ChatMessage{}
}

// SystemInstruction builds the advisor persona prompt over the current
// catalog.
func SystemInstruction(products []domain.Product) string {
	var b strings.Builder
	b.WriteString(`You are Rumi, a professional makeup artist and the AI Beauty Advisor for "Rumi Makeup".
Your tone is warm, professional, sophisticated, and encouraging.
You have access to the following product catalog:
`)

	for _, p := range products {
		fmt.Fprintf(&b, "- %s (Rs. %d", p.Name, p.Price)
		if p.OriginalPrice != nil {
			fmt.Fprintf(&b, " - discounted from Rs. %d", *p.OriginalPrice)
		}
		fmt.Fprintf(&b, ") [%s - %s]: %s\n", p.Category, p.Subcategory, p.Description)
	}

	b.WriteString(`
Rules:
1. Always recommend products from the Rumi Makeup catalog when relevant.
2. If a user asks about makeup tips (e.g., "how to apply eyeliner"), give expert advice.
3. Keep responses concise (under 3 paragraphs) unless asked for a detailed tutorial.
4. If asked about shipping or returns, professionally state that you are a demo advisor and suggest checking the footer links.
5. Emphasize "enhancing natural beauty" rather than "fixing flaws".
`)

	return b.String()
}

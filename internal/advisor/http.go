package advisor

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rumibeauty/storefront/pkg/httpclient"

	"github.com/rumibeauty/storefront/internal/domain"
)

// chatTurn is one history entry on the wire.
type chatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// chatRequest is the completion request body.
type chatRequest struct {
	Model             string     `json:"model"`
	SystemInstruction string     `json:"system_instruction"`
	Temperature       float64    `json:"temperature"`
	History           []chatTurn `json:"history"`
	Message           string     `json:"message"`
	Stream            bool       `json:"stream"`
}

// chatChunk is one line of the newline-delimited streaming response. Text is
// cumulative: each chunk carries the full reply so far.
type chatChunk struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// HTTPClient implements ChatClient against a hosted chat-completion endpoint
// that streams newline-delimited JSON chunks.
type HTTPClient struct {
	client      *httpclient.CircuitBreakerClient
	baseURL     string
	model       string
	temperature float64
}

// NewHTTPClient creates a chat client for the given completion endpoint.
func NewHTTPClient(client *httpclient.CircuitBreakerClient, baseURL, model string) *HTTPClient {
	return &HTTPClient{
		client:      client,
		baseURL:     baseURL,
		model:       model,
		temperature: 0.7,
	}
}

// Stream opens a streaming completion. The returned stream yields cumulative
// snapshots until the endpoint reports completion.
func (c *HTTPClient) Stream(ctx context.Context, systemInstruction string, history []domain.ChatMessage, message string) (Stream, error) {
	turns := make([]chatTurn, 0, len(history))
	for _, msg := range history {
		turns = append(turns, chatTurn{Role: msg.Role, Text: msg.Text})
	}

	body, err := json.Marshal(chatRequest{
		Model:             c.model,
		SystemInstruction: systemInstruction,
		Temperature:       c.temperature,
		History:           turns,
		Message:           message,
		Stream:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	resp, err := c.client.Post(ctx, c.baseURL+"/v1/chat/stream", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("chat completion request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, httpclient.ParseResponseError(resp, "chat")
	}

	return &httpStream{body: resp.Body, scanner: bufio.NewScanner(resp.Body)}, nil
}

// httpStream reads cumulative chunks off the response body.
type httpStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool
}

func (s *httpStream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}

	for s.scanner.Scan() {
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var chunk chatChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			return "", fmt.Errorf("decode chat chunk: %w", err)
		}
		if chunk.Done {
			s.done = true
			return "", io.EOF
		}
		return chunk.Text, nil
	}

	if err := s.scanner.Err(); err != nil {
		return "", err
	}

	s.done = true
	return "", io.EOF
}

func (s *httpStream) Close() error {
	return s.body.Close()
}

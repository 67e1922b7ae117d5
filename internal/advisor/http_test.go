package advisor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumibeauty/storefront/pkg/httpclient"

	"github.com/rumibeauty/storefront/internal/domain"
)

func newHTTPChatClient(baseURL string) *HTTPClient {
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	cb := httpclient.NewCircuitBreakerClient(
		httpclient.New(cfg),
		httpclient.DefaultCircuitBreakerConfig("chat-test"),
		newTestLogger(),
	)
	return NewHTTPClient(cb, baseURL, "rumi-advisor-1")
}

func collect(t *testing.T, s Stream) []string {
	t.Helper()
	var snapshots []string
	for {
		snapshot, err := s.Recv()
		if err == io.EOF {
			return snapshots
		}
		require.NoError(t, err)
		snapshots = append(snapshots, snapshot)
	}
}

func TestHTTPClient_StreamYieldsCumulativeChunks(t *testing.T) {
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Write([]byte(`{"text":"For a"}` + "\n"))
		w.Write([]byte("\n")) // blank lines are skipped
		w.Write([]byte(`{"text":"For a natural look"}` + "\n"))
		w.Write([]byte(`{"done":true}` + "\n"))
	}))
	defer srv.Close()

	client := newHTTPChatClient(srv.URL)
	history := []domain.ChatMessage{{Role: domain.ChatRoleModel, Text: Greeting}}

	stream, err := client.Stream(context.Background(), "instruction", history, "what look?")
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, []string{"For a", "For a natural look"}, collect(t, stream))

	assert.Equal(t, "rumi-advisor-1", gotReq.Model)
	assert.Equal(t, "instruction", gotReq.SystemInstruction)
	assert.Equal(t, "what look?", gotReq.Message)
	assert.True(t, gotReq.Stream)
	require.Len(t, gotReq.History, 1)
	assert.Equal(t, domain.ChatRoleModel, gotReq.History[0].Role)
}

func TestHTTPClient_StreamEndsWithoutDoneMarker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"partial"}` + "\n"))
	}))
	defer srv.Close()

	client := newHTTPChatClient(srv.URL)
	stream, err := client.Stream(context.Background(), "i", nil, "m")
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, []string{"partial"}, collect(t, stream))

	// Recv after EOF keeps returning EOF.
	_, err = stream.Recv()
	assert.Equal(t, io.EOF, err)
}

func TestHTTPClient_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"RATE_LIMITED","message":"slow down"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newHTTPChatClient(srv.URL)
	_, err := client.Stream(context.Background(), "i", nil, "m")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "chat")
	assert.Contains(t, err.Error(), "slow down")
}

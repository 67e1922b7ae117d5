package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rumibeauty/storefront/pkg/httpclient"
)

// HTTPStore implements ObjectStore against a hosted bucket API: objects are
// POSTed to /object/{bucket}/{key} and served from a public base URL.
type HTTPStore struct {
	client  *httpclient.CircuitBreakerClient
	baseURL string
}

// NewHTTPStore creates an object store client for the given bucket API.
func NewHTTPStore(client *httpclient.CircuitBreakerClient, baseURL string) *HTTPStore {
	return &HTTPStore{
		client:  client,
		baseURL: baseURL,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload stores the object and returns its public URL.
func (s *HTTPStore) Upload(ctx context.Context, bucket, key, contentType string, data []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/object/%s/%s", s.baseURL, url.PathEscape(bucket), url.PathEscape(key))

	resp, err := s.client.Post(ctx, endpoint, contentType, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", httpclient.ParseResponseError(resp, "storage")
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if out.URL == "" {
		// Older bucket APIs return an empty body; the public URL mirrors the
		// upload path.
		out.URL = endpoint
	}

	return out.URL, nil
}

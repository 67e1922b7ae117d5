package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore implements ObjectStore in process memory for tests and local
// development.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	// FailWith, when set, is returned by every upload.
	FailWith error
}

// NewMemoryStore creates an empty in-memory object store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Upload stores the object and returns a synthetic public URL.
func (s *MemoryStore) Upload(ctx context.Context, bucket, key, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		return "", s.FailWith
	}

	path := bucket + "/" + key
	s.objects[path] = append([]byte{}, data...)
	return fmt.Sprintf("memory://%s", path), nil
}

// Get returns a stored object's bytes.
func (s *MemoryStore) Get(bucket, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[bucket+"/"+key]
	return data, ok
}

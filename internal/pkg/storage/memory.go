package storage

import (
	"fmt"
	"sync"
)

// MemoryStore keeps objects in memory. Used by tests and as a stand-in when
// no OSS credentials are configured.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	baseURL string
}

func NewMemoryStore(baseURL string) *MemoryStore {
	if baseURL == "" {
		baseURL = "https://storage.signhey.test"
	}
	return &MemoryStore{
		objects: make(map[string][]byte),
		baseURL: baseURL,
	}
}

func (s *MemoryStore) Put(objectKey string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[objectKey] = buf

	return s.URL(objectKey), nil
}

func (s *MemoryStore) Delete(objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, objectKey)
	return nil
}

func (s *MemoryStore) URL(objectKey string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, objectKey)
}

// Get returns a stored object, for test assertions.
func (s *MemoryStore) Get(objectKey string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[objectKey]
	return data, ok
}

// Len reports how many objects are stored.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.objects)
}

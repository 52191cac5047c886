package helpers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// MemoryStorage keeps objects in a map. SaveErr fails every save, SaveDelay blocks saves until
// the delay passes or the context is done.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string

	SaveErr   error
	SaveDelay time.Duration
	// FailAfter lets that many saves succeed before SaveErr applies. Zero means fail from the first.
	FailAfter int
	saves     int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

// SetSaveErr changes SaveErr while a server may be saving.
func (s *MemoryStorage) SetSaveErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SaveErr = err
}

func (s *MemoryStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if s.SaveDelay > 0 {
		select {
		case <-time.After(s.SaveDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.mu.Lock()
	s.saves++
	failing := s.SaveErr != nil && s.saves > s.FailAfter
	s.mu.Unlock()
	if failing {
		return s.SaveErr
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *MemoryStorage) GetURL(ctx context.Context, key string) (string, error) {
	return fmt.Sprintf("https://cdn.test/%s", key), nil
}

// Keys returns the stored object keys.
func (s *MemoryStorage) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

func (s *MemoryStorage) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

// Content returns the stored bytes for key.
func (s *MemoryStorage) Content(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return bytes.Clone(data), ok
}

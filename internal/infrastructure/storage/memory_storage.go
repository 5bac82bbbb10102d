package storage

import (
	"context"
	"errors"
	"sync"

	catalogapp "github.com/tlsy/handicrafts/internal/application/catalog"
)

var _ catalogapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// StoredObject is an object kept by MemoryObjectStorage
type StoredObject struct {
	Data        []byte
	ContentType string
}

// MemoryObjectStorage keeps objects in process memory.
// Used when storage is disabled in development and in tests; contents are lost on restart.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	bucket  string
	objects map[string]StoredObject
}

// NewMemoryObjectStorage creates an empty in-memory bucket
func NewMemoryObjectStorage(bucket string) *MemoryObjectStorage {
	return &MemoryObjectStorage{
		bucket:  bucket,
		objects: make(map[string]StoredObject),
	}
}

// Upload stores a copy of data under key
func (s *MemoryObjectStorage) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[key] = StoredObject{Data: buf, ContentType: contentType}
	s.mu.Unlock()
	return nil
}

// DeleteObject removes key; deleting a missing key is not an error, matching S3
func (s *MemoryObjectStorage) DeleteObject(_ context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

// ObjectExists reports whether key is stored
func (s *MemoryObjectStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("storage key is required")
	}
	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	return ok, nil
}

// Get returns the stored object
func (s *MemoryObjectStorage) Get(key string) (StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}

// Len returns the number of stored objects
func (s *MemoryObjectStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// GetBucket returns the bucket name
func (s *MemoryObjectStorage) GetBucket() string {
	return s.bucket
}

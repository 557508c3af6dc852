package testsupport

import (
	"context"
	"fmt"
	"sync"

	"scribe/internal/storage"
)

// StoredBlob captures one blob store put for assertions.
type StoredBlob struct {
	Data        []byte
	Filename    string
	ContentType string
	Attrs       map[string]string
}

// MemoryBlobStore is an in-memory stand-in for the GridFS client with
// injectable failures.
type MemoryBlobStore struct {
	mu     sync.Mutex
	nextID int
	Blobs  map[string]StoredBlob

	PutErr    error
	DeleteErr error

	PutCalls    int
	DeleteCalls []string
}

// NewMemoryBlobStore returns an empty in-memory blob store.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{Blobs: make(map[string]StoredBlob)}
}

func (s *MemoryBlobStore) Put(_ context.Context, data []byte, filename, contentType string, attrs map[string]string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PutCalls++
	if s.PutErr != nil {
		return "", s.PutErr
	}
	s.nextID++
	id := fmt.Sprintf("blob-%d", s.nextID)
	copied := make(map[string]string, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	s.Blobs[id] = StoredBlob{Data: data, Filename: filename, ContentType: contentType, Attrs: copied}
	return id, nil
}

func (s *MemoryBlobStore) Delete(_ context.Context, blobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteCalls = append(s.DeleteCalls, blobID)
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	if _, ok := s.Blobs[blobID]; !ok {
		return storage.ErrNotFound
	}
	delete(s.Blobs, blobID)
	return nil
}

// MemoryMetadataStore is an in-memory stand-in for the metadata collection
// client with injectable failures.
type MemoryMetadataStore struct {
	mu      sync.Mutex
	nextID  int
	Records map[string]storage.ConversationRecord

	InsertErr error

	InsertCalls int
}

// NewMemoryMetadataStore returns an empty in-memory metadata store.
func NewMemoryMetadataStore() *MemoryMetadataStore {
	return &MemoryMetadataStore{Records: make(map[string]storage.ConversationRecord)}
}

func (s *MemoryMetadataStore) Insert(_ context.Context, rec storage.ConversationRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.InsertCalls++
	if s.InsertErr != nil {
		return "", s.InsertErr
	}
	s.nextID++
	id := fmt.Sprintf("record-%d", s.nextID)
	s.Records[id] = rec
	return id, nil
}

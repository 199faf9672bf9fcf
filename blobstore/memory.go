package blobstore

import (
	"bytes"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
)

// MemoryStore keeps blobs in process memory. Tests use it for IDX fixtures;
// it can also serve a dataset embedded in a binary.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]*memoryBlob
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]*memoryBlob)}
}

// Put stores a copy of data under name, replacing any previous blob.
// Blobs opened before the call keep reading the old contents.
func (m *MemoryStore) Put(_ context.Context, name string, data []byte) error {
	b := &memoryBlob{data: bytes.Clone(data)}

	m.mu.Lock()
	m.blobs[name] = b
	m.mu.Unlock()
	return nil
}

// Open returns the blob stored under name.
func (m *MemoryStore) Open(_ context.Context, name string) (Blob, error) {
	m.mu.RLock()
	b, ok := m.blobs[name]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

// List returns the sorted names starting with prefix.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := slices.Sorted(maps.Keys(m.blobs))
	return slices.DeleteFunc(names, func(name string) bool {
		return !strings.HasPrefix(name, prefix)
	}), nil
}

// memoryBlob is immutable once stored, so one value is shared by every Open.
type memoryBlob struct {
	data []byte
}

func (b *memoryBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	return bytes.NewReader(b.data).ReadAt(p, off)
}

func (b *memoryBlob) Size() int64 { return int64(len(b.data)) }

func (b *memoryBlob) Close() error { return nil }

// Bytes returns the stored slice. Callers must not modify it.
func (b *memoryBlob) Bytes() ([]byte, error) { return b.data, nil }

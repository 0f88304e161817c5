package storage

import (
	"context"
	"sync"
)

// MockObjectStore is an in-memory implementation of ObjectStore for testing
type MockObjectStore struct {
	mu      sync.RWMutex
	objects map[string]*Object
	fail    map[string]error
	calls   int
}

// NewMockObjectStore creates a new MockObjectStore instance
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{
		objects: make(map[string]*Object),
		fail:    make(map[string]error),
	}
}

// Put stores an object in memory, replacing any existing one
func (m *MockObjectStore) Put(bucket, key string, data []byte, contentType string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[objectID(bucket, key)] = &Object{
		Bucket:      bucket,
		Key:         key,
		Data:        append([]byte(nil), data...),
		ContentType: contentType,
	}
}

// FailOn makes Retrieve return err for the given object
func (m *MockObjectStore) FailOn(bucket, key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[objectID(bucket, key)] = err
}

// Calls returns how many times Retrieve was invoked
func (m *MockObjectStore) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// Retrieve implements ObjectStore.Retrieve
func (m *MockObjectStore) Retrieve(ctx context.Context, bucket, key string) (*Object, error) {
	if bucket == "" || key == "" {
		return nil, NewStorageError("Retrieve", bucket, key, ErrInvalidKey)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if err, ok := m.fail[objectID(bucket, key)]; ok {
		return nil, NewStorageError("Retrieve", bucket, key, err)
	}

	obj, exists := m.objects[objectID(bucket, key)]
	if !exists {
		return nil, NewStorageError("Retrieve", bucket, key, ErrObjectNotFound)
	}

	// Return a copy of the data
	return &Object{
		Bucket:      obj.Bucket,
		Key:         obj.Key,
		Data:        append([]byte(nil), obj.Data...),
		ContentType: obj.ContentType,
	}, nil
}

// Close implements ObjectStore.Close
func (m *MockObjectStore) Close() error {
	return nil
}

func objectID(bucket, key string) string {
	return bucket + "/" + key
}

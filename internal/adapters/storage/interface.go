package storage

import (
	"context"
)

// Object is the content and metadata of a stored object
type Object struct {
	Bucket      string
	Key         string
	Data        []byte
	ContentType string // empty when the store reports none
}

// ObjectStore fetches objects by bucket and key.
// Implementations return a *StorageError wrapping ErrObjectNotFound for missing keys.
type ObjectStore interface {
	// Retrieve gets the full object body and its content type
	Retrieve(ctx context.Context, bucket, key string) (*Object, error)

	// Close cleans up any resources used by the storage implementation
	Close() error
}

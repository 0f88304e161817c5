package storage

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// LocalObjectStore implements ObjectStore on the local filesystem.
// Objects live at <basePath>/<bucket>/<key>.
type LocalObjectStore struct {
	basePath string
}

// NewLocalObjectStore creates a new LocalObjectStore instance
func NewLocalObjectStore(basePath string) (*LocalObjectStore, error) {
	// Ensure base path exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, NewStorageError("NewLocalObjectStore", "", "", err)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, NewStorageError("NewLocalObjectStore", "", "", err)
	}

	return &LocalObjectStore{basePath: absPath}, nil
}

// Retrieve implements ObjectStore.Retrieve
func (l *LocalObjectStore) Retrieve(ctx context.Context, bucket, key string) (*Object, error) {
	if err := validateKey(bucket, key); err != nil {
		return nil, NewStorageError("Retrieve", bucket, key, err)
	}

	data, err := os.ReadFile(l.getFilePath(bucket, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewStorageError("Retrieve", bucket, key, ErrObjectNotFound)
		}
		return nil, NewStorageError("Retrieve", bucket, key, err)
	}

	return &Object{
		Bucket:      bucket,
		Key:         key,
		Data:        data,
		ContentType: mime.TypeByExtension(filepath.Ext(key)),
	}, nil
}

// Close implements ObjectStore.Close
func (l *LocalObjectStore) Close() error {
	return nil
}

func (l *LocalObjectStore) getFilePath(bucket, key string) string {
	return filepath.Join(l.basePath, bucket, filepath.FromSlash(key))
}

func validateKey(bucket, key string) error {
	if bucket == "" || key == "" {
		return ErrInvalidKey
	}

	// Prevent directory traversal
	for _, part := range []string{bucket, key} {
		if strings.Contains(part, "..") || strings.HasPrefix(part, "/") {
			return ErrInvalidKey
		}
	}

	return nil
}

package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioOptions configures a connection to an S3-compatible endpoint
type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

// MinioObjectStore implements ObjectStore on any S3-compatible server via minio-go
type MinioObjectStore struct {
	client *minio.Client
}

// NewMinioObjectStore creates a new MinioObjectStore. The endpoint may be a
// bare host:port or a URL whose scheme decides TLS.
func NewMinioObjectStore(opts MinioOptions) (*MinioObjectStore, error) {
	endpoint, useSSL, err := parseEndpoint(opts.Endpoint, opts.UseSSL)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: useSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &MinioObjectStore{client: client}, nil
}

// Retrieve implements ObjectStore.Retrieve
func (m *MinioObjectStore) Retrieve(ctx context.Context, bucket, key string) (*Object, error) {
	if bucket == "" || key == "" {
		return nil, NewStorageError("Retrieve", bucket, key, ErrInvalidKey)
	}

	obj, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, NewStorageError("Retrieve", bucket, key, translateMinioError(err))
	}
	defer obj.Close()

	// GetObject is lazy; Stat performs the request and surfaces missing keys
	info, err := obj.Stat()
	if err != nil {
		return nil, NewStorageError("Retrieve", bucket, key, translateMinioError(err))
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, NewStorageError("Retrieve", bucket, key, err)
	}

	return &Object{
		Bucket:      bucket,
		Key:         key,
		Data:        data,
		ContentType: info.ContentType,
	}, nil
}

// Close implements ObjectStore.Close
func (m *MinioObjectStore) Close() error {
	return nil
}

func translateMinioError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	}
	return err
}

func parseEndpoint(endpoint string, useSSL bool) (string, bool, error) {
	if endpoint == "" {
		return "", false, fmt.Errorf("minio endpoint is required")
	}
	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return "", false, fmt.Errorf("parse endpoint: %w", err)
		}
		return u.Host, u.Scheme == "https", nil
	}
	return endpoint, useSSL, nil
}

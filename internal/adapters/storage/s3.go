package storage

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3GetObjectAPI is the subset of the S3 client used by S3ObjectStore
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3ObjectStore implements ObjectStore on Amazon S3
type S3ObjectStore struct {
	client S3GetObjectAPI
}

// NewS3ObjectStore creates a new S3ObjectStore
func NewS3ObjectStore(client S3GetObjectAPI) *S3ObjectStore {
	return &S3ObjectStore{client: client}
}

// NewS3ObjectStoreFromConfig builds the S3 client from a loaded AWS config
func NewS3ObjectStoreFromConfig(cfg aws.Config, endpointURL string) *S3ObjectStore {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpointURL != "" {
			o.BaseEndpoint = aws.String(endpointURL)
			o.UsePathStyle = true
		}
	})
	return NewS3ObjectStore(client)
}

// Retrieve implements ObjectStore.Retrieve
func (s *S3ObjectStore) Retrieve(ctx context.Context, bucket, key string) (*Object, error) {
	if bucket == "" || key == "" {
		return nil, NewStorageError("Retrieve", bucket, key, ErrInvalidKey)
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, NewStorageError("Retrieve", bucket, key, ErrObjectNotFound)
		}
		return nil, NewStorageError("Retrieve", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, NewStorageError("Retrieve", bucket, key, err)
	}

	return &Object{
		Bucket:      bucket,
		Key:         key,
		Data:        data,
		ContentType: aws.ToString(out.ContentType),
	}, nil
}

// Close implements ObjectStore.Close
func (s *S3ObjectStore) Close() error {
	return nil
}

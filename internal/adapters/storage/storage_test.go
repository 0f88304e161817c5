package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"image-search-api/internal/config"
)

type fakeS3 struct {
	objects map[string]*s3.GetObjectOutput
	err     error
	input   *s3.GetObjectInput
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	out, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return out, nil
}

func TestS3ObjectStore_Retrieve(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{objects: map[string]*s3.GetObjectOutput{
		"cat.jpg": {
			Body:        io.NopCloser(bytes.NewReader([]byte("cat-bytes"))),
			ContentType: aws.String("image/jpeg"),
		},
		"raw.png": {
			Body: io.NopCloser(bytes.NewReader([]byte("png-bytes"))),
		},
	}}
	store := NewS3ObjectStore(client)

	obj, err := store.Retrieve(ctx, "images", "cat.jpg")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if string(obj.Data) != "cat-bytes" || obj.ContentType != "image/jpeg" {
		t.Errorf("Unexpected object: %+v", obj)
	}
	if aws.ToString(client.input.Bucket) != "images" {
		t.Errorf("Expected bucket images, got %s", aws.ToString(client.input.Bucket))
	}

	obj, err = store.Retrieve(ctx, "images", "raw.png")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if obj.ContentType != "" {
		t.Errorf("Expected empty content type when S3 reports none, got %q", obj.ContentType)
	}

	_, err = store.Retrieve(ctx, "images", "missing.jpg")
	if !IsNotFound(err) {
		t.Errorf("Expected not found error, got %v", err)
	}

	client.err = errors.New("access denied")
	_, err = store.Retrieve(ctx, "images", "cat.jpg")
	if err == nil || IsNotFound(err) {
		t.Errorf("Expected generic storage error, got %v", err)
	}
	var storageErr *StorageError
	if !errors.As(err, &storageErr) || storageErr.Op != "Retrieve" {
		t.Errorf("Expected *StorageError for Retrieve, got %T", err)
	}

	if _, err := store.Retrieve(ctx, "", "cat.jpg"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Expected invalid key error, got %v", err)
	}
}

func TestLocalObjectStore(t *testing.T) {
	ctx := context.Background()
	tempDir := t.TempDir()

	store, err := NewLocalObjectStore(tempDir)
	if err != nil {
		t.Fatalf("Failed to create local storage: %v", err)
	}
	defer store.Close()

	objectPath := filepath.Join(tempDir, "images", "pets", "dog.png")
	if err := os.MkdirAll(filepath.Dir(objectPath), 0755); err != nil {
		t.Fatalf("Failed to create bucket directory: %v", err)
	}
	if err := os.WriteFile(objectPath, []byte("dog"), 0644); err != nil {
		t.Fatalf("Failed to seed object: %v", err)
	}

	obj, err := store.Retrieve(ctx, "images", "pets/dog.png")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if string(obj.Data) != "dog" {
		t.Errorf("Data mismatch: got %q", obj.Data)
	}
	if obj.ContentType != "image/png" {
		t.Errorf("Expected image/png, got %q", obj.ContentType)
	}

	if _, err := store.Retrieve(ctx, "images", "missing.png"); !IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}

	invalid := []struct{ bucket, key string }{
		{"images", ""},
		{"", "a.png"},
		{"images", "../escape.png"},
		{"images", "/abs.png"},
	}
	for _, tc := range invalid {
		if _, err := store.Retrieve(ctx, tc.bucket, tc.key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Retrieve(%q, %q) expected invalid key, got %v", tc.bucket, tc.key, err)
		}
	}
}

func TestMockObjectStore(t *testing.T) {
	ctx := context.Background()
	store := NewMockObjectStore()

	store.Put("images", "cat.jpg", []byte("cat"), "image/jpeg")
	obj, err := store.Retrieve(ctx, "images", "cat.jpg")
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	obj.Data[0] = 'X'

	again, _ := store.Retrieve(ctx, "images", "cat.jpg")
	if string(again.Data) != "cat" {
		t.Errorf("Retrieve should return a copy, got %q", again.Data)
	}

	if _, err := store.Retrieve(ctx, "other", "cat.jpg"); !IsNotFound(err) {
		t.Errorf("Expected not found for other bucket, got %v", err)
	}

	store.FailOn("images", "cat.jpg", ErrStorageUnavailable)
	if _, err := store.Retrieve(ctx, "images", "cat.jpg"); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("Expected injected failure, got %v", err)
	}

	if store.Calls() != 4 {
		t.Errorf("Expected 4 calls, got %d", store.Calls())
	}
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		useSSL   bool
		wantHost string
		wantSSL  bool
		wantErr  bool
	}{
		{"localhost:9000", false, "localhost:9000", false, false},
		{"localhost:9000", true, "localhost:9000", true, false},
		{"http://minio:9000", true, "minio:9000", false, false},
		{"https://s3.example.com", false, "s3.example.com", true, false},
		{"", false, "", false, true},
	}

	for _, tt := range tests {
		host, ssl, err := parseEndpoint(tt.endpoint, tt.useSSL)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseEndpoint(%q) error = %v, wantErr %v", tt.endpoint, err, tt.wantErr)
			continue
		}
		if host != tt.wantHost || ssl != tt.wantSSL {
			t.Errorf("parseEndpoint(%q) = %s, %v; want %s, %v", tt.endpoint, host, ssl, tt.wantHost, tt.wantSSL)
		}
	}
}

func TestFactory(t *testing.T) {
	factory := NewFactory(aws.Config{Region: "eu-central-1"}, "")

	tests := []struct {
		name    string
		cfg     config.StorageConfig
		want    string
		wantErr bool
	}{
		{"s3", config.StorageConfig{Type: "s3"}, "*storage.S3ObjectStore", false},
		{"mock", config.StorageConfig{Type: "MOCK"}, "*storage.MockObjectStore", false},
		{"local", config.StorageConfig{Type: "local", LocalPath: t.TempDir()}, "*storage.LocalObjectStore", false},
		{"minio", config.StorageConfig{Type: "minio", MinioEndpoint: "localhost:9000"}, "*storage.MinioObjectStore", false},
		{"minio without endpoint", config.StorageConfig{Type: "minio"}, "", true},
		{"unsupported", config.StorageConfig{Type: "gcs"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := factory.Create(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			defer store.Close()
			if got := typeName(store); got != tt.want {
				t.Errorf("Create() type = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(v interface{}) string {
	return fmt.Sprintf("%T", v)
}

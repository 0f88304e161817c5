package server

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"

	"image-search-api/internal/adapters/labelstore"
	"image-search-api/internal/adapters/storage"
	"image-search-api/internal/adapters/vision"
	"image-search-api/internal/config"
	"image-search-api/internal/logging"
)

func mockConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Port:        "8081",
		Region:      "eu-central-1",
		Storage:     config.StorageConfig{Type: "mock", Bucket: "images"},
		Table:       config.TableConfig{Type: "mock", Name: "labels"},
		Detector:    config.DetectorConfig{Type: "mock"},
	}
}

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	container, err := NewContainer(context.Background(), mockConfig(),
		WithAWSConfig(aws.Config{Region: "eu-central-1"}),
		WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container.SearchService == nil {
		t.Error("SearchService is nil")
	}
	if container.IngestService == nil {
		t.Error("IngestService is nil")
	}
	if container.SearchHandler == nil || container.UploadHandler == nil {
		t.Error("Handlers are nil")
	}

	if _, ok := container.Table().(*labelstore.MockLabelTable); !ok {
		t.Errorf("Expected mock table, got %T", container.Table())
	}
	if _, ok := container.Store().(*storage.MockObjectStore); !ok {
		t.Errorf("Expected mock store, got %T", container.Store())
	}
	if _, ok := container.Detector().(*vision.MockDetector); !ok {
		t.Errorf("Expected mock detector, got %T", container.Detector())
	}

	if err := container.Close(); err != nil {
		t.Errorf("Failed to close container: %v", err)
	}
}

// TestNewContainer_SQLite wires the sqlite label table end to end
func TestNewContainer_SQLite(t *testing.T) {
	cfg := mockConfig()
	cfg.Table = config.TableConfig{
		Type:       "sqlite",
		Name:       "labels",
		SQLitePath: filepath.Join(t.TempDir(), "labels.db"),
	}

	container, err := NewContainer(context.Background(), cfg,
		WithAWSConfig(aws.Config{Region: "eu-central-1"}),
		WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	defer container.Close()

	if _, ok := container.Table().(*labelstore.SQLiteLabelTable); !ok {
		t.Errorf("Expected sqlite table, got %T", container.Table())
	}
}

func TestNewContainer_Errors(t *testing.T) {
	if _, err := NewContainer(context.Background(), nil); err == nil {
		t.Error("Expected error for nil configuration")
	}

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown storage", func(c *config.Config) { c.Storage.Type = "ftp" }},
		{"unknown table", func(c *config.Config) { c.Table.Type = "redis" }},
		{"unknown detector", func(c *config.Config) { c.Detector.Type = "opencv" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := mockConfig()
			tt.mutate(cfg)
			_, err := NewContainer(context.Background(), cfg,
				WithAWSConfig(aws.Config{}),
				WithLogger(logging.Discard()))
			if err == nil {
				t.Error("Expected construction to fail")
			}
		})
	}
}

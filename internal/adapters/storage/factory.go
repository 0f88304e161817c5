package storage

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"

	"image-search-api/internal/config"
)

// StorageType represents the type of storage implementation
type StorageType string

const (
	StorageTypeS3    StorageType = "s3"
	StorageTypeMinio StorageType = "minio"
	StorageTypeLocal StorageType = "local"
	StorageTypeMock  StorageType = "mock"
)

// Factory creates ObjectStore instances based on configuration
type Factory struct {
	awsConfig   aws.Config
	endpointURL string
}

// NewFactory creates a new storage factory. awsConfig is only used for S3.
func NewFactory(awsConfig aws.Config, endpointURL string) *Factory {
	return &Factory{
		awsConfig:   awsConfig,
		endpointURL: endpointURL,
	}
}

// Create creates an ObjectStore instance based on the provided configuration
func (f *Factory) Create(cfg config.StorageConfig) (ObjectStore, error) {
	storageType := StorageType(strings.ToLower(cfg.Type))

	var store ObjectStore
	var err error

	switch storageType {
	case StorageTypeS3, "":
		store = NewS3ObjectStoreFromConfig(f.awsConfig, f.endpointURL)
	case StorageTypeMinio:
		store, err = NewMinioObjectStore(MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			UseSSL:    cfg.MinioUseSSL,
			Region:    f.awsConfig.Region,
		})
	case StorageTypeLocal:
		basePath := cfg.LocalPath
		if basePath == "" {
			basePath = "./data/images"
		}
		store, err = NewLocalObjectStore(basePath)
	case StorageTypeMock:
		store = NewMockObjectStore()
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s storage: %w", cfg.Type, err)
	}

	return store, nil
}

package server

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/sirupsen/logrus"

	"image-search-api/internal/adapters/labelstore"
	"image-search-api/internal/adapters/storage"
	"image-search-api/internal/adapters/vision"
	"image-search-api/internal/config"
	"image-search-api/internal/handlers"
	"image-search-api/internal/logging"
	"image-search-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *logrus.Logger
	SearchService services.SearchService
	IngestService services.IngestService
	SearchHandler *handlers.SearchHandler
	UploadHandler *handlers.UploadHandler

	// Internal dependencies
	store    storage.ObjectStore
	table    labelstore.LabelTable
	detector vision.LabelDetector
}

// Option customizes container construction
type Option func(*options)

type options struct {
	awsConfig *aws.Config
	logger    *logrus.Logger
}

// WithAWSConfig skips loading the default AWS configuration
func WithAWSConfig(cfg aws.Config) Option {
	return func(o *options) {
		o.awsConfig = &cfg
	}
}

// WithLogger overrides the logger built from configuration
func WithLogger(logger *logrus.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.New(cfg.Log)
	}

	awsCfg, err := loadAWSConfig(ctx, cfg, o.awsConfig)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewFactory(awsCfg, cfg.EndpointURL).Create(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create object store: %w", err)
	}

	table, err := labelstore.NewFactory(awsCfg, cfg.EndpointURL, logger).Create(cfg.Table)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to create label table: %w", err)
	}

	detector, err := vision.NewDetector(cfg.Detector, awsCfg, cfg.EndpointURL)
	if err != nil {
		store.Close()
		table.Close()
		return nil, fmt.Errorf("failed to create label detector: %w", err)
	}

	serviceContainer, err := services.NewServiceContainer(&services.Dependencies{
		Store:    store,
		Table:    table,
		Detector: detector,
		Bucket:   cfg.Storage.Bucket,
		Logger:   logger,
	})
	if err != nil {
		store.Close()
		table.Close()
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"storage":  cfg.Storage.Type,
		"table":    cfg.Table.Type,
		"detector": cfg.Detector.Type,
		"mode":     config.GetDeploymentMode(),
	}).Debug("Container initialized")

	return &Container{
		Config:        cfg,
		Logger:        logger,
		SearchService: serviceContainer.SearchService,
		IngestService: serviceContainer.IngestService,
		SearchHandler: handlers.NewSearchHandler(cfg, serviceContainer.SearchService, logger),
		UploadHandler: handlers.NewUploadHandler(cfg, serviceContainer.IngestService, logger),
		store:         store,
		table:         table,
		detector:      detector,
	}, nil
}

func loadAWSConfig(ctx context.Context, cfg *config.Config, override *aws.Config) (aws.Config, error) {
	if override != nil {
		return *override, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return awsCfg, nil
}

// Table returns the label table backing the services
func (c *Container) Table() labelstore.LabelTable {
	return c.table
}

// Store returns the object store backing the services
func (c *Container) Store() storage.ObjectStore {
	return c.store
}

// Detector returns the label detector backing the services
func (c *Container) Detector() vision.LabelDetector {
	return c.detector
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.table != nil {
		if err := c.table.Close(); err != nil {
			return fmt.Errorf("failed to close label table: %w", err)
		}
	}

	if c.store != nil {
		if err := c.store.Close(); err != nil {
			return fmt.Errorf("failed to close object store: %w", err)
		}
	}

	return nil
}

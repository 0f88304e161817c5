package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	SearchService SearchService
	IngestService IngestService
}

// Dependencies holds the collaborators services are built from
type Dependencies struct {
	Store    ObjectFetcher
	Table    LabelTable
	Detector LabelDetector
	Bucket   string
	Logger   *logrus.Logger
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(deps *Dependencies) (*ServiceContainer, error) {
	if deps == nil {
		return nil, fmt.Errorf("service dependencies cannot be nil")
	}
	if deps.Table == nil {
		return nil, fmt.Errorf("label table is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("object store is required")
	}
	if deps.Detector == nil {
		return nil, fmt.Errorf("label detector is required")
	}

	return &ServiceContainer{
		SearchService: NewSearchService(deps.Table, deps.Store, deps.Bucket, deps.Logger),
		IngestService: NewIngestService(deps.Detector, deps.Table, deps.Logger),
	}, nil
}

package services

import (
	"context"

	"image-search-api/internal/adapters/storage"
	"image-search-api/internal/models"
)

// ObjectFetcher fetches an object's bytes and content type
type ObjectFetcher interface {
	Retrieve(ctx context.Context, bucket, key string) (*storage.Object, error)
}

// LabelScanner reads one scan page of the label table
type LabelScanner interface {
	Scan(ctx context.Context) ([]*models.LabelRecord, error)
}

// LabelWriter replaces a row of the label table
type LabelWriter interface {
	Put(ctx context.Context, record *models.LabelRecord) error
}

// LabelTable is both sides of the label table
type LabelTable interface {
	LabelScanner
	LabelWriter
}

// LabelDetector returns the labels of an image held in object storage
type LabelDetector interface {
	DetectLabels(ctx context.Context, bucket, key string) ([]string, error)
}

// SearchService finds stored images by label keyword
type SearchService interface {
	// Search returns the images whose labels contain keyword, case-insensitively.
	// A blank keyword yields ErrKeywordRequired without touching storage.
	Search(ctx context.Context, keyword string) (*SearchResult, error)
}

// IngestService labels newly uploaded images and records the labels
type IngestService interface {
	// IngestObject processes one object; failures are reported in the result, never returned
	IngestObject(ctx context.Context, ref ObjectRef) RecordResult

	// Ingest processes refs sequentially and folds the per-object results
	Ingest(ctx context.Context, refs []ObjectRef) *IngestSummary
}
